package model

// Role distinguishes the two kinds of marketplace users.
type Role string

const (
	RoleStudent Role = "student"
	RoleTutor   Role = "tutor"
)

// BookingStatus is the server-driven lifecycle of a booking. The client
// only ever reads it.
type BookingStatus string

const (
	BookingUpcoming  BookingStatus = "upcoming"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

// User is the authenticated account as reported by /user/.
type User struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	Role      Role   `json:"role"`
}

// Tutor is a discoverable tutor profile.
type Tutor struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Subject  string  `json:"subject"`
	Rate     float64 `json:"hourly_rate"`
	Rating   float64 `json:"rating"`
	Sessions int     `json:"session_count"`
}

// TimeSlot is a bookable interval owned by a tutor on a single calendar day.
// StartTime and EndTime are "HH:MM" strings on the wire; use MinuteOfDay to
// compare them.
type TimeSlot struct {
	ID        int64  `json:"id"`
	TutorID   int64  `json:"tutor_id"`
	Date      string `json:"date"` // YYYY-MM-DD
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Available bool   `json:"available"`
}

// Booking is a student's confirmed reservation of a slot.
type Booking struct {
	ID          int64         `json:"id"`
	TimeSlotID  int64         `json:"time_slot"`
	TutorName   string        `json:"tutor_name"`
	StudentName string        `json:"student_name"`
	Subject     string        `json:"subject"`
	Date        string        `json:"date"`
	Time        string        `json:"time"`
	Amount      float64       `json:"amount"`
	Paid        bool          `json:"paid"`
	Status      BookingStatus `json:"status"`
}

// Contact is a chat counterpart. The list is replaced wholesale on every
// poll tick; identity is the numeric id.
type Contact struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Role        Role   `json:"role"`
	LastMessage string `json:"last_message"`
	Unread      int    `json:"unread"`
}

// Message is a chat message. IDs are assigned by the server and increase
// monotonically within a conversation, which makes them usable as the sync
// cursor.
type Message struct {
	ID         int64  `json:"id"`
	SenderID   int64  `json:"sender"`
	ReceiverID int64  `json:"receiver"`
	Text       string `json:"text"`
	Timestamp  string `json:"timestamp"` // ISO 8601
	Read       bool   `json:"read"`
}
