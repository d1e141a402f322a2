package bus

import "time"

// Event kinds published by the sync layer. Subscribers filter by namespace
// prefix, e.g. "chat." receives every chat event.
const (
	KindChatOpened      = "chat.opened"
	KindChatMessages    = "chat.messages"
	KindChatSendFailed  = "chat.send_failed"
	KindContactsUpdated = "contacts.updated"
	KindUnreadUpdated   = "contacts.unread"
	KindSlotsUpdated    = "slots.updated"
	KindStatusChanged   = "session.status_changed"
)

// Event represents a domain event published on the bus.
type Event struct {
	Kind      string
	Timestamp time.Time
	Payload   any
}
