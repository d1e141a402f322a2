package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/term"

	"tutordesk/internal/account"
	"tutordesk/internal/api"
	"tutordesk/internal/auth"
	"tutordesk/internal/calendar"
	"tutordesk/internal/config"
	"tutordesk/internal/model"
	"tutordesk/internal/slots"
)

func main() {
	accountFlag := flag.String("account", "", "account name (overrides config default)")
	jsonFlag := flag.Bool("json", false, "output in JSON format")
	flag.Parse()

	_ = godotenv.Load()

	accountName := account.Resolve(*accountFlag)
	if err := account.ValidateName(accountName); err != nil {
		fatal(err)
	}

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load(account.ConfigPath())
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		fatal(err)
	}
	sess := auth.Load(accountName)
	c := api.New(cfg.BaseURL(), sess, zap.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	switch args[0] {
	case "login":
		cmdLogin(ctx, c, sess, args[1:])
	case "register":
		cmdRegister(ctx, c, sess, args[1:])
	case "logout":
		cmdLogout(ctx, c, sess)
	case "whoami":
		cmdWhoami(ctx, c, *jsonFlag)
	case "tutors":
		cmdTutors(ctx, c, *jsonFlag)
	case "contacts":
		cmdContacts(ctx, c, *jsonFlag)
	case "messages":
		cmdMessages(ctx, c, args[1:], *jsonFlag)
	case "send":
		cmdSend(ctx, c, args[1:])
	case "slots":
		cmdSlots(ctx, c, args[1:], *jsonFlag)
	case "slot-create":
		cmdSlotCreate(ctx, c, args[1:])
	case "slot-toggle":
		cmdSlotToggle(ctx, c, args[1:])
	case "slot-delete":
		cmdSlotDelete(ctx, c, args[1:])
	case "book":
		cmdBook(ctx, c, args[1:])
	case "bookings":
		cmdBookings(ctx, c, *jsonFlag)
	case "pay":
		cmdPay(ctx, c, args[1:])
	case "checkout":
		cmdCheckout(ctx, c, args[1:])
	case "rate":
		cmdRate(ctx, c, args[1:])
	case "export-calendar":
		cmdExportCalendar(ctx, c, args[1:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", args[0])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "usage: tutorctl [--account <name>] [--json] <command>")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "commands:")
	fmt.Fprintln(os.Stderr, "  login <email>                         Sign in (password prompted)")
	fmt.Fprintln(os.Stderr, "  register <email> <name> <role>        Create an account (password prompted)")
	fmt.Fprintln(os.Stderr, "  logout                                Sign out and drop the stored token")
	fmt.Fprintln(os.Stderr, "  whoami                                Show the authenticated user")
	fmt.Fprintln(os.Stderr, "  tutors                                List tutors")
	fmt.Fprintln(os.Stderr, "  contacts                              List chat contacts")
	fmt.Fprintln(os.Stderr, "  messages <contact-id>                 Show a conversation")
	fmt.Fprintln(os.Stderr, "  send <contact-id> <text>              Send a message")
	fmt.Fprintln(os.Stderr, "  slots [tutor-id]                      List slots (own by default)")
	fmt.Fprintln(os.Stderr, "  slot-create <date> <start> <end>      Add an availability slot")
	fmt.Fprintln(os.Stderr, "  slot-toggle <slot-id> <on|off>        Set slot availability")
	fmt.Fprintln(os.Stderr, "  slot-delete <slot-id>                 Remove a slot")
	fmt.Fprintln(os.Stderr, "  book <slot-id>                        Book a slot")
	fmt.Fprintln(os.Stderr, "  bookings                              List bookings")
	fmt.Fprintln(os.Stderr, "  pay <booking-id>                      Pay a booking")
	fmt.Fprintln(os.Stderr, "  checkout <booking-id>                 Create a hosted checkout session")
	fmt.Fprintln(os.Stderr, "  rate <booking-id> <1-5>               Rate a completed booking")
	fmt.Fprintln(os.Stderr, "  export-calendar <year> <month> <file> [tutor-id]")
	fmt.Fprintln(os.Stderr, "                                        Render a month calendar to PNG")
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}

func argInt64(args []string, i int, usage string) int64 {
	if i >= len(args) {
		fmt.Fprintln(os.Stderr, "usage: tutorctl "+usage)
		os.Exit(1)
	}
	n, err := strconv.ParseInt(args[i], 10, 64)
	if err != nil {
		fatal(fmt.Errorf("%q is not a number", args[i]))
	}
	return n
}

func cmdLogin(ctx context.Context, c *api.Client, sess *auth.Session, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "usage: tutorctl login <email>")
		os.Exit(1)
	}
	fmt.Fprint(os.Stderr, "Password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		fatal(err)
	}

	user, err := sess.Login(ctx, c, args[0], string(password))
	if err != nil {
		fatal(err)
	}
	fmt.Printf("Signed in as %s (%s)\n", user.Email, user.Role)
}

func cmdRegister(ctx context.Context, c *api.Client, sess *auth.Session, args []string) {
	if len(args) < 3 {
		fmt.Fprintln(os.Stderr, "usage: tutorctl register <email> <name> <student|tutor>")
		os.Exit(1)
	}
	role := args[2]
	if role != string(model.RoleStudent) && role != string(model.RoleTutor) {
		fatal(fmt.Errorf("role must be %q or %q", model.RoleStudent, model.RoleTutor))
	}
	fmt.Fprint(os.Stderr, "Password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		fatal(err)
	}

	user, err := sess.Register(ctx, c, api.RegisterRequest{
		Email:     args[0],
		Password:  string(password),
		FirstName: args[1],
		Role:      role,
	})
	if err != nil {
		fatal(err)
	}
	fmt.Printf("Registered %s as %s.\n", user.Email, user.Role)
}

func cmdLogout(ctx context.Context, c *api.Client, sess *auth.Session) {
	if err := sess.Logout(ctx, c); err != nil {
		fatal(err)
	}
	fmt.Println("Signed out.")
}

func cmdWhoami(ctx context.Context, c *api.Client, jsonOut bool) {
	user, err := c.GetUser(ctx)
	if err != nil {
		fatal(err)
	}
	if jsonOut {
		outputJSON(user)
		return
	}
	fmt.Printf("ID:    %d\n", user.ID)
	fmt.Printf("Email: %s\n", user.Email)
	fmt.Printf("Name:  %s\n", user.FirstName)
	fmt.Printf("Role:  %s\n", user.Role)
}

func cmdTutors(ctx context.Context, c *api.Client, jsonOut bool) {
	tutors, err := c.ListTutors(ctx)
	if err != nil {
		fatal(err)
	}
	if jsonOut {
		outputJSON(tutors)
		return
	}
	for _, t := range tutors {
		fmt.Printf("%-4d %-24s %-16s $%.0f/h %.1f (%d sessions)\n",
			t.ID, t.Name, t.Subject, t.Rate, t.Rating, t.Sessions)
	}
}

func cmdContacts(ctx context.Context, c *api.Client, jsonOut bool) {
	contacts, err := c.ListContacts(ctx)
	if err != nil {
		fatal(err)
	}
	if jsonOut {
		outputJSON(contacts)
		return
	}
	for _, ct := range contacts {
		badge := ""
		if ct.Unread > 0 {
			badge = fmt.Sprintf(" (%d unread)", ct.Unread)
		}
		fmt.Printf("%-4d %-24s %s%s\n", ct.ID, ct.Name, ct.LastMessage, badge)
	}
}

func cmdMessages(ctx context.Context, c *api.Client, args []string, jsonOut bool) {
	contactID := argInt64(args, 0, "messages <contact-id>")
	msgs, err := c.ListMessages(ctx, contactID)
	if err != nil {
		fatal(err)
	}
	if jsonOut {
		outputJSON(msgs)
		return
	}
	for _, m := range msgs {
		fmt.Printf("[%d] %s: %s\n", m.ID, m.Timestamp, m.Text)
	}
}

func cmdSend(ctx context.Context, c *api.Client, args []string) {
	contactID := argInt64(args, 0, "send <contact-id> <text>")
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: tutorctl send <contact-id> <text>")
		os.Exit(1)
	}
	msg, err := c.SendMessage(ctx, contactID, strings.Join(args[1:], " "))
	if err != nil {
		fatal(err)
	}
	fmt.Printf("Sent message %d.\n", msg.ID)
}

func cmdSlots(ctx context.Context, c *api.Client, args []string, jsonOut bool) {
	var tutorID int64
	if len(args) > 0 {
		tutorID = argInt64(args, 0, "slots [tutor-id]")
	}
	slots, err := c.ListSlots(ctx, tutorID)
	if err != nil {
		fatal(err)
	}
	if jsonOut {
		outputJSON(slots)
		return
	}
	for _, s := range slots {
		state := "booked"
		if s.Available {
			state = "open"
		}
		fmt.Printf("%-4d %s %s-%s %s\n", s.ID, s.Date, s.StartTime, s.EndTime, state)
	}
}

func cmdSlotCreate(ctx context.Context, c *api.Client, args []string) {
	if len(args) < 3 {
		fmt.Fprintln(os.Stderr, "usage: tutorctl slot-create <date> <start> <end>")
		os.Exit(1)
	}
	// Validation happens client-side; a bad interval never leaves the machine.
	created, err := slots.NewManager(c, 0, nil, nil).Create(ctx, args[0], args[1], args[2])
	if err != nil {
		fatal(err)
	}
	for _, s := range created {
		fmt.Printf("Created slot %d: %s %s-%s\n", s.ID, s.Date, s.StartTime, s.EndTime)
	}
}

func cmdSlotToggle(ctx context.Context, c *api.Client, args []string) {
	slotID := argInt64(args, 0, "slot-toggle <slot-id> <on|off>")
	if len(args) < 2 || (args[1] != "on" && args[1] != "off") {
		fmt.Fprintln(os.Stderr, "usage: tutorctl slot-toggle <slot-id> <on|off>")
		os.Exit(1)
	}
	slot, err := c.UpdateSlot(ctx, slotID, args[1] == "on")
	if err != nil {
		fatal(err)
	}
	state := "booked"
	if slot.Available {
		state = "open"
	}
	fmt.Printf("Slot %d is now %s.\n", slot.ID, state)
}

func cmdSlotDelete(ctx context.Context, c *api.Client, args []string) {
	slotID := argInt64(args, 0, "slot-delete <slot-id>")
	if err := c.DeleteSlot(ctx, slotID); err != nil {
		fatal(err)
	}
	fmt.Printf("Deleted slot %d.\n", slotID)
}

func cmdBook(ctx context.Context, c *api.Client, args []string) {
	slotID := argInt64(args, 0, "book <slot-id>")
	b, err := c.CreateBooking(ctx, slotID)
	if err != nil {
		fatal(err)
	}
	fmt.Printf("Booked. Booking %d is unpaid; run: tutorctl pay %d\n", b.ID, b.ID)
}

func cmdBookings(ctx context.Context, c *api.Client, jsonOut bool) {
	bookings, err := c.ListBookings(ctx)
	if err != nil {
		fatal(err)
	}
	if jsonOut {
		outputJSON(bookings)
		return
	}
	for _, b := range bookings {
		paid := "unpaid"
		if b.Paid {
			paid = "paid"
		}
		fmt.Printf("%-4d %-20s %s %s $%.2f %s %s\n",
			b.ID, b.TutorName, b.Date, b.Time, b.Amount, paid, b.Status)
	}
}

func cmdPay(ctx context.Context, c *api.Client, args []string) {
	bookingID := argInt64(args, 0, "pay <booking-id>")
	if err := c.ProcessPayment(ctx, bookingID); err != nil {
		fatal(err)
	}
	fmt.Printf("Booking %d paid.\n", bookingID)
}

func cmdCheckout(ctx context.Context, c *api.Client, args []string) {
	bookingID := argInt64(args, 0, "checkout <booking-id>")
	session, err := c.CreateCheckoutSession(ctx, bookingID, "", "")
	if err != nil {
		fatal(err)
	}
	fmt.Println(session.CheckoutURL)
}

func cmdRate(ctx context.Context, c *api.Client, args []string) {
	bookingID := argInt64(args, 0, "rate <booking-id> <1-5>")
	score := int(argInt64(args, 1, "rate <booking-id> <1-5>"))
	if err := c.AddRating(ctx, bookingID, score); err != nil {
		fatal(err)
	}
	fmt.Printf("Rated booking %d: %d/5.\n", bookingID, score)
}

func cmdExportCalendar(ctx context.Context, c *api.Client, args []string) {
	if len(args) < 3 {
		fmt.Fprintln(os.Stderr, "usage: tutorctl export-calendar <year> <month> <file> [tutor-id]")
		os.Exit(1)
	}
	year := int(argInt64(args, 0, "export-calendar <year> <month> <file> [tutor-id]"))
	month := int(argInt64(args, 1, "export-calendar <year> <month> <file> [tutor-id]"))
	if month < 1 || month > 12 {
		fatal(fmt.Errorf("month %d out of range", month))
	}
	var tutorID int64
	if len(args) > 3 {
		tutorID = argInt64(args, 3, "export-calendar <year> <month> <file> [tutor-id]")
	}

	slots, err := c.ListSlots(ctx, tutorID)
	if err != nil {
		fatal(err)
	}
	m := calendar.BuildMonth(slots, year, time.Month(month))
	data, err := calendar.RenderPNG(m)
	if err != nil {
		fatal(err)
	}
	if err := os.WriteFile(args[2], data, 0o644); err != nil {
		fatal(err)
	}
	fmt.Printf("Wrote %s.\n", args[2])
}

func outputJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "json encode error: %v\n", err)
	}
}
