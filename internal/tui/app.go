package tui

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"go.uber.org/zap"

	"tutordesk/internal/api"
	"tutordesk/internal/auth"
	"tutordesk/internal/bus"
	"tutordesk/internal/calendar"
	"tutordesk/internal/model"
	"tutordesk/internal/status"
	"tutordesk/internal/tui/keys"
	appmodel "tutordesk/internal/tui/model"
	"tutordesk/internal/tui/ui"
	"tutordesk/internal/tui/views"
)

// App is the main TUI application shell: a K9s-style chrome (logo, account
// info, menu hints, breadcrumbs, flash bar) around a page stack.
type App struct {
	app      *tview.Application
	theme    *ui.Theme
	pages    *ui.Pages
	crumbs   *ui.Crumbs
	menu     *ui.Menu
	logo     *ui.Logo
	info     *ui.AccountInfo
	flash    *ui.FlashModel
	flashBar *ui.FlashBar
	prompt   *ui.Prompt
	registry *keys.Registry
	root     *tview.Flex

	contactList *views.ContactList
	thread      *views.MessageThread
	tutorList   *views.TutorList
	calendarV   *views.CalendarView
	bookingsV   *views.BookingsView
	slotForm    *views.SlotForm
	loginView   *views.LoginView
	helpView    *views.HelpView

	components map[string]ui.Component

	vm      *appmodel.ViewModel
	client  *api.Client
	session *auth.Session
	bus     *bus.Bus
	machine *status.Machine
	logger  *zap.Logger
	account string

	ctx       context.Context
	cancel    context.CancelFunc
	started   bool
	startedAt time.Time
}

// NewApp creates the TUI application.
func NewApp(client *api.Client, session *auth.Session, vm *appmodel.ViewModel, b *bus.Bus, machine *status.Machine, accountName string, logger *zap.Logger) *App {
	ctx, cancel := context.WithCancel(context.Background())
	theme := ui.DefaultTheme()

	a := &App{
		app:      tview.NewApplication(),
		theme:    theme,
		pages:    ui.NewPages(),
		crumbs:   ui.NewCrumbs(theme),
		menu:     ui.NewMenu(theme),
		logo:     ui.NewLogo(theme),
		info:     ui.NewAccountInfo(theme),
		flash:    ui.NewFlashModel(),
		flashBar: ui.NewFlashBar(theme),
		prompt:   ui.NewPrompt(theme),
		registry: keys.NewRegistry(),

		contactList: views.NewContactList(theme),
		thread:      views.NewMessageThread(theme),
		tutorList:   views.NewTutorList(theme),
		calendarV:   views.NewCalendarView(theme),
		bookingsV:   views.NewBookingsView(theme),
		slotForm:    views.NewSlotForm(theme),
		loginView:   views.NewLoginView(theme),
		helpView:    views.NewHelpView(theme),

		vm:        vm,
		client:    client,
		session:   session,
		bus:       b,
		machine:   machine,
		logger:    logger,
		account:   accountName,
		ctx:       ctx,
		cancel:    cancel,
		startedAt: time.Now(),
	}

	a.components = map[string]ui.Component{
		"contacts": a.contactList,
		"chat":     a.thread,
		"tutors":   a.tutorList,
		"calendar": a.calendarV,
		"bookings": a.bookingsV,
		"slotform": a.slotForm,
		"login":    a.loginView,
		"help":     a.helpView,
	}

	a.setupBindings()
	a.setupCallbacks()
	a.setupLayout()

	return a
}

func (a *App) setupBindings() {
	a.registry.AddGlobal(&keys.Action{
		Rune: 'q', Key: tcell.KeyRune,
		Description: "q:quit", Visible: true,
		Handler: func() { a.back(true) },
	})
	a.registry.AddGlobal(&keys.Action{
		Rune: '?', Key: tcell.KeyRune,
		Description: "?:help", Visible: true,
		Handler: func() {
			if a.pages.Current() != "help" {
				a.pages.Push("help")
			}
		},
	})

	a.registry.AddView("contacts", &keys.Action{
		Rune: 't', Key: tcell.KeyRune,
		Description: "t:tutors", Visible: true,
		Handler: func() { a.showTutors() },
	})
	a.registry.AddView("contacts", &keys.Action{
		Rune: 'b', Key: tcell.KeyRune,
		Description: "b:bookings", Visible: true,
		Handler: func() { a.showBookings() },
	})
	a.registry.AddView("contacts", &keys.Action{
		Rune: 'c', Key: tcell.KeyRune,
		Description: "c:calendar", Visible: true,
		Handler: func() { a.showOwnCalendar() },
	})
	a.registry.AddView("contacts", &keys.Action{
		Rune: '0', Key: tcell.KeyRune,
		Description: "0:all", Visible: false,
		Handler: func() { a.contactList.ClearFilter() },
	})

	a.registry.AddView("calendar", &keys.Action{
		Rune: '[', Key: tcell.KeyRune,
		Description: "[:prev", Visible: true,
		Handler: func() { a.shiftMonth(-1) },
	})
	a.registry.AddView("calendar", &keys.Action{
		Rune: ']', Key: tcell.KeyRune,
		Description: "]:next", Visible: true,
		Handler: func() { a.shiftMonth(1) },
	})
	a.registry.AddView("calendar", &keys.Action{
		Rune: 'a', Key: tcell.KeyRune,
		Description: "a:add slot", Visible: true,
		Handler: func() { a.showSlotForm() },
	})

	a.registry.AddView("bookings", &keys.Action{
		Rune: 'p', Key: tcell.KeyRune,
		Description: "p:pay", Visible: true,
		Handler: func() { a.paySelected() },
	})
}

func (a *App) setupCallbacks() {
	a.contactList.SetSelectedFunc(func(row, col int) {
		if id := a.contactList.SelectedContactID(); id != 0 {
			a.openContact(id)
		}
	})

	a.tutorList.SetSelectedFunc(func(row, col int) {
		if id := a.tutorList.SelectedTutor(); id != 0 {
			a.showTutorCalendar(id)
		}
	})

	a.thread.SetOnSend(func(text string) { a.sendMessage(text) })

	a.calendarV.SetOnSlot(func(slot model.TimeSlot) { a.actOnSlot(slot) })

	a.slotForm.SetOnSubmit(func(date, start, end string) {
		go func() {
			if _, err := a.vm.Slots.Create(a.ctx, date, start, end); err != nil {
				a.flash.Err(err)
				a.redraw()
				return
			}
			a.flash.Info("Slot created")
			a.app.QueueUpdateDraw(func() {
				a.pages.Pop()
				a.calendarV.Update(a.vm.CalendarMonth())
			})
		}()
	})
	a.slotForm.SetOnCancel(func() { a.pages.Pop() })

	a.loginView.SetOnLogin(func(email, password string) {
		a.loginView.ShowMessage("Signing in...")
		go func() {
			if _, err := a.session.Login(a.ctx, a.client, email, password); err != nil {
				a.app.QueueUpdateDraw(func() {
					a.loginView.ShowMessage("Login failed: " + err.Error())
					a.loginView.ClearPassword()
				})
				return
			}
			a.app.QueueUpdateDraw(func() { a.enterMain() })
		}()
	})

	a.prompt.SetOnSubmit(func(mode ui.PromptMode, text string) {
		a.hidePrompt()
		switch mode {
		case ui.PromptCommand:
			a.runCommand(ParseCommand(text))
		case ui.PromptFilter:
			a.contactList.SetFilter(text)
		}
	})
	a.prompt.SetOnCancel(func() { a.hidePrompt() })

	a.pages.SetOnChange(func(stack []string) {
		a.crumbs.Update(stack)
		current := a.pages.Current()
		if c, ok := a.components[current]; ok {
			a.menu.Update(c.Hints())
		}
		a.app.SetFocus(a.focusFor(current))
	})
}

func (a *App) setupLayout() {
	for name, c := range a.components {
		if p, ok := c.(tview.Primitive); ok {
			a.pages.AddPage(name, p, true, false)
		}
	}

	header := tview.NewFlex().
		AddItem(a.logo, 14, 0, false).
		AddItem(a.info, 30, 0, false).
		AddItem(a.menu, 0, 1, false)

	a.root = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(header, 6, 0, false).
		AddItem(a.crumbs, 1, 0, false).
		AddItem(a.prompt, 0, 0, false).
		AddItem(a.pages, 0, 1, true).
		AddItem(a.flashBar, 1, 0, false)

	a.app.SetRoot(a.root, true)
	a.app.SetInputCapture(a.handleKey)
}

func (a *App) handleKey(event *tcell.EventKey) *tcell.EventKey {
	current := a.pages.Current()

	if event.Key() == tcell.KeyEscape {
		if a.promptActive() {
			a.hidePrompt()
			return nil
		}
		if current == "chat" && a.app.GetFocus() == a.thread.Composer() {
			a.app.SetFocus(a.thread.Messages())
			return nil
		}
		a.back(false)
		return nil
	}

	if event.Key() == tcell.KeyTab && current == "calendar" {
		if a.app.GetFocus() == a.calendarV.Grid() {
			a.app.SetFocus(a.calendarV.SlotTable())
		} else {
			a.app.SetFocus(a.calendarV.Grid())
		}
		return nil
	}

	// Text inputs own their keys.
	switch a.app.GetFocus().(type) {
	case *tview.InputField, *tview.Button:
		return event
	}

	if event.Key() == tcell.KeyRune {
		switch event.Rune() {
		case ':':
			a.showPrompt(ui.PromptCommand)
			return nil
		case '/':
			if current == "contacts" {
				a.showPrompt(ui.PromptFilter)
				return nil
			}
		case 'i':
			if current == "chat" {
				a.app.SetFocus(a.thread.Composer())
				return nil
			}
		case 'r':
			if current == "bookings" {
				a.showPrompt(ui.PromptCommand)
				return nil
			}
		}
		if current == "contacts" && event.Rune() >= '1' && event.Rune() <= '9' {
			if id := a.contactList.ContactByIndex(int(event.Rune() - '0')); id != 0 {
				a.openContact(id)
			}
			return nil
		}
	}

	if a.registry.HandleEvent(current, event) {
		return nil
	}
	return event
}

// back pops one page; at the stack bottom it quits only when hard is set.
func (a *App) back(hard bool) {
	if a.pages.Depth() > 1 {
		a.pages.Pop()
		return
	}
	if hard && a.pages.Current() != "login" {
		a.Stop()
	}
}

func (a *App) promptActive() bool {
	return a.app.GetFocus() == a.prompt.InputField
}

func (a *App) showPrompt(mode ui.PromptMode) {
	a.prompt.Activate(mode)
	a.root.ResizeItem(a.prompt, 3, 0)
	a.app.SetFocus(a.prompt)
}

func (a *App) hidePrompt() {
	a.root.ResizeItem(a.prompt, 0, 0)
	a.app.SetFocus(a.focusFor(a.pages.Current()))
}

func (a *App) focusFor(page string) tview.Primitive {
	switch page {
	case "contacts":
		return a.contactList
	case "chat":
		return a.thread.Messages()
	case "tutors":
		return a.tutorList
	case "calendar":
		return a.calendarV.Grid()
	case "bookings":
		return a.bookingsV
	case "slotform":
		return a.slotForm
	case "login":
		return a.loginView.Form()
	case "help":
		return a.helpView
	default:
		return a.pages
	}
}

func (a *App) runCommand(cmd Command) {
	switch cmd.Name {
	case "quit", "q":
		a.Stop()
	case "help", "h":
		a.pages.Push("help")
	case "logout":
		a.logout()
	case "tutors":
		a.showTutors()
	case "calendar":
		a.showOwnCalendar()
	case "bookings":
		a.showBookings()
	case "export":
		a.exportCalendar(cmd.Args)
	case "rate":
		a.rateSelected(cmd.Args)
	case "checkout":
		a.checkoutSelected()
	default:
		a.flash.Warn("Unknown command: " + cmd.Name)
		a.redraw()
	}
}

// enterMain is called once credentials are in place: it scopes the slot
// manager, starts the pollers, and lands on the contact list.
func (a *App) enterMain() {
	user := a.session.User()
	if user != nil {
		a.thread.SetUserID(user.ID)
		if user.Role == model.RoleTutor {
			a.vm.Slots.SetOwner(user.ID)
		}
	}

	if !a.started {
		a.started = true
		a.vm.Engine.Start(a.ctx)
		a.vm.Contacts.Start(a.ctx)
		a.vm.Unread.Start(a.ctx)
	}
	if a.machine != nil {
		_ = a.machine.Transition(status.Online)
	}

	a.pages.Reset("contacts")
	a.updateInfo()
}

func (a *App) logout() {
	go func() {
		if err := a.session.Logout(a.ctx, a.client); err != nil {
			a.flash.Warn("Logout: " + err.Error())
		}
		a.vm.Engine.Close()
		if a.machine != nil {
			_ = a.machine.Transition(status.AuthRequired)
		}
		a.app.QueueUpdateDraw(func() {
			a.pages.Reset("login")
			a.loginView.ShowMessage("Signed out")
		})
	}()
}

func (a *App) openContact(id int64) {
	contact, ok := a.vm.Contacts.FindByID(id)
	if !ok {
		return
	}
	a.vm.SelectContact(id)
	a.thread.SetContact(id, contact.Name)
	a.thread.Update(nil)
	a.pages.Push("chat")

	go func() {
		if err := a.vm.Engine.Open(a.ctx, id); err != nil {
			a.flash.Err(err)
			a.redraw()
			return
		}
		a.app.QueueUpdateDraw(func() {
			a.thread.Update(a.vm.Engine.Messages())
		})
	}()
}

func (a *App) sendMessage(text string) {
	go func() {
		if _, err := a.vm.Engine.Send(a.ctx, text); err != nil {
			a.flash.Err(err)
			a.app.QueueUpdateDraw(func() {
				// Put the draft back exactly as typed so the user can retry.
				a.thread.RestoreDraft(text)
				a.flashBar.Update(a.flash.GetMessage())
			})
			return
		}
		a.app.QueueUpdateDraw(func() {
			a.thread.Update(a.vm.Engine.Messages())
		})
	}()
}

func (a *App) showTutors() {
	go func() {
		if err := a.vm.LoadTutors(a.ctx, a.client); err != nil {
			a.flash.Err(err)
			a.redraw()
			return
		}
		a.app.QueueUpdateDraw(func() {
			a.tutorList.Update(a.vm.Tutors())
			if a.pages.Current() != "tutors" {
				a.pages.Push("tutors")
			}
		})
	}()
}

func (a *App) showTutorCalendar(tutorID int64) {
	a.vm.SelectTutor(tutorID)
	a.vm.Slots.SetOwner(tutorID)
	a.refreshCalendar(true)
}

func (a *App) showOwnCalendar() {
	user := a.session.User()
	if user == nil {
		return
	}
	if user.Role == model.RoleTutor {
		a.vm.Slots.SetOwner(user.ID)
	} else {
		a.vm.Slots.SetOwner(0)
	}
	a.refreshCalendar(true)
}

func (a *App) refreshCalendar(push bool) {
	go func() {
		if err := a.vm.Slots.Refresh(a.ctx); err != nil {
			a.flash.Err(err)
			a.redraw()
			return
		}
		a.app.QueueUpdateDraw(func() {
			a.calendarV.Update(a.vm.CalendarMonth())
			if push && a.pages.Current() != "calendar" {
				a.pages.Push("calendar")
			}
		})
	}()
}

func (a *App) shiftMonth(dir int) {
	if dir < 0 {
		a.vm.PrevMonth()
	} else {
		a.vm.NextMonth()
	}
	a.calendarV.Update(a.vm.CalendarMonth())
}

// actOnSlot books a slot for students and toggles availability for tutors.
func (a *App) actOnSlot(slot model.TimeSlot) {
	user := a.session.User()
	if user == nil {
		return
	}

	if user.Role == model.RoleTutor {
		go func() {
			if err := a.vm.Slots.Toggle(a.ctx, slot.ID, !slot.Available); err != nil {
				a.flash.Err(err)
			} else {
				a.flash.Info("Slot updated")
			}
			a.app.QueueUpdateDraw(func() {
				a.calendarV.Update(a.vm.CalendarMonth())
				a.flashBar.Update(a.flash.GetMessage())
			})
		}()
		return
	}

	if !slot.Available {
		a.flash.Warn("Slot is already booked")
		a.redraw()
		return
	}
	go func() {
		if _, err := a.vm.Bookings.Book(a.ctx, slot.ID); err != nil {
			a.flash.Err(err)
		} else {
			a.flash.Info("Booked. Pay from the bookings view.")
		}
		a.app.QueueUpdateDraw(func() {
			a.calendarV.Update(a.vm.CalendarMonth())
			a.flashBar.Update(a.flash.GetMessage())
		})
	}()
}

func (a *App) showSlotForm() {
	user := a.session.User()
	if user == nil || user.Role != model.RoleTutor {
		a.flash.Warn("Only tutors can add slots")
		a.redraw()
		return
	}
	date := ""
	if day, ok := a.calendarV.SelectedDay(); ok {
		date = day.Date.Format(calendar.DateFormat)
	}
	a.slotForm.Reset(date)
	a.pages.Push("slotform")
}

func (a *App) showBookings() {
	go func() {
		if err := a.vm.Bookings.Refresh(a.ctx); err != nil {
			a.flash.Err(err)
			a.redraw()
			return
		}
		a.app.QueueUpdateDraw(func() {
			a.bookingsV.Update(a.vm.Bookings.Bookings())
			if a.pages.Current() != "bookings" {
				a.pages.Push("bookings")
			}
		})
	}()
}

func (a *App) paySelected() {
	b, ok := a.bookingsV.SelectedBooking()
	if !ok {
		return
	}
	if b.Paid {
		a.flash.Info("Already paid")
		a.redraw()
		return
	}
	go func() {
		if err := a.vm.Bookings.Pay(a.ctx, b.ID); err != nil {
			a.flash.Err(err)
		} else {
			a.flash.Info("Payment confirmed")
		}
		a.app.QueueUpdateDraw(func() {
			a.bookingsV.Update(a.vm.Bookings.Bookings())
			a.flashBar.Update(a.flash.GetMessage())
		})
	}()
}

func (a *App) rateSelected(arg string) {
	b, ok := a.bookingsV.SelectedBooking()
	if !ok {
		a.flash.Warn("Select a booking first")
		a.redraw()
		return
	}
	score, err := strconv.Atoi(arg)
	if err != nil {
		a.flash.Warn("Usage: rate <1-5>")
		a.redraw()
		return
	}
	go func() {
		if err := a.vm.Bookings.Rate(a.ctx, b.ID, score); err != nil {
			a.flash.Err(err)
		} else {
			a.flash.Info(fmt.Sprintf("Rated %d/5", score))
		}
		a.redraw()
	}()
}

func (a *App) checkoutSelected() {
	b, ok := a.bookingsV.SelectedBooking()
	if !ok {
		a.flash.Warn("Select a booking first")
		a.redraw()
		return
	}
	go func() {
		url, err := a.vm.Bookings.Checkout(a.ctx, b.ID, "", "")
		if err != nil {
			a.flash.Err(err)
		} else {
			a.flash.Set("Checkout: "+url, 30*time.Second)
		}
		a.redraw()
	}()
}

func (a *App) exportCalendar(path string) {
	if path == "" {
		a.flash.Warn("Usage: export <file.png>")
		a.redraw()
		return
	}
	go func() {
		data, err := calendar.RenderPNG(a.vm.CalendarMonth())
		if err == nil {
			err = os.WriteFile(path, data, 0o644)
		}
		if err != nil {
			a.flash.Err(err)
		} else {
			a.flash.Info("Wrote " + path)
		}
		a.redraw()
	}()
}

// redraw schedules a repaint of the chrome from outside the event loop.
func (a *App) redraw() {
	a.app.QueueUpdateDraw(func() {
		a.flashBar.Update(a.flash.GetMessage())
	})
}

func (a *App) updateInfo() {
	data := &ui.AccountData{
		Account:  a.account,
		Unread:   a.vm.Unread.Count(),
		ChatSync: a.vm.Engine.State().String(),
		Uptime:   time.Since(a.startedAt),
	}
	if user := a.session.User(); user != nil {
		data.Email = user.Email
		data.Role = string(user.Role)
	}
	a.info.Update(data)
}

// Run starts the TUI application and blocks until it exits.
func (a *App) Run() error {
	if a.session.Authenticated() {
		a.enterMain()
	} else {
		a.pages.Reset("login")
	}

	go a.watchBus()
	go a.tick()

	return a.app.Run()
}

// watchBus repaints the affected widgets when the sync layer publishes.
func (a *App) watchBus() {
	ch, unsub := a.bus.Subscribe("", 64)
	defer unsub()

	for {
		select {
		case evt := <-ch:
			a.app.QueueUpdateDraw(func() { a.handleEvent(evt) })
		case <-a.ctx.Done():
			return
		}
	}
}

func (a *App) handleEvent(evt bus.Event) {
	switch evt.Kind {
	case bus.KindChatMessages:
		if a.pages.Current() == "chat" {
			a.thread.Update(a.vm.Engine.Messages())
		}
	case bus.KindContactsUpdated:
		a.contactList.Update(a.vm.Contacts.Contacts())
	case bus.KindUnreadUpdated:
		a.updateInfo()
	case bus.KindSlotsUpdated:
		if a.pages.Current() == "calendar" {
			a.calendarV.Update(a.vm.CalendarMonth())
		}
	case bus.KindStatusChanged:
		if change, ok := evt.Payload.(status.StatusChange); ok {
			switch change.To {
			case status.Degraded:
				a.flash.Warn("Connection lost, retrying...")
			case status.Online:
				if change.From == status.Degraded {
					a.flash.Info("Reconnected")
				}
			case status.AuthRequired:
				if a.pages.Current() != "login" {
					a.pages.Reset("login")
					a.loginView.ShowMessage("Session expired, sign in again")
				}
			}
			a.flashBar.Update(a.flash.GetMessage())
		}
	}
}

// tick refreshes the clock, uptime, and flash expiry once a second.
func (a *App) tick() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			a.app.QueueUpdateDraw(func() {
				a.updateInfo()
				a.flashBar.Update(a.flash.GetMessage())
			})
		case <-a.ctx.Done():
			return
		}
	}
}

// Stop gracefully shuts down the TUI.
func (a *App) Stop() {
	a.cancel()
	a.app.Stop()
}
