// Command ticketctl is the terminal front-end for the Ticketly
// marketplace: browse events, book tickets, download the QR ticket file,
// and run the admin/organizer management operations.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"ticketly-gateway/internal/api"
	"ticketly-gateway/internal/auth"
	"ticketly-gateway/internal/booking"
	"ticketly-gateway/internal/browser"
	"ticketly-gateway/internal/collection"
	"ticketly-gateway/internal/config"
	"ticketly-gateway/internal/dashboard"
	"ticketly-gateway/internal/models"
	"ticketly-gateway/internal/ticket"
)

const usageText = `ticketctl <command> [flags]

Commands:
  events list [--category C] [--location L] [--search S]
  events show <eventID>
  book <eventID> --name N --email E --phone P [--amount A]
  my-bookings
  download <bookingID> [--out ticket.pdf]
  login --email E --password P
  register --email E --password P [--name N]
  verify-wait
  logout
  admin <users|events|organizers> list
  admin <users|events|organizers> delete <id>
  organizer my-events
  organizer <publish|cancel> <eventID>
  organizer delete <eventID>
  dashboard
`

type app struct {
	cfg     *config.Config
	manager *auth.Manager
}

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		fmt.Print(usageText)
		os.Exit(2)
	}

	a := &app{cfg: config.Load()}
	if err := a.run(context.Background(), os.Args[1], os.Args[2:]); err != nil {
		color.Red("error: %v", err)
		os.Exit(1)
	}
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "events":
		return a.runEvents(ctx, args)
	case "book":
		return a.runBook(ctx, args)
	case "my-bookings":
		return a.runMyBookings(ctx)
	case "download":
		return a.runDownload(ctx, args)
	case "login":
		return a.runLogin(ctx, args)
	case "register":
		return a.runRegister(ctx, args)
	case "verify-wait":
		return a.runVerifyWait(ctx)
	case "logout":
		return a.runLogout(ctx)
	case "admin":
		return a.runAdmin(ctx, args)
	case "organizer":
		return a.runOrganizer(ctx, args)
	case "dashboard":
		return a.runDashboard(ctx)
	default:
		fmt.Print(usageText)
		return fmt.Errorf("unknown command %q", command)
	}
}

// anonymousClient talks to public endpoints only.
func (a *app) anonymousClient() *api.Client {
	return api.NewClient(a.cfg.Backend.BaseURL, &http.Client{Timeout: a.cfg.Backend.Timeout}, nil, nil)
}

// sessionManager restores the persisted session, building the provider
// on first use.
func (a *app) sessionManager(ctx context.Context) (*auth.Manager, error) {
	if a.manager != nil {
		return a.manager, nil
	}

	provider, err := auth.NewProvider(ctx, a.cfg.Auth.Issuer, a.cfg.Auth.ClientID, a.cfg.Auth.ClientSecret, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("identity provider unreachable: %w", err)
	}

	var cache auth.TokenCache
	if a.cfg.Redis.Addr != "" {
		if client, err := auth.InitializeTokenCache(a.cfg.Redis.Addr, nil); err == nil {
			cache = auth.NewRedisTokenCache(client)
		}
	}

	a.manager = auth.NewManager(provider, cache, nil)

	if refreshToken := loadSavedSession(); refreshToken != "" {
		if _, err := a.manager.Restore(ctx, refreshToken); err != nil {
			// Stale session file; continue signed out.
			_ = os.Remove(sessionPath())
		}
	}
	return a.manager, nil
}

// authedClient requires a signed-in session.
func (a *app) authedClient(ctx context.Context) (*api.Client, *auth.Manager, error) {
	manager, err := a.sessionManager(ctx)
	if err != nil {
		return nil, nil, err
	}
	if manager.Session() == nil {
		return nil, nil, errors.New("not signed in; run `ticketctl login` first")
	}
	client := api.NewClient(a.cfg.Backend.BaseURL, &http.Client{Timeout: a.cfg.Backend.Timeout}, manager, nil)
	return client, manager, nil
}

// ---- session file ----

func sessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".ticketly", "session.json")
}

func loadSavedSession() string {
	data, err := os.ReadFile(sessionPath())
	if err != nil {
		return ""
	}
	var saved struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.Unmarshal(data, &saved); err != nil {
		return ""
	}
	return saved.RefreshToken
}

func saveSession(refreshToken string) error {
	path := sessionPath()
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	data, _ := json.Marshal(map[string]string{"refresh_token": refreshToken})
	return os.WriteFile(path, data, 0600)
}

// ---- commands ----

func (a *app) runEvents(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.New("usage: events <list|show>")
	}

	switch args[0] {
	case "list":
		flags := pflag.NewFlagSet("events list", pflag.ExitOnError)
		category := flags.String("category", browser.AllCategories, "filter by category")
		location := flags.String("location", browser.AllLocations, "filter by location")
		search := flags.String("search", "", "free-text search")
		if err := flags.Parse(args[1:]); err != nil {
			return err
		}

		events, err := a.anonymousClient().ListEvents(ctx)
		if err != nil {
			return err
		}

		filter := browser.Filter{Category: *category, Location: *location, Search: *search}
		for _, event := range browser.Apply(events, filter) {
			printEvent(event)
		}
		return nil

	case "show":
		if len(args) < 2 {
			return errors.New("usage: events show <eventID>")
		}
		event, err := a.anonymousClient().GetEvent(ctx, args[1])
		if err != nil {
			return err
		}
		printEvent(*event)
		fmt.Printf("  date: %s at %s\n", booking.FormatDate(event.Date), booking.FormatTime(event.Time))
		fmt.Printf("  capacity: %d VIP + %d regular, %d sold\n", event.VIPTickets, event.RegularTickets, event.TicketsSold)
		return nil

	default:
		return fmt.Errorf("unknown events subcommand %q", args[0])
	}
}

func printEvent(event models.Event) {
	title := color.New(color.Bold).Sprint(event.Title)
	fmt.Printf("%s  %s\n", color.CyanString(event.ID), title)
	fmt.Printf("  %s | %s | %s | %s\n", event.Category, event.Location, event.Date, priceLabel(event.Price))
}

func priceLabel(price string) string {
	if price == "" {
		return "Free"
	}
	return price
}

func (a *app) runBook(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.New("usage: book <eventID> --name N --email E --phone P [--amount A]")
	}
	eventID := args[0]

	flags := pflag.NewFlagSet("book", pflag.ExitOnError)
	name := flags.String("name", "", "attendee name")
	email := flags.String("email", "", "attendee email")
	phone := flags.String("phone", "", "attendee phone number")
	amount := flags.String("amount", "", "amount to pay (defaults to the event price)")
	if err := flags.Parse(args[1:]); err != nil {
		return err
	}

	client, manager, err := a.authedClient(ctx)
	if err != nil {
		return err
	}

	creator := booking.NewCreator(client, manager, nil)
	draft, err := creator.Load(ctx, eventID)
	if err != nil {
		return err
	}

	form := booking.Form{Name: *name, Email: *email, PhoneNumber: *phone, Amount: *amount}
	if form.Name == "" {
		form.Name = draft.Name
	}
	if form.Email == "" {
		form.Email = draft.Email
	}
	if form.Amount == "" {
		form.Amount = fmt.Sprintf("%d", draft.Amount)
	}

	conf, err := creator.Submit(ctx, draft, form)
	if err != nil {
		return err
	}

	color.Green("Booking confirmed: %s", conf.Booking.ID)
	fmt.Printf("Ticket ID: %s\n", color.New(color.Bold).Sprint(conf.TicketID))
	fmt.Printf("Download it with: ticketctl download %s\n", conf.Booking.ID)
	return nil
}

func (a *app) runMyBookings(ctx context.Context) error {
	client, manager, err := a.authedClient(ctx)
	if err != nil {
		return err
	}

	list := booking.NewList(client, manager, nil)
	items, err := list.Fetch(ctx)
	if err != nil {
		return err
	}

	for _, item := range items {
		title := "(event unavailable)"
		if item.Booking.Event != nil {
			title = item.Booking.Event.Title
		}
		fmt.Printf("%s  %s\n", color.CyanString(item.Booking.ID), color.New(color.Bold).Sprint(title))
		fmt.Printf("  ticket %s | %s | %s\n", item.TicketID, item.DateLabel, item.TimeLabel)
	}
	return nil
}

func (a *app) runDownload(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.New("usage: download <bookingID> [--out ticket.pdf]")
	}
	bookingID := args[0]

	flags := pflag.NewFlagSet("download", pflag.ExitOnError)
	out := flags.String("out", "", "output file (defaults to <ticketID>.pdf)")
	if err := flags.Parse(args[1:]); err != nil {
		return err
	}

	client, manager, err := a.authedClient(ctx)
	if err != nil {
		return err
	}

	list := booking.NewList(client, manager, nil)
	items, err := list.Fetch(ctx)
	if err != nil {
		return err
	}

	for _, item := range items {
		if item.Booking.ID != bookingID {
			continue
		}
		path := *out
		if path == "" {
			path = item.TicketID + ".pdf"
		}
		renderer := ticket.NewRenderer()
		if err := renderer.WriteFile(item.Payload(time.Now()), path); err != nil {
			return err
		}
		color.Green("Ticket written to %s", path)
		return nil
	}
	return fmt.Errorf("booking %s not found", bookingID)
}

func (a *app) runLogin(ctx context.Context, args []string) error {
	flags := pflag.NewFlagSet("login", pflag.ExitOnError)
	email := flags.String("email", "", "account email")
	password := flags.String("password", "", "account password")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *email == "" || *password == "" {
		return errors.New("both --email and --password are required")
	}

	manager, err := a.sessionManager(ctx)
	if err != nil {
		return err
	}

	session, err := manager.SignIn(ctx, *email, *password)
	if err != nil {
		return err
	}
	if err := saveSession(manager.RefreshToken()); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}

	color.Green("Signed in as %s", session.Email)
	if !session.EmailVerified {
		color.Yellow("Email not verified yet; run `ticketctl verify-wait`")
	}
	return nil
}

func (a *app) runRegister(ctx context.Context, args []string) error {
	flags := pflag.NewFlagSet("register", pflag.ExitOnError)
	email := flags.String("email", "", "account email")
	password := flags.String("password", "", "account password")
	name := flags.String("name", "", "display name")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *email == "" || *password == "" {
		return errors.New("both --email and --password are required")
	}

	provider, err := auth.NewProvider(ctx, a.cfg.Auth.Issuer, a.cfg.Auth.ClientID, a.cfg.Auth.ClientSecret, nil, nil)
	if err != nil {
		return err
	}
	if err := provider.Register(ctx, *email, *password, *name); err != nil {
		return err
	}
	color.Green("Account created; check %s for the verification email", *email)
	return nil
}

func (a *app) runVerifyWait(ctx context.Context) error {
	_, manager, err := a.authedClient(ctx)
	if err != nil {
		return err
	}

	fmt.Println("Waiting for email verification (Ctrl-C to stop)...")
	if err := manager.WaitForVerification(ctx, 5*time.Second); err != nil {
		return err
	}
	color.Green("Email verified")
	return nil
}

func (a *app) runLogout(ctx context.Context) error {
	manager, err := a.sessionManager(ctx)
	if err != nil {
		return err
	}
	if err := manager.SignOut(ctx); err != nil {
		color.Yellow("Provider sign-out failed: %v", err)
	}
	_ = os.Remove(sessionPath())
	color.Green("Signed out")
	return nil
}

// runAdmin drives the management lists through the optimistic collection
// manager, so a failed delete restores the rows it removed.
func (a *app) runAdmin(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.New("usage: admin <users|events|organizers> <list|delete> [id]")
	}
	resource, action := args[0], args[1]

	client, _, err := a.authedClient(ctx)
	if err != nil {
		return err
	}

	switch resource {
	case "users":
		manager := collection.NewManager(client.ListUsers, func(u models.User) string { return u.ID }, nil)
		return runListAction(ctx, manager, action, args[2:], client.DeleteUser, func(u models.User) string {
			return fmt.Sprintf("%s  %s <%s>", color.CyanString(u.ID), u.Name, u.Email)
		})
	case "events":
		manager := collection.NewManager(client.ListAdminEvents, func(e models.Event) string { return e.ID }, nil)
		return runListAction(ctx, manager, action, args[2:], client.DeleteAdminEvent, func(e models.Event) string {
			return fmt.Sprintf("%s  %s [%s]", color.CyanString(e.ID), e.Title, e.Status)
		})
	case "organizers":
		manager := collection.NewManager(client.ListOrganizers, func(o models.Organizer) string { return o.ID }, nil)
		return runListAction(ctx, manager, action, args[2:], client.DeleteOrganizer, func(o models.Organizer) string {
			return fmt.Sprintf("%s  %s %s <%s>", color.CyanString(o.ID), o.FirstName, o.LastName, o.Email)
		})
	default:
		return fmt.Errorf("unknown admin resource %q", resource)
	}
}

func runListAction[T any](ctx context.Context, manager *collection.Manager[T], action string, args []string, del func(context.Context, string) error, format func(T) string) error {
	if err := manager.Load(ctx); err != nil {
		return err
	}

	switch action {
	case "list":
		for _, item := range manager.Items() {
			fmt.Println(format(item))
		}
		return nil
	case "delete":
		if len(args) < 1 {
			return errors.New("delete needs an id")
		}
		id := args[0]
		if !confirm(fmt.Sprintf("Delete %s?", id)) {
			fmt.Println("Aborted.")
			return nil
		}
		if err := manager.Delete(ctx, id, del); err != nil {
			color.Yellow("Delete failed, row restored: %v", err)
			return err
		}
		color.Green("Deleted %s (%d rows remain)", id, len(manager.Items()))
		return nil
	default:
		return fmt.Errorf("unknown action %q", action)
	}
}

func confirm(prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)
	var answer string
	fmt.Scanln(&answer)
	return answer == "y" || answer == "Y" || answer == "yes"
}

func (a *app) runOrganizer(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.New("usage: organizer <my-events|publish|cancel|delete> [id]")
	}

	client, _, err := a.authedClient(ctx)
	if err != nil {
		return err
	}

	manager := collection.NewManager(client.MyEvents, func(e models.Event) string { return e.ID }, nil)
	if err := manager.Load(ctx); err != nil {
		return err
	}

	setStatus := func(e *models.Event, status string) { e.Status = status }

	switch args[0] {
	case "my-events":
		for _, event := range manager.Items() {
			fmt.Printf("%s  %s [%s] %d/%d sold\n",
				color.CyanString(event.ID), event.Title, event.Status, event.TicketsSold, event.Capacity())
		}
		return nil

	case "publish", "cancel":
		if len(args) < 2 {
			return fmt.Errorf("usage: organizer %s <eventID>", args[0])
		}
		status := models.EventPublished
		if args[0] == "cancel" {
			status = models.EventCancelled
		}
		if err := manager.UpdateStatus(ctx, args[1], status, client.UpdateEventStatus, setStatus); err != nil {
			color.Yellow("Status change failed, row restored: %v", err)
			return err
		}
		color.Green("Event %s is now %s", args[1], status)
		return nil

	case "delete":
		if len(args) < 2 {
			return errors.New("usage: organizer delete <eventID>")
		}
		if !confirm(fmt.Sprintf("Delete event %s?", args[1])) {
			fmt.Println("Aborted.")
			return nil
		}
		if err := manager.Delete(ctx, args[1], client.DeleteOrganizerEvent); err != nil {
			color.Yellow("Delete failed, row restored: %v", err)
			return err
		}
		color.Green("Deleted event %s", args[1])
		return nil

	default:
		return fmt.Errorf("unknown organizer subcommand %q", args[0])
	}
}

func (a *app) runDashboard(ctx context.Context) error {
	client, _, err := a.authedClient(ctx)
	if err != nil {
		return err
	}

	board := dashboard.NewAdmin(client, nil)
	for _, result := range board.Fetch(ctx) {
		label := fmt.Sprintf("%-18s %12.0f", result.Name, result.Value)
		if result.Source == dashboard.SourcePlaceholder {
			color.Yellow("%s  (placeholder)", label)
		} else {
			fmt.Println(label)
		}
	}
	return nil
}
