package cli

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/desidelights/tiffin/internal/api"
	"github.com/desidelights/tiffin/internal/config"
	"github.com/desidelights/tiffin/internal/store/credstore"
	"github.com/desidelights/tiffin/internal/tui"
)

// Options tune behavior from root flags.
type Options struct {
	Verbose bool // debug-level diagnostics on stderr
}

// ---------------------------------------------------
// CLI router
// ---------------------------------------------------

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	// Diagnostics go to stderr so they never tear the TUI.
	logLevel := slog.LevelWarn
	if opt.Verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))

	if len(args) == 0 {
		PrintHelp()
		return 2
	}
	cmd := args[0]

	cfg := config.Load()

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp()
		return 0

	case "browse":
		return doBrowse(cfg)

	case "orders":
		return doOrders(cfg)

	case "login":
		return doLogin(cfg)

	case "register":
		return doRegister(cfg)

	case "logout":
		return doLogout()

	case "whoami":
		return doWhoAmI()
	}

	fail("unknown subcommand: " + cmd)
	fmt.Fprintln(os.Stderr)
	PrintHelp()
	return 2
}

func PrintHelp() {
	fmt.Printf(`tiffin - order food from your terminal

Usage:
  tiffin <subcommand> [args]

Subcommands:
  browse             Browse restaurants, fill your cart, check out (interactive TUI)
  orders             Print your order history
  login              Sign in with email and password
  register           Create an account
  logout             Forget the stored credentials
  whoami             Show the signed-in profile

Examples:
  tiffin login
  tiffin browse
  tiffin orders
`)
}

// ---------------------------------------------------
// Auth subcommands (credentials live in credstore)
// ---------------------------------------------------

func prompt(r *bufio.Reader, label string) (string, error) {
	fmt.Print(label)
	line, err := r.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func doLogin(cfg config.Config) int {
	r := bufio.NewReader(os.Stdin)
	email, err := prompt(r, "Email: ")
	if err != nil {
		fail("read email: " + err.Error())
		return 1
	}
	password, err := prompt(r, "Password: ")
	if err != nil {
		fail("read password: " + err.Error())
		return 1
	}

	client := api.New(cfg.APIBaseURL, cfg.RequestTimeout, slog.Default())
	user, token, err := client.Login(context.Background(), email, password)
	if err != nil {
		if api.IsAuth(err) {
			fail("invalid email or password")
			return 1
		}
		fail("login: " + err.Error())
		return 1
	}
	if err := credstore.Set(token, user); err != nil {
		fail("save credentials: " + err.Error())
		return 1
	}
	ok("logged in as " + user.Name)
	return 0
}

func doRegister(cfg config.Config) int {
	r := bufio.NewReader(os.Stdin)
	name, err := prompt(r, "Name: ")
	if err != nil {
		fail("read name: " + err.Error())
		return 1
	}
	email, err := prompt(r, "Email: ")
	if err != nil {
		fail("read email: " + err.Error())
		return 1
	}
	password, err := prompt(r, "Password: ")
	if err != nil {
		fail("read password: " + err.Error())
		return 1
	}

	client := api.New(cfg.APIBaseURL, cfg.RequestTimeout, slog.Default())
	user, token, err := client.Register(context.Background(), name, email, password)
	if err != nil {
		if api.IsAuth(err) {
			fail("registration rejected: " + err.Error())
			return 1
		}
		fail("register: " + err.Error())
		return 1
	}
	if err := credstore.Set(token, user); err != nil {
		fail("save credentials: " + err.Error())
		return 1
	}
	ok("welcome, " + user.Name)
	return 0
}

func doLogout() int {
	cr, _ := credstore.Get()
	if cr != nil && cr.Source == "env" {
		ok("token is provided by TIFFIN_TOKEN env var (nothing to delete)")
		return 0
	}
	if err := credstore.Delete(); err != nil {
		fail("logout: " + err.Error())
		return 1
	}
	ok("logged out")
	return 0
}

func doWhoAmI() int {
	cr, _ := credstore.Get()
	if cr == nil {
		fmt.Println(mutedStyle.Render("not logged in"))
		fmt.Println("Run: tiffin login")
		return 0
	}
	lines := []string{
		accentStyle.Render("Signed in"),
		"name:   " + cr.User.Name,
		"email:  " + cr.User.Email,
		"source: " + cr.Source,
	}
	panel(lines)
	return 0
}

// Require credentials for networked commands.
func ensureAuth() (*credstore.Credentials, int) {
	cr, _ := credstore.Get()
	if cr == nil || strings.TrimSpace(cr.Token) == "" {
		fail("no credentials found. Set TIFFIN_TOKEN or run `tiffin login`")
		return nil, 2
	}
	return cr, 0
}

// ---------------------------------------------------
// Storefront subcommands
// ---------------------------------------------------

func doBrowse(cfg config.Config) int {
	cr, code := ensureAuth()
	if cr == nil {
		return code
	}
	if err := tui.Run(cfg, cr.User, cr.Token); err != nil {
		fail("tui: " + err.Error())
		return 1
	}
	return 0
}

func doOrders(cfg config.Config) int {
	cr, code := ensureAuth()
	if cr == nil {
		return code
	}

	client := api.New(cfg.APIBaseURL, cfg.RequestTimeout, slog.Default())
	client.SetToken(cr.Token)
	orders, err := client.Orders(context.Background())
	if err != nil {
		if api.IsAuth(err) {
			fail("session expired. Run `tiffin login`")
			return 1
		}
		fail("orders: " + err.Error())
		return 1
	}
	if len(orders) == 0 {
		fmt.Println(mutedStyle.Render("no orders yet"))
		return 0
	}

	for _, o := range orders {
		id := o.ID
		if len(id) > 6 {
			id = id[len(id)-6:]
		}
		lines := []string{
			accentStyle.Render("Order #"+id) + mutedStyle.Render("  "+o.CreatedAt.Local().Format("02 Jan 2006 15:04")),
			"to: " + o.Address,
		}
		for _, it := range o.Items {
			lines = append(lines, fmt.Sprintf("%dx %-24s ₹%.2f", it.Quantity, it.Name, it.Price*float64(it.Quantity)))
		}
		lines = append(lines, successStyle.Render(fmt.Sprintf("total ₹%.2f", o.Total)))
		panel(lines)
	}
	return 0
}
