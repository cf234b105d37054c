package tui

import (
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/desidelights/tiffin/internal/api"
	"github.com/desidelights/tiffin/internal/checkout"
	"github.com/desidelights/tiffin/internal/config"
	"github.com/desidelights/tiffin/internal/model"
	"github.com/desidelights/tiffin/internal/session"
)

// view identifies which screen the app is on. The checkout screens map
// onto the flow states: viewCart ↔ Reviewing, viewPayment ↔
// CollectingPayment, viewConfirmed ↔ Confirmed.
type view int

const (
	viewBrowse view = iota
	viewMenu
	viewFavorites
	viewCart
	viewPayment
	viewConfirmed
	viewOrders
)

const paymentFields = 4

type appModel struct {
	cfg    config.Config
	client *api.Client
	sess   *session.Session
	flow   *checkout.Flow
	log    *slog.Logger

	view          view
	width, height int

	// browse
	list      list.Model
	search    textinput.Model
	searching bool
	category  int // index into catalog.Categories()
	loading   bool
	spin      spinner.Model

	// menu / favorites
	current    model.Restaurant
	menuCursor int
	favCursor  int

	// cart
	cartCursor int

	// payment form: card number, expiry, cvv, address
	inputs [paymentFields]textinput.Model
	focus  int

	// transient status line (e.g. "added to cart")
	status   string
	statusID int
}

// Run starts the storefront TUI for an authenticated user.
func Run(cfg config.Config, user model.User, token string) error {
	logger := slog.Default()
	client := api.New(cfg.APIBaseURL, cfg.RequestTimeout, logger)
	client.SetToken(token)

	m := newApp(cfg, client, session.New(user, token, logger), logger)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func newApp(cfg config.Config, client *api.Client, sess *session.Session, logger *slog.Logger) appModel {
	m := appModel{
		cfg:     cfg,
		client:  client,
		sess:    sess,
		flow:    checkout.NewFlow(),
		log:     logger,
		loading: true,
	}

	m.list = newRestaurantList(sess)

	m.search = textinput.New()
	m.search.Prompt = "/ "
	m.search.Placeholder = "Search restaurants or cuisine..."
	m.search.CharLimit = 60

	m.spin = spinner.New()
	m.spin.Spinner = spinner.Dot

	placeholders := [paymentFields]string{"1234 5678 9012 3456", "MM/YY", "123", "Enter your full address"}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Prompt = "> "
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 80
		m.inputs[i] = ti
	}

	return m
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(
		m.spin.Tick,
		fetchRestaurants(m.client),
		fetchFavorites(m.client),
		fetchOrders(m.client),
	)
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.list.SetSize(msg.Width-4, msg.Height-7)
		return m, nil

	case spinner.TickMsg:
		if !m.loading && !m.flow.InFlight() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case restaurantsMsg:
		m.loading = false
		if msg.err != nil {
			m.sess.NoteRefreshFailure("restaurants", msg.err)
			return m, nil
		}
		m.sess.SetRestaurants(msg.restaurants)
		m.refreshBrowseList()
		return m, nil

	case favoritesMsg:
		if msg.err != nil {
			m.sess.NoteRefreshFailure("favorites", msg.err)
			return m, nil
		}
		m.sess.SetFavorites(msg.ids)
		return m, nil

	case ordersMsg:
		if msg.err != nil {
			m.sess.NoteRefreshFailure("orders", msg.err)
			return m, nil
		}
		m.sess.SetOrders(msg.orders)
		return m, nil

	case favToggledMsg:
		m.sess.FinishFavoriteToggle(msg.restaurantID, msg.adding, msg.err)
		if m.favCursor >= len(m.favoriteRestaurants()) {
			m.favCursor = max(0, len(m.favoriteRestaurants())-1)
		}
		return m, nil

	case orderResultMsg:
		if msg.err != nil {
			m.log.Warn("order submission failed", "err", msg.err)
			m.flow.Fail(msg.err)
			return m, nil
		}
		m.flow.Complete()
		m.sess.ConfirmOrder(msg.order)
		m.view = viewConfirmed
		return m, confirmTimer(m.cfg.ConfirmDelay)

	case confirmDoneMsg:
		// Back to the restaurant list for the next attempt.
		m.flow.Reset()
		m.resetPaymentForm()
		m.cartCursor = 0
		m.view = viewBrowse
		return m, nil

	case statusExpiredMsg:
		if msg.id == m.statusID {
			m.status = ""
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.view {
	case viewBrowse:
		return m.updateBrowse(msg)
	case viewMenu:
		return m.updateMenu(msg)
	case viewFavorites:
		return m.updateFavorites(msg)
	case viewCart:
		return m.updateCart(msg)
	case viewPayment:
		return m.updatePayment(msg)
	case viewConfirmed:
		// Waits out the display delay; only quit is honored.
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil
	case viewOrders:
		return m.updateOrders(msg)
	}
	return m, nil
}

func (m *appModel) setStatus(s string) tea.Cmd {
	m.status = s
	m.statusID++
	return statusTimer(m.statusID)
}

func (m *appModel) resetPaymentForm() {
	for i := range m.inputs {
		m.inputs[i].SetValue("")
		m.inputs[i].Blur()
	}
	m.focus = 0
}

func (m appModel) View() string {
	var body string
	switch m.view {
	case viewBrowse:
		body = m.viewBrowse()
	case viewMenu:
		body = m.viewMenu()
	case viewFavorites:
		body = m.viewFavorites()
	case viewCart:
		body = m.viewCart()
	case viewPayment:
		body = m.viewPayment()
	case viewConfirmed:
		body = m.viewConfirmed()
	case viewOrders:
		body = m.viewOrders()
	}
	return m.header() + "\n" + body
}

func (m appModel) header() string {
	brand := brandStyle.Render("🍛 Desi Delights")
	who := mutedStyle.Render("  " + m.sess.User.Name)
	cart := accentStyle.Render(fmt.Sprintf("  🛒 %d", m.sess.Cart.Units()))
	favs := accentStyle.Render(fmt.Sprintf("  %s %d", heartFull, m.sess.FavoriteCount()))
	hist := accentStyle.Render(fmt.Sprintf("  📦 %d", len(m.sess.Orders())))
	line := brand + who + cart + favs + hist
	if m.status != "" {
		line += successStyle.Render("   " + m.status)
	}
	return line
}
