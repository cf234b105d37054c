package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/desidelights/tiffin/internal/catalog"
	"github.com/desidelights/tiffin/internal/model"
	"github.com/desidelights/tiffin/internal/session"
)

// restaurantItem adapts a Restaurant to bubbles/list.Item.
type restaurantItem struct {
	r model.Restaurant
}

func (i restaurantItem) Title() string       { return i.r.Name }
func (i restaurantItem) Description() string { return string(i.r.Cuisine) }
func (i restaurantItem) FilterValue() string { return i.r.Name }

// restaurantDelegate renders one restaurant per line with its favorite
// mark. It reads the favorite set through the session.
type restaurantDelegate struct {
	sess *session.Session
}

func (d restaurantDelegate) Height() int                               { return 1 }
func (d restaurantDelegate) Spacing() int                              { return 0 }
func (d restaurantDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d restaurantDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, _ := item.(restaurantItem)

	heart := mutedStyle.Render(heartEmpty)
	if d.sess.IsFavorite(it.r.ID) {
		heart = errorStyle.Render(heartFull)
	}
	line := fmt.Sprintf("%s %s %s  %s  %s  %s",
		heart,
		it.r.Image,
		titleStyle.Render(it.r.Name),
		mutedStyle.Render(string(it.r.Cuisine)),
		successStyle.Render(fmt.Sprintf("⭐ %.1f", it.r.Rating)),
		mutedStyle.Render("🕐 "+it.r.DeliveryTime),
	)

	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprintln(w, prefix+line)
}

func newRestaurantList(sess *session.Session) list.Model {
	l := list.New(nil, restaurantDelegate{sess: sess}, 0, 0)
	l.Title = titleStyle.Render("Restaurants")
	l.SetShowHelp(false)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(false) // search semantics are the catalog's, not fuzzy
	l.Styles.Title = titleStyle
	l.Styles.PaginationStyle = helpStyle
	l.SetStatusBarItemName("restaurant", "restaurants")
	return l
}

// refreshBrowseList recomputes the visible subset from the catalog
// filter and pushes it into the list.
func (m *appModel) refreshBrowseList() {
	cat := catalog.Categories()[m.category]
	visible := catalog.Visible(m.sess.Restaurants(), m.search.Value(), cat)

	items := make([]list.Item, 0, len(visible))
	for _, r := range visible {
		items = append(items, restaurantItem{r: r})
	}
	m.list.SetItems(items)

	title := "Popular Restaurants"
	if cat != catalog.CategoryAll {
		title = string(cat) + " Restaurants"
	}
	m.list.Title = titleStyle.Render(title)
}

func (m appModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// search mode captures keys until enter/esc
	if m.searching {
		switch msg.String() {
		case "enter":
			m.searching = false
			m.search.Blur()
			return m, nil
		case "esc":
			m.searching = false
			m.search.SetValue("")
			m.search.Blur()
			m.refreshBrowseList()
			return m, nil
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		m.refreshBrowseList()
		return m, cmd
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "/":
		m.searching = true
		m.search.Focus()
		return m, nil
	case "tab":
		m.category = (m.category + 1) % len(catalog.Categories())
		m.refreshBrowseList()
		return m, nil
	case "shift+tab":
		m.category = (m.category + len(catalog.Categories()) - 1) % len(catalog.Categories())
		m.refreshBrowseList()
		return m, nil
	case "f":
		if it, ok := m.list.SelectedItem().(restaurantItem); ok {
			return m, m.startFavoriteToggle(it.r.ID)
		}
		return m, nil
	case "enter":
		if it, ok := m.list.SelectedItem().(restaurantItem); ok {
			m.current = it.r
			m.menuCursor = 0
			m.view = viewMenu
		}
		return m, nil
	case "c":
		m.view = viewCart
		return m, nil
	case "o":
		m.view = viewOrders
		return m, nil
	case "v":
		m.favCursor = 0
		m.view = viewFavorites
		return m, nil
	case "r":
		m.loading = true
		return m, tea.Batch(m.spin.Tick, fetchRestaurants(m.client))
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// startFavoriteToggle begins a serialized toggle: ignored when one is
// already in flight for the same restaurant.
func (m *appModel) startFavoriteToggle(restaurantID int) tea.Cmd {
	adding, ok := m.sess.BeginFavoriteToggle(restaurantID)
	if !ok {
		return nil
	}
	return toggleFavorite(m.client, restaurantID, adding)
}

func (m appModel) viewBrowse() string {
	var b strings.Builder

	if m.searching || m.search.Value() != "" {
		b.WriteString(m.search.View() + "\n")
	}
	b.WriteString(m.categoryBar() + "\n")

	if m.loading {
		b.WriteString("\n" + m.spin.View() + mutedStyle.Render(" fetching restaurants...") + "\n")
	} else if len(m.sess.Restaurants()) == 0 {
		b.WriteString("\n" + mutedStyle.Render("No restaurants available right now") + "\n")
	} else if len(m.list.Items()) == 0 {
		// loaded fine, the filter just matched nothing
		b.WriteString("\n" + mutedStyle.Render("🔍 No restaurants found") + "\n")
	} else {
		b.WriteString(m.list.View())
	}

	b.WriteString("\n" + helpStyle.Render("enter menu • / search • tab filter • f fav • v favs • c cart • o orders • q quit"))
	return b.String()
}

func (m appModel) categoryBar() string {
	cats := catalog.Categories()
	parts := make([]string, 0, len(cats))
	for i, c := range cats {
		label := string(c)
		if i == m.category {
			label = selectedStyle.Render(" " + label + " ")
		} else {
			label = mutedStyle.Render(label)
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, "  ")
}

// ---------------------------------------------------
// Menu view
// ---------------------------------------------------

func (m appModel) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = viewBrowse
		return m, nil
	case "up", "k":
		if m.menuCursor > 0 {
			m.menuCursor--
		}
		return m, nil
	case "down", "j":
		if m.menuCursor < len(m.current.Menu)-1 {
			m.menuCursor++
		}
		return m, nil
	case "f":
		return m, m.startFavoriteToggle(m.current.ID)
	case "enter", "a":
		if m.menuCursor < len(m.current.Menu) {
			item := m.current.Menu[m.menuCursor]
			m.sess.Cart.Add(item, m.current.Name)
			cmd := m.setStatus("added " + item.Name)
			return m, cmd
		}
		return m, nil
	case "c":
		m.view = viewCart
		return m, nil
	}
	return m, nil
}

func (m appModel) viewMenu() string {
	r := m.current

	heart := heartEmpty
	if m.sess.IsFavorite(r.ID) {
		heart = heartFull
	}
	head := fmt.Sprintf("%s %s  %s  %s  %s  %s",
		r.Image,
		titleStyle.Render(r.Name),
		mutedStyle.Render(string(r.Cuisine)),
		successStyle.Render(fmt.Sprintf("⭐ %.1f", r.Rating)),
		mutedStyle.Render("🕐 "+r.DeliveryTime),
		errorStyle.Render(heart),
	)

	var b strings.Builder
	b.WriteString(head + "\n\n")
	for i, it := range r.Menu {
		badge := nonVegBadge
		if it.Veg {
			badge = vegBadge
		}
		prefix := "  "
		if i == m.menuCursor {
			prefix = selectedStyle.Render("> ")
		}
		b.WriteString(fmt.Sprintf("%s%s %s  %s\n", prefix, titleStyle.Render(it.Name), badge, priceStyle.Render(fmt.Sprintf("₹%.2f", it.Price))))
		b.WriteString("   " + mutedStyle.Render(it.Description) + "\n")
	}
	if len(r.Menu) == 0 {
		b.WriteString(mutedStyle.Render("this kitchen has no menu yet") + "\n")
	}

	b.WriteString("\n" + helpStyle.Render("enter add to cart • f fav • c cart • esc back"))
	return panelString(b.String())
}

// ---------------------------------------------------
// Favorites view
// ---------------------------------------------------

func (m appModel) favoriteRestaurants() []model.Restaurant {
	var out []model.Restaurant
	for _, r := range m.sess.Restaurants() {
		if m.sess.IsFavorite(r.ID) {
			out = append(out, r)
		}
	}
	return out
}

func (m appModel) updateFavorites(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	favs := m.favoriteRestaurants()
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = viewBrowse
		return m, nil
	case "up", "k":
		if m.favCursor > 0 {
			m.favCursor--
		}
		return m, nil
	case "down", "j":
		if m.favCursor < len(favs)-1 {
			m.favCursor++
		}
		return m, nil
	case "f":
		if m.favCursor < len(favs) {
			return m, m.startFavoriteToggle(favs[m.favCursor].ID)
		}
		return m, nil
	case "enter":
		if m.favCursor < len(favs) {
			m.current = favs[m.favCursor]
			m.menuCursor = 0
			m.view = viewMenu
		}
		return m, nil
	}
	return m, nil
}

func (m appModel) viewFavorites() string {
	favs := m.favoriteRestaurants()

	var b strings.Builder
	b.WriteString(titleStyle.Render("Favorites "+heartFull) + "\n\n")
	if len(favs) == 0 {
		b.WriteString(mutedStyle.Render("no favorites yet — press f on a restaurant") + "\n")
	}
	for i, r := range favs {
		prefix := "  "
		if i == m.favCursor {
			prefix = selectedStyle.Render("> ")
		}
		b.WriteString(fmt.Sprintf("%s%s %s  %s  %s\n",
			prefix, r.Image, titleStyle.Render(r.Name),
			mutedStyle.Render(string(r.Cuisine)),
			successStyle.Render(fmt.Sprintf("⭐ %.1f", r.Rating)),
		))
	}
	b.WriteString("\n" + helpStyle.Render("enter menu • f unfavorite • esc back"))
	return panelString(b.String())
}
