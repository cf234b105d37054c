package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/desidelights/tiffin/internal/api"
	"github.com/desidelights/tiffin/internal/model"
)

// Network completion messages. Commands only perform the API call; all
// state mutation happens in Update when these arrive, so the session
// keeps a single writer.

type restaurantsMsg struct {
	restaurants []model.Restaurant
	err         error
}

type favoritesMsg struct {
	ids []int
	err error
}

type ordersMsg struct {
	orders []model.Order
	err    error
}

type favToggledMsg struct {
	restaurantID int
	adding       bool
	err          error
}

type orderResultMsg struct {
	order model.Order
	err   error
}

// confirmDoneMsg ends the confirmation screen's display delay.
type confirmDoneMsg struct{}

// statusExpiredMsg clears a transient status line.
type statusExpiredMsg struct{ id int }

func fetchRestaurants(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		rs, err := client.Restaurants(context.Background())
		return restaurantsMsg{restaurants: rs, err: err}
	}
}

func fetchFavorites(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		ids, err := client.Favorites(context.Background())
		return favoritesMsg{ids: ids, err: err}
	}
}

func fetchOrders(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		orders, err := client.Orders(context.Background())
		return ordersMsg{orders: orders, err: err}
	}
}

func toggleFavorite(client *api.Client, restaurantID int, adding bool) tea.Cmd {
	return func() tea.Msg {
		var err error
		if adding {
			err = client.AddFavorite(context.Background(), restaurantID)
		} else {
			err = client.RemoveFavorite(context.Background(), restaurantID)
		}
		return favToggledMsg{restaurantID: restaurantID, adding: adding, err: err}
	}
}

func placeOrder(client *api.Client, req api.OrderRequest) tea.Cmd {
	return func() tea.Msg {
		order, err := client.CreateOrder(context.Background(), req)
		return orderResultMsg{order: order, err: err}
	}
}

func confirmTimer(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return confirmDoneMsg{} })
}

func statusTimer(id int) tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg { return statusExpiredMsg{id: id} })
}
