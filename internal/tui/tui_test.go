package tui

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/desidelights/tiffin/internal/api"
	"github.com/desidelights/tiffin/internal/checkout"
	"github.com/desidelights/tiffin/internal/config"
	"github.com/desidelights/tiffin/internal/model"
	"github.com/desidelights/tiffin/internal/session"
)

// The tests drive Update directly: commands are never executed, network
// completions are injected as messages, exactly as the runtime would
// deliver them.

func testApp() appModel {
	cfg := config.Config{
		APIBaseURL:     "http://127.0.0.1:1", // never dialed
		RequestTimeout: time.Second,
		ConfirmDelay:   time.Second,
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := api.New(cfg.APIBaseURL, cfg.RequestTimeout, logger)
	sess := session.New(model.User{ID: "u1", Name: "Asha"}, "tok", logger)
	return newApp(cfg, client, sess, logger)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func apply(t *testing.T, m appModel, msg tea.Msg) appModel {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(appModel)
	require.True(t, ok)
	return out
}

func loaded(t *testing.T, m appModel) appModel {
	t.Helper()
	rs := []model.Restaurant{
		{ID: 1, Name: "Paradise Biryani House", Cuisine: model.CuisineHyderabadi, Menu: []model.MenuItem{
			{ID: 1, Name: "Chicken Dum Biryani", Price: 250},
			{ID: 2, Name: "Veg Biryani", Price: 180, Veg: true},
		}},
		{ID: 2, Name: "Chaiwala Corner", Cuisine: model.CuisineBeverages, Menu: []model.MenuItem{
			{ID: 3, Name: "Cutting Chai", Price: 20, Veg: true},
		}},
	}
	return apply(t, m, restaurantsMsg{restaurants: rs})
}

func TestRestaurantsLoadPopulatesList(t *testing.T) {
	m := testApp()
	assert.True(t, m.loading)

	m = loaded(t, m)
	assert.False(t, m.loading)
	assert.Len(t, m.list.Items(), 2)
}

func TestRefreshFailureKeepsPriorCatalog(t *testing.T) {
	m := loaded(t, testApp())
	m = apply(t, m, restaurantsMsg{err: errors.New("api unreachable")})
	assert.Len(t, m.list.Items(), 2, "stale data stays visible")
}

func TestCheckoutHappyPathClearsCart(t *testing.T) {
	m := loaded(t, testApp())

	// open the first restaurant, add one item twice and another once
	m = apply(t, m, key("enter"))
	require.Equal(t, viewMenu, m.view)
	m = apply(t, m, key("enter"))
	m = apply(t, m, key("enter"))
	m = apply(t, m, key("j"))
	m = apply(t, m, key("enter"))
	require.Equal(t, 3, m.sess.Cart.Units())

	// cart → payment
	m = apply(t, m, key("c"))
	require.Equal(t, viewCart, m.view)
	m = apply(t, m, key("enter"))
	require.Equal(t, viewPayment, m.view)
	require.Equal(t, checkout.CollectingPayment, m.flow.State())

	m.inputs[0].SetValue("1234 5678 9012 3456")
	m.inputs[1].SetValue("12/27")
	m.inputs[2].SetValue("123")
	m.inputs[3].SetValue("12 MG Road, Hyderabad")
	m.focus = paymentFields - 1

	next, cmd := m.Update(key("enter"))
	m = next.(appModel)
	require.NotNil(t, cmd, "a submit command must be issued")
	assert.True(t, m.flow.InFlight())

	// while in flight, another enter is inert
	next, cmd = m.Update(key("enter"))
	m = next.(appModel)
	assert.Nil(t, cmd)

	// backend confirms
	order := model.Order{ID: "abcdef123456", Total: 680}
	m = apply(t, m, orderResultMsg{order: order})
	assert.Equal(t, viewConfirmed, m.view)
	assert.Equal(t, checkout.Confirmed, m.flow.State())
	assert.True(t, m.sess.Cart.Empty())
	require.Len(t, m.sess.Orders(), 1)

	// display delay elapses
	m = apply(t, m, confirmDoneMsg{})
	assert.Equal(t, viewBrowse, m.view)
	assert.Equal(t, checkout.Reviewing, m.flow.State())
	assert.Empty(t, m.inputs[3].Value(), "form is wiped for the next attempt")
}

func TestCheckoutMissingAddressStaysCollecting(t *testing.T) {
	m := loaded(t, testApp())
	m = apply(t, m, key("enter"))
	m = apply(t, m, key("enter")) // add item
	m = apply(t, m, key("c"))
	m = apply(t, m, key("enter"))
	require.Equal(t, viewPayment, m.view)

	m.inputs[0].SetValue("1234")
	m.inputs[1].SetValue("12/27")
	m.inputs[2].SetValue("123")
	// address left empty
	m.focus = paymentFields - 1

	next, cmd := m.Update(key("enter"))
	m = next.(appModel)
	assert.Nil(t, cmd, "nothing is submitted")
	assert.Equal(t, viewPayment, m.view)
	assert.Equal(t, checkout.CollectingPayment, m.flow.State())
	assert.True(t, checkout.IsValidation(m.flow.Err()))
	assert.False(t, m.sess.Cart.Empty())
}

func TestOrderFailureSurfacesAndKeepsCart(t *testing.T) {
	m := loaded(t, testApp())
	m = apply(t, m, key("enter"))
	m = apply(t, m, key("enter"))
	m = apply(t, m, key("c"))
	m = apply(t, m, key("enter"))

	m.inputs[0].SetValue("1234")
	m.inputs[1].SetValue("12/27")
	m.inputs[2].SetValue("123")
	m.inputs[3].SetValue("12 MG Road")
	m.focus = paymentFields - 1
	next, _ := m.Update(key("enter"))
	m = next.(appModel)
	require.True(t, m.flow.InFlight())

	m = apply(t, m, orderResultMsg{err: errors.New("api unreachable")})
	assert.Equal(t, viewPayment, m.view, "no transition on failure")
	assert.Equal(t, checkout.CollectingPayment, m.flow.State())
	assert.Error(t, m.flow.Err())
	assert.False(t, m.sess.Cart.Empty(), "no ledger mutation on failure")
	assert.Empty(t, m.sess.Orders())
}

func TestEmptyCartCannotCheckout(t *testing.T) {
	m := loaded(t, testApp())
	m = apply(t, m, key("c"))
	require.Equal(t, viewCart, m.view)

	m = apply(t, m, key("enter"))
	assert.Equal(t, viewCart, m.view)
	assert.Equal(t, checkout.Reviewing, m.flow.State())
}

func TestCartKeysAdjustAndRemove(t *testing.T) {
	m := loaded(t, testApp())
	m = apply(t, m, key("enter"))
	m = apply(t, m, key("enter")) // biryani x1
	m = apply(t, m, key("c"))

	m = apply(t, m, key("+"))
	assert.Equal(t, 2, m.sess.Cart.Lines()[0].Quantity)

	m = apply(t, m, key("-"))
	m = apply(t, m, key("-"))
	assert.True(t, m.sess.Cart.Empty(), "quantity reaching zero removes the line")
}

func TestSearchAndCategoryDriveTheList(t *testing.T) {
	m := loaded(t, testApp())

	m = apply(t, m, key("/"))
	require.True(t, m.searching)
	m = apply(t, m, key("chai"))
	require.Len(t, m.list.Items(), 1)
	it := m.list.Items()[0].(restaurantItem)
	assert.Equal(t, "Chaiwala Corner", it.r.Name)

	// esc clears the query
	m = apply(t, m, key("esc"))
	assert.Len(t, m.list.Items(), 2)

	// cycle to the first cuisine category (Hyderabadi)
	m = apply(t, m, key("tab"))
	require.Len(t, m.list.Items(), 1)
	it = m.list.Items()[0].(restaurantItem)
	assert.Equal(t, "Paradise Biryani House", it.r.Name)
}

func TestFavoriteToggleFromBrowse(t *testing.T) {
	m := loaded(t, testApp())

	next, cmd := m.Update(key("f"))
	m = next.(appModel)
	require.NotNil(t, cmd, "a toggle command must be issued")

	// a second toggle for the same restaurant is refused while pending
	next, cmd = m.Update(key("f"))
	m = next.(appModel)
	assert.Nil(t, cmd)

	m = apply(t, m, favToggledMsg{restaurantID: 1, adding: true})
	assert.True(t, m.sess.IsFavorite(1))
}
