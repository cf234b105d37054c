package session

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/desidelights/tiffin/internal/model"
)

func newSession() *Session {
	return New(model.User{ID: "u1", Name: "Asha"}, "tok", nil)
}

func TestFavoriteToggleSerializedPerRestaurant(t *testing.T) {
	s := newSession()

	adding, ok := s.BeginFavoriteToggle(7)
	require.True(t, ok)
	assert.True(t, adding, "not yet a favorite, so the toggle adds")

	// Second toggle for the same ID while one is in flight is refused.
	_, ok = s.BeginFavoriteToggle(7)
	assert.False(t, ok)

	// A different restaurant is unaffected.
	_, ok = s.BeginFavoriteToggle(8)
	assert.True(t, ok)

	s.FinishFavoriteToggle(7, true, nil)
	assert.True(t, s.IsFavorite(7))

	// After resolution the ID can be toggled again, now removing.
	adding, ok = s.BeginFavoriteToggle(7)
	require.True(t, ok)
	assert.False(t, adding)
	s.FinishFavoriteToggle(7, false, nil)
	assert.False(t, s.IsFavorite(7))
}

func TestFavoriteToggleFailureKeepsPriorState(t *testing.T) {
	s := newSession()
	s.SetFavorites([]int{3})

	adding, ok := s.BeginFavoriteToggle(3)
	require.True(t, ok)
	require.False(t, adding)

	s.FinishFavoriteToggle(3, adding, errors.New("api unreachable"))
	assert.True(t, s.IsFavorite(3), "state changes only on API success")

	// The pending mark is released even on failure.
	_, ok = s.BeginFavoriteToggle(3)
	assert.True(t, ok)
}

func TestFavoriteIDsSorted(t *testing.T) {
	s := newSession()
	s.SetFavorites([]int{9, 2, 5})
	assert.Equal(t, []int{2, 5, 9}, s.FavoriteIDs())
	assert.Equal(t, 3, s.FavoriteCount())
}

func TestOrderRequestSnapshotsCart(t *testing.T) {
	s := newSession()
	biryani := model.MenuItem{ID: 1, Name: "Chicken Biryani", Price: 100}
	lassi := model.MenuItem{ID: 2, Name: "Lassi", Price: 50}
	s.Cart.Add(biryani, "Paradise")
	s.Cart.Add(biryani, "Paradise")
	s.Cart.Add(lassi, "Amritsari")

	req := s.OrderRequest("12 MG Road")
	require.Len(t, req.Items, 2)
	assert.Equal(t, 2, req.Items[0].Quantity)
	assert.Equal(t, "Paradise", req.Items[0].RestaurantName)
	assert.Equal(t, 250.0, req.Total)
	assert.Equal(t, "12 MG Road", req.Address)
}

func TestConfirmOrderAppendsHistoryAndClearsCart(t *testing.T) {
	s := newSession()
	s.Cart.Add(model.MenuItem{ID: 1, Name: "Dosa", Price: 80}, "Udupi")

	s.ConfirmOrder(model.Order{ID: "o1", Total: 80})

	assert.True(t, s.Cart.Empty())
	require.Len(t, s.Orders(), 1)
	assert.Equal(t, "o1", s.Orders()[0].ID)
}

func TestRestaurantByID(t *testing.T) {
	s := newSession()
	s.SetRestaurants([]model.Restaurant{{ID: 1, Name: "Paradise"}, {ID: 2, Name: "Udupi"}})

	r, ok := s.RestaurantByID(2)
	require.True(t, ok)
	assert.Equal(t, "Udupi", r.Name)

	_, ok = s.RestaurantByID(99)
	assert.False(t, ok)
}
