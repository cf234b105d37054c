package session

import (
	"log/slog"
	"sort"

	"github.com/desidelights/tiffin/internal/api"
	"github.com/desidelights/tiffin/internal/cart"
	"github.com/desidelights/tiffin/internal/model"
)

// Session is the authenticated user's in-memory state: profile, the
// restaurant cache, the favorite set, order history, and the cart
// ledger. It replaces the original client's ambient component globals
// with one object and single-writer mutators; the UI applies every
// network result through these methods from its update loop.
type Session struct {
	User  model.User
	Token string
	Cart  *cart.Ledger

	restaurants []model.Restaurant
	favorites   map[int]bool
	favPending  map[int]bool
	orders      []model.Order

	log *slog.Logger
}

func New(user model.User, token string, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		User:       user,
		Token:      token,
		Cart:       cart.New(),
		favorites:  make(map[int]bool),
		favPending: make(map[int]bool),
		log:        logger,
	}
}

// SetRestaurants replaces the catalog cache after a refresh.
func (s *Session) SetRestaurants(rs []model.Restaurant) {
	s.restaurants = rs
}

// Restaurants returns the cached catalog in server order.
func (s *Session) Restaurants() []model.Restaurant {
	return s.restaurants
}

// RestaurantByID looks a restaurant up in the cache.
func (s *Session) RestaurantByID(id int) (model.Restaurant, bool) {
	for _, r := range s.restaurants {
		if r.ID == id {
			return r, true
		}
	}
	return model.Restaurant{}, false
}

// SetFavorites replaces the favorite set from a GET /favorites result.
func (s *Session) SetFavorites(ids []int) {
	s.favorites = make(map[int]bool, len(ids))
	for _, id := range ids {
		s.favorites[id] = true
	}
}

// IsFavorite reports whether the restaurant is in the favorite set.
func (s *Session) IsFavorite(restaurantID int) bool {
	return s.favorites[restaurantID]
}

// FavoriteCount returns the size of the favorite set.
func (s *Session) FavoriteCount() int { return len(s.favorites) }

// FavoriteIDs returns the favorite set in ascending ID order.
func (s *Session) FavoriteIDs() []int {
	out := make([]int, 0, len(s.favorites))
	for id := range s.favorites {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

// BeginFavoriteToggle serializes toggles per restaurant: it reports the
// direction the toggle should take and marks the ID pending, or returns
// ok=false when a toggle for that ID is already in flight.
func (s *Session) BeginFavoriteToggle(restaurantID int) (adding, ok bool) {
	if s.favPending[restaurantID] {
		return false, false
	}
	s.favPending[restaurantID] = true
	return !s.favorites[restaurantID], true
}

// FinishFavoriteToggle applies the API outcome. State changes only on
// success, matching the original's confirm-then-apply behavior; a
// failure keeps the prior state and is logged.
func (s *Session) FinishFavoriteToggle(restaurantID int, adding bool, err error) {
	delete(s.favPending, restaurantID)
	if err != nil {
		s.log.Warn("favorite toggle failed", "restaurant_id", restaurantID, "err", err)
		return
	}
	if adding {
		s.favorites[restaurantID] = true
	} else {
		delete(s.favorites, restaurantID)
	}
}

// SetOrders replaces the order-history cache.
func (s *Session) SetOrders(orders []model.Order) {
	s.orders = orders
}

// AppendOrder records a freshly confirmed order.
func (s *Session) AppendOrder(o model.Order) {
	s.orders = append(s.orders, o)
}

// Orders returns the order-history cache.
func (s *Session) Orders() []model.Order { return s.orders }

// OrderRequest snapshots the cart into a POST /orders body with the
// total computed now, in paise, from the ledger.
func (s *Session) OrderRequest(address string) api.OrderRequest {
	lines := s.Cart.Lines()
	items := make([]model.OrderItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, model.OrderItem{
			ID:             l.Item.ID,
			Name:           l.Item.Name,
			Price:          l.Item.Price,
			Quantity:       l.Quantity,
			RestaurantName: l.RestaurantName,
		})
	}
	return api.OrderRequest{
		Items:   items,
		Total:   s.Cart.TotalRupees(),
		Address: address,
	}
}

// ConfirmOrder finalizes a successful submission: history grows, the
// cart clears. Called exactly once per confirmed order.
func (s *Session) ConfirmOrder(o model.Order) {
	s.AppendOrder(o)
	s.Cart.Clear()
}

// NoteRefreshFailure logs a swallowed background-refresh error. Prior
// state stays untouched so the UI keeps showing stale-but-consistent
// data.
func (s *Session) NoteRefreshFailure(what string, err error) {
	s.log.Warn("refresh failed, keeping cached data", "what", what, "err", err)
}
