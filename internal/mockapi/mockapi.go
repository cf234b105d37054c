package mockapi

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jaswdr/faker"

	"github.com/desidelights/tiffin/internal/model"
)

// Server is an in-memory stand-in for the storefront backend, enough to
// run the client end to end without a real deployment. Accounts,
// favorites, and orders live for the process; restaurants are seeded
// once with faker-generated details.
type Server struct {
	mu          sync.Mutex
	restaurants []model.Restaurant
	accounts    map[string]*account      // by email
	tokens      map[string]string        // token -> email
	favorites   map[string]map[int]bool  // email -> restaurant IDs
	orders      map[string][]model.Order // email -> history
	idempotent  map[string]model.Order   // Idempotency-Key -> order
	log         *slog.Logger
}

type account struct {
	user     model.User
	password string
}

func New(logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		restaurants: seedRestaurants(),
		accounts:    make(map[string]*account),
		tokens:      make(map[string]string),
		favorites:   make(map[string]map[int]bool),
		orders:      make(map[string][]model.Order),
		idempotent:  make(map[string]model.Order),
		log:         logger,
	}
}

// Restaurants exposes the seeded catalog, mostly for tests.
func (s *Server) Restaurants() []model.Restaurant {
	return s.restaurants
}

// Handler routes the consumed API surface.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/register", s.handleRegister)
	mux.HandleFunc("POST /auth/login", s.handleLogin)
	mux.HandleFunc("GET /restaurants", s.handleRestaurants)
	mux.HandleFunc("GET /favorites", s.withAuth(s.handleGetFavorites))
	mux.HandleFunc("POST /favorites", s.withAuth(s.handleAddFavorite))
	mux.HandleFunc("DELETE /favorites/{id}", s.withAuth(s.handleRemoveFavorite))
	mux.HandleFunc("GET /orders", s.withAuth(s.handleGetOrders))
	mux.HandleFunc("POST /orders", s.withAuth(s.handleCreateOrder))
	return mux
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Name == "" || in.Email == "" || in.Password == "" {
		writeMessage(w, http.StatusBadRequest, "name, email and password are required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[in.Email]; exists {
		writeMessage(w, http.StatusConflict, "account already exists")
		return
	}
	acct := &account{
		user:     model.User{ID: uuid.NewString(), Name: in.Name, Email: in.Email},
		password: in.Password,
	}
	s.accounts[in.Email] = acct
	token := s.issueToken(in.Email)
	s.log.Info("account registered", "email", in.Email)
	writeJSON(w, http.StatusCreated, map[string]any{"user": acct.user, "token": token})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, "email and password are required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	acct, ok := s.accounts[in.Email]
	if !ok || acct.password != in.Password {
		writeMessage(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	token := s.issueToken(in.Email)
	writeJSON(w, http.StatusOK, map[string]any{"user": acct.user, "token": token})
}

func (s *Server) handleRestaurants(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.restaurants)
}

func (s *Server) handleGetFavorites(w http.ResponseWriter, r *http.Request, email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]int, 0, len(s.favorites[email]))
	for id := range s.favorites[email] {
		ids = append(ids, id)
	}
	writeJSON(w, http.StatusOK, ids)
}

func (s *Server) handleAddFavorite(w http.ResponseWriter, r *http.Request, email string) {
	var in struct {
		RestaurantID int `json:"restaurantId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, "restaurantId is required")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.favorites[email] == nil {
		s.favorites[email] = make(map[int]bool)
	}
	s.favorites[email][in.RestaurantID] = true
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRemoveFavorite(w http.ResponseWriter, r *http.Request, email string) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "bad restaurant id")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.favorites[email], id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetOrders(w http.ResponseWriter, r *http.Request, email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	orders := s.orders[email]
	if orders == nil {
		orders = []model.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}

func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request, email string) {
	var in struct {
		Items   []model.OrderItem `json:"items"`
		Total   float64           `json:"total"`
		Address string            `json:"address"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || len(in.Items) == 0 || in.Address == "" {
		writeMessage(w, http.StatusBadRequest, "items and address are required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// A replayed Idempotency-Key returns the original order instead of
	// creating a duplicate.
	key := r.Header.Get("Idempotency-Key")
	if key != "" {
		if prev, ok := s.idempotent[key]; ok {
			writeJSON(w, http.StatusOK, prev)
			return
		}
	}

	order := model.Order{
		ID:        strings.ReplaceAll(uuid.NewString(), "-", ""),
		Items:     in.Items,
		Total:     in.Total,
		Address:   in.Address,
		CreatedAt: time.Now().UTC(),
	}
	s.orders[email] = append(s.orders[email], order)
	if key != "" {
		s.idempotent[key] = order
	}
	s.log.Info("order created", "email", email, "order_id", order.ID, "total", order.Total)
	writeJSON(w, http.StatusCreated, order)
}

// withAuth resolves the bearer token to an account email.
func (s *Server) withAuth(next func(http.ResponseWriter, *http.Request, string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		s.mu.Lock()
		email, ok := s.tokens[token]
		s.mu.Unlock()
		if header == "" || !ok {
			writeMessage(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next(w, r, email)
	}
}

// issueToken must be called with the lock held.
func (s *Server) issueToken(email string) string {
	token := uuid.NewString()
	s.tokens[token] = email
	return token
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

// seedRestaurants builds the demo catalog: curated names over the fixed
// cuisine set so search and filters have something to bite on, with
// faker filling in the incidental details.
func seedRestaurants() []model.Restaurant {
	f := faker.New()
	nextItemID := 1

	menuItem := func(name string, veg bool) model.MenuItem {
		it := model.MenuItem{
			ID:          nextItemID,
			Name:        name,
			Description: f.Lorem().Sentence(8),
			Price:       float64(f.IntBetween(40, 420)),
			Veg:         veg,
		}
		nextItemID++
		return it
	}
	meta := func() (float64, string) {
		rating := f.Float64(1, 3, 5)
		if rating > 5 {
			rating = 5
		}
		return rating, fmt.Sprintf("%d-%d min", f.IntBetween(20, 30), f.IntBetween(35, 55))
	}

	type seed struct {
		name    string
		cuisine model.Cuisine
		image   string
		items   []model.MenuItem
	}
	seeds := []seed{
		{"Paradise Biryani House", model.CuisineHyderabadi, "🍛", []model.MenuItem{
			menuItem("Chicken Dum Biryani", false),
			menuItem("Veg Biryani", true),
			menuItem("Mirchi ka Salan", true),
		}},
		{"Udupi Grand", model.CuisineSouthIndian, "🥞", []model.MenuItem{
			menuItem("Masala Dosa", true),
			menuItem("Idli Sambar", true),
			menuItem("Filter Coffee", true),
		}},
		{"Pind Da Dhaba", model.CuisineNorthIndian, "🫓", []model.MenuItem{
			menuItem("Butter Chicken", false),
			menuItem("Dal Makhani", true),
			menuItem("Garlic Naan", true),
		}},
		{"Chaat Gali", model.CuisineStreetFood, "🥘", []model.MenuItem{
			menuItem("Pani Puri", true),
			menuItem("Pav Bhaji", true),
			menuItem("Aloo Tikki", true),
		}},
		{"Angeethi Tandoor", model.CuisineTandoori, "🍢", []model.MenuItem{
			menuItem("Tandoori Chicken", false),
			menuItem("Paneer Tikka", true),
			menuItem("Seekh Kebab", false),
		}},
		{"Chaiwala Corner", model.CuisineBeverages, "🍵", []model.MenuItem{
			menuItem("Cutting Chai", true),
			menuItem("Mango Lassi", true),
			menuItem("Masala Soda", true),
		}},
	}

	out := make([]model.Restaurant, 0, len(seeds))
	for i, sd := range seeds {
		rating, delivery := meta()
		out = append(out, model.Restaurant{
			ID:           i + 1,
			Name:         sd.name,
			Cuisine:      sd.cuisine,
			Rating:       rating,
			DeliveryTime: delivery,
			Image:        sd.image,
			Menu:         sd.items,
		})
	}
	return out
}
