package model

import "time"

// MenuItem is a single dish on a restaurant's menu. Read-only once
// fetched; the item ID is unique within its restaurant.
type MenuItem struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"desc"`
	Price       float64 `json:"price"`
	Veg         bool    `json:"veg"`
}

// Cuisine is the closed set of cuisine labels the backend serves.
type Cuisine string

const (
	CuisineHyderabadi  Cuisine = "Hyderabadi"
	CuisineSouthIndian Cuisine = "South Indian"
	CuisineNorthIndian Cuisine = "North Indian"
	CuisineStreetFood  Cuisine = "Street Food"
	CuisineTandoori    Cuisine = "Tandoori"
	CuisineBeverages   Cuisine = "Beverages"
)

// Cuisines lists every known cuisine in display order.
func Cuisines() []Cuisine {
	return []Cuisine{
		CuisineHyderabadi,
		CuisineSouthIndian,
		CuisineNorthIndian,
		CuisineStreetFood,
		CuisineTandoori,
		CuisineBeverages,
	}
}

// Valid reports whether c is one of the known cuisines.
func (c Cuisine) Valid() bool {
	for _, k := range Cuisines() {
		if c == k {
			return true
		}
	}
	return false
}

// Restaurant is a read-only projection of server state, refreshed on
// view entry.
type Restaurant struct {
	ID           int        `json:"id"`
	Name         string     `json:"name"`
	Cuisine      Cuisine    `json:"cuisine"`
	Rating       float64    `json:"rating"`
	DeliveryTime string     `json:"deliveryTime"`
	Image        string     `json:"image"`
	Menu         []MenuItem `json:"menu"`
}

// User is the authenticated profile returned by login/register.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// OrderItem is a cart-line snapshot frozen into an order at submission.
type OrderItem struct {
	ID             int     `json:"id"`
	Name           string  `json:"name"`
	Price          float64 `json:"price"`
	Quantity       int     `json:"quantity"`
	RestaurantName string  `json:"restaurantName"`
}

// Order is immutable once created. Total is computed at submission time
// and never recomputed by the client.
type Order struct {
	ID        string      `json:"_id"`
	Items     []OrderItem `json:"items"`
	Total     float64     `json:"total"`
	Address   string      `json:"address"`
	CreatedAt time.Time   `json:"createdAt"`
}
