package cart

import (
	"fmt"
	"math"

	"github.com/desidelights/tiffin/internal/model"
)

// Line is one cart entry: a menu item, how many of it, and the name of
// the restaurant it came from.
type Line struct {
	Item           model.MenuItem
	Quantity       int
	RestaurantName string
}

// Subtotal returns the line's price×quantity in paise.
func (l Line) Subtotal() int64 {
	return paise(l.Item.Price) * int64(l.Quantity)
}

// Ledger holds the session's cart lines in insertion order. At most one
// line exists per menu-item ID, and every present line has quantity ≥ 1.
// Not safe for concurrent use; the app mutates it from a single place.
type Ledger struct {
	lines []Line
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{}
}

// Add puts one unit of item in the cart. If a line for the item already
// exists its quantity grows by one, otherwise a new line is appended.
func (g *Ledger) Add(item model.MenuItem, restaurantName string) {
	for i := range g.lines {
		if g.lines[i].Item.ID == item.ID {
			g.lines[i].Quantity++
			return
		}
	}
	g.lines = append(g.lines, Line{Item: item, Quantity: 1, RestaurantName: restaurantName})
}

// Adjust changes the quantity of the line with the given item ID by
// delta. A resulting quantity ≤ 0 removes the line. Unknown IDs are
// ignored.
func (g *Ledger) Adjust(itemID, delta int) {
	for i := range g.lines {
		if g.lines[i].Item.ID != itemID {
			continue
		}
		if q := g.lines[i].Quantity + delta; q > 0 {
			g.lines[i].Quantity = q
		} else {
			g.lines = append(g.lines[:i], g.lines[i+1:]...)
		}
		return
	}
}

// Remove deletes the line with the given item ID if present.
func (g *Ledger) Remove(itemID int) {
	for i := range g.lines {
		if g.lines[i].Item.ID == itemID {
			g.lines = append(g.lines[:i], g.lines[i+1:]...)
			return
		}
	}
}

// Clear empties the ledger. Called after a successful order submission.
func (g *Ledger) Clear() {
	g.lines = nil
}

// Lines returns a copy of the cart contents in insertion order.
func (g *Ledger) Lines() []Line {
	out := make([]Line, len(g.lines))
	copy(out, g.lines)
	return out
}

// Len returns the number of distinct lines.
func (g *Ledger) Len() int { return len(g.lines) }

// Units returns the total number of items across all lines.
func (g *Ledger) Units() int {
	n := 0
	for _, l := range g.lines {
		n += l.Quantity
	}
	return n
}

// Empty reports whether the cart has no lines.
func (g *Ledger) Empty() bool { return len(g.lines) == 0 }

// TotalPaise sums price×quantity over all lines in integer paise,
// iterating in line order so the result is reproducible.
func (g *Ledger) TotalPaise() int64 {
	var sum int64
	for _, l := range g.lines {
		sum += l.Subtotal()
	}
	return sum
}

// Total renders the cart total in rupees with two decimals, e.g.
// "250.00".
func (g *Ledger) Total() string {
	return FormatPaise(g.TotalPaise())
}

// TotalRupees returns the total as a float rupee amount, the unit the
// backend expects on order creation.
func (g *Ledger) TotalRupees() float64 {
	return float64(g.TotalPaise()) / 100
}

// FormatPaise renders a paise amount as a two-decimal rupee string.
func FormatPaise(p int64) string {
	return fmt.Sprintf("%d.%02d", p/100, p%100)
}

// paise converts a rupee price to integer paise. Prices come off the
// wire as floats; rounding here keeps per-line arithmetic exact.
func paise(price float64) int64 {
	return int64(math.Round(price * 100))
}
