package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/desidelights/tiffin/internal/cart"
	"github.com/desidelights/tiffin/internal/checkout"
)

// ---------------------------------------------------
// Cart view (flow: Reviewing)
// ---------------------------------------------------

func (m appModel) updateCart(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	lines := m.sess.Cart.Lines()
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		// continue shopping
		m.view = viewBrowse
		return m, nil
	case "up", "k":
		if m.cartCursor > 0 {
			m.cartCursor--
		}
		return m, nil
	case "down", "j":
		if m.cartCursor < len(lines)-1 {
			m.cartCursor++
		}
		return m, nil
	case "+", "right":
		if m.cartCursor < len(lines) {
			m.sess.Cart.Adjust(lines[m.cartCursor].Item.ID, +1)
		}
		return m, nil
	case "-", "left":
		if m.cartCursor < len(lines) {
			m.sess.Cart.Adjust(lines[m.cartCursor].Item.ID, -1)
			m.clampCartCursor()
		}
		return m, nil
	case "x", "d":
		if m.cartCursor < len(lines) {
			m.sess.Cart.Remove(lines[m.cartCursor].Item.ID)
			m.clampCartCursor()
		}
		return m, nil
	case "enter", "p":
		if m.sess.Cart.Empty() {
			return m, nil
		}
		m.flow.BeginPayment()
		if m.flow.State() == checkout.CollectingPayment {
			m.view = viewPayment
			m.focus = 0
			m.inputs[0].Focus()
		}
		return m, nil
	}
	return m, nil
}

func (m *appModel) clampCartCursor() {
	if n := m.sess.Cart.Len(); m.cartCursor >= n {
		m.cartCursor = max(0, n-1)
	}
}

func (m appModel) viewCart() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Your Cart 🛒") + "\n\n")

	lines := m.sess.Cart.Lines()
	if len(lines) == 0 {
		b.WriteString(mutedStyle.Render("Your cart is empty") + "\n")
		b.WriteString("\n" + helpStyle.Render("esc continue shopping"))
		return panelString(b.String())
	}

	for i, l := range lines {
		prefix := "  "
		if i == m.cartCursor {
			prefix = selectedStyle.Render("> ")
		}
		b.WriteString(fmt.Sprintf("%s%s %s\n", prefix, titleStyle.Render(l.Item.Name), mutedStyle.Render(l.RestaurantName)))
		b.WriteString(fmt.Sprintf("   %s  %s\n",
			accentStyle.Render(fmt.Sprintf("– %d +", l.Quantity)),
			priceStyle.Render("₹"+cart.FormatPaise(l.Subtotal())),
		))
	}

	b.WriteString("\n" + titleStyle.Render("Total: ") + priceStyle.Render("₹"+m.sess.Cart.Total()) + "\n")
	b.WriteString("\n" + helpStyle.Render("+/- quantity • x remove • enter checkout • esc continue shopping"))
	return panelString(b.String())
}

// ---------------------------------------------------
// Payment view (flow: CollectingPayment)
// ---------------------------------------------------

func (m appModel) paymentForm() checkout.Form {
	return checkout.Form{
		CardNumber: m.inputs[0].Value(),
		Expiry:     m.inputs[1].Value(),
		CVV:        m.inputs[2].Value(),
		Address:    m.inputs[3].Value(),
	}
}

func (m appModel) updatePayment(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The submit control is inert while a call is in flight; only quit
	// still works.
	if m.flow.InFlight() {
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.flow.BackToCart()
		if m.flow.State() == checkout.Reviewing {
			m.view = viewCart
		}
		return m, nil
	case "tab", "down":
		return m.focusPayment(m.focus + 1), nil
	case "shift+tab", "up":
		return m.focusPayment(m.focus - 1), nil
	case "enter":
		if m.focus < paymentFields-1 {
			// enter advances through the form; submit happens on the
			// last field
			return m.focusPayment(m.focus + 1), nil
		}
		err := m.flow.BeginSubmit(m.paymentForm())
		if err != nil {
			if errors.Is(err, checkout.ErrSubmitInFlight) {
				return m, nil
			}
			// validation failure: the view renders flow.Err
			return m, nil
		}
		req := m.sess.OrderRequest(strings.TrimSpace(m.inputs[3].Value()))
		return m, tea.Batch(m.spin.Tick, placeOrder(m.client, req))
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m appModel) focusPayment(i int) appModel {
	m.inputs[m.focus].Blur()
	m.focus = (i + paymentFields) % paymentFields
	m.inputs[m.focus].Focus()
	return m
}

func (m appModel) viewPayment() string {
	labels := [paymentFields]string{"Card Number", "Expiry Date", "CVV", "Delivery Address"}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Payment Details 💳") + "\n\n")
	for i := range m.inputs {
		b.WriteString(mutedStyle.Render(labels[i]) + "\n")
		b.WriteString(m.inputs[i].View() + "\n")
	}

	b.WriteString("\n" + titleStyle.Render("Total Amount: ") + priceStyle.Render("₹"+m.sess.Cart.Total()) + "\n")

	if m.flow.InFlight() {
		b.WriteString("\n" + m.spin.View() + mutedStyle.Render(" placing your order..."))
	} else if err := m.flow.Err(); err != nil {
		if checkout.IsValidation(err) {
			b.WriteString("\n" + errorStyle.Render("✖ "+err.Error()))
		} else {
			b.WriteString("\n" + errorStyle.Render("✖ order failed: "+err.Error()))
			b.WriteString("\n" + mutedStyle.Render("press enter on the address field to try again"))
		}
	}

	b.WriteString("\n\n" + helpStyle.Render("tab next field • enter complete payment • esc back to cart"))
	return panelString(b.String())
}

// ---------------------------------------------------
// Confirmed view (flow: Confirmed)
// ---------------------------------------------------

func (m appModel) viewConfirmed() string {
	var b strings.Builder
	b.WriteString(successStyle.Render("✔ Order Confirmed! 🎉") + "\n\n")
	b.WriteString("Your delicious food is on the way!\n\n")
	b.WriteString("🚚💨\n")
	return panelString(b.String())
}
