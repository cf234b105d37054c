package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

func (m appModel) updateOrders(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = viewBrowse
		return m, nil
	case "r":
		return m, fetchOrders(m.client)
	}
	return m, nil
}

func (m appModel) viewOrders() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Order History 📦") + "\n\n")

	orders := m.sess.Orders()
	if len(orders) == 0 {
		b.WriteString(mutedStyle.Render("📭 No orders yet") + "\n")
		b.WriteString("\n" + helpStyle.Render("esc back"))
		return panelString(b.String())
	}

	// newest first
	for i := len(orders) - 1; i >= 0; i-- {
		o := orders[i]
		id := o.ID
		if len(id) > 6 {
			id = id[len(id)-6:]
		}
		b.WriteString(accentStyle.Render("Order #"+id) + mutedStyle.Render("  "+o.CreatedAt.Local().Format("02 Jan 2006 15:04")) + "\n")
		b.WriteString(mutedStyle.Render("📍 "+o.Address) + "\n")
		for _, it := range o.Items {
			b.WriteString(fmt.Sprintf("  %dx %s  %s\n", it.Quantity, it.Name, priceStyle.Render(fmt.Sprintf("₹%.2f", it.Price*float64(it.Quantity)))))
		}
		b.WriteString(successStyle.Render(fmt.Sprintf("  ₹%.2f ✓ Delivered", o.Total)) + "\n\n")
	}

	b.WriteString(helpStyle.Render("r refresh • esc back"))
	return panelString(b.String())
}
