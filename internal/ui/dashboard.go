package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rarefinebooks/backroom/internal/bookstore"
)

// recentOrderCount limits the dashboard order list.
const recentOrderCount = 5

func (m Model) renderDashboard() string {
	height := m.contentHeight()
	if m.width < 20 || height < 8 {
		return ""
	}

	tileHeight := 4
	tiles := m.renderStatTiles(tileHeight)
	ordersHeight := height - tileHeight
	orders := m.renderTitledBox("Recent Orders", m.recentOrdersContent(), m.width, ordersHeight, false)

	return tiles + "\n" + orders
}

func (m Model) renderStatTiles(height int) string {
	stats := m.snapshot.Stats()
	styles := m.theme.Styles()

	type tile struct {
		label string
		value string
		style lipgloss.Style
	}
	tiles := []tile{
		{"Total Orders", fmt.Sprintf("%d", stats.TotalOrders), styles.AccentText},
		{"Pending", fmt.Sprintf("%d", stats.PendingOrders), styles.WarningText},
		{"Revenue", money(stats.TotalRevenue), styles.SuccessText},
		{"Books", fmt.Sprintf("%d", stats.TotalBooks), styles.InfoText},
		{"Low Stock", fmt.Sprintf("%d", stats.LowStock), styles.DangerText},
	}

	tileWidth := m.width / len(tiles)
	rendered := make([]string, 0, len(tiles))
	for i, t := range tiles {
		w := tileWidth
		if i == len(tiles)-1 {
			// Last tile absorbs the rounding remainder.
			w = m.width - tileWidth*(len(tiles)-1)
		}
		content := " " + t.style.Bold(true).Render(t.value) + "\n " + styles.MutedText.Render(t.label)
		rendered = append(rendered, m.renderTitledBox("", content, w, height, false))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

// recentOrdersContent lists the newest orders, one per line.
func (m Model) recentOrdersContent() string {
	styles := m.theme.Styles()

	if m.snapshot.OrdersError != nil {
		return " " + styles.DangerText.Render("Failed to load orders: "+m.snapshot.OrdersError.Error())
	}
	if !m.snapshot.OrdersLoaded {
		return " " + styles.MutedText.Render("Loading orders...")
	}
	if len(m.snapshot.Orders) == 0 {
		return " " + styles.MutedText.Render("No orders yet")
	}

	orders := make([]bookstore.Order, len(m.snapshot.Orders))
	copy(orders, m.snapshot.Orders)
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].ParsedCreatedAt().After(orders[j].ParsedCreatedAt())
	})
	if len(orders) > recentOrderCount {
		orders = orders[:recentOrderCount]
	}

	nameWidth := max(12, m.width/4)
	var lines []string
	for _, order := range orders {
		line := " " + styles.Text.Render(fmt.Sprintf("%-12s", truncate(order.OrderID, 12))) +
			"  " + styles.MutedText.Render(fmt.Sprintf("%-*s", nameWidth, truncate(order.CustomerName, nameWidth))) +
			"  " + m.statusBadge(order.Status) +
			"  " + styles.Text.Render(money(order.Total))
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}

// statusBadge renders a colored status chip.
func (m Model) statusBadge(status bookstore.Status) string {
	return m.theme.Styles().StatusStyle(string(status)).Render(titleCase(string(status)))
}
