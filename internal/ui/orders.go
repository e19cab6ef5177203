package ui

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rarefinebooks/backroom/internal/bookstore"
)

// ordersState holds order browsing state. filter is an index into
// bookstore.Statuses, or -1 for all orders.
type ordersState struct {
	selected int
	filter   int
}

func newOrdersState() ordersState {
	return ordersState{filter: -1}
}

func (m Model) orderFilterLabel() string {
	if m.orders.filter < 0 {
		return "All"
	}
	return titleCase(string(bookstore.Statuses[m.orders.filter]))
}

// filteredOrders applies the status filter and sorts newest first.
func (m Model) filteredOrders() []bookstore.Order {
	var filter bookstore.Status
	if m.orders.filter >= 0 {
		filter = bookstore.Statuses[m.orders.filter]
	}
	return filterOrders(m.snapshot.Orders, filter)
}

// filterOrders returns orders matching the status, newest first. A zero
// status matches everything.
func filterOrders(orders []bookstore.Order, status bookstore.Status) []bookstore.Order {
	var out []bookstore.Order
	for _, order := range orders {
		if status == "" || order.Status == status {
			out = append(out, order)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ParsedCreatedAt().After(out[j].ParsedCreatedAt())
	})
	return out
}

func (m Model) selectedOrder() *bookstore.Order {
	orders := m.filteredOrders()
	if len(orders) == 0 || m.orders.selected >= len(orders) {
		return nil
	}
	return &orders[m.orders.selected]
}

func (m Model) handleOrdersKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	orders := m.filteredOrders()

	switch msg.String() {
	case "j", "down":
		if m.orders.selected < len(orders)-1 {
			m.orders.selected++
		}
	case "k", "up":
		if m.orders.selected > 0 {
			m.orders.selected--
		}
	case "g", "home":
		m.orders.selected = 0
	case "G", "end":
		m.orders.selected = max(0, len(orders)-1)

	case "f":
		m.orders.filter++
		if m.orders.filter >= len(bookstore.Statuses) {
			m.orders.filter = -1
		}
		m.orders.selected = 0

	case "1", "2", "3", "4":
		if order := m.selectedOrder(); order != nil {
			status := bookstore.Statuses[int(msg.String()[0]-'1')]
			if order.Status == status {
				return m, nil
			}
			return m, setOrderStatusCmd(m.ctx, m.client, m.session, order.OrderID, status)
		}
	}

	return m, nil
}

func (m Model) handleOrderStatus(msg orderStatusMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m, m.setNotice("Status change failed: "+msg.err.Error(), true)
	}
	// Re-fetch rather than patching: the server may normalize or reject.
	return m, tea.Batch(
		m.setNotice(fmt.Sprintf("Order %s set to %s", msg.orderID, msg.status), false),
		refreshOrdersCmd(m.ctx, m.client, m.store),
	)
}

func (m Model) renderOrders() string {
	height := m.contentHeight()
	if m.width < 40 || height < 4 {
		return ""
	}

	listWidth := m.width * 3 / 5
	detailWidth := m.width - listWidth

	list := m.renderTitledBox(m.ordersTitle(), m.ordersListContent(listWidth-2, height-2), listWidth, height, true)
	detail := m.renderTitledBox("Order", m.orderDetailContent(detailWidth-4), detailWidth, height, false)

	return lipgloss.JoinHorizontal(lipgloss.Top, list, detail)
}

func (m Model) ordersTitle() string {
	total := len(m.snapshot.Orders)
	if m.orders.filter < 0 {
		return fmt.Sprintf("Orders (%d)", total)
	}
	return fmt.Sprintf("Orders (%d/%d) %s", len(m.filteredOrders()), total, m.orderFilterLabel())
}

func (m Model) ordersListContent(width, height int) string {
	styles := m.theme.Styles()

	if m.snapshot.OrdersError != nil {
		return " " + styles.DangerText.Render("Failed to load orders: "+m.snapshot.OrdersError.Error())
	}
	if !m.snapshot.OrdersLoaded {
		return " " + styles.MutedText.Render("Loading orders...")
	}

	orders := m.filteredOrders()
	if len(orders) == 0 {
		if m.orders.filter >= 0 {
			return " " + styles.MutedText.Render("No "+strings.ToLower(m.orderFilterLabel())+" orders")
		}
		return " " + styles.MutedText.Render("No orders yet")
	}

	start := 0
	if m.orders.selected >= height {
		start = m.orders.selected - height + 1
	}

	nameWidth := max(10, width-42)
	var lines []string
	for i := start; i < len(orders) && i-start < height; i++ {
		order := orders[i]
		line := fmt.Sprintf(" %-12s %-*s %9s ",
			truncate(order.OrderID, 12),
			nameWidth, truncate(order.CustomerName, nameWidth),
			money(order.Total))

		if i == m.orders.selected {
			line = styles.Selected.Render(line) + " " + m.statusBadge(order.Status)
		} else {
			line = styles.Text.Render(line) + " " + m.statusBadge(order.Status)
		}
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}

func (m Model) orderDetailContent(width int) string {
	styles := m.theme.Styles()

	order := m.selectedOrder()
	if order == nil {
		return " " + styles.MutedText.Render("No order selected")
	}

	label := func(s string) string { return " " + styles.MutedText.Render(s) }
	value := func(s string) string { return " " + styles.Text.Render(truncate(s, width)) }

	lines := []string{
		" " + styles.Text.Render(order.OrderID) + "  " + m.statusBadge(order.Status),
		"",
		label("Customer"),
		value(order.CustomerName),
		value(order.CustomerEmail),
	}

	if order.CustomerAddress != "" {
		lines = append(lines,
			label("Ships to"),
			value(order.CustomerAddress),
			value(strings.TrimSpace(order.CustomerPostalCode+" "+order.CustomerCity)),
			value(order.CustomerCountry),
		)
	}

	if created := order.ParsedCreatedAt(); !created.IsZero() {
		lines = append(lines, label("Placed"), value(created.Format("2006-01-02 15:04")))
	}

	lines = append(lines, "", label("Items"))
	for _, item := range order.Items {
		qty := fmt.Sprintf("%dx ", item.Quantity)
		titleWidth := max(6, width-len(qty)-10)
		lines = append(lines, " "+styles.Text.Render(qty+truncate(item.Title, titleWidth))+
			"  "+styles.MutedText.Render(money(item.LineTotal())))
	}
	lines = append(lines, "", label("Total"), " "+styles.SuccessText.Render(money(order.Total)))

	return strings.Join(lines, "\n")
}
