package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the status bar: logo, connection state, collection
// counts, and the current notice.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)
	sep := bg.Spaces(2)

	var parts []string
	parts = append(parts, bg.Render("backroom", styles.Logo))

	switch {
	case m.snapshot.BooksError != nil || m.snapshot.OrdersError != nil:
		parts = append(parts, bg.Render("● DEGRADED", styles.DangerText))
	case !m.snapshot.BooksLoaded && !m.snapshot.OrdersLoaded:
		parts = append(parts, bg.Render("● LOADING", styles.WarningText))
	default:
		parts = append(parts, bg.Render("● ONLINE", styles.SuccessText))
	}

	parts = append(parts,
		bg.Render("Books:", styles.MutedText)+bg.Space()+
			bg.Render(fmt.Sprintf("%d", len(m.snapshot.Books)), styles.Text),
		bg.Render("Orders:", styles.MutedText)+bg.Space()+
			bg.Render(fmt.Sprintf("%d", len(m.snapshot.Orders)), styles.Text),
	)

	if !m.snapshot.LastUpdated.IsZero() {
		parts = append(parts, bg.Render(m.snapshot.LastUpdated.Format("15:04:05"), styles.FaintText))
	}

	if m.notice.text != "" {
		style := styles.SuccessText
		if m.notice.isErr {
			style = styles.DangerText
		}
		parts = append(parts, bg.Render(truncate(m.notice.text, max(10, m.width/2)), style))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, sep))
}

// renderCommandBar renders the key hints for the active screen.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch m.screen {
	case ScreenBooks:
		if m.books.searching {
			commands = []cmd{
				{"Enter", "Apply"},
				{"Esc", "Cancel"},
			}
		} else if m.books.confirmDelete {
			commands = []cmd{
				{"y", "Delete"},
				{"n", "Keep"},
			}
		} else {
			commands = []cmd{
				{"j/k", "Navigate"},
				{"/", "Search"},
				{"a", "Add"},
				{"e", "Edit"},
				{"d", "Delete"},
				{"i", "Images"},
				{"r", "Refresh"},
				{"Tab", "Next tab"},
				{"?", "More"},
			}
		}
	case ScreenOrders:
		commands = []cmd{
			{"j/k", "Navigate"},
			{"f", "Filter: " + m.orderFilterLabel()},
			{"1-4", "Set status"},
			{"r", "Refresh"},
			{"Tab", "Next tab"},
			{"?", "More"},
		}
	case ScreenImages:
		if m.imgs.uploading {
			commands = []cmd{
				{"Tab", "Next field"},
				{"Space", "Toggle primary"},
				{"Enter", "Upload"},
				{"Esc", "Back"},
			}
		} else if m.imgs.confirmDelete {
			commands = []cmd{
				{"y", "Delete"},
				{"n", "Keep"},
			}
		} else {
			commands = []cmd{
				{"j/k", "Navigate"},
				{"u", "Upload"},
				{"d", "Delete"},
				{"r", "Reload"},
				{"Esc", "Back"},
			}
		}
	case ScreenBookForm:
		commands = []cmd{
			{"Tab", "Next field"},
			{"Enter", "Save"},
			{"Esc", "Cancel"},
		}
	default: // ScreenDashboard
		commands = []cmd{
			{"b", "Books"},
			{"o", "Orders"},
			{"r", "Refresh"},
			{"Tab", "Next tab"},
			{"L", "Logout"},
			{"q", "Quit"},
			{"?", "More"},
		}
	}

	colon := bg.Sep(":")
	sep := bg.Spaces(2)

	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}

	if m.screen == ScreenBooks && m.books.query != "" && !m.books.searching {
		segments = append(segments, bg.Render("/"+truncate(m.books.query, 18), styles.AccentText))
	}

	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(strings.Join(segments, sep))
}

// renderHelp draws the full-screen key reference overlay.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	bindings := []struct{ key, desc string }{
		{"h / b / o", "Dashboard, Books, Orders"},
		{"Tab / Shift+Tab", "Cycle tabs"},
		{"j / k", "Move selection"},
		{"g / G", "First / last row"},
		{"/", "Search books (title, author, ISBN)"},
		{"a / e / d", "Add, edit, delete book"},
		{"i", "Manage images for selected book"},
		{"f", "Cycle order status filter"},
		{"1-4", "Set order status (pending, processing, sent, completed)"},
		{"r", "Refresh from server"},
		{"T", "Cycle theme"},
		{"L", "Log out"},
		{"q / Ctrl+C", "Quit"},
	}

	var b strings.Builder
	b.WriteString(styles.Logo.Render("backroom"))
	b.WriteString(styles.MutedText.Render("  key reference"))
	b.WriteString("\n\n")
	for _, bind := range bindings {
		b.WriteString(styles.AccentText.Render(fmt.Sprintf("%-16s", bind.key)))
		b.WriteString(styles.Text.Render(bind.desc))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("Press any key to close"))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Border)).
		Padding(1, 3).
		Render(b.String())

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// renderTitledBox draws bordered content with the title embedded in the top
// border, filling exactly width by height cells.
func (m Model) renderTitledBox(title, content string, width, height int, focused bool) string {
	var borderColorStr, bgColorStr string
	if focused {
		borderColorStr = m.theme.BorderFocus
		bgColorStr = m.theme.FocusBg
	} else {
		borderColorStr = m.theme.Border
		bgColorStr = m.theme.SurfaceAlt
	}
	bg := NewBgStyle(bgColorStr)
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColorStr))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Text))

	innerWidth := width - 2
	title = truncate(title, max(0, innerWidth-4))
	leftPad := max(0, (innerWidth-len(title)-2)/2)
	rightPad := max(0, innerWidth-len(title)-2-leftPad)

	topBorder := bg.Render("┌", borderStyle) +
		bg.Render(strings.Repeat("─", leftPad), borderStyle) +
		bg.Render(" "+title+" ", titleStyle) +
		bg.Render(strings.Repeat("─", rightPad), borderStyle) +
		bg.Render("┐", borderStyle)

	bottomBorder := bg.Render("└", borderStyle) +
		bg.Render(strings.Repeat("─", innerWidth), borderStyle) +
		bg.Render("┘", borderStyle)

	contentStyle := lipgloss.NewStyle().Width(innerWidth).Background(lipgloss.Color(bgColorStr))

	contentLines := strings.Split(content, "\n")
	boxHeight := height - 2

	var paddedLines []string
	for i := 0; i < boxHeight; i++ {
		var line string
		if i < len(contentLines) {
			line = contentLines[i]
		}
		paddedLines = append(paddedLines,
			bg.Render("│", borderStyle)+
				contentStyle.Render(line)+
				bg.Render("│", borderStyle))
	}

	return topBorder + "\n" + strings.Join(paddedLines, "\n") + "\n" + bottomBorder
}

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

// money formats an amount the way the storefront shows prices.
func money(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}

// titleCase converts a lowercase status to Title Case for display.
func titleCase(s string) string {
	words := strings.Fields(strings.ReplaceAll(s, "_", " "))
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}
	return strings.Join(words, " ")
}
