package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rarefinebooks/backroom/internal/images"
	"github.com/rarefinebooks/backroom/internal/state"
)

// booksState holds catalog browsing state: cursor, search, and the pending
// delete confirmation.
type booksState struct {
	selected      int
	search        textinput.Model
	searching     bool
	query         string
	confirmDelete bool
}

func newBooksState() booksState {
	search := textinput.New()
	search.Placeholder = "title, author, or ISBN"
	search.CharLimit = 80
	search.Width = 32
	return booksState{search: search}
}

// filteredBooks applies the active search query to the snapshot.
func (m Model) filteredBooks() []images.Listing {
	return filterBooks(m.snapshot.Books, m.books.query)
}

// filterBooks matches the query case-insensitively against title and
// author, and as a substring of the ISBN. A blank query matches everything.
func filterBooks(books []images.Listing, query string) []images.Listing {
	query = strings.TrimSpace(strings.ToLower(query))
	if query == "" {
		return books
	}
	var out []images.Listing
	for _, book := range books {
		if strings.Contains(strings.ToLower(book.Title), query) ||
			strings.Contains(strings.ToLower(book.Author), query) ||
			strings.Contains(strings.ToLower(book.ISBN), query) {
			out = append(out, book)
		}
	}
	return out
}

func (m Model) selectedBook() *images.Listing {
	books := m.filteredBooks()
	if len(books) == 0 || m.books.selected >= len(books) {
		return nil
	}
	return &books[m.books.selected]
}

func (m Model) handleBooksKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	books := m.filteredBooks()

	switch msg.String() {
	case "j", "down":
		if m.books.selected < len(books)-1 {
			m.books.selected++
		}
	case "k", "up":
		if m.books.selected > 0 {
			m.books.selected--
		}
	case "g", "home":
		m.books.selected = 0
	case "G", "end":
		m.books.selected = max(0, len(books)-1)

	case "/":
		m.books.searching = true
		m.books.search.SetValue(m.books.query)
		return m, m.books.search.Focus()

	case "esc":
		if m.books.query != "" {
			m.books.query = ""
			m.books.selected = 0
		}

	case "a":
		m.form = newBookFormState(nil)
		m.screen = ScreenBookForm
		return m, m.form.inputs[0].Focus()

	case "e", "enter":
		if book := m.selectedBook(); book != nil {
			m.form = newBookFormState(&book.Book)
			m.screen = ScreenBookForm
			return m, m.form.inputs[1].Focus()
		}

	case "d":
		if m.selectedBook() != nil {
			m.books.confirmDelete = true
		}

	case "i":
		if book := m.selectedBook(); book != nil {
			m.imgs = newImagesState()
			m.imgs.book = book.Book
			m.screen = ScreenImages
			return m, loadImagesCmd(m.ctx, m.client, book.ISBN)
		}
	}

	return m, nil
}

func (m Model) handleBookSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.books.query = strings.TrimSpace(m.books.search.Value())
		m.books.searching = false
		m.books.search.Blur()
		m.books.selected = 0
		return m, nil
	case "esc":
		m.books.searching = false
		m.books.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.books.search, cmd = m.books.search.Update(msg)
	return m, cmd
}

func (m Model) handleBookDeleteConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.books.confirmDelete = false
		if book := m.selectedBook(); book != nil {
			return m, deleteBookCmd(m.ctx, m.client, m.session, book.ISBN, book.Title)
		}
	case "n", "N", "esc":
		m.books.confirmDelete = false
	}
	return m, nil
}

func (m Model) handleBookSaved(msg bookSavedMsg) (tea.Model, tea.Cmd) {
	m.form.busy = false
	if msg.err != nil {
		m.form.errMsg = msg.err.Error()
		return m, nil
	}

	m.screen = ScreenBooks
	text := "Book updated"
	if msg.created {
		text = "Book added"
	}
	return m, tea.Batch(
		m.setNotice(text, false),
		refreshBooksCmd(m.ctx, m.client, m.store),
	)
}

func (m Model) handleBookDeleted(msg bookDeletedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m, m.setNotice("Delete failed: "+msg.err.Error(), true)
	}
	return m, tea.Batch(
		m.setNotice(fmt.Sprintf("Deleted %q", msg.title), false),
		refreshBooksCmd(m.ctx, m.client, m.store),
	)
}

func (m Model) renderBooks() string {
	height := m.contentHeight()
	if m.width < 40 || height < 4 {
		return ""
	}

	listWidth := m.width * 3 / 5
	detailWidth := m.width - listWidth

	list := m.renderTitledBox(m.booksTitle(), m.booksListContent(listWidth-2, height-2), listWidth, height, true)
	detail := m.renderTitledBox("Details", m.bookDetailContent(detailWidth-4), detailWidth, height, false)

	return lipgloss.JoinHorizontal(lipgloss.Top, list, detail)
}

func (m Model) booksTitle() string {
	total := len(m.snapshot.Books)
	visible := len(m.filteredBooks())
	if m.books.query == "" {
		return fmt.Sprintf("Books (%d)", total)
	}
	return fmt.Sprintf("Books (%d/%d)", visible, total)
}

func (m Model) booksListContent(width, height int) string {
	styles := m.theme.Styles()

	if m.books.searching {
		return " " + styles.AccentText.Render("/") + m.books.search.View()
	}
	if m.snapshot.BooksError != nil {
		return " " + styles.DangerText.Render("Failed to load books: "+m.snapshot.BooksError.Error())
	}
	if !m.snapshot.BooksLoaded {
		return " " + styles.MutedText.Render("Loading books...")
	}

	books := m.filteredBooks()
	if len(books) == 0 {
		if m.books.query != "" {
			return " " + styles.MutedText.Render(fmt.Sprintf("No books match %q", m.books.query))
		}
		return " " + styles.MutedText.Render("Catalog is empty")
	}

	if m.books.confirmDelete {
		if book := m.selectedBook(); book != nil {
			return " " + styles.DangerText.Render(fmt.Sprintf("Delete %q? (y/n)", book.Title))
		}
	}

	// Keep the cursor visible when the list is longer than the pane.
	start := 0
	if m.books.selected >= height {
		start = m.books.selected - height + 1
	}

	var lines []string
	for i := start; i < len(books) && i-start < height; i++ {
		book := books[i]
		stockStyle := styles.MutedText
		if book.Stock < state.LowStockThreshold {
			stockStyle = styles.WarningText
		}

		titleWidth := max(10, width-30)
		line := fmt.Sprintf(" %-*s %8s %s",
			titleWidth, truncate(book.Title, titleWidth),
			money(book.Price),
			stockStyle.Render(fmt.Sprintf("stock %d", book.Stock)))

		if i == m.books.selected {
			line = styles.Selected.Render(line)
		}
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}

func (m Model) bookDetailContent(width int) string {
	styles := m.theme.Styles()

	book := m.selectedBook()
	if book == nil {
		return " " + styles.MutedText.Render("No book selected")
	}

	label := func(s string) string { return " " + styles.MutedText.Render(s) }
	value := func(s string) string { return " " + styles.Text.Render(truncate(s, width)) }

	lines := []string{
		label("Title"),
		value(book.Title),
		label("Author"),
		value(book.Author),
		label("ISBN"),
		value(book.ISBN),
		label("Price / Stock"),
		value(fmt.Sprintf("%s / %d", money(book.Price), book.Stock)),
	}

	if book.Category != "" {
		lines = append(lines, label("Category"), value(book.Category))
	}

	lines = append(lines, label("Cover"))
	switch {
	case book.DisplayURL == "":
		lines = append(lines, " "+styles.FaintText.Render("none"))
	case book.HasImages:
		lines = append(lines, value(book.DisplayURL))
	default:
		lines = append(lines, value(book.DisplayURL), " "+styles.FaintText.Render("legacy URL"))
	}

	if book.Description != "" {
		lines = append(lines, label("Description"))
		for _, line := range wrapText(book.Description, width) {
			lines = append(lines, " "+styles.Text.Render(line))
		}
	}

	return strings.Join(lines, "\n")
}

// wrapText does greedy word wrapping to the given width.
func wrapText(s string, width int) []string {
	if width <= 0 {
		return nil
	}
	words := strings.Fields(s)
	var lines []string
	var current string
	for _, word := range words {
		switch {
		case current == "":
			current = word
		case len(current)+1+len(word) <= width:
			current += " " + word
		default:
			lines = append(lines, current)
			current = word
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}
