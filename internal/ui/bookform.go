package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rarefinebooks/backroom/internal/bookstore"
)

// Field order in the book form.
const (
	fieldISBN = iota
	fieldTitle
	fieldAuthor
	fieldDescription
	fieldPrice
	fieldStock
	fieldCategory
	fieldImageURL
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"ISBN",
	"Title",
	"Author",
	"Description",
	"Price",
	"Stock",
	"Category",
	"Image URL",
}

// bookFormState is the add/edit form. When editing, the ISBN identifies the
// record and cannot be changed.
type bookFormState struct {
	inputs  [fieldCount]textinput.Model
	focus   int
	editing bool
	busy    bool
	errMsg  string
}

func newBookFormState(book *bookstore.Book) bookFormState {
	var f bookFormState
	for i := range f.inputs {
		input := textinput.New()
		input.CharLimit = 200
		input.Width = 40
		f.inputs[i] = input
	}
	f.inputs[fieldISBN].Placeholder = "978-..."
	f.inputs[fieldPrice].Placeholder = "0.00"
	f.inputs[fieldStock].Placeholder = "0"
	f.inputs[fieldImageURL].Placeholder = "https://... (legacy cover)"

	if book != nil {
		f.editing = true
		f.focus = fieldTitle
		f.inputs[fieldISBN].SetValue(book.ISBN)
		f.inputs[fieldTitle].SetValue(book.Title)
		f.inputs[fieldAuthor].SetValue(book.Author)
		f.inputs[fieldDescription].SetValue(book.Description)
		f.inputs[fieldPrice].SetValue(strconv.FormatFloat(book.Price, 'f', 2, 64))
		f.inputs[fieldStock].SetValue(strconv.Itoa(book.Stock))
		f.inputs[fieldCategory].SetValue(book.Category)
		f.inputs[fieldImageURL].SetValue(book.ImageURL)
	}
	return f
}

// firstField is the first focusable field; the ISBN is locked while editing.
func (f bookFormState) firstField() int {
	if f.editing {
		return fieldTitle
	}
	return fieldISBN
}

// validateBookForm checks the raw field values and builds the record to
// submit. It returns the first problem found, matching how the server-side
// checks report one error at a time.
func validateBookForm(values [fieldCount]string) (bookstore.Book, string) {
	var book bookstore.Book

	book.ISBN = strings.TrimSpace(values[fieldISBN])
	if len(book.ISBN) < 10 {
		return book, "ISBN must be at least 10 characters"
	}

	book.Title = strings.TrimSpace(values[fieldTitle])
	if book.Title == "" {
		return book, "title is required"
	}

	book.Author = strings.TrimSpace(values[fieldAuthor])
	if book.Author == "" {
		return book, "author is required"
	}

	priceRaw := strings.TrimSpace(values[fieldPrice])
	if priceRaw == "" {
		return book, "price is required"
	}
	price, err := strconv.ParseFloat(priceRaw, 64)
	if err != nil || price <= 0 {
		return book, "price must be a positive number"
	}
	book.Price = price

	stockRaw := strings.TrimSpace(values[fieldStock])
	if stockRaw != "" {
		stock, err := strconv.Atoi(stockRaw)
		if err != nil || stock < 0 {
			return book, "stock must be a whole number"
		}
		book.Stock = stock
	}

	book.Description = strings.TrimSpace(values[fieldDescription])
	book.Category = strings.TrimSpace(values[fieldCategory])
	// PUT replaces the whole record; an empty value here clears the
	// legacy cover server-side.
	book.ImageURL = strings.TrimSpace(values[fieldImageURL])
	return book, ""
}

func (m Model) handleBookFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.form.busy {
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.screen = ScreenBooks
		return m, nil

	case "tab", "down":
		return m.moveFormFocus(1)

	case "shift+tab", "up":
		return m.moveFormFocus(-1)

	case "enter":
		var values [fieldCount]string
		for i := range m.form.inputs {
			values[i] = m.form.inputs[i].Value()
		}
		book, problem := validateBookForm(values)
		if problem != "" {
			m.form.errMsg = problem
			return m, nil
		}
		m.form.busy = true
		m.form.errMsg = ""
		return m, saveBookCmd(m.ctx, m.client, m.session, book, !m.form.editing)
	}

	var cmd tea.Cmd
	m.form.inputs[m.form.focus], cmd = m.form.inputs[m.form.focus].Update(msg)
	return m, cmd
}

func (m Model) moveFormFocus(delta int) (tea.Model, tea.Cmd) {
	m.form.inputs[m.form.focus].Blur()

	first := m.form.firstField()
	span := fieldCount - first
	next := (m.form.focus - first + delta + span) % span
	m.form.focus = first + next

	return m, m.form.inputs[m.form.focus].Focus()
}

func (m Model) renderBookForm() string {
	styles := m.theme.Styles()

	title := "Add Book"
	if m.form.editing {
		title = "Edit Book"
	}

	var b strings.Builder
	for i := 0; i < fieldCount; i++ {
		label := fieldLabels[i]
		if i == fieldISBN && m.form.editing {
			b.WriteString(styles.MutedText.Render(label))
			b.WriteString("\n")
			b.WriteString(styles.FaintText.Render(m.form.inputs[i].Value() + "  (locked)"))
			b.WriteString("\n\n")
			continue
		}

		if i == m.form.focus {
			b.WriteString(styles.AccentText.Render(label))
		} else {
			b.WriteString(styles.MutedText.Render(label))
		}
		b.WriteString("\n")
		b.WriteString(m.form.inputs[i].View())
		b.WriteString("\n\n")
	}

	switch {
	case m.form.busy:
		b.WriteString(styles.WarningText.Render("Saving..."))
	case m.form.errMsg != "":
		b.WriteString(styles.DangerText.Render(m.form.errMsg))
	default:
		b.WriteString(styles.FaintText.Render("Enter to save, Esc to cancel"))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.BorderFocus)).
		Padding(1, 3).
		Render(styles.Logo.Render(title) + "\n\n" + b.String())

	return lipgloss.Place(m.width, m.contentHeight(), lipgloss.Center, lipgloss.Top, box)
}
