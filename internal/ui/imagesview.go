package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rarefinebooks/backroom/internal/bookstore"
	"github.com/rarefinebooks/backroom/internal/images"
)

// Upload form focus positions.
const (
	uploadFocusPath = iota
	uploadFocusAlt
	uploadFocusPrimary
)

// imagesState is the per-book image manager. The upload form keeps its
// staged file across failed submits and closed panels so a rejected upload
// can be fixed and retried without re-selecting the file.
type imagesState struct {
	book    bookstore.Book
	list    []bookstore.Image
	loaded  bool
	loadErr error

	selected      int
	confirmDelete bool

	form      images.Form
	pathInput textinput.Model
	altInput  textinput.Model
	focus     int
	uploading bool
	busy      bool
	formErr   string
}

func newImagesState() imagesState {
	path := textinput.New()
	path.Placeholder = "/path/to/cover.jpg"
	path.CharLimit = 512
	path.Width = 40

	alt := textinput.New()
	alt.Placeholder = "alt text (optional)"
	alt.CharLimit = 200
	alt.Width = 40

	return imagesState{pathInput: path, altInput: alt}
}

func (m Model) handleImagesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.imgs.busy {
		return m, nil
	}
	if m.imgs.uploading {
		return m.handleUploadFormKey(msg)
	}
	if m.imgs.confirmDelete {
		return m.handleImageDeleteConfirmKey(msg)
	}

	switch msg.String() {
	case "esc", "q":
		m.screen = ScreenBooks
		return m, nil

	case "j", "down":
		if m.imgs.selected < len(m.imgs.list)-1 {
			m.imgs.selected++
		}
	case "k", "up":
		if m.imgs.selected > 0 {
			m.imgs.selected--
		}
	case "g", "home":
		m.imgs.selected = 0
	case "G", "end":
		m.imgs.selected = max(0, len(m.imgs.list)-1)

	case "u":
		m.imgs.uploading = true
		m.imgs.focus = uploadFocusPath
		m.imgs.formErr = ""
		return m, m.imgs.pathInput.Focus()

	case "d":
		if len(m.imgs.list) > 0 {
			m.imgs.confirmDelete = true
		}

	case "r":
		m.imgs.loaded = false
		return m, loadImagesCmd(m.ctx, m.client, m.imgs.book.ISBN)
	}

	return m, nil
}

func (m Model) handleUploadFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == " " && m.imgs.focus == uploadFocusPrimary {
		m.imgs.form.Primary = !m.imgs.form.Primary
		return m, nil
	}

	switch msg.String() {
	case "esc":
		// Close the panel; the staged file and fields survive for later.
		m.imgs.uploading = false
		m.imgs.pathInput.Blur()
		m.imgs.altInput.Blur()
		return m, nil

	case "tab", "down":
		return m.moveUploadFocus(1)

	case "shift+tab", "up":
		return m.moveUploadFocus(-1)

	case "enter":
		return m.submitUpload()
	}

	var cmd tea.Cmd
	switch m.imgs.focus {
	case uploadFocusPath:
		m.imgs.pathInput, cmd = m.imgs.pathInput.Update(msg)
	case uploadFocusAlt:
		m.imgs.altInput, cmd = m.imgs.altInput.Update(msg)
	}
	return m, cmd
}

func (m Model) moveUploadFocus(delta int) (tea.Model, tea.Cmd) {
	m.imgs.pathInput.Blur()
	m.imgs.altInput.Blur()

	m.imgs.focus = (m.imgs.focus + delta + 3) % 3
	switch m.imgs.focus {
	case uploadFocusPath:
		return m, m.imgs.pathInput.Focus()
	case uploadFocusAlt:
		return m, m.imgs.altInput.Focus()
	}
	return m, nil
}

// submitUpload stages the chosen file if needed, then sends it. A file that
// fails validation never replaces the previously staged one.
func (m Model) submitUpload() (tea.Model, tea.Cmd) {
	path := strings.TrimSpace(m.imgs.pathInput.Value())

	staged := m.imgs.form.File()
	needsStage := path != "" && (staged == nil || staged.Path != path)
	if needsStage {
		candidate, err := images.Describe(path)
		if err != nil {
			m.imgs.formErr = err.Error()
			return m, nil
		}
		if err := m.imgs.form.Stage(candidate); err != nil {
			m.imgs.formErr = err.Error()
			return m, nil
		}
	}
	if !m.imgs.form.HasFile() {
		m.imgs.formErr = "choose a file to upload"
		return m, nil
	}

	m.imgs.form.AltText = strings.TrimSpace(m.imgs.altInput.Value())
	m.imgs.formErr = ""
	m.imgs.busy = true
	return m, uploadImageCmd(m.ctx, m.client, m.session, m.imgs.book.ISBN, m.imgs.form)
}

func (m Model) handleImageDeleteConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.imgs.confirmDelete = false
		if m.imgs.selected < len(m.imgs.list) {
			img := m.imgs.list[m.imgs.selected]
			m.imgs.busy = true
			return m, deleteImageCmd(m.ctx, m.client, m.session, m.imgs.book.ISBN, img.ID)
		}
	case "n", "N", "esc":
		m.imgs.confirmDelete = false
	}
	return m, nil
}

func (m Model) handleImagesLoaded(msg imagesLoadedMsg) (tea.Model, tea.Cmd) {
	if m.screen != ScreenImages || msg.isbn != m.imgs.book.ISBN {
		return m, nil
	}
	m.imgs.loaded = true
	m.imgs.list = msg.images
	m.imgs.loadErr = msg.err
	if m.imgs.selected >= len(msg.images) {
		m.imgs.selected = max(0, len(msg.images)-1)
	}
	return m, nil
}

func (m Model) handleUploadDone(msg uploadDoneMsg) (tea.Model, tea.Cmd) {
	m.imgs.busy = false
	if msg.err != nil {
		// Staged file is intact; the submit can be retried as-is.
		m.imgs.formErr = msg.err.Error()
		return m, nil
	}

	m.imgs.form.Clear()
	m.imgs.pathInput.SetValue("")
	m.imgs.altInput.SetValue("")
	m.imgs.uploading = false
	m.imgs.formErr = ""

	return m, tea.Batch(
		m.setNotice("Image uploaded", false),
		loadImagesCmd(m.ctx, m.client, msg.isbn),
		refreshBooksCmd(m.ctx, m.client, m.store),
	)
}

func (m Model) handleImageDeleted(msg imageDeletedMsg) (tea.Model, tea.Cmd) {
	m.imgs.busy = false
	if msg.err != nil {
		return m, m.setNotice("Delete failed: "+msg.err.Error(), true)
	}
	return m, tea.Batch(
		m.setNotice("Image deleted", false),
		loadImagesCmd(m.ctx, m.client, msg.isbn),
		refreshBooksCmd(m.ctx, m.client, m.store),
	)
}

func (m Model) renderImages() string {
	height := m.contentHeight()
	if m.width < 40 || height < 4 {
		return ""
	}

	listWidth := m.width / 2
	sideWidth := m.width - listWidth

	title := "Images: " + m.imgs.book.Title
	list := m.renderTitledBox(title, m.imagesListContent(listWidth-2), listWidth, height, !m.imgs.uploading)

	var side string
	if m.imgs.uploading {
		side = m.renderTitledBox("Upload", m.uploadFormContent(sideWidth-4), sideWidth, height, true)
	} else {
		side = m.renderTitledBox("Image", m.imageDetailContent(sideWidth-4), sideWidth, height, false)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, list, side)
}

func (m Model) imagesListContent(width int) string {
	styles := m.theme.Styles()

	if m.imgs.loadErr != nil {
		return " " + styles.DangerText.Render("Failed to load images: "+m.imgs.loadErr.Error())
	}
	if !m.imgs.loaded {
		return " " + styles.MutedText.Render("Loading images...")
	}
	if len(m.imgs.list) == 0 {
		lines := []string{" " + styles.MutedText.Render("No images attached")}
		if m.imgs.book.ImageURL != "" {
			lines = append(lines,
				" "+styles.FaintText.Render("legacy cover:"),
				" "+styles.MutedText.Render(truncate(m.imgs.book.ImageURL, width-2)))
		}
		return strings.Join(lines, "\n")
	}

	if m.imgs.confirmDelete && m.imgs.selected < len(m.imgs.list) {
		img := m.imgs.list[m.imgs.selected]
		return " " + styles.DangerText.Render(fmt.Sprintf("Delete image #%d? (y/n)", img.ID))
	}

	var lines []string
	for i, img := range m.imgs.list {
		marker := "  "
		if img.IsPrimary {
			marker = styles.SuccessText.Render("★ ")
		}
		alt := img.AltText
		if alt == "" {
			alt = "(no alt text)"
		}
		line := fmt.Sprintf(" %s#%-4d %s", marker, img.ID, truncate(alt, max(6, width-12)))
		if i == m.imgs.selected {
			line = styles.Selected.Render(line)
		} else {
			line = styles.Text.Render(line)
		}
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}

func (m Model) imageDetailContent(width int) string {
	styles := m.theme.Styles()

	if len(m.imgs.list) == 0 || m.imgs.selected >= len(m.imgs.list) {
		return " " + styles.MutedText.Render("Press u to upload an image")
	}
	img := m.imgs.list[m.imgs.selected]

	label := func(s string) string { return " " + styles.MutedText.Render(s) }

	lines := []string{
		label("URL"),
	}
	for _, line := range wrapText(img.ScalewayURL, width) {
		lines = append(lines, " "+styles.Text.Render(line))
	}
	lines = append(lines, label("Alt text"))
	if img.AltText != "" {
		lines = append(lines, " "+styles.Text.Render(truncate(img.AltText, width)))
	} else {
		lines = append(lines, " "+styles.FaintText.Render("none"))
	}
	if img.IsPrimary {
		lines = append(lines, "", " "+styles.SuccessText.Render("★ Primary image"))
	}

	return strings.Join(lines, "\n")
}

func (m Model) uploadFormContent(width int) string {
	styles := m.theme.Styles()

	focusLabel := func(idx int, s string) string {
		if m.imgs.focus == idx {
			return " " + styles.AccentText.Render(s)
		}
		return " " + styles.MutedText.Render(s)
	}

	lines := []string{
		focusLabel(uploadFocusPath, "File path"),
		" " + m.imgs.pathInput.View(),
	}

	if staged := m.imgs.form.File(); staged != nil {
		lines = append(lines, " "+styles.FaintText.Render(
			fmt.Sprintf("staged: %s (%s, %d bytes)", staged.Name, staged.ContentType, staged.Size)))
	}

	lines = append(lines,
		"",
		focusLabel(uploadFocusAlt, "Alt text"),
		" "+m.imgs.altInput.View(),
		"",
	)

	check := "[ ]"
	if m.imgs.form.Primary {
		check = "[x]"
	}
	lines = append(lines, focusLabel(uploadFocusPrimary, check+" Set as primary"))

	lines = append(lines, "")
	switch {
	case m.imgs.busy:
		lines = append(lines, " "+styles.WarningText.Render("Uploading..."))
	case m.imgs.formErr != "":
		for _, line := range wrapText(m.imgs.formErr, width) {
			lines = append(lines, " "+styles.DangerText.Render(line))
		}
	default:
		lines = append(lines, " "+styles.FaintText.Render("JPEG, PNG, WebP, or GIF up to 10MB"))
	}

	return strings.Join(lines, "\n")
}
