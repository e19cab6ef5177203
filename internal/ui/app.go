// Package ui provides the Bubble Tea terminal console for the bookstore.
package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rarefinebooks/backroom/internal/bookstore"
	"github.com/rarefinebooks/backroom/internal/prefs"
	"github.com/rarefinebooks/backroom/internal/state"
)

// Screen represents the current active screen.
type Screen int

const (
	ScreenLogin Screen = iota
	ScreenDashboard
	ScreenBooks
	ScreenOrders
	ScreenImages
	ScreenBookForm
)

// noticeTTL is how long a notice stays on screen before clearing itself.
const noticeTTL = 3 * time.Second

// Options configures the UI.
type Options struct {
	Context   context.Context
	Client    bookstore.API
	Store     *state.Store
	ThemeName string
	StartTab  string
	PrefsPath string
}

// notice is a transient status line. Successes clear themselves after
// noticeTTL; errors stay until replaced or dismissed by the next action.
type notice struct {
	text  string
	isErr bool
	seq   int
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx       context.Context
	client    bookstore.API
	store     *state.Store
	prefsPath string
	startTab  string

	// UI state
	theme    Theme
	screen   Screen
	width    int
	height   int
	ready    bool
	showHelp bool

	// Session and data
	session  *bookstore.Session
	snapshot state.Snapshot
	notice   notice

	// Per-screen state
	login  loginState
	books  booksState
	form   bookFormState
	orders ordersState
	imgs   imagesState
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Ink"
	}

	startTab := opts.StartTab
	if startTab == "" {
		startTab = "dashboard"
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	return Model{
		ctx:       ctx,
		client:    opts.Client,
		store:     opts.Store,
		prefsPath: prefsPath,
		startTab:  startTab,
		theme:     GetTheme(themeName),
		screen:    ScreenLogin,
		login:     newLoginState(),
		books:     newBooksState(),
		orders:    newOrdersState(),
		imgs:      newImagesState(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		textinput.Blink,
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case loginResultMsg:
		return m.handleLoginResult(msg)

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		m.clampSelections()
		return m, nil

	case bookSavedMsg:
		return m.handleBookSaved(msg)

	case bookDeletedMsg:
		return m.handleBookDeleted(msg)

	case imagesLoadedMsg:
		return m.handleImagesLoaded(msg)

	case uploadDoneMsg:
		return m.handleUploadDone(msg)

	case imageDeletedMsg:
		return m.handleImageDeleted(msg)

	case orderStatusMsg:
		return m.handleOrderStatus(msg)

	case clearNoticeMsg:
		// Ignore stale tickers from notices that were since replaced.
		if int(msg) == m.notice.seq {
			m.notice.text = ""
		}
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.screen == ScreenLogin {
		return m.renderLogin()
	}

	if m.showHelp {
		return m.renderHelp()
	}

	return m.renderMain()
}

// handleKey routes keyboard input to the active screen.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	// Screens that own the keyboard (text entry, confirm prompts).
	switch m.screen {
	case ScreenLogin:
		return m.handleLoginKey(msg)
	case ScreenBookForm:
		return m.handleBookFormKey(msg)
	case ScreenImages:
		return m.handleImagesKey(msg)
	}

	if m.books.searching && m.screen == ScreenBooks {
		return m.handleBookSearchKey(msg)
	}
	if m.books.confirmDelete && m.screen == ScreenBooks {
		return m.handleBookDeleteConfirmKey(msg)
	}

	// Global keys for browse screens.
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "?":
		m.showHelp = true
		return m, nil

	case "T":
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		return m, nil

	case "tab":
		m.screen = nextTab(m.screen)
		return m, nil

	case "shift+tab":
		m.screen = prevTab(m.screen)
		return m, nil

	case "h":
		m.screen = ScreenDashboard
		return m, nil

	case "b":
		m.screen = ScreenBooks
		return m, nil

	case "o":
		m.screen = ScreenOrders
		return m, nil

	case "r":
		return m, tea.Batch(
			refreshBooksCmd(m.ctx, m.client, m.store),
			refreshOrdersCmd(m.ctx, m.client, m.store),
		)

	case "L":
		return m.logout()
	}

	switch m.screen {
	case ScreenBooks:
		return m.handleBooksKey(msg)
	case ScreenOrders:
		return m.handleOrdersKey(msg)
	}

	return m, nil
}

// nextTab cycles Dashboard, Books, Orders.
func nextTab(s Screen) Screen {
	switch s {
	case ScreenDashboard:
		return ScreenBooks
	case ScreenBooks:
		return ScreenOrders
	default:
		return ScreenDashboard
	}
}

func prevTab(s Screen) Screen {
	switch s {
	case ScreenDashboard:
		return ScreenOrders
	case ScreenOrders:
		return ScreenBooks
	default:
		return ScreenDashboard
	}
}

// logout drops the session and all cached data, returning to the login
// screen with fresh inputs.
func (m Model) logout() (tea.Model, tea.Cmd) {
	m.session = nil
	m.store.Reset()
	m.snapshot = m.store.Snapshot()
	m.notice = notice{}
	m.login = newLoginState()
	m.books = newBooksState()
	m.orders = newOrdersState()
	m.imgs = newImagesState()
	m.screen = ScreenLogin
	return m, textinput.Blink
}

func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	_ = prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name, StartTab: m.startTab})
}

// setNotice installs a transient notice and schedules its removal.
func (m *Model) setNotice(text string, isErr bool) tea.Cmd {
	m.notice.seq++
	m.notice.text = text
	m.notice.isErr = isErr
	if isErr {
		return nil
	}
	seq := m.notice.seq
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg {
		return clearNoticeMsg(seq)
	})
}

// clampSelections keeps row cursors inside the refreshed collections.
func (m *Model) clampSelections() {
	if n := len(m.filteredBooks()); m.books.selected >= n {
		m.books.selected = max(0, n-1)
	}
	if n := len(m.filteredOrders()); m.orders.selected >= n {
		m.orders.selected = max(0, n-1)
	}
}

// startScreen maps the persisted start tab to a screen.
func startScreen(tab string) Screen {
	switch strings.ToLower(strings.TrimSpace(tab)) {
	case "books":
		return ScreenBooks
	case "orders":
		return ScreenOrders
	default:
		return ScreenDashboard
	}
}

// renderMain renders the header, command bar, and active screen content.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderContent())

	return b.String()
}

func (m Model) renderContent() string {
	switch m.screen {
	case ScreenDashboard:
		return m.renderDashboard()
	case ScreenBooks:
		return m.renderBooks()
	case ScreenOrders:
		return m.renderOrders()
	case ScreenImages:
		return m.renderImages()
	case ScreenBookForm:
		return m.renderBookForm()
	default:
		return ""
	}
}

// contentHeight is the rows left for screen content under the two header lines.
func (m Model) contentHeight() int {
	return max(0, m.height-2)
}

// Run starts the Bubble Tea program and blocks until exit.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
