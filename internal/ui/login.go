package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// loginState holds the credential form shown before a session exists.
type loginState struct {
	username textinput.Model
	password textinput.Model
	focus    int // 0 = username, 1 = password
	busy     bool
	errMsg   string
}

func newLoginState() loginState {
	user := textinput.New()
	user.Placeholder = "username"
	user.CharLimit = 64
	user.Width = 28
	user.Focus()

	pass := textinput.New()
	pass.Placeholder = "password"
	pass.CharLimit = 64
	pass.Width = 28
	pass.EchoMode = textinput.EchoPassword
	pass.EchoCharacter = '•'

	return loginState{username: user, password: pass}
}

func (m Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.login.busy {
		return m, nil
	}

	switch msg.String() {
	case "tab", "shift+tab", "up", "down":
		if m.login.focus == 0 {
			m.login.focus = 1
			m.login.username.Blur()
			return m, m.login.password.Focus()
		}
		m.login.focus = 0
		m.login.password.Blur()
		return m, m.login.username.Focus()

	case "enter":
		user := strings.TrimSpace(m.login.username.Value())
		pass := m.login.password.Value()
		if user == "" || pass == "" {
			m.login.errMsg = "enter username and password"
			return m, nil
		}
		m.login.busy = true
		m.login.errMsg = ""
		return m, loginCmd(m.ctx, m.client, user, pass)
	}

	var cmd tea.Cmd
	if m.login.focus == 0 {
		m.login.username, cmd = m.login.username.Update(msg)
	} else {
		m.login.password, cmd = m.login.password.Update(msg)
	}
	return m, cmd
}

func (m Model) handleLoginResult(msg loginResultMsg) (tea.Model, tea.Cmd) {
	m.login.busy = false
	if msg.err != nil {
		m.login.errMsg = msg.err.Error()
		m.login.password.SetValue("")
		return m, nil
	}

	m.session = msg.session
	m.login.password.SetValue("")
	m.screen = startScreen(m.startTab)
	return m, tea.Batch(
		refreshBooksCmd(m.ctx, m.client, m.store),
		refreshOrdersCmd(m.ctx, m.client, m.store),
	)
}

func (m Model) renderLogin() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Logo.Render("backroom"))
	b.WriteString(styles.MutedText.Render("  admin console"))
	b.WriteString("\n\n")
	b.WriteString(styles.MutedText.Render("Username"))
	b.WriteString("\n")
	b.WriteString(m.login.username.View())
	b.WriteString("\n\n")
	b.WriteString(styles.MutedText.Render("Password"))
	b.WriteString("\n")
	b.WriteString(m.login.password.View())
	b.WriteString("\n\n")

	switch {
	case m.login.busy:
		b.WriteString(styles.WarningText.Render("Signing in..."))
	case m.login.errMsg != "":
		b.WriteString(styles.DangerText.Render(m.login.errMsg))
	default:
		b.WriteString(styles.FaintText.Render("Enter to sign in, Ctrl+C to quit"))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.BorderFocus)).
		Padding(1, 3).
		Render(b.String())

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
