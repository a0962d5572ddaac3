// ABOUTME: Root bubbletea model for the admin TUI
// ABOUTME: Manages screen state and routes messages to child pages

package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"folio-admin/internal/client"
	"folio-admin/internal/entity"
	"folio-admin/internal/tui/event"
	"folio-admin/internal/tui/formpage"
	"folio-admin/internal/tui/icons"
	"folio-admin/internal/tui/listpage"
	"folio-admin/internal/tui/loginpage"
	"folio-admin/internal/tui/menu"
	"folio-admin/internal/tui/overview"
	"folio-admin/internal/tui/sendpage"
	"folio-admin/internal/tui/styles"
	"folio-admin/internal/tui/tagpage"
)

// Screen represents the current TUI screen
type Screen int

const (
	ScreenLogin Screen = iota
	ScreenMenu
	ScreenList
	ScreenForm
	ScreenTags
	ScreenSend
	ScreenOverview
)

// Layout constants
const minTerminalWidth = 80

// profileLoadedMsg is sent when the signed-in admin's profile arrives
type profileLoadedMsg struct {
	user entity.Record
	err  error
}

// App is the root model for the TUI
type App struct {
	client  *client.Client
	appName string
	screen  Screen
	width   int
	height  int

	user       entity.Record
	notice     string
	noticeErr  bool
	lastUpdate time.Time

	// Child models
	login    *loginpage.Login
	menu     *menu.Menu
	list     *listpage.List
	form     *formpage.Form
	tags     *tagpage.Tags
	send     *sendpage.Send
	overview *overview.Overview
}

// New creates the TUI application. The session store decides whether
// the first screen is the menu or the login form.
func New(apiClient *client.Client, appName string) *App {
	a := &App{
		client:  apiClient,
		appName: appName,
		menu:    menu.New(),
	}
	if apiClient.Session().LoggedIn() {
		a.screen = ScreenMenu
	} else {
		a.screen = ScreenLogin
		a.login = loginpage.New(apiClient, "")
	}
	return a
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	if a.screen == ScreenLogin {
		return a.login.Init()
	}
	return a.loadProfile()
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, a.forward(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		a.notice = ""
		return a, a.forward(msg)

	case event.AuthExpiredMsg:
		return a.toLogin("Session expired, please sign in again")

	case event.NoticeMsg:
		a.notice = msg.Text
		a.noticeErr = msg.IsError
		a.lastUpdate = time.Now()
		return a, nil

	case profileLoadedMsg:
		if msg.err != nil {
			if client.IsUnauthorized(msg.err) {
				return a.toLogin("Session expired, please sign in again")
			}
			a.notice = msg.err.Error()
			a.noticeErr = true
			return a, nil
		}
		a.user = msg.user
		return a, nil

	case loginpage.LoggedInMsg:
		a.user = msg.User
		a.login = nil
		a.screen = ScreenMenu
		return a, nil

	case menu.EntitySelectedMsg:
		return a.openEntity(msg.Desc)

	case menu.OverviewSelectedMsg:
		a.overview = overview.New(a.client)
		a.screen = ScreenOverview
		return a, a.overview.Init()

	case overview.BackMsg:
		a.overview = nil
		a.screen = ScreenMenu
		return a, nil

	case menu.SendSelectedMsg:
		a.send = sendpage.New(a.client)
		a.screen = ScreenSend
		return a, a.send.Init()

	case menu.LogoutMsg:
		_ = a.client.Logout()
		a.user = nil
		return a.toLogin("Logged out")

	case menu.QuitMsg:
		return a, tea.Quit

	case listpage.NewRequestedMsg:
		if msg.Desc.Name == entity.Tag.Name {
			a.tags = tagpage.New(a.client)
			a.screen = ScreenTags
			return a, a.tags.Init()
		}
		a.form = formpage.New(a.client, msg.Desc, nil)
		a.screen = ScreenForm
		return a, a.form.Init()

	case listpage.EditRequestedMsg:
		a.form = formpage.New(a.client, msg.Desc, msg.Record)
		a.screen = ScreenForm
		return a, a.form.Init()

	case listpage.BackMsg:
		a.list = nil
		a.screen = ScreenMenu
		return a, nil

	case formpage.CancelledMsg:
		return a.closeOverlay(nil)

	case tagpage.DoneMsg:
		notice := fmt.Sprintf("%d tags created", msg.Created)
		return a.closeOverlay(func() tea.Msg {
			return event.NoticeMsg{Text: notice}
		})

	case tagpage.CancelledMsg:
		return a.closeOverlay(nil)

	case sendpage.SentMsg:
		a.send = nil
		a.screen = ScreenMenu
		a.notice = "Newsletter sent"
		a.lastUpdate = time.Now()
		return a, nil

	case sendpage.CancelledMsg:
		a.send = nil
		a.screen = ScreenMenu
		return a, nil
	}

	// Everything else (huh form internals, spinner ticks, page-local
	// completion messages) goes to the active screen
	return a, a.forward(msg)
}

// openEntity routes a menu selection to the right screen
func (a *App) openEntity(desc entity.Descriptor) (tea.Model, tea.Cmd) {
	if desc.Singleton {
		a.form = formpage.New(a.client, desc, nil)
		a.screen = ScreenForm
		return a, a.form.Init()
	}
	a.list = listpage.New(a.client, desc)
	a.screen = ScreenList
	return a, a.list.Init()
}

// closeOverlay leaves a form or tag screen, returning to the list it
// came from (reloading it) or to the menu
func (a *App) closeOverlay(notify tea.Cmd) (tea.Model, tea.Cmd) {
	a.form = nil
	a.tags = nil

	if a.list != nil {
		a.screen = ScreenList
		return a, tea.Batch(notify, a.list.Reload())
	}
	a.screen = ScreenMenu
	return a, notify
}

// toLogin clears all children and shows the login screen
func (a *App) toLogin(notice string) (tea.Model, tea.Cmd) {
	a.list = nil
	a.form = nil
	a.tags = nil
	a.send = nil
	a.overview = nil
	a.login = loginpage.New(a.client, notice)
	a.screen = ScreenLogin
	return a, a.login.Init()
}

// forward routes a message to the active screen's model
func (a *App) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.screen {
	case ScreenLogin:
		if a.login != nil {
			var model tea.Model
			model, cmd = a.login.Update(msg)
			a.login = model.(*loginpage.Login)
		}
	case ScreenMenu:
		if a.menu != nil {
			var model tea.Model
			model, cmd = a.menu.Update(msg)
			a.menu = model.(*menu.Menu)
		}
	case ScreenList:
		if a.list != nil {
			var model tea.Model
			model, cmd = a.list.Update(msg)
			a.list = model.(*listpage.List)
		}
	case ScreenForm:
		if a.form != nil {
			var model tea.Model
			model, cmd = a.form.Update(msg)
			a.form = model.(*formpage.Form)
		}
	case ScreenTags:
		if a.tags != nil {
			var model tea.Model
			model, cmd = a.tags.Update(msg)
			a.tags = model.(*tagpage.Tags)
		}
	case ScreenSend:
		if a.send != nil {
			var model tea.Model
			model, cmd = a.send.Update(msg)
			a.send = model.(*sendpage.Send)
		}
	case ScreenOverview:
		if a.overview != nil {
			var model tea.Model
			model, cmd = a.overview.Update(msg)
			a.overview = model.(*overview.Overview)
		}
	}
	return cmd
}

// loadProfile fetches the signed-in admin for the header
func (a *App) loadProfile() tea.Cmd {
	c := a.client
	return func() tea.Msg {
		user, err := c.Me(context.Background())
		return profileLoadedMsg{user: user, err: err}
	}
}

// View implements tea.Model
func (a *App) View() string {
	var content string

	switch a.screen {
	case ScreenLogin:
		if a.login != nil {
			content = a.login.View()
		}
	case ScreenMenu:
		if a.menu != nil {
			content = a.menu.View()
		}
	case ScreenList:
		if a.list != nil {
			content = a.list.View()
		}
	case ScreenForm:
		if a.form != nil {
			content = a.form.View()
		}
	case ScreenTags:
		if a.tags != nil {
			content = a.tags.View()
		}
	case ScreenSend:
		if a.send != nil {
			content = a.send.View()
		}
	case ScreenOverview:
		if a.overview != nil {
			content = a.overview.View()
		}
	}

	return a.wrapWithFrame(content)
}

// renderHeader creates the header bar with app branding and context
func (a *App) renderHeader() string {
	// Guard against zero/small width before WindowSizeMsg is received
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	contextStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	leftText := fmt.Sprintf(" %s %s", icons.App.String(), titleStyle.Render(a.appName))

	rightText := ""
	if a.user != nil && a.screen != ScreenLogin {
		if email := a.user.String("email"); email != "" {
			rightText = contextStyle.Render(email) + " "
		}
	}

	leftRendered := lipgloss.NewStyle().Render(leftText)
	rightRendered := lipgloss.NewStyle().Align(lipgloss.Right).Render(rightText)

	leftWidth := lipgloss.Width(leftRendered)
	rightWidth := lipgloss.Width(rightRendered)
	fillWidth := width - 4 - leftWidth - rightWidth // -4 for ╭─ and ─╮
	if fillWidth < 0 {
		fillWidth = 0
	}

	fill := strings.Repeat("─", fillWidth)
	header := "╭─" + leftRendered + fill + rightRendered + "─╮"

	return borderStyle.Render(header)
}

// renderFooter creates the footer with keyboard shortcuts and notices
func (a *App) renderFooter() string {
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	keyStyle := lipgloss.NewStyle().Foreground(styles.Primary)
	labelStyle := lipgloss.NewStyle().Foreground(styles.Muted)

	var shortcuts []string
	switch a.screen {
	case ScreenLogin:
		shortcuts = []string{"Tab Next", "Enter Submit", "ctrl+c Quit"}
	case ScreenMenu:
		shortcuts = []string{"↑↓ Navigate", "Enter Select", "q Quit"}
	case ScreenList:
		shortcuts = []string{"↑↓ Rows", "←→ Pages", "n New", "e Edit", "d Delete", "f Filter", "r Refresh", "b Back"}
	case ScreenForm:
		shortcuts = []string{"Tab Next", "Enter Submit", "Esc Back"}
	case ScreenTags, ScreenSend:
		shortcuts = []string{"Enter Submit", "Esc Back"}
	case ScreenOverview:
		shortcuts = []string{"r Refresh", "b Back"}
	}

	var styledShortcuts []string
	for _, s := range shortcuts {
		parts := strings.SplitN(s, " ", 2)
		if len(parts) == 2 {
			styledShortcuts = append(styledShortcuts, keyStyle.Render(parts[0])+" "+labelStyle.Render(parts[1]))
		} else {
			styledShortcuts = append(styledShortcuts, s)
		}
	}

	leftText := " " + strings.Join(styledShortcuts, "  ")
	leftPlainText := " " + strings.Join(shortcuts, "  ")

	rightText := ""
	rightPlainText := ""
	if a.notice != "" {
		noticeStyle := lipgloss.NewStyle().Foreground(styles.Secondary)
		if a.noticeErr {
			noticeStyle = lipgloss.NewStyle().Foreground(styles.Danger)
		}
		rightText = noticeStyle.Render(a.notice) + " "
		rightPlainText = a.notice + " "
	}

	leftWidth := lipgloss.Width(leftPlainText)
	rightWidth := lipgloss.Width(rightPlainText)
	fillWidth := width - 4 - leftWidth - rightWidth // -4 for ╰─ and ─╯
	if fillWidth < 0 {
		fillWidth = 0
	}

	fill := strings.Repeat("─", fillWidth)
	footer := "╰─" + leftText + fill + rightText + "─╯"

	return borderStyle.Render(footer)
}

// wrapWithFrame wraps content with header and footer
func (a *App) wrapWithFrame(content string) string {
	var sb strings.Builder

	sb.WriteString(a.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(content)
	sb.WriteString("\n")
	sb.WriteString(a.renderFooter())

	return sb.String()
}

// msgSender is the slice of tea.Program the expiry hook needs
type msgSender interface {
	Send(msg tea.Msg)
}

// wireSessionExpiry forwards the client's credential-invalidated
// callback into the update loop, so a 401 on any request routes to
// the login screen even from completions a screen does not inspect
func wireSessionExpiry(c *client.Client, p msgSender) {
	c.OnUnauthorized(func() {
		p.Send(event.AuthExpiredMsg{})
	})
}

// Run starts the TUI
func Run(apiClient *client.Client, appName string) error {
	app := New(apiClient, appName)

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
	)
	wireSessionExpiry(apiClient, p)
	_, err := p.Run()
	return err
}
