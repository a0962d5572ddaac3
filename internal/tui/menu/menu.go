// ABOUTME: Main menu listing the manageable content sections
// ABOUTME: Emits typed selection messages the root model routes on

package menu

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"folio-admin/internal/entity"
	"folio-admin/internal/tui/styles"
)

// EntitySelectedMsg is sent when a content section is chosen
type EntitySelectedMsg struct {
	Desc entity.Descriptor
}

// OverviewSelectedMsg is sent when the totals overview is chosen
type OverviewSelectedMsg struct{}

// SendSelectedMsg is sent when the newsletter composer is chosen
type SendSelectedMsg struct{}

// LogoutMsg is sent when the user chooses to log out
type LogoutMsg struct{}

// QuitMsg is sent when the user quits from the menu
type QuitMsg struct{}

type item struct {
	label  string
	desc   *entity.Descriptor
	action func() tea.Msg
}

// Menu is the section selection screen
type Menu struct {
	items  []item
	cursor int
	width  int
	height int
}

var (
	selectedStyle = lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	normalStyle   = lipgloss.NewStyle().Foreground(styles.Text)
	dividerStyle  = lipgloss.NewStyle().Foreground(styles.Surface)
)

// New creates the menu from the entity registry
func New() *Menu {
	m := &Menu{}
	for _, d := range entity.Registry() {
		d := d
		m.items = append(m.items, item{label: d.Plural, desc: &d})
	}
	m.items = append(m.items,
		item{label: "Overview", action: func() tea.Msg { return OverviewSelectedMsg{} }},
		item{label: "Send newsletter", action: func() tea.Msg { return SendSelectedMsg{} }},
		item{label: "Log out", action: func() tea.Msg { return LogoutMsg{} }},
		item{label: "Quit", action: func() tea.Msg { return QuitMsg{} }},
	)
	return m
}

// Init implements tea.Model
func (m *Menu) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m *Menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case "enter":
			return m.selectItem()
		case "q", "esc":
			return m, func() tea.Msg { return QuitMsg{} }
		}
	}

	return m, nil
}

func (m *Menu) selectItem() (tea.Model, tea.Cmd) {
	it := m.items[m.cursor]
	if it.desc != nil {
		d := *it.desc
		return m, func() tea.Msg { return EntitySelectedMsg{Desc: d} }
	}
	return m, it.action
}

// View implements tea.Model
func (m *Menu) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Content sections"))
	b.WriteString("\n\n")

	for i, it := range m.items {
		// Divider between entity sections and global actions
		if it.desc == nil && i > 0 && m.items[i-1].desc != nil {
			b.WriteString(dividerStyle.Render(strings.Repeat("─", 24)))
			b.WriteString("\n")
		}

		cursor := "  "
		style := normalStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedStyle
		}
		b.WriteString(cursor + style.Render(it.label) + "\n")
	}

	return b.String()
}
