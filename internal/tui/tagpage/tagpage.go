// ABOUTME: Bulk tag intake screen
// ABOUTME: Parses one tag per line and creates them in a single request

package tagpage

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"folio-admin/internal/client"
	"folio-admin/internal/entity"
	"folio-admin/internal/tui/event"
	"folio-admin/internal/tui/styles"
)

// DoneMsg is sent after tags were created
type DoneMsg struct {
	Created int
}

// CancelledMsg is sent when the user leaves without creating
type CancelledMsg struct{}

// createdMsg carries the backend response
type createdMsg struct {
	created []entity.Record
	err     error
}

// Tags is the bulk tag creation screen
type Tags struct {
	client *client.Client
	form   *huh.Form
	busy   bool
	err    string

	input string
}

// New creates the tag intake screen
func New(c *client.Client) *Tags {
	t := &Tags{client: c}
	t.form = t.createForm()
	return t
}

func (t *Tags) createForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Tags").
				Description("One tag per line; blank lines are skipped").
				Placeholder("golang\nreact\ndocker").
				Value(&t.input),
		).Title("Add tags"),
	).WithTheme(styles.FormTheme())
}

// Init implements tea.Model
func (t *Tags) Init() tea.Cmd {
	return t.form.Init()
}

// Update implements tea.Model
func (t *Tags) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case createdMsg:
		t.busy = false
		if msg.err != nil {
			if client.IsUnauthorized(msg.err) {
				return t, func() tea.Msg { return event.AuthExpiredMsg{} }
			}
			t.err = msg.err.Error()
			t.form = t.createForm()
			return t, t.form.Init()
		}
		count := len(msg.created)
		return t, func() tea.Msg { return DoneMsg{Created: count} }

	case tea.KeyMsg:
		if t.busy {
			return t, nil
		}
		if msg.String() == "esc" {
			return t, func() tea.Msg { return CancelledMsg{} }
		}
		t.err = ""
	}

	form, cmd := t.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		t.form = f
	}

	if t.form.State == huh.StateCompleted && !t.busy {
		return t.submit()
	}

	return t, cmd
}

func (t *Tags) submit() (tea.Model, tea.Cmd) {
	tags := entity.ParseTagLines(t.input)
	if len(tags) == 0 {
		t.err = "At least one tag is required"
		t.form = t.createForm()
		return t, t.form.Init()
	}

	t.busy = true
	c := t.client
	return t, func() tea.Msg {
		created, err := c.CreateTags(context.Background(), tags)
		return createdMsg{created: created, err: err}
	}
}

// View implements tea.Model
func (t *Tags) View() string {
	var b strings.Builder

	if t.busy {
		b.WriteString(styles.Subtitle.Render("Creating tags..."))
		b.WriteString("\n")
	}

	b.WriteString(t.form.View())

	if t.err != "" {
		b.WriteString("\n")
		b.WriteString(styles.StatusError.Render(fmt.Sprintf("Error: %s", t.err)))
	}

	return b.String()
}
