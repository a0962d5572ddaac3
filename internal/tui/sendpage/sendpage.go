// ABOUTME: Newsletter composer screen
// ABOUTME: Sends a subject and message to all or selected subscribers

package sendpage

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"folio-admin/internal/client"
	"folio-admin/internal/tui/event"
	"folio-admin/internal/tui/styles"
)

// SentMsg is sent after the newsletter was dispatched
type SentMsg struct{}

// CancelledMsg is sent when the user leaves the composer
type CancelledMsg struct{}

// sentResultMsg carries the backend response
type sentResultMsg struct {
	err error
}

// Send is the newsletter composition screen
type Send struct {
	client *client.Client
	form   *huh.Form
	busy   bool
	err    string

	subject   string
	message   string
	sendToAll bool
	emails    string
}

// New creates the composer
func New(c *client.Client) *Send {
	s := &Send{client: c, sendToAll: true}
	s.form = s.createForm()
	return s
}

func (s *Send) createForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Subject").
				CharLimit(200).
				Value(&s.subject).
				Validate(required("subject")),
			huh.NewText().
				Title("Message").
				Value(&s.message).
				Validate(required("message")),
			huh.NewConfirm().
				Title("Send to all subscribers").
				Value(&s.sendToAll),
			huh.NewText().
				Title("Recipients").
				Description("One email per line; ignored when sending to all").
				Value(&s.emails),
		).Title("Send newsletter"),
	).WithTheme(styles.FormTheme())
}

// Init implements tea.Model
func (s *Send) Init() tea.Cmd {
	return s.form.Init()
}

// Update implements tea.Model
func (s *Send) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case sentResultMsg:
		s.busy = false
		if msg.err != nil {
			if client.IsUnauthorized(msg.err) {
				return s, func() tea.Msg { return event.AuthExpiredMsg{} }
			}
			s.err = msg.err.Error()
			s.form = s.createForm()
			return s, s.form.Init()
		}
		return s, func() tea.Msg { return SentMsg{} }

	case tea.KeyMsg:
		if s.busy {
			return s, nil
		}
		if msg.String() == "esc" {
			return s, func() tea.Msg { return CancelledMsg{} }
		}
		s.err = ""
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted && !s.busy {
		return s.submit()
	}

	return s, cmd
}

func (s *Send) submit() (tea.Model, tea.Cmd) {
	input := client.SendMailInput{
		Subject:     strings.TrimSpace(s.subject),
		Message:     s.message,
		UseTemplate: true,
		SendToAll:   s.sendToAll,
	}
	if !s.sendToAll {
		input.Emails = parseEmails(s.emails)
		if len(input.Emails) == 0 {
			s.err = "At least one recipient is required"
			s.form = s.createForm()
			return s, s.form.Init()
		}
	}

	s.busy = true
	c := s.client
	return s, func() tea.Msg {
		return sentResultMsg{err: c.SendNewsletter(context.Background(), input)}
	}
}

// parseEmails splits the recipients textarea into clean addresses
func parseEmails(input string) []string {
	var out []string
	for _, line := range strings.Split(input, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// View implements tea.Model
func (s *Send) View() string {
	var b strings.Builder

	if s.busy {
		b.WriteString(styles.Subtitle.Render("Sending..."))
		b.WriteString("\n")
	}

	b.WriteString(s.form.View())

	if s.err != "" {
		b.WriteString("\n")
		b.WriteString(styles.StatusError.Render("Error: " + s.err))
	}

	return b.String()
}

func required(name string) func(string) error {
	return func(v string) error {
		if strings.TrimSpace(v) == "" {
			return fieldError(name + " is required")
		}
		return nil
	}
}

type fieldError string

func (e fieldError) Error() string { return string(e) }
