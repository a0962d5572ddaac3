// ABOUTME: Login screen with email and password inputs
// ABOUTME: Authenticates against the backend and reports the signed-in admin

package loginpage

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"folio-admin/internal/client"
	"folio-admin/internal/entity"
	"folio-admin/internal/tui/styles"
)

// LoggedInMsg is sent after a successful login
type LoggedInMsg struct {
	User entity.Record
}

// loginResultMsg carries the backend response
type loginResultMsg struct {
	user entity.Record
	err  error
}

// Login is the credential entry screen
type Login struct {
	client *client.Client
	form   *huh.Form
	busy   bool
	err    string
	notice string

	email    string
	password string
}

// New creates the login screen. A non-empty notice is shown above
// the form, used for the session-expired redirect.
func New(c *client.Client, notice string) *Login {
	l := &Login{client: c, notice: notice}
	l.form = l.createForm()
	return l
}

func (l *Login) createForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Placeholder("admin@example.com").
				CharLimit(128).
				Value(&l.email).
				Validate(validateEmail),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				CharLimit(128).
				Value(&l.password).
				Validate(validateRequired),
		).Title("Sign in").
			Description("Enter your administrator credentials"),
	).WithTheme(styles.FormTheme())
}

// Init implements tea.Model
func (l *Login) Init() tea.Cmd {
	return l.form.Init()
}

// Update implements tea.Model
func (l *Login) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
		l.busy = false
		if msg.err != nil {
			l.err = msg.err.Error()
			// Rebuild so the user can resubmit the form
			l.form = l.createForm()
			return l, l.form.Init()
		}
		user := msg.user
		return l, func() tea.Msg { return LoggedInMsg{User: user} }

	case tea.KeyMsg:
		if l.busy {
			return l, nil
		}
		l.err = ""
	}

	form, cmd := l.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		l.form = f
	}

	if l.form.State == huh.StateCompleted && !l.busy {
		l.busy = true
		return l, l.submit()
	}

	return l, cmd
}

func (l *Login) submit() tea.Cmd {
	email, password := l.email, l.password
	return func() tea.Msg {
		result, err := l.client.Login(context.Background(), email, password)
		if err != nil {
			return loginResultMsg{err: err}
		}
		return loginResultMsg{user: result.User}
	}
}

// View implements tea.Model
func (l *Login) View() string {
	var b strings.Builder

	if l.notice != "" {
		b.WriteString(styles.StatusWarning.Render(l.notice))
		b.WriteString("\n\n")
	}

	if l.busy {
		b.WriteString(styles.Subtitle.Render("Signing in..."))
		b.WriteString("\n")
	}

	b.WriteString(l.form.View())

	if l.err != "" {
		b.WriteString("\n")
		b.WriteString(styles.StatusError.Render("Error: " + l.err))
	}

	return b.String()
}

func validateEmail(s string) error {
	if strings.TrimSpace(s) == "" {
		return errRequired
	}
	if !strings.Contains(s, "@") {
		return errEmail
	}
	return nil
}

func validateRequired(s string) error {
	if strings.TrimSpace(s) == "" {
		return errRequired
	}
	return nil
}

var (
	errRequired = fieldError("this field is required")
	errEmail    = fieldError("enter a valid email address")
)

type fieldError string

func (e fieldError) Error() string { return string(e) }
