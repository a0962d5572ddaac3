// ABOUTME: Generic paginated table screen driven by an entity descriptor
// ABOUTME: Handles stale-response discard, filter cycling, and delete confirmation

package listpage

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"folio-admin/internal/client"
	"folio-admin/internal/entity"
	"folio-admin/internal/tui/debuglog"
	"folio-admin/internal/tui/event"
	"folio-admin/internal/tui/styles"
	"folio-admin/internal/tui/widgets"
)

// NewRequestedMsg is sent when the user wants to create a record
type NewRequestedMsg struct {
	Desc entity.Descriptor
}

// EditRequestedMsg is sent when the user opens a record for editing
type EditRequestedMsg struct {
	Desc   entity.Descriptor
	Record entity.Record
}

// BackMsg is sent when the user leaves the list
type BackMsg struct{}

// rowsLoadedMsg carries one page of results tagged with the request
// sequence that produced it
type rowsLoadedMsg struct {
	seq    int
	result *client.ListResult
	err    error
}

// deleteDoneMsg is sent when a delete request completes
type deleteDoneMsg struct {
	err error
}

// modalState is the delete confirmation lifecycle
type modalState int

const (
	modalClosed modalState = iota
	modalOpen
	modalDeleting
)

// List is the paginated table screen for one entity
type List struct {
	client *client.Client
	desc   entity.Descriptor

	rows      []entity.Record
	page      entity.Page
	cursor    int
	filterIdx int // 0 = no filter, 1..n = desc.Filter.Values[i-1]

	// seq tags every fetch; responses carrying an older seq are stale
	// and get dropped instead of overwriting newer rows
	seq     int
	loading bool
	spin    spinner.Model

	modal  modalState
	target entity.Record

	err    string
	width  int
	height int
}

var (
	headerStyle   = lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	rowStyle      = lipgloss.NewStyle().Foreground(styles.Text)
	selectedStyle = lipgloss.NewStyle().Foreground(styles.BgDark).Background(styles.Primary)
	pagerStyle    = lipgloss.NewStyle().Foreground(styles.Muted)
	filterStyle   = lipgloss.NewStyle().Foreground(styles.Accent)
)

// New creates the list screen and starts loading page 1
func New(c *client.Client, desc entity.Descriptor) *List {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.Primary)

	l := &List{
		client: c,
		desc:   desc,
		page:   entity.Page{Number: 1, Size: desc.PageSize},
		spin:   sp,
	}
	return l
}

// Init implements tea.Model
func (l *List) Init() tea.Cmd {
	return tea.Batch(l.spin.Tick, l.fetch(1))
}

// Update implements tea.Model
func (l *List) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		l.width = msg.Width
		l.height = msg.Height
		return l, nil

	case spinner.TickMsg:
		if !l.loading && l.modal != modalDeleting {
			return l, nil
		}
		var cmd tea.Cmd
		l.spin, cmd = l.spin.Update(msg)
		return l, cmd

	case rowsLoadedMsg:
		return l.handleRowsLoaded(msg)

	case deleteDoneMsg:
		return l.handleDeleteDone(msg)

	case tea.KeyMsg:
		if l.modal != modalClosed {
			return l.updateModal(msg)
		}
		return l.updateTable(msg)
	}

	return l, nil
}

func (l *List) handleRowsLoaded(msg rowsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.seq != l.seq {
		// A newer request is already in flight; this page is stale
		debuglog.Log("dropping stale page for %s (seq %d < %d)", l.desc.Name, msg.seq, l.seq)
		return l, nil
	}
	l.loading = false

	if msg.err != nil {
		if client.IsUnauthorized(msg.err) {
			return l, func() tea.Msg { return event.AuthExpiredMsg{} }
		}
		l.err = msg.err.Error()
		return l, nil
	}

	l.err = ""
	l.rows = msg.result.Rows
	l.page.Total = msg.result.Total
	if l.cursor >= len(l.rows) {
		l.cursor = len(l.rows) - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
	return l, nil
}

func (l *List) handleDeleteDone(msg deleteDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if client.IsUnauthorized(msg.err) {
			l.modal = modalClosed
			l.target = nil
			return l, func() tea.Msg { return event.AuthExpiredMsg{} }
		}
		// Stay open so the user can retry or cancel
		l.modal = modalOpen
		l.err = msg.err.Error()
		return l, nil
	}
	l.modal = modalClosed
	l.target = nil
	l.err = ""

	// Deleting the last row of a trailing page steps back one page
	page := l.page.Number
	if len(l.rows) == 1 && page > 1 {
		page--
	}
	notice := l.desc.Title + " deleted"
	return l, tea.Batch(
		func() tea.Msg { return event.NoticeMsg{Text: notice} },
		l.fetch(page),
	)
}

func (l *List) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if l.modal == modalDeleting {
		// Ignore input while the request is in flight
		return l, nil
	}

	switch msg.String() {
	case "y", "enter":
		l.modal = modalDeleting
		return l, tea.Batch(l.spin.Tick, l.deleteTarget())
	case "n", "esc":
		l.modal = modalClosed
		l.target = nil
	}
	return l, nil
}

func (l *List) updateTable(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if l.cursor > 0 {
			l.cursor--
		}
	case "down", "j":
		if l.cursor < len(l.rows)-1 {
			l.cursor++
		}
	case "left", "h":
		if l.page.HasPrev() {
			return l, l.fetch(l.page.Number - 1)
		}
	case "right", "l":
		if l.page.HasNext() {
			return l, l.fetch(l.page.Number + 1)
		}
	case "r":
		return l, l.fetch(l.page.Number)
	case "f":
		if l.desc.Filter != nil {
			l.filterIdx = (l.filterIdx + 1) % (len(l.desc.Filter.Values) + 1)
			l.cursor = 0
			return l, l.fetch(1)
		}
	case "n":
		if l.desc.CreatePath != "" {
			d := l.desc
			return l, func() tea.Msg { return NewRequestedMsg{Desc: d} }
		}
	case "e", "enter":
		if !l.desc.ReadOnly && l.cursor < len(l.rows) {
			d, rec := l.desc, l.rows[l.cursor]
			return l, func() tea.Msg { return EditRequestedMsg{Desc: d, Record: rec} }
		}
	case "d":
		if l.cursor < len(l.rows) {
			l.modal = modalOpen
			l.target = l.rows[l.cursor]
		}
	case "b", "esc":
		return l, func() tea.Msg { return BackMsg{} }
	}
	return l, nil
}

// Reload refetches the current page, used when returning from a form
func (l *List) Reload() tea.Cmd {
	return l.fetch(l.page.Number)
}

// filterValue returns the active filter value, empty for "all"
func (l *List) filterValue() string {
	if l.desc.Filter == nil || l.filterIdx == 0 {
		return ""
	}
	return l.desc.Filter.Values[l.filterIdx-1]
}

// fetch loads the given page, bumping the request sequence so any
// response still in flight gets discarded on arrival
func (l *List) fetch(page int) tea.Cmd {
	l.seq++
	l.loading = true
	l.page.Number = page

	seq := l.seq
	desc := l.desc
	size := desc.PageSize
	filter := l.filterValue()
	c := l.client

	return tea.Batch(l.spin.Tick, func() tea.Msg {
		result, err := c.List(context.Background(), desc, page, size, filter)
		return rowsLoadedMsg{seq: seq, result: result, err: err}
	})
}

func (l *List) deleteTarget() tea.Cmd {
	c := l.client
	desc := l.desc
	id := l.target.ID()
	return func() tea.Msg {
		return deleteDoneMsg{err: c.Delete(context.Background(), desc, id)}
	}
}

// View implements tea.Model
func (l *List) View() string {
	if l.modal != modalClosed {
		return l.viewModal()
	}

	var b strings.Builder

	title := l.desc.Plural
	if v := l.filterValue(); v != "" {
		title += "  " + filterStyle.Render("["+v+"]")
	}
	b.WriteString(styles.Title.Render(title))
	b.WriteString("\n")

	if l.err != "" {
		b.WriteString(styles.StatusError.Render("Error: " + l.err))
		b.WriteString("\n\n")
	}

	if l.loading {
		b.WriteString(l.spin.View() + " Loading...")
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(l.renderTable())
	b.WriteString("\n")
	b.WriteString(pagerStyle.Render(l.page.Label()))

	return b.String()
}

func (l *List) renderTable() string {
	var b strings.Builder

	// Header row
	var heads []string
	for _, col := range l.desc.Columns {
		heads = append(heads, pad(col.Title, col.Width))
	}
	b.WriteString(headerStyle.Render(strings.Join(heads, "  ")))
	b.WriteString("\n")

	if len(l.rows) == 0 {
		b.WriteString(pagerStyle.Render("No records"))
		b.WriteString("\n")
		return b.String()
	}

	for i, row := range l.rows {
		var cells []string
		for _, col := range l.desc.Columns {
			cells = append(cells, pad(col.Cell(row), col.Width))
		}
		line := strings.Join(cells, "  ")
		style := rowStyle
		if i == l.cursor {
			style = selectedStyle
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

func (l *List) viewModal() string {
	name := l.desc.Title
	if l.target != nil {
		if t := firstNonEmpty(l.target, l.desc.Columns); t != "" {
			name = t
		}
	}

	var body string
	if l.modal == modalDeleting {
		body = l.spin.View() + " Deleting..."
	} else {
		body = "Delete " + styles.ValueStyle.Render(name) + "?\n\n" +
			styles.KeyStyle.Render("y") + " confirm   " +
			styles.KeyStyle.Render("n") + " cancel"
	}
	if l.desc.DeleteMode == entity.DeleteHard {
		body = widgets.Badge("PERMANENT", widgets.StatusCritical) +
			"  " + styles.StatusWarning.Render("This cannot be undone.") + "\n\n" + body
	}
	if l.err != "" && l.modal == modalOpen {
		body += "\n\n" + styles.StatusError.Render("Error: "+l.err)
	}

	return styles.Modal.Render(body)
}

// firstNonEmpty picks a display value for the modal from the first
// column that has one
func firstNonEmpty(r entity.Record, cols []entity.Column) string {
	for _, col := range cols {
		if v := col.Cell(r); v != "" {
			return v
		}
	}
	return ""
}

// pad truncates or right-pads a cell to the column width
func pad(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) > width {
		if width > 1 {
			return string(runes[:width-1]) + "…"
		}
		return string(runes[:width])
	}
	return s + strings.Repeat(" ", width-len(runes))
}
