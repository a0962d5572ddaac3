// ABOUTME: Overview screen showing record totals per content section
// ABOUTME: Fetches counts concurrently and renders them as metric blocks

package overview

import (
	"context"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sync/errgroup"

	"folio-admin/internal/client"
	"folio-admin/internal/entity"
	"folio-admin/internal/tui/event"
	"folio-admin/internal/tui/icons"
	"folio-admin/internal/tui/styles"
	"folio-admin/internal/tui/widgets"
)

// BackMsg is sent when the user leaves the overview
type BackMsg struct{}

// totalsLoadedMsg carries the per-entity record counts
type totalsLoadedMsg struct {
	totals map[string]int
	err    error
}

// Overview is the content totals screen
type Overview struct {
	client  *client.Client
	totals  map[string]int
	loading bool
	spin    spinner.Model
	err     string
	width   int
	height  int
}

var sectionIcons = map[string]icons.Icon{
	"project":    icons.Project,
	"code":       icons.Code,
	"tag":        icons.Tag,
	"admin":      icons.User,
	"contact":    icons.Mail,
	"newsletter": icons.Newsletter,
}

// New creates the overview screen
func New(c *client.Client) *Overview {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.Primary)

	return &Overview{client: c, spin: sp}
}

// Init implements tea.Model
func (o *Overview) Init() tea.Cmd {
	return tea.Batch(o.spin.Tick, o.fetch())
}

// Update implements tea.Model
func (o *Overview) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		o.width = msg.Width
		o.height = msg.Height
		return o, nil

	case spinner.TickMsg:
		if !o.loading {
			return o, nil
		}
		var cmd tea.Cmd
		o.spin, cmd = o.spin.Update(msg)
		return o, cmd

	case totalsLoadedMsg:
		o.loading = false
		if msg.err != nil {
			if client.IsUnauthorized(msg.err) {
				return o, func() tea.Msg { return event.AuthExpiredMsg{} }
			}
			o.err = msg.err.Error()
			return o, nil
		}
		o.err = ""
		o.totals = msg.totals
		return o, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			return o, tea.Batch(o.spin.Tick, o.fetch())
		case "b", "esc":
			return o, func() tea.Msg { return BackMsg{} }
		}
	}

	return o, nil
}

// fetch requests one minimal page per section to read the totals
func (o *Overview) fetch() tea.Cmd {
	o.loading = true
	c := o.client

	return func() tea.Msg {
		totals := map[string]int{}
		var mu sync.Mutex

		g, ctx := errgroup.WithContext(context.Background())
		for _, d := range entity.Registry() {
			if d.Singleton {
				continue
			}
			d := d
			g.Go(func() error {
				result, err := c.List(ctx, d, 1, 1, "")
				if err != nil {
					return err
				}
				mu.Lock()
				totals[d.Name] = result.Total
				mu.Unlock()
				return nil
			})
		}

		if err := g.Wait(); err != nil {
			return totalsLoadedMsg{err: err}
		}
		return totalsLoadedMsg{totals: totals}
	}
}

// View implements tea.Model
func (o *Overview) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Overview"))
	b.WriteString("\n")

	if o.err != "" {
		b.WriteString(widgets.StatusText("Backend unreachable: "+o.err, widgets.StatusCritical))
		b.WriteString("\n")
		return b.String()
	}

	if o.loading {
		b.WriteString(o.spin.View() + " Loading totals...")
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(widgets.StatusText("Backend online", widgets.StatusOK))
	b.WriteString("\n\n")

	config := widgets.DefaultMetricBlockConfig()
	var blocks []string
	for _, d := range entity.Registry() {
		if d.Singleton {
			continue
		}
		blocks = append(blocks, widgets.CountBlock(
			sectionIcons[d.Name], d.Plural, o.totals[d.Name], "records", config))
	}

	// Two blocks per row
	for i := 0; i < len(blocks); i += 2 {
		row := blocks[i]
		if i+1 < len(blocks) {
			row = lipgloss.JoinHorizontal(lipgloss.Top, blocks[i], " ", blocks[i+1])
		}
		b.WriteString(row)
		b.WriteString("\n")
	}

	return b.String()
}
