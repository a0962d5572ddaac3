// ABOUTME: Status badge widgets for quick visual status indication
// ABOUTME: Provides colored inline badges for record and backend state

package widgets

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"folio-admin/internal/tui/icons"
	"folio-admin/internal/tui/styles"
)

// StatusLevel represents the severity of a status
type StatusLevel int

const (
	StatusOK StatusLevel = iota
	StatusWarning
	StatusCritical
	StatusInfo
	StatusNeutral
)

func levelColor(level StatusLevel) lipgloss.Color {
	switch level {
	case StatusOK:
		return styles.Secondary
	case StatusWarning:
		return styles.Warning
	case StatusCritical:
		return styles.Danger
	case StatusInfo:
		return styles.Info
	default:
		return styles.Muted
	}
}

// Badge renders a colored inline badge
func Badge(text string, level StatusLevel) string {
	fg := lipgloss.Color("#FFFFFF")
	if level == StatusWarning {
		fg = lipgloss.Color("#000000")
	}

	return lipgloss.NewStyle().
		Background(levelColor(level)).
		Foreground(fg).
		Padding(0, 1).
		Bold(true).
		Render(text)
}

// StatusIcon returns the icon for a status level
func StatusIcon(level StatusLevel) string {
	style := lipgloss.NewStyle().Foreground(levelColor(level))
	switch level {
	case StatusOK:
		return style.Render(icons.CheckOK.String())
	case StatusWarning:
		return style.Render(icons.Warning.String())
	case StatusCritical:
		return style.Render(icons.Critical.String())
	case StatusInfo:
		return style.Render(icons.Info.String())
	default:
		return style.Render("•")
	}
}

// StatusText returns styled status text with icon
func StatusText(text string, level StatusLevel) string {
	textStyle := lipgloss.NewStyle().Foreground(levelColor(level))
	return fmt.Sprintf("%s %s", StatusIcon(level), textStyle.Render(text))
}
