// ABOUTME: Compact metric block widget for the overview screen
// ABOUTME: Renders an icon, a value, and a subtitle in a titled box

package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"folio-admin/internal/tui/icons"
	"folio-admin/internal/tui/styles"
)

// MetricBlockConfig holds configuration for a metric block
type MetricBlockConfig struct {
	Width       int
	BorderColor lipgloss.Color
	TitleColor  lipgloss.Color
	ValueColor  lipgloss.Color
}

// DefaultMetricBlockConfig returns sensible defaults
func DefaultMetricBlockConfig() MetricBlockConfig {
	return MetricBlockConfig{
		Width:       22,
		BorderColor: styles.Muted,
		TitleColor:  styles.Primary,
		ValueColor:  styles.Text,
	}
}

// MetricBlock renders a compact metric display block
func MetricBlock(icon icons.Icon, title string, value string, subtitle string, config MetricBlockConfig) string {
	if config.Width <= 0 {
		config.Width = 22
	}

	// Inner width accounts for border and padding
	innerWidth := config.Width - 4

	titleStr := fmt.Sprintf("%s %s", icon.String(), title)
	if len(titleStr) > innerWidth {
		titleStr = titleStr[:innerWidth]
	}

	titleStyle := lipgloss.NewStyle().Foreground(config.TitleColor)

	// Build the box manually for the title-in-border effect
	topBorder := fmt.Sprintf("┌─ %s %s┐",
		titleStyle.Render(titleStr),
		strings.Repeat("─", max(0, innerWidth-len(titleStr)-1)))

	valueStyle := lipgloss.NewStyle().Foreground(config.ValueColor).Bold(true)
	valueLine := fmt.Sprintf("│  %-*s│", innerWidth, valueStyle.Render(value))

	subtitleStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	subtitleLine := fmt.Sprintf("│  %-*s│", innerWidth, subtitleStyle.Render(truncate(subtitle, innerWidth)))

	bottomBorder := fmt.Sprintf("└%s┘", strings.Repeat("─", config.Width-2))

	borderStyle := lipgloss.NewStyle().Foreground(config.BorderColor)

	return strings.Join([]string{
		borderStyle.Render(topBorder),
		borderStyle.Render(valueLine),
		borderStyle.Render(subtitleLine),
		borderStyle.Render(bottomBorder),
	}, "\n")
}

// CountBlock renders a record-count metric for one content section
func CountBlock(icon icons.Icon, title string, count int, label string, config MetricBlockConfig) string {
	return MetricBlock(icon, title, fmt.Sprintf("%d", count), label, config)
}

// truncate shortens a string to maxLen with ellipsis if needed
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
