package cli

import (
	"github.com/charmbracelet/lipgloss"
)

// Shared styles for the CLI package
// All terminal colors and styling definitions are centralized here
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#04B575")).
			MarginBottom(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#10B981"))

	// Status styles
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F59E0B")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3B82F6"))

	statusBadgeStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FFFFFF")).
				Padding(0, 1)

	cellStyle = lipgloss.NewStyle().
			PaddingRight(2)
)

// statusStyle picks the badge colour for a status or health value.
func statusStyle(status string) lipgloss.Style {
	switch status {
	case "ok", "created", "rotated", "revoked", "deleted", "healthy", "up", "success":
		return statusBadgeStyle.Background(lipgloss.Color("#10b981"))
	case "degraded", "warning":
		return statusBadgeStyle.Background(lipgloss.Color("#f59e0b"))
	case "error", "unhealthy", "down", "critical":
		return statusBadgeStyle.Background(lipgloss.Color("#ef4444"))
	default:
		return statusBadgeStyle.Background(lipgloss.Color("#3b82f6"))
	}
}
