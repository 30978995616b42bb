package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/danivilar/atelier/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// TaskStatusPill returns a colored status indicator. Unknown values get
// the dim fallback rather than vanishing.
func TaskStatusPill(status domain.TaskStatus) string {
	switch status {
	case domain.TaskPending:
		return StyleBlue.Render("● Pending")
	case domain.TaskInProgress:
		return StyleYellow.Render("● In Progress")
	case domain.TaskCompleted:
		return StyleGreen.Render("● Completed")
	default:
		return StyleDim.Render("● " + status.Label())
	}
}

// PriorityTag colors a task priority, urgent hottest.
func PriorityTag(p domain.TaskPriority) string {
	switch p {
	case domain.PriorityUrgent:
		return StyleRed.Render("URG")
	case domain.PriorityHigh:
		return StyleYellow.Render("HIGH")
	case domain.PriorityMedium:
		return StyleBlue.Render("MED")
	case domain.PriorityLow:
		return StyleDim.Render("LOW")
	default:
		return StyleDim.Render("?")
	}
}

// ClientStatusPill colors a client lifecycle status.
func ClientStatusPill(status domain.ClientStatus) string {
	switch status {
	case domain.ClientActive:
		return StyleGreen.Render("● Active")
	case domain.ClientPaused:
		return StyleYellow.Render("● Paused")
	case domain.ClientFinished:
		return StyleDim.Render("● Finished")
	default:
		return StyleDim.Render("● Unknown")
	}
}

// LeadStagePill colors a pipeline stage, warmest nearest to close.
func LeadStagePill(status domain.LeadStatus) string {
	switch status {
	case domain.LeadNew:
		return StyleBlue.Render("● New")
	case domain.LeadContacted, domain.LeadDiscovery:
		return StylePurple.Render("● " + status.Label())
	case domain.LeadProposal, domain.LeadNegotiation:
		return StyleYellow.Render("● " + status.Label())
	case domain.LeadWon:
		return StyleGreen.Render("● Won")
	case domain.LeadLost:
		return StyleRed.Render("● Lost")
	default:
		return StyleDim.Render("● " + status.Label())
	}
}

// RiskIndicator returns a colored health indicator such as "● AT RISK".
func RiskIndicator(risk domain.RiskLevel) string {
	switch risk {
	case domain.RiskHealthy:
		return StyleGreen.Render("● HEALTHY")
	case domain.RiskWarning:
		return StyleYellow.Render("● WARNING")
	case domain.RiskAtRisk:
		return StyleRed.Render("● AT RISK")
	default:
		return StyleDim.Render("● UNKNOWN")
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
