package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/ppiankov/secwatch/internal/models"
)

// Severity colors
var (
	colorCritical = lipgloss.Color("#FF0000")
	colorHigh     = lipgloss.Color("#FF8800")
	colorMedium   = lipgloss.Color("#FFFF00")
	colorLow      = lipgloss.Color("#00FF00")
	colorMuted    = lipgloss.Color("#888888")
	colorAccent   = lipgloss.Color("#7B68EE")
	colorBorder   = lipgloss.Color("#444444")
)

// Panel styles
var (
	styleHeader = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder)

	styleDetailPanel = lipgloss.NewStyle().
				Padding(0, 1).
				BorderStyle(lipgloss.NormalBorder()).
				BorderTop(true).
				BorderForeground(colorBorder)

	styleFooter = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 1)

	styleSearchPrompt = lipgloss.NewStyle().
				Foreground(colorAccent).Bold(true)
)

// severityStyle returns the lipgloss style for a severity level.
func severityStyle(severity models.Severity) lipgloss.Style {
	switch severity {
	case models.SeverityCritical:
		return lipgloss.NewStyle().Foreground(colorCritical).Bold(true)
	case models.SeverityHigh:
		return lipgloss.NewStyle().Foreground(colorHigh).Bold(true)
	case models.SeverityMedium:
		return lipgloss.NewStyle().Foreground(colorMedium)
	case models.SeverityLow:
		return lipgloss.NewStyle().Foreground(colorLow)
	default:
		return lipgloss.NewStyle()
	}
}

// riskStyle colors a risk score relative to the alert threshold.
func riskStyle(score, threshold float64) lipgloss.Style {
	switch {
	case threshold > 0 && score > threshold:
		return lipgloss.NewStyle().Foreground(colorCritical).Bold(true)
	case score >= (models.MinRiskScore+models.MaxRiskScore)/2:
		return lipgloss.NewStyle().Foreground(colorMedium)
	default:
		return lipgloss.NewStyle().Foreground(colorLow)
	}
}
