package reporter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ppiankov/secwatch/internal/models"
)

var (
	colorCritical = lipgloss.Color("#FF0000")
	colorHigh     = lipgloss.Color("#FF8800")
	colorMedium   = lipgloss.Color("#FFFF00")
	colorLow      = lipgloss.Color("#00FF00")
	colorHeader   = lipgloss.Color("#D670D6")
	colorBorder   = lipgloss.Color("#444444")
)

var (
	styleTitle   = lipgloss.NewStyle().Bold(true)
	styleHeader  = lipgloss.NewStyle().Bold(true).Foreground(colorHeader).Padding(0, 1)
	styleCell    = lipgloss.NewStyle().Padding(0, 1)
	styleWarning = lipgloss.NewStyle().Foreground(colorMedium)
	styleSuccess = lipgloss.NewStyle().Foreground(colorLow)
	styleAlert   = lipgloss.NewStyle().Foreground(colorCritical).Bold(true)
	styleBorder  = lipgloss.NewStyle().Foreground(colorBorder)
)

func severityStyle(s models.Severity) lipgloss.Style {
	switch s {
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

func severityLabel(s models.Severity) string {
	return strings.ToUpper(string(s))
}
