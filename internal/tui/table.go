package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/ppiankov/secwatch/internal/models"
)

var tableColumns = []table.Column{
	{Title: "Severity", Width: 10},
	{Title: "ID", Width: 8},
	{Title: "Account", Width: 20},
	{Title: "Title", Width: 30},
	{Title: "Status", Width: 9},
	{Title: "Risk", Width: 6},
}

// buildRows converts findings to table rows.
func buildRows(findings []models.Finding) []table.Row {
	rows := make([]table.Row, 0, len(findings))
	for _, f := range findings {
		rows = append(rows, table.Row{
			severityLabel(f.Severity),
			f.ID,
			truncate(f.AccountID, tableColumns[2].Width),
			truncate(f.Title, tableColumns[3].Width),
			f.Status,
			fmt.Sprintf("%.2f", f.RiskScore),
		})
	}
	return rows
}

func severityLabel(s models.Severity) string {
	return strings.ToUpper(string(s))
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	const ellipsis = "..."
	if maxLen <= len(ellipsis) {
		return s[:maxLen]
	}
	return s[:maxLen-len(ellipsis)] + ellipsis
}

// newTable creates a bubbles table with standard columns and styling.
func newTable(rows []table.Row, height int) table.Model {
	t := table.New(
		table.WithColumns(tableColumns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorBorder).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(colorAccent).
		Bold(false)
	t.SetStyles(s)

	return t
}
