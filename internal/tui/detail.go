package tui

import (
	"fmt"
	"strings"

	"github.com/ppiankov/secwatch/internal/models"
)

// detailHeight is the fixed number of lines for the detail panel.
const detailHeight = 5

// renderDetail produces the detail view for a selected finding.
func renderDetail(f *models.Finding, threshold float64, width int) string {
	if f == nil {
		return styleDetailPanel.Width(width).Render("No finding selected")
	}

	var b strings.Builder

	sevStyled := severityStyle(f.Severity).Render(severityLabel(f.Severity))
	b.WriteString(fmt.Sprintf("%s  %s  %s\n", sevStyled, f.ID, f.Title))

	risk := riskStyle(f.RiskScore, threshold).Render(fmt.Sprintf("%.2f", f.RiskScore))
	parts := []string{
		fmt.Sprintf("Account: %s", f.AccountID),
		fmt.Sprintf("Status: %s", f.Status),
		fmt.Sprintf("Risk: %s", risk),
	}
	if !f.Timestamp.IsZero() {
		parts = append(parts, fmt.Sprintf("Detected: %s", f.Timestamp.Format("2006-01-02")))
	}
	b.WriteString(strings.Join(parts, "  "))
	b.WriteString("\n")

	if f.Description != "" {
		b.WriteString(fmt.Sprintf("Description: %s\n", f.Description))
	}
	if f.Recommendation != "" {
		b.WriteString(fmt.Sprintf("Fix: %s", f.Recommendation))
	}

	return styleDetailPanel.Width(width).Render(b.String())
}
