package tui

import (
	"fmt"
	"strings"

	"github.com/ppiankov/secwatch/internal/models"
)

// headerHeight is the number of terminal lines the header occupies.
const headerHeight = 5

// stats is the aggregate shown in the header.
type stats struct {
	Total          int
	Accounts       int
	Open           int
	Resolved       int
	BySeverity     map[models.Severity]int
	AvgRisk        float64
	AboveThreshold int
	Weighted       float64
}

// computeStats aggregates findings for the header.
func computeStats(findings []models.Finding, scores models.SeverityScores, threshold float64) stats {
	s := stats{
		Total:      len(findings),
		BySeverity: make(map[models.Severity]int),
	}
	accounts := make(map[string]bool)
	var riskSum float64

	for _, f := range findings {
		accounts[f.AccountID] = true
		s.BySeverity[f.Severity]++
		riskSum += f.RiskScore
		s.Weighted += scores.Score(f.Severity)

		switch f.Status {
		case models.StatusOpen:
			s.Open++
		case models.StatusResolved:
			s.Resolved++
		}
		if threshold > 0 && f.RiskScore > threshold {
			s.AboveThreshold++
		}
	}

	s.Accounts = len(accounts)
	if s.Total > 0 {
		s.AvgRisk = riskSum / float64(s.Total)
	}
	return s
}

// renderHeader produces the header string from finding stats.
func renderHeader(title string, s stats, threshold float64, width int) string {
	var b strings.Builder

	// Line 1: title and average risk
	avg := riskStyle(s.AvgRisk, threshold).Render(fmt.Sprintf("%.2f", s.AvgRisk))
	b.WriteString(fmt.Sprintf("secwatch  %s  Avg risk: %s", title, avg))
	b.WriteString("\n")

	// Line 2: counts
	b.WriteString(fmt.Sprintf("Findings: %d  Accounts: %d  Open: %d  Resolved: %d",
		s.Total, s.Accounts, s.Open, s.Resolved))
	b.WriteString("\n")

	// Line 3: severity breakdown
	sevParts := make([]string, 0, len(models.Severities))
	for _, sev := range models.Severities {
		if count := s.BySeverity[sev]; count > 0 {
			label := fmt.Sprintf("%s:%d", strings.ToUpper(string(sev)[:1]), count)
			sevParts = append(sevParts, severityStyle(sev).Render(label))
		}
	}
	if len(sevParts) > 0 {
		b.WriteString(strings.Join(sevParts, "  "))
	}
	b.WriteString("\n")

	// Line 4: alerting
	if threshold > 0 {
		b.WriteString(fmt.Sprintf("Above %.1f: %d  ", threshold, s.AboveThreshold))
	}
	b.WriteString(fmt.Sprintf("Weighted: %.1f", s.Weighted))

	return styleHeader.Width(width).Render(b.String())
}
