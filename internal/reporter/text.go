package reporter

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/ppiankov/secwatch/internal/models"
	"github.com/ppiankov/secwatch/internal/report"
)

// TextReporter renders snapshots and reports as terminal tables
type TextReporter struct {
	writer    io.Writer
	threshold float64
	scores    models.SeverityScores
}

// NewTextReporter creates a new text reporter
func NewTextReporter(writer io.Writer) *TextReporter {
	return &TextReporter{
		writer: writer,
		scores: models.DefaultSeverityScores(),
	}
}

// WithThreshold marks risk scores above t as alerts. Zero disables alerts.
func (r *TextReporter) WithThreshold(t float64) *TextReporter {
	r.threshold = t
	return r
}

// WithScores sets the severity weights shown next to findings
func (r *TextReporter) WithScores(scores models.SeverityScores) *TextReporter {
	if scores != nil {
		r.scores = scores
	}
	return r
}

// ShowSnapshot prints one account's scan result as a severity table
func (r *TextReporter) ShowSnapshot(snap models.Snapshot) error {
	score := formatScore(snap.Risk.Score)
	rows := [][]string{
		{severityLabel(models.SeverityCritical), strconv.Itoa(len(snap.Critical)), score},
		{severityLabel(models.SeverityHigh), strconv.Itoa(len(snap.High)), score},
	}
	severities := []models.Severity{models.SeverityCritical, models.SeverityHigh}

	t := newTable("Severity", "Count", "Risk Score").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			if col == 0 {
				return severityStyle(severities[row]).Padding(0, 1)
			}
			return styleCell.Align(lipgloss.Right)
		})

	r.printf("%s\n", styleTitle.Render("Security Findings for "+snap.AccountID))
	r.printf("%s\n", t.Render())
	if r.alerting(snap.Risk.Score) {
		r.printf("%s\n", styleAlert.Render(fmt.Sprintf("ALERT: risk score %.2f above threshold %.2f", snap.Risk.Score, r.threshold)))
	}
	r.printf("\n")
	return nil
}

// Comparison prints a comparison report with one Metric/Current/Change table
// per account, in report order
func (r *TextReporter) Comparison(cr *models.ComparisonReport) error {
	r.printHeader("Security Report")
	r.printf("Generated at: %s\n\n", formatTimestamp(cr.Timestamp))

	for _, account := range reportOrder(cr) {
		data := cr.Accounts[account]

		t := newTable("Metric", "Current", "Change").
			Row("Critical Findings", strconv.Itoa(data.CriticalFindings), fmt.Sprintf("%+d", data.CriticalFindingsChange)).
			Row("High Findings", strconv.Itoa(data.HighFindings), fmt.Sprintf("%+d", data.HighFindingsChange)).
			Row("Risk Score", formatScore(data.RiskScore), fmt.Sprintf("%+.2f", data.RiskScoreChange)).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return styleHeader
				}
				return styleCell
			})

		r.printf("%s\n", styleTitle.Render("Account: "+account))
		r.printf("%s\n", t.Render())
		if r.alerting(data.RiskScore) {
			r.printf("%s\n", styleAlert.Render(fmt.Sprintf("ALERT: risk score above threshold %.2f", r.threshold)))
		}
		r.printf("\n")
	}

	r.printOverview(report.Summarize(cr))
	return nil
}

// NoHistory prints the warning shown when no prior summary exists
func (r *TextReporter) NoHistory() {
	r.printf("%s\n", styleWarning.Render("No historical data found for comparison"))
}

// Exported prints the confirmation shown after a CSV export
func (r *TextReporter) Exported(path string) {
	r.printf("%s\n", styleSuccess.Render("Report exported to "+path))
}

// Findings prints a findings table, one row per finding
func (r *TextReporter) Findings(account string, findings []models.Finding) error {
	title := fmt.Sprintf("Findings for %s (%d)", account, len(findings))
	if account == "" {
		title = fmt.Sprintf("Findings (%d)", len(findings))
	}
	r.printf("%s\n", styleTitle.Render(title))
	if len(findings) == 0 {
		r.printf("  No findings\n\n")
		return nil
	}

	t := newTable("ID", "Severity", "Weight", "Account", "Title", "Status", "Risk", "Detected")
	for _, f := range findings {
		t.Row(
			f.ID,
			severityLabel(f.Severity),
			formatScore(r.scores.Score(f.Severity)),
			f.AccountID,
			f.Title,
			f.Status,
			formatScore(f.RiskScore),
			formatTimestamp(f.Timestamp),
		)
	}
	t.StyleFunc(func(row, col int) lipgloss.Style {
		if row == table.HeaderRow {
			return styleHeader
		}
		if col == 1 {
			return severityStyle(findings[row].Severity).Padding(0, 1)
		}
		return styleCell
	})

	r.printf("%s\n\n", t.Render())
	return nil
}

// Assets prints an asset inventory table
func (r *TextReporter) Assets(account string, assets []models.Asset) error {
	title := fmt.Sprintf("Assets for %s (%d)", account, len(assets))
	if account == "" {
		title = fmt.Sprintf("Assets (%d)", len(assets))
	}
	r.printf("%s\n", styleTitle.Render(title))

	t := newTable("ID", "Type", "Account", "Region", "Status", "Last Updated")
	for _, a := range assets {
		t.Row(a.ID, a.Type, a.AccountID, a.Region, a.Status, formatTimestamp(a.LastUpdated))
	}
	t.StyleFunc(func(row, col int) lipgloss.Style {
		if row == table.HeaderRow {
			return styleHeader
		}
		return styleCell
	})

	r.printf("%s\n\n", t.Render())
	return nil
}

func (r *TextReporter) printOverview(o report.Overview) {
	if o.Accounts == 0 {
		return
	}
	r.printf("Overview:\n")
	r.printf("--------------------------------------------------\n")
	r.printf("  Accounts Compared: %d\n", o.Accounts)
	r.printf("  Improving: %d  Stable: %d  Degrading: %d\n", o.Improving, o.Stable, o.Degrading)
	r.printf("  Net Critical: %+d  Net High: %+d\n", o.NetCritical, o.NetHigh)
	r.printf("  Net Risk: %+.2f %s\n\n", o.NetRisk, report.GetTrendIndicator(report.Direction(o.NetRisk)))
}

func (r *TextReporter) alerting(score float64) bool {
	return r.threshold > 0 && score > r.threshold
}

// printHeader prints a boxed section header
func (r *TextReporter) printHeader(title string) {
	r.printf("╔════════════════════════════════════════════╗\n")
	r.printf("║ %-42s ║\n", title)
	r.printf("╚════════════════════════════════════════════╝\n\n")
}

// printf is a helper to write formatted output
func (r *TextReporter) printf(format string, args ...interface{}) {
	fmt.Fprintf(r.writer, format, args...)
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styleBorder).
		Headers(headers...)
}

// reportOrder returns the accounts of a comparison report in display order.
// Reports built outside Compare may lack an explicit order.
func reportOrder(cr *models.ComparisonReport) []string {
	if len(cr.Order) == len(cr.Accounts) {
		return cr.Order
	}
	return sortedKeys(cr.Accounts)
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// formatTimestamp formats a timestamp for display
func formatTimestamp(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}
