package report

import (
	"time"

	"github.com/ppiankov/secwatch/internal/models"
	"github.com/ppiankov/secwatch/internal/storage"
)

// DataSource is the subset of the security data client reports need
type DataSource interface {
	CriticalFindings(account string) []models.Finding
	HighSeverityFindings(account string) []models.Finding
	RiskScore(account string) models.RiskScore
}

// Generator builds account and comparison reports for a fixed account list
type Generator struct {
	source   DataSource
	accounts []string
	now      func() time.Time
}

// NewGenerator creates a report generator
func NewGenerator(source DataSource, accounts []string) *Generator {
	return &Generator{
		source:   source,
		accounts: accounts,
		now:      time.Now,
	}
}

// Accounts returns the configured account list
func (g *Generator) Accounts() []string {
	return g.accounts
}

// AccountReport bundles critical findings, high findings, and a risk score
// for one account. The three come from independent calls.
func (g *Generator) AccountReport(account string) *models.AccountReport {
	critical := g.source.CriticalFindings(account)
	high := g.source.HighSeverityFindings(account)
	risk := g.source.RiskScore(account)

	return &models.AccountReport{
		AccountID: account,
		Timestamp: g.now(),
		Findings: models.AccountReportDetails{
			Critical:  critical,
			High:      high,
			RiskScore: risk,
		},
		Summary: models.AccountReportSummary{
			CriticalCount: len(critical),
			HighCount:     len(high),
			RiskScore:     risk.Score,
		},
	}
}

// CurrentSummary runs an account report for every configured account and
// reduces them to a summary comparable with the persisted one
func (g *Generator) CurrentSummary() *models.Summary {
	summary := models.NewSummary(g.now())
	for _, account := range g.accounts {
		r := g.AccountReport(account)
		summary.Accounts[account] = models.AccountSummary{
			CriticalFindings: r.Summary.CriticalCount,
			HighFindings:     r.Summary.HighCount,
			RiskScore:        r.Summary.RiskScore,
		}
	}
	return summary
}

// ComparisonReport computes current minus historical for every configured
// account present in both summaries. Accounts missing on either side are
// skipped.
func (g *Generator) ComparisonReport(current, historical *models.Summary) *models.ComparisonReport {
	return Compare(g.accounts, current, historical, g.now())
}

// Compare is the pure form of ComparisonReport
func Compare(accounts []string, current, historical *models.Summary, ts time.Time) *models.ComparisonReport {
	report := &models.ComparisonReport{
		Timestamp: ts,
		Accounts:  make(map[string]models.AccountComparison),
		Order:     []string{},
	}
	if current == nil || historical == nil {
		return report
	}

	for _, account := range accounts {
		cur, ok := current.Accounts[account]
		if !ok {
			continue
		}
		hist, ok := historical.Accounts[account]
		if !ok {
			continue
		}
		if _, dup := report.Accounts[account]; dup {
			continue
		}

		report.Accounts[account] = models.AccountComparison{
			CriticalFindings:       cur.CriticalFindings,
			HighFindings:           cur.HighFindings,
			RiskScore:              cur.RiskScore,
			CriticalFindingsChange: cur.CriticalFindings - hist.CriticalFindings,
			HighFindingsChange:     cur.HighFindings - hist.HighFindings,
			RiskScoreChange:        cur.RiskScore - hist.RiskScore,
		}
		report.Order = append(report.Order, account)
	}

	return report
}

// LoadHistory reads a summary file. A missing file yields an empty summary
// and no error.
func LoadHistory(path string) (*models.Summary, error) {
	return storage.NewLocal(path).LoadSummary()
}
