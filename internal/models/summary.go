package models

import "time"

// Summary is the durable snapshot of the latest per-account counts and risk score
type Summary struct {
	Timestamp time.Time                 `json:"timestamp"`
	Accounts  map[string]AccountSummary `json:"accounts"`

	// TimestampText is the timestamp exactly as it was read from disk. Storage
	// writes it back unchanged while it still denotes Timestamp.
	TimestampText string `json:"-"`
}

// AccountSummary holds the persisted numbers for one account
type AccountSummary struct {
	CriticalFindings int     `json:"critical_findings"`
	HighFindings     int     `json:"high_findings"`
	RiskScore        float64 `json:"risk_score"`
}

// NewSummary returns a summary with an initialized account map
func NewSummary(ts time.Time) *Summary {
	return &Summary{
		Timestamp: ts,
		Accounts:  make(map[string]AccountSummary),
	}
}

// IsEmpty reports whether the summary carries no account data.
// A summary loaded from a missing file is empty.
func (s *Summary) IsEmpty() bool {
	return s == nil || len(s.Accounts) == 0
}

// ComparisonReport holds deltas between a current and a historical summary
type ComparisonReport struct {
	Timestamp time.Time                    `json:"timestamp"`
	Accounts  map[string]AccountComparison `json:"accounts"`
	// Order keeps the configured account order for rendering
	Order []string `json:"-"`
}

// AccountComparison carries current values and signed changes for one account
type AccountComparison struct {
	CriticalFindings       int     `json:"critical_findings"`
	HighFindings           int     `json:"high_findings"`
	RiskScore              float64 `json:"risk_score"`
	CriticalFindingsChange int     `json:"critical_findings_change"`
	HighFindingsChange     int     `json:"high_findings_change"`
	RiskScoreChange        float64 `json:"risk_score_change"`
}

// AccountReport bundles one account's findings with a summary sub-object
type AccountReport struct {
	AccountID string               `json:"account_id"`
	Timestamp time.Time            `json:"timestamp"`
	Findings  AccountReportDetails `json:"findings"`
	Summary   AccountReportSummary `json:"summary"`
}

// AccountReportDetails are the raw results behind an account report
type AccountReportDetails struct {
	Critical  []Finding `json:"critical"`
	High      []Finding `json:"high"`
	RiskScore RiskScore `json:"risk_score"`
}

// AccountReportSummary holds the counts shown for an account report
type AccountReportSummary struct {
	CriticalCount int     `json:"critical_count"`
	HighCount     int     `json:"high_count"`
	RiskScore     float64 `json:"risk_score"`
}
