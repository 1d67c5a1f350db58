package models

import (
	"fmt"
	"time"
)

// Severity is the ordinal class of a finding
type Severity string

// Severity levels, most severe first
const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Severities lists every severity in descending order
var Severities = []Severity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow}

// Rank returns 0 for critical through 3 for low, and len(Severities) for unknown values.
func (s Severity) Rank() int {
	for i, sev := range Severities {
		if sev == s {
			return i
		}
	}
	return len(Severities)
}

// Valid reports whether s is one of the known severities
func (s Severity) Valid() bool {
	return s.Rank() < len(Severities)
}

// ParseSeverity validates a severity string. An empty string yields an empty
// severity, which callers treat as "no filter".
func ParseSeverity(s string) (Severity, error) {
	if s == "" {
		return "", nil
	}
	sev := Severity(s)
	if !sev.Valid() {
		return "", fmt.Errorf("invalid severity: %s (must be critical, high, medium, or low)", s)
	}
	return sev, nil
}

// DefaultAccounts are the account identifiers monitored when none are configured
var DefaultAccounts = []string{
	"dev-account-123",
	"prod-account-456",
	"staging-account-789",
}

// SeverityScores maps each severity to a numeric weight
type SeverityScores map[Severity]float64

// DefaultSeverityScores returns the stock severity weights
func DefaultSeverityScores() SeverityScores {
	return SeverityScores{
		SeverityCritical: 9.0,
		SeverityHigh:     7.0,
		SeverityMedium:   4.0,
		SeverityLow:      1.0,
	}
}

// Score returns the weight for s, or 0 when s is unmapped
func (m SeverityScores) Score(s Severity) float64 {
	return m[s]
}

// Finding statuses
const (
	StatusOpen     = "open"
	StatusResolved = "resolved"
)

// Risk trend directions
const (
	TrendImproving = "improving"
	TrendStable    = "stable"
	TrendDegrading = "degrading"
)

// Risk score bounds
const (
	MinRiskScore = 1.0
	MaxRiskScore = 10.0
)

// Finding is a single simulated security issue tied to an account
type Finding struct {
	ID             string    `json:"id"`          // archetype id, e.g. S3-001
	InstanceID     string    `json:"instance_id"` // unique per generated copy
	Title          string    `json:"title"`
	Severity       Severity  `json:"severity"`
	Description    string    `json:"description"`
	Recommendation string    `json:"recommendation"`
	AccountID      string    `json:"account_id"`
	Timestamp      time.Time `json:"timestamp"`
	Status         string    `json:"status"`     // open, resolved
	RiskScore      float64   `json:"risk_score"` // 1.0-10.0
}

// RiskScore is the aggregate posture indicator for one account at one point in time
type RiskScore struct {
	AccountID     string           `json:"account_id"`
	Score         float64          `json:"score"`
	Timestamp     time.Time        `json:"timestamp"`
	Trend         string           `json:"trend"`
	FindingsCount map[Severity]int `json:"findings_count"`
}

// Asset is an inventoried cloud resource. Assets are not linked to findings.
type Asset struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	AccountID   string    `json:"account_id"`
	Region      string    `json:"region"`
	Status      string    `json:"status"`
	LastUpdated time.Time `json:"last_updated"`
}

// Snapshot is the result of scanning one account once
type Snapshot struct {
	AccountID string    `json:"account_id"`
	Timestamp time.Time `json:"timestamp"`
	Critical  []Finding `json:"critical"`
	High      []Finding `json:"high"`
	Risk      RiskScore `json:"risk_score"`
}

// AccountSummary returns the persisted counts for this snapshot
func (s Snapshot) AccountSummary() AccountSummary {
	return AccountSummary{
		CriticalFindings: len(s.Critical),
		HighFindings:     len(s.High),
		RiskScore:        s.Risk.Score,
	}
}
