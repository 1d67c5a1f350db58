package policy

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/ppiankov/secwatch/internal/models"
	"gopkg.in/yaml.v3"
)

// Policy defines alert rules evaluated over account summaries.
type Policy struct {
	Version string `yaml:"version"`
	Rules   Rules  `yaml:"rules"`

	// Scores weights severities for max_weighted_score. Nil uses the defaults.
	Scores models.SeverityScores `yaml:"-"`
}

// Rules contains all configurable policy rules. Count and score limits
// apply to every account individually.
type Rules struct {
	MaxCritical      *int     `yaml:"max_critical,omitempty"`
	MaxHigh          *int     `yaml:"max_high,omitempty"`
	MaxRiskScore     *float64 `yaml:"max_risk_score,omitempty"`
	MaxRiskIncrease  *float64 `yaml:"max_risk_increase,omitempty"`
	MaxWeightedScore *float64 `yaml:"max_weighted_score,omitempty"`
	RequireAccounts  []string `yaml:"require_accounts,omitempty"`
}

// Violation is a single policy failure.
type Violation struct {
	Rule    string `json:"rule"`
	Account string `json:"account,omitempty"`
	Message string `json:"message"`
}

// Result holds the outcome of a policy check.
type Result struct {
	Pass       bool        `json:"pass"`
	Violations []Violation `json:"violations"`
}

// FromThreshold builds a policy that flags any account whose risk score
// exceeds threshold.
func FromThreshold(threshold float64) *Policy {
	return &Policy{
		Version: "1",
		Rules:   Rules{MaxRiskScore: &threshold},
	}
}

// LoadFromFile reads a policy file. A missing file yields a nil policy.
func LoadFromFile(path string) (*Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read policy: %w", err)
	}

	var p Policy
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse policy: %w", err)
	}

	return &p, nil
}

// FindPolicyFile searches for a policy file in the current directory
// and parent directories up to the filesystem root.
func FindPolicyFile() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	return findPolicyFileFrom(dir)
}

func findPolicyFileFrom(dir string) string {
	names := []string{".secwatch-policy.yaml", ".secwatch-policy.yml"}

	for {
		for _, name := range names {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// Evaluate checks the current summary, and the comparison against history
// when one is available, against the policy rules.
func (p *Policy) Evaluate(current *models.Summary, comparison *models.ComparisonReport) *Result {
	if p == nil {
		return &Result{Pass: true}
	}

	var violations []Violation

	var accounts map[string]models.AccountSummary
	if current != nil {
		accounts = current.Accounts
	}

	scores := p.Scores
	if scores == nil {
		scores = models.DefaultSeverityScores()
	}

	for _, account := range sortedAccounts(accounts) {
		s := accounts[account]

		// max_critical
		if p.Rules.MaxCritical != nil && s.CriticalFindings > *p.Rules.MaxCritical {
			violations = append(violations, Violation{
				Rule:    "max_critical",
				Account: account,
				Message: fmt.Sprintf("critical findings %d exceeds limit %d", s.CriticalFindings, *p.Rules.MaxCritical),
			})
		}

		// max_high
		if p.Rules.MaxHigh != nil && s.HighFindings > *p.Rules.MaxHigh {
			violations = append(violations, Violation{
				Rule:    "max_high",
				Account: account,
				Message: fmt.Sprintf("high findings %d exceeds limit %d", s.HighFindings, *p.Rules.MaxHigh),
			})
		}

		// max_risk_score
		if p.Rules.MaxRiskScore != nil && s.RiskScore > *p.Rules.MaxRiskScore {
			violations = append(violations, Violation{
				Rule:    "max_risk_score",
				Account: account,
				Message: fmt.Sprintf("risk score %.2f exceeds threshold %.2f", s.RiskScore, *p.Rules.MaxRiskScore),
			})
		}

		// max_weighted_score
		if p.Rules.MaxWeightedScore != nil {
			weighted := float64(s.CriticalFindings)*scores.Score(models.SeverityCritical) +
				float64(s.HighFindings)*scores.Score(models.SeverityHigh)
			if weighted > *p.Rules.MaxWeightedScore {
				violations = append(violations, Violation{
					Rule:    "max_weighted_score",
					Account: account,
					Message: fmt.Sprintf("weighted score %.1f exceeds limit %.1f", weighted, *p.Rules.MaxWeightedScore),
				})
			}
		}
	}

	// max_risk_increase
	if p.Rules.MaxRiskIncrease != nil && comparison != nil {
		for _, account := range sortedAccounts(comparison.Accounts) {
			change := comparison.Accounts[account].RiskScoreChange
			if change > *p.Rules.MaxRiskIncrease {
				violations = append(violations, Violation{
					Rule:    "max_risk_increase",
					Account: account,
					Message: fmt.Sprintf("risk score rose %.2f, limit %.2f", change, *p.Rules.MaxRiskIncrease),
				})
			}
		}
	}

	// require_accounts
	for _, account := range p.Rules.RequireAccounts {
		if _, found := accounts[account]; !found {
			violations = append(violations, Violation{
				Rule:    "require_accounts",
				Account: account,
				Message: fmt.Sprintf("required account %q not found in summary", account),
			})
		}
	}

	return &Result{
		Pass:       len(violations) == 0,
		Violations: violations,
	}
}

func sortedAccounts[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
