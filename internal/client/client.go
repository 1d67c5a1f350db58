package client

import (
	"fmt"
	"time"

	"github.com/ppiankov/secwatch/internal/models"
)

// ScanMode selects how Scan assembles a snapshot
type ScanMode string

const (
	// ScanIndependent draws critical findings, high findings, and the risk
	// score separately, so the three are not consistent with each other.
	ScanIndependent ScanMode = "independent"

	// ScanAtomic draws one finding set per scan and derives the critical and
	// high lists and the risk score's counts from it.
	ScanAtomic ScanMode = "atomic"
)

// ParseScanMode validates a scan mode string. Empty means independent.
func ParseScanMode(s string) (ScanMode, error) {
	switch ScanMode(s) {
	case "", ScanIndependent:
		return ScanIndependent, nil
	case ScanAtomic:
		return ScanAtomic, nil
	default:
		return "", fmt.Errorf("invalid scan mode: %s (must be independent or atomic)", s)
	}
}

// FindingSource is the generator behind the client
type FindingSource interface {
	GenerateFindings(account string, severity models.Severity) []models.Finding
	GenerateRiskScore(account string) models.RiskScore
	GenerateAssets(account string) []models.Asset
}

// Client is a filtering facade over a FindingSource. It does no caching:
// every call goes back to the source.
type Client struct {
	source FindingSource
	mode   ScanMode
}

// New creates a client over source
func New(source FindingSource, mode ScanMode) *Client {
	if mode == "" {
		mode = ScanIndependent
	}
	return &Client{source: source, mode: mode}
}

// Mode returns the configured scan mode
func (c *Client) Mode() ScanMode {
	return c.mode
}

// Findings returns findings for account, optionally filtered by severity
func (c *Client) Findings(severity models.Severity, account string) []models.Finding {
	return c.source.GenerateFindings(account, severity)
}

// HighSeverityFindings returns high findings for account
func (c *Client) HighSeverityFindings(account string) []models.Finding {
	return c.Findings(models.SeverityHigh, account)
}

// CriticalFindings returns critical findings for account
func (c *Client) CriticalFindings(account string) []models.Finding {
	return c.Findings(models.SeverityCritical, account)
}

// RiskScore returns a risk score for account
func (c *Client) RiskScore(account string) models.RiskScore {
	return c.source.GenerateRiskScore(account)
}

// Assets returns the asset inventory for account
func (c *Client) Assets(account string) []models.Asset {
	return c.source.GenerateAssets(account)
}

// FindingsInTimeRange fetches unfiltered findings for account and keeps
// those with start <= timestamp <= end
func (c *Client) FindingsInTimeRange(start, end time.Time, account string) []models.Finding {
	return FilterByTimeRange(c.Findings("", account), start, end)
}

// FilterByTimeRange returns the findings whose timestamp lies in [start, end]
func FilterByTimeRange(findings []models.Finding, start, end time.Time) []models.Finding {
	result := make([]models.Finding, 0, len(findings))
	for _, f := range findings {
		if f.Timestamp.Before(start) || f.Timestamp.After(end) {
			continue
		}
		result = append(result, f)
	}
	return result
}

// Scan produces one snapshot for account according to the scan mode
func (c *Client) Scan(account string) models.Snapshot {
	if c.mode == ScanAtomic {
		return c.scanAtomic(account)
	}

	critical := c.CriticalFindings(account)
	high := c.HighSeverityFindings(account)
	risk := c.RiskScore(account)

	return models.Snapshot{
		AccountID: account,
		Timestamp: risk.Timestamp,
		Critical:  critical,
		High:      high,
		Risk:      risk,
	}
}

func (c *Client) scanAtomic(account string) models.Snapshot {
	all := c.Findings("", account)
	risk := c.RiskScore(account)

	snap := models.Snapshot{
		AccountID: account,
		Timestamp: risk.Timestamp,
		Critical:  []models.Finding{},
		High:      []models.Finding{},
	}

	counts := make(map[models.Severity]int, len(models.Severities))
	for _, sev := range models.Severities {
		counts[sev] = 0
	}
	for _, f := range all {
		counts[f.Severity]++
		switch f.Severity {
		case models.SeverityCritical:
			snap.Critical = append(snap.Critical, f)
		case models.SeverityHigh:
			snap.High = append(snap.High, f)
		}
	}

	risk.FindingsCount = counts
	snap.Risk = risk
	return snap
}
