package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ppiankov/secwatch/internal/models"
)

// filterState holds current active filters.
type filterState struct {
	Account    string
	Severity   models.Severity
	Status     string
	SearchText string
}

// describe renders the active filters for the status line.
func (f filterState) describe() string {
	var parts []string
	if f.Severity != "" {
		parts = append(parts, "severity "+string(f.Severity))
	}
	if f.Status != "" {
		parts = append(parts, "status "+f.Status)
	}
	if f.Account != "" {
		parts = append(parts, "account "+f.Account)
	}
	if f.SearchText != "" {
		parts = append(parts, fmt.Sprintf("search %q", f.SearchText))
	}
	if len(parts) == 0 {
		return "No filters"
	}
	return "Filter: " + strings.Join(parts, ", ")
}

// sortField enumerates columns that can be sorted.
type sortField int

const (
	sortBySeverity sortField = iota
	sortByAccount
	sortByRisk
	sortByNewest
	sortByID
)

// sortFieldCount is the total number of sortable columns.
const sortFieldCount = 5

// applyFilters returns findings matching all active filters.
func applyFilters(findings []models.Finding, f filterState) []models.Finding {
	result := make([]models.Finding, 0, len(findings))
	searchLower := strings.ToLower(f.SearchText)

	for _, finding := range findings {
		if f.Account != "" && finding.AccountID != f.Account {
			continue
		}
		if f.Severity != "" && finding.Severity != f.Severity {
			continue
		}
		if f.Status != "" && finding.Status != f.Status {
			continue
		}
		if searchLower != "" && !matchesSearch(finding, searchLower) {
			continue
		}
		result = append(result, finding)
	}
	return result
}

func matchesSearch(f models.Finding, searchLower string) bool {
	return strings.Contains(strings.ToLower(f.ID), searchLower) ||
		strings.Contains(strings.ToLower(f.Title), searchLower) ||
		strings.Contains(strings.ToLower(f.AccountID), searchLower) ||
		strings.Contains(strings.ToLower(string(f.Severity)), searchLower) ||
		strings.Contains(strings.ToLower(f.Description), searchLower) ||
		strings.Contains(strings.ToLower(f.Status), searchLower)
}

// sortFindings sorts a slice of findings in place by the given field.
func sortFindings(findings []models.Finding, field sortField) {
	sort.SliceStable(findings, func(i, j int) bool {
		switch field {
		case sortBySeverity:
			return findings[i].Severity.Rank() < findings[j].Severity.Rank()
		case sortByAccount:
			return findings[i].AccountID < findings[j].AccountID
		case sortByRisk:
			return findings[i].RiskScore > findings[j].RiskScore
		case sortByNewest:
			return findings[i].Timestamp.After(findings[j].Timestamp)
		case sortByID:
			return findings[i].ID < findings[j].ID
		default:
			return false
		}
	})
}

// uniqueAccounts returns deduplicated, sorted account ids from findings.
func uniqueAccounts(findings []models.Finding) []string {
	seen := make(map[string]bool)
	var accounts []string
	for _, f := range findings {
		if !seen[f.AccountID] {
			seen[f.AccountID] = true
			accounts = append(accounts, f.AccountID)
		}
	}
	sort.Strings(accounts)
	return accounts
}

// nextSeverity cycles all -> critical -> high -> medium -> low -> all.
func nextSeverity(current models.Severity) models.Severity {
	if current == "" {
		return models.Severities[0]
	}
	rank := current.Rank()
	if rank+1 >= len(models.Severities) {
		return ""
	}
	return models.Severities[rank+1]
}

// severityForKey maps the digit shortcuts to a severity. "0" clears the
// filter; "1" is critical down to "4" for low.
func severityForKey(k string) (models.Severity, bool) {
	if len(k) != 1 || k[0] < '0' || k[0] > '0'+byte(len(models.Severities)) {
		return "", false
	}
	if k == "0" {
		return "", true
	}
	return models.Severities[k[0]-'1'], true
}

// nextStatus cycles all -> open -> resolved -> all.
func nextStatus(current string) string {
	switch current {
	case "":
		return models.StatusOpen
	case models.StatusOpen:
		return models.StatusResolved
	default:
		return ""
	}
}

// sortFieldName returns a human-readable name for the sort field.
func sortFieldName(f sortField) string {
	switch f {
	case sortBySeverity:
		return "severity"
	case sortByAccount:
		return "account"
	case sortByRisk:
		return "risk"
	case sortByNewest:
		return "newest"
	case sortByID:
		return "id"
	default:
		return "unknown"
	}
}
