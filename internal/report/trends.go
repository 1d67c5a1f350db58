package report

import (
	"github.com/ppiankov/secwatch/internal/models"
)

// riskEpsilon absorbs float noise when deciding whether a risk score moved
const riskEpsilon = 0.005

// Overview counts accounts by the direction their risk score moved
type Overview struct {
	Accounts  int     `json:"accounts"`
	Improving int     `json:"improving"`
	Degrading int     `json:"degrading"`
	Stable    int     `json:"stable"`
	NetRisk   float64 `json:"net_risk_change"`
	// NetCritical is the summed change in critical findings
	NetCritical int `json:"net_critical_change"`
	NetHigh     int `json:"net_high_change"`
}

// Direction maps a risk score change to a trend direction. A lower risk
// score is an improvement.
func Direction(riskChange float64) string {
	switch {
	case riskChange < -riskEpsilon:
		return models.TrendImproving
	case riskChange > riskEpsilon:
		return models.TrendDegrading
	default:
		return models.TrendStable
	}
}

// Summarize builds an overview from a comparison report
func Summarize(r *models.ComparisonReport) Overview {
	var o Overview
	if r == nil {
		return o
	}

	for _, c := range r.Accounts {
		o.Accounts++
		o.NetRisk += c.RiskScoreChange
		o.NetCritical += c.CriticalFindingsChange
		o.NetHigh += c.HighFindingsChange

		switch Direction(c.RiskScoreChange) {
		case models.TrendImproving:
			o.Improving++
		case models.TrendDegrading:
			o.Degrading++
		default:
			o.Stable++
		}
	}

	return o
}

// GetTrendIndicator returns a visual indicator for trend direction
func GetTrendIndicator(direction string) string {
	switch direction {
	case models.TrendImproving:
		return "↓"
	case models.TrendDegrading:
		return "↑"
	case models.TrendStable:
		return "→"
	default:
		return "?"
	}
}
