package cli

import (
	"fmt"

	"github.com/ppiankov/secwatch/internal/models"
	"github.com/ppiankov/secwatch/internal/policy"
	"github.com/ppiankov/secwatch/internal/report"
	"github.com/ppiankov/secwatch/internal/reporter"
	"github.com/spf13/cobra"
)

var (
	// Report command flags
	reportFormat      string
	reportCSV         string
	reportSummaryFile string
	reportNoExport    bool
	reportPolicy      string
	reportFailOnAlert bool
)

// reportCmd compares a fresh scan against the saved summary
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Compare a fresh scan with the saved summary and export CSV",
	Long: `Run one report per configured account, compare the results with the
summary saved by the last monitor run, print the per-account deltas, and
export them as CSV.

When no summary exists yet a warning is printed and nothing is exported.

Alert rules come from --policy, the policy_file setting, or a
.secwatch-policy.yaml found in the current directory or a parent. Without
any of these, accounts above risk_threshold are flagged.

Example:
  secwatch report
  secwatch report --csv /tmp/report.csv --format json
  secwatch report --fail-on-alert`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVarP(&reportFormat, "format", "f", "",
		"output format: text or json (default from config)")
	reportCmd.Flags().StringVar(&reportCSV, "csv", "",
		"CSV export path (default from config)")
	reportCmd.Flags().StringVar(&reportSummaryFile, "summary-file", "",
		"summary to compare against (default from config)")
	reportCmd.Flags().BoolVar(&reportNoExport, "no-export", false,
		"skip the CSV export")
	reportCmd.Flags().StringVar(&reportPolicy, "policy", "",
		"alert policy file (default: policy_file or .secwatch-policy.yaml)")
	reportCmd.Flags().BoolVar(&reportFailOnAlert, "fail-on-alert", false,
		"exit with code 1 when the alert policy fails")
}

func runReport(cmd *cobra.Command, args []string) error {
	format := cfg.Format
	if reportFormat != "" {
		format = reportFormat
	}
	if err := validateFormat(format); err != nil {
		return err
	}

	summaryFile := cfg.SummaryFile
	if reportSummaryFile != "" {
		summaryFile = reportSummaryFile
	}
	csvPath := cfg.ReportCSV
	if reportCSV != "" {
		csvPath = reportCSV
	}

	pol, err := loadPolicy()
	if err != nil {
		return err
	}

	logVerbose("Loading summary from: %s", summaryFile)
	historical, err := report.LoadHistory(summaryFile)
	if err != nil {
		logError("Failed to load summary: %v", err)
		return fmt.Errorf("load summary: %w", err)
	}

	text := textReporter()
	if historical.IsEmpty() {
		logger.Warn().Str("path", summaryFile).Msg("no historical data found for comparison")
		if format == "text" {
			text.NoHistory()
		}
		return nil
	}

	gen := report.NewGenerator(newClient(cfg.Mode()), cfg.Accounts)
	current := gen.CurrentSummary()
	comparison := gen.ComparisonReport(current, historical)
	logDebug("compared %d of %d accounts", len(comparison.Accounts), len(cfg.Accounts))

	if format == "json" {
		if err := reporter.NewJSONReporter(stdout(), true).Comparison(comparison); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	} else if err := text.Comparison(comparison); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	if !reportNoExport {
		if err := reporter.ExportCSV(csvPath, comparison); err != nil {
			logError("Failed to export CSV: %v", err)
			return err
		}
		if format == "text" {
			text.Exported(csvPath)
		}
		logVerbose("Report exported to %s", csvPath)
	}

	return checkPolicy(pol, current, comparison)
}

// loadPolicy resolves the alert policy. An explicitly named file must exist;
// a discovered file is optional; otherwise the risk threshold is the policy.
func loadPolicy() (*policy.Policy, error) {
	path := reportPolicy
	if path == "" {
		path = cfg.PolicyFile
	}

	if path != "" {
		pol, err := policy.LoadFromFile(path)
		if err != nil {
			return nil, &ValidationError{Message: err.Error()}
		}
		if pol == nil {
			return nil, &ValidationError{Message: "policy file not found: " + path}
		}
		pol.Scores = cfg.Scores()
		return pol, nil
	}

	if found := policy.FindPolicyFile(); found != "" {
		logVerbose("Found policy file: %s", found)
		pol, err := policy.LoadFromFile(found)
		if err != nil {
			return nil, &ValidationError{Message: err.Error()}
		}
		if pol != nil {
			pol.Scores = cfg.Scores()
			return pol, nil
		}
	}

	return policy.FromThreshold(cfg.RiskThreshold), nil
}

// checkPolicy logs every violation and fails only with --fail-on-alert
func checkPolicy(pol *policy.Policy, current *models.Summary, comparison *models.ComparisonReport) error {
	result := pol.Evaluate(current, comparison)
	if result.Pass {
		logVerbose("Alert policy passed")
		return nil
	}

	for _, v := range result.Violations {
		logger.Warn().Str("rule", v.Rule).Str("account", v.Account).Msg(v.Message)
	}
	if reportFailOnAlert {
		return &AlertError{Violations: result.Violations}
	}
	return nil
}
