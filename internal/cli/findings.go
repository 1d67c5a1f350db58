package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/ppiankov/secwatch/internal/client"
	"github.com/ppiankov/secwatch/internal/models"
	"github.com/ppiankov/secwatch/internal/reporter"
	"github.com/ppiankov/secwatch/internal/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	// Findings command flags
	findingsAccount     string
	findingsAll         bool
	findingsSeverity    string
	findingsSince       time.Duration
	findingsFormat      string
	findingsInteractive bool
)

// findingsCmd lists simulated findings
var findingsCmd = &cobra.Command{
	Use:   "findings",
	Short: "List findings for one account or all accounts",
	Long: `Fetch findings from the simulated data source and print them.

Without --account or --all the findings are attributed to a randomly chosen
configured account. --since keeps findings detected within the given window.
--interactive opens a browsable table (terminal only).

Example:
  secwatch findings --account prod-account-456
  secwatch findings --all --severity critical
  secwatch findings --all --since 72h --format json
  secwatch findings --all --interactive`,
	RunE: runFindings,
}

func init() {
	findingsCmd.Flags().StringVarP(&findingsAccount, "account", "a", "",
		"account to query (default: random configured account)")
	findingsCmd.Flags().BoolVar(&findingsAll, "all", false,
		"query every configured account")
	findingsCmd.Flags().StringVarP(&findingsSeverity, "severity", "s", "",
		"only findings of this severity: critical, high, medium, low")
	findingsCmd.Flags().DurationVar(&findingsSince, "since", 0,
		"only findings detected within this window (e.g. 24h)")
	findingsCmd.Flags().StringVarP(&findingsFormat, "format", "f", "",
		"output format: text or json (default from config)")
	findingsCmd.Flags().BoolVarP(&findingsInteractive, "interactive", "i", false,
		"browse findings in an interactive table")
}

func runFindings(cmd *cobra.Command, args []string) error {
	severity, err := parseSeverityFlag(findingsSeverity)
	if err != nil {
		return err
	}
	if findingsSince < 0 {
		return &ValidationError{Message: "--since cannot be negative"}
	}
	if findingsAll && findingsAccount != "" {
		return &ValidationError{Message: "--account and --all are mutually exclusive"}
	}

	format := cfg.Format
	if findingsFormat != "" {
		format = findingsFormat
	}
	if err := validateFormat(format); err != nil {
		return err
	}

	c := newClient(cfg.Mode())

	accounts := resolveAccounts(findingsAccount, findingsAll)
	perAccount := make([][]models.Finding, len(accounts))
	var all []models.Finding
	for i, account := range accounts {
		findings := c.Findings(severity, account)
		if findingsSince > 0 {
			now := time.Now()
			findings = client.FilterByTimeRange(findings, now.Add(-findingsSince), now)
		}
		logDebug("account %q: %d findings", account, len(findings))
		perAccount[i] = findings
		all = append(all, findings...)
	}

	if findingsInteractive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return &ValidationError{Message: "--interactive requires a terminal"}
		}
		return tui.Run(tui.Data{
			Title:     findingsTitle(accounts),
			Findings:  all,
			Scores:    cfg.Scores(),
			Threshold: cfg.RiskThreshold,
		})
	}

	if format == "json" {
		return reporter.NewJSONReporter(stdout(), true).Findings(all)
	}

	text := textReporter()
	for i, account := range accounts {
		if err := text.Findings(account, perAccount[i]); err != nil {
			return fmt.Errorf("write findings: %w", err)
		}
	}
	return nil
}

func findingsTitle(accounts []string) string {
	switch {
	case len(accounts) == 1 && accounts[0] != "":
		return accounts[0]
	case len(accounts) > 1:
		return fmt.Sprintf("%d accounts", len(accounts))
	default:
		return "all findings"
	}
}
