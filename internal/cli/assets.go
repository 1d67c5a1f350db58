package cli

import (
	"fmt"

	"github.com/ppiankov/secwatch/internal/models"
	"github.com/ppiankov/secwatch/internal/reporter"
	"github.com/spf13/cobra"
)

var (
	// Assets command flags
	assetsAccount string
	assetsAll     bool
	assetsFormat  string
)

// assetsCmd lists the simulated asset inventory
var assetsCmd = &cobra.Command{
	Use:   "assets",
	Short: "List the asset inventory for one account or all accounts",
	Long: `Fetch a simulated asset inventory (instances, buckets, databases and
other resources) and print it.

Example:
  secwatch assets --account dev-account-123
  secwatch assets --all --format json`,
	RunE: runAssets,
}

func init() {
	assetsCmd.Flags().StringVarP(&assetsAccount, "account", "a", "",
		"account to query (default: random configured account per asset)")
	assetsCmd.Flags().BoolVar(&assetsAll, "all", false,
		"query every configured account")
	assetsCmd.Flags().StringVarP(&assetsFormat, "format", "f", "",
		"output format: text or json (default from config)")
}

func runAssets(cmd *cobra.Command, args []string) error {
	if assetsAll && assetsAccount != "" {
		return &ValidationError{Message: "--account and --all are mutually exclusive"}
	}

	format := cfg.Format
	if assetsFormat != "" {
		format = assetsFormat
	}
	if err := validateFormat(format); err != nil {
		return err
	}

	c := newClient(cfg.Mode())
	accounts := resolveAccounts(assetsAccount, assetsAll)

	if format == "json" {
		var all []models.Asset
		for _, account := range accounts {
			all = append(all, c.Assets(account)...)
		}
		return reporter.NewJSONReporter(stdout(), true).Assets(all)
	}

	text := textReporter()
	for _, account := range accounts {
		assets := c.Assets(account)
		logDebug("account %q: %d assets", account, len(assets))
		if err := text.Assets(account, assets); err != nil {
			return fmt.Errorf("write assets: %w", err)
		}
	}
	return nil
}
