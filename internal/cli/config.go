package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ppiankov/secwatch/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	// Config command flags
	configOutput string
	configForce  bool
)

// configCmd groups config helpers
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Create or inspect the secwatch configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Print a sample configuration file",
	Long: `Print a commented sample configuration to stdout, or write it to a file
with --output.

Example:
  secwatch config init > secwatch.yaml
  secwatch config init --output ~/.config/secwatch/secwatch.yaml`,
	RunE: runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML",
	RunE:  runConfigShow,
}

func init() {
	configInitCmd.Flags().StringVarP(&configOutput, "output", "o", "",
		"write the sample config to this path instead of stdout")
	configInitCmd.Flags().BoolVar(&configForce, "force", false,
		"overwrite an existing file")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	sample := config.GenerateSampleConfig()
	if configOutput == "" {
		_, err := fmt.Fprint(stdout(), sample)
		return err
	}

	if _, err := os.Stat(configOutput); err == nil && !configForce {
		return &ValidationError{Message: fmt.Sprintf("%s already exists (use --force to overwrite)", configOutput)}
	}

	if dir := filepath.Dir(configOutput); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(configOutput, []byte(sample), 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	fmt.Fprintf(stdout(), "Config written to %s\n", configOutput)
	return nil
}

// effectiveConfig mirrors config.Config with YAML keys and a readable interval
type effectiveConfig struct {
	Accounts       []string           `yaml:"accounts"`
	ScanInterval   string             `yaml:"scan_interval"`
	RiskThreshold  float64            `yaml:"risk_threshold"`
	SeverityScores map[string]float64 `yaml:"severity_scores"`
	SummaryFile    string             `yaml:"summary_file"`
	ReportCSV      string             `yaml:"report_csv"`
	ScanMode       string             `yaml:"scan_mode"`
	PolicyFile     string             `yaml:"policy_file,omitempty"`
	HistoryLimit   int                `yaml:"history_limit"`
	Format         string             `yaml:"format"`
	LogLevel       string             `yaml:"log_level"`
	Verbose        bool               `yaml:"verbose"`
	Debug          bool               `yaml:"debug"`
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	out := effectiveConfig{
		Accounts:       cfg.Accounts,
		ScanInterval:   cfg.ScanInterval.String(),
		RiskThreshold:  cfg.RiskThreshold,
		SeverityScores: cfg.SeverityScores,
		SummaryFile:    cfg.SummaryFile,
		ReportCSV:      cfg.ReportCSV,
		ScanMode:       string(cfg.Mode()),
		PolicyFile:     cfg.PolicyFile,
		HistoryLimit:   cfg.HistoryLimit,
		Format:         cfg.Format,
		LogLevel:       cfg.LogLevel,
		Verbose:        cfg.Verbose,
		Debug:          cfg.Debug,
	}

	enc := yaml.NewEncoder(stdout())
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return enc.Close()
}
