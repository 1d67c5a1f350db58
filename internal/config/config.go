package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ppiankov/secwatch/internal/client"
	"github.com/ppiankov/secwatch/internal/models"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Config holds all configuration for secwatch
type Config struct {
	// Accounts to scan, in display order
	Accounts []string `mapstructure:"accounts"`

	// Delay between monitoring passes
	ScanInterval time.Duration `mapstructure:"scan_interval"`

	// Risk scores above this value raise an alert
	RiskThreshold float64 `mapstructure:"risk_threshold"`

	// Numeric weight per severity
	SeverityScores map[string]float64 `mapstructure:"severity_scores"`

	// Summary written by monitor and read by report
	SummaryFile string `mapstructure:"summary_file"`

	// CSV written by report
	ReportCSV string `mapstructure:"report_csv"`

	// independent or atomic
	ScanMode string `mapstructure:"scan_mode"`

	// Optional alert policy (YAML)
	PolicyFile string `mapstructure:"policy_file"`

	// Scans kept in memory per account, 0 keeps all
	HistoryLimit int `mapstructure:"history_limit"`

	// Output format (text, json)
	Format string `mapstructure:"format"`

	// zerolog level name
	LogLevel string `mapstructure:"log_level"`

	// Verbose output
	Verbose bool `mapstructure:"verbose"`

	// Debug mode
	Debug bool `mapstructure:"debug"`
}

// DefaultConfig returns configuration with default values
func DefaultConfig() *Config {
	scores := make(map[string]float64)
	for sev, v := range models.DefaultSeverityScores() {
		scores[string(sev)] = v
	}

	return &Config{
		Accounts:       append([]string(nil), models.DefaultAccounts...),
		ScanInterval:   5 * time.Second,
		RiskThreshold:  7.0,
		SeverityScores: scores,
		SummaryFile:    "security_summary.json",
		ReportCSV:      "security_report.csv",
		ScanMode:       string(client.ScanIndependent),
		HistoryLimit:   100,
		Format:         "text",
		LogLevel:       "info",
		Verbose:        false,
		Debug:          false,
	}
}

// Load loads configuration with the following precedence (lowest to highest):
// 1. Default values
// 2. Config file (~/secwatch.yaml or ./secwatch.yaml)
// 3. Environment variables (SECWATCH_*)
// 4. CLI flags (handled by caller)
func Load() (*Config, error) {
	return LoadFromFile("")
}

// LoadFromFile loads configuration from a specific file path
// If path is empty, it searches for config in standard locations
func LoadFromFile(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	defaults := DefaultConfig()
	v.SetDefault("accounts", defaults.Accounts)
	v.SetDefault("scan_interval", defaults.ScanInterval)
	v.SetDefault("risk_threshold", defaults.RiskThreshold)
	v.SetDefault("severity_scores", defaults.SeverityScores)
	v.SetDefault("summary_file", defaults.SummaryFile)
	v.SetDefault("report_csv", defaults.ReportCSV)
	v.SetDefault("scan_mode", defaults.ScanMode)
	v.SetDefault("policy_file", "")
	v.SetDefault("history_limit", defaults.HistoryLimit)
	v.SetDefault("format", defaults.Format)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("verbose", defaults.Verbose)
	v.SetDefault("debug", defaults.Debug)

	// Set config file settings
	v.SetConfigName("secwatch")
	v.SetConfigType("yaml")

	if configPath != "" {
		// Use explicit config file path
		v.SetConfigFile(configPath)
	} else {
		// 1. Current directory
		v.AddConfigPath(".")

		// 2. Home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}

		// 3. XDG config directory
		if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
			v.AddConfigPath(filepath.Join(xdgConfig, "secwatch"))
		}
	}

	// Enable environment variable support
	v.SetEnvPrefix("SECWATCH")
	v.AutomaticEnv()

	// Try to read config file (ignore error if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if len(c.Accounts) == 0 {
		return fmt.Errorf("accounts cannot be empty")
	}
	for _, a := range c.Accounts {
		if strings.TrimSpace(a) == "" {
			return fmt.Errorf("account id cannot be blank")
		}
	}

	if c.ScanInterval <= 0 {
		return fmt.Errorf("scan_interval must be positive")
	}
	if c.ScanInterval%time.Second != 0 {
		return fmt.Errorf("scan_interval must be a whole number of seconds, got %s", c.ScanInterval)
	}

	if c.RiskThreshold < models.MinRiskScore || c.RiskThreshold > models.MaxRiskScore {
		return fmt.Errorf("risk_threshold must be between %.1f and %.1f", models.MinRiskScore, models.MaxRiskScore)
	}

	for sev, v := range c.SeverityScores {
		if _, err := models.ParseSeverity(sev); err != nil || sev == "" {
			return fmt.Errorf("severity_scores: unknown severity %q", sev)
		}
		if v < 0 {
			return fmt.Errorf("severity_scores: %s cannot be negative", sev)
		}
	}

	if _, err := client.ParseScanMode(c.ScanMode); err != nil {
		return err
	}

	validFormats := map[string]bool{
		"text": true,
		"json": true,
	}
	if !validFormats[c.Format] {
		return fmt.Errorf("invalid format: %s (must be text or json)", c.Format)
	}

	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level: %s", c.LogLevel)
	}

	if c.HistoryLimit < 0 {
		return fmt.Errorf("history_limit cannot be negative")
	}

	if c.SummaryFile == "" {
		return fmt.Errorf("summary_file cannot be empty")
	}

	return nil
}

// Scores returns the configured severity weights
func (c *Config) Scores() models.SeverityScores {
	scores := make(models.SeverityScores, len(c.SeverityScores))
	for sev, v := range c.SeverityScores {
		scores[models.Severity(sev)] = v
	}
	return scores
}

// Mode returns the parsed scan mode. Validate must have passed.
func (c *Config) Mode() client.ScanMode {
	mode, _ := client.ParseScanMode(c.ScanMode)
	return mode
}

// GenerateSampleConfig generates a sample configuration file content
func GenerateSampleConfig() string {
	return `# secwatch configuration
# Save this file as ./secwatch.yaml, ~/secwatch.yaml, or $XDG_CONFIG_HOME/secwatch/secwatch.yaml

# Accounts to monitor
accounts:
  - dev-account-123
  - prod-account-456
  - staging-account-789

# Delay between monitoring passes
scan_interval: 5s

# Risk scores above this value raise an alert (1.0-10.0)
risk_threshold: 7.0

# Weight per severity, used in findings output and the max_weighted_score policy rule
severity_scores:
  critical: 9.0
  high: 7.0
  medium: 4.0
  low: 1.0

# Summary written when monitoring stops and read by the report command
summary_file: security_summary.json

# CSV written by the report command
report_csv: security_report.csv

# independent: critical, high and risk score are drawn separately
# atomic: one draw per scan so counts and risk score agree
scan_mode: independent

# Optional alert policy (see .secwatch-policy.yaml)
# policy_file: .secwatch-policy.yaml

# Scans kept in memory per account while monitoring (0 keeps all)
history_limit: 100

# Output format: text or json
format: text

# Log level: debug, info, warn, error
log_level: info

# Enable verbose output
verbose: false

# Enable debug mode
debug: false
`
}
