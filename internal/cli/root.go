package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/ppiankov/secwatch/internal/config"
	"github.com/ppiankov/secwatch/internal/logging"
	"github.com/ppiankov/secwatch/internal/policy"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const (
	ExitOK           = 0 // Success
	ExitPolicyFail   = 1 // Alert policy violated
	ExitInvalidInput = 2 // Invalid config, flags, or arguments
	ExitRuntimeError = 3 // I/O, permissions, or runtime error
)

var (
	// Global config instance
	cfg *config.Config

	// Global logger, rebuilt from config before every command
	logger = logging.New(os.Stderr, "info", logging.FormatAuto)

	// Global flags
	configFile string
	verbose    bool
	debug      bool
	seed       uint64

	// Set by main via ldflags
	buildVersion = "dev"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "secwatch",
	Short: "secwatch - simulated cloud security posture monitor",
	Long: `secwatch periodically scans a fixed list of cloud accounts for security
findings, shows per-account severity tables, and saves a summary when
monitoring stops. The report command compares a fresh scan against that
summary and exports the deltas as CSV.

All findings, risk scores and assets are simulated.

Quick start:
  secwatch config init > secwatch.yaml
  secwatch monitor            # Ctrl+C to stop and save the summary
  secwatch report

Other commands:
  secwatch findings --account prod-account-456 --severity critical
  secwatch findings --all --interactive
  secwatch assets --all`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadFromFile(configFile)
		if err != nil {
			return &ValidationError{Message: fmt.Sprintf("failed to load config: %v", err)}
		}

		// Override config with flags if provided
		if verbose {
			cfg.Verbose = true
		}
		if debug {
			cfg.Debug = true
		}

		logger = logging.New(os.Stderr, logging.Level(cfg.LogLevel, cfg.Verbose, cfg.Debug), logging.FormatAuto)
		logDebug("config loaded: %d accounts, scan mode %s", len(cfg.Accounts), cfg.ScanMode)
		return nil
	},
}

// SetVersion sets the version reported by the version command
func SetVersion(v string) {
	buildVersion = v
}

// Execute runs the root command and exits with the mapped exit code
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logError("%v", err)
		os.Exit(HandleError(err))
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"config file (default: ./secwatch.yaml or ~/secwatch.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"verbose output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"debug mode (very verbose)")
	rootCmd.PersistentFlags().Uint64Var(&seed, "seed", 0,
		"seed for simulated data (0 = random)")

	rootCmd.SilenceErrors = true
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &ValidationError{Message: err.Error()}
	})

	// Add subcommands
	rootCmd.AddCommand(monitorCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(findingsCmd)
	rootCmd.AddCommand(assetsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// versionCmd shows version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("secwatch %s\n", buildVersion)
		fmt.Println("Simulated cloud security posture monitor")
	},
}

// HandleError determines the appropriate exit code for an error
func HandleError(err error) int {
	if err == nil {
		return ExitOK
	}

	var validationErr *ValidationError
	var alertErr *AlertError
	switch {
	case errors.As(err, &validationErr):
		return ExitInvalidInput
	case errors.As(err, &alertErr):
		return ExitPolicyFail
	default:
		return ExitRuntimeError
	}
}

// ValidationError represents invalid input
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// AlertError represents a failed alert policy
type AlertError struct {
	Violations []policy.Violation
}

func (e *AlertError) Error() string {
	if len(e.Violations) == 0 {
		return "alert policy failed"
	}
	first := e.Violations[0]
	msg := first.Message
	if first.Account != "" {
		msg = first.Account + ": " + msg
	}
	if len(e.Violations) == 1 {
		return fmt.Sprintf("alert policy failed: %s", msg)
	}
	return fmt.Sprintf("alert policy failed: %s (and %d more)", msg, len(e.Violations)-1)
}

// logVerbose logs at info level when verbose mode is enabled
func logVerbose(format string, args ...interface{}) {
	if cfg != nil && cfg.Verbose {
		logger.Info().Msgf(format, args...)
	}
}

// logDebug logs at debug level when debug mode is enabled
func logDebug(format string, args ...interface{}) {
	if cfg != nil && cfg.Debug {
		logger.Debug().Msgf(format, args...)
	}
}

// logError logs an error message
func logError(format string, args ...interface{}) {
	logger.Error().Msgf(format, args...)
}

// withLogger returns l with the command name attached
func withLogger(l zerolog.Logger, command string) zerolog.Logger {
	return l.With().Str("cmd", command).Logger()
}
