package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ppiankov/secwatch/internal/client"
	"github.com/ppiankov/secwatch/internal/monitor"
	"github.com/ppiankov/secwatch/internal/reporter"
	"github.com/ppiankov/secwatch/internal/storage"
	"github.com/spf13/cobra"
)

var (
	// Monitor command flags
	monitorInterval    time.Duration
	monitorPasses      int
	monitorSummaryFile string
	monitorScanMode    string
	monitorFormat      string
)

// monitorCmd runs the scan loop until interrupted
var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Scan all accounts repeatedly until interrupted",
	Long: `Scan every configured account, show a severity table per account, then
sleep for the scan interval and repeat. On Ctrl+C (or SIGTERM) the loop
stops and a summary of the latest scan per account is written to the
summary file.

Example:
  secwatch monitor
  secwatch monitor --interval 30s --scan-mode atomic
  secwatch monitor --passes 1 --summary-file /tmp/summary.json`,
	RunE: runMonitor,
}

func init() {
	monitorCmd.Flags().DurationVarP(&monitorInterval, "interval", "i", 0,
		"delay between passes (default from config)")
	monitorCmd.Flags().IntVar(&monitorPasses, "passes", 0,
		"stop after N passes (0 = until interrupted)")
	monitorCmd.Flags().StringVar(&monitorSummaryFile, "summary-file", "",
		"summary output path (default from config)")
	monitorCmd.Flags().StringVar(&monitorScanMode, "scan-mode", "",
		"independent or atomic (default from config)")
	monitorCmd.Flags().StringVarP(&monitorFormat, "format", "f", "",
		"output format: text or json (default from config)")
}

func runMonitor(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return runMonitorContext(ctx)
}

// runMonitorContext runs the loop until ctx is cancelled or the pass limit is hit
func runMonitorContext(ctx context.Context) error {
	interval := cfg.ScanInterval
	if monitorInterval != 0 {
		interval = monitorInterval
	}
	if interval <= 0 {
		return &ValidationError{Message: "interval must be positive"}
	}
	if interval%time.Second != 0 {
		return &ValidationError{Message: "interval must be a whole number of seconds"}
	}
	if monitorPasses < 0 {
		return &ValidationError{Message: "passes cannot be negative"}
	}

	mode := cfg.Mode()
	if monitorScanMode != "" {
		m, err := client.ParseScanMode(monitorScanMode)
		if err != nil {
			return &ValidationError{Message: err.Error()}
		}
		mode = m
	}

	format := cfg.Format
	if monitorFormat != "" {
		format = monitorFormat
	}
	if err := validateFormat(format); err != nil {
		return err
	}

	summaryFile := cfg.SummaryFile
	if monitorSummaryFile != "" {
		summaryFile = monitorSummaryFile
	}

	var display monitor.Display = textReporter()
	if format == "json" {
		display = reporter.NewJSONReporter(stdout(), false)
	}

	var store storage.Storage = storage.NewLocal(summaryFile)

	l := withLogger(logger, "monitor")
	ctx = l.WithContext(ctx)

	m := monitor.New(monitor.Config{
		Accounts:      cfg.Accounts,
		Interval:      interval,
		RiskThreshold: cfg.RiskThreshold,
		MaxPasses:     monitorPasses,
		HistoryLimit:  cfg.HistoryLimit,
	}, newClient(mode), display, store)

	logVerbose("Monitoring %d accounts every %s (scan mode %s)", len(cfg.Accounts), interval, mode)

	if err := m.Run(ctx); err != nil {
		return err
	}

	l.Info().Str("path", summaryFile).Msgf("Summary saved to %s", summaryFile)
	return nil
}
