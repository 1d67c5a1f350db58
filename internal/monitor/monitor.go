package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/ppiankov/secwatch/internal/models"
)

// DefaultInterval is the pause between full passes over the accounts
const DefaultInterval = 5 * time.Second

// State is the loop's current phase
type State int

const (
	StateIdle State = iota
	StateScanning
	StateDisplaying
	StateSleeping
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateScanning:
		return "scanning"
	case StateDisplaying:
		return "displaying"
	case StateSleeping:
		return "sleeping"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Scanner produces one snapshot per account
type Scanner interface {
	Scan(account string) models.Snapshot
}

// Display renders a snapshot as it is produced
type Display interface {
	ShowSnapshot(snap models.Snapshot) error
}

// SummaryWriter persists the terminal summary
type SummaryWriter interface {
	SaveSummary(s *models.Summary) error
}

// Config controls the monitor loop
type Config struct {
	// Accounts scanned on every pass, in order
	Accounts []string

	// Interval between passes
	Interval time.Duration

	// RiskThreshold triggers an alert log when a risk score exceeds it (0 disables)
	RiskThreshold float64

	// MaxPasses stops the loop after this many passes (0 = until cancelled)
	MaxPasses int

	// HistoryLimit caps entries kept per account (0 = unbounded)
	HistoryLimit int
}

// Monitor repeatedly scans the configured accounts until its context is
// cancelled, then writes exactly one summary
type Monitor struct {
	cfg      Config
	scanner  Scanner
	display  Display
	store    SummaryWriter
	history  *History
	schedule cron.Schedule
	state    State

	// now and wait are replaceable for tests
	now  func() time.Time
	wait func(ctx context.Context, d time.Duration) error
}

// New creates a monitor
func New(cfg Config, scanner Scanner, display Display, store SummaryWriter) *Monitor {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	// cron schedules in whole seconds
	if rem := cfg.Interval % time.Second; rem != 0 {
		cfg.Interval += time.Second - rem
	}
	return &Monitor{
		cfg:      cfg,
		scanner:  scanner,
		display:  display,
		store:    store,
		history:  NewHistory(cfg.HistoryLimit),
		schedule: cron.Every(cfg.Interval),
		state:    StateIdle,
		now:      time.Now,
		wait:     sleepContext,
	}
}

// History returns the loop's history store
func (m *Monitor) History() *History {
	return m.history
}

// State returns the current phase
func (m *Monitor) State() State {
	return m.state
}

// Run executes passes until ctx is cancelled or MaxPasses is reached, then
// saves the summary built from the latest scan of each account. A failed
// save is returned; cancellation itself is not an error.
func (m *Monitor) Run(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)
	logger.Info().
		Strs("accounts", m.cfg.Accounts).
		Dur("interval", m.cfg.Interval).
		Msg("monitoring started")

	for pass := 1; ; pass++ {
		if !m.runPass(ctx, pass) {
			logger.Info().Msg("monitoring stopped by user")
			break
		}

		if m.cfg.MaxPasses > 0 && pass >= m.cfg.MaxPasses {
			logger.Info().Int("passes", pass).Msg("pass limit reached")
			break
		}

		delay := m.nextDelay()
		m.setState(ctx, StateSleeping)
		logger.Info().Msgf("Sleeping for %s...", delay)
		if err := m.wait(ctx, delay); err != nil {
			logger.Info().Msg("monitoring stopped by user")
			break
		}
	}

	return m.shutdown(ctx)
}

// runPass scans every account once. It returns false if ctx was cancelled
// before the pass completed.
func (m *Monitor) runPass(ctx context.Context, pass int) bool {
	logger := zerolog.Ctx(ctx)

	for _, account := range m.cfg.Accounts {
		if ctx.Err() != nil {
			return false
		}

		m.setState(ctx, StateScanning)
		logger.Info().Int("pass", pass).Str("account", account).Msgf("Scanning account: %s", account)
		snap := m.scanner.Scan(account)

		m.setState(ctx, StateDisplaying)
		if m.display != nil {
			if err := m.display.ShowSnapshot(snap); err != nil {
				logger.Warn().Err(err).Str("account", account).Msg("failed to display findings")
			}
		}

		m.history.Record(account, m.now(), snap)
		m.checkThreshold(ctx, snap)
	}

	return true
}

func (m *Monitor) checkThreshold(ctx context.Context, snap models.Snapshot) {
	if m.cfg.RiskThreshold <= 0 || snap.Risk.Score <= m.cfg.RiskThreshold {
		return
	}
	zerolog.Ctx(ctx).Warn().
		Str("account", snap.AccountID).
		Float64("risk_score", snap.Risk.Score).
		Float64("threshold", m.cfg.RiskThreshold).
		Int("critical", len(snap.Critical)).
		Msg("risk score above threshold")
}

// shutdown performs the single terminal action: saving the summary
func (m *Monitor) shutdown(ctx context.Context) error {
	defer m.setState(ctx, StateStopped)

	summary := m.history.Summary(m.now())
	if err := m.store.SaveSummary(summary); err != nil {
		return fmt.Errorf("failed to save summary: %w", err)
	}

	zerolog.Ctx(ctx).Info().
		Int("accounts", len(summary.Accounts)).
		Msg("summary saved")
	return nil
}

// nextDelay returns the pause before the next pass. The schedule is
// evaluated from the start of the current second so the pause is always the
// full interval, whatever the sub-second part of now.
func (m *Monitor) nextDelay() time.Duration {
	base := m.now().Truncate(time.Second)
	return m.schedule.Next(base).Sub(base)
}

func (m *Monitor) setState(ctx context.Context, s State) {
	m.state = s
	zerolog.Ctx(ctx).Debug().Str("state", s.String()).Msg("state change")
}

// sleepContext blocks for d or until ctx is done
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
