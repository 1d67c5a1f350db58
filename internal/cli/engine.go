package cli

import (
	"io"
	"math/rand/v2"
	"os"

	"github.com/ppiankov/secwatch/internal/client"
	"github.com/ppiankov/secwatch/internal/generator"
	"github.com/ppiankov/secwatch/internal/models"
	"github.com/ppiankov/secwatch/internal/reporter"
)

// newClient wires the simulated generator behind a client using the
// configured accounts and scan mode. A non-zero --seed makes output
// reproducible.
func newClient(mode client.ScanMode) *client.Client {
	genCfg := generator.Config{Accounts: cfg.Accounts}
	if seed != 0 {
		genCfg.Source = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	logDebug("generator seed: %d, scan mode: %s", seed, mode)
	return client.New(generator.New(genCfg), mode)
}

// textReporter builds a text reporter carrying the configured threshold and scores
func textReporter() *reporter.TextReporter {
	return reporter.NewTextReporter(stdout()).
		WithThreshold(cfg.RiskThreshold).
		WithScores(cfg.Scores())
}

// resolveAccounts returns every configured account when all is set,
// otherwise the single named account ("" picks a random configured one).
func resolveAccounts(account string, all bool) []string {
	if all {
		return cfg.Accounts
	}
	return []string{account}
}

// parseSeverityFlag validates a --severity value
func parseSeverityFlag(s string) (models.Severity, error) {
	sev, err := models.ParseSeverity(s)
	if err != nil {
		return "", &ValidationError{Message: err.Error()}
	}
	return sev, nil
}

// validateFormat checks a --format value
func validateFormat(format string) error {
	switch format {
	case "text", "json":
		return nil
	default:
		return &ValidationError{Message: "invalid format: " + format + " (must be text or json)"}
	}
}

// stdout is resolved per call so tests can swap os.Stdout
func stdout() io.Writer {
	return os.Stdout
}
