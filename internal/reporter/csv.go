package reporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/ppiankov/secwatch/internal/models"
)

// CSVHeader is the column layout of the exported comparison report
var CSVHeader = []string{
	"Account ID",
	"Critical Findings",
	"High Findings",
	"Risk Score",
	"Critical Findings Change",
	"High Findings Change",
	"Risk Score Change",
}

// CSVReporter writes comparison reports as CSV
type CSVReporter struct {
	writer io.Writer
}

// NewCSVReporter creates a new CSV reporter
func NewCSVReporter(writer io.Writer) *CSVReporter {
	return &CSVReporter{writer: writer}
}

// Generate writes the header and one row per account in report order
func (r *CSVReporter) Generate(cr *models.ComparisonReport) error {
	w := csv.NewWriter(r.writer)

	if err := w.Write(CSVHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, account := range reportOrder(cr) {
		data := cr.Accounts[account]
		row := []string{
			account,
			strconv.Itoa(data.CriticalFindings),
			strconv.Itoa(data.HighFindings),
			strconv.FormatFloat(data.RiskScore, 'f', -1, 64),
			strconv.Itoa(data.CriticalFindingsChange),
			strconv.Itoa(data.HighFindingsChange),
			strconv.FormatFloat(data.RiskScoreChange, 'f', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write row for %s: %w", account, err)
		}
	}

	w.Flush()
	return w.Error()
}

// ExportCSV writes the comparison report to path, creating parent directories
func ExportCSV(path string, cr *models.ComparisonReport) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if err := NewCSVReporter(f).Generate(cr); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
