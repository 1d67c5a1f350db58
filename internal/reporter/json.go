package reporter

import (
	"encoding/json"
	"io"

	"github.com/ppiankov/secwatch/internal/models"
	"github.com/ppiankov/secwatch/internal/report"
)

// JSONReporter generates machine-readable JSON output
type JSONReporter struct {
	writer io.Writer
	pretty bool
}

// NewJSONReporter creates a new JSON reporter
func NewJSONReporter(writer io.Writer, pretty bool) *JSONReporter {
	return &JSONReporter{
		writer: writer,
		pretty: pretty,
	}
}

// Comparison writes a comparison report together with its overview
func (r *JSONReporter) Comparison(cr *models.ComparisonReport) error {
	out := struct {
		*models.ComparisonReport
		Overview report.Overview `json:"overview"`
	}{
		ComparisonReport: cr,
		Overview:         report.Summarize(cr),
	}
	return r.write(out)
}

// ShowSnapshot writes one scan result as a single JSON document
func (r *JSONReporter) ShowSnapshot(snap models.Snapshot) error {
	return r.write(snap)
}

// Findings writes a findings list
func (r *JSONReporter) Findings(findings []models.Finding) error {
	if findings == nil {
		findings = []models.Finding{}
	}
	return r.write(findings)
}

// Assets writes an asset list
func (r *JSONReporter) Assets(assets []models.Asset) error {
	if assets == nil {
		assets = []models.Asset{}
	}
	return r.write(assets)
}

// Summary writes a persisted summary
func (r *JSONReporter) Summary(s *models.Summary) error {
	return r.write(s)
}

func (r *JSONReporter) write(v interface{}) error {
	var data []byte
	var err error

	if r.pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return err
	}

	_, err = r.writer.Write(data)
	if err != nil {
		return err
	}

	// Add trailing newline for terminal output
	_, err = r.writer.Write([]byte("\n"))
	return err
}
