package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ppiankov/secwatch/internal/models"
)

// Timestamp layouts accepted when loading. Files written by this tool use
// RFC 3339; older summaries may carry naive ISO-8601 local times.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

// LocalStorage implements Storage with a single JSON file that is fully
// overwritten on every save
type LocalStorage struct {
	path string
}

// NewLocal creates a new local storage for the summary file at path
func NewLocal(path string) *LocalStorage {
	return &LocalStorage{
		path: path,
	}
}

// summaryFile is the on-disk shape. The timestamp is kept as a string so
// naive timestamps can be parsed leniently.
type summaryFile struct {
	Timestamp string                           `json:"timestamp,omitempty"`
	Accounts  map[string]models.AccountSummary `json:"accounts"`
}

// SaveSummary writes the summary to disk, replacing any previous content
func (s *LocalStorage) SaveSummary(summary *models.Summary) error {
	if summary == nil {
		return fmt.Errorf("summary is nil")
	}

	// Create parent directory
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create summary directory: %w", err)
		}
	}

	accounts := summary.Accounts
	if accounts == nil {
		accounts = map[string]models.AccountSummary{}
	}

	// Marshal to JSON with indentation
	data, err := json.MarshalIndent(summaryFile{
		Timestamp: s.timestampText(summary),
		Accounts:  accounts,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}

	// Write to file
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// LoadSummary reads the summary file. A missing file is not an error: it
// yields an empty summary, which callers treat as "no history".
func (s *LocalStorage) LoadSummary() (*models.Summary, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return models.NewSummary(time.Time{}), nil
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var raw summaryFile
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal summary: %w", err)
	}

	summary := models.NewSummary(time.Time{})
	if raw.Timestamp != "" {
		ts, err := s.parseTimestamp(raw.Timestamp)
		if err != nil {
			return nil, err
		}
		summary.Timestamp = ts
		summary.TimestampText = raw.Timestamp
	}
	for account, entry := range raw.Accounts {
		summary.Accounts[account] = entry
	}

	return summary, nil
}

// Exists reports whether the summary file is present
func (s *LocalStorage) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// GetPath returns the path of the summary file
func (s *LocalStorage) GetPath() string {
	return s.path
}

// timestampText returns the loaded text when it still matches the summary's
// time, so a load/save cycle leaves the file unchanged. A zero time with no
// loaded text is omitted.
func (s *LocalStorage) timestampText(summary *models.Summary) string {
	if summary.TimestampText != "" {
		if ts, err := s.parseTimestamp(summary.TimestampText); err == nil && ts.Equal(summary.Timestamp) {
			return summary.TimestampText
		}
	}
	if summary.Timestamp.IsZero() {
		return ""
	}
	return s.formatTimestamp(summary.Timestamp)
}

func (s *LocalStorage) formatTimestamp(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

func (s *LocalStorage) parseTimestamp(str string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, str); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid summary timestamp: %q", str)
}
