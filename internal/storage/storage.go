package storage

import (
	"github.com/ppiankov/secwatch/internal/models"
)

// Storage defines the interface for persisting the monitoring summary
type Storage interface {
	// SaveSummary replaces the stored summary with s
	SaveSummary(s *models.Summary) error

	// LoadSummary returns the stored summary, or an empty one if none exists
	LoadSummary() (*models.Summary, error)
}
