package monitor

import (
	"time"

	"github.com/ppiankov/secwatch/internal/models"
)

// Entry is one recorded scan of an account
type Entry struct {
	Timestamp time.Time       `json:"timestamp"`
	Snapshot  models.Snapshot `json:"findings"`
}

// History is the in-memory scan log for one monitoring run. The loop is its
// only writer; it is not safe for concurrent use.
type History struct {
	entries map[string][]Entry
	order   []string
	limit   int
}

// NewHistory creates an empty history. limit caps the entries kept per
// account (oldest dropped first); 0 keeps everything.
func NewHistory(limit int) *History {
	return &History{
		entries: make(map[string][]Entry),
		limit:   limit,
	}
}

// Record appends a scan result for account
func (h *History) Record(account string, ts time.Time, snap models.Snapshot) {
	if _, seen := h.entries[account]; !seen {
		h.order = append(h.order, account)
	}

	list := append(h.entries[account], Entry{Timestamp: ts, Snapshot: snap})
	if h.limit > 0 && len(list) > h.limit {
		list = list[len(list)-h.limit:]
	}
	h.entries[account] = list
}

// Latest returns the most recent entry for account
func (h *History) Latest(account string) (Entry, bool) {
	list := h.entries[account]
	if len(list) == 0 {
		return Entry{}, false
	}
	return list[len(list)-1], true
}

// Entries returns the recorded entries for account, oldest first
func (h *History) Entries(account string) []Entry {
	list := h.entries[account]
	out := make([]Entry, len(list))
	copy(out, list)
	return out
}

// Accounts returns scanned accounts in first-seen order
func (h *History) Accounts() []string {
	out := make([]string, len(h.order))
	copy(out, h.order)
	return out
}

// Len returns the total number of recorded entries
func (h *History) Len() int {
	n := 0
	for _, list := range h.entries {
		n += len(list)
	}
	return n
}

// Summary reduces the history to one entry per scanned account, using only
// the latest scan of each. Accounts never scanned are absent.
func (h *History) Summary(ts time.Time) *models.Summary {
	summary := models.NewSummary(ts)
	for _, account := range h.order {
		if latest, ok := h.Latest(account); ok {
			summary.Accounts[account] = latest.Snapshot.AccountSummary()
		}
	}
	return summary
}
