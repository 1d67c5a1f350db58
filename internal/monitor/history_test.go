package monitor

import (
	"testing"
	"time"

	"github.com/ppiankov/secwatch/internal/models"
)

func snapWith(account string, critical, high int, score float64) models.Snapshot {
	return models.Snapshot{
		AccountID: account,
		Critical:  make([]models.Finding, critical),
		High:      make([]models.Finding, high),
		Risk:      models.RiskScore{AccountID: account, Score: score},
	}
}

func TestHistoryRecordAndLatest(t *testing.T) {
	h := NewHistory(0)
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	h.Record("a", t0, snapWith("a", 1, 1, 2))
	h.Record("a", t0.Add(time.Minute), snapWith("a", 3, 0, 9))

	latest, ok := h.Latest("a")
	if !ok {
		t.Fatal("expected latest entry")
	}
	if len(latest.Snapshot.Critical) != 3 {
		t.Errorf("expected latest critical=3, got %d", len(latest.Snapshot.Critical))
	}
	if !latest.Timestamp.Equal(t0.Add(time.Minute)) {
		t.Errorf("unexpected timestamp %s", latest.Timestamp)
	}
	if _, ok := h.Latest("missing"); ok {
		t.Error("expected no entry for unknown account")
	}
}

func TestHistoryAccountsOrder(t *testing.T) {
	h := NewHistory(0)
	now := time.Now()
	h.Record("b", now, snapWith("b", 0, 0, 1))
	h.Record("a", now, snapWith("a", 0, 0, 1))
	h.Record("b", now, snapWith("b", 0, 0, 1))

	got := h.Accounts()
	if len(got) != 2 || got[0] != "b" || got[1] != "a" {
		t.Errorf("expected [b a], got %v", got)
	}
}

func TestHistoryLimit(t *testing.T) {
	h := NewHistory(2)
	now := time.Now()
	for i := 1; i <= 5; i++ {
		h.Record("a", now, snapWith("a", i, 0, 1))
	}

	entries := h.Entries("a")
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries kept, got %d", len(entries))
	}
	if len(entries[0].Snapshot.Critical) != 4 || len(entries[1].Snapshot.Critical) != 5 {
		t.Errorf("expected the newest entries to be kept")
	}
}

func TestHistoryEntriesIsCopy(t *testing.T) {
	h := NewHistory(0)
	h.Record("a", time.Now(), snapWith("a", 1, 0, 1))

	entries := h.Entries("a")
	entries[0].Snapshot.AccountID = "mutated"

	latest, _ := h.Latest("a")
	if latest.Snapshot.AccountID != "a" {
		t.Error("Entries should not expose internal storage")
	}
}

func TestHistorySummary(t *testing.T) {
	h := NewHistory(0)
	now := time.Now()
	h.Record("a", now, snapWith("a", 1, 2, 3.5))
	h.Record("a", now, snapWith("a", 2, 5, 6.0))
	h.Record("b", now, snapWith("b", 0, 1, 1.5))

	ts := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	s := h.Summary(ts)
	if !s.Timestamp.Equal(ts) {
		t.Errorf("unexpected timestamp %s", s.Timestamp)
	}
	if len(s.Accounts) != 2 {
		t.Fatalf("expected 2 accounts, got %d", len(s.Accounts))
	}
	want := models.AccountSummary{CriticalFindings: 2, HighFindings: 5, RiskScore: 6.0}
	if s.Accounts["a"] != want {
		t.Errorf("expected %+v, got %+v", want, s.Accounts["a"])
	}
}

func TestHistorySummaryEmpty(t *testing.T) {
	s := NewHistory(0).Summary(time.Now())
	if !s.IsEmpty() {
		t.Errorf("expected empty summary")
	}
}
