package engine

import (
	"testing"
	"time"

	"github.com/groblegark/beadscan/internal/model"
)

func TestDetectStale_Thresholds(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	claimed := now.Add(-30 * time.Hour)

	it := item("x", model.StatusInProgress)
	it.Assignee = "alex"
	it.ClaimedAt = &claimed
	classified := Classify(BuildGraph([]*model.Item{it}), Options{})

	// 30h old claim against a 24h threshold: exactly one finding.
	stale := DetectStale(classified, now, 24*time.Hour)
	if len(stale) != 1 {
		t.Fatalf("len(stale) = %d, want 1", len(stale))
	}
	if stale[0].ItemID != "x" || stale[0].Assignee != "alex" || stale[0].AgeHours != 30 {
		t.Errorf("stale[0] = %+v", stale[0])
	}

	// Same claim against a 48h threshold: none.
	if stale := DetectStale(classified, now, 48*time.Hour); len(stale) != 0 {
		t.Errorf("stale at 48h threshold = %v, want none", stale)
	}
}

func TestDetectStale_SkipsWithoutClaimedAt(t *testing.T) {
	now := time.Now().UTC()
	classified := Classify(BuildGraph([]*model.Item{
		item("x", model.StatusInProgress),
	}), Options{})
	if stale := DetectStale(classified, now, 24*time.Hour); len(stale) != 0 {
		t.Errorf("stale = %v, want none without claimed_at", stale)
	}
}

func TestDetectStale_OnlyInProgress(t *testing.T) {
	now := time.Now().UTC()
	old := now.Add(-100 * time.Hour)
	open := item("open", model.StatusOpen)
	open.ClaimedAt = &old
	closed := item("closed", model.StatusClosed)
	closed.ClaimedAt = &old
	classified := Classify(BuildGraph([]*model.Item{open, closed}), Options{})
	if stale := DetectStale(classified, now, 24*time.Hour); len(stale) != 0 {
		t.Errorf("stale = %v, want none for non-in-progress items", stale)
	}
}

func TestDetectStale_ZeroThresholdUsesDefault(t *testing.T) {
	now := time.Now().UTC()
	recent := now.Add(-2 * time.Hour)
	it := item("x", model.StatusInProgress)
	it.ClaimedAt = &recent
	classified := Classify(BuildGraph([]*model.Item{it}), Options{})
	if stale := DetectStale(classified, now, 0); len(stale) != 0 {
		t.Errorf("2h-old claim flagged under default threshold: %v", stale)
	}
}
