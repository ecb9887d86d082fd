package engine

import (
	"time"

	"github.com/groblegark/beadscan/internal/model"
)

// DefaultStaleThreshold is the claim age past which an in-progress item is
// considered stale.
const DefaultStaleThreshold = 24 * time.Hour

// DetectStale flags in-progress items whose claim age exceeds threshold.
// Items without a claimed_at timestamp are skipped: staleness cannot be
// determined without one, and the missing field was already surfaced during
// normalization if it was malformed rather than absent.
func DetectStale(classified []*Classified, now time.Time, threshold time.Duration) []model.StaleClaim {
	if threshold <= 0 {
		threshold = DefaultStaleThreshold
	}

	var stale []model.StaleClaim
	for _, c := range classified {
		if c.State != model.StateInProgress || c.Item.ClaimedAt == nil {
			continue
		}
		age := now.Sub(*c.Item.ClaimedAt)
		if age > threshold {
			stale = append(stale, model.NewStaleClaim(c.Item.ID, c.Item.Assignee, age))
		}
	}
	return stale
}
