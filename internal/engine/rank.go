package engine

import (
	"sort"

	"github.com/groblegark/beadscan/internal/model"
)

// ReadyItem is one ready-to-work item together with the source it came
// from, the unit the cross-source ranking operates on.
type ReadyItem struct {
	Source model.Source `json:"source"`
	Item   *model.Item  `json:"item"`
}

// Rank produces the single total order over ready items from every source.
// Ascending key, earlier keys win: priority, source tier (root before
// sub-projects), source root path, item id. The head of the result is the
// recommended next item to claim.
//
// Rank is a pure function of its input: it sorts a copy and consults
// nothing else, so identical inputs always yield identical output.
func Rank(items []ReadyItem) []ReadyItem {
	ranked := make([]ReadyItem, len(items))
	copy(ranked, items)

	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Item.Priority != b.Item.Priority {
			return a.Item.Priority < b.Item.Priority
		}
		if a.Source.Tier != b.Source.Tier {
			return a.Source.Tier < b.Source.Tier
		}
		if a.Source.RootPath != b.Source.RootPath {
			return a.Source.RootPath < b.Source.RootPath
		}
		return a.Item.ID < b.Item.ID
	})

	return ranked
}

// Next returns the top-ranked ready item, or nil when nothing is ready.
func Next(items []ReadyItem) *ReadyItem {
	ranked := Rank(items)
	if len(ranked) == 0 {
		return nil
	}
	return &ranked[0]
}
