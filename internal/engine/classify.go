package engine

import "github.com/groblegark/beadscan/internal/model"

// Options controls policy knobs for classification.
type Options struct {
	// EpicsGateChildren makes parent-child edges gate readiness the same
	// way blocking edges do. Off by default: a grouping item must not
	// stall its own children merely by existing. The opposite convention
	// is defensible, so this stays a policy switch rather than a rule.
	EpicsGateChildren bool
}

// Classified pairs an item with its derived scheduling state.
type Classified struct {
	Item  *model.Item          `json:"item"`
	State model.EffectiveState `json:"state"`
	// BlockedBy lists the unresolved dependency targets when State was
	// computed as blocked, so reporting can explain why.
	BlockedBy []string `json:"blocked_by,omitempty"`
}

// Report is the immutable classification result for one source. It is
// built once per scan and never mutated afterwards; aggregation merges
// Reports instead of appending to shared buckets.
type Report struct {
	Source    model.Source            `json:"source"`
	Items     []*Classified           `json:"items"`
	Orphans   []model.OrphanEdge      `json:"orphans,omitempty"`
	Cycles    []model.Cycle           `json:"cycles,omitempty"`
	Stale     []model.StaleClaim      `json:"stale,omitempty"`
	Malformed []model.MalformedRecord `json:"malformed,omitempty"`
}

// InState returns the report's items in the given effective state,
// preserving stored order.
func (r *Report) InState(state model.EffectiveState) []*Classified {
	var out []*Classified
	for _, c := range r.Items {
		if c.State == state {
			out = append(out, c)
		}
	}
	return out
}

// Counts tallies items per effective state.
func (r *Report) Counts() map[model.EffectiveState]int {
	counts := make(map[model.EffectiveState]int, 4)
	for _, c := range r.Items {
		counts[c.State]++
	}
	return counts
}

// HasStructuralFindings reports whether the source has orphan edges or
// dependency cycles.
func (r *Report) HasStructuralFindings() bool {
	return len(r.Orphans) > 0 || len(r.Cycles) > 0
}

// Classify derives each item's effective state from its stored status and
// the closure of its blocking-dependency targets:
//
//   - stored closed is terminal;
//   - stored in_progress passes through;
//   - stored blocked is authoritative when the store set it explicitly;
//   - anything else is blocked while any existing blocking target is not
//     closed, otherwise ready.
//
// Orphan targets are excluded: an item is evaluated only against targets
// that exist in the same-source index. The function is pure; it returns a
// fresh slice in stored order and mutates nothing.
func Classify(g *Graph, opts Options) []*Classified {
	out := make([]*Classified, 0, len(g.Items))

	for _, item := range g.Items {
		c := &Classified{Item: item}
		switch item.Status {
		case model.StatusClosed:
			c.State = model.StateClosed
		case model.StatusInProgress:
			c.State = model.StateInProgress
		case model.StatusBlocked:
			c.State = model.StateBlocked
		default:
			unresolved := unresolvedTargets(g, item, opts)
			if len(unresolved) > 0 {
				c.State = model.StateBlocked
				c.BlockedBy = unresolved
			} else {
				c.State = model.StateReady
			}
		}
		out = append(out, c)
	}

	return out
}

func unresolvedTargets(g *Graph, item *model.Item, opts Options) []string {
	targets := g.Blocking[item.ID]
	if opts.EpicsGateChildren {
		targets = append(append([]string{}, targets...), g.Parents[item.ID]...)
	}

	var unresolved []string
	for _, target := range targets {
		dep, ok := g.Index[target]
		if !ok {
			continue // orphan edge, reported separately
		}
		if dep.Status != model.StatusClosed {
			unresolved = append(unresolved, target)
		}
	}
	return unresolved
}
