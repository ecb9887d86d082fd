package model

import "time"

// Status is the stored state of an item as the upstream store recorded it.
type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusBlocked    Status = "blocked"
	StatusClosed     Status = "closed"
)

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// IsValid checks whether the status is a known value.
func (s Status) IsValid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusBlocked, StatusClosed:
		return true
	}
	return false
}

// EffectiveState is the derived scheduling state of an item. It differs from
// Status in that "blocked" and "ready" are computed from the blocking
// dependency graph rather than read from the store.
type EffectiveState string

const (
	StateClosed     EffectiveState = "closed"
	StateInProgress EffectiveState = "in_progress"
	StateBlocked    EffectiveState = "blocked"
	StateReady      EffectiveState = "ready"
)

// String returns the string representation of the effective state.
func (s EffectiveState) String() string {
	return string(s)
}

// DefaultPriority is assigned when a record carries no usable priority.
// 0 is most urgent, 4 least.
const DefaultPriority = 4

// Item is one unit of trackable work, normalized from a raw store record.
type Item struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Status       Status        `json:"status"`
	Labels       []string      `json:"labels,omitempty"`
	Priority     int           `json:"priority"`
	Assignee     string        `json:"assignee,omitempty"`
	Dependencies []*Dependency `json:"dependencies,omitempty"`
	CreatedAt    *time.Time    `json:"created_at,omitempty"`
	ClaimedAt    *time.Time    `json:"claimed_at,omitempty"`
	ClosedAt     *time.Time    `json:"closed_at,omitempty"`
	Body         string        `json:"body,omitempty"`
}

// HasLabel reports whether the item carries the given label.
func (i *Item) HasLabel(label string) bool {
	for _, l := range i.Labels {
		if l == label {
			return true
		}
	}
	return false
}

// BlockingTargets returns the target ids of the item's blocking edges,
// in stored order.
func (i *Item) BlockingTargets() []string {
	var targets []string
	for _, d := range i.Dependencies {
		if d.Type == DepBlocking {
			targets = append(targets, d.DependsOnID)
		}
	}
	return targets
}

// ParentTargets returns the target ids of the item's parent-child edges,
// in stored order.
func (i *Item) ParentTargets() []string {
	var targets []string
	for _, d := range i.Dependencies {
		if d.Type == DepParentChild {
			targets = append(targets, d.DependsOnID)
		}
	}
	return targets
}
