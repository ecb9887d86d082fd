package model

import "time"

// OrphanEdge is a blocking edge whose target id does not exist in the
// same-source index. Structural defect; auto-fixable by edge removal, but
// only with explicit confirmation.
type OrphanEdge struct {
	ItemID          string `json:"item_id"`
	MissingTargetID string `json:"missing_target_id"`
}

// Cycle is a circular blocking chain. Path walks the cycle edge by edge;
// the last element repeats the first. Structural defect; never auto-fixed
// because it is ambiguous which edge to break.
type Cycle struct {
	Path []string `json:"path"`
}

// StaleClaim flags an in-progress item whose claim age exceeds the
// configured threshold. Advisory only.
type StaleClaim struct {
	ItemID   string        `json:"item_id"`
	Assignee string        `json:"assignee,omitempty"`
	Age      time.Duration `json:"-"`
	AgeHours int           `json:"age_hours"`
}

// NewStaleClaim builds a StaleClaim with the hour field derived from age.
func NewStaleClaim(itemID, assignee string, age time.Duration) StaleClaim {
	return StaleClaim{
		ItemID:   itemID,
		Assignee: assignee,
		Age:      age,
		AgeHours: int(age.Hours()),
	}
}

// MalformedRecord flags an individual record that is missing a required
// field or carries an unparsable value. The record is skipped for the
// affected derivation only; never fatal.
type MalformedRecord struct {
	ItemID string `json:"item_id,omitempty"`
	Line   int    `json:"line,omitempty"`
	Field  string `json:"field,omitempty"`
	Reason string `json:"reason"`
}

// LoadFailure records that one source could not be loaded at all. Isolated
// to that source; the scan continues over the remaining sources.
type LoadFailure struct {
	Source  string `json:"source"`
	Message string `json:"message"`
}
