package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// rawRecord mirrors the wire shape of an item record before normalization.
// Timestamps stay strings so a bad value degrades to a MalformedRecord
// instead of failing the whole decode.
type rawRecord struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Status       string          `json:"status"`
	Labels       []string        `json:"labels"`
	Priority     *int            `json:"priority"`
	Assignee     string          `json:"assignee"`
	Dependencies []rawDependency `json:"dependencies"`
	CreatedAt    string          `json:"created_at"`
	ClaimedAt    string          `json:"claimed_at"`
	ClosedAt     string          `json:"closed_at"`
	Body         string          `json:"body"`
	Description  string          `json:"description"`
}

type rawDependency struct {
	DependsOnID string `json:"depends_on_id"`
	Type        string `json:"type"`
}

// legacyStatus maps known alternate status vocabularies onto the canonical
// enum. "ready" and "not-ready" are derived states in some exporters; they
// collapse to open and are re-derived from the dependency graph here.
var legacyStatus = map[string]Status{
	"in-progress": StatusInProgress,
	"ready":       StatusOpen,
	"not-ready":   StatusOpen,
	"done":        StatusClosed,
}

// legacyDepType maps alternate dependency-type spellings onto the canonical
// enum.
var legacyDepType = map[string]DependencyType{
	"blocks":       DepBlocking,
	"parent_child": DepParentChild,
}

// DecodeItems parses a JSON array of raw item records. Individual bad
// records are reported as MalformedRecord findings and skipped; only a
// malformed top-level payload is an error.
func DecodeItems(data []byte) ([]*Item, []MalformedRecord, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, nil, fmt.Errorf("parse item list: %w", err)
	}

	var items []*Item
	var malformed []MalformedRecord
	for _, raw := range raws {
		item, m, err := DecodeItem(raw)
		if err != nil {
			malformed = append(malformed, MalformedRecord{Reason: err.Error()})
			continue
		}
		malformed = append(malformed, m...)
		if item != nil {
			items = append(items, item)
		}
	}
	return items, malformed, nil
}

// DecodeItem parses and normalizes a single raw record. It returns a nil
// item (plus a finding) when the record has no usable id; field-level
// problems are returned as findings alongside the item.
func DecodeItem(data []byte) (*Item, []MalformedRecord, error) {
	var raw rawRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil, fmt.Errorf("parse record: %w", err)
	}
	item, malformed := normalize(&raw)
	return item, malformed, nil
}

// normalize maps a raw record onto a validated Item, accumulating a
// MalformedRecord finding for every field it could not take at face value.
func normalize(raw *rawRecord) (*Item, []MalformedRecord) {
	var malformed []MalformedRecord

	id := strings.TrimSpace(raw.ID)
	if id == "" {
		malformed = append(malformed, MalformedRecord{
			Field:  "id",
			Reason: "record has no id; skipped",
		})
		return nil, malformed
	}

	item := &Item{
		ID:       id,
		Title:    raw.Title,
		Labels:   raw.Labels,
		Assignee: raw.Assignee,
		Body:     raw.Body,
	}
	// Legacy exporters put the free text under "description".
	if item.Body == "" {
		item.Body = raw.Description
	}

	item.Status, malformed = normalizeStatus(id, raw.Status, malformed)

	item.Priority = DefaultPriority
	if raw.Priority != nil {
		if *raw.Priority < 0 || *raw.Priority > 4 {
			malformed = append(malformed, MalformedRecord{
				ItemID: id,
				Field:  "priority",
				Reason: fmt.Sprintf("priority %d outside 0-4; defaulted to %d", *raw.Priority, DefaultPriority),
			})
		} else {
			item.Priority = *raw.Priority
		}
	}

	for _, rd := range raw.Dependencies {
		dep, m := normalizeDependency(id, rd)
		malformed = append(malformed, m...)
		if dep != nil {
			item.Dependencies = append(item.Dependencies, dep)
		}
	}

	item.CreatedAt, malformed = normalizeTime(id, "created_at", raw.CreatedAt, malformed)
	item.ClaimedAt, malformed = normalizeTime(id, "claimed_at", raw.ClaimedAt, malformed)
	item.ClosedAt, malformed = normalizeTime(id, "closed_at", raw.ClosedAt, malformed)

	return item, malformed
}

func normalizeStatus(id, s string, malformed []MalformedRecord) (Status, []MalformedRecord) {
	if s == "" {
		return StatusOpen, malformed
	}
	status := Status(s)
	if status.IsValid() {
		return status, malformed
	}
	if mapped, ok := legacyStatus[s]; ok {
		return mapped, malformed
	}
	malformed = append(malformed, MalformedRecord{
		ItemID: id,
		Field:  "status",
		Reason: fmt.Sprintf("unrecognized status %q; treated as open", s),
	})
	return StatusOpen, malformed
}

func normalizeDependency(id string, rd rawDependency) (*Dependency, []MalformedRecord) {
	target := strings.TrimSpace(rd.DependsOnID)
	if target == "" {
		return nil, []MalformedRecord{{
			ItemID: id,
			Field:  "dependencies",
			Reason: "dependency edge has no depends_on_id; dropped",
		}}
	}
	depType := DependencyType(rd.Type)
	if !depType.IsValid() {
		mapped, ok := legacyDepType[rd.Type]
		if !ok {
			return nil, []MalformedRecord{{
				ItemID: id,
				Field:  "dependencies",
				Reason: fmt.Sprintf("unrecognized dependency type %q on edge to %s; dropped", rd.Type, target),
			}}
		}
		depType = mapped
	}
	return &Dependency{DependsOnID: target, Type: depType}, nil
}

func normalizeTime(id, field, s string, malformed []MalformedRecord) (*time.Time, []MalformedRecord) {
	if s == "" {
		return nil, malformed
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		malformed = append(malformed, MalformedRecord{
			ItemID: id,
			Field:  field,
			Reason: fmt.Sprintf("unparsable timestamp %q", s),
		})
		return nil, malformed
	}
	utc := t.UTC()
	return &utc, malformed
}
