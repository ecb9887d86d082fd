// Package export writes machine-readable scan snapshots as JSONL and ships
// them to configured destinations (file, S3).
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/groblegark/beadscan/internal/scan"
)

// header is the first JSONL record written by WriteJSONL.
type header struct {
	Version      string    `json:"version"`
	Type         string    `json:"type"`
	RunID        string    `json:"run_id"`
	Timestamp    time.Time `json:"timestamp"`
	SourceCount  int       `json:"source_count"`
	ItemCount    int       `json:"item_count"`
	FindingCount int       `json:"finding_count"`
}

// record wraps a single JSONL line with a type discriminator and the source
// it belongs to.
type record struct {
	Type   string `json:"type"`
	Source string `json:"source,omitempty"`
	Data   any    `json:"data"`
}

// WriteJSONL writes the full classification and findings of a scan run as
// JSONL to w: a header record, then per-source items in stored order, then
// findings, then load failures. Field names are stable; downstream tooling
// parses this output.
func WriteJSONL(res *scan.Result, w io.Writer) error {
	items, findings := 0, 0
	for _, report := range res.Reports() {
		items += len(report.Items)
		findings += len(report.Orphans) + len(report.Cycles) + len(report.Stale) + len(report.Malformed)
	}
	findings += len(res.Failures())

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(header{
		Version:      "1",
		Type:         "header",
		RunID:        res.RunID,
		Timestamp:    res.StartedAt,
		SourceCount:  len(res.Sources),
		ItemCount:    items,
		FindingCount: findings,
	}); err != nil {
		return fmt.Errorf("encode header: %w", err)
	}

	for _, report := range res.Reports() {
		name := report.Source.Name
		for _, c := range report.Items {
			if err := enc.Encode(record{Type: "item", Source: name, Data: c}); err != nil {
				return fmt.Errorf("encode item %s: %w", c.Item.ID, err)
			}
		}
		for _, o := range report.Orphans {
			if err := enc.Encode(record{Type: "orphan", Source: name, Data: o}); err != nil {
				return fmt.Errorf("encode orphan finding: %w", err)
			}
		}
		for _, c := range report.Cycles {
			if err := enc.Encode(record{Type: "cycle", Source: name, Data: c}); err != nil {
				return fmt.Errorf("encode cycle finding: %w", err)
			}
		}
		for _, s := range report.Stale {
			if err := enc.Encode(record{Type: "stale", Source: name, Data: s}); err != nil {
				return fmt.Errorf("encode stale finding: %w", err)
			}
		}
		for _, m := range report.Malformed {
			if err := enc.Encode(record{Type: "malformed", Source: name, Data: m}); err != nil {
				return fmt.Errorf("encode malformed finding: %w", err)
			}
		}
	}

	for _, f := range res.Failures() {
		if err := enc.Encode(record{Type: "load_failure", Source: f.Source, Data: f}); err != nil {
			return fmt.Errorf("encode load failure: %w", err)
		}
	}

	return nil
}

// Destination is the interface for an export target (file, S3, etc.).
type Destination interface {
	// Write sends the JSONL payload to the destination.
	Write(ctx context.Context, data []byte) error
}
