// Package events fans scan outcomes out to interested agents over NATS.
// Publishing is optional; without a configured URL the noop publisher is
// used and scans stay fully local.
package events

import (
	"context"

	"github.com/groblegark/beadscan/internal/model"
)

// Event topic constants
const (
	TopicScanCompleted = "beadscan.scan.completed"
	TopicOrphanFound   = "beadscan.finding.orphan"
	TopicCycleFound    = "beadscan.finding.cycle"
	TopicStaleFound    = "beadscan.finding.stale"
	TopicSourceFailed  = "beadscan.source.failed"
)

// Event types

type ScanCompleted struct {
	RunID      string                       `json:"run_id"`
	Sources    int                          `json:"sources"`
	Failures   int                          `json:"failures"`
	Counts     map[model.EffectiveState]int `json:"counts"`
	Orphans    int                          `json:"orphans"`
	Cycles     int                          `json:"cycles"`
	Stale      int                          `json:"stale"`
	Structural bool                         `json:"structural"`
}

type OrphanFound struct {
	RunID  string           `json:"run_id"`
	Source string           `json:"source"`
	Orphan model.OrphanEdge `json:"orphan"`
}

type CycleFound struct {
	RunID  string      `json:"run_id"`
	Source string      `json:"source"`
	Cycle  model.Cycle `json:"cycle"`
}

type StaleFound struct {
	RunID  string           `json:"run_id"`
	Source string           `json:"source"`
	Stale  model.StaleClaim `json:"stale"`
}

type SourceFailed struct {
	RunID   string            `json:"run_id"`
	Failure model.LoadFailure `json:"failure"`
}

// Publisher is the interface for emitting events.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}
