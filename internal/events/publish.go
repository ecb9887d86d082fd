package events

import (
	"context"
	"errors"

	"github.com/groblegark/beadscan/internal/scan"
)

// PublishResult emits one event per finding plus a closing scan.completed
// summary. Individual publish errors are collected rather than aborting the
// fan-out; a scan's remaining findings still go out when one publish fails.
func PublishResult(ctx context.Context, pub Publisher, res *scan.Result) error {
	var errs []error
	emit := func(topic string, event any) {
		if err := pub.Publish(ctx, topic, event); err != nil {
			errs = append(errs, err)
		}
	}

	orphans, cycles, stale := 0, 0, 0
	for _, report := range res.Reports() {
		for _, o := range report.Orphans {
			orphans++
			emit(TopicOrphanFound, OrphanFound{RunID: res.RunID, Source: report.Source.Name, Orphan: o})
		}
		for _, c := range report.Cycles {
			cycles++
			emit(TopicCycleFound, CycleFound{RunID: res.RunID, Source: report.Source.Name, Cycle: c})
		}
		for _, s := range report.Stale {
			stale++
			emit(TopicStaleFound, StaleFound{RunID: res.RunID, Source: report.Source.Name, Stale: s})
		}
	}
	for _, f := range res.Failures() {
		emit(TopicSourceFailed, SourceFailed{RunID: res.RunID, Failure: f})
	}

	emit(TopicScanCompleted, ScanCompleted{
		RunID:      res.RunID,
		Sources:    len(res.Sources),
		Failures:   len(res.Failures()),
		Counts:     res.Counts(),
		Orphans:    orphans,
		Cycles:     cycles,
		Stale:      stale,
		Structural: res.HasStructuralFindings(),
	})

	return errors.Join(errs...)
}
