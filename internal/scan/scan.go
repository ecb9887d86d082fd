// Package scan runs the readiness engine across every source, isolating
// per-source failures so one broken collection never hides the rest.
package scan

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/groblegark/beadscan/internal/engine"
	"github.com/groblegark/beadscan/internal/idgen"
	"github.com/groblegark/beadscan/internal/model"
	"github.com/groblegark/beadscan/internal/store"
)

// perfWarnSources and perfWarnElapsed gate the non-fatal performance
// warning for unusually wide scans.
const (
	perfWarnSources = 10
	perfWarnElapsed = 5 * time.Second
)

// Options configures a scan run.
type Options struct {
	StaleThreshold time.Duration // zero = engine default (24h)
	LoadTimeout    time.Duration // per-source; zero = no timeout
	Parallelism    int           // bounded width for concurrent loads; <1 = 1
	Engine         engine.Options

	// Loaders overrides loader selection per source; nil uses the
	// conventional bd-CLI-with-JSONL-fallback resolution.
	Loaders func(model.Source) store.Loader
	BDBin   string

	Now    func() time.Time // test hook; nil = time.Now
	Logger *slog.Logger     // nil = slog.Default
}

// SourceResult is one source's outcome: a populated report or an isolated
// load failure, never both.
type SourceResult struct {
	Source  model.Source       `json:"source"`
	Report  *engine.Report     `json:"report,omitempty"`
	Failure *model.LoadFailure `json:"failure,omitempty"`
}

// Result is the merged outcome of one scan run.
type Result struct {
	RunID     string          `json:"run_id"`
	StartedAt time.Time       `json:"started_at"`
	Elapsed   time.Duration   `json:"-"`
	Sources   []*SourceResult `json:"sources"`
}

// Reports returns the successfully-classified per-source reports.
func (r *Result) Reports() []*engine.Report {
	var reports []*engine.Report
	for _, sr := range r.Sources {
		if sr.Report != nil {
			reports = append(reports, sr.Report)
		}
	}
	return reports
}

// Failures returns the per-source load failures.
func (r *Result) Failures() []model.LoadFailure {
	var failures []model.LoadFailure
	for _, sr := range r.Sources {
		if sr.Failure != nil {
			failures = append(failures, *sr.Failure)
		}
	}
	return failures
}

// Ready returns the union of ready items across all loaded sources, tagged
// with their source for ranking.
func (r *Result) Ready() []engine.ReadyItem {
	var ready []engine.ReadyItem
	for _, report := range r.Reports() {
		for _, c := range report.InState(model.StateReady) {
			ready = append(ready, engine.ReadyItem{Source: report.Source, Item: c.Item})
		}
	}
	return ready
}

// HasStructuralFindings reports whether any source has orphan edges or
// dependency cycles.
func (r *Result) HasStructuralFindings() bool {
	for _, report := range r.Reports() {
		if report.HasStructuralFindings() {
			return true
		}
	}
	return false
}

// HasWarnings reports whether any source has stale claims, malformed
// records, or a load failure.
func (r *Result) HasWarnings() bool {
	if len(r.Failures()) > 0 {
		return true
	}
	for _, report := range r.Reports() {
		if len(report.Stale) > 0 || len(report.Malformed) > 0 {
			return true
		}
	}
	return false
}

// Counts tallies items per effective state across all loaded sources.
func (r *Result) Counts() map[model.EffectiveState]int {
	counts := make(map[model.EffectiveState]int, 4)
	for _, report := range r.Reports() {
		for state, n := range report.Counts() {
			counts[state] += n
		}
	}
	return counts
}

// Run loads every source with bounded parallelism and classifies each one
// independently. Loads race only against their own per-source timeout;
// results land in a slot keyed by source index, so completion order never
// affects the merged output. Run fails only when every source fails to
// load; anything less is partial results, which beat no results.
func Run(ctx context.Context, sources []model.Source, opts Options) (*Result, error) {
	if len(sources) == 0 {
		return nil, fmt.Errorf("no sources to scan")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	loaders := opts.Loaders
	if loaders == nil {
		loaders = func(src model.Source) store.Loader {
			return store.ForSource(src, opts.BDBin)
		}
	}
	parallelism := opts.Parallelism
	if parallelism < 1 {
		parallelism = 1
	}

	runID, err := idgen.Generate()
	if err != nil {
		return nil, err
	}

	start := now()
	results := make([]*SourceResult, len(sources))

	var wg sync.WaitGroup
	sem := make(chan struct{}, parallelism)
	for i, src := range sources {
		wg.Add(1)
		go func(i int, src model.Source) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results[i] = scanSource(ctx, src, loaders(src), opts, now)
		}(i, src)
	}
	wg.Wait()

	elapsed := now().Sub(start)
	if len(sources) >= perfWarnSources && elapsed > perfWarnElapsed {
		logger.Warn("scan exceeded performance guard",
			"sources", len(sources), "elapsed", elapsed, "guard", perfWarnElapsed)
	}

	result := &Result{
		RunID:     runID,
		StartedAt: start.UTC(),
		Elapsed:   elapsed,
		Sources:   results,
	}
	if len(result.Reports()) == 0 {
		return nil, fmt.Errorf("all %d sources failed to load", len(sources))
	}
	return result, nil
}

// scanSource loads one source and runs the engine over it. The engine part
// is pure and single-threaded; only the load can block, so only the load
// gets the timeout.
func scanSource(ctx context.Context, src model.Source, loader store.Loader, opts Options, now func() time.Time) *SourceResult {
	loadCtx := ctx
	if opts.LoadTimeout > 0 {
		var cancel context.CancelFunc
		loadCtx, cancel = context.WithTimeout(ctx, opts.LoadTimeout)
		defer cancel()
	}

	items, malformed, err := loader.Load(loadCtx, src)
	if err != nil {
		return &SourceResult{
			Source:  src,
			Failure: &model.LoadFailure{Source: src.Name, Message: err.Error()},
		}
	}

	g := engine.BuildGraph(items)
	classified := engine.Classify(g, opts.Engine)
	report := &engine.Report{
		Source:    src,
		Items:     classified,
		Orphans:   g.Orphans,
		Cycles:    g.DetectCycles(),
		Stale:     engine.DetectStale(classified, now(), opts.StaleThreshold),
		Malformed: malformed,
	}
	return &SourceResult{Source: src, Report: report}
}
