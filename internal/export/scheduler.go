package export

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/groblegark/beadscan/internal/scan"
)

// RunFunc produces a fresh scan result; the scheduler calls it each cycle.
type RunFunc func(ctx context.Context) (*scan.Result, error)

// Scheduler periodically rescans and ships the snapshot to one or more
// destinations (watch mode).
type Scheduler struct {
	run          RunFunc
	destinations []Destination
	interval     time.Duration
	logger       *slog.Logger

	// OnResult, when set, is invoked with each successful result after the
	// destinations are written (event publishing, history recording).
	OnResult func(ctx context.Context, res *scan.Result)

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewScheduler creates a scheduler that runs scans at the given interval
// and writes the JSONL snapshot to the destinations.
func NewScheduler(run RunFunc, destinations []Destination, interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		run:          run,
		destinations: destinations,
		interval:     interval,
		logger:       logger,
	}
}

// Start begins periodic scanning. It runs an initial scan immediately,
// then on each tick.
func (s *Scheduler) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.loop(ctx)
	}()
}

// Stop cancels the scheduler and waits for the current cycle (if any) to finish.
func (s *Scheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

func (s *Scheduler) loop(ctx context.Context) {
	// Run once immediately at startup.
	s.cycle(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.cycle(ctx)
		}
	}
}

func (s *Scheduler) cycle(ctx context.Context) {
	res, err := s.run(ctx)
	if err != nil {
		s.logger.Error("scheduled scan failed", "err", err)
		return
	}

	var buf bytes.Buffer
	if err := WriteJSONL(res, &buf); err != nil {
		s.logger.Error("snapshot encode failed", "err", err)
		return
	}
	data := buf.Bytes()

	for i, dest := range s.destinations {
		if err := dest.Write(ctx, data); err != nil {
			s.logger.Error("export destination write failed", "destination", fmt.Sprintf("%d", i), "err", err)
		}
	}

	if s.OnResult != nil {
		s.OnResult(ctx, res)
	}

	s.logger.Info("scan cycle completed",
		"run_id", res.RunID, "sources", len(res.Sources),
		"destinations", len(s.destinations), "bytes", len(data))
}
