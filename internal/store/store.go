// Package store loads raw item records for a source, either live from the
// external bd CLI or from its durable JSONL log. The tracker is an external
// system of record; loaders only read snapshots, and the single write path
// (orphan edge removal) goes through the bd CLI rather than the log.
package store

import (
	"context"

	"github.com/groblegark/beadscan/internal/model"
)

// Loader fetches one source's items. Individual bad records come back as
// MalformedRecord findings; only a wholly unusable source is an error, which
// the aggregator isolates as a LoadFailure.
type Loader interface {
	Load(ctx context.Context, src model.Source) ([]*model.Item, []model.MalformedRecord, error)
}

// ForSource returns the conventional loader for a source: the root project
// tries the bd CLI and falls back to its JSONL log, while sub-project
// sources always read the log directly (the CLI only serves the working
// directory it runs in).
func ForSource(src model.Source, bdBin string) Loader {
	if src.Tier == model.TierRoot {
		return &FallbackLoader{
			Primary:  NewExecLoader(bdBin),
			Fallback: &JSONLLoader{},
		}
	}
	return &JSONLLoader{}
}

// FallbackLoader tries Primary and, when it fails outright, Fallback.
// Malformed-record findings from a successful load pass through untouched.
type FallbackLoader struct {
	Primary  Loader
	Fallback Loader
}

func (l *FallbackLoader) Load(ctx context.Context, src model.Source) ([]*model.Item, []model.MalformedRecord, error) {
	items, malformed, err := l.Primary.Load(ctx, src)
	if err == nil {
		return items, malformed, nil
	}
	return l.Fallback.Load(ctx, src)
}
