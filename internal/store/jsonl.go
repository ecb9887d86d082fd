package store

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/groblegark/beadscan/internal/model"
)

// issuesLog is the durable item log relative to a source's root path.
const issuesLog = ".beads/issues.jsonl"

// maxLineBytes bounds a single JSONL line; item bodies can carry whole
// error transcripts.
const maxLineBytes = 4 << 20

// JSONLLoader reads items from a source's line-delimited log. Corrupt lines
// are skipped and surfaced as MalformedRecord findings; a missing or
// unreadable file is a load error for the whole source.
type JSONLLoader struct{}

func (l *JSONLLoader) Load(ctx context.Context, src model.Source) ([]*model.Item, []model.MalformedRecord, error) {
	path := filepath.Join(src.RootPath, filepath.FromSlash(issuesLog))
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open item log: %w", err)
	}
	defer f.Close()

	var items []*model.Item
	var malformed []model.MalformedRecord

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)
	lineno := 0
	for scanner.Scan() {
		lineno++
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		item, m, err := model.DecodeItem([]byte(line))
		if err != nil {
			malformed = append(malformed, model.MalformedRecord{
				Line:   lineno,
				Reason: fmt.Sprintf("corrupt line: %v", err),
			})
			continue
		}
		for i := range m {
			m[i].Line = lineno
		}
		malformed = append(malformed, m...)
		if item != nil {
			items = append(items, item)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("read item log: %w", err)
	}

	return items, malformed, nil
}
