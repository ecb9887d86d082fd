package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/groblegark/beadscan/internal/model"
)

func writeIssuesLog(t *testing.T, content string) model.Source {
	t.Helper()
	root := t.TempDir()
	dir := filepath.Join(root, ".beads")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "issues.jsonl"), []byte(content), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}
	return model.Source{Name: "test", RootPath: root, Tier: model.TierRoot}
}

func TestJSONLLoader_Load(t *testing.T) {
	src := writeIssuesLog(t, `{"id":"a","status":"open"}

{"id":"b","status":"closed","priority":1}
`)
	items, malformed, err := (&JSONLLoader{}).Load(context.Background(), src)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}
	if items[0].ID != "a" || items[1].ID != "b" {
		t.Errorf("items = %s, %s", items[0].ID, items[1].ID)
	}
	if items[1].Priority != 1 {
		t.Errorf("priority = %d, want 1", items[1].Priority)
	}
	if len(malformed) != 0 {
		t.Errorf("findings = %v, want none", malformed)
	}
}

func TestJSONLLoader_CorruptLineSkipped(t *testing.T) {
	src := writeIssuesLog(t, `{"id":"a","status":"open"}
{not json at all
{"id":"b","status":"open"}
`)
	items, malformed, err := (&JSONLLoader{}).Load(context.Background(), src)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2 (corrupt line skipped)", len(items))
	}
	if len(malformed) != 1 || malformed[0].Line != 2 {
		t.Fatalf("findings = %v, want one at line 2", malformed)
	}
}

func TestJSONLLoader_FieldFindingsCarryLine(t *testing.T) {
	src := writeIssuesLog(t, `{"id":"a","claimed_at":"not-a-time"}
`)
	_, malformed, err := (&JSONLLoader{}).Load(context.Background(), src)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(malformed) != 1 || malformed[0].Line != 1 || malformed[0].Field != "claimed_at" {
		t.Fatalf("findings = %v, want one claimed_at finding at line 1", malformed)
	}
}

func TestJSONLLoader_MissingFile(t *testing.T) {
	src := model.Source{Name: "gone", RootPath: t.TempDir(), Tier: model.TierSub}
	if _, _, err := (&JSONLLoader{}).Load(context.Background(), src); err == nil {
		t.Error("Load without a log file: want error")
	}
}

// failLoader always errors, for exercising the fallback chain.
type failLoader struct{}

func (failLoader) Load(context.Context, model.Source) ([]*model.Item, []model.MalformedRecord, error) {
	return nil, nil, os.ErrNotExist
}

func TestFallbackLoader(t *testing.T) {
	src := writeIssuesLog(t, `{"id":"a","status":"open"}
`)
	l := &FallbackLoader{Primary: failLoader{}, Fallback: &JSONLLoader{}}
	items, _, err := l.Load(context.Background(), src)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(items) != 1 || items[0].ID != "a" {
		t.Errorf("items = %v, want [a]", items)
	}
}

func TestForSource(t *testing.T) {
	root := model.Source{Tier: model.TierRoot}
	if _, ok := ForSource(root, "bd").(*FallbackLoader); !ok {
		t.Errorf("ForSource(root) = %T, want *FallbackLoader", ForSource(root, "bd"))
	}
	sub := model.Source{Tier: model.TierSub}
	if _, ok := ForSource(sub, "bd").(*JSONLLoader); !ok {
		t.Errorf("ForSource(sub) = %T, want *JSONLLoader", ForSource(sub, "bd"))
	}
}
