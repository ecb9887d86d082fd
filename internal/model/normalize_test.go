package model

import (
	"testing"
	"time"
)

func TestDecodeItem_Canonical(t *testing.T) {
	data := []byte(`{
		"id": "hx-1", "title": "Wire the thing", "status": "open",
		"labels": ["implementation"], "priority": 2,
		"dependencies": [{"depends_on_id": "hx-0", "type": "blocking"}],
		"created_at": "2025-01-02T03:04:05Z",
		"body": "details"
	}`)

	item, malformed, err := DecodeItem(data)
	if err != nil {
		t.Fatalf("DecodeItem: %v", err)
	}
	if len(malformed) != 0 {
		t.Fatalf("unexpected findings: %v", malformed)
	}
	if item.ID != "hx-1" || item.Status != StatusOpen || item.Priority != 2 {
		t.Errorf("item = %+v", item)
	}
	if len(item.Dependencies) != 1 || item.Dependencies[0].Type != DepBlocking {
		t.Errorf("dependencies = %+v", item.Dependencies)
	}
	want := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	if item.CreatedAt == nil || !item.CreatedAt.Equal(want) {
		t.Errorf("created_at = %v, want %v", item.CreatedAt, want)
	}
}

func TestDecodeItem_LegacyVariants(t *testing.T) {
	for _, tc := range []struct {
		name string
		data string
		want Status
	}{
		{"hyphenated in-progress", `{"id":"a","status":"in-progress"}`, StatusInProgress},
		{"exporter ready collapses to open", `{"id":"a","status":"ready"}`, StatusOpen},
		{"exporter not-ready collapses to open", `{"id":"a","status":"not-ready"}`, StatusOpen},
		{"done maps to closed", `{"id":"a","status":"done"}`, StatusClosed},
		{"missing status defaults to open", `{"id":"a"}`, StatusOpen},
	} {
		t.Run(tc.name, func(t *testing.T) {
			item, malformed, err := DecodeItem([]byte(tc.data))
			if err != nil {
				t.Fatalf("DecodeItem: %v", err)
			}
			if len(malformed) != 0 {
				t.Fatalf("unexpected findings: %v", malformed)
			}
			if item.Status != tc.want {
				t.Errorf("status = %q, want %q", item.Status, tc.want)
			}
		})
	}
}

func TestDecodeItem_UnrecognizedStatus(t *testing.T) {
	item, malformed, err := DecodeItem([]byte(`{"id":"a","status":"limbo"}`))
	if err != nil {
		t.Fatalf("DecodeItem: %v", err)
	}
	if item.Status != StatusOpen {
		t.Errorf("status = %q, want open", item.Status)
	}
	if len(malformed) != 1 || malformed[0].Field != "status" {
		t.Fatalf("findings = %v, want one status finding", malformed)
	}
}

func TestDecodeItem_MissingID(t *testing.T) {
	item, malformed, err := DecodeItem([]byte(`{"title":"no id"}`))
	if err != nil {
		t.Fatalf("DecodeItem: %v", err)
	}
	if item != nil {
		t.Errorf("item = %+v, want nil", item)
	}
	if len(malformed) != 1 || malformed[0].Field != "id" {
		t.Fatalf("findings = %v, want one id finding", malformed)
	}
}

func TestDecodeItem_BadTimestamp(t *testing.T) {
	item, malformed, err := DecodeItem([]byte(`{"id":"a","claimed_at":"yesterday-ish"}`))
	if err != nil {
		t.Fatalf("DecodeItem: %v", err)
	}
	if item.ClaimedAt != nil {
		t.Errorf("claimed_at = %v, want nil", item.ClaimedAt)
	}
	if len(malformed) != 1 || malformed[0].Field != "claimed_at" {
		t.Fatalf("findings = %v, want one claimed_at finding", malformed)
	}
}

func TestDecodeItem_LegacyDependencyType(t *testing.T) {
	item, malformed, err := DecodeItem([]byte(
		`{"id":"a","dependencies":[{"depends_on_id":"b","type":"blocks"},{"depends_on_id":"c","type":"relates-to"}]}`))
	if err != nil {
		t.Fatalf("DecodeItem: %v", err)
	}
	if len(item.Dependencies) != 1 || item.Dependencies[0].Type != DepBlocking {
		t.Errorf("dependencies = %+v, want single blocking edge", item.Dependencies)
	}
	if len(malformed) != 1 || malformed[0].Field != "dependencies" {
		t.Fatalf("findings = %v, want one dependency finding", malformed)
	}
}

func TestDecodeItem_OutOfRangePriority(t *testing.T) {
	item, malformed, err := DecodeItem([]byte(`{"id":"a","priority":9}`))
	if err != nil {
		t.Fatalf("DecodeItem: %v", err)
	}
	if item.Priority != DefaultPriority {
		t.Errorf("priority = %d, want %d", item.Priority, DefaultPriority)
	}
	if len(malformed) != 1 || malformed[0].Field != "priority" {
		t.Fatalf("findings = %v, want one priority finding", malformed)
	}
}

func TestDecodeItems(t *testing.T) {
	data := []byte(`[
		{"id":"a","status":"open"},
		{"title":"skipped, no id"},
		{"id":"b","status":"closed"}
	]`)
	items, malformed, err := DecodeItems(data)
	if err != nil {
		t.Fatalf("DecodeItems: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}
	if items[0].ID != "a" || items[1].ID != "b" {
		t.Errorf("items = %v, %v", items[0].ID, items[1].ID)
	}
	if len(malformed) != 1 {
		t.Errorf("findings = %v, want one", malformed)
	}

	if _, _, err := DecodeItems([]byte(`{"not":"an array"}`)); err == nil {
		t.Error("DecodeItems on non-array payload: want error")
	}
}

func TestDecodeItem_DescriptionFallback(t *testing.T) {
	item, _, err := DecodeItem([]byte(`{"id":"a","description":"from legacy field"}`))
	if err != nil {
		t.Fatalf("DecodeItem: %v", err)
	}
	if item.Body != "from legacy field" {
		t.Errorf("body = %q", item.Body)
	}
}
