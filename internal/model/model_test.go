package model

import (
	"testing"
	"time"
)

func TestStatus_IsValid(t *testing.T) {
	for _, tc := range []struct {
		status Status
		want   bool
	}{
		{StatusOpen, true},
		{StatusInProgress, true},
		{StatusBlocked, true},
		{StatusClosed, true},
		{Status(""), false},
		{Status("in-progress"), false},
		{Status("bogus"), false},
	} {
		if got := tc.status.IsValid(); got != tc.want {
			t.Errorf("Status(%q).IsValid() = %v, want %v", tc.status, got, tc.want)
		}
	}
}

func TestDependencyType_IsValid(t *testing.T) {
	for _, tc := range []struct {
		typ  DependencyType
		want bool
	}{
		{DepBlocking, true},
		{DepParentChild, true},
		{DependencyType("blocks"), false},
		{DependencyType(""), false},
	} {
		if got := tc.typ.IsValid(); got != tc.want {
			t.Errorf("DependencyType(%q).IsValid() = %v, want %v", tc.typ, got, tc.want)
		}
	}
}

func TestItem_BlockingTargets(t *testing.T) {
	item := &Item{
		ID: "x",
		Dependencies: []*Dependency{
			{DependsOnID: "a", Type: DepBlocking},
			{DependsOnID: "b", Type: DepParentChild},
			{DependsOnID: "c", Type: DepBlocking},
		},
	}
	got := item.BlockingTargets()
	want := []string{"a", "c"}
	if len(got) != len(want) {
		t.Fatalf("BlockingTargets() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("BlockingTargets()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestItem_HasLabel(t *testing.T) {
	item := &Item{ID: "x", Labels: []string{"approval", "failure"}}
	if !item.HasLabel("failure") {
		t.Error("HasLabel(failure) = false, want true")
	}
	if item.HasLabel("todo") {
		t.Error("HasLabel(todo) = true, want false")
	}
}

func TestNewStaleClaim(t *testing.T) {
	sc := NewStaleClaim("x", "alex", 30*time.Hour)
	if sc.AgeHours != 30 {
		t.Errorf("AgeHours = %d, want 30", sc.AgeHours)
	}
	if sc.Age != 30*time.Hour {
		t.Errorf("Age = %v, want 30h", sc.Age)
	}
}
