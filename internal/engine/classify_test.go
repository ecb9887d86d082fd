package engine

import (
	"reflect"
	"testing"

	"github.com/groblegark/beadscan/internal/model"
)

func stateOf(t *testing.T, classified []*Classified, id string) *Classified {
	t.Helper()
	for _, c := range classified {
		if c.Item.ID == id {
			return c
		}
	}
	t.Fatalf("item %s not classified", id)
	return nil
}

func TestClassify_SequentialChain(t *testing.T) {
	// P1 <- P2 <- P3, all open: ready = {P1}, blocked = {P2, P3}.
	items := []*model.Item{
		item("p1", model.StatusOpen),
		item("p2", model.StatusOpen, blocking("p1")),
		item("p3", model.StatusOpen, blocking("p2")),
	}
	classified := Classify(BuildGraph(items), Options{})
	if got := stateOf(t, classified, "p1").State; got != model.StateReady {
		t.Errorf("p1 = %v, want ready", got)
	}
	if got := stateOf(t, classified, "p2"); got.State != model.StateBlocked || !reflect.DeepEqual(got.BlockedBy, []string{"p1"}) {
		t.Errorf("p2 = %v blocked_by %v, want blocked by [p1]", got.State, got.BlockedBy)
	}
	if got := stateOf(t, classified, "p3").State; got != model.StateBlocked {
		t.Errorf("p3 = %v, want blocked", got)
	}

	// Close P1: ready = {P2}, blocked = {P3}.
	items[0].Status = model.StatusClosed
	classified = Classify(BuildGraph(items), Options{})
	if got := stateOf(t, classified, "p2").State; got != model.StateReady {
		t.Errorf("after closing p1: p2 = %v, want ready", got)
	}
	if got := stateOf(t, classified, "p3").State; got != model.StateBlocked {
		t.Errorf("after closing p1: p3 = %v, want blocked", got)
	}

	// Close P2: ready = {P3}.
	items[1].Status = model.StatusClosed
	classified = Classify(BuildGraph(items), Options{})
	if got := stateOf(t, classified, "p3").State; got != model.StateReady {
		t.Errorf("after closing p2: p3 = %v, want ready", got)
	}
}

func TestClassify_StoredStatusPassthrough(t *testing.T) {
	for _, tc := range []struct {
		status model.Status
		want   model.EffectiveState
	}{
		{model.StatusClosed, model.StateClosed},
		{model.StatusInProgress, model.StateInProgress},
		{model.StatusBlocked, model.StateBlocked},
	} {
		// A satisfied dependency must not override an explicit status.
		items := []*model.Item{
			item("dep", model.StatusClosed),
			item("x", tc.status, blocking("dep")),
		}
		classified := Classify(BuildGraph(items), Options{})
		if got := stateOf(t, classified, "x").State; got != tc.want {
			t.Errorf("status %q -> %v, want %v", tc.status, got, tc.want)
		}
	}
}

func TestClassify_ExplicitBlockedIsAuthoritative(t *testing.T) {
	// The store said blocked; dependency recomputation is skipped and no
	// blocked_by explanation is attached.
	items := []*model.Item{item("x", model.StatusBlocked)}
	c := stateOf(t, Classify(BuildGraph(items), Options{}), "x")
	if c.State != model.StateBlocked {
		t.Errorf("state = %v, want blocked", c.State)
	}
	if c.BlockedBy != nil {
		t.Errorf("blocked_by = %v, want nil for explicit blocked", c.BlockedBy)
	}
}

func TestClassify_OrphanTargetIgnored(t *testing.T) {
	// Readiness is evaluated only against existing targets; the dangling
	// edge is the orphan report's business, not the classifier's.
	items := []*model.Item{
		item("x", model.StatusOpen, blocking("missing-1")),
	}
	g := BuildGraph(items)
	if got := stateOf(t, Classify(g, Options{}), "x").State; got != model.StateReady {
		t.Errorf("x = %v, want ready despite orphan edge", got)
	}
	if len(g.Orphans) != 1 {
		t.Errorf("orphans = %v, want one", g.Orphans)
	}
}

func TestClassify_ParentChildDoesNotGate(t *testing.T) {
	items := []*model.Item{
		item("epic", model.StatusOpen),
		item("child", model.StatusOpen, childOf("epic")),
	}
	if got := stateOf(t, Classify(BuildGraph(items), Options{}), "child").State; got != model.StateReady {
		t.Errorf("child = %v, want ready (grouping must not stall children)", got)
	}
}

func TestClassify_EpicsGateChildrenPolicy(t *testing.T) {
	items := []*model.Item{
		item("epic", model.StatusOpen),
		item("child", model.StatusOpen, childOf("epic")),
	}
	classified := Classify(BuildGraph(items), Options{EpicsGateChildren: true})
	got := stateOf(t, classified, "child")
	if got.State != model.StateBlocked {
		t.Errorf("child = %v, want blocked under EpicsGateChildren", got.State)
	}
	if !reflect.DeepEqual(got.BlockedBy, []string{"epic"}) {
		t.Errorf("blocked_by = %v, want [epic]", got.BlockedBy)
	}
}

func TestReport_CountsAndStates(t *testing.T) {
	items := []*model.Item{
		item("a", model.StatusClosed),
		item("b", model.StatusInProgress),
		item("c", model.StatusOpen),
		item("d", model.StatusOpen, blocking("c")),
	}
	r := &Report{Items: Classify(BuildGraph(items), Options{})}
	counts := r.Counts()
	for state, want := range map[model.EffectiveState]int{
		model.StateClosed:     1,
		model.StateInProgress: 1,
		model.StateReady:      1,
		model.StateBlocked:    1,
	} {
		if counts[state] != want {
			t.Errorf("counts[%v] = %d, want %d", state, counts[state], want)
		}
	}
	if ready := r.InState(model.StateReady); len(ready) != 1 || ready[0].Item.ID != "c" {
		t.Errorf("InState(ready) = %v, want [c]", ready)
	}
}
