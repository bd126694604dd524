package drag

import (
	"testing"

	"dayflow/internal/schedule"
	"dayflow/internal/task"
)

type fixture struct {
	store *task.MemStore
	board *schedule.Board
	ctrl  *Controller
	ids   map[string]int64
}

// newFixture seeds two day buckets:
//
//	2024-03-10: a, b, c
//	2024-03-11: x, y
func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := task.NewMemStore()
	board := schedule.NewBoard(store)
	ids := make(map[string]int64)

	seed := func(day string, texts ...string) {
		for i, text := range texts {
			created, err := store.Create(task.Fields{
				Text:      task.StringPtr(text),
				DueDate:   task.StringPtr(day),
				SortOrder: task.IntPtr(i),
			})
			if err != nil {
				t.Fatalf("seed: %v", err)
			}
			ids[text] = created.ID
		}
	}
	seed("2024-03-10", "a", "b", "c")
	seed("2024-03-11", "x", "y")

	return &fixture{store: store, board: board, ctrl: NewController(board), ids: ids}
}

func (f *fixture) bucketTexts(t *testing.T, day schedule.DayKey) []string {
	t.Helper()
	bucket, err := f.board.BucketFor(day)
	if err != nil {
		t.Fatalf("bucket %s: %v", day, err)
	}
	out := make([]string, len(bucket))
	for i, tk := range bucket {
		out[i] = tk.Text
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestController_ClickBelowThresholdIsNotADrag(t *testing.T) {
	f := newFixture(t)

	f.ctrl.Start(f.ids["a"], "2024-03-10", 0, 0)
	f.ctrl.Move(3, 2) // under the 8-unit activation distance
	if f.ctrl.State() != StatePressed {
		t.Fatalf("state: got %v, want StatePressed", f.ctrl.State())
	}

	f.ctrl.Over(Target{Kind: TargetTask, Day: "2024-03-10", TaskID: f.ids["c"]})

	mutation, err := f.ctrl.Drop()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mutation != nil {
		t.Errorf("click committed a mutation: %+v", mutation)
	}
	if got := f.bucketTexts(t, "2024-03-10"); !equal(got, []string{"a", "b", "c"}) {
		t.Errorf("bucket changed after a click: %v", got)
	}
}

func TestController_ActivationAtExactThreshold(t *testing.T) {
	f := newFixture(t)

	f.ctrl.Start(f.ids["a"], "2024-03-10", 10, 10)
	f.ctrl.Move(10, 18) // exactly 8 units
	if f.ctrl.State() != StateDragging {
		t.Errorf("state: got %v, want StateDragging", f.ctrl.State())
	}
}

func TestController_DropOnRowSameDayReorders(t *testing.T) {
	f := newFixture(t)

	f.ctrl.Start(f.ids["a"], "2024-03-10", 0, 0)
	f.ctrl.Move(0, 20)
	f.ctrl.Over(Target{Kind: TargetTask, Day: "2024-03-10", TaskID: f.ids["c"]})

	mutation, err := f.ctrl.Drop()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mutation == nil || mutation.Kind != MutationReorder {
		t.Fatalf("got %+v, want a reorder", mutation)
	}
	// "c" sits at index 1 once "a" is excluded, so "a" lands before it.
	if got := f.bucketTexts(t, "2024-03-10"); !equal(got, []string{"b", "a", "c"}) {
		t.Errorf("bucket after drop: %v", got)
	}
}

func TestController_DropOnRowOtherDayMoves(t *testing.T) {
	f := newFixture(t)

	f.ctrl.Start(f.ids["a"], "2024-03-10", 0, 0)
	f.ctrl.Move(30, 0)
	f.ctrl.Over(Target{Kind: TargetTask, Day: "2024-03-11", TaskID: f.ids["y"]})

	mutation, err := f.ctrl.Drop()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mutation == nil || mutation.Kind != MutationMove {
		t.Fatalf("got %+v, want a move", mutation)
	}
	if mutation.Index != 1 {
		t.Errorf("index: got %d, want 1 (position of y)", mutation.Index)
	}
	if got := f.bucketTexts(t, "2024-03-10"); !equal(got, []string{"b", "c"}) {
		t.Errorf("source bucket: %v", got)
	}
	if got := f.bucketTexts(t, "2024-03-11"); !equal(got, []string{"x", "a", "y"}) {
		t.Errorf("target bucket: %v", got)
	}
}

func TestController_DropOnDayRegionAppends(t *testing.T) {
	f := newFixture(t)

	f.ctrl.Start(f.ids["b"], "2024-03-10", 0, 0)
	f.ctrl.Move(30, 0)
	f.ctrl.Over(Target{Kind: TargetDay, Day: "2024-03-11"})

	mutation, err := f.ctrl.Drop()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mutation == nil || mutation.Index != 2 {
		t.Fatalf("got %+v, want append at index 2", mutation)
	}
	if got := f.bucketTexts(t, "2024-03-11"); !equal(got, []string{"x", "y", "b"}) {
		t.Errorf("target bucket: %v", got)
	}
}

func TestController_DropOverNothingDiscards(t *testing.T) {
	f := newFixture(t)

	f.ctrl.Start(f.ids["a"], "2024-03-10", 0, 0)
	f.ctrl.Move(30, 0)
	// Never hovered an actionable target.

	mutation, err := f.ctrl.Drop()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mutation != nil {
		t.Errorf("drop over nothing committed: %+v", mutation)
	}
	if got := f.bucketTexts(t, "2024-03-10"); !equal(got, []string{"a", "b", "c"}) {
		t.Errorf("bucket changed: %v", got)
	}
}

func TestController_CancelDiscards(t *testing.T) {
	f := newFixture(t)

	f.ctrl.Start(f.ids["a"], "2024-03-10", 0, 0)
	f.ctrl.Move(30, 0)
	f.ctrl.Over(Target{Kind: TargetDay, Day: "2024-03-11"})
	f.ctrl.Cancel()

	if f.ctrl.State() != StateIdle {
		t.Errorf("state after cancel: got %v, want StateIdle", f.ctrl.State())
	}
	if got := f.bucketTexts(t, "2024-03-10"); !equal(got, []string{"a", "b", "c"}) {
		t.Errorf("cancel mutated the bucket: %v", got)
	}

	// A drop after cancel must be inert too.
	mutation, err := f.ctrl.Drop()
	if err != nil || mutation != nil {
		t.Errorf("drop after cancel: got %+v, %v", mutation, err)
	}
}

func TestController_StaleTargetIsNoOp(t *testing.T) {
	f := newFixture(t)

	f.ctrl.Start(f.ids["a"], "2024-03-10", 0, 0)
	f.ctrl.Move(30, 0)
	f.ctrl.Over(Target{Kind: TargetTask, Day: "2024-03-11", TaskID: f.ids["y"]})

	// The dragged task is deleted mid-drag.
	f.store.Delete(f.ids["a"])

	mutation, err := f.ctrl.Drop()
	if err != nil {
		t.Fatalf("stale drop should not fail: %v", err)
	}
	if mutation != nil {
		t.Errorf("stale drop committed: %+v", mutation)
	}
	if got := f.bucketTexts(t, "2024-03-11"); !equal(got, []string{"x", "y"}) {
		t.Errorf("target bucket changed: %v", got)
	}
}

func TestController_HoveredRowDeletedFallsBackToAppend(t *testing.T) {
	f := newFixture(t)

	f.ctrl.Start(f.ids["a"], "2024-03-10", 0, 0)
	f.ctrl.Move(30, 0)
	f.ctrl.Over(Target{Kind: TargetTask, Day: "2024-03-11", TaskID: f.ids["y"]})

	f.store.Delete(f.ids["y"])

	mutation, err := f.ctrl.Drop()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mutation == nil || mutation.Index != 1 {
		t.Fatalf("got %+v, want append at index 1", mutation)
	}
	if got := f.bucketTexts(t, "2024-03-11"); !equal(got, []string{"x", "a"}) {
		t.Errorf("target bucket: %v", got)
	}
}

func TestController_ExactlyOneMutationPerDrop(t *testing.T) {
	f := newFixture(t)

	f.ctrl.Start(f.ids["a"], "2024-03-10", 0, 0)
	f.ctrl.Move(30, 0)
	// The candidate changes several times mid-drag; only the last one counts.
	f.ctrl.Over(Target{Kind: TargetTask, Day: "2024-03-10", TaskID: f.ids["c"]})
	f.ctrl.Over(Target{Kind: TargetDay, Day: "2024-03-11"})
	f.ctrl.Over(Target{Kind: TargetTask, Day: "2024-03-11", TaskID: f.ids["x"]})

	mutation, err := f.ctrl.Drop()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mutation == nil || mutation.TargetDay != "2024-03-11" || mutation.Index != 0 {
		t.Fatalf("got %+v, want move to 2024-03-11 index 0", mutation)
	}

	// The gesture is spent: another drop does nothing.
	second, err := f.ctrl.Drop()
	if err != nil || second != nil {
		t.Errorf("second drop: got %+v, %v", second, err)
	}
}
