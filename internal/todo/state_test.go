package todo

import (
	"reflect"
	"testing"
)

func texts(s State) []string {
	todos := s.Todos()
	out := make([]string, len(todos))
	for i, t := range todos {
		out[i] = t.Text
	}
	return out
}

func TestAddPrependsMostRecentFirst(t *testing.T) {
	s := Initial("")
	for _, text := range []string{"a", "b", "c"} {
		s = s.Add(text)
	}
	got := texts(s)
	want := []string{"c", "b", "a"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected LIFO order %v, got %v", want, got)
	}
	for i, td := range s.Todos() {
		if td.Done {
			t.Fatalf("new todo at %d must start uncompleted", i)
		}
	}
}

func TestAddStoresTextUntrimmed(t *testing.T) {
	s := Initial("").Add("  buy milk  ")
	got, ok := s.At(0)
	if !ok {
		t.Fatalf("expected todo at index 0")
	}
	if got.Text != "  buy milk  " {
		t.Fatalf("stored text must keep its whitespace, got %q", got.Text)
	}
}

func TestRemoveTwiceWithSameIndexIsSafe(t *testing.T) {
	s := Initial("").Add("only")
	s = s.Remove(0)
	if s.Len() != 0 {
		t.Fatalf("expected empty list after remove, got %d", s.Len())
	}
	// Same index again now points at nothing; must be a silent no-op.
	s = s.Remove(0)
	if s.Len() != 0 {
		t.Fatalf("stale remove must be a no-op, got len %d", s.Len())
	}
}

func TestRemoveOutOfBoundsIsNoOp(t *testing.T) {
	s := Initial("").Add("keep")
	for _, idx := range []int{-1, 1, 99} {
		next := s.Remove(idx)
		if !reflect.DeepEqual(next.Todos(), s.Todos()) {
			t.Fatalf("remove(%d) must not change state", idx)
		}
	}
}

func TestToggleTwiceRestoresFlag(t *testing.T) {
	s := Initial("").Add("task")
	once := s.Toggle(0)
	if td, _ := once.At(0); !td.Done {
		t.Fatalf("first toggle must mark done")
	}
	twice := once.Toggle(0)
	if td, _ := twice.At(0); td.Done {
		t.Fatalf("second toggle must restore the original flag")
	}
}

func TestToggleOutOfBoundsIsNoOp(t *testing.T) {
	s := Initial("").Add("task")
	for _, idx := range []int{-1, 1, 42} {
		next := s.Toggle(idx)
		if !reflect.DeepEqual(next.Todos(), s.Todos()) {
			t.Fatalf("toggle(%d) must not change state", idx)
		}
	}
}

func TestClearCompletedIsIdempotent(t *testing.T) {
	s := Initial("").Add("a").Add("b").Add("c").Toggle(1)
	once := s.ClearCompleted()
	twice := once.ClearCompleted()
	want := []string{"c", "a"}
	if !reflect.DeepEqual(texts(once), want) {
		t.Fatalf("expected %v after clear, got %v", want, texts(once))
	}
	if !reflect.DeepEqual(texts(twice), texts(once)) {
		t.Fatalf("second clear must yield the same state: %v vs %v", texts(twice), texts(once))
	}
}

func TestFilterPredicates(t *testing.T) {
	// Index 0 completed, index 1 not.
	s := Initial("").Add("older").Add("newer").Toggle(0)

	completed := s.WithFilter(FilterCompleted).Visible()
	if len(completed) != 1 || completed[0].Index != 0 || completed[0].Todo.Text != "newer" {
		t.Fatalf("completed filter must yield exactly index 0, got %+v", completed)
	}

	uncompleted := s.WithFilter(FilterUncompleted).Visible()
	if len(uncompleted) != 1 || uncompleted[0].Index != 1 || uncompleted[0].Todo.Text != "older" {
		t.Fatalf("uncompleted filter must yield exactly index 1, got %+v", uncompleted)
	}

	all := s.WithFilter(FilterAll).Visible()
	if len(all) != 2 || all[0].Index != 0 || all[1].Index != 1 {
		t.Fatalf("all filter must keep both in order, got %+v", all)
	}
}

func TestVisibleKeepsUnfilteredIndices(t *testing.T) {
	// [c b a] with b completed; uncompleted view must report indices 0 and
	// 2, not the filtered row positions.
	s := Initial("").Add("a").Add("b").Add("c").Toggle(1).WithFilter(FilterUncompleted)
	visible := s.Visible()
	if len(visible) != 2 {
		t.Fatalf("expected 2 visible, got %d", len(visible))
	}
	if visible[0].Index != 0 || visible[0].Todo.Text != "c" {
		t.Fatalf("first visible must be index 0 (c), got %+v", visible[0])
	}
	if visible[1].Index != 2 || visible[1].Todo.Text != "a" {
		t.Fatalf("second visible must be index 2 (a), got %+v", visible[1])
	}
}

func TestUnrecognizedFilterPassesThrough(t *testing.T) {
	s := Initial("").Add("x").WithFilter(Filter("garbage"))
	if got := s.ActiveFilter(); got != Filter("garbage") {
		t.Fatalf("unknown filter must be stored as-is, got %q", got)
	}
	if s.ActiveFilter().Known() {
		t.Fatalf("garbage must not count as a known filter")
	}
	if len(s.Visible()) != 1 {
		t.Fatalf("unknown filter must not hide todos")
	}
}

func TestSnapshotsAreNeverMutated(t *testing.T) {
	base := Initial("").Add("a").Add("b")
	snapshot := texts(base)

	_ = base.Add("c")
	_ = base.Remove(0)
	_ = base.Toggle(1)
	_ = base.ClearCompleted()
	_ = base.WithFilter(FilterCompleted)

	if !reflect.DeepEqual(texts(base), snapshot) {
		t.Fatalf("transformations must not touch the old snapshot: %v vs %v", texts(base), snapshot)
	}
	if base.ActiveFilter() != FilterAll {
		t.Fatalf("filter on the old snapshot changed to %q", base.ActiveFilter())
	}
}

func TestScenarioBuyMilk(t *testing.T) {
	s := Initial("")
	s = s.Add("buy milk")
	if got := s.Todos(); len(got) != 1 || got[0].Text != "buy milk" || got[0].Done {
		t.Fatalf("after add, expected [{buy milk false}], got %+v", got)
	}
	s = s.Toggle(0)
	if td, _ := s.At(0); !td.Done {
		t.Fatalf("after toggle, todo must be done")
	}
	s = s.WithFilter(FilterUncompleted)
	if visible := s.Visible(); len(visible) != 0 {
		t.Fatalf("uncompleted view must be empty, got %+v", visible)
	}
	s = s.ClearCompleted()
	if s.Len() != 0 {
		t.Fatalf("clear must leave no todos, got %d", s.Len())
	}
}

func TestScenarioRemoveByCurrentIndex(t *testing.T) {
	s := Initial("").Add("a").Add("b")
	if got := texts(s); !reflect.DeepEqual(got, []string{"b", "a"}) {
		t.Fatalf("expected [b a], got %v", got)
	}
	s = s.Remove(1)
	if got := texts(s); !reflect.DeepEqual(got, []string{"b"}) {
		t.Fatalf("remove(1) must drop a, got %v", got)
	}
}

func TestParseFilter(t *testing.T) {
	cases := map[string]Filter{
		"all":         FilterAll,
		"Completed":   FilterCompleted,
		" UNCOMPLETED ": FilterUncompleted,
		"bogus":       Filter("bogus"),
	}
	for in, want := range cases {
		if got := ParseFilter(in); got != want {
			t.Fatalf("ParseFilter(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFilterCycle(t *testing.T) {
	if got := FilterAll.Next(); got != FilterCompleted {
		t.Fatalf("all -> %q", got)
	}
	if got := FilterCompleted.Next(); got != FilterUncompleted {
		t.Fatalf("completed -> %q", got)
	}
	if got := FilterUncompleted.Next(); got != FilterAll {
		t.Fatalf("uncompleted -> %q", got)
	}
	if got := Filter("garbage").Next(); got != FilterAll {
		t.Fatalf("unknown filter must cycle back to all, got %q", got)
	}
}
