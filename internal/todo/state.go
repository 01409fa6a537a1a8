// internal/todo/state.go
//
// State is the single application value everything else folds over. It is
// backed by a persistent vector, so "modifying" a state produces a new
// snapshot sharing structure with the old one; a snapshot handed to a
// renderer is never touched again.
//
// The vector stores todos oldest-first because persistent vectors append
// cheaply at the tail. The public positional index runs the other way
// (index 0 = most recently added), so every accessor goes through a small
// index flip. Out-of-range indices are absorbed as no-ops everywhere: a
// stale index must never fail the stream.

package todo

import "src.elv.sh/pkg/persistent/vector"

// State is one immutable application snapshot.
type State struct {
	todos  vector.Vector
	filter Filter
}

// Initial returns the startup state: no todos, the given filter active.
// An empty filter falls back to FilterAll.
func Initial(f Filter) State {
	if f == "" {
		f = FilterAll
	}
	return State{todos: vector.Empty, filter: f}
}

// Len returns the number of todos, visible or not.
func (s State) Len() int {
	if s.todos == nil {
		return 0
	}
	return s.todos.Len()
}

// ActiveFilter returns the filter currently applied to the visible list.
func (s State) ActiveFilter() Filter {
	return s.filter
}

// InBounds reports whether i is a live positional index.
func (s State) InBounds(i int) bool {
	return i >= 0 && i < s.Len()
}

// physical maps a positional index (0 = newest) to the vector slot
// (0 = oldest).
func (s State) physical(i int) (int, bool) {
	if !s.InBounds(i) {
		return 0, false
	}
	return s.Len() - 1 - i, true
}

// At returns the todo at positional index i.
func (s State) At(i int) (Todo, bool) {
	p, ok := s.physical(i)
	if !ok {
		return Todo{}, false
	}
	elem, _ := s.todos.Index(p)
	return elem.(Todo), true
}

// Todos returns all todos front-first. Intended for rendering and tests;
// the returned slice is fresh and safe to hold.
func (s State) Todos() []Todo {
	out := make([]Todo, 0, s.Len())
	for i := 0; i < s.Len(); i++ {
		t, _ := s.At(i)
		out = append(out, t)
	}
	return out
}

// Entry pairs a visible todo with its index in the unfiltered sequence.
// That index — not the row's position in the filtered view — is the
// identity token edits must carry.
type Entry struct {
	Index int
	Todo  Todo
}

// Visible returns the todos matching the active filter in sequence order,
// each tagged with its unfiltered positional index.
func (s State) Visible() []Entry {
	entries := make([]Entry, 0, s.Len())
	for i := 0; i < s.Len(); i++ {
		t, _ := s.At(i)
		if s.filter.Match(t) {
			entries = append(entries, Entry{Index: i, Todo: t})
		}
	}
	return entries
}

// Add prepends a new, uncompleted todo. The text is stored exactly as
// given; emptiness checks belong to the event layer.
func (s State) Add(text string) State {
	v := s.todos
	if v == nil {
		v = vector.Empty
	}
	return State{todos: v.Conj(Todo{Text: text}), filter: s.filter}
}

// Remove drops the todo at positional index i. Out of bounds is a no-op.
//
// The persistent vector has no mid-sequence delete, so this rebuilds the
// vector without the victim. Fine at todo-list scale.
func (s State) Remove(i int) State {
	p, ok := s.physical(i)
	if !ok {
		return s
	}
	next := vector.Empty
	slot := 0
	for it := s.todos.Iterator(); it.HasElem(); it.Next() {
		if slot != p {
			next = next.Conj(it.Elem())
		}
		slot++
	}
	return State{todos: next, filter: s.filter}
}

// Toggle flips the Done flag at positional index i. Out of bounds is a
// no-op.
func (s State) Toggle(i int) State {
	p, ok := s.physical(i)
	if !ok {
		return s
	}
	elem, _ := s.todos.Index(p)
	t := elem.(Todo)
	t.Done = !t.Done
	return State{todos: s.todos.Assoc(p, t), filter: s.filter}
}

// WithFilter replaces the active filter unconditionally, unrecognized
// values included.
func (s State) WithFilter(f Filter) State {
	return State{todos: s.todos, filter: f}
}

// ClearCompleted drops every completed todo, keeping the relative order of
// the rest.
func (s State) ClearCompleted() State {
	if s.todos == nil {
		return s
	}
	next := vector.Empty
	for it := s.todos.Iterator(); it.HasElem(); it.Next() {
		t := it.Elem().(Todo)
		if !t.Done {
			next = next.Conj(t)
		}
	}
	return State{todos: next, filter: s.filter}
}
