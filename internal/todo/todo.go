// internal/todo/todo.go
//
// Core domain values for pile. A Todo is an immutable value: every edit
// replaces it wholesale inside a new state snapshot, nothing is mutated in
// place. A todo has no stable id — its identity is its current position in
// the list, front (index 0) being the most recently added. That index is
// recomputed on every render and only valid until the next state change.

package todo

import "strings"

// Todo is a single entry on the list.
type Todo struct {
	Text string
	Done bool
}

// Filter selects which todos are visible. Unrecognized values are legal:
// a filter change stores whatever value it was given, and rendering treats
// anything it does not know as "show everything".
type Filter string

const (
	FilterAll         Filter = "all"
	FilterCompleted   Filter = "completed"
	FilterUncompleted Filter = "uncompleted"
)

// Filters lists the known filters in display order.
var Filters = []Filter{FilterAll, FilterCompleted, FilterUncompleted}

// Match reports whether a todo is visible under this filter.
func (f Filter) Match(t Todo) bool {
	switch f {
	case FilterCompleted:
		return t.Done
	case FilterUncompleted:
		return !t.Done
	default:
		return true
	}
}

// Known reports whether f is one of the three built-in filters.
func (f Filter) Known() bool {
	switch f {
	case FilterAll, FilterCompleted, FilterUncompleted:
		return true
	}
	return false
}

// Next cycles through the known filters. Cycling from an unrecognized
// filter restarts at FilterAll.
func (f Filter) Next() Filter {
	for i, known := range Filters {
		if f == known {
			return Filters[(i+1)%len(Filters)]
		}
	}
	return FilterAll
}

// ParseFilter normalizes a configured filter string. Known names map to
// their canonical value regardless of case; anything else passes through
// as-is, matching the pass-through semantics of a filter change.
func ParseFilter(s string) Filter {
	switch f := Filter(strings.ToLower(strings.TrimSpace(s))); f {
	case FilterAll, FilterCompleted, FilterUncompleted:
		return f
	}
	return Filter(s)
}
