// internal/todo/action.go
//
// Actions are typed, immutable descriptions of user intent. Each one knows
// the pure state transformation it stands for; the store merges them into a
// single ordered stream and folds them over the running state. None of the
// transformations can fail — a stale index is absorbed, not surfaced.

package todo

import "fmt"

// Action is one user intent, applied as a pure State -> State step.
type Action interface {
	Apply(State) State
	fmt.Stringer
}

// AddTodo prepends a new todo with the given text.
type AddTodo struct {
	Text string
}

func (a AddTodo) Apply(s State) State { return s.Add(a.Text) }
func (a AddTodo) String() string      { return fmt.Sprintf("add %q", a.Text) }

// RemoveTodo removes the todo at a positional index.
type RemoveTodo struct {
	Index int
}

func (a RemoveTodo) Apply(s State) State { return s.Remove(a.Index) }
func (a RemoveTodo) String() string      { return fmt.Sprintf("remove #%d", a.Index) }

// ToggleCompleted flips the completion flag at a positional index.
type ToggleCompleted struct {
	Index int
}

func (a ToggleCompleted) Apply(s State) State { return s.Toggle(a.Index) }
func (a ToggleCompleted) String() string      { return fmt.Sprintf("toggle #%d", a.Index) }

// ChangeFilter replaces the active filter.
type ChangeFilter struct {
	Filter Filter
}

func (a ChangeFilter) Apply(s State) State { return s.WithFilter(a.Filter) }
func (a ChangeFilter) String() string      { return fmt.Sprintf("filter %s", string(a.Filter)) }

// ClearCompleted removes every completed todo. It carries no payload.
type ClearCompleted struct{}

func (ClearCompleted) Apply(s State) State { return s.ClearCompleted() }
func (ClearCompleted) String() string      { return "clear completed" }
