// internal/tui/app.go
//
// The main TUI for pile. It uses bubbletea, which follows The Elm
// Architecture:
//
// 1. Model: your application state
// 2. Update: a function that updates state based on messages
// 3. View: a function that renders state to a string
//
// The app splits that a little further. Update only translates terminal
// events into typed actions and dispatches them to the store; the store
// folds them into new snapshots on its own goroutine and feeds them back
// here as stateMsg values via a re-armed Cmd. View is a pure projection of
// the latest snapshot (see view.go). So the flow is:
//
//	Key -> Action -> store fold -> stateMsg -> new snapshot -> View -> Screen
//
// The cursor, composer buffer and focus are event-extraction state, not
// application state: they decide which positional index an action carries,
// the way a rendered row's index attribute would in a DOM app.

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mkrall/pile/internal/config"
	"github.com/mkrall/pile/internal/journal"
	"github.com/mkrall/pile/internal/store"
	"github.com/mkrall/pile/internal/todo"
)

type focusArea int

const (
	focusComposer focusArea = iota
	focusList
)

// stateMsg carries the next snapshot from the store subscription.
type stateMsg struct {
	state todo.State
	ok    bool
}

// App is the bubbletea model. It never mutates a snapshot; it only swaps
// in the fresh one each stateMsg delivers.
type App struct {
	cfg  *config.Config
	st   *store.Store
	sub  store.Subscription
	jour *journal.Journal

	state    todo.State
	composer textinput.Model
	keys     keyMap
	help     help.Model
	styles   styles

	focus       focusArea
	cursor      int
	showJournal bool
	width       int
	height      int
}

// NewApp wires the TUI to a running store.
func NewApp(cfg *config.Config, st *store.Store, jour *journal.Journal) *App {
	composer := textinput.New()
	composer.Prompt = "> "
	composer.Placeholder = "What needs doing?"
	composer.Focus()

	return &App{
		cfg:      cfg,
		st:       st,
		sub:      st.Subscribe(),
		jour:     jour,
		state:    st.State(),
		composer: composer,
		keys:     defaultKeyMap(),
		help:     help.New(),
		styles:   newStyles(cfg.File.Theme),
	}
}

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, a.awaitState())
}

// awaitState blocks on the store subscription and re-enters the Update
// loop with the next snapshot. It is re-armed after every stateMsg, the
// same way a ticker Cmd re-arms itself.
func (a *App) awaitState() tea.Cmd {
	sub := a.sub
	return func() tea.Msg {
		s, ok := <-sub.States
		return stateMsg{state: s, ok: ok}
	}
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.composer.Width = max(20, msg.Width-8)
		a.help.Width = msg.Width
		return a, nil

	case stateMsg:
		if !msg.ok {
			// Subscription closed; stop re-arming.
			return a, nil
		}
		a.state = msg.state
		a.clampCursor()
		return a, a.awaitState()

	case tea.KeyMsg:
		return a.handleKey(msg)
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return a.quit()
	}
	if key.Matches(msg, a.keys.Focus) {
		if a.focus == focusComposer {
			a.focus = focusList
			a.composer.Blur()
		} else {
			a.focus = focusComposer
			a.composer.Focus()
		}
		return a, nil
	}

	if a.focus == focusComposer {
		if key.Matches(msg, a.keys.Add) {
			text := a.composer.Value()
			// Trim decides emptiness only; the stored text keeps its
			// whitespace.
			if strings.TrimSpace(text) != "" {
				a.st.Dispatch(todo.AddTodo{Text: text})
				a.composer.Reset()
			}
			return a, nil
		}
		var cmd tea.Cmd
		a.composer, cmd = a.composer.Update(msg)
		return a, cmd
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a.quit()
	case key.Matches(msg, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}
	case key.Matches(msg, a.keys.Down):
		if a.cursor < len(a.state.Visible())-1 {
			a.cursor++
		}
	case key.Matches(msg, a.keys.Toggle):
		if idx, ok := a.selectedIndex(); ok {
			a.st.Dispatch(todo.ToggleCompleted{Index: idx})
		}
	case key.Matches(msg, a.keys.Remove):
		if idx, ok := a.selectedIndex(); ok {
			a.st.Dispatch(todo.RemoveTodo{Index: idx})
		}
	case key.Matches(msg, a.keys.Clear):
		a.st.Dispatch(todo.ClearCompleted{})
	case key.Matches(msg, a.keys.All):
		a.st.Dispatch(todo.ChangeFilter{Filter: todo.FilterAll})
	case key.Matches(msg, a.keys.Done):
		a.st.Dispatch(todo.ChangeFilter{Filter: todo.FilterCompleted})
	case key.Matches(msg, a.keys.Todo):
		a.st.Dispatch(todo.ChangeFilter{Filter: todo.FilterUncompleted})
	case key.Matches(msg, a.keys.Cycle):
		a.st.Dispatch(todo.ChangeFilter{Filter: a.state.ActiveFilter().Next()})
	case key.Matches(msg, a.keys.Journal):
		a.showJournal = !a.showJournal
	case key.Matches(msg, a.keys.Help):
		a.help.ShowAll = !a.help.ShowAll
	}
	return a, nil
}

// selectedIndex resolves the cursor row to its index in the unfiltered
// sequence — the identity token every edit carries. The cursor walks
// visible rows, so under a narrow filter the returned index can be far
// from the cursor position.
func (a *App) selectedIndex() (int, bool) {
	visible := a.state.Visible()
	if a.cursor < 0 || a.cursor >= len(visible) {
		return 0, false
	}
	return visible[a.cursor].Index, true
}

func (a *App) clampCursor() {
	if n := len(a.state.Visible()); a.cursor >= n {
		a.cursor = n - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

func (a *App) quit() (tea.Model, tea.Cmd) {
	if err := a.cfg.SetStartupFilter(string(a.state.ActiveFilter())); err != nil {
		a.jour.Errorf("persist filter: %v", err)
	}
	a.jour.Infof("session closed · %d todo(s) discarded", a.state.Len())
	a.sub.Close()
	return a, tea.Quit
}

// View renders the current state to a string. All layout lives in
// render, which is a pure function of the snapshot and the frame.
func (a *App) View() string {
	f := frame{
		width:       a.width,
		cursor:      a.cursor,
		listFocused: a.focus == focusList,
		composer:    a.composer.View(),
		showJournal: a.showJournal,
		helpView:    a.help.View(a.keys),
		st:          a.styles,
	}
	if a.showJournal {
		f.journalLines = a.jour.Tail(a.cfg.JournalTail())
	}
	return render(a.state, f)
}
