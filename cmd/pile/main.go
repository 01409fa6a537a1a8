// cmd/pile/main.go
//
// Entry point for pile. When you run `pile` from any directory, this is
// what executes.
//
// Flow:
// 1. Ensure the .pile/ directory and config exist for this directory
// 2. Open the session journal and build the store seeded from config
// 3. Run the TUI; bubbletea owns the event loop from there

package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mkrall/pile/internal/config"
	"github.com/mkrall/pile/internal/journal"
	"github.com/mkrall/pile/internal/store"
	"github.com/mkrall/pile/internal/todo"
	"github.com/mkrall/pile/internal/tui"
)

func main() {
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting working directory: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.New(cwd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// The journal is diagnostics only; run without it if it can't open.
	jour, err := journal.Open(filepath.Join(cfg.PileDir, "logs", "session.log"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: session journal unavailable: %v\n", err)
		jour = nil
	}
	jour.Infof("session opened · startup filter: %s", cfg.StartupFilter())

	initial := todo.Initial(todo.ParseFilter(cfg.StartupFilter()))
	st := store.New(initial, store.WithJournal(jour))
	defer st.Close()

	p := tea.NewProgram(
		tui.NewApp(cfg, st, jour),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
