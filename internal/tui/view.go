// internal/tui/view.go
//
// Pure rendering. render projects one immutable snapshot (plus the frame:
// cursor, focus, composer view, journal tail) into the final screen
// string. No store access, no side effects; it runs once per snapshot.

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mkrall/pile/internal/config"
	"github.com/mkrall/pile/internal/todo"
)

var filterLabels = map[todo.Filter]string{
	todo.FilterAll:         "All",
	todo.FilterCompleted:   "Completed",
	todo.FilterUncompleted: "Uncompleted",
}

// styles are built once from the configured theme.
type styles struct {
	header   lipgloss.Style
	accent   lipgloss.Style
	muted    lipgloss.Style
	done     lipgloss.Style
	selected lipgloss.Style
	active   lipgloss.Style
	panel    lipgloss.Style
	warn     lipgloss.Style
}

func newStyles(theme config.ThemeConfig) styles {
	accent := lipgloss.Color(theme.Accent)
	muted := lipgloss.Color(theme.Muted)
	danger := lipgloss.Color(theme.Danger)
	doneColor := lipgloss.Color(theme.Done)
	return styles{
		header:   lipgloss.NewStyle().Bold(true).Foreground(danger).MarginBottom(1),
		accent:   lipgloss.NewStyle().Foreground(accent),
		muted:    lipgloss.NewStyle().Foreground(muted),
		done:     lipgloss.NewStyle().Foreground(doneColor).Strikethrough(true),
		selected: lipgloss.NewStyle().Bold(true).Foreground(accent),
		active:   lipgloss.NewStyle().Bold(true).Foreground(accent).Underline(true),
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1),
		warn: lipgloss.NewStyle().Foreground(danger),
	}
}

// frame carries everything render needs beyond the snapshot itself.
type frame struct {
	width        int
	cursor       int
	listFocused  bool
	composer     string
	showJournal  bool
	journalLines []string
	helpView     string
	st           styles
}

// render is the one projection from snapshot to screen.
func render(s todo.State, f frame) string {
	width := f.width
	if width <= 0 {
		width = 80
	}

	sections := []string{
		f.st.header.Render("⬡ PILE"),
		renderFilterBar(s.ActiveFilter(), f.st),
		renderList(s, f),
		renderSummary(s, f.st),
		f.composer,
	}
	if f.showJournal {
		if panel := renderJournalPanel(f.journalLines, f.st); panel != "" {
			sections = append(sections, panel)
		}
	}
	if f.helpView != "" {
		sections = append(sections, f.helpView)
	}
	body := strings.Join(sections, "\n")
	return lipgloss.NewStyle().Width(width).Render(body)
}

// renderFilterBar shows one label per known filter, the active one marked.
// An unrecognized filter (they pass through the reducer untouched) shows
// up as its own raw label so the pass-through is visible rather than
// silently coerced.
func renderFilterBar(active todo.Filter, st styles) string {
	var labels []string
	for _, f := range todo.Filters {
		label := filterLabels[f]
		if f == active {
			labels = append(labels, st.active.Render("["+label+"]"))
		} else {
			labels = append(labels, st.muted.Render(" "+label+" "))
		}
	}
	if !active.Known() {
		labels = append(labels, st.warn.Render("["+string(active)+"]"))
	}
	return strings.Join(labels, " ")
}

// renderList renders the visible todos. Each row shows the todo's index in
// the unfiltered sequence — the identity token edits carry — so the
// numbering can jump under a narrow filter.
func renderList(s todo.State, f frame) string {
	visible := s.Visible()
	if len(visible) == 0 {
		return f.st.muted.Render("Nothing to show.")
	}
	rows := make([]string, 0, len(visible))
	for row, entry := range visible {
		box := "[ ]"
		if entry.Todo.Done {
			box = "[x]"
		}
		text := entry.Todo.Text
		if entry.Todo.Done {
			text = f.st.done.Render(text)
		}
		line := fmt.Sprintf("%s %s %s",
			box, f.st.muted.Render(fmt.Sprintf("#%d", entry.Index)), text)
		if f.listFocused && row == f.cursor {
			line = f.st.selected.Render("▌ ") + line
		} else {
			line = "  " + line
		}
		rows = append(rows, line)
	}
	return strings.Join(rows, "\n")
}

func renderSummary(s todo.State, st styles) string {
	total := s.Len()
	done := 0
	for _, t := range s.Todos() {
		if t.Done {
			done++
		}
	}
	return st.muted.Render(fmt.Sprintf("%d item(s) · %d done · C clears completed", total, done))
}

func renderJournalPanel(lines []string, st styles) string {
	if len(lines) == 0 {
		return ""
	}
	head := st.accent.Bold(true).Render("LOG · session")
	body := st.muted.Render(strings.Join(lines, "\n"))
	return st.panel.Render(head + "\n" + body)
}
