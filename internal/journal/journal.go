// internal/journal/journal.go
//
// The journal is pile's diagnostic trail. The reducer absorbs bad input
// silently by design, so the journal is the only place a swallowed action
// leaves a trace. Entries go to an append-only file under .pile/logs and
// into a small in-memory ring the TUI's log panel tails without touching
// disk.
//
// Every method is safe on a nil receiver: the app runs fine without a
// journal.

package journal

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Level marks the severity of an entry.
type Level string

const (
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

const defaultRingSize = 64

// Journal appends timestamped entries to a file and keeps the most recent
// ones in memory for display.
type Journal struct {
	path string

	mu     sync.Mutex
	recent []string
	size   int
}

// Open creates a journal writing to path, making parent directories as
// needed.
func Open(path string) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("journal: ensure log dir: %w", err)
	}
	return &Journal{path: path, size: defaultRingSize}, nil
}

// Path returns the file backing this journal.
func (j *Journal) Path() string {
	if j == nil {
		return ""
	}
	return j.path
}

// Append records a single entry.
func (j *Journal) Append(level Level, message string) {
	if j == nil {
		return
	}
	message = strings.TrimSpace(message)
	line := fmt.Sprintf("%s %-5s %s",
		time.Now().UTC().Format(time.RFC3339), string(level), message)

	j.mu.Lock()
	j.recent = append(j.recent, fmt.Sprintf("%-5s %s", string(level), message))
	if len(j.recent) > j.size {
		j.recent = j.recent[len(j.recent)-j.size:]
	}
	j.mu.Unlock()

	file, err := os.OpenFile(j.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return
	}
	defer file.Close()
	_, _ = file.WriteString(line + "\n")
}

// Tail returns up to maxLines of the most recent entries, oldest first.
func (j *Journal) Tail(maxLines int) []string {
	if j == nil || maxLines <= 0 {
		return nil
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	if len(j.recent) == 0 {
		return nil
	}
	start := 0
	if len(j.recent) > maxLines {
		start = len(j.recent) - maxLines
	}
	out := make([]string, len(j.recent)-start)
	copy(out, j.recent[start:])
	return out
}

// Infof appends an informational entry.
func (j *Journal) Infof(format string, args ...any) {
	j.Append(LevelInfo, fmt.Sprintf(format, args...))
}

// Warnf appends a warning entry.
func (j *Journal) Warnf(format string, args ...any) {
	j.Append(LevelWarn, fmt.Sprintf(format, args...))
}

// Errorf appends an error entry.
func (j *Journal) Errorf(format string, args ...any) {
	j.Append(LevelError, fmt.Sprintf(format, args...))
}
