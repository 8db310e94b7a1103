// Package history implements a linear undo/redo history over graph snapshots.
package history

import (
	"slices"

	"github.com/aretw0/flowdesk/pkg/graph"
)

// Manager holds an ordered list of snapshots and a cursor into it.
// Undo and redo only move the cursor; a commit discards the redo branch.
// The list is never empty.
type Manager struct {
	entries []graph.Snapshot
	cursor  int
	limit   int
}

// Option configures a Manager.
type Option func(*Manager)

// WithLimit bounds the number of retained entries. The oldest entries are
// dropped first. Values below 2 disable the limit.
func WithLimit(n int) Option {
	return func(m *Manager) {
		if n >= 2 {
			m.limit = n
		}
	}
}

// New creates a history whose only entry is initial.
func New(initial graph.Snapshot, opts ...Option) *Manager {
	m := &Manager{}
	for _, opt := range opts {
		opt(m)
	}
	m.Reset(initial)
	return m
}

// Reset discards every entry and starts over from initial.
func (m *Manager) Reset(initial graph.Snapshot) {
	clear(m.entries)
	m.entries = append(m.entries[:0], initial)
	m.cursor = 0
}

// Commit appends snap after the cursor, dropping any redo entries.
func (m *Manager) Commit(snap graph.Snapshot) {
	tail := m.entries[m.cursor+1:]
	clear(tail)
	m.entries = append(m.entries[:m.cursor+1], snap)
	m.cursor = len(m.entries) - 1

	if m.limit > 0 && len(m.entries) > m.limit {
		over := len(m.entries) - m.limit
		m.entries = slices.Delete(m.entries, 0, over)
		m.cursor -= over
	}
}

// Undo moves the cursor back and returns the entry it now points to.
// At the oldest entry it does nothing and returns false.
func (m *Manager) Undo() (graph.Snapshot, bool) {
	if m.cursor == 0 {
		return graph.Snapshot{}, false
	}
	m.cursor--
	return m.entries[m.cursor], true
}

// Redo moves the cursor forward and returns the entry it now points to.
// At the newest entry it does nothing and returns false.
func (m *Manager) Redo() (graph.Snapshot, bool) {
	if m.cursor >= len(m.entries)-1 {
		return graph.Snapshot{}, false
	}
	m.cursor++
	return m.entries[m.cursor], true
}

// Current returns the entry under the cursor.
func (m *Manager) Current() graph.Snapshot { return m.entries[m.cursor] }

// CanUndo reports whether Undo would move the cursor.
func (m *Manager) CanUndo() bool { return m.cursor > 0 }

// CanRedo reports whether Redo would move the cursor.
func (m *Manager) CanRedo() bool { return m.cursor < len(m.entries)-1 }

// Len returns the number of retained entries.
func (m *Manager) Len() int { return len(m.entries) }

// Cursor returns the index of the current entry.
func (m *Manager) Cursor() int { return m.cursor }
