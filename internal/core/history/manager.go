package history

import (
	"time"

	"github.com/bethropolis/mkedit/internal/logger"
)

// Manager owns the undo and redo stacks.
//
// It is meant to be driven from a single goroutine (the UI loop); it does no locking.
type Manager[A Action] struct {
	undo []A // most recent last
	redo []A
	now  func() time.Time
}

// Option configures a Manager.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// NewManager creates an empty history.
func NewManager[A Action](opts ...Option) *Manager[A] {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &Manager[A]{now: o.now}
}

// Add executes a and records it.
func (m *Manager[A]) Add(a A) {
	m.AddAction(a, true)
}

// AddAction records a, executing it first when execute is true.
// The redo history is always discarded. If the current undo top absorbs a,
// a itself is dropped and the top's merge time is refreshed.
func (m *Manager[A]) AddAction(a A, execute bool) {
	if any(a) == nil {
		panic("history: nil action")
	}
	s := a.stamp()
	s.addedAt = m.now()
	s.lastMergedAt = time.Time{}

	if execute {
		a.Execute()
	}

	if n := len(m.redo); n > 0 {
		logger.DebugTagf("history", "History: Dropping %d redo entries", n)
	}
	clear(m.redo)
	m.redo = m.redo[:0]

	if len(m.undo) > 0 {
		top := m.undo[len(m.undo)-1]
		if top.TryToMerge(a) {
			top.stamp().lastMergedAt = m.now()
			logger.DebugTagf("history", "History: Merged %T into undo top. Count: %d", a, len(m.undo))
			return
		}
	}

	m.undo = append(m.undo, a)
	logger.DebugTagf("history", "History: Recorded %T. Count: %d", a, len(m.undo))
}

// Undo reverts the most recent action and moves it onto the redo stack.
// It returns false when there is nothing to undo.
func (m *Manager[A]) Undo() (A, bool) {
	var zero A
	if len(m.undo) == 0 {
		logger.DebugTagf("history", "History: Nothing to undo.")
		return zero, false
	}

	a := m.undo[len(m.undo)-1]
	m.undo[len(m.undo)-1] = zero
	m.undo = m.undo[:len(m.undo)-1]
	m.redo = append(m.redo, a)
	a.UndoExecute()

	logger.DebugTagf("history", "History: Undid %T. Undo: %d, Redo: %d", a, len(m.undo), len(m.redo))
	return a, true
}

// Redo reapplies the most recently undone action.
// It returns false when there is nothing to redo.
func (m *Manager[A]) Redo() (A, bool) {
	var zero A
	if len(m.redo) == 0 {
		logger.DebugTagf("history", "History: Nothing to redo.")
		return zero, false
	}

	a := m.redo[len(m.redo)-1]
	m.redo[len(m.redo)-1] = zero
	m.redo = m.redo[:len(m.redo)-1]
	m.undo = append(m.undo, a)
	a.Execute()

	logger.DebugTagf("history", "History: Redid %T. Undo: %d, Redo: %d", a, len(m.undo), len(m.redo))
	return a, true
}

// Clear resets both stacks. Call this when a new document is loaded.
func (m *Manager[A]) Clear() {
	clear(m.undo)
	clear(m.redo)
	m.undo = m.undo[:0]
	m.redo = m.redo[:0]
	logger.DebugTagf("history", "History: Cleared.")
}

// CanUndo returns true if there are actions that can be undone.
func (m *Manager[A]) CanUndo() bool { return len(m.undo) > 0 }

// CanRedo returns true if there are actions that can be redone.
func (m *Manager[A]) CanRedo() bool { return len(m.redo) > 0 }

// UndoLen returns the number of entries on the undo stack.
func (m *Manager[A]) UndoLen() int { return len(m.undo) }

// RedoLen returns the number of entries on the redo stack.
func (m *Manager[A]) RedoLen() int { return len(m.redo) }
