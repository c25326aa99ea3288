// Package history provides undo/redo functionality via a stack of reversible actions.
package history

import "time"

// Action is a reversible unit of work.
//
// Implementations embed Stamp, which supplies the add/merge timestamps the
// Manager maintains and satisfies the unexported part of this interface.
type Action interface {
	// Execute applies the forward effect. It must be safe to call again right
	// after the effect was applied by the caller.
	Execute()
	// UndoExecute applies the exact inverse of the last Execute.
	UndoExecute()
	// TryToMerge absorbs next, which was added right after the receiver, so
	// that one UndoExecute restores the state from before the receiver and one
	// Execute reaches the state next would have produced. It returns false,
	// without side effects, when next cannot be absorbed.
	TryToMerge(next Action) bool

	stamp() *Stamp
}

// Notifier is implemented by actions that re-broadcast domain events after
// history navigation. The owner of the Manager calls the hooks, not the Manager.
type Notifier interface {
	OnUndo()
	OnRedo()
}

// Undoable is an action that also carries the notification hooks.
type Undoable interface {
	Action
	Notifier
}

// Stamp holds the timestamps assigned by the Manager.
// Both are meaningful only after the action has been added.
type Stamp struct {
	addedAt      time.Time
	lastMergedAt time.Time // zero if never merged
}

func (s *Stamp) stamp() *Stamp { return s }

// AddedAt returns when the action was handed to a Manager.
func (s *Stamp) AddedAt() time.Time {
	return s.addedAt
}

// LastMergedAt returns the time of the last successful merge into the action.
func (s *Stamp) LastMergedAt() (time.Time, bool) {
	return s.lastMergedAt, !s.lastMergedAt.IsZero()
}

// ElapsedSinceAdd returns the time passed between the add and now.
func (s *Stamp) ElapsedSinceAdd(now time.Time) time.Duration {
	return now.Sub(s.addedAt)
}

// ElapsedSinceLastMerge returns the time passed since the last merge; false if never merged.
func (s *Stamp) ElapsedSinceLastMerge(now time.Time) (time.Duration, bool) {
	if s.lastMergedAt.IsZero() {
		return 0, false
	}
	return now.Sub(s.lastMergedAt), true
}

// mergeReference is the instant a merge window is measured from: the last
// merge, or the add when the action never absorbed anything.
func (s *Stamp) mergeReference() time.Time {
	if !s.lastMergedAt.IsZero() {
		return s.lastMergedAt
	}
	return s.addedAt
}

// withinWindow reports whether next arrived no later than window after the
// receiver's merge reference.
func (s *Stamp) withinWindow(next Action, window time.Duration) bool {
	return next.stamp().addedAt.Sub(s.mergeReference()) <= window
}
