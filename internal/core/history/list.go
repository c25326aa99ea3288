package history

import (
	"cmp"
	"fmt"
	"slices"
)

// Positions recorded by the list actions refer to the caller's slice. The
// slice must not be modified by anything else while an action referencing it
// sits on either stack; apply-time violations panic like any slice misuse.

type indexed[T any] struct {
	index int
	value T
}

func byIndex[T any](a, b indexed[T]) int {
	return cmp.Compare(a.index, b.index)
}

// Insert puts values into a slice at recorded positions.
type Insert[T any] struct {
	Stamp

	list  *[]T
	pairs []indexed[T] // stable-sorted by index
	order []T          // values in the order they were added
}

// NewInsert creates an empty insertion on list.
func NewInsert[T any](list *[]T) *Insert[T] {
	if list == nil {
		panic("history: nil list")
	}
	return &Insert[T]{list: list}
}

// Add queues value for insertion at index. Indices refer to the slice as it
// is before any of this action's insertions; values queued at the same index
// end up in the order they were added.
func (a *Insert[T]) Add(index int, value T) error {
	if index < 0 {
		return fmt.Errorf("insert at %d: %w", index, ErrIndexOutOfRange)
	}
	p := indexed[T]{index: index, value: value}
	// insert after existing pairs with the same index
	at, _ := slices.BinarySearchFunc(a.pairs, index+1, func(e indexed[T], t int) int {
		return cmp.Compare(e.index, t)
	})
	a.pairs = slices.Insert(a.pairs, at, p)
	a.order = append(a.order, value)
	return nil
}

// Len returns the number of queued values.
func (a *Insert[T]) Len() int { return len(a.pairs) }

// Values returns the queued values in the order they were added.
func (a *Insert[T]) Values() []T { return slices.Clone(a.order) }

// Execute inserts in ascending index order. Each insertion shifts the later
// targets right by one, so the k-th pair lands at index+k.
func (a *Insert[T]) Execute() {
	l := *a.list
	for k, p := range a.pairs {
		l = slices.Insert(l, p.index+k, p.value)
	}
	*a.list = l
}

// UndoExecute removes the inserted values, highest position first.
func (a *Insert[T]) UndoExecute() {
	l := *a.list
	for k := len(a.pairs) - 1; k >= 0; k-- {
		at := a.pairs[k].index + k
		l = slices.Delete(l, at, at+1)
	}
	var zero T
	tail := (*a.list)[len(l):]
	for i := range tail {
		tail[i] = zero
	}
	*a.list = l
}

// TryToMerge never merges insertions.
func (a *Insert[T]) TryToMerge(Action) bool { return false }

// Remove takes values out of a slice at recorded positions.
type Remove[T any] struct {
	Stamp

	list  *[]T
	pairs []indexed[T] // sorted by index
	order []T
}

// NewRemove creates an empty removal on list.
func NewRemove[T any](list *[]T) *Remove[T] {
	if list == nil {
		panic("history: nil list")
	}
	return &Remove[T]{list: list}
}

// Remove records that value, currently at index, is part of the removal.
// Indices refer to the slice before any of this action's removals.
func (a *Remove[T]) Remove(index int, value T) error {
	if index < 0 {
		return fmt.Errorf("remove at %d: %w", index, ErrIndexOutOfRange)
	}
	at, found := slices.BinarySearchFunc(a.pairs, indexed[T]{index: index}, byIndex[T])
	if found {
		return fmt.Errorf("remove at %d twice: %w", index, ErrIndexOutOfRange)
	}
	a.pairs = slices.Insert(a.pairs, at, indexed[T]{index: index, value: value})
	a.order = append(a.order, value)
	return nil
}

// Len returns the number of recorded removals.
func (a *Remove[T]) Len() int { return len(a.pairs) }

// Values returns the removed values in the order they were recorded.
func (a *Remove[T]) Values() []T { return slices.Clone(a.order) }

// Execute removes from the highest index down, so no recorded index moves
// before it is used.
func (a *Remove[T]) Execute() {
	l := *a.list
	n := len(l)
	for k := len(a.pairs) - 1; k >= 0; k-- {
		at := a.pairs[k].index
		l = slices.Delete(l, at, at+1)
	}
	var zero T
	tail := (*a.list)[len(l):n]
	for i := range tail {
		tail[i] = zero
	}
	*a.list = l
}

// UndoExecute re-inserts in ascending order. Lower insertions never move a
// higher recorded position, so every value returns to its original index.
func (a *Remove[T]) UndoExecute() {
	l := *a.list
	for _, p := range a.pairs {
		l = slices.Insert(l, p.index, p.value)
	}
	*a.list = l
}

// TryToMerge never merges removals.
func (a *Remove[T]) TryToMerge(Action) bool { return false }

// Swap exchanges the elements at two positions. It is its own inverse and
// works on positions, not values.
type Swap[T any] struct {
	Stamp

	list *[]T
	i, j int
}

// NewSwap validates both positions against the current slice.
func NewSwap[T any](list *[]T, i, j int) (*Swap[T], error) {
	if list == nil {
		panic("history: nil list")
	}
	n := len(*list)
	if i < 0 || i >= n || j < 0 || j >= n {
		return nil, fmt.Errorf("swap %d and %d in list of %d: %w", i, j, n, ErrIndexOutOfRange)
	}
	return &Swap[T]{list: list, i: i, j: j}, nil
}

// Positions returns the two swapped positions.
func (a *Swap[T]) Positions() (int, int) { return a.i, a.j }

// Execute exchanges the two elements.
func (a *Swap[T]) Execute() { a.swap() }

// UndoExecute exchanges the two elements again.
func (a *Swap[T]) UndoExecute() { a.swap() }

func (a *Swap[T]) swap() {
	l := *a.list
	l[a.i], l[a.j] = l[a.j], l[a.i]
}

// TryToMerge never merges swaps.
func (a *Swap[T]) TryToMerge(Action) bool { return false }
