package history

import (
	"errors"
	"fmt"
	"time"
)

// ErrNilInstance means an edit targets the zero value of the instance type.
var ErrNilInstance = errors.New("nil instance in edit batch")

// Edit pairs an instance with the value its property should take.
type Edit[T any] struct {
	Instance T
	Value    any
}

type propertyState[T any] struct {
	instance T
	oldValue any
	newValue any
}

// PropertyEdit sets one named property on a batch of instances.
//
// Edits of the same property on exactly the same instances that follow each
// other within the merge window collapse into one history entry: undo goes
// back to the values from before the first edit, redo reaches the last one.
//
// T should be a pointer type; instances are matched by ==.
type PropertyEdit[T comparable] struct {
	Stamp

	property string
	acc      Accessor[T]
	window   time.Duration
	states   []propertyState[T]
	index    map[T]int
}

// NewPropertyEdit resolves the property in reg and snapshots the current value
// of every instance. Nothing is modified until Execute runs.
// A negative window disables merging.
func NewPropertyEdit[T comparable](reg *Registry[T], property string, edits []Edit[T], window time.Duration) (*PropertyEdit[T], error) {
	name := NormalizeName(property)
	if name == "" {
		return nil, &InvalidOperationError{Property: property, Err: ErrPropertyNotFound}
	}
	if len(edits) == 0 {
		return nil, &InvalidOperationError{Property: name, Err: ErrEmptyBatch}
	}

	acc, err := reg.Lookup(name)
	if err != nil {
		return nil, &InvalidOperationError{Property: name, Err: err}
	}

	var zero T
	index := make(map[T]int, len(edits))
	for i, e := range edits {
		if e.Instance == zero {
			return nil, &InvalidOperationError{Property: name, Err: ErrNilInstance}
		}
		if _, dup := index[e.Instance]; dup {
			return nil, &InvalidOperationError{Property: name, Err: ErrDuplicateInstance}
		}
		if !acc.Accepts(e.Value) {
			return nil, invalidOp(name, "%w: %s expects %s, got %T", ErrTypeMismatch, name, acc.ValueType(), e.Value)
		}
		index[e.Instance] = i
	}

	states := make([]propertyState[T], len(edits))
	for i, e := range edits {
		states[i] = propertyState[T]{
			instance: e.Instance,
			oldValue: acc.Get(e.Instance),
			newValue: e.Value,
		}
	}

	return &PropertyEdit[T]{
		property: name,
		acc:      acc,
		window:   window,
		states:   states,
		index:    index,
	}, nil
}

// Property returns the normalized property name.
func (p *PropertyEdit[T]) Property() string {
	return p.property
}

// Instances returns the edited instances in batch order.
func (p *PropertyEdit[T]) Instances() []T {
	out := make([]T, len(p.states))
	for i, s := range p.states {
		out[i] = s.instance
	}
	return out
}

// OldValue returns the value instance had before the edit.
func (p *PropertyEdit[T]) OldValue(instance T) (any, bool) {
	i, ok := p.index[instance]
	if !ok {
		return nil, false
	}
	return p.states[i].oldValue, true
}

// NewValue returns the value Execute writes into instance.
func (p *PropertyEdit[T]) NewValue(instance T) (any, bool) {
	i, ok := p.index[instance]
	if !ok {
		return nil, false
	}
	return p.states[i].newValue, true
}

// Execute writes every new value.
func (p *PropertyEdit[T]) Execute() {
	for _, s := range p.states {
		p.acc.Set(s.instance, s.newValue)
	}
}

// UndoExecute restores every old value.
func (p *PropertyEdit[T]) UndoExecute() {
	for _, s := range p.states {
		p.acc.Set(s.instance, s.oldValue)
	}
}

// TryToMerge absorbs next when it edits the same property of the same
// instances inside the merge window.
func (p *PropertyEdit[T]) TryToMerge(next Action) bool {
	n, ok := next.(*PropertyEdit[T])
	if !ok || n == p {
		return false
	}
	if !p.withinWindow(n, p.window) {
		return false
	}
	if n.property != p.property || !p.sameInstances(n) {
		return false
	}

	for _, s := range n.states {
		p.states[p.index[s.instance]].newValue = s.newValue
	}
	return true
}

// sameInstances compares the instance sets; batches never hold duplicates.
func (p *PropertyEdit[T]) sameInstances(o *PropertyEdit[T]) bool {
	if len(p.states) != len(o.states) {
		return false
	}
	for _, s := range o.states {
		if _, ok := p.index[s.instance]; !ok {
			return false
		}
	}
	return true
}

func (p *PropertyEdit[T]) String() string {
	return fmt.Sprintf("PropertyEdit(%s x%d)", p.property, len(p.states))
}
