package history

import (
	"errors"
	"fmt"
)

var (
	// ErrPropertyNotFound means no accessor pair is registered under the name.
	ErrPropertyNotFound = errors.New("property not found")
	// ErrTypeMismatch means a value cannot be handed to the property's setter.
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrEmptyBatch means a property edit was requested for no instances.
	ErrEmptyBatch = errors.New("empty edit batch")
	// ErrDuplicateInstance means the same instance appears twice in one batch.
	ErrDuplicateInstance = errors.New("duplicate instance in edit batch")
	// ErrIndexOutOfRange is returned for negative, repeated or out-of-bounds positions.
	ErrIndexOutOfRange = errors.New("index out of range")
)

// InvalidOperationError reports a property edit that could not be built.
// No instance has been modified when it is returned.
type InvalidOperationError struct {
	Property string
	Err      error
}

func (e *InvalidOperationError) Error() string {
	return fmt.Sprintf("invalid edit of property %q: %v", e.Property, e.Err)
}

func (e *InvalidOperationError) Unwrap() error {
	return e.Err
}

func invalidOp(property string, format string, args ...interface{}) error {
	return &InvalidOperationError{Property: property, Err: fmt.Errorf(format, args...)}
}
