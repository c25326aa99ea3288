package macro

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// Screen is one page of keys shown on the device.
// Keys are drawn in slice order, so later keys sit on top.
type Screen struct {
	Keys           []*Key      `toml:"keys"`
	Background     Color       `toml:"background"`
	BackgroundText string      `toml:"background_text"`
	Swipe          SwipeType   `toml:"swipe"`
	Orientation    Orientation `toml:"orientation"`
}

// NewScreen creates an empty portrait screen.
func NewScreen(swipe SwipeType) *Screen {
	return &Screen{
		Background:  White,
		Swipe:       swipe,
		Orientation: Portrait,
	}
}

// Setup is the whole layout: an ordered set of screens.
type Setup struct {
	Screens []*Screen `toml:"screens"`
}

var (
	// ErrDuplicateKeyID means two keys share an ID.
	ErrDuplicateKeyID = errors.New("duplicate key id")
	// ErrEmptyArea means a key has no usable area.
	ErrEmptyArea = errors.New("key area is empty")
	// ErrDuplicateSwipe means two screens are reached by the same swipe.
	ErrDuplicateSwipe = errors.New("duplicate swipe type")
	// ErrNilEntry means a nil screen or key is present.
	ErrNilEntry = errors.New("nil entry")
)

// Validate reports every problem of the setup at once.
func (s *Setup) Validate() error {
	var result *multierror.Error
	ids := make(map[string]int)
	swipes := make(map[SwipeType]int)

	for si, screen := range s.Screens {
		if screen == nil {
			result = multierror.Append(result, fmt.Errorf("screen %d: %w", si, ErrNilEntry))
			continue
		}
		if prev, dup := swipes[screen.Swipe]; dup && screen.Swipe != SwipeNone {
			result = multierror.Append(result, fmt.Errorf("screens %d and %d: %w %s", prev, si, ErrDuplicateSwipe, screen.Swipe))
		} else {
			swipes[screen.Swipe] = si
		}

		for ki, k := range screen.Keys {
			if k == nil {
				result = multierror.Append(result, fmt.Errorf("screen %d key %d: %w", si, ki, ErrNilEntry))
				continue
			}
			if k.Area.Empty() {
				result = multierror.Append(result, fmt.Errorf("screen %d key %d (%s): %w", si, ki, k.Label(), ErrEmptyArea))
			}
			if k.ID == "" {
				continue
			}
			if _, dup := ids[k.ID]; dup {
				result = multierror.Append(result, fmt.Errorf("screen %d key %d: %w %s", si, ki, ErrDuplicateKeyID, k.ID))
			}
			ids[k.ID] = si
		}
	}
	return result.ErrorOrNil()
}
