package mask

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/go-multierror"

	"github.com/bethropolis/mkedit/internal/event"
	"github.com/bethropolis/mkedit/internal/logger"
)

// Editable mask properties.
const (
	PropName       = "Name"
	PropDiagonal   = "Diagonal"
	PropResolution = "Resolution"
)

var (
	ErrNilMask         = errors.New("nil mask")
	ErrMaskPresent     = errors.New("mask already present")
	ErrMaskNotFound    = errors.New("mask not present")
	ErrUnknownProperty = errors.New("unknown mask property")
	ErrWrongValueType  = errors.New("wrong value type for mask property")
)

// Manager holds the available masks and the one drawn behind the editor.
type Manager struct {
	masks        []*Mask
	selected     *Mask
	eventManager *event.Manager
}

func NewManager() *Manager {
	return &Manager{}
}

// SetEventManager sets the event manager for dispatching events.
func (m *Manager) SetEventManager(mgr *event.Manager) {
	m.eventManager = mgr
}

// Add appends mask. The same instance cannot be added twice.
func (m *Manager) Add(mask *Mask) error {
	if mask == nil {
		return ErrNilMask
	}
	if m.index(mask) >= 0 {
		return fmt.Errorf("cannot add %q: %w", mask.Name, ErrMaskPresent)
	}
	m.masks = append(m.masks, mask)
	m.dispatch(event.TypeMaskAdded, event.MaskData{Name: mask.Name})
	return nil
}

// Remove drops mask, deselecting it first. It returns false if mask is unknown.
func (m *Manager) Remove(mask *Mask) bool {
	i := m.index(mask)
	if i < 0 {
		return false
	}
	m.masks = append(m.masks[:i], m.masks[i+1:]...)
	if m.selected == mask {
		_ = m.Select(nil)
	}
	m.dispatch(event.TypeMaskRemoved, event.MaskData{Name: mask.Name})
	return true
}

// Masks returns the masks in insertion order.
func (m *Manager) Masks() []*Mask {
	return append([]*Mask(nil), m.masks...)
}

// EditProperty sets Name (string), Diagonal (float64) or Resolution (Size).
func (m *Manager) EditProperty(mask *Mask, property string, value interface{}) error {
	if m.index(mask) < 0 {
		return ErrMaskNotFound
	}

	var err error
	switch property {
	case PropName:
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("%s: %w %T", property, ErrWrongValueType, value)
		}
		mask.Name = s
	case PropDiagonal:
		d, ok := value.(float64)
		if !ok {
			return fmt.Errorf("%s: %w %T", property, ErrWrongValueType, value)
		}
		err = mask.SetDiagonal(d)
	case PropResolution:
		r, ok := value.(Size)
		if !ok {
			return fmt.Errorf("%s: %w %T", property, ErrWrongValueType, value)
		}
		err = mask.SetResolution(r)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownProperty, property)
	}
	if err != nil {
		return err
	}

	m.dispatch(event.TypeMaskEdited, event.MaskData{Name: mask.Name, Property: property, Value: value})
	return nil
}

// Select chooses the mask drawn behind the editor; nil for none.
func (m *Manager) Select(mask *Mask) error {
	if mask != nil && m.index(mask) < 0 {
		return ErrMaskNotFound
	}
	if mask == m.selected {
		return nil
	}
	m.selected = mask
	name := ""
	if mask != nil {
		name = mask.Name
	}
	m.dispatch(event.TypeMaskSelected, event.MaskData{Name: name})
	return nil
}

// Selected returns the selected mask, or nil.
func (m *Manager) Selected() *Mask { return m.selected }

func (m *Manager) index(mask *Mask) int {
	for i, x := range m.masks {
		if x == mask {
			return i
		}
	}
	return -1
}

func (m *Manager) dispatch(t event.Type, data interface{}) {
	if m.eventManager == nil {
		return
	}
	m.eventManager.Dispatch(t, data)
}

// --- Persistence ---

type fileFormat struct {
	Masks []*Mask `toml:"mask"`
}

// Load replaces the masks with those read from r. On error nothing changes.
func (m *Manager) Load(r io.Reader) error {
	var f fileFormat
	md, err := toml.NewDecoder(r).Decode(&f)
	if err != nil {
		return fmt.Errorf("error parsing masks: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		logger.Warnf("Masks: unknown keys ignored: %v", undecoded)
	}

	var result *multierror.Error
	for i, mask := range f.Masks {
		if mask == nil {
			continue
		}
		if err := mask.Validate(); err != nil {
			result = multierror.Append(result, fmt.Errorf("entry %d: %w", i, err))
			continue
		}
		// stored landscape whatever the file says
		_ = mask.SetResolution(mask.Resolution)
	}
	if err := result.ErrorOrNil(); err != nil {
		return err
	}

	m.masks = m.masks[:0]
	for _, mask := range f.Masks {
		if mask != nil {
			m.masks = append(m.masks, mask)
		}
	}
	if m.selected != nil && m.index(m.selected) < 0 {
		_ = m.Select(nil)
	}
	logger.Debugf("Masks: loaded %d mask(s)", len(m.masks))
	return nil
}

// Save writes the masks to w as TOML.
func (m *Manager) Save(w io.Writer) error {
	return toml.NewEncoder(w).Encode(fileFormat{Masks: m.masks})
}

// LoadFile loads masks from path. A missing file leaves the manager unchanged
// and is not an error.
func (m *Manager) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Infof("Masks: %s not found, keeping defaults", path)
			return nil
		}
		return fmt.Errorf("error opening masks file %s: %w", path, err)
	}
	defer f.Close()
	return m.Load(f)
}

// SaveFile writes the masks to path, creating parent directories.
func (m *Manager) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create masks directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating masks file %s: %w", path, err)
	}
	if err := m.Save(f); err != nil {
		f.Close()
		return fmt.Errorf("error writing masks file %s: %w", path, err)
	}
	return f.Close()
}

// Defaults returns a few common phone and tablet displays.
func Defaults() []*Mask {
	return []*Mask{
		{Name: "Phone 5.5\"", Diagonal: 5.5, Resolution: Size{Width: 1920, Height: 1080}},
		{Name: "Phone 6.1\"", Diagonal: 6.1, Resolution: Size{Width: 2532, Height: 1170}},
		{Name: "Tablet 10.1\"", Diagonal: 10.1, Resolution: Size{Width: 1920, Height: 1200}},
	}
}
