// Package clipboard copies keys between screens, through the system
// clipboard when enabled.
package clipboard

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	sysclip "github.com/atotto/clipboard"

	"github.com/bethropolis/mkedit/internal/logger"
	"github.com/bethropolis/mkedit/internal/macro"
)

// payloadFormat marks clipboard text produced by Copy.
const payloadFormat = "mkedit-keys/1"

var ErrNotKeys = errors.New("clipboard does not hold keys")

type payload struct {
	Format string       `toml:"format"`
	Keys   []*macro.Key `toml:"key"`
}

// Manager handles clipboard operations
type Manager struct {
	system   bool
	internal string

	readAll  func() (string, error)
	writeAll func(string) error
}

// NewManager creates a clipboard manager. With system set, copies also go
// to the system clipboard and pastes read from it.
func NewManager(system bool) *Manager {
	if system && sysclip.Unsupported {
		logger.Warnf("ClipboardManager: system clipboard unsupported here, using internal clipboard")
		system = false
	}
	return &Manager{
		system:   system,
		readAll:  sysclip.ReadAll,
		writeAll: sysclip.WriteAll,
	}
}

// System reports whether the system clipboard is in use.
func (m *Manager) System() bool { return m.system }

// Copy stores keys. An empty batch leaves the clipboard unchanged.
func (m *Manager) Copy(keys []*macro.Key) (bool, error) {
	if len(keys) == 0 {
		return false, nil
	}
	for _, k := range keys {
		if k == nil {
			return false, fmt.Errorf("cannot copy keys: %w", macro.ErrNilEntry)
		}
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(payload{Format: payloadFormat, Keys: keys}); err != nil {
		return false, fmt.Errorf("failed to encode keys: %w", err)
	}
	m.internal = buf.String()

	if m.system {
		if err := m.writeAll(m.internal); err != nil {
			// the internal copy still works
			logger.Warnf("ClipboardManager: system clipboard write failed: %v", err)
		}
	}
	logger.Debugf("ClipboardManager: Copied %d key(s)", len(keys))
	return true, nil
}

// Paste decodes the clipboard into new keys. Each call returns fresh
// instances with fresh IDs. It returns nil, nil when the clipboard is empty.
func (m *Manager) Paste() ([]*macro.Key, error) {
	text := m.internal
	if m.system {
		s, err := m.readAll()
		if err != nil {
			logger.Warnf("ClipboardManager: system clipboard read failed: %v", err)
		} else {
			text = s
		}
	}
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	var p payload
	if _, err := toml.Decode(text, &p); err != nil || p.Format != payloadFormat {
		return nil, ErrNotKeys
	}

	keys := make([]*macro.Key, 0, len(p.Keys))
	for _, k := range p.Keys {
		if k == nil {
			continue
		}
		// decoding already gave new instances; Clone assigns the new ID
		keys = append(keys, k.Clone())
	}
	logger.Debugf("ClipboardManager: Pasted %d key(s)", len(keys))
	return keys, nil
}
