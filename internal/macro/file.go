package macro

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/bethropolis/mkedit/internal/logger"
)

// Decode reads a TOML layout. Keys without an ID get a fresh one.
func Decode(r io.Reader) (*Setup, error) {
	var setup Setup
	metadata, err := toml.NewDecoder(r).Decode(&setup)
	if err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}
	if undecoded := metadata.Undecoded(); len(undecoded) > 0 {
		logger.Warnf("Layout: Unrecognized keys: %v", undecoded)
	}
	for _, screen := range setup.Screens {
		if screen == nil {
			continue
		}
		for _, k := range screen.Keys {
			if k != nil {
				k.EnsureID()
			}
		}
	}
	if err := setup.Validate(); err != nil {
		return nil, fmt.Errorf("invalid layout: %w", err)
	}
	return &setup, nil
}

// Encode writes the layout as TOML.
func Encode(w io.Writer, setup *Setup) error {
	if err := toml.NewEncoder(w).Encode(setup); err != nil {
		return fmt.Errorf("failed to encode layout: %w", err)
	}
	return nil
}

// LoadFile reads a layout file.
func LoadFile(path string) (*Setup, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open layout '%s': %w", path, err)
	}
	defer f.Close()

	setup, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("layout '%s': %w", path, err)
	}
	logger.Infof("Layout: Loaded %d screen(s) from %s", len(setup.Screens), path)
	return setup, nil
}

// SaveFile writes the layout through a temporary file so a failed write
// never truncates the previous version.
func SaveFile(path string, setup *Setup) error {
	if err := setup.Validate(); err != nil {
		return fmt.Errorf("refusing to save invalid layout: %w", err)
	}
	var buf bytes.Buffer
	if err := Encode(&buf, setup); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".mkedit-*.toml")
	if err != nil {
		return fmt.Errorf("failed to create temporary file for '%s': %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write '%s': %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write '%s': %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace '%s': %w", path, err)
	}
	logger.Infof("Layout: Saved %d screen(s) to %s", len(setup.Screens), path)
	return nil
}
