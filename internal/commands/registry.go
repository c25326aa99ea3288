// Package commands holds the ':' command registry shared by the editor and plugins.
package commands

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/bethropolis/mkedit/internal/logger"
)

// Func runs a command with the words typed after its name.
type Func func(args []string) error

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrEmptyName      = errors.New("command name cannot be empty")
	ErrDuplicate      = errors.New("command already registered")
)

// Registry maps command names to functions.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]Func
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]Func)}
}

// Register adds a command. Names are case-sensitive and may not contain spaces.
func (r *Registry) Register(name string, fn Func) error {
	if name == "" || strings.ContainsAny(name, " \t") {
		return fmt.Errorf("cannot register %q: %w", name, ErrEmptyName)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.commands[name]; exists {
		return fmt.Errorf("cannot register '%s': %w", name, ErrDuplicate)
	}
	r.commands[name] = fn
	logger.DebugTagf("commands", "Registered command ':%s'", name)
	return nil
}

// Execute parses line as "name arg..." and runs the command.
// An empty line does nothing.
func (r *Registry) Execute(line string) error {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return nil
	}
	r.mu.RLock()
	fn, exists := r.commands[parts[0]]
	r.mu.RUnlock()
	if !exists {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, parts[0])
	}
	logger.Debugf("Commands: Executing ':%s' with args %v", parts[0], parts[1:])
	return fn(parts[1:])
}

// Names lists the registered commands alphabetically.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
