package logger

import (
	"context"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"
)

const tagKey = "tag" // The slog attribute key used for filtering tags

// filteringHandler wraps a base slog.Handler and drops records by tag or package.
type filteringHandler struct {
	baseHandler slog.Handler
	cfg         *Config
}

func newFilteringHandler(base slog.Handler, cfg *Config) *filteringHandler {
	return &filteringHandler{
		baseHandler: base,
		cfg:         cfg,
	}
}

// Enabled checks if the level is enabled by the base handler.
func (h *filteringHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.baseHandler.Enabled(ctx, level)
}

// Handle applies filtering logic before passing the record to the base handler.
func (h *filteringHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.cfg == nil || h.allows(r) {
		return h.baseHandler.Handle(ctx, r)
	}
	return nil
}

func (h *filteringHandler) allows(r slog.Record) bool {
	if pkg := recordPackage(r); pkg != "" {
		if !passes(pkg, h.cfg.enabledPackagesSet, h.cfg.disabledPackagesSet) {
			return false
		}
	}

	tag := ""
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == tagKey {
			tag = strings.ToLower(a.Value.String())
			return false
		}
		return true
	})
	if tag == "" {
		// untagged records are dropped only when a tag allow-list is active
		return h.cfg.enabledTagsSet == nil
	}
	return passes(tag, h.cfg.enabledTagsSet, h.cfg.disabledTagsSet)
}

// passes reports whether key survives an allow-list and a deny-list. Deny wins.
func passes(key string, enabled, disabled map[string]struct{}) bool {
	key = strings.ToLower(key)
	if disabled != nil {
		if _, found := disabled[key]; found {
			return false
		}
	}
	if enabled != nil {
		if _, found := enabled[key]; !found {
			return false
		}
	}
	return true
}

// recordPackage returns the directory name of the file that produced r.
func recordPackage(r slog.Record) string {
	if r.PC == 0 {
		return ""
	}
	frame, _ := runtime.CallersFrames([]uintptr{r.PC}).Next()
	if frame.File == "" {
		return ""
	}
	return filepath.Base(filepath.Dir(frame.File))
}

// WithAttrs returns a new handler with attributes added.
func (h *filteringHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return newFilteringHandler(h.baseHandler.WithAttrs(attrs), h.cfg)
}

// WithGroup returns a new handler with a group added.
func (h *filteringHandler) WithGroup(name string) slog.Handler {
	return newFilteringHandler(h.baseHandler.WithGroup(name), h.cfg)
}
