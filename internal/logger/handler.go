package logger

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const tagKey = "tag" // The slog attribute key used for filtering tags

// filterSet is an allow/deny list. Deny wins; an empty allow list allows all.
type filterSet struct {
	enabled  map[string]struct{}
	disabled map[string]struct{}
}

func newFilterSet(enabled, disabled []string) filterSet {
	return filterSet{enabled: sliceToSet(enabled), disabled: sliceToSet(disabled)}
}

func (f filterSet) allows(v string) bool {
	v = strings.ToLower(v)
	if _, denied := f.disabled[v]; denied {
		return false
	}
	if f.enabled == nil {
		return true
	}
	_, ok := f.enabled[v]
	return ok
}

func (f filterSet) active() bool {
	return f.enabled != nil || f.disabled != nil
}

// filteringHandler drops records by source package, source file and tag
// before handing them to the base handler.
type filteringHandler struct {
	baseHandler slog.Handler
	cfg         *Config
}

func newFilteringHandler(base slog.Handler, cfg *Config) *filteringHandler {
	return &filteringHandler{baseHandler: base, cfg: cfg}
}

func (h *filteringHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.baseHandler.Enabled(ctx, level)
}

func (h *filteringHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.cfg == nil || h.keep(r) {
		return h.baseHandler.Handle(ctx, r)
	}
	return nil
}

// keep applies the source filters, then the tag filter. Records without
// source information skip the source filters.
func (h *filteringHandler) keep(r slog.Record) bool {
	if pkg, file, ok := recordSource(r); ok && (h.cfg.packages.active() || h.cfg.files.active()) {
		if !h.cfg.packages.allows(pkg) {
			trace("drop %q: package %s", r.Message, pkg)
			return false
		}
		if !h.cfg.files.allows(file) {
			trace("drop %q: file %s", r.Message, file)
			return false
		}
	}

	var tag string
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == tagKey {
			tag = a.Value.String()
			return false
		}
		return true
	})
	if h.cfg.tags.active() && !h.cfg.tags.allows(tag) {
		trace("drop %q: tag %q", r.Message, tag)
		return false
	}
	return true
}

// recordSource returns the package directory and file name of the call site.
func recordSource(r slog.Record) (pkg, file string, ok bool) {
	if r.PC == 0 {
		return "", "", false
	}
	frame, _ := runtime.CallersFrames([]uintptr{r.PC}).Next()
	if frame.File == "" {
		return "", "", false
	}
	return filepath.Base(filepath.Dir(frame.File)), filepath.Base(frame.File), true
}

func trace(format string, args ...any) {
	if debugFilter {
		fmt.Fprintf(os.Stderr, "[log filter] "+format+"\n", args...)
	}
}

func (h *filteringHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return newFilteringHandler(h.baseHandler.WithAttrs(attrs), h.cfg)
}

func (h *filteringHandler) WithGroup(name string) slog.Handler {
	return newFilteringHandler(h.baseHandler.WithGroup(name), h.cfg)
}
