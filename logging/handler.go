// Package logging provides the engine's console logging handler. Components
// obtain their logger through For, which derives a component-tagged logger
// from the package-level default logger.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// Theme is the set of ANSI color codes used per log level.
type Theme struct {
	Debug, Info, Warn, Error, Timestamp, Component string
}

// DefaultTheme mirrors a typical tinted console theme: dim debug, plain
// info, yellow warn, red error.
func DefaultTheme() Theme {
	return Theme{
		Debug:     "\x1b[2m",
		Info:      "\x1b[0m",
		Warn:      "\x1b[33m",
		Error:     "\x1b[31m",
		Timestamp: "\x1b[2m",
		Component: "\x1b[36m",
	}
}

const reset = "\x1b[0m"

// HandlerOptions configures a Handler. A zero value uses sane defaults.
type HandlerOptions struct {
	Level      slog.Leveler
	NoColor    bool
	TimeFormat string
	Theme      Theme
}

// Handler is a compact slog.Handler that prints "time level group
// message attr=val…" with level-colored output, in the spirit of the
// console handlers the rest of the example pack reaches for instead of
// slog's stock text handler.
type Handler struct {
	opts   HandlerOptions
	out    io.Writer
	attrs  []slog.Attr
	groups []string
}

var _ slog.Handler = (*Handler)(nil)

// NewHandler builds a Handler writing to out.
func NewHandler(out io.Writer, opts *HandlerOptions) *Handler {
	o := HandlerOptions{}
	if opts != nil {
		o = *opts
	}
	if o.Level == nil {
		o.Level = slog.LevelInfo
	}
	if o.TimeFormat == "" {
		o.TimeFormat = time.TimeOnly
	}
	if (o.Theme == Theme{}) {
		o.Theme = DefaultTheme()
	}
	return &Handler{opts: o, out: out}
}

// Enabled implements slog.Handler.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *Handler) levelColor(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return h.opts.Theme.Error
	case level >= slog.LevelWarn:
		return h.opts.Theme.Warn
	case level >= slog.LevelInfo:
		return h.opts.Theme.Info
	default:
		return h.opts.Theme.Debug
	}
}

func (h *Handler) color(code, s string) string {
	if h.opts.NoColor || code == "" {
		return s
	}
	return code + s + reset
}

// Handle implements slog.Handler.
func (h *Handler) Handle(_ context.Context, rec slog.Record) error {
	var b strings.Builder
	b.WriteString(h.color(h.opts.Theme.Timestamp, rec.Time.Format(h.opts.TimeFormat)))
	b.WriteByte(' ')
	b.WriteString(h.color(h.levelColor(rec.Level), padLevel(rec.Level)))
	if len(h.groups) > 0 {
		b.WriteByte(' ')
		b.WriteString(h.color(h.opts.Theme.Component, strings.Join(h.groups, ".")))
	}
	b.WriteByte(' ')
	b.WriteString(rec.Message)

	for _, a := range h.attrs {
		fmt.Fprintf(&b, " %s=%v", a.Key, a.Value)
	}
	rec.Attrs(func(a slog.Attr) bool {
		fmt.Fprintf(&b, " %s=%v", a.Key, a.Value)
		return true
	})
	b.WriteByte('\n')
	_, err := io.WriteString(h.out, b.String())
	return err
}

func padLevel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "ERR"
	case level >= slog.LevelWarn:
		return "WRN"
	case level >= slog.LevelInfo:
		return "INF"
	default:
		return "DBG"
	}
}

// WithAttrs implements slog.Handler.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	n := *h
	n.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &n
}

// WithGroup implements slog.Handler.
func (h *Handler) WithGroup(name string) slog.Handler {
	n := *h
	n.groups = append(append([]string{}, h.groups...), name)
	return &n
}

var def = slog.New(NewHandler(os.Stderr, nil))

// Default returns the engine's default logger.
func Default() *slog.Logger { return def }

// For returns a logger scoped to a named component (spec §9, after
// lomse_logger.h's per-module logging macros), e.g. logging.For("beam").
func For(component string) *slog.Logger {
	return def.With("component", component)
}

// SetDefault overrides the default logger, e.g. to redirect to a file or
// raise the level for a batch render job.
func SetDefault(l *slog.Logger) { def = l }
