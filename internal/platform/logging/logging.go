// Package logging builds the process slog logger and holds the canonical
// attribute keys used across modules.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

const (
	KeyFeature = "feature"
	KeyKey     = "key"
	KeyState   = "state"
	KeySound   = "sound"
	KeyCity    = "city"
	KeyOp      = "op"
	KeyError   = "error"
)

func Feature(name string) slog.Attr { return slog.String(KeyFeature, name) }
func Key(key string) slog.Attr      { return slog.String(KeyKey, key) }
func State(state string) slog.Attr  { return slog.String(KeyState, state) }
func Sound(file string) slog.Attr   { return slog.String(KeySound, file) }
func City(id string) slog.Attr      { return slog.String(KeyCity, id) }
func Op(op string) slog.Attr        { return slog.String(KeyOp, op) }

func Err(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}

// ParseLevel maps debug|info|warn|error onto slog levels.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
	}
}

// New returns a logger writing text or json records to w. The returned
// LevelVar can be adjusted at runtime (config reload).
func New(w io.Writer, format, level string) (*slog.Logger, *slog.LevelVar, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, nil, err
	}
	levelVar := &slog.LevelVar{}
	levelVar.Set(lvl)
	opts := &slog.HandlerOptions{Level: levelVar}
	var handler slog.Handler
	switch strings.ToLower(format) {
	case "", "text":
		handler = slog.NewTextHandler(w, opts)
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		return nil, nil, fmt.Errorf("unknown log format %q", format)
	}
	return slog.New(handler), levelVar, nil
}

// OrDiscard returns l, or a logger that drops everything when l is nil.
func OrDiscard(l *slog.Logger) *slog.Logger {
	if l != nil {
		return l
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
