package logger

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"sync"
	"time"
)

const (
	ansiReset  = "\033[0m"
	ansiRed    = "\033[31m"
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
	ansiCyan   = "\033[36m"
	ansiGray   = "\033[90m"
)

// textHandler renders records as single-line "[time] [LEVEL] msg k=v ..."
// text, with optional ANSI colors for terminal output.
type textHandler struct {
	w     io.Writer
	mu    *sync.Mutex
	level slog.Leveler
	attrs []slog.Attr
	color bool
}

func newTextHandler(w io.Writer, level slog.Leveler, color bool) *textHandler {
	return &textHandler{w: w, mu: &sync.Mutex{}, level: level, color: color}
}

func (h *textHandler) Enabled(_ context.Context, level slog.Level) bool {
	threshold := slog.LevelInfo
	if h.level != nil {
		threshold = h.level.Level()
	}
	return level >= threshold
}

func (h *textHandler) Handle(_ context.Context, r slog.Record) error {
	// Assemble the line in a local buffer; the mutex guards only the write.
	var b []byte
	b = append(b, '[')
	b = r.Time.AppendFormat(b, "2006-01-02 15:04:05")
	b = append(b, "] ["...)
	b = h.appendLevel(b, r.Level)
	b = append(b, "] "...)
	b = append(b, r.Message...)

	for _, a := range h.attrs {
		b = h.appendAttr(b, a)
	}
	r.Attrs(func(a slog.Attr) bool {
		b = h.appendAttr(b, a)
		return true
	})
	b = append(b, '\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.w.Write(b)
	return err
}

func (h *textHandler) appendLevel(b []byte, level slog.Level) []byte {
	label, tint := "ERROR", ansiRed
	switch {
	case level < slog.LevelInfo:
		label, tint = "DEBUG", ansiGray
	case level < slog.LevelWarn:
		label, tint = "INFO", ansiGreen
	case level < slog.LevelError:
		label, tint = "WARN", ansiYellow
	}

	if !h.color {
		return append(b, label...)
	}
	b = append(b, tint...)
	b = append(b, label...)
	return append(b, ansiReset...)
}

func (h *textHandler) appendAttr(b []byte, a slog.Attr) []byte {
	if a.Equal(slog.Attr{}) {
		return b
	}

	b = append(b, ' ')
	if h.color {
		b = append(b, ansiCyan...)
		b = append(b, a.Key...)
		b = append(b, ansiReset...)
	} else {
		b = append(b, a.Key...)
	}
	b = append(b, '=')
	return appendValue(b, a.Value.Resolve())
}

func appendValue(b []byte, v slog.Value) []byte {
	switch v.Kind() {
	case slog.KindInt64:
		return strconv.AppendInt(b, v.Int64(), 10)
	case slog.KindUint64:
		return strconv.AppendUint(b, v.Uint64(), 10)
	case slog.KindFloat64:
		return strconv.AppendFloat(b, v.Float64(), 'f', 3, 64)
	case slog.KindBool:
		return strconv.AppendBool(b, v.Bool())
	case slog.KindTime:
		return v.Time().AppendFormat(b, time.RFC3339)
	default:
		// Strings, durations and arbitrary values all format sensibly
		// through slog's own stringer.
		return append(b, v.String()...)
	}
}

func (h *textHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &clone
}

// WithGroup flattens groups: keys are emitted without a group prefix,
// which keeps the single-line format readable.
func (h *textHandler) WithGroup(string) slog.Handler { return h }
