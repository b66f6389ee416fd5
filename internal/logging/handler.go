package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Handler is a slog.Handler writing one human-readable line per record:
//
//	15:04:05 WARN  probe failed url=https://example.com/rss.xml status=404
//
// Colors are used when the writer supports them. Secret-looking attributes
// and URL credentials are masked.
type Handler struct {
	level  slog.Leveler
	out    io.Writer
	mu     *sync.Mutex
	color  bool
	attrs  []slog.Attr
	prefix string
}

// NewHandler creates a Handler writing to out.
func NewHandler(out io.Writer, opts *slog.HandlerOptions) *Handler {
	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}
	return &Handler{
		level: level,
		out:   out,
		mu:    &sync.Mutex{},
		color: SupportsColor(out),
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle writes r as a single line.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var sb strings.Builder

	if !r.Time.IsZero() {
		sb.WriteString(h.paint(r.Time.Format(time.TimeOnly), color.FgHiBlack))
		sb.WriteByte(' ')
	}

	label := levelLabel(r.Level)
	sb.WriteString(h.paint(fmt.Sprintf("%-5s", label), levelColor(r.Level)...))
	sb.WriteByte(' ')
	sb.WriteString(r.Message)

	for _, a := range h.attrs {
		h.writeAttr(&sb, "", a)
	}
	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(&sb, h.prefix, a)
		return true
	})
	sb.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, sb.String())
	return err
}

func (h *Handler) writeAttr(sb *strings.Builder, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		p := prefix
		if a.Key != "" {
			p += a.Key + "."
		}
		for _, ga := range a.Value.Group() {
			h.writeAttr(sb, p, ga)
		}
		return
	}

	key := prefix + a.Key
	var value string
	switch {
	case ShouldMask(a.Key):
		value = MaskValue(a.Value.String())
	case a.Value.Kind() == slog.KindString:
		value = MaskURL(a.Value.String())
	default:
		value = a.Value.String()
	}

	sb.WriteByte(' ')
	sb.WriteString(h.paint(key, color.FgCyan))
	sb.WriteByte('=')
	sb.WriteString(quoteIfNeeded(value))
}

// WithAttrs returns a new Handler with the given attributes.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	newH := *h
	newH.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	newH.attrs = append(newH.attrs, h.attrs...)
	for _, a := range attrs {
		if h.prefix != "" {
			a.Key = h.prefix + a.Key
		}
		newH.attrs = append(newH.attrs, a)
	}
	return &newH
}

// WithGroup returns a new Handler whose later attribute keys are prefixed
// with name.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	newH := *h
	newH.prefix = h.prefix + name + "."
	return &newH
}

func (h *Handler) paint(s string, attrs ...color.Attribute) string {
	if !h.color {
		return s
	}
	c := color.New(attrs...)
	c.EnableColor()
	return c.Sprint(s)
}

func levelLabel(l slog.Level) string {
	if l <= LevelTrace {
		return "TRACE"
	}
	return l.String()
}

func levelColor(l slog.Level) []color.Attribute {
	switch {
	case l >= slog.LevelError:
		return []color.Attribute{color.FgRed, color.Bold}
	case l >= slog.LevelWarn:
		return []color.Attribute{color.FgYellow}
	case l >= slog.LevelInfo:
		return []color.Attribute{color.FgGreen}
	case l > LevelTrace:
		return []color.Attribute{color.FgMagenta}
	default:
		return []color.Attribute{color.FgHiBlack}
	}
}

func quoteIfNeeded(s string) string {
	if s == "" {
		return `""`
	}
	if strings.ContainsAny(s, " \t\n\"=") {
		return strconv.Quote(s)
	}
	return s
}
