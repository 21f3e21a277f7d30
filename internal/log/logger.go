// Package log configures the application-wide slog logger.
//
// Console output goes to stderr as a compact one-line text format or JSON.
// When a file is configured, records are also written as JSON to a rotating
// file managed by lumberjack.
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/philipparndt/gomeasure/version"
	lj "gopkg.in/natefinch/lumberjack.v2"
)

// Environment variables read by FromEnv
const (
	EnvLevel  = "GOMEASURE_LOG_LEVEL"
	EnvFormat = "GOMEASURE_LOG_FORMAT"
	EnvSource = "GOMEASURE_LOG_SOURCE"
	EnvFile   = "GOMEASURE_LOG_FILE"
)

// Options controls logger initialization
type Options struct {
	Level     string // debug, info, warn, error
	Format    string // console or json
	AddSource bool
	File      string // optional rotated log file
}

var (
	mu      sync.RWMutex
	current *slog.Logger
	closers []io.Closer
)

// L returns the application logger, initializing it from the environment on
// first use
func L() *slog.Logger {
	mu.RLock()
	l := current
	mu.RUnlock()
	if l != nil {
		return l
	}
	Init(FromEnv())
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Init replaces the application logger and slog's default
func Init(opts Options) {
	logger, closer := New(opts, os.Stderr)

	mu.Lock()
	for _, c := range closers {
		c.Close()
	}
	closers = nil
	if closer != nil {
		closers = append(closers, closer)
	}
	current = logger
	mu.Unlock()

	slog.SetDefault(logger)
}

// Close flushes and closes the log file, if any
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	var first error
	for _, c := range closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	closers = nil
	return first
}

// New builds a logger writing console output to w. The returned closer is
// non-nil when a log file was opened.
func New(opts Options, w io.Writer) (*slog.Logger, io.Closer) {
	level := ParseLevel(opts.Level)
	handlerOpts := &slog.HandlerOptions{Level: level, AddSource: opts.AddSource}

	var console slog.Handler
	if strings.EqualFold(strings.TrimSpace(opts.Format), "json") {
		console = slog.NewJSONHandler(w, handlerOpts)
	} else {
		console = &lineHandler{level: level, addSource: opts.AddSource, w: w, mu: &sync.Mutex{}}
	}

	handler := console
	var closer io.Closer
	if file := strings.TrimSpace(opts.File); file != "" {
		rot := &lj.Logger{Filename: file, MaxSize: 10, MaxBackups: 3, MaxAge: 28, Compress: true}
		handler = fanout{console, slog.NewJSONHandler(rot, handlerOpts)}
		closer = rot
	}

	logger := slog.New(handler).With(
		slog.String("app", "gomeasure"),
		slog.String("ver", version.GetVersion()),
	)
	return logger, closer
}

// FromEnv reads Options from GOMEASURE_LOG_* variables
func FromEnv() Options {
	return Options{
		Level:     getenv(EnvLevel, "info"),
		Format:    getenv(EnvFormat, "console"),
		AddSource: strings.EqualFold(os.Getenv(EnvSource), "true"),
		File:      os.Getenv(EnvFile),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// WithComponent returns a logger tagged with a component name
func WithComponent(name string) *slog.Logger {
	return L().With(slog.String("component", name))
}

// WithOperation tags a logger with an operation name
func WithOperation(l *slog.Logger, op string) *slog.Logger {
	return l.With(slog.String("op", op))
}

// ParseLevel maps a level name to a slog level. Unknown names mean info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// fanout sends each record to every handler that accepts its level
type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	var first error
	for _, h := range f {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (f fanout) WithGroup(name string) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithGroup(name)
	}
	return out
}

// lineHandler prints "time LVL message key=value ..." lines
type lineHandler struct {
	level     slog.Level
	addSource bool
	w         io.Writer
	mu        *sync.Mutex
	attrs     []slog.Attr
	prefix    string
}

func (h *lineHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *lineHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	ts := r.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	b.WriteString(ts.Format("15:04:05.000"))
	b.WriteByte(' ')
	b.WriteString(levelTag(r.Level))
	b.WriteByte(' ')
	b.WriteString(r.Message)

	for _, a := range h.attrs {
		writeAttr(&b, "", a)
	}
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(&b, h.prefix, a)
		return true
	})
	if h.addSource {
		if src := r.Source(); src != nil {
			b.WriteString(" src=")
			b.WriteString(src.File)
			b.WriteByte(':')
			b.WriteString(strconv.Itoa(src.Line))
		}
	}
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, b.String())
	return err
}

func (h *lineHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append([]slog.Attr(nil), h.attrs...)
	for _, a := range attrs {
		a.Key = h.prefix + a.Key
		clone.attrs = append(clone.attrs, a)
	}
	return &clone
}

func (h *lineHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.prefix = h.prefix + name + "."
	return &clone
}

func writeAttr(b *strings.Builder, prefix string, a slog.Attr) {
	if a.Equal(slog.Attr{}) {
		return
	}
	v := a.Value.Resolve()
	if v.Kind() == slog.KindGroup {
		for _, ga := range v.Group() {
			writeAttr(b, prefix+a.Key+".", ga)
		}
		return
	}
	b.WriteByte(' ')
	b.WriteString(prefix)
	b.WriteString(a.Key)
	b.WriteByte('=')
	switch v.Kind() {
	case slog.KindFloat64:
		b.WriteString(strconv.FormatFloat(v.Float64(), 'g', 6, 64))
	case slog.KindString:
		s := v.String()
		if strings.ContainsAny(s, " =\"") {
			s = strconv.Quote(s)
		}
		b.WriteString(s)
	default:
		b.WriteString(v.String())
	}
}

func levelTag(l slog.Level) string {
	switch {
	case l >= slog.LevelError:
		return "ERR"
	case l >= slog.LevelWarn:
		return "WRN"
	case l >= slog.LevelInfo:
		return "INF"
	default:
		return "DBG"
	}
}
