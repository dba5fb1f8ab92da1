// Package vlog is the logging surface shared by every package in this
// module. It blends two teacher patterns: core/log's leveled Severity type
// (kept verbatim, including its string values; config maps
// VIL_MIN_LOG_LEVEL's own lowercase level names onto these values) and gogpu-wgpu/hal's atomic, silent-by-default
// *slog.Logger (SetLogger/Logger), which is a better fit for a pure-library
// core than core/log's full context/channel/handler pipeline - this core
// has no GUI process of its own to host a log viewer in, so the heavier
// machinery of core/log/channel.go and core/log/broadcast.go is not carried
// over; see DESIGN.md.
package vlog

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/nyorain/vil/internal/keys"
)

// Severity defines the severity of a logging message. Values intentionally
// match core/log/severity.go so that config.VIL_MIN_LOG_LEVEL's textual
// levels (trace|debug|info|warn|error, per spec §6) map onto the same
// ordering.
type Severity int32

const (
	Verbose Severity = 0
	Debug   Severity = 1
	Info    Severity = 2
	Warning Severity = 3
	Error   Severity = 4
	Fatal   Severity = 5
)

func (s Severity) String() string {
	switch s {
	case Verbose:
		return "Verbose"
	case Debug:
		return "Debug"
	case Info:
		return "Info"
	case Warning:
		return "Warning"
	case Error:
		return "Error"
	case Fatal:
		return "Fatal"
	default:
		return "?"
	}
}

func (s Severity) slogLevel() slog.Level {
	switch s {
	case Verbose:
		return slog.Level(-8)
	case Debug:
		return slog.LevelDebug
	case Info:
		return slog.LevelInfo
	case Warning:
		return slog.LevelWarn
	case Error, Fatal:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger configures the logger used by this module. By default vil
// produces no log output; pass nil to restore that default. Safe for
// concurrent use - mirrors gogpu-wgpu/hal.SetLogger.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Logger returns the currently configured logger.
func Logger() *slog.Logger { return loggerPtr.Load() }

type fieldsKeyTy string

const fieldsKey = fieldsKeyTy("vlog.fields")

// With returns a derived context carrying additional key/value pairs that
// will be attached to any message later logged through it, mirroring
// core/log/context.go's value-carrying contexts without that package's
// full Logger/Handler abstraction.
func With(ctx context.Context, args ...any) context.Context {
	prev, _ := ctx.Value(fieldsKey).([]any)
	next := append(append([]any{}, prev...), args...)
	return keys.WithValue(ctx, fieldsKey, next)
}

func fields(ctx context.Context) []any {
	f, _ := ctx.Value(fieldsKey).([]any)
	return f
}

func log(ctx context.Context, sev Severity, msg string, args ...any) {
	l := Logger()
	lvl := sev.slogLevel()
	if !l.Enabled(ctx, lvl) {
		return
	}
	all := append(append([]any{}, fields(ctx)...), args...)
	l.Log(ctx, lvl, msg, all...)
}

func Verbosef(ctx context.Context, msg string, args ...any) { log(ctx, Verbose, msg, args...) }
func Debugf(ctx context.Context, msg string, args ...any)   { log(ctx, Debug, msg, args...) }
func Infof(ctx context.Context, msg string, args ...any)    { log(ctx, Info, msg, args...) }
func Warnf(ctx context.Context, msg string, args ...any)    { log(ctx, Warning, msg, args...) }
func Errorf(ctx context.Context, msg string, args ...any)   { log(ctx, Error, msg, args...) }

// ErrorErr logs err at Error severity with an additional "err" field, the
// common case of surfacing a vilerr.Tiered diagnostic (spec §7 propagation
// policy: submission/completion errors are logged, never panicked).
func ErrorErr(ctx context.Context, msg string, err error, args ...any) {
	log(ctx, Error, msg, append(args, "err", err)...)
}
