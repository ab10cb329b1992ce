package promesso

import (
	"log/slog"
	"sync/atomic"
)

// LogFunc is a log sink. It receives a message followed by alternating
// key/value pairs, the same convention as log/slog.
type LogFunc func(msg string, args ...any)

// Loggers holds the two sinks used when a handler fails: Log for domain
// errors and coding errors, Error for values that are not errors at all.
//
// The sinks can be swapped at any time with Configure. Every log call reads
// the current sink, so a change affects all later failures of chains that
// were compiled earlier. Loggers is safe for concurrent use.
type Loggers struct {
	log atomic.Pointer[LogFunc]
	err atomic.Pointer[LogFunc]
}

// NewLoggers creates a registry with the given sinks. A nil sink falls back
// to slog.Default().
func NewLoggers(logFn, errFn LogFunc) *Loggers {
	l := &Loggers{}
	l.log.Store(&defaultLog)
	l.err.Store(&defaultError)
	l.Configure(logFn, errFn)
	return l
}

// Configure replaces either or both sinks. nil arguments are ignored and leave
// the current sink in place.
func (l *Loggers) Configure(logFn, errFn LogFunc) {
	if logFn != nil {
		l.log.Store(&logFn)
	}
	if errFn != nil {
		l.err.Store(&errFn)
	}
}

// Log writes to the current log sink.
func (l *Loggers) Log(msg string, args ...any) { (*l.log.Load())(msg, args...) }

// Error writes to the current error sink.
func (l *Loggers) Error(msg string, args ...any) { (*l.err.Load())(msg, args...) }

// The defaults resolve slog.Default() on every call so that slog.SetDefault
// after startup is honored.
var (
	defaultLog   LogFunc = func(msg string, args ...any) { slog.Default().Info(msg, args...) }
	defaultError LogFunc = func(msg string, args ...any) { slog.Default().Error(msg, args...) }
)

var defaultLoggers = NewLoggers(nil, nil)

// DefaultLoggers returns the process-wide registry used by compilers that
// were not given one with WithLoggers.
func DefaultLoggers() *Loggers { return defaultLoggers }

// Logger reconfigures the process-wide sinks. Either argument may be nil to
// keep the current sink. It is safe to call at any time, including before any
// chain is compiled.
func Logger(logFn, errFn LogFunc) { defaultLoggers.Configure(logFn, errFn) }
