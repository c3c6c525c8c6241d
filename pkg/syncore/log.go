package syncore

import "github.com/joeycumines/logiface"

// Logger is the diagnostic logging surface Semaphore (and so Mutex and
// RecursiveMutex) calls through to report permit donations; the Queue
// family accepts one through WithLogger but logs nothing. It is
// intentionally narrow: the package never forces a concrete backend on its
// consumers.
type Logger interface {
	Debug(msg string)
}

// logifaceLogger adapts a *logiface.Logger[logiface.Event] to Logger.
// logiface's builder chain is nil-safe end to end (Build and the returned
// Context both tolerate a nil receiver), so a zero-value logifaceLogger is
// always safe to call.
type logifaceLogger struct {
	l *logiface.Logger[logiface.Event]
}

// NewLogifaceLogger adapts l to Logger. A nil l is accepted and produces a
// Logger whose calls are all no-ops.
func NewLogifaceLogger(l *logiface.Logger[logiface.Event]) Logger {
	return logifaceLogger{l: l}
}

func (a logifaceLogger) Debug(msg string) {
	a.l.Debug().Log(msg)
}

// defaultLogger is used when a component is constructed without
// WithLogger: a logiface.Logger with no writer configured, so every call
// is a safe no-op rather than requiring callers to special-case a nil
// Logger.
var defaultLogger Logger = NewLogifaceLogger(logiface.New[logiface.Event]())
