package stack

import (
	"sync/atomic"

	"go.uber.org/zap"
)

var defaultLogger atomic.Pointer[zap.Logger]

func init() {
	defaultLogger.Store(zap.NewNop())
}

// Logger returns the logger of factories and pools built without
// WithLogger. It discards everything until SetLogger is called.
func Logger() *zap.Logger {
	return defaultLogger.Load()
}

// SetLogger installs l as the default logger and returns the one it
// replaces. A nil l restores the no-op logger. Factories and pools built
// without WithLogger pick up the change on their next log line.
func SetLogger(l *zap.Logger) *zap.Logger {
	if l == nil {
		l = zap.NewNop()
	}
	return defaultLogger.Swap(l)
}
