package obs

import (
	"sync"

	"go.uber.org/zap"
)

var (
	loggerMu sync.RWMutex
	logger   *zap.Logger
)

// Logger returns the shared structured logger used across the service.
func Logger() *zap.Logger {
	loggerMu.RLock()
	l := logger
	loggerMu.RUnlock()
	if l != nil {
		return l
	}

	loggerMu.Lock()
	defer loggerMu.Unlock()
	if logger == nil {
		l, err := zap.NewProduction()
		if err != nil {
			l = zap.NewNop()
		}
		logger = l
	}
	return logger
}

// SetLogger swaps the shared logger and returns the previous one. Only
// intended for test use.
func SetLogger(l *zap.Logger) *zap.Logger {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	prev := logger
	logger = l
	return prev
}
