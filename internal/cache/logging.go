package cache

import (
	"sync"

	"github.com/rs/zerolog"
)

var (
	pkgLoggerMu sync.RWMutex
	pkgLogger   = zerolog.Nop()
)

// SetLogger routes cache logs to l, tagged with component=cache. Until it
// is called the package logs nothing.
func SetLogger(l *zerolog.Logger) {
	pkgLoggerMu.Lock()
	defer pkgLoggerMu.Unlock()
	pkgLogger = l.With().Str("component", "cache").Logger()
}

func logger() zerolog.Logger {
	pkgLoggerMu.RLock()
	defer pkgLoggerMu.RUnlock()
	return pkgLogger
}
