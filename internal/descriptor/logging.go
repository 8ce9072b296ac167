package descriptor

import (
	"sync"

	"github.com/rs/zerolog"
)

var (
	loggerMu sync.RWMutex
	pkgLog   = zerolog.Nop()
)

// SetLogger sets the package-level logger, tagged with component=descriptor.
func SetLogger(l *zerolog.Logger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	pkgLog = l.With().Str("component", "descriptor").Logger()
}

func logger() zerolog.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return pkgLog
}
