package logger

import (
	"go.uber.org/zap"
)

// New builds the application logger. Production gets JSON output at info
// level, everything else gets the human-readable development config.
func New(isProduction bool) (*zap.Logger, error) {
	if isProduction {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
