// Package logger builds the shared zap logger for the service.
package logger

import "go.uber.org/zap"

// New returns a zap.Logger configured for the given environment.
// Production gets JSON sampling output, everything else gets the
// human-readable development console.
func New(env string) *zap.Logger {
	var (
		l   *zap.Logger
		err error
	)
	if env == "production" {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		return zap.NewNop()
	}
	return l
}
