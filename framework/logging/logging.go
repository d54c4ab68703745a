// Package logging builds the application's zap logger from configuration.
package logging

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/km-arc/go-mvc/framework/config"
)

// New returns a logger suited to cfg.Env:
//
//	production → JSON, info and above
//	testing    → discards everything
//	otherwise  → console, debug and above unless APP_DEBUG=false
func New(cfg *config.AppConfig) (*zap.Logger, error) {
	var (
		logger *zap.Logger
		err    error
	)

	switch cfg.Env {
	case "production":
		logger, err = zap.NewProduction()
	case "testing":
		return zap.NewNop(), nil
	default:
		zc := zap.NewDevelopmentConfig()
		if !cfg.Debug {
			zc.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
		}
		logger, err = zc.Build()
	}

	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger.Named(cfg.Name), nil
}
