// Package logging builds the command-line logger.
package logging

import (
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level maps a -v count to a zap level: warnings and errors by default,
// info with -v, debug with -vv and per-record tracing with -vvv.
func Level(verbosity int) zapcore.Level {
	switch {
	case verbosity <= 0:
		return zap.WarnLevel
	case verbosity == 1:
		return zap.InfoLevel
	case verbosity == 2:
		return zap.DebugLevel
	default:
		return zapcore.Level(-verbosity + 1)
	}
}

// NewLogger builds a zap logger writing to stderr and returns it as a
// logr.Logger together with a function flushing buffered entries. format is
// "console" or "json".
func NewLogger(verbosity int, format string) (logr.Logger, func(), error) {
	var zapCfg zap.Config
	switch strings.ToLower(format) {
	case "", "console":
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		zapCfg.DisableStacktrace = true
	case "json":
		zapCfg = zap.NewProductionConfig()
		zapCfg.EncoderConfig.EncodeTime = zapcore.RFC3339NanoTimeEncoder
	default:
		return logr.Discard(), func() {}, errors.Errorf("logging: unknown format %q", format)
	}
	zapCfg.Level = zap.NewAtomicLevelAt(Level(verbosity))

	zl, err := zapCfg.Build()
	if err != nil {
		return logr.Discard(), func() {}, errors.Wrap(err, "logging: build logger")
	}
	return zapr.NewLogger(zl), func() { _ = zl.Sync() }, nil
}
