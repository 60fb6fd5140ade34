package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level selects the minimum log level
type Level string

const (
	Debug Level = "debug"
	Info  Level = "info"
)

// NewZapLogger builds a sugared logger. The returned func flushes
// buffered entries and should be deferred by the caller.
func NewZapLogger(level Level) (*zap.SugaredLogger, func(), error) {
	lvl, err := zapcore.ParseLevel(string(level))
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	l, err := cfg.Build()
	if err != nil {
		return nil, nil, err
	}

	return l.Sugar(), func() { _ = l.Sync() }, nil
}
