// Package logging builds the structured logger shared by the CLI, the API
// server and the store.
package logging

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps a sugared zap logger with key/value helpers.
type Logger struct {
	SugaredLogger *zap.SugaredLogger
}

// New builds a logger. mode "prod" or "production" emits JSON at info level;
// anything else emits console output at debug level.
func New(mode string) (*Logger, error) {
	var cfg zap.Config
	switch strings.ToLower(mode) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	default:
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	zl, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &Logger{SugaredLogger: zl.Sugar()}, nil
}

// Nop returns a logger that discards everything, for tests.
func Nop() *Logger {
	return &Logger{SugaredLogger: zap.NewNop().Sugar()}
}

func (l *Logger) Sync() {
	_ = l.SugaredLogger.Sync()
}

func (l *Logger) Debug(msg string, keysAndValues ...any) {
	l.SugaredLogger.Debugw(msg, keysAndValues...)
}
func (l *Logger) Info(msg string, keysAndValues ...any) {
	l.SugaredLogger.Infow(msg, keysAndValues...)
}
func (l *Logger) Warn(msg string, keysAndValues ...any) {
	l.SugaredLogger.Warnw(msg, keysAndValues...)
}
func (l *Logger) Error(msg string, keysAndValues ...any) {
	l.SugaredLogger.Errorw(msg, keysAndValues...)
}

func (l *Logger) With(keysAndValues ...any) *Logger {
	return &Logger{SugaredLogger: l.SugaredLogger.With(keysAndValues...)}
}

// Badger adapts the logger to badger's Logger interface. Badger's info
// chatter is demoted to debug.
func (l *Logger) Badger() BadgerLogger {
	return BadgerLogger{s: l.SugaredLogger.With("component", "badger")}
}

// BadgerLogger satisfies badger.Logger.
type BadgerLogger struct {
	s *zap.SugaredLogger
}

func (b BadgerLogger) Errorf(format string, args ...any) { b.s.Errorf(strings.TrimSpace(format), args...) }
func (b BadgerLogger) Warningf(format string, args ...any) { b.s.Warnf(strings.TrimSpace(format), args...) }
func (b BadgerLogger) Infof(format string, args ...any) { b.s.Debugf(strings.TrimSpace(format), args...) }
func (b BadgerLogger) Debugf(format string, args ...any) { b.s.Debugf(strings.TrimSpace(format), args...) }
