package logging

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	baseOnce sync.Once
	baseLog  *zap.SugaredLogger
)

func base() *zap.SugaredLogger {
	baseOnce.Do(func() {
		cfg := zap.NewProductionConfig()
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		logger, err := cfg.Build(zap.AddCallerSkip(2))
		if err != nil {
			logger = zap.NewNop()
		}
		baseLog = logger.Sugar()
	})
	return baseLog
}

type zapLogger struct {
	sugar *zap.SugaredLogger
}

func (l *zapLogger) Debug(format string, args ...any) { l.sugar.Debugf(format, args...) }
func (l *zapLogger) Info(format string, args ...any)  { l.sugar.Infof(format, args...) }
func (l *zapLogger) Warn(format string, args ...any)  { l.sugar.Warnf(format, args...) }
func (l *zapLogger) Error(format string, args ...any) { l.sugar.Errorf(format, args...) }

// NewComponentLogger returns the default application logger scoped to a component.
func NewComponentLogger(component string) Logger {
	return &zapLogger{sugar: base().Named(component)}
}
