package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log глобальный логгер сервиса. До Init пишет в никуда
var Log = zap.NewNop()

// Init настраивает production логгер с заданным уровнем (debug, info, warn, error)
func Init(level string) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	l, err := cfg.Build()
	if err != nil {
		return err
	}
	Log = l
	return nil
}

// Sync сбрасывает буферы перед выходом
func Sync() {
	_ = Log.Sync()
}
