package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"pranaam/config"
)

// New builds a zap logger from the log section of the config.
// Console output goes to stderr; when a file is configured the output is
// JSON with size-based rotation instead.
func New(cfg config.LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	var core zapcore.Core
	if cfg.File != "" {
		sink := zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
		})
		encoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
		core = zapcore.NewCore(encoder, sink, level)
	} else {
		encoderCfg := zap.NewDevelopmentEncoderConfig()
		encoder := zapcore.NewConsoleEncoder(encoderCfg)
		core = zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), level)
	}

	return zap.New(core), nil
}
