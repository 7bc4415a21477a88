// Package logging builds slate's diagnostic logger. The TUI owns stdout, so
// diagnostics only ever go to a rotated file; disabled logging is a nop
// logger and no file is touched.
package logging

import (
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Options struct {
	Enabled bool
	// Path of the log file. Empty derives <workspace>/slate.log.
	Path string
	// Dir is the workspace directory, used when Path is empty.
	Dir string
}

// New returns a file-only JSON logger with rotation. It never writes to
// stdout or stderr.
func New(opts Options) *zap.Logger {
	if !opts.Enabled {
		return zap.NewNop()
	}
	path := opts.Path
	if path == "" {
		path = filepath.Join(opts.Dir, "slate.log")
	}

	rotator := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 5,
		MaxAge:     30, // days
		Compress:   true,
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.MessageKey = "message"
	encoderConfig.LevelKey = "level"
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(rotator),
		zap.InfoLevel,
	)
	return zap.New(core, zap.AddCaller())
}
