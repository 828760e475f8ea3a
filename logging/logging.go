// Package logging builds the zap logger shared by all server components.
//
// Log output goes to stderr and to a size-rotated file (lumberjack) so that
// long-running servers keep bounded disk usage. Components receive a
// *zap.SugaredLogger through their constructors rather than a package global,
// which keeps tests quiet via zap.NewNop().
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New creates a SugaredLogger writing to stderr and to filePath with
// rotation, annotating every entry with the calling file:line. When debug is
// true the level drops to Debug.
func New(filePath string, debug bool) *zap.SugaredLogger {
	rotated := &lumberjack.Logger{
		Filename:   filePath,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     7, // days
	}

	encCfg := zapcore.EncoderConfig{
		TimeKey:       "ts",
		LevelKey:      "level",
		NameKey:       "logger",
		CallerKey:     "caller",
		MessageKey:    "msg",
		StacktraceKey: "stack",
		LineEnding:    zapcore.DefaultLineEnding,
		EncodeLevel:   zapcore.CapitalLevelEncoder,
		EncodeTime:    zapcore.ISO8601TimeEncoder,
		EncodeCaller:  zapcore.ShortCallerEncoder,
	}
	encoder := zapcore.NewConsoleEncoder(encCfg)

	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}

	core := zapcore.NewTee(
		zapcore.NewCore(encoder, zapcore.AddSync(os.Stderr), level),
		zapcore.NewCore(encoder, zapcore.AddSync(rotated), level),
	)

	logger := zap.New(core, zap.AddCaller())
	return logger.Sugar()
}
