// Package logger builds the zap loggers used by every binary
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New logs JSON to a rotated file and to stderr. Development builds get a
// human readable console at debug level; production keeps stderr to warnings.
func New(logFilePath string, isProd bool) *zap.Logger {
	var consoleEncoder zapcore.Encoder
	consoleLevel := zap.DebugLevel
	if isProd {
		consoleEncoder = zapcore.NewJSONEncoder(encoderConfig())
		consoleLevel = zap.WarnLevel
	} else {
		consoleEncoder = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	}

	consoleCore := zapcore.NewCore(
		consoleEncoder,
		zapcore.Lock(os.Stderr),
		consoleLevel,
	)

	core := zapcore.NewTee(fileCore(logFilePath), consoleCore)
	return zap.New(core, zap.AddCaller())
}

// NewIsolated logs only to the file. The TUI owns the terminal and the MCP
// server owns stdio, so neither may write logs there.
func NewIsolated(logFilePath string) *zap.Logger {
	return zap.New(fileCore(logFilePath), zap.AddCaller())
}

func fileCore(logFilePath string) zapcore.Core {
	rotator := &lumberjack.Logger{
		Filename:   logFilePath,
		MaxSize:    10, // megabytes
		MaxBackups: 5,
		MaxAge:     30, // days
		Compress:   true,
	}

	return zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig()),
		zapcore.AddSync(rotator),
		zap.InfoLevel,
	)
}

func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "timestamp"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.MessageKey = "message"
	cfg.LevelKey = "level"
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return cfg
}
