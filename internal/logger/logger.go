// Package logger owns the process-wide zap logger. Components receive
// children of it through Named.
package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log is the global logger. It discards everything until Init runs.
var Log = zap.NewNop()

// Sugar is Log's sugared form, rebuilt by Init.
var Sugar = Log.Sugar()

// FileConfig describes the rotated log file. An empty Path disables it.
type FileConfig struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// DefaultFileConfig returns the rotation used when only a path is given.
func DefaultFileConfig(path string) FileConfig {
	return FileConfig{
		Path:       path,
		MaxSizeMB:  20,
		MaxBackups: 3,
		MaxAgeDays: 14,
		Compress:   true,
	}
}

func (fc FileConfig) writer() io.Writer {
	return &lumberjack.Logger{
		Filename:   fc.Path,
		MaxSize:    fc.MaxSizeMB,
		MaxBackups: fc.MaxBackups,
		MaxAge:     fc.MaxAgeDays,
		Compress:   fc.Compress,
		LocalTime:  true,
	}
}

var consoleEncoding = zapcore.EncoderConfig{
	TimeKey:          "time",
	LevelKey:         "level",
	NameKey:          "logger",
	MessageKey:       "msg",
	CallerKey:        "caller",
	EncodeTime:       zapcore.TimeEncoderOfLayout("15:04:05"),
	EncodeLevel:      zapcore.CapitalColorLevelEncoder,
	EncodeName:       zapcore.FullNameEncoder,
	EncodeCaller:     zapcore.ShortCallerEncoder,
	EncodeDuration:   zapcore.StringDurationEncoder,
	ConsoleSeparator: " ",
}

// The file gets one JSON record per line so it can be grepped and parsed.
var fileEncoding = zapcore.EncoderConfig{
	TimeKey:        "time",
	LevelKey:       "level",
	NameKey:        "logger",
	MessageKey:     "msg",
	CallerKey:      "caller",
	EncodeTime:     zapcore.ISO8601TimeEncoder,
	EncodeLevel:    zapcore.CapitalLevelEncoder,
	EncodeDuration: zapcore.MillisDurationEncoder,
	EncodeCaller:   zapcore.ShortCallerEncoder,
}

// New builds a logger at level that writes human readable lines to
// console (skipped when nil) and JSON to the file in fc.
func New(level string, fc FileConfig, console io.Writer) *zap.Logger {
	lvl := ParseLevel(level)

	var cores []zapcore.Core
	if console != nil {
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(consoleEncoding), zapcore.AddSync(console), lvl))
	}
	if fc.Path != "" {
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(fileEncoding), zapcore.AddSync(fc.writer()), lvl))
	}
	if len(cores) == 0 {
		return zap.NewNop()
	}
	return zap.New(zapcore.NewTee(cores...), zap.AddCaller())
}

// InitWithFileConfig installs a new global logger. consoleOutput sends
// records to stdout as well as the file; tests turn it off.
func InitWithFileConfig(level string, fc FileConfig, consoleOutput bool) error {
	var console io.Writer
	if consoleOutput {
		console = os.Stdout
	}
	Replace(New(level, fc, console))
	return nil
}

// Replace swaps the global logger, flushing the previous one.
func Replace(l *zap.Logger) {
	_ = Log.Sync()
	Log = l
	Sugar = l.Sugar()
}

// ParseLevel converts a level name such as "debug" or "WARN". Unknown
// names map to info.
func ParseLevel(level string) zapcore.Level {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}

// Named returns a child logger for a component, e.g. "scene" or "shader".
func Named(component string) *zap.Logger {
	return Log.Named(component)
}

// Sync flushes buffered records.
func Sync() {
	_ = Log.Sync()
}

func Info(msg string, fields ...zap.Field) {
	Log.Info(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	Log.Error(msg, fields...)
}
