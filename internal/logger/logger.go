// Package logger provides the structured logger shared by every analysis
// component. It wraps zap with a console encoder for local development
// and a rotated JSON file for anything durable, combined with zapcore.Tee.
package logger

import (
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log is the package logger. It defaults to a no-op logger so importing
// this library never forces a caller to call Initialize first; Initialize
// upgrades it to a real sink.
var Log *zap.Logger = zap.NewNop()

// SugaredLog mirrors Log for printf-style call sites.
var SugaredLog *zap.SugaredLogger = Log.Sugar()

var initOnce sync.Once

// Initialize sets up the structured logger with file rotation.
// logLevel: "debug", "info", "warn", "error" (default: "info").
// logFile: path to log file; pass "" to disable file output entirely.
func Initialize(logLevel string, logFile string) error {
	if logLevel == "" {
		logLevel = "info"
	}
	level := parseLogLevel(logLevel)

	consoleEncoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	consoleCore := zapcore.NewCore(consoleEncoder, zapcore.AddSync(os.Stdout), level)

	core := zapcore.Core(consoleCore)
	if logFile != "" {
		fileWriter := zapcore.AddSync(&lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    100, // megabytes
			MaxBackups: 5,
			MaxAge:     7, // days
			Compress:   true,
		})
		jsonEncoderConfig := zap.NewProductionEncoderConfig()
		jsonEncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		jsonCore := zapcore.NewCore(zapcore.NewJSONEncoder(jsonEncoderConfig), fileWriter, level)
		core = zapcore.NewTee(consoleCore, jsonCore)
	}

	Log = zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	SugaredLog = Log.Sugar()

	Log.Debug("logger initialized", zap.String("level", logLevel), zap.String("file", logFile))
	return nil
}

// InitializeOnce is Initialize guarded so repeated calls (e.g. from tests
// that each construct an Engine) don't reopen the log file.
func InitializeOnce(logLevel, logFile string) {
	initOnce.Do(func() {
		_ = Initialize(logLevel, logFile)
	})
}

// Close flushes the logger before shutdown.
func Close() error {
	if Log != nil {
		return Log.Sync()
	}
	return nil
}

func parseLogLevel(levelStr string) zapcore.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// WarnWithFields logs a warning message, optionally with an error.
func WarnWithFields(msg string, err error) {
	if err != nil {
		Log.Warn(msg, zap.Error(err))
	} else {
		Log.Warn(msg)
	}
}

// ErrorWithFields logs an error message with an error.
func ErrorWithFields(msg string, err error) {
	if err != nil {
		Log.Error(msg, zap.Error(err))
	} else {
		Log.Error(msg)
	}
}

// WithRequestID tags a log line with the correlation id of a single
// analyze_chord_progression call (see internal/interpretation).
func WithRequestID(requestID string) zap.Field {
	return zap.String("request_id", requestID)
}

// WithComponent tags a log line with the emitting analyzer (functional,
// modal, chromatic, scale, suggestion, cache).
func WithComponent(component string) zap.Field {
	return zap.String("component", component)
}

// WithChordCount tags a log line with the size of the input progression.
func WithChordCount(n int) zap.Field {
	return zap.Int("chord_count", n)
}

// WithConfidence tags a log line with a calibrated confidence value.
func WithConfidence(confidence float64) zap.Field {
	return zap.Float64("confidence", confidence)
}

// WithDuration tags a log line with an operation's wall-clock duration.
func WithDuration(duration interface{}) zap.Field {
	return zap.Any("duration", duration)
}
