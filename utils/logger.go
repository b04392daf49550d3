package utils

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// LogLevel enumerates severity tiers.
type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
	FATAL
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR", "FATAL"}

func (l LogLevel) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "UNKNOWN"
}

func (l LogLevel) zapLevel() zapcore.Level {
	switch l {
	case DEBUG:
		return zapcore.DebugLevel
	case WARN:
		return zapcore.WarnLevel
	case ERROR:
		return zapcore.ErrorLevel
	case FATAL:
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

// Logger is a concurrency-safe, levelled logger used across the pipeline.
type Logger struct {
	sugar *zap.SugaredLogger
}

var (
	globalMu     sync.RWMutex
	globalLogger *Logger
)

func loggerConfig(minLevel LogLevel, logFilePath string) zap.Config {
	outputs := []string{"stdout"}
	if logFilePath != "" {
		outputs = append(outputs, logFilePath)
	}
	return zap.Config{
		Level:    zap.NewAtomicLevelAt(minLevel.zapLevel()),
		Encoding: "console",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "ts",
			LevelKey:       "level",
			NameKey:        "logger",
			MessageKey:     "msg",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalLevelEncoder,
			EncodeTime:     zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.000"),
			EncodeDuration: zapcore.StringDurationEncoder,
		},
		DisableCaller:     true,
		DisableStacktrace: true,
		OutputPaths:       outputs,
		ErrorOutputPaths:  []string{"stderr"},
	}
}

// InitLogger creates the global logger writing to stdout and, if
// logFilePath is set, appending to that file too. Call once at startup.
func InitLogger(minLevel LogLevel, logFilePath string) *Logger {
	z, err := loggerConfig(minLevel, logFilePath).Build()
	if err != nil {
		z, _ = loggerConfig(minLevel, "").Build()
		z.Sugar().Warnf("could not open log file %s: %v", logFilePath, err)
	}
	l := &Logger{sugar: z.Sugar()}
	ReplaceGlobal(l)
	return l
}

// NewObservedLogger returns a logger that records entries in memory, for tests.
func NewObservedLogger(minLevel LogLevel) (*Logger, *observer.ObservedLogs) {
	core, logs := observer.New(minLevel.zapLevel())
	return &Logger{sugar: zap.New(core).Sugar()}, logs
}

// ReplaceGlobal swaps the logger returned by L.
func ReplaceGlobal(l *Logger) {
	globalMu.Lock()
	globalLogger = l
	globalMu.Unlock()
}

// L returns the global logger, creating a stdout-only DEBUG logger if
// InitLogger has not been called.
func L() *Logger {
	globalMu.RLock()
	l := globalLogger
	globalMu.RUnlock()
	if l == nil {
		return InitLogger(DEBUG, "")
	}
	return l
}

// Close flushes buffered entries.
func (l *Logger) Close() {
	_ = l.sugar.Sync()
}

func (l *Logger) Debug(f string, a ...any) { l.sugar.Debugf(f, a...) }
func (l *Logger) Info(f string, a ...any)  { l.sugar.Infof(f, a...) }
func (l *Logger) Warn(f string, a ...any)  { l.sugar.Warnf(f, a...) }
func (l *Logger) Error(f string, a ...any) { l.sugar.Errorf(f, a...) }

// Fatal logs and exits the process with status 1.
func (l *Logger) Fatal(f string, a ...any) { l.sugar.Fatalf(f, a...) }
