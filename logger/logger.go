package logger

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogLevel represents the severity of a log message.
type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
	FATAL
)

var levelNames = map[LogLevel]string{
	DEBUG: "DEBUG",
	INFO:  "INFO",
	WARN:  "WARN",
	ERROR: "ERROR",
	FATAL: "FATAL",
}

// String returns the upper-case level name.
func (l LogLevel) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("LEVEL(%d)", int(l))
}

// ParseLevel maps a level name (debug, info, warn, error, fatal) to a LogLevel.
func ParseLevel(name string) (LogLevel, error) {
	for level, levelName := range levelNames {
		if strings.EqualFold(levelName, strings.TrimSpace(name)) {
			return level, nil
		}
	}
	return INFO, fmt.Errorf("unknown log level %q", name)
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

// Logger wraps a zap logger with the printf-style helpers used across the codebase.
type Logger struct {
	level  zap.AtomicLevel
	base   *zap.Logger
	prefix string
}

var (
	defaultLogger *Logger
	mu            sync.RWMutex
	once          sync.Once
)

// Config describes how the logger should be initialised.
type Config struct {
	Level      LogLevel
	LogDir     string
	FileName   string
	MaxSize    int // megabytes
	MaxAge     int // days
	MaxBackups int
	UseColor   bool
	ShowCaller bool
	Prefix     string
}

// Initialize boots the global logger instance if it has not been created yet.
func Initialize(config Config) error {
	var err error
	once.Do(func() {
		var l *Logger
		l, err = New(config)
		if err != nil {
			return
		}
		mu.Lock()
		defaultLogger = l
		mu.Unlock()
	})
	return err
}

// New builds a logger writing to stdout and, when LogDir is set, to a rotated JSON file.
func New(config Config) (*Logger, error) {
	level := zap.NewAtomicLevelAt(config.Level.zapLevel())

	consoleEncoderConfig := zap.NewDevelopmentEncoderConfig()
	consoleEncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.000")
	if config.UseColor {
		consoleEncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		consoleEncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleEncoderConfig), zapcore.AddSync(os.Stdout), level),
	}

	if config.LogDir != "" {
		if err := os.MkdirAll(config.LogDir, 0755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		fileName := config.FileName
		if fileName == "" {
			fileName = "server.log"
		}
		rotator := &lumberjack.Logger{
			Filename:   filepath.Join(config.LogDir, fileName),
			MaxSize:    config.MaxSize,
			MaxAge:     config.MaxAge,
			MaxBackups: config.MaxBackups,
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(rotator),
			level,
		))
	}

	opts := []zap.Option{}
	if config.ShowCaller {
		opts = append(opts, zap.AddCaller(), zap.AddCallerSkip(2))
	}

	base := zap.New(zapcore.NewTee(cores...), opts...)
	return &Logger{level: level, base: base, prefix: config.Prefix}, nil
}

// Use replaces the global logger with one backed by z. Tests use it with an observer core.
func Use(z *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	defaultLogger = &Logger{
		level: zap.NewAtomicLevelAt(zapcore.DebugLevel),
		base:  z,
	}
}

// Sync flushes buffered entries.
func Sync() error {
	l := current()
	if l == nil {
		return nil
	}
	return l.base.Sync()
}

func current() *Logger {
	mu.RLock()
	defer mu.RUnlock()
	return defaultLogger
}

func (l *Logger) log(level LogLevel, fields []zap.Field, format string, args ...interface{}) {
	message := format
	if len(args) > 0 {
		message = fmt.Sprintf(format, args...)
	}
	if l.prefix != "" {
		message = l.prefix + " " + message
	}

	base := l.base
	if len(fields) > 0 {
		base = base.With(fields...)
	}

	switch level {
	case DEBUG:
		base.Debug(message)
	case INFO:
		base.Info(message)
	case WARN:
		base.Warn(message)
	case ERROR:
		base.Error(message)
	case FATAL:
		base.Fatal(message)
	}
}

// Public helper methods for the default logger.
func Debug(format string, args ...interface{}) {
	if l := current(); l != nil {
		l.log(DEBUG, nil, format, args...)
	}
}

func Info(format string, args ...interface{}) {
	if l := current(); l != nil {
		l.log(INFO, nil, format, args...)
	} else {
		log.Printf("[INFO] "+format, args...)
	}
}

func Warn(format string, args ...interface{}) {
	if l := current(); l != nil {
		l.log(WARN, nil, format, args...)
	} else {
		log.Printf("[WARN] "+format, args...)
	}
}

func Error(format string, args ...interface{}) {
	if l := current(); l != nil {
		l.log(ERROR, nil, format, args...)
	} else {
		log.Printf("[ERROR] "+format, args...)
	}
}

func Fatal(format string, args ...interface{}) {
	if l := current(); l != nil {
		l.log(FATAL, nil, format, args...)
	} else {
		log.Fatalf("[FATAL] "+format, args...)
	}
}

// WithFields attaches structured fields to the log entry.
func WithFields(fields map[string]interface{}) *LogEntry {
	return &LogEntry{fields: fields}
}

// LogEntry represents a structured log entry builder.
type LogEntry struct {
	fields map[string]interface{}
}

func (e *LogEntry) Debug(format string, args ...interface{}) {
	e.log(DEBUG, format, args...)
}

func (e *LogEntry) Info(format string, args ...interface{}) {
	e.log(INFO, format, args...)
}

func (e *LogEntry) Warn(format string, args ...interface{}) {
	e.log(WARN, format, args...)
}

func (e *LogEntry) Error(format string, args ...interface{}) {
	e.log(ERROR, format, args...)
}

func (e *LogEntry) Fatal(format string, args ...interface{}) {
	e.log(FATAL, format, args...)
}

// Log allows emitting a message with an explicit level via the entry.
func (e *LogEntry) Log(level LogLevel, format string, args ...interface{}) {
	e.log(level, format, args...)
}

func (e *LogEntry) log(level LogLevel, format string, args ...interface{}) {
	l := current()
	if l == nil {
		return
	}

	fields := make([]zap.Field, 0, len(e.fields))
	for k, v := range e.fields {
		fields = append(fields, zap.Any(k, v))
	}
	l.log(level, fields, format, args...)
}

// SetLevel updates the global logging level.
func SetLevel(level LogLevel) {
	if l := current(); l != nil {
		l.level.SetLevel(level.zapLevel())
	}
}

// GetLevel returns the current global logging level.
func GetLevel() LogLevel {
	l := current()
	if l == nil {
		return INFO
	}
	switch l.level.Level() {
	case zapcore.DebugLevel:
		return DEBUG
	case zapcore.WarnLevel:
		return WARN
	case zapcore.ErrorLevel:
		return ERROR
	case zapcore.FatalLevel:
		return FATAL
	default:
		return INFO
	}
}
