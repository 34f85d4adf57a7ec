package logger

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	// Global logger instance
	Logger *logrus.Logger
	mu     sync.Mutex
)

// LogLevel represents the available log levels
type LogLevel string

const (
	DEBUG LogLevel = "debug"
	INFO  LogLevel = "info"
	WARN  LogLevel = "warn"
	ERROR LogLevel = "error"
)

// Init initializes the global logger writing to stderr so tabular output on
// stdout stays machine-readable
func Init(level LogLevel) {
	InitWithOutput(level, os.Stderr)
}

// InitWithOutput initializes the global logger with an explicit destination
func InitWithOutput(level LogLevel, out io.Writer) {
	l := logrus.New()
	l.SetOutput(out)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	parsed, err := logrus.ParseLevel(strings.ToLower(string(level)))
	if err != nil {
		l.SetLevel(logrus.WarnLevel)
		l.Warnf("Unknown log level '%s', defaulting to WARN", level)
	} else {
		l.SetLevel(parsed)
	}

	mu.Lock()
	Logger = l
	mu.Unlock()
}

// GetLogger returns the global logger instance
func GetLogger() *logrus.Logger {
	mu.Lock()
	l := Logger
	mu.Unlock()
	if l == nil {
		Init(WARN)
		return GetLogger()
	}
	return l
}

func Debug(args ...interface{}) {
	GetLogger().Debug(args...)
}

func Debugf(format string, args ...interface{}) {
	GetLogger().Debugf(format, args...)
}

func Info(args ...interface{}) {
	GetLogger().Info(args...)
}

func Infof(format string, args ...interface{}) {
	GetLogger().Infof(format, args...)
}

func Warn(args ...interface{}) {
	GetLogger().Warn(args...)
}

func Warnf(format string, args ...interface{}) {
	GetLogger().Warnf(format, args...)
}

func Error(args ...interface{}) {
	GetLogger().Error(args...)
}

func Errorf(format string, args ...interface{}) {
	GetLogger().Errorf(format, args...)
}

// WithField returns a logger entry with a single field
func WithField(key string, value interface{}) *logrus.Entry {
	return GetLogger().WithField(key, value)
}

// WithFields returns a logger entry with multiple fields
func WithFields(fields logrus.Fields) *logrus.Entry {
	return GetLogger().WithFields(fields)
}

// WithError returns a logger entry with an error field
func WithError(err error) *logrus.Entry {
	return GetLogger().WithError(err)
}

// ForEntry returns a logger entry tagged with a config entry and its backend
func ForEntry(entry, backend string) *logrus.Entry {
	return GetLogger().WithFields(logrus.Fields{
		"entry":   entry,
		"backend": backend,
	})
}
