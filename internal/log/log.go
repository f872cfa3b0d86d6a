package log

import (
	"io"
	"log"
	"os"
	"strings"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelNone
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelNone:
		return "NONE"
	default:
		return "UNKNOWN"
	}
}

// LevelFromString parses a level name. Unknown names map to INFO so a typo
// in the environment doesn't flood the host's console with debug output.
func LevelFromString(s string) Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LevelDebug
	case "INFO":
		return LevelInfo
	case "WARN", "WARNING":
		return LevelWarn
	case "ERROR":
		return LevelError
	case "NONE", "OFF":
		return LevelNone
	default:
		return LevelInfo
	}
}

type Logger struct {
	logger *log.Logger
	level  Level
	tag    string
}

func New(out io.Writer, level Level) *Logger {
	return &Logger{
		logger: log.New(out, "", log.Ltime|log.Lmicroseconds),
		level:  level,
	}
}

// Discard returns a logger that drops everything. Used by tests and by
// components constructed without a logger.
func Discard() *Logger { return New(io.Discard, LevelNone) }

// Stderr returns a logger writing to stderr at the level named by
// DRIFT_LOG_LEVEL (INFO when unset).
func Stderr() *Logger {
	return New(os.Stderr, LevelFromString(os.Getenv("DRIFT_LOG_LEVEL")))
}

// With returns a child logger sharing output and level whose messages are
// prefixed with "[TAG] ".
func (l *Logger) With(tag string) *Logger {
	if l == nil {
		return Discard().With(tag)
	}
	return &Logger{logger: l.logger, level: l.level, tag: "[" + strings.ToUpper(tag) + "] "}
}

func (l *Logger) Debugf(format string, v ...interface{}) {
	if l != nil && l.level <= LevelDebug {
		l.logger.Printf("DEBUG: "+l.tag+format, v...)
	}
}

func (l *Logger) Infof(format string, v ...interface{}) {
	if l != nil && l.level <= LevelInfo {
		l.logger.Printf("INFO: "+l.tag+format, v...)
	}
}

func (l *Logger) Warnf(format string, v ...interface{}) {
	if l != nil && l.level <= LevelWarn {
		l.logger.Printf("WARN: "+l.tag+format, v...)
	}
}

func (l *Logger) Errorf(format string, v ...interface{}) {
	if l != nil && l.level <= LevelError {
		l.logger.Printf("ERROR: "+l.tag+format, v...)
	}
}

func (l *Logger) SetLevel(level Level) {
	l.level = level
}

func (l *Logger) Level() Level {
	return l.level
}
