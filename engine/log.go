// Package engine wires pagealloc, heap, gc, ident and shape into the
// single entry point a host program talks to, plus this module's ambient
// stack: configuration and logging.
package engine

import (
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
)

// Logger is a leveled logging interface: enough for the engine and CLI to
// log at Debug/Info/Warn/Error without committing to a specific backend.
type Logger interface {
	Debug(args ...interface{})
	Debugf(format string, args ...interface{})
	Info(args ...interface{})
	Infof(format string, args ...interface{})
	Warn(args ...interface{})
	Warnf(format string, args ...interface{})
	Error(args ...interface{})
	Errorf(format string, args ...interface{})
	Fatal(args ...interface{})
	Fatalf(format string, args ...interface{})
}

// LogLevel is the severity of one log line.
type LogLevel int

const (
	LogDebug LogLevel = iota
	LogInfo
	LogWarn
	LogError
	LogFatal
)

func (l LogLevel) String() string {
	switch l {
	case LogDebug:
		return "DEBUG"
	case LogInfo:
		return "INFO"
	case LogWarn:
		return "WARN"
	case LogError:
		return "ERROR"
	case LogFatal:
		return "FATAL"
	}
	panic("engine: unexpected log level " + strconv.Itoa(int(l)))
}

var levelByName = func() map[string]LogLevel {
	m := make(map[string]LogLevel, 5)
	for _, l := range []LogLevel{LogDebug, LogInfo, LogWarn, LogError, LogFatal} {
		m[l.String()] = l
	}
	return m
}()

// LogLevelFromString parses a level name as printed by LogLevel.String.
func LogLevelFromString(s string) (LogLevel, error) {
	l, ok := levelByName[s]
	if !ok {
		return 0, fmt.Errorf("engine: invalid log level %q", s)
	}
	return l, nil
}

const stdLoggerFlags = log.LstdFlags | log.Lmicroseconds | log.Lshortfile

// NewLogger returns a Logger writing lines at or above level to w.
func NewLogger(level LogLevel, w io.Writer) Logger {
	return &logger{std: log.New(w, "", stdLoggerFlags), level: level}
}

type logger struct {
	std   *log.Logger
	level LogLevel
}

func (l *logger) Debug(args ...interface{})                 { l.log(LogDebug, args...) }
func (l *logger) Debugf(format string, args ...interface{}) { l.logf(LogDebug, format, args...) }
func (l *logger) Info(args ...interface{})                  { l.log(LogInfo, args...) }
func (l *logger) Infof(format string, args ...interface{})  { l.logf(LogInfo, format, args...) }
func (l *logger) Warn(args ...interface{})                  { l.log(LogWarn, args...) }
func (l *logger) Warnf(format string, args ...interface{})  { l.logf(LogWarn, format, args...) }
func (l *logger) Error(args ...interface{})                 { l.log(LogError, args...) }
func (l *logger) Errorf(format string, args ...interface{}) { l.logf(LogError, format, args...) }
func (l *logger) Fatal(args ...interface{}) {
	l.log(LogFatal, args...)
	os.Exit(1)
}
func (l *logger) Fatalf(format string, args ...interface{}) {
	l.logf(LogFatal, format, args...)
	os.Exit(1)
}

func (l *logger) log(level LogLevel, args ...interface{}) {
	if level < l.level {
		return
	}
	l.std.Output(3, level.String()+": "+fmt.Sprint(args...))
}

func (l *logger) logf(level LogLevel, format string, args ...interface{}) {
	if level < l.level {
		return
	}
	l.std.Output(3, level.String()+": "+fmt.Sprintf(format, args...))
}
