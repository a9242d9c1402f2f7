// Package logging is a small leveled logger with key=value fields. Output
// goes through a standard log.Logger so the TUI can point it at a file.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = map[Level]string{
	LevelDebug: "DEBUG",
	LevelInfo:  "INFO",
	LevelWarn:  "WARN",
	LevelError: "ERROR",
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("LEVEL(%d)", int(l))
}

// ParseLevel accepts debug, info, warn/warning and error in any case.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelWarn, fmt.Errorf("unknown log level: %q", s)
}

type field struct {
	key   string
	value interface{}
}

type Logger struct {
	mu       *sync.RWMutex
	minLevel *Level
	output   **log.Logger
	fields   []field
}

var defaultLogger = New()

func New() *Logger {
	level := LevelWarn
	output := log.New(os.Stderr, "", log.LstdFlags)
	return &Logger{
		mu:       &sync.RWMutex{},
		minLevel: &level,
		output:   &output,
	}
}

// SetLevel changes the level for l and every logger derived from it.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	*l.minLevel = level
}

func (l *Logger) SetOutput(output *log.Logger) {
	l.mu.Lock()
	defer l.mu.Unlock()
	*l.output = output
}

func (l *Logger) SetWriter(w io.Writer) {
	l.SetOutput(log.New(w, "", log.LstdFlags))
}

func (l *Logger) Enabled(level Level) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return level >= *l.minLevel
}

// With returns a logger that adds key=value to every entry. Level and
// output stay shared with the parent.
func (l *Logger) With(key string, value interface{}) *Logger {
	fields := make([]field, len(l.fields), len(l.fields)+1)
	copy(fields, l.fields)
	fields = append(fields, field{key: key, value: value})
	return &Logger{
		mu:       l.mu,
		minLevel: l.minLevel,
		output:   l.output,
		fields:   fields,
	}
}

func (l *Logger) log(level Level, msg string, keyVals ...interface{}) {
	l.mu.RLock()
	minLevel := *l.minLevel
	output := *l.output
	l.mu.RUnlock()

	if level < minLevel {
		return
	}

	var sb strings.Builder
	sb.WriteString(levelNames[level])
	sb.WriteString(": ")
	sb.WriteString(msg)

	all := make([]field, 0, len(l.fields)+len(keyVals)/2)
	all = append(all, l.fields...)
	for i := 0; i+1 < len(keyVals); i += 2 {
		if key, ok := keyVals[i].(string); ok {
			all = append(all, field{key: key, value: keyVals[i+1]})
		}
	}

	if len(all) > 0 {
		sb.WriteString(" |")
		for _, f := range all {
			sb.WriteString(" ")
			sb.WriteString(f.key)
			sb.WriteString("=")
			sb.WriteString(formatValue(f.value))
		}
	}

	output.Print(sb.String())
}

func formatValue(v interface{}) string {
	switch val := v.(type) {
	case string:
		if val == "" || strings.ContainsAny(val, " \t\n") {
			return fmt.Sprintf("%q", val)
		}
		return val
	case error:
		return fmt.Sprintf("%q", val.Error())
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(v)
	}
}

func (l *Logger) Debug(msg string, keyVals ...interface{}) { l.log(LevelDebug, msg, keyVals...) }
func (l *Logger) Info(msg string, keyVals ...interface{})  { l.log(LevelInfo, msg, keyVals...) }
func (l *Logger) Warn(msg string, keyVals ...interface{})  { l.log(LevelWarn, msg, keyVals...) }
func (l *Logger) Error(msg string, keyVals ...interface{}) { l.log(LevelError, msg, keyVals...) }

// Default returns the package-level logger.
func Default() *Logger { return defaultLogger }

func SetLevel(level Level)           { defaultLogger.SetLevel(level) }
func SetOutput(output *log.Logger)   { defaultLogger.SetOutput(output) }
func SetWriter(w io.Writer)          { defaultLogger.SetWriter(w) }
func With(key string, value interface{}) *Logger {
	return defaultLogger.With(key, value)
}

func Debug(msg string, keyVals ...interface{}) { defaultLogger.Debug(msg, keyVals...) }
func Info(msg string, keyVals ...interface{})  { defaultLogger.Info(msg, keyVals...) }
func Warn(msg string, keyVals ...interface{})  { defaultLogger.Warn(msg, keyVals...) }
func Error(msg string, keyVals ...interface{}) { defaultLogger.Error(msg, keyVals...) }
