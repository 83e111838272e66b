package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Leveled logger used across the StudyHub services.
// - printf-style Debugf/Infof/Warnf/Errorf/Fatalf helpers for call sites that only need a message
// - L() exposes the underlying zerolog logger for structured fields
// - Init(level) selects the level; SetFormat switches between console and JSON output

var (
	mu     sync.RWMutex
	logger = newLogger(os.Stdout, true).Level(zerolog.InfoLevel)
	level  = zerolog.InfoLevel
)

func newLogger(w io.Writer, console bool) zerolog.Logger {
	if console {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: true}
	}
	return zerolog.New(w).With().Timestamp().Logger()
}

// Init sets the global log level (case-insensitive: debug, info, warn, error, fatal).
// Call early during startup. Default level is Info.
func Init(l string) {
	mu.Lock()
	defer mu.Unlock()
	switch strings.ToLower(strings.TrimSpace(l)) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn", "warning":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	case "fatal":
		level = zerolog.FatalLevel
	default:
		level = zerolog.InfoLevel
	}
	logger = logger.Level(level)
}

// SetFormat switches the output format. JSON is used in production so log
// shippers can parse the fields; development keeps the console writer.
func SetFormat(jsonOutput bool) {
	SetOutput(os.Stdout, jsonOutput)
}

// SetOutput redirects log output. Mostly useful in tests.
func SetOutput(w io.Writer, jsonOutput bool) {
	mu.Lock()
	defer mu.Unlock()
	logger = newLogger(w, !jsonOutput).Level(level)
}

// L returns the underlying zerolog logger for structured events.
func L() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := logger
	return &l
}

func Debugf(format string, v ...interface{}) { L().Debug().Msgf(format, v...) }

func Infof(format string, v ...interface{}) { L().Info().Msgf(format, v...) }

func Warnf(format string, v ...interface{}) { L().Warn().Msgf(format, v...) }

func Errorf(format string, v ...interface{}) { L().Error().Msgf(format, v...) }

// Fatalf logs at fatal level and exits the process with status 1.
func Fatalf(format string, v ...interface{}) {
	l := L()
	l.WithLevel(zerolog.FatalLevel).Msgf(format, v...)
	os.Exit(1)
}

// Println kept for brief messages (maps to Info)
func Println(v ...interface{}) {
	L().Info().Msg(strings.TrimSuffix(fmt.Sprintln(v...), "\n"))
}

// LevelString returns the current level as text.
func LevelString() string {
	mu.RLock()
	defer mu.RUnlock()
	switch level {
	case zerolog.DebugLevel:
		return "debug"
	case zerolog.WarnLevel:
		return "warn"
	case zerolog.ErrorLevel:
		return "error"
	case zerolog.FatalLevel:
		return "fatal"
	}
	return "info"
}
