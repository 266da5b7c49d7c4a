package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ParseLevel переводит LOG_LEVEL в уровень zerolog; неизвестные значения дают info
func ParseLevel(level string) zerolog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return zerolog.DebugLevel
	case "WARN", "WARNING":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// New создаёт JSON-логгер с временем и именем сервиса
func New(level, service string, w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stdout
	}
	return zerolog.New(w).
		Level(ParseLevel(level)).
		With().
		Timestamp().
		Str("service", service).
		Logger()
}

// Setup создаёт логгер и делает его глобальным для пакета zerolog/log
func Setup(level, service string) zerolog.Logger {
	logger := New(level, service, os.Stdout)
	log.Logger = logger
	return logger
}
