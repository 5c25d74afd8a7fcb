// Package logging centralizes logrus configuration so every component
// produces the same structured output shape.
package logging

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Level is the minimum severity a logger emits.
type Level string

const (
	DebugLevel Level = "debug"
	InfoLevel  Level = "info"
	WarnLevel  Level = "warn"
	ErrorLevel Level = "error"
)

// Format selects the log line encoding.
type Format string

const (
	JSONFormat Format = "json"
	TextFormat Format = "text"
)

// Config configures a logger.
type Config struct {
	Level  Level
	Format Format
}

// DefaultConfig returns a text logger at info level.
func DefaultConfig() Config {
	return Config{Level: InfoLevel, Format: TextFormat}
}

// FromEnv overrides DefaultConfig with LOG_LEVEL and LOG_FORMAT.
func FromEnv() Config {
	cfg := DefaultConfig()
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Level = Level(strings.ToLower(level))
	}
	if format := os.Getenv("LOG_FORMAT"); format != "" {
		cfg.Format = Format(strings.ToLower(format))
	}
	return cfg
}

// New builds a configured logrus.Logger.
func New(cfg Config) *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(parseLevel(cfg.Level))
	logger.SetOutput(os.Stdout)

	if cfg.Format == JSONFormat {
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			TimestampFormat: "2006-01-02 15:04:05.000",
			FullTimestamp:   true,
		})
	}
	return logger
}

func parseLevel(l Level) logrus.Level {
	switch l {
	case DebugLevel:
		return logrus.DebugLevel
	case WarnLevel:
		return logrus.WarnLevel
	case ErrorLevel:
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// RunLogger tags every entry with the run it belongs to.
func RunLogger(logger *logrus.Logger, runID string, seed int64) *logrus.Entry {
	return logger.WithFields(logrus.Fields{
		"run_id": runID,
		"seed":   seed,
	})
}

// StageLogger narrows a run logger to one pipeline stage.
func StageLogger(entry *logrus.Entry, stage string) *logrus.Entry {
	return entry.WithField("stage", stage)
}
