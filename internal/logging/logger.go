package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Logger is the logger handed to every component.
type Logger = logrus.FieldLogger

// Fields represents structured logging fields.
type Fields = logrus.Fields

const (
	FormatText = "text"
	FormatJSON = "json"
)

// NewLogger builds a logrus logger writing to out. An empty level means info
// and an empty format means text.
func NewLogger(level, format string, out io.Writer) (*logrus.Logger, error) {
	if out == nil {
		out = os.Stderr
	}

	parsed, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(parsed)

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatText:
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case FormatJSON:
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("unsupported log format %q", format)
	}

	return logger, nil
}

func ParseLevel(level string) (logrus.Level, error) {
	trimmed := strings.ToLower(strings.TrimSpace(level))
	if trimmed == "" {
		return logrus.InfoLevel, nil
	}

	parsed, err := logrus.ParseLevel(trimmed)
	if err != nil {
		return logrus.InfoLevel, fmt.Errorf("parse log level: %w", err)
	}

	return parsed, nil
}

// Discard returns a logger that drops everything, for tests and quiet runs.
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
