package config

import (
	"io"

	"github.com/charmbracelet/log"
)

func NewLogger(w io.Writer, cfg Config) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           ParseLogLevel(cfg.LogLevel),
		Formatter:       ParseLogFormatter(cfg.LogFormat),
		ReportTimestamp: true,
		Prefix:          "tasks",
	})
}

func ParseLogLevel(level string) log.Level {
	switch level {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

func ParseLogFormatter(format string) log.Formatter {
	switch format {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}
