// internal/infra/logger/logger.go
package logger

import (
	"os"
	"strings"

	"invoice_reminder_bot/internal/infra/config"

	"github.com/sirupsen/logrus"
)

// Log is the global logger instance
var Log = logrus.New()

// Init initializes the global logger based on application configuration.
// Logs go to stderr; stdout is reserved for the delivery diagnostic.
func Init(cfg *config.AppConfig) {
	configure(Log, cfg)
}

func configure(l *logrus.Logger, cfg *config.AppConfig) {
	l.SetOutput(os.Stderr)

	level, err := logrus.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		l.SetLevel(logrus.InfoLevel)
		l.Warnf("Invalid log level '%s', defaulting to 'info'. Error: %v", cfg.LogLevel, err)
	} else {
		l.SetLevel(level)
	}

	env := strings.ToLower(cfg.Environment)
	if env == "production" || env == "staging" {
		l.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00", // ISO8601
		})
	} else {
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	l.Debugf("Log level set to: %s, environment: %s", l.GetLevel().String(), cfg.Environment)
}
