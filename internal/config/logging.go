// internal/config/logging.go
package config

import (
	"os"

	"github.com/sirupsen/logrus"
)

// ConfigureLogging sets the global logrus level and formatter.
func ConfigureLogging(cfg *Config) {
	logrus.SetOutput(os.Stdout)

	if cfg.Environment == "production" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logrus.WithField("level", cfg.LogLevel).Warn("Unknown log level, using info")
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}
