// Package logging configures the shared logrus logger.
package logging

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// New builds a logger at the given level, defaulting to info when the
// level is empty or unknown.
func New(level string) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05 MST",
	})
	lvl, err := logrus.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	return log
}
