// Package logging wraps a shared logrus logger.
//
// The level comes from QRISK_LOG_LEVEL ("debug", "info", "warn", "error") and
// the --debug flag raises it to debug regardless of the environment.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var log = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	l.SetLevel(logrus.InfoLevel)
	return l
}

// Init sets the level from QRISK_LOG_LEVEL
func Init() {
	log.SetLevel(ParseLevel(os.Getenv("QRISK_LOG_LEVEL")))
}

// ParseLevel maps a level name onto logrus, defaulting to info
func ParseLevel(s string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return logrus.DebugLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// SetDebug forces debug output on or restores the environment level
func SetDebug(enabled bool) {
	if enabled {
		log.SetLevel(logrus.DebugLevel)
		return
	}
	Init()
}

func DebugEnabled() bool {
	return log.IsLevelEnabled(logrus.DebugLevel)
}

// SetOutput redirects log output, used by tests and the server
func SetOutput(w io.Writer) {
	log.SetOutput(w)
}

// SetJSON switches to JSON lines, which is what the HTTP server emits
func SetJSON() {
	log.SetFormatter(&logrus.JSONFormatter{})
}

func Logger() *logrus.Logger {
	return log
}

func WithFields(fields logrus.Fields) *logrus.Entry {
	return log.WithFields(fields)
}

// Debugf prints messages only when debug is enabled
func Debugf(format string, args ...interface{}) {
	log.Debugf(format, args...)
}

func Infof(format string, args ...interface{}) {
	log.Infof(format, args...)
}

func Warnf(format string, args ...interface{}) {
	log.Warnf(format, args...)
}

func Errorf(format string, args ...interface{}) {
	log.Errorf(format, args...)
}
