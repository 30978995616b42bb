// Package logging builds the shared structured logger. Log output goes
// to a rotating file so it never interferes with terminal rendering.
package logging

import (
	"io"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New returns a logger writing JSON lines to path with rotation. An
// empty path discards output, which keeps tests quiet.
func New(path string, level logrus.Level) *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.JSONFormatter{})

	if path == "" {
		logger.SetOutput(io.Discard)
		return logger
	}

	logger.SetOutput(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     30, // days
		Compress:   true,
	})
	return logger
}
