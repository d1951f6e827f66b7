// Package logging builds the logrus loggers used across golden.
package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Options configures a logger
type Options struct {
	Level string    // logrus level name, default "info"
	JSON  bool      // JSON output instead of text
	Out   io.Writer // defaults to os.Stderr
}

// New creates a logger. Text output carries full timestamps; JSON output is
// meant for pipelines.
func New(opts Options) (*logrus.Logger, error) {
	log := logrus.New()
	log.Out = os.Stderr
	if opts.Out != nil {
		log.Out = opts.Out
	}

	level := logrus.InfoLevel
	if opts.Level != "" {
		parsed, err := logrus.ParseLevel(opts.Level)
		if err != nil {
			return nil, err
		}
		level = parsed
	}
	log.SetLevel(level)

	if opts.JSON {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}
	return log, nil
}

// Discard returns a logger that drops everything
func Discard() *logrus.Logger {
	log := logrus.New()
	log.Out = io.Discard
	log.SetLevel(logrus.PanicLevel)
	return log
}
