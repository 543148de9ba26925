package logger

import (
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

var _log = logrus.New()

// Init configures the global logger. Debug mode uses a human-readable
// text format at debug level; otherwise output is JSON at info level
// for easy ingestion by whatever scrapes the log file.
func Init(debug bool, out io.Writer) {
	if out == nil {
		out = os.Stdout
	}
	_log.SetOutput(out)

	if debug {
		_log.SetLevel(logrus.DebugLevel)
		_log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		return
	}
	_log.SetLevel(logrus.InfoLevel)
	_log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
}

// Log returns an entry on the shared logger.
func Log() *logrus.Entry {
	return logrus.NewEntry(_log)
}

// WithFields returns an entry with the provided fields attached.
func WithFields(fields logrus.Fields) *logrus.Entry {
	return Log().WithFields(fields)
}
