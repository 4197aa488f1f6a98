// Package logger holds the process-wide structured logger.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the process-wide logger. It is usable before Init is called
// (info level, text, stderr) so packages and tests never see a nil logger.
var Log = logrus.New()

// Options configures the logger.
type Options struct {
	Level  string // trace, debug, info, warn, error
	Format string // "json" or "text"
	File   string // empty means stderr
}

// Init configures Log. It should be called once from main.
// The returned closer releases the log file, if one was opened.
func Init(opts Options) (io.Closer, error) {
	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	if strings.ToLower(opts.Format) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			DisableColors: opts.File != "",
		})
	}

	if opts.File == "" {
		Log.SetOutput(os.Stderr)
		return io.NopCloser(nil), nil
	}

	f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		Log.SetOutput(os.Stderr)
		return io.NopCloser(nil), fmt.Errorf("open log file %s: %w", opts.File, err)
	}
	Log.SetOutput(f)
	return f, nil
}

// For returns an entry tagged with the given component name.
func For(component string) *logrus.Entry {
	return Log.WithFields(logrus.Fields{"component": component})
}
