package observability

import (
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	loggerOnce sync.Once
	logger     *logrus.Logger
)

// Logger returns the process-wide structured logger. LOG_LEVEL selects the level (default info)
// and LOG_FORMAT=json switches to JSON output.
func Logger() *logrus.Logger {
	loggerOnce.Do(func() {
		logger = NewLogger(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
	})
	return logger
}

// NewLogger builds a logger writing to stderr with the given level and format.
func NewLogger(level, format string) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)

	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	if strings.EqualFold(strings.TrimSpace(format), "json") {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return l
}

// SetVerbose raises the process logger to debug level.
func SetVerbose(verbose bool) {
	if verbose {
		Logger().SetLevel(logrus.DebugLevel)
	}
}
