package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	log *logrus.Logger
	mu  sync.Mutex
)

// InitLogger configures the process logger to write to out at the given level
func InitLogger(level logrus.Level, out io.Writer) *logrus.Logger {
	mu.Lock()
	defer mu.Unlock()

	log = logrus.New()
	log.SetOutput(out)
	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	return log
}

// InitFileLogger opens (appending) the log file at path and logs there.
// The returned closer releases the file.
func InitFileLogger(levelName, path string) (*logrus.Logger, io.Closer, error) {
	level, err := ParseLevel(levelName)
	if err != nil {
		return nil, nil, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}

	return InitLogger(level, f), f, nil
}

// ParseLevel maps a config level name to a logrus level; empty means info
func ParseLevel(name string) (logrus.Level, error) {
	if name == "" {
		return logrus.InfoLevel, nil
	}
	level, err := logrus.ParseLevel(name)
	if err != nil {
		return logrus.InfoLevel, fmt.Errorf("invalid log level %q: %w", name, err)
	}
	return level, nil
}

// GetLogger returns the process logger. Before InitLogger it returns a
// logger that discards everything.
func GetLogger() *logrus.Logger {
	mu.Lock()
	defer mu.Unlock()

	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		return discard
	}
	return log
}

// For returns an entry tagged with the component name
func For(component string) *logrus.Entry {
	return GetLogger().WithField("component", component)
}
