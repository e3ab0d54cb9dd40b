// Package logging configures the package level logrus logger used throughout dipr.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/jddeal/go-dipr/internal/config"
)

// Levels maps the level names accepted on the command line and in config files.
var Levels = map[string]logrus.Level{
	"error": logrus.ErrorLevel,
	"warn":  logrus.WarnLevel,
	"info":  logrus.InfoLevel,
	"debug": logrus.DebugLevel,
	"trace": logrus.TraceLevel,
}

// LevelNames lists the keys of Levels, most severe first.
func LevelNames() []string {
	names := make([]string, 0, len(Levels))
	for name := range Levels {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return Levels[names[i]] < Levels[names[j]] })
	return names
}

// SetLevel sets the global level by name.
func SetLevel(name string) error {
	level, ok := Levels[name]
	if !ok {
		return fmt.Errorf("unknown log level %q", name)
	}
	logrus.SetLevel(level)
	return nil
}

// Setup applies cfg to the global logger. When a log file is configured, output goes to
// stderr and to the file, which lumberjack rotates. The returned closer flushes that file.
func Setup(cfg config.LogConfig) (io.Closer, error) {
	if err := SetLevel(cfg.Level); err != nil {
		return nil, err
	}
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if cfg.File == "" {
		logrus.SetOutput(os.Stderr)
		return noopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	rotator := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxAge:     cfg.MaxAgeDays,
		MaxBackups: cfg.MaxBackups,
		Compress:   cfg.Compress,
	}
	logrus.SetOutput(io.MultiWriter(os.Stderr, rotator))
	return rotator, nil
}

type noopCloser struct{}

func (noopCloser) Close() error { return nil }
