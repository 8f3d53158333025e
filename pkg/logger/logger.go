package logger

import (
	"fmt"
	"os"
	"strings"

	"github.com/natefinch/lumberjack"
	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

type Options struct {
	Level      string
	Verbosity  int
	File       string
	MaxSize    int
	MaxBackups int
	MaxAge     int
}

var (
	prefixLen = 12
)

/* Public */

func Init(opts Options) error {
	level, err := resolveLevel(opts)
	if err != nil {
		return err
	}

	logrus.SetLevel(level)
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&prefixed.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
		ForceFormatting: true,
	})

	if opts.File != "" {
		logrus.AddHook(newRotateFileHook(level, &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSize,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAge,
		}))
	}

	return nil
}

func GetLogger(prefix string) *logrus.Entry {
	if len(prefix) > prefixLen {
		prefixLen = len(prefix)
	}

	return logrus.WithFields(logrus.Fields{"prefix": fmt.Sprintf("%-*s", prefixLen, prefix)})
}

/* Private */

func resolveLevel(opts Options) (logrus.Level, error) {
	// -v flags take priority over the configured level
	switch {
	case opts.Verbosity == 1:
		return logrus.DebugLevel, nil
	case opts.Verbosity > 1:
		return logrus.TraceLevel, nil
	case opts.Level == "":
		return logrus.InfoLevel, nil
	}

	level, err := logrus.ParseLevel(strings.ToLower(opts.Level))
	if err != nil {
		return logrus.InfoLevel, fmt.Errorf("parse log level: %w", err)
	}
	return level, nil
}
