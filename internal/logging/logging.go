// Package logging builds the logrus logger shared by every command.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/jonathan/sdg-idea-lab/internal/config"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const timestampFormat = "2006-01-02 15:04:05.000"

// New creates a logger from cfg. Output goes to stderr and, when LogFile is
// set, also to a rotating file. The returned closer releases the file.
func New(cfg *config.Config) (*logrus.Logger, io.Closer, error) {
	return NewWithWriter(cfg, os.Stderr)
}

// NewWithWriter is New with a caller-supplied console writer.
func NewWithWriter(cfg *config.Config, console io.Writer) (*logrus.Logger, io.Closer, error) {
	logger := logrus.New()

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	logger.SetLevel(level)

	switch cfg.LogFormat {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: timestampFormat,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime: "timestamp",
				logrus.FieldKeyMsg:  "message",
			},
		})
	case "text", "":
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: timestampFormat,
		})
	default:
		return nil, nil, fmt.Errorf("unknown log format %q", cfg.LogFormat)
	}

	if cfg.LogFile == "" {
		logger.SetOutput(console)
		return logger, nopCloser{}, nil
	}

	file := &lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    cfg.LogMaxSize,
		MaxBackups: cfg.LogMaxBackups,
		MaxAge:     cfg.LogMaxAge,
		Compress:   true,
	}
	logger.SetOutput(io.MultiWriter(console, file))
	return logger, file, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
