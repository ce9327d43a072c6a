package config

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	LogFormatJSON = "json"
	LogFormatText = "text"

	LogWriterConsole = "console"
	LogWriterFile    = "file"
)

// NewLogger assembles the process logger from the log section. The
// returned closer releases the file writer, if any; it is non-nil even
// when there is nothing to close.
func NewLogger(cfg Log) (*slog.Logger, io.Closer, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}

	var writers []io.Writer
	var closers multiCloser
	for _, w := range cfg.Writer {
		switch strings.ToLower(w) {
		case LogWriterConsole:
			writers = append(writers, os.Stderr)
		case LogWriterFile:
			file := newFileWriter(cfg.File)
			writers = append(writers, file)
			closers = append(closers, file)
		default:
			return nil, nil, errors.Errorf("unknown log writer %q", w)
		}
	}
	if len(writers) == 0 {
		writers = append(writers, os.Stderr)
	}

	out := io.MultiWriter(writers...)
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case LogFormatText:
		handler = slog.NewTextHandler(out, opts)
	default:
		handler = slog.NewJSONHandler(out, opts)
	}

	return slog.New(handler), closers, nil
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, errors.Errorf("unknown log level %q", s)
}

func newFileWriter(cfg FileLog) *lumberjack.Logger {
	path := cfg.Path
	if path == "" {
		path = "httpkit.log"
	}
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}
}

type multiCloser []io.Closer

func (m multiCloser) Close() error {
	var first error
	for _, c := range m {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
