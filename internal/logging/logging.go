package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"dsclean/internal/config"
)

// New creates a logger writing human-readable lines to stderr and, when a
// log file is configured, rotated JSON lines to that file.
// The returned closer releases the file writer.
func New(cfg config.LoggingCfg) (zerolog.Logger, io.Closer) {
	return NewWithWriter(cfg, os.Stderr)
}

// NewWithWriter is New with an explicit console writer
func NewWithWriter(cfg config.LoggingCfg, console io.Writer) (zerolog.Logger, io.Closer) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.WarnLevel
	}

	var out io.Writer = zerolog.ConsoleWriter{Out: console, TimeFormat: "15:04:05"}
	var closer io.Closer = nopCloser{}

	if cfg.File != "" {
		lj := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
		}
		out = zerolog.MultiLevelWriter(out, lj)
		closer = lj
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger(), closer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// KVLogger adapts zerolog to the key/value logging interfaces the
// scan, cleanup and sweeper packages accept.
type KVLogger struct {
	zl zerolog.Logger
}

// KV wraps a zerolog logger
func KV(zl zerolog.Logger) *KVLogger {
	return &KVLogger{zl: zl}
}

// Nop returns a logger that discards everything
func Nop() *KVLogger {
	return KV(zerolog.Nop())
}

func (l *KVLogger) Debug(msg string, args ...interface{}) {
	l.emit(l.zl.Debug(), msg, args)
}

func (l *KVLogger) Info(msg string, args ...interface{}) {
	l.emit(l.zl.Info(), msg, args)
}

func (l *KVLogger) Warn(msg string, args ...interface{}) {
	l.emit(l.zl.Warn(), msg, args)
}

func (l *KVLogger) Error(msg string, args ...interface{}) {
	l.emit(l.zl.Error(), msg, args)
}

// emit turns alternating key/value args into event fields
func (l *KVLogger) emit(e *zerolog.Event, msg string, args []interface{}) {
	if e == nil {
		return
	}
	for i := 0; i+1 < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			key = fmt.Sprint(args[i])
		}
		switch v := args[i+1].(type) {
		case error:
			e = e.AnErr(key, v)
		default:
			e = e.Interface(key, v)
		}
	}
	if len(args)%2 == 1 {
		e = e.Interface("!BADKEY", args[len(args)-1])
	}
	e.Msg(msg)
}
