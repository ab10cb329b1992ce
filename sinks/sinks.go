// Package sinks provides promesso log sinks for common logging backends.
//
// Each constructor returns the pair of functions expected by
// promesso.Logger and promesso.NewLoggers:
//
//	promesso.Logger(sinks.Console(slog.LevelInfo))
package sinks

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/augustoroman/promesso"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Injected for testing
var os_Stderr io.Writer = os.Stderr
var os_Stdout io.Writer = os.Stdout

// Slog logs at INFO and ERROR level on l.
func Slog(l *slog.Logger) (log, errLog promesso.LogFunc) {
	return func(msg string, args ...any) {
			l.Log(context.Background(), slog.LevelInfo, msg, args...)
		}, func(msg string, args ...any) {
			l.Log(context.Background(), slog.LevelError, msg, args...)
		}
}

// Console logs human-readable, colored lines on stderr. Color is disabled if
// stderr is not a terminal.
func Console(level slog.Level) (log, errLog promesso.LogFunc) {
	return Slog(slog.New(ConsoleHandler(level)))
}

// ConsoleHandler is the slog.Handler used by Console.
func ConsoleHandler(level slog.Level) slog.Handler {
	w, isTTY := os_Stderr, false
	if f, ok := os_Stderr.(*os.File); ok {
		isTTY = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		w = colorable.NewColorable(f)
	}
	return tint.NewHandler(w, &tint.Options{
		Level:      level,
		NoColor:    !isTTY,
		TimeFormat: "2006-01-02 15:04:05.000",
	})
}

// Zap logs with Infow and Errorw on l.
func Zap(l *zap.Logger) (log, errLog promesso.LogFunc) {
	s := l.WithOptions(zap.AddCallerSkip(2)).Sugar()
	return s.Infow, s.Errorw
}

// RotatingFile creates a zap logger that writes JSON lines both to a
// size-rotated file at path and to stdout. The directory of path is created
// if needed.
func RotatingFile(path string) (*zap.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("log directory for %s: %w", path, err)
	}
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder

	file := zapcore.AddSync(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    50, // MB
		MaxBackups: 3,
		MaxAge:     7, // days
	})
	console := zapcore.Lock(zapcore.AddSync(os_Stdout))

	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewJSONEncoder(cfg), file, zap.InfoLevel),
		zapcore.NewCore(zapcore.NewJSONEncoder(cfg), console, zap.InfoLevel),
	)
	return zap.New(core), nil
}

// Writer logs plain text lines on w, with the key/value pairs formatted
// after the message. It is mostly useful in tests and for piping into tools
// that expect one line per event.
func Writer(w io.Writer) (log, errLog promesso.LogFunc) {
	line := func(level string) promesso.LogFunc {
		return func(msg string, args ...any) {
			fmt.Fprintln(w, append([]any{level, msg}, args...)...)
		}
	}
	return line("INFO"), line("ERROR")
}
