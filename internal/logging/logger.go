// Package logging provides the leveled console logger used by the CLI,
// built on zap with an optional plain-text file sink.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/backmassage/fltools/internal/config"
	"github.com/backmassage/fltools/internal/term"
)

const timeLayout = "2006-01-02 15:04:05"

// Level colors, used only when colors are enabled.
var levelColors = map[zapcore.Level]string{
	zapcore.DebugLevel: "\033[1;96m",
	zapcore.InfoLevel:  "\033[1;94m",
	zapcore.WarnLevel:  "\033[1;93m",
	zapcore.ErrorLevel: "\033[1;91m",
}

// Logger provides leveled, optionally colored logging with optional file sink.
// ERROR goes to stderr, everything else to stdout unless the output format
// is JSON or YAML, in which case all levels go to stderr.
type Logger struct {
	z    *zap.Logger
	s    *zap.SugaredLogger
	file *os.File
}

// NewLogger configures colors from cfg and optionally opens cfg.LogFile in
// append mode. Call Close when done.
func NewLogger(cfg *config.Config) (*Logger, error) {
	color := term.Configure(cfg.ColorMode)

	level := zapcore.InfoLevel
	if cfg.Verbose {
		level = zapcore.DebugLevel
	}
	enabled := zap.NewAtomicLevelAt(level)

	// Structured output owns stdout, so logs move to stderr entirely.
	split := zapcore.ErrorLevel
	if cfg.Format == config.FormatJSON || cfg.Format == config.FormatYAML {
		split = zapcore.DebugLevel
	}
	toStdout := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return enabled.Enabled(l) && l < split
	})
	toStderr := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return enabled.Enabled(l) && l >= split
	})

	console := zapcore.NewConsoleEncoder(encoderConfig(color))
	cores := []zapcore.Core{
		zapcore.NewCore(console, zapcore.Lock(os.Stdout), toStdout),
		zapcore.NewCore(console, zapcore.Lock(os.Stderr), toStderr),
	}

	l := &Logger{}
	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		l.file = f
		plain := zapcore.NewConsoleEncoder(encoderConfig(false))
		cores = append(cores, zapcore.NewCore(plain, zapcore.AddSync(f), enabled))
	}

	l.z = zap.New(zapcore.NewTee(cores...))
	l.s = l.z.Sugar()
	return l, nil
}

// Nop returns a logger that discards everything. Useful in tests.
func Nop() *Logger {
	z := zap.NewNop()
	return &Logger{z: z, s: z.Sugar()}
}

func encoderConfig(color bool) zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:          "ts",
		LevelKey:         "level",
		MessageKey:       "msg",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeTime:       zapcore.TimeEncoderOfLayout(timeLayout),
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: " ",
		EncodeLevel: func(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
			label := "[" + l.CapitalString() + "]"
			if c, ok := levelColors[l]; ok && color {
				label = c + label + "\033[0m"
			}
			enc.AppendString(label)
		},
	}
}

// Zap returns the underlying structured logger, for handing to library
// packages that log with fields.
func (l *Logger) Zap() *zap.Logger { return l.z }

// Close flushes and closes the log file if one was opened.
func (l *Logger) Close() error {
	_ = l.z.Sync()
	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}

// Info logs at INFO level.
func (l *Logger) Info(format string, args ...interface{}) {
	l.s.Info(fmt.Sprintf(format, args...))
}

// Warn logs at WARN level.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.s.Warn(fmt.Sprintf(format, args...))
}

// Error logs at ERROR level, to stderr.
func (l *Logger) Error(format string, args ...interface{}) {
	l.s.Error(fmt.Sprintf(format, args...))
}

// Debug logs at DEBUG level; dropped unless the logger was built verbose.
func (l *Logger) Debug(format string, args ...interface{}) {
	l.s.Debug(fmt.Sprintf(format, args...))
}
