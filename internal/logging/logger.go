// Package logging provides the levelled logger used by publish runs.
package logging

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/conn-castle/publish-guard/internal/messages"
)

// Heading is the logger name printed before every line.
const Heading = "publish"

// Level is a CLI log level.
type Level int

const (
	LevelSilent Level = iota
	LevelError
	LevelWarn
	LevelInfo
	LevelVerbose
)

// DefaultLevel is used when no level is configured.
const DefaultLevel = LevelInfo

var levelNames = map[string]Level{
	"silent":  LevelSilent,
	"error":   LevelError,
	"warn":    LevelWarn,
	"info":    LevelInfo,
	"verbose": LevelVerbose,
}

// ParseLevel parses silent, error, warn, info or verbose. "debug" is accepted as verbose.
func ParseLevel(raw string) (Level, error) {
	key := strings.ToLower(strings.TrimSpace(raw))
	if key == "" {
		return DefaultLevel, nil
	}
	if key == "debug" {
		return LevelVerbose, nil
	}
	level, ok := levelNames[key]
	if !ok {
		return DefaultLevel, fmt.Errorf(messages.LoggingInvalidLevelFmt, raw)
	}
	return level, nil
}

func (l Level) String() string {
	for name, level := range levelNames {
		if level == l {
			return name
		}
	}
	return fmt.Sprintf("level(%d)", int(l))
}

// zapLevel maps l onto the minimum zap level it lets through.
func (l Level) zapLevel() zapcore.Level {
	switch l {
	case LevelError:
		return zapcore.ErrorLevel
	case LevelWarn:
		return zapcore.WarnLevel
	case LevelVerbose:
		return zapcore.DebugLevel
	default:
		return zapcore.InfoLevel
	}
}

// Logger wraps zap with the small surface publish needs. A nil *Logger discards everything.
type Logger struct {
	zap *zap.Logger
}

// New returns a Logger writing console-formatted lines to w.
// color enables ANSI level colors and should only be set for terminals.
func New(w io.Writer, level Level, color bool) *Logger {
	if level == LevelSilent || w == nil {
		return Nop()
	}
	encoderCfg := zapcore.EncoderConfig{
		NameKey:          "logger",
		LevelKey:         "level",
		MessageKey:       "msg",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeLevel:      zapcore.LowercaseLevelEncoder,
		EncodeName:       zapcore.FullNameEncoder,
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: " ",
	}
	if color {
		encoderCfg.EncodeLevel = zapcore.LowercaseColorLevelEncoder
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), zapcore.AddSync(w), level.zapLevel())
	return &Logger{zap: zap.New(core).Named(Heading)}
}

// NewObserved returns a Logger that records entries at or above level, for tests.
func NewObserved(level Level) (*Logger, *observer.ObservedLogs) {
	core, observed := observer.New(level.zapLevel())
	return &Logger{zap: zap.New(core).Named(Heading)}, observed
}

// Nop returns a Logger that discards everything.
func Nop() *Logger {
	return &Logger{zap: zap.NewNop()}
}

func (l *Logger) z() *zap.Logger {
	if l == nil || l.zap == nil {
		return zap.NewNop()
	}
	return l.zap
}

// With returns a Logger that adds fields to every entry.
func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{zap: l.z().With(fields...)}
}

// Debug logs at verbose level.
func (l *Logger) Debug(msg string, fields ...zap.Field) { l.z().Debug(msg, fields...) }

// Info logs at info level.
func (l *Logger) Info(msg string, fields ...zap.Field) { l.z().Info(msg, fields...) }

// Warn logs at warn level.
func (l *Logger) Warn(msg string, fields ...zap.Field) { l.z().Warn(msg, fields...) }

// Error logs at error level.
func (l *Logger) Error(msg string, fields ...zap.Field) { l.z().Error(msg, fields...) }

// Sync flushes buffered entries.
func (l *Logger) Sync() error {
	return l.z().Sync()
}
