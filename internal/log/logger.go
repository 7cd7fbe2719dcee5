// Package log provides structured logging with a per-component context label.
//
// A Logger is created once at startup and handed to every component, which
// derives its own labelled child with Named. There is no package-level logger.
package log

import (
	"errors"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/longkey1/exnota/internal/result"
)

// Logger provides structured logging for one component
type Logger struct {
	zap *zap.Logger
}

// New creates a logger writing JSON lines to os.Stderr at the given level
// (debug, info, warn, error). Unknown levels fall back to info.
func New(level string) *Logger {
	return NewWithWriter(os.Stderr, level)
}

// NewWithWriter creates a logger writing to w
func NewWithWriter(w io.Writer, level string) *Logger {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:     "timestamp",
		LevelKey:    "level",
		NameKey:     "context",
		MessageKey:  "message",
		EncodeTime:  zapcore.RFC3339NanoTimeEncoder,
		EncodeLevel: zapcore.LowercaseLevelEncoder,
		EncodeName:  zapcore.FullNameEncoder,
	}

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(w),
		lvl,
	)
	return &Logger{zap: zap.New(core)}
}

// Nop returns a logger that discards everything
func Nop() *Logger {
	return &Logger{zap: zap.NewNop()}
}

// Named returns a child logger labelled with the given context.
// Labels nest with ".", e.g. "usecase.connect".
func (l *Logger) Named(context string) *Logger {
	return &Logger{zap: l.zap.Named(context)}
}

// With returns a child logger that adds fields to every entry
func (l *Logger) With(fields map[string]any) *Logger {
	return &Logger{zap: l.zap.With(toFields(fields)...)}
}

// Debug logs a debug message
func (l *Logger) Debug(message string, fields map[string]any) {
	l.zap.Debug(message, toFields(fields)...)
}

// Info logs an info message
func (l *Logger) Info(message string, fields map[string]any) {
	l.zap.Info(message, toFields(fields)...)
}

// Warn logs a warning message
func (l *Logger) Warn(message string, fields map[string]any) {
	l.zap.Warn(message, toFields(fields)...)
}

// Error logs an error message
func (l *Logger) Error(message string, fields map[string]any) {
	l.zap.Error(message, toFields(fields)...)
}

// Sync flushes buffered entries
func (l *Logger) Sync() error {
	return l.zap.Sync()
}

// ErrorFields describes err for a log entry. Failures of a Result contribute
// their kind, message and metadata.
func ErrorFields(err error) map[string]any {
	if err == nil {
		return nil
	}

	var rerr *result.Error
	if errors.As(err, &rerr) {
		fields := map[string]any{
			"error_type":    string(rerr.Kind),
			"error_message": rerr.Message,
		}
		if len(rerr.Metadata) > 0 {
			fields["error_metadata"] = map[string]any(rerr.Metadata)
		}
		if rerr.Cause != nil {
			cause := result.SerializeError(rerr.Cause)
			fields["error"] = map[string]any{
				"name":    cause.Name,
				"message": cause.Message,
			}
		}
		return fields
	}

	cause := result.SerializeError(err)
	return map[string]any{
		"error": map[string]any{
			"name":    cause.Name,
			"message": cause.Message,
		},
	}
}

func toFields(fields map[string]any) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	zf := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		zf = append(zf, zap.Any(k, v))
	}
	return zf
}
