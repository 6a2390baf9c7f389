package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap's SugaredLogger.
type Logger struct {
	*zap.SugaredLogger
}

// Unknown level strings log everything
const defaultZapLevel = zapcore.DebugLevel

func toZapLevel(levelStr string) zapcore.Level {
	switch levelStr {
	case InfoLevel:
		return zapcore.InfoLevel
	case WarnLevel:
		return zapcore.WarnLevel
	case ErrorLevel:
		return zapcore.ErrorLevel
	default:
		return defaultZapLevel
	}
}

func newConsoleCore(w io.Writer, level zapcore.Level) zapcore.Core {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder

	encoder := zapcore.NewConsoleEncoder(cfg)
	return zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(w)), zap.NewAtomicLevelAt(level))
}

// New builds a console logger on stdout
func New(levelStr string) *Logger {
	return NewWithWriter(os.Stdout, levelStr)
}

// NewWithWriter builds a console logger on w
func NewWithWriter(w io.Writer, levelStr string) *Logger {
	core := newConsoleCore(w, toZapLevel(levelStr))
	return &Logger{SugaredLogger: zap.New(core).Sugar()}
}

// Nop returns a logger that discards everything
func Nop() *Logger {
	return &Logger{SugaredLogger: zap.NewNop().Sugar()}
}
