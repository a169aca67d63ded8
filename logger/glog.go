package logger

import (
	"log/slog"
	"os"

	slogglog "github.com/searKing/golang/go/log/slog"
)

// GlogLogger implements the Logger interface through a slog.Logger writing glog formatted lines.
type GlogLogger struct {
	depth      int
	slogLogger *slog.Logger
}

func NewGlogLogger() Logger {
	// Create a glog handler that writes to stderr (matching glog's default behavior)
	handler := slogglog.NewGlogHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug, // Allow all levels, glog will handle filtering
	})

	return &GlogLogger{
		depth:      1,
		slogLogger: slog.New(handler),
	}
}

// Debug logs at Debug level using slog
func (logger *GlogLogger) Debug(msg string, args ...any) {
	logger.slogLogger.Debug(msg, args...)
}

// Info logs at Info level using slog
func (logger *GlogLogger) Info(msg string, args ...any) {
	logger.slogLogger.Info(msg, args...)
}

// Warn logs at Warn level using slog
func (logger *GlogLogger) Warn(msg string, args ...any) {
	logger.slogLogger.Warn(msg, args...)
}

// Error logs at Error level using slog
func (logger *GlogLogger) Error(msg string, args ...any) {
	logger.slogLogger.Error(msg, args...)
}

// With returns a logger whose entries all carry args.
func (logger *GlogLogger) With(args ...any) Logger {
	return &GlogLogger{
		depth:      logger.depth,
		slogLogger: logger.slogLogger.With(args...),
	}
}
