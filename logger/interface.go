package logger

// Logger is the structured logging handle injected into every component.
// args are alternating key/value pairs appended to msg.
type Logger interface {
	// Debug level logging
	Debug(msg string, args ...any)

	// Info level logging
	Info(msg string, args ...any)

	// Warn level logging
	Warn(msg string, args ...any)

	// Error level logging
	Error(msg string, args ...any)

	// With returns a Logger which adds args to every entry.
	With(args ...any) Logger
}
