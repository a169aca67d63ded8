package logger

import "sync"

// Level names the severity of a recorded entry.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// badKey is the key given to a trailing value without a key, as slog does.
const badKey = "!BADKEY"

// Entry is a single log call captured by RecordingLogger.
type Entry struct {
	Level   Level
	Message string
	Fields  map[string]any
}

// RecordingLogger keeps every entry in memory. It is safe for concurrent use and
// is meant for tests which assert on what a component logged.
type RecordingLogger struct {
	sink   *recordSink
	fields []any
}

type recordSink struct {
	mu      sync.Mutex
	entries []Entry
}

func NewRecordingLogger() *RecordingLogger {
	return &RecordingLogger{sink: &recordSink{}}
}

func (r *RecordingLogger) Debug(msg string, args ...any) { r.record(LevelDebug, msg, args) }
func (r *RecordingLogger) Info(msg string, args ...any)  { r.record(LevelInfo, msg, args) }
func (r *RecordingLogger) Warn(msg string, args ...any)  { r.record(LevelWarn, msg, args) }
func (r *RecordingLogger) Error(msg string, args ...any) { r.record(LevelError, msg, args) }

func (r *RecordingLogger) With(args ...any) Logger {
	return &RecordingLogger{
		sink:   r.sink,
		fields: mergeFields(r.fields, args),
	}
}

// Entries returns a copy of everything logged so far, including entries made
// through loggers derived with With.
func (r *RecordingLogger) Entries() []Entry {
	r.sink.mu.Lock()
	defer r.sink.mu.Unlock()
	return append([]Entry(nil), r.sink.entries...)
}

// EntriesAt returns the recorded entries with the given level.
func (r *RecordingLogger) EntriesAt(level Level) []Entry {
	var filtered []Entry
	for _, e := range r.Entries() {
		if e.Level == level {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

func (r *RecordingLogger) record(level Level, msg string, args []any) {
	fields := make(map[string]any)
	all := mergeFields(r.fields, args)
	for i := 0; i < len(all); i += 2 {
		key, ok := all[i].(string)
		if !ok {
			continue
		}
		if i+1 < len(all) {
			fields[key] = all[i+1]
		} else {
			fields[badKey] = key
		}
	}

	r.sink.mu.Lock()
	defer r.sink.mu.Unlock()
	r.sink.entries = append(r.sink.entries, Entry{Level: level, Message: msg, Fields: fields})
}

// mergeFields copies base and appends args so that loggers derived with With
// never share a backing array.
func mergeFields(base []any, args []any) []any {
	merged := make([]any, 0, len(base)+len(args))
	merged = append(merged, base...)
	return append(merged, args...)
}
