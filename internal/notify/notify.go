package notify

import "log/slog"

// Severity classifies a notification for presentation.
type Severity string

const (
	Success Severity = "success"
	Error   Severity = "error"
)

// Notifier surfaces outcomes to the user. Fire-and-forget: callers never
// consult it for control flow.
type Notifier interface {
	Notify(title, description string, severity Severity)
}

// Log is a Notifier backed by slog, used when no richer surface is attached.
type Log struct {
	Logger *slog.Logger
}

func (l Log) Notify(title, description string, severity Severity) {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if severity == Error {
		logger.Error(title, "detail", description)
		return
	}

	logger.Info(title, "detail", description)
}

// Recorder captures notifications for tests.
type Recorder struct {
	Entries []Entry
}

type Entry struct {
	Title       string
	Description string
	Severity    Severity
}

func (r *Recorder) Notify(title, description string, severity Severity) {
	r.Entries = append(r.Entries, Entry{Title: title, Description: description, Severity: severity})
}
