// Package notify is the user-feedback capability. Components report status
// through it instead of logging directly, so a UI can render toasts while
// tests assert on exactly-once terminal notifications.
package notify

import (
	"log/slog"
	"sync"
)

// Kind distinguishes notification severities.
type Kind string

const (
	KindPending Kind = "pending"
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Notification is one user-visible status event. Key groups the lifecycle of
// a single logical action: a later notification with the same key replaces
// the earlier one on screen rather than stacking.
type Notification struct {
	Key  string
	Kind Kind
	Text string
}

// Notifier receives user-visible status events.
type Notifier interface {
	Notify(n Notification)
}

// Func adapts a plain function to a Notifier.
type Func func(Notification)

func (f Func) Notify(n Notification) { f(n) }

// Pending marks a keyed action as in progress.
func Pending(n Notifier, key, text string) {
	n.Notify(Notification{Key: key, Kind: KindPending, Text: text})
}

// Success resolves a keyed action.
func Success(n Notifier, key, text string) {
	n.Notify(Notification{Key: key, Kind: KindSuccess, Text: text})
}

// Error fails a keyed action (or reports an unkeyed error with key "").
func Error(n Notifier, key, text string) {
	n.Notify(Notification{Key: key, Kind: KindError, Text: text})
}

// Logger is the default sink: notifications become structured log lines.
type Logger struct {
	log *slog.Logger
}

func NewLogger(log *slog.Logger) *Logger {
	return &Logger{log: log}
}

func (l *Logger) Notify(n Notification) {
	switch n.Kind {
	case KindError:
		l.log.Warn("notification", "key", n.Key, "kind", string(n.Kind), "text", n.Text)
	default:
		l.log.Info("notification", "key", n.Key, "kind", string(n.Kind), "text", n.Text)
	}
}

// Recorder captures notifications for tests.
type Recorder struct {
	mu     sync.Mutex
	events []Notification
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, n)
}

// Events returns a copy of everything recorded so far.
func (r *Recorder) Events() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification{}, r.events...)
}

// ByKey filters recorded notifications to one lifecycle key.
func (r *Recorder) ByKey(key string) []Notification {
	var out []Notification
	for _, n := range r.Events() {
		if n.Key == key {
			out = append(out, n)
		}
	}
	return out
}

// Terminal returns the success/error notifications for a key.
func (r *Recorder) Terminal(key string) []Notification {
	var out []Notification
	for _, n := range r.ByKey(key) {
		if n.Kind == KindSuccess || n.Kind == KindError {
			out = append(out, n)
		}
	}
	return out
}
