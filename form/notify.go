package form

import (
	"sync"

	"github.com/rohanthewiz/logger"
)

// NotificationKind is the tone of a transient notification.
type NotificationKind string

const (
	NotifySuccess NotificationKind = "success"
	NotifyWarning NotificationKind = "warning"
	NotifyError   NotificationKind = "error"
)

// Notification is one fire-and-forget message for the user
type Notification struct {
	Kind    NotificationKind `json:"kind"`
	Message string           `json:"message"`
}

// Notifier shows transient notifications. Implementations must not block.
type Notifier interface {
	Notify(kind NotificationKind, message string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(kind NotificationKind, message string)

func (f NotifierFunc) Notify(kind NotificationKind, message string) { f(kind, message) }

// LogNotifier writes notifications to the application log.
// It is the notifier of headless runs and the fallback when none is given.
type LogNotifier struct{}

func (LogNotifier) Notify(kind NotificationKind, message string) {
	logger.Info("Notification", "kind", string(kind), "message", message)
}

// Queue buffers notifications until a front end renders them.
// The web front end drains it after each request, the terminal front end
// after each submission.
type Queue struct {
	mu    sync.Mutex
	items []Notification
}

// Notify appends a notification
func (q *Queue) Notify(kind NotificationKind, message string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, Notification{Kind: kind, Message: message})
}

// Drain returns the buffered notifications in arrival order and empties the queue.
func (q *Queue) Drain() []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.items
	q.items = nil
	return out
}

// Len returns the number of buffered notifications.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Tee fans a notification out to several notifiers.
func Tee(notifiers ...Notifier) Notifier {
	return NotifierFunc(func(kind NotificationKind, message string) {
		for _, n := range notifiers {
			if n != nil {
				n.Notify(kind, message)
			}
		}
	})
}
