package servicetest

import (
	"context"
	"sync"

	"github.com/mbeoliero/realty/internal/notify"
)

// Notifier records dispatched side effects instead of running them
type Notifier struct {
	mu            sync.Mutex
	notifications []notify.Notification
	pushes        []notify.Push
	emails        []notify.Email
}

// NewNotifier creates an empty recorder
func NewNotifier() *Notifier {
	return &Notifier{}
}

func (n *Notifier) Notify(_ context.Context, v notify.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notifications = append(n.notifications, v)
}

func (n *Notifier) Push(_ context.Context, v notify.Push) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pushes = append(n.pushes, v)
}

func (n *Notifier) Email(_ context.Context, v notify.Email) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.emails = append(n.emails, v)
}

func (n *Notifier) Notifications() []notify.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notify.Notification(nil), n.notifications...)
}

// NotificationsOf returns the notifications of one type
func (n *Notifier) NotificationsOf(typ string) []notify.Notification {
	var out []notify.Notification
	for _, v := range n.Notifications() {
		if v.Type == typ {
			out = append(out, v)
		}
	}
	return out
}

func (n *Notifier) Pushes() []notify.Push {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notify.Push(nil), n.pushes...)
}

func (n *Notifier) Emails() []notify.Email {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notify.Email(nil), n.emails...)
}
