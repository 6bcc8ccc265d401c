// Package notify delivers desktop notifications.
package notify

import (
	"context"
	"sync"

	"github.com/gen2brain/beeep"
)

// Message is a single desktop notification.
type Message struct {
	Title string
	Body  string
}

// Notifier shows notifications to the user.
type Notifier interface {
	Notify(ctx context.Context, msg Message) error
}

// Desktop shows notifications through the OS notification service.
type Desktop struct {
	// Icon is an optional path to an icon shown with the notification.
	Icon string
}

// NewDesktop creates a desktop notifier.
func NewDesktop(icon string) *Desktop {
	return &Desktop{Icon: icon}
}

// Notify sends a notification using beeep.
func (d *Desktop) Notify(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return beeep.Notify(msg.Title, msg.Body, d.Icon)
}

// Recorder keeps notifications in memory instead of showing them.
type Recorder struct {
	mu       sync.Mutex
	messages []Message
}

// Notify records msg.
func (r *Recorder) Notify(_ context.Context, msg Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, msg)
	return nil
}

// Messages returns a copy of the recorded notifications.
func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Message, len(r.messages))
	copy(out, r.messages)
	return out
}
