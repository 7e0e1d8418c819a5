package mockauth

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"time"
)

// NotificationKind distinguishes the deliveries the engine requests.
type NotificationKind string

const (
	// NotifyVerifyEmail carries a freshly issued email-verification token.
	NotifyVerifyEmail NotificationKind = "verify_email"
	// NotifyResetPassword carries a freshly issued password-reset token.
	NotifyResetPassword NotificationKind = "reset_password"
)

// Notification is handed to the external notifier in place of real email
// delivery. Token is the single-use secret the recipient would receive in a
// link; it must not be logged anywhere else.
type Notification struct {
	Timestamp time.Time        `json:"timestamp"`
	Kind      NotificationKind `json:"kind"`
	Email     string           `json:"email"`
	Token     string           `json:"token"`
}

// NotifierSink receives notifications emitted by the engine. Emit must not
// block indefinitely; the dispatcher already buffers.
type NotifierSink interface {
	Emit(ctx context.Context, n Notification)
}

// NoOpSink discards every notification.
type NoOpSink struct{}

// Emit implements [NotifierSink].
func (NoOpSink) Emit(context.Context, Notification) {}

// ChannelSink forwards notifications to a channel, which tests and in-process
// consumers drain via [ChannelSink.Notifications].
type ChannelSink struct {
	notifications chan Notification
}

// NewChannelSink returns a sink buffering up to buffer notifications.
func NewChannelSink(buffer int) *ChannelSink {
	if buffer <= 0 {
		buffer = 1
	}
	return &ChannelSink{notifications: make(chan Notification, buffer)}
}

// Emit implements [NotifierSink].
func (s *ChannelSink) Emit(ctx context.Context, n Notification) {
	select {
	case s.notifications <- n:
	case <-ctx.Done():
	}
}

// Notifications exposes the receive side of the sink.
func (s *ChannelSink) Notifications() <-chan Notification {
	return s.notifications
}

// JSONWriterSink writes one JSON object per notification, newline-delimited.
// Useful as a stand-in mail log during development.
type JSONWriterSink struct {
	writer io.Writer
	mu     sync.Mutex
}

// NewJSONWriterSink wraps w. Writes are serialized internally.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return &JSONWriterSink{writer: w}
}

// Emit implements [NotifierSink].
func (s *JSONWriterSink) Emit(_ context.Context, n Notification) {
	if s == nil || s.writer == nil {
		return
	}
	data, err := json.Marshal(n)
	if err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, _ = s.writer.Write(data)
	_, _ = s.writer.Write([]byte("\n"))
}
