package mockauth

import (
	"context"
	"time"

	"github.com/artintellm/mockauth/jwt"
	"github.com/artintellm/mockauth/password"
)

// Engine orchestrates the authentication workflows over an [AccountStore].
// Instances are assembled through [Builder.Build] and treated as immutable
// afterwards; all methods are safe for concurrent use.
type Engine struct {
	config       Config
	store        AccountStore
	passwordHash *password.Argon2
	jwtManager   *jwt.Manager
	notifier     *notifyDispatcher
	metrics      *Metrics
}

// Close flushes and stops the notification dispatcher. It is safe to call
// more than once and on a nil engine.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	if e.notifier != nil {
		e.notifier.Close()
	}
}

// NotificationsDropped reports how many notifications were discarded because
// the dispatcher buffer was full.
func (e *Engine) NotificationsDropped() uint64 {
	if e == nil || e.notifier == nil {
		return 0
	}
	return e.notifier.Dropped()
}

// MetricsSnapshot returns a copy of the engine counters.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil || e.metrics == nil {
		return MetricsSnapshot{Counters: map[MetricID]uint64{}}
	}
	return e.metrics.Snapshot()
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Inc(id)
}

func (e *Engine) emitNotification(ctx context.Context, kind NotificationKind, email, token string) {
	if e == nil || e.notifier == nil {
		return
	}
	e.notifier.Emit(ctx, Notification{
		Timestamp: time.Now(),
		Kind:      kind,
		Email:     email,
		Token:     token,
	})
}

// accountForToken resolves a session token to its live account, failing
// closed on any codec error or a dangling subject.
func (e *Engine) accountForToken(ctx context.Context, token string) (Account, error) {
	if e == nil || e.jwtManager == nil || e.store == nil {
		return Account{}, ErrEngineNotReady
	}

	claims, err := e.jwtManager.ParseAccess(token)
	if err != nil {
		e.metricInc(MetricTokenRejected)
		return Account{}, ErrUnauthorized
	}

	account, err := e.store.GetAccountByID(ctx, claims.Subject)
	if err != nil {
		e.metricInc(MetricTokenRejected)
		return Account{}, ErrUnauthorized
	}

	return account, nil
}
