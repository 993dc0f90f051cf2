// Package ledger implements the group-expense operations: recording shared
// expenses, settling shares one at a time or in bulk, and computing balances
// and statistics for a user. Every operation takes an explicit user id.
package ledger

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/shalinipalla005/Walletwise/internal/calculator"
	"github.com/shalinipalla005/Walletwise/internal/events"
	"github.com/shalinipalla005/Walletwise/internal/metrics"
	"github.com/shalinipalla005/Walletwise/internal/models"
	"github.com/shalinipalla005/Walletwise/internal/storage"
)

// Ledger coordinates the store, the event publisher and metrics.
type Ledger struct {
	store           storage.Store
	events          events.Publisher
	metrics         *metrics.Metrics
	now             func() time.Time
	statsDays       int
	defaultCurrency string
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithPublisher sets where change events go. Defaults to events.NopPublisher.
func WithPublisher(p events.Publisher) Option {
	return func(l *Ledger) { l.events = p }
}

// WithMetrics records ledger operations on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(l *Ledger) { l.metrics = m }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// WithStatsDays sets the statistics window used when a caller passes 0 days.
func WithStatsDays(days int) Option {
	return func(l *Ledger) {
		if days > 0 {
			l.statsDays = days
		}
	}
}

// WithDefaultCurrency sets the currency applied to expenses that omit one.
func WithDefaultCurrency(code string) Option {
	return func(l *Ledger) {
		if code != "" {
			l.defaultCurrency = code
		}
	}
}

// New creates a Ledger over store.
func New(store storage.Store, opts ...Option) *Ledger {
	l := &Ledger{
		store:           store,
		events:          events.NopPublisher{},
		now:             func() time.Time { return time.Now().UTC() },
		statsDays:       calculator.DefaultStatsDays,
		defaultCurrency: models.DefaultCurrency,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// publish delivers an event after a committed change. Delivery failures are
// logged and counted, never returned.
func (l *Ledger) publish(ctx context.Context, event events.Event) {
	if err := l.events.Publish(ctx, event); err != nil {
		l.metrics.PublishFailed(event.Type)
		slog.WarnContext(ctx, "Failed to publish ledger event",
			"type", event.Type,
			"expense_id", event.ExpenseID,
			"error", err)
	}
}

// refused reports whether err is an ordinary per-item refusal (missing,
// not owned, already settled) rather than a storage failure.
func refused(err error) bool {
	return errors.Is(err, storage.ErrNotFound) ||
		errors.Is(err, storage.ErrForbidden) ||
		errors.Is(err, storage.ErrAlreadySettled)
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case models.IsValidation(err):
		return "invalid"
	case errors.Is(err, storage.ErrNotFound):
		return "not_found"
	case errors.Is(err, storage.ErrForbidden):
		return "forbidden"
	case errors.Is(err, storage.ErrAlreadySettled):
		return "already_settled"
	default:
		return "error"
	}
}
