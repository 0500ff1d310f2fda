package audit

import (
	"context"
	"log/slog"
	"time"
)

// Publisher captures structured session audit events. It is fail-open:
// a sink failure is logged and never blocks the session operation that
// emitted the event.
type Publisher struct {
	store  Store
	logger *slog.Logger
}

// PublisherOption configures the Publisher.
type PublisherOption func(*Publisher)

// WithLogger sets a logger for sink failures.
func WithLogger(logger *slog.Logger) PublisherOption {
	return func(p *Publisher) {
		p.logger = logger
	}
}

func NewPublisher(store Store, opts ...PublisherOption) *Publisher {
	p := &Publisher{store: store, logger: slog.Default()}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// Emit stamps and appends the event. Always returns to the caller; sink
// failures are logged only.
func (p *Publisher) Emit(ctx context.Context, event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if err := p.store.Append(ctx, event); err != nil {
		p.logger.WarnContext(ctx, "audit append failed",
			"action", event.Action,
			"identity_id", event.IdentityID,
			"error", err,
		)
	}
}
