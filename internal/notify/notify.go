// Package notify broadcasts finalized orders so downstream consumers (a
// kitchen display, the owner's phone) learn about them without polling the
// ledger.
package notify

import (
	"context"

	"order-assistant/internal/domain"
)

// Notifier announces a finalized order. Publishing is best effort: the
// order is already durable in the ledger by the time a notifier runs, so a
// failed publish is logged by the caller and never undoes a finalization.
type Notifier interface {
	OrderFinalized(ctx context.Context, sessionID string, order domain.FinalizedOrder) error
	Close()
}

// NopNotifier is used when RabbitMQ is disabled in the config.
type NopNotifier struct{}

func (NopNotifier) OrderFinalized(ctx context.Context, sessionID string, order domain.FinalizedOrder) error {
	return nil
}

func (NopNotifier) Close() {}
