// Package responder is the adapter for the external conversational engine
// that drafts replies and decides what to ask next. The core treats it as a
// black box bound by one contract: it emits the delimited order block once,
// and only once, all three order fields are known.
package responder

import (
	"context"

	"order-assistant/internal/domain"
)

// Responder produces the next assistant utterance for a conversation.
type Responder interface {
	Respond(ctx context.Context, transcript []domain.Turn, message string) (string, error)
}
