package dialogue

import (
	"context"
	"errors"
	"fmt"
	"time"

	"order-assistant/internal/common/logger"
	"order-assistant/internal/domain"
	"order-assistant/internal/hours"
	"order-assistant/internal/ledger"
	"order-assistant/internal/notify"
	"order-assistant/internal/responder"
	"order-assistant/internal/session"
)

const (
	alreadyFinalizedReply = "Your order has already been finalized. Please call the restaurant directly to make any changes."
	extractionFailedReply = "Sorry, I couldn't read your order details. Please repeat your order and confirm again."
)

// Engine processes one customer message at a time per session: gate check,
// confirmation detection, extraction and ledger write, or a responder call.
// The per-session finalization latch lives in the session store; everything
// else is derived from the transcript on every message.
type Engine struct {
	sessions   session.Store
	ledger     ledger.Ledger
	responder  responder.Responder
	notifier   notify.Notifier
	schedule   hours.Schedule
	restaurant string
	clock      func() time.Time
	lg         *logger.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the wall clock, for tests.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) { e.clock = clock }
}

// NewEngine wires the dialogue engine to its collaborators.
func NewEngine(sessions session.Store, led ledger.Ledger, resp responder.Responder, notifier notify.Notifier, schedule hours.Schedule, restaurant string, lg *logger.Logger, opts ...Option) *Engine {
	e := &Engine{
		sessions:   sessions,
		ledger:     led,
		responder:  resp,
		notifier:   notifier,
		schedule:   schedule,
		restaurant: restaurant,
		clock:      time.Now,
		lg:         lg,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// HandleMessage processes one incoming customer message and returns the
// reply to send back. Outside business hours nothing is processed and no
// session state changes.
func (e *Engine) HandleMessage(ctx context.Context, sessionID, text string) (string, error) {
	now := e.clock()
	if !e.schedule.IsOpen(now) {
		e.lg.Info("closed_hours_rejection", map[string]any{"session_id": sessionID})
		return e.closedReply(now), nil
	}

	sess, err := e.sessions.Get(ctx, sessionID)
	if err != nil {
		return "", fmt.Errorf("failed to load session: %w", err)
	}
	if sess == nil {
		sess = &session.Data{ID: sessionID}
		if err := e.sessions.Create(ctx, sess); err != nil {
			return "", fmt.Errorf("failed to create session: %w", err)
		}
	}

	// The latch is terminal: once finalized, every further message for
	// this session gets the same fixed reply and the ledger is never
	// touched again.
	if sess.Finalized {
		return e.exchange(ctx, sess, text, alreadyFinalizedReply)
	}

	if IsConfirmation(text) && AwaitingConfirmation(sess.Transcript) {
		return e.finalize(ctx, sess, text, now)
	}

	reply, err := e.responder.Respond(ctx, sess.Transcript, text)
	if err != nil {
		// Turn not appended; the customer simply retries.
		return "", fmt.Errorf("failed to get responder reply: %w", err)
	}
	return e.exchange(ctx, sess, text, reply)
}

// finalize runs the one-shot open -> finalized transition. The latch is
// only taken after extraction succeeded and the ledger write went through;
// any failure before that leaves the guard open so the customer can retry.
func (e *Engine) finalize(ctx context.Context, sess *session.Data, text string, now time.Time) (string, error) {
	draft, err := ExtractOrder(LastAssistantUtterance(sess.Transcript))
	if errors.Is(err, ErrNoOrderBlock) {
		// Marker present but fields unparsable. Recover locally: do not
		// latch, ask the customer to repeat the order.
		e.lg.Error("order_extraction_failed", err, map[string]any{"session_id": sess.ID})
		return e.exchange(ctx, sess, text, extractionFailedReply)
	}

	order := domain.FinalizedOrder{
		CustomerName: draft.FullName,
		OrderedItems: draft.Items,
		PickupTime:   draft.PickupTime,
		Timestamp:    now,
	}
	if err := e.ledger.Append(ctx, order); err != nil {
		// Guard stays open and the message is not appended, otherwise the
		// order would be silently lost forever.
		return "", fmt.Errorf("failed to record order: %w", err)
	}

	sess.Finalized = true
	e.lg.Info("order_finalized", map[string]any{
		"session_id":    sess.ID,
		"customer_name": order.CustomerName,
		"pickup_time":   order.PickupTime,
	})

	if err := e.notifier.OrderFinalized(ctx, sess.ID, order); err != nil {
		// The order is already durable; a lost notification is only logged.
		e.lg.Error("notify_failed", err, map[string]any{"session_id": sess.ID})
	}

	reply := fmt.Sprintf("Your order has been saved, %s! Looking forward to seeing you at %s.", order.CustomerName, order.PickupTime)
	return e.exchange(ctx, sess, text, reply)
}

// Reset clears a session's transcript and finalization state, simulating a
// new contact event, and returns the missed-call auto-reply.
func (e *Engine) Reset(ctx context.Context, sessionID string) (string, error) {
	if err := e.sessions.Delete(ctx, sessionID); err != nil {
		return "", fmt.Errorf("failed to clear session: %w", err)
	}
	if err := e.sessions.Create(ctx, &session.Data{ID: sessionID}); err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	e.lg.Info("session_reset", map[string]any{"session_id": sessionID})

	now := e.clock()
	if !e.schedule.IsOpen(now) {
		if iv, ok := e.schedule.Today(now); ok {
			return fmt.Sprintf("Hi, thank you for calling %s. We're currently closed. Our hours today are %s to %s. Please give us a call when we are open!", e.restaurant, iv.Open, iv.Close), nil
		}
		return fmt.Sprintf("Hi, thank you for calling %s. We're closed today. Please give us a call when we are open!", e.restaurant), nil
	}
	return fmt.Sprintf("Hi, thank you for calling %s. Unfortunately, we missed your call. If you're trying to place an order, please reply with your full name, your order, and what time you'd like to pick up the food. If not, feel free to call us back!", e.restaurant), nil
}

// Transcript returns the session's turns in order, for display. A missing
// session reads as an empty transcript.
func (e *Engine) Transcript(ctx context.Context, sessionID string) ([]domain.Turn, error) {
	sess, err := e.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if sess == nil {
		return []domain.Turn{}, nil
	}
	return sess.Transcript, nil
}

// exchange appends the customer message and the reply to the transcript
// and persists the session.
func (e *Engine) exchange(ctx context.Context, sess *session.Data, customerText, reply string) (string, error) {
	sess.Transcript = append(sess.Transcript,
		domain.Turn{Author: domain.AuthorCustomer, Text: customerText},
		domain.Turn{Author: domain.AuthorAssistant, Text: reply},
	)
	if err := e.sessions.Update(ctx, sess); err != nil {
		if sess.Finalized {
			// The ledger row exists; failing the request here would invite a
			// re-confirmation and a duplicate order. Keep the reply.
			e.lg.Error("session_update_failed", err, map[string]any{"session_id": sess.ID})
			return reply, nil
		}
		return "", fmt.Errorf("failed to update session: %w", err)
	}
	return reply, nil
}

func (e *Engine) closedReply(now time.Time) string {
	if iv, ok := e.schedule.Today(now); ok {
		return fmt.Sprintf("We're currently closed (hours today: %s to %s). Please try again when we're open; your message was not processed.", iv.Open, iv.Close)
	}
	return "We're closed today. Please try again when we're open; your message was not processed."
}
