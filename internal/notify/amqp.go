package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"order-assistant/internal/domain"
)

const finalizedExchange = "orders.finalized"

// AMQPNotifier publishes order-finalized events on a durable fanout
// exchange.
type AMQPNotifier struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

// Dial connects to RabbitMQ and declares the exchange.
func Dial(host string, port int, user, pass string) (*AMQPNotifier, error) {
	url := fmt.Sprintf("amqp://%s:%s@%s:%d/", user, pass, host, port)
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	if err := ch.ExchangeDeclare(finalizedExchange, "fanout", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}
	return &AMQPNotifier{conn: conn, ch: ch}, nil
}

func (n *AMQPNotifier) Close() {
	if n == nil {
		return
	}
	if n.ch != nil {
		_ = n.ch.Close()
	}
	if n.conn != nil {
		_ = n.conn.Close()
	}
}

func (n *AMQPNotifier) OrderFinalized(ctx context.Context, sessionID string, order domain.FinalizedOrder) error {
	event := domain.OrderFinalizedEvent{
		EventID:      uuid.NewString(),
		SessionID:    sessionID,
		CustomerName: order.CustomerName,
		OrderedItems: order.OrderedItems,
		PickupTime:   order.PickupTime,
		Timestamp:    order.Timestamp.Format(time.RFC3339),
	}
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}

	return n.ch.PublishWithContext(ctx, finalizedExchange, "", false, false, amqp.Publishing{
		DeliveryMode:  amqp.Persistent,
		ContentType:   "application/json",
		MessageId:     event.EventID,
		CorrelationId: sessionID,
		Timestamp:     time.Now().UTC(),
		Body:          body,
	})
}
