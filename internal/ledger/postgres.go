package ledger

import (
	"context"
	"fmt"

	"order-assistant/internal/common/db"
	"order-assistant/internal/domain"
)

// postgresLedger records orders in a table, one row per finalized order.
// The database serializes concurrent appends, so no process-level lock is
// needed.
type postgresLedger struct {
	conn *db.Conn
}

func newPostgresLedger(ctx context.Context, conn *db.Conn) (*postgresLedger, error) {
	l := &postgresLedger{conn: conn}
	if err := l.migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to migrate orders table: %w", err)
	}
	return l, nil
}

func (l *postgresLedger) migrate(ctx context.Context) error {
	_, err := l.conn.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS orders (
			id            SERIAL PRIMARY KEY,
			customer_name TEXT NOT NULL,
			ordered_items TEXT NOT NULL,
			pickup_time   TEXT NOT NULL,
			created_at    TIMESTAMPTZ NOT NULL
		)
	`)
	return err
}

func (l *postgresLedger) Append(ctx context.Context, order domain.FinalizedOrder) error {
	_, err := l.conn.Exec(ctx, `
		INSERT INTO orders (customer_name, ordered_items, pickup_time, created_at)
		VALUES ($1, $2, $3, $4)
	`, order.CustomerName, order.OrderedItems, order.PickupTime, order.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	return nil
}

func (l *postgresLedger) LoadAll(ctx context.Context) ([]domain.FinalizedOrder, error) {
	rows, err := l.conn.Query(ctx, `
		SELECT customer_name, ordered_items, pickup_time, created_at
		FROM orders
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	orders := []domain.FinalizedOrder{}
	for rows.Next() {
		var o domain.FinalizedOrder
		if err := rows.Scan(&o.CustomerName, &o.OrderedItems, &o.PickupTime, &o.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read orders: %w", err)
	}
	return orders, nil
}

func (l *postgresLedger) Close() error {
	l.conn.Close()
	return nil
}
