// Package ledger is the durable, append-only record of finalized orders.
package ledger

import (
	"context"
	"errors"

	"order-assistant/internal/common/db"
	"order-assistant/internal/domain"
)

var (
	ErrInvalidDriver = errors.New("invalid ledger driver")
	ErrInvalidConfig = errors.New("invalid ledger configuration")
)

// Ledger records finalized orders. Rows are never updated or deleted.
type Ledger interface {
	// Append durably records one order. Appends from concurrent sessions
	// must not lose previously recorded rows.
	Append(ctx context.Context, order domain.FinalizedOrder) error

	// LoadAll returns every recorded order in append order. An empty or
	// absent store loads as an empty sequence, not an error.
	LoadAll(ctx context.Context) ([]domain.FinalizedOrder, error)

	Close() error
}

// Driver selects a ledger implementation.
type Driver string

const (
	DriverFile     Driver = "file"
	DriverPostgres Driver = "postgres"
)

// Option is a functional option for configuring a ledger.
type Option func(*config)

type config struct {
	path string
	conn *db.Conn
}

// WithPath sets the CSV table path for the file driver.
func WithPath(path string) Option {
	return func(c *config) { c.path = path }
}

// WithConn sets the database pool for the postgres driver.
func WithConn(conn *db.Conn) Option {
	return func(c *config) { c.conn = conn }
}

// New creates a ledger for the given driver.
func New(ctx context.Context, driver Driver, opts ...Option) (Ledger, error) {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	switch driver {
	case DriverFile:
		if cfg.path == "" {
			return nil, ErrInvalidConfig
		}
		return newFileLedger(cfg.path), nil

	case DriverPostgres:
		if cfg.conn == nil {
			return nil, ErrInvalidConfig
		}
		return newPostgresLedger(ctx, cfg.conn)

	default:
		return nil, ErrInvalidDriver
	}
}
