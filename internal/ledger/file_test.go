package ledger

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"order-assistant/internal/domain"
)

func testOrder(name string) domain.FinalizedOrder {
	ts, _ := time.ParseInLocation(TimestampLayout, "2024-06-03 18:05:00", time.Local)
	return domain.FinalizedOrder{
		CustomerName: name,
		OrderedItems: "2 Pad Thai, 1 Thai Iced Tea",
		PickupTime:   "6:30 PM",
		Timestamp:    ts,
	}
}

func TestFileLedgerAbsentFileLoadsEmpty(t *testing.T) {
	l, err := New(context.Background(), DriverFile, WithPath(filepath.Join(t.TempDir(), "orders.csv")))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	orders, err := l.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(orders) != 0 {
		t.Errorf("LoadAll of absent file = %d orders, want 0", len(orders))
	}
}

func TestFileLedgerRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "orders.csv")

	l, err := New(ctx, DriverFile, WithPath(path))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	want := testOrder("Jane Lee")
	if err := l.Append(ctx, want); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := l.Append(ctx, testOrder("Bob Chan")); err != nil {
		t.Fatalf("Append: %v", err)
	}

	// Reopen to prove durability, not just in-memory state.
	reopened, err := New(ctx, DriverFile, WithPath(path))
	if err != nil {
		t.Fatalf("New (reopen): %v", err)
	}
	orders, err := reopened.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("LoadAll = %d orders, want 2", len(orders))
	}
	got := orders[0]
	if got.CustomerName != want.CustomerName || got.OrderedItems != want.OrderedItems ||
		got.PickupTime != want.PickupTime || !got.Timestamp.Equal(want.Timestamp) {
		t.Errorf("round-trip mismatch: got %+v, want %+v", got, want)
	}
	if orders[1].CustomerName != "Bob Chan" {
		t.Errorf("append order not preserved: %+v", orders[1])
	}
}

func TestFileLedgerFieldsWithCommasAndNewlines(t *testing.T) {
	ctx := context.Background()
	l, err := New(ctx, DriverFile, WithPath(filepath.Join(t.TempDir(), "orders.csv")))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	want := testOrder("Jane Lee")
	want.OrderedItems = "1 Green Curry, tofu\n1 Mango Smoothie, 50% sweet"
	if err := l.Append(ctx, want); err != nil {
		t.Fatalf("Append: %v", err)
	}
	orders, err := l.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(orders) != 1 || orders[0].OrderedItems != want.OrderedItems {
		t.Errorf("quoted field mangled: %+v", orders)
	}
}

func TestNewRejectsBadDriverConfig(t *testing.T) {
	ctx := context.Background()
	if _, err := New(ctx, Driver("dynamodb")); !errors.Is(err, ErrInvalidDriver) {
		t.Errorf("New(dynamodb) = %v, want ErrInvalidDriver", err)
	}
	if _, err := New(ctx, DriverFile); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("New(file) without path = %v, want ErrInvalidConfig", err)
	}
	if _, err := New(ctx, DriverPostgres); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("New(postgres) without conn = %v, want ErrInvalidConfig", err)
	}
}
