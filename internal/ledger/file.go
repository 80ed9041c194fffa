package ledger

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"order-assistant/internal/domain"
)

// TimestampLayout is the wall-clock format stored in the timestamp column.
const TimestampLayout = "2006-01-02 15:04:05"

var csvHeader = []string{"Customer Name", "Order Items", "Pickup Time", "Timestamp"}

// fileLedger keeps the whole table in one CSV file. Append reads the
// existing table, adds one row and rewrites the file atomically via a
// temp-file rename. A mutex serializes appends from concurrent sessions;
// order volume is low, so whole-table rewrites are acceptable.
type fileLedger struct {
	mu   sync.Mutex
	path string
}

func newFileLedger(path string) *fileLedger {
	return &fileLedger{path: path}
}

func (l *fileLedger) Append(ctx context.Context, order domain.FinalizedOrder) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	orders, err := l.load()
	if err != nil {
		return fmt.Errorf("failed to load ledger: %w", err)
	}
	orders = append(orders, order)
	if err := l.save(orders); err != nil {
		return fmt.Errorf("failed to save ledger: %w", err)
	}
	return nil
}

func (l *fileLedger) LoadAll(ctx context.Context) ([]domain.FinalizedOrder, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.load()
}

func (l *fileLedger) Close() error { return nil }

func (l *fileLedger) load() ([]domain.FinalizedOrder, error) {
	f, err := os.Open(l.path)
	if os.IsNotExist(err) {
		return []domain.FinalizedOrder{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return []domain.FinalizedOrder{}, nil
	}

	orders := make([]domain.FinalizedOrder, 0, len(records)-1)
	for _, rec := range records[1:] { // skip header
		if len(rec) != len(csvHeader) {
			return nil, fmt.Errorf("malformed ledger row: %v", rec)
		}
		ts, err := time.ParseInLocation(TimestampLayout, rec[3], time.Local)
		if err != nil {
			return nil, fmt.Errorf("malformed ledger timestamp %q: %w", rec[3], err)
		}
		orders = append(orders, domain.FinalizedOrder{
			CustomerName: rec[0],
			OrderedItems: rec[1],
			PickupTime:   rec[2],
			Timestamp:    ts,
		})
	}
	return orders, nil
}

func (l *fileLedger) save(orders []domain.FinalizedOrder) error {
	tmp, err := os.CreateTemp(filepath.Dir(l.path), ".orders-*.csv")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(csvHeader); err != nil {
		tmp.Close()
		return err
	}
	for _, o := range orders {
		rec := []string{o.CustomerName, o.OrderedItems, o.PickupTime, o.Timestamp.Format(TimestampLayout)}
		if err := w.Write(rec); err != nil {
			tmp.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), l.path)
}
