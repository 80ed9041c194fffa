package domain

// OrderFinalizedEvent is published to the notification exchange after an
// order has been durably recorded in the ledger.
type OrderFinalizedEvent struct {
	EventID      string `json:"event_id"`
	SessionID    string `json:"session_id"`
	CustomerName string `json:"customer_name"`
	OrderedItems string `json:"ordered_items"`
	PickupTime   string `json:"pickup_time"`
	Timestamp    string `json:"timestamp"`
}
