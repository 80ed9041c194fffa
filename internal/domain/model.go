package domain

import "time"

// Author tags who wrote a transcript turn.
type Author string

const (
	AuthorCustomer  Author = "customer"
	AuthorAssistant Author = "assistant"
)

// Turn is one message in a session transcript. Turns are immutable once
// appended; a transcript only grows, except for a full session reset.
type Turn struct {
	Author Author `json:"author"`
	Text   string `json:"text"`
}

// OrderDraft is the candidate order derived from the latest assistant turn.
// It is never persisted; it is recomputed from the transcript on demand.
// An empty field means the responder has not produced that value yet.
type OrderDraft struct {
	FullName   string
	Items      string
	PickupTime string
}

// FinalizedOrder is a confirmed order as recorded in the ledger.
// Created at most once per session and immutable afterwards.
type FinalizedOrder struct {
	CustomerName string    `json:"customer_name"`
	OrderedItems string    `json:"ordered_items"`
	PickupTime   string    `json:"pickup_time"`
	Timestamp    time.Time `json:"timestamp"`
}
