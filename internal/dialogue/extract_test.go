package dialogue

import (
	"errors"
	"testing"

	"order-assistant/internal/domain"
)

func TestExtractOrder(t *testing.T) {
	text := "---\nFull Name: Jane Lee\nOrdered Items: 2 Pad Thai\nPickup Time: 6:30 PM\n---"
	draft, err := ExtractOrder(text)
	if err != nil {
		t.Fatalf("ExtractOrder: %v", err)
	}
	want := domain.OrderDraft{FullName: "Jane Lee", Items: "2 Pad Thai", PickupTime: "6:30 PM"}
	if draft != want {
		t.Errorf("ExtractOrder = %+v, want %+v", draft, want)
	}
}

func TestExtractOrderSurroundingProse(t *testing.T) {
	text := "Great, here is your order:\n---\nFull Name: Bob Chan\nOrdered Items: 1 Green Curry with tofu\n1 Mango Smoothie\nPickup Time: 7:00 PM\n---\nShall I finalize it?"
	draft, err := ExtractOrder(text)
	if err != nil {
		t.Fatalf("ExtractOrder: %v", err)
	}
	if draft.Items != "1 Green Curry with tofu\n1 Mango Smoothie" {
		t.Errorf("multi-line items = %q", draft.Items)
	}
	if draft.PickupTime != "7:00 PM" {
		t.Errorf("pickup time = %q", draft.PickupTime)
	}
}

func TestExtractOrderNotFound(t *testing.T) {
	cases := []struct {
		name string
		text string
	}{
		{"no block at all", "What time would you like to pick up?"},
		{"missing trailing marker", "---\nFull Name: Jane Lee\nOrdered Items: 2 Pad Thai\nPickup Time: 6:30 PM"},
		{"blank field", "---\nFull Name:\nOrdered Items: 2 Pad Thai\nPickup Time: 6:30 PM\n---"},
		{"labels out of order", "---\nOrdered Items: 2 Pad Thai\nFull Name: Jane Lee\nPickup Time: 6:30 PM\n---"},
		{"empty text", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ExtractOrder(tc.text); !errors.Is(err, ErrNoOrderBlock) {
				t.Errorf("ExtractOrder = %v, want ErrNoOrderBlock", err)
			}
		})
	}
}

func TestHasOrderBlock(t *testing.T) {
	if !HasOrderBlock("---\nFull Name: x\nOrdered Items: y\nPickup Time: z\n---") {
		t.Error("complete block should be detected")
	}
	// Looser than full extraction: blank fields still count as a block.
	if !HasOrderBlock("---\nFull Name:\nOrdered Items: y\nPickup Time: z\n---") {
		t.Error("block with a blank field should still be detected")
	}
	if HasOrderBlock("please tell me your full name") {
		t.Error("plain prose should not be detected")
	}
	if HasOrderBlock("---\nFull Name: x\nOrdered Items: y\nPickup Time: z") {
		t.Error("missing trailing marker should not be detected")
	}
}
