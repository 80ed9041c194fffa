package dialogue

import (
	"errors"
	"regexp"
	"strings"

	"order-assistant/internal/domain"
)

// ErrNoOrderBlock means the assistant text carries no parsable order block:
// either the delimited template is absent or one of its fields is blank.
// Callers must treat it as "cannot finalize yet" and never substitute a
// default value.
var ErrNoOrderBlock = errors.New("no order block found")

// The responder contract: once all three fields are gathered it emits,
// exactly once, a block of the form
//
//	---
//	Full Name: <value>
//	Ordered Items: <value>
//	Pickup Time: <value>
//	---
//
// orderBlockRe captures the three labeled values; markerBlockRe is the
// looser existence check used to decide whether an incoming "yes" is an
// order confirmation at all.
var (
	orderBlockRe  = regexp.MustCompile(`(?s)---\s*Full Name:\s*(.+?)\s*Ordered Items:\s*(.+?)\s*Pickup Time:\s*(.+?)\s*---`)
	markerBlockRe = regexp.MustCompile(`(?s)---\s*Full Name:.*?Ordered Items:.*?Pickup Time:.*?---`)
)

// ExtractOrder parses the order block out of an assistant utterance.
func ExtractOrder(assistantText string) (domain.OrderDraft, error) {
	m := orderBlockRe.FindStringSubmatch(assistantText)
	if m == nil {
		return domain.OrderDraft{}, ErrNoOrderBlock
	}
	draft := domain.OrderDraft{
		FullName:   strings.TrimSpace(m[1]),
		Items:      strings.TrimSpace(m[2]),
		PickupTime: strings.TrimSpace(m[3]),
	}
	if draft.FullName == "" || draft.Items == "" || draft.PickupTime == "" {
		return domain.OrderDraft{}, ErrNoOrderBlock
	}
	return draft, nil
}

// HasOrderBlock reports whether the text contains the marker block, without
// requiring the fields to parse.
func HasOrderBlock(text string) bool {
	return markerBlockRe.MatchString(text)
}
