package dialogue

import "regexp"

// Whole-word matching so "yesterday" never counts as a "yes". The
// vocabulary is deliberately generous: a spurious confirmation is bounded
// by the finalization latch, a missed one just costs the customer a retry.
var confirmationRe = regexp.MustCompile(`(?i)\b(yes|confirm|finalize|sure|go ahead|y)\b`)

// IsConfirmation classifies a customer message as an affirmative order
// confirmation.
func IsConfirmation(text string) bool {
	return confirmationRe.MatchString(text)
}
