package dialogue

import "order-assistant/internal/domain"

// Conversation state is never stored: it is recomputed from the latest
// assistant turn every time, which makes it self-healing across restarts
// that preserve the transcript.

// LastAssistantUtterance returns the text of the most recently appended
// assistant turn, or "" if the assistant has not spoken yet.
func LastAssistantUtterance(transcript []domain.Turn) string {
	for i := len(transcript) - 1; i >= 0; i-- {
		if transcript[i].Author == domain.AuthorAssistant {
			return transcript[i].Text
		}
	}
	return ""
}

// AwaitingConfirmation reports whether the conversation has reached the
// point where the next affirmative customer message should finalize the
// order: the latest assistant turn contains the order marker block.
func AwaitingConfirmation(transcript []domain.Turn) bool {
	return HasOrderBlock(LastAssistantUtterance(transcript))
}
