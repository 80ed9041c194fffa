package responder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"order-assistant/internal/domain"
)

const defaultSystemPrompt = `You are an assistant helping a small Thai restaurant manage orders via SMS.

In addition to taking orders, you can also answer customer questions based on the following FAQ:

%s

Your job is to:
1. Extract the customer's full name.
2. Extract the order items.
3. Extract the desired pickup time.
4. Answer any customer questions using the FAQ above.

Keep track of what information you have, and politely ask for any missing pieces.
Once all 3 pieces are received, ask if the customer wants to confirm the order.

Only after they say "Yes" or something similar, finalize the order and output it in the following format exactly (so we can save it):

---
Full Name: [name]
Ordered Items: [items]
Pickup Time: [time]
---

Then generate a friendly confirmation message. Never output the "---" delimited block before all three pieces are known.`

// DefaultFAQ ships with the service and can be overridden in the config
// file.
const DefaultFAQ = `Frequently Asked Questions (FAQ):

1. What are your hours?
   - We are open Monday to Friday from 11:00 AM to 9:00 PM, Saturday from 12:00 PM to 10:00 PM, and Sunday from 12:00 PM to 8:00 PM.

2. What drinks do you offer?
   - Thai Iced Tea, Thai Iced Coffee, Coconut Water, Lemongrass Tea, Mango Smoothie, Jasmine Tea.

3. Is the Pad Thai vegetarian?
   - By default, it comes with shrimp. You may request tofu or chicken instead.

4. Do you offer gluten-free options?
   - Yes, we can customize dishes to be gluten-free upon request.

5. Do you have vegan options?
   - Yes! Vegan options include Tofu Pad Thai, Vegetable Spring Rolls, and Green Curry with tofu.`

// OpenAIResponder talks to an OpenAI-compatible chat completions endpoint.
type OpenAIResponder struct {
	baseURL string
	model   string
	apiKey  string
	faq     string
	client  *http.Client
}

// NewOpenAIResponder creates a responder adapter. Empty arguments fall back
// to sensible defaults; timeout bounds the single chat completion call,
// which is the only high-latency point in message processing.
func NewOpenAIResponder(baseURL, model, apiKey, faq string, timeout time.Duration) *OpenAIResponder {
	if baseURL == "" {
		baseURL = "https://api.openai.com"
	}
	if model == "" {
		model = "gpt-4o"
	}
	if faq == "" {
		faq = DefaultFAQ
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &OpenAIResponder{
		baseURL: baseURL,
		model:   model,
		apiKey:  apiKey,
		faq:     faq,
		client:  &http.Client{Timeout: timeout},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Temperature float64       `json:"temperature"`
	Messages    []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Respond maps the transcript plus the new customer message onto role
// messages and returns the model's reply.
func (r *OpenAIResponder) Respond(ctx context.Context, transcript []domain.Turn, message string) (string, error) {
	messages := make([]chatMessage, 0, len(transcript)+2)
	messages = append(messages, chatMessage{Role: "system", Content: fmt.Sprintf(defaultSystemPrompt, r.faq)})
	for _, turn := range transcript {
		role := "user"
		if turn.Author == domain.AuthorAssistant {
			role = "assistant"
		}
		messages = append(messages, chatMessage{Role: role, Content: turn.Text})
	}
	messages = append(messages, chatMessage{Role: "user", Content: message})

	body, err := json.Marshal(chatRequest{Model: r.model, Temperature: 0.3, Messages: messages})
	if err != nil {
		return "", fmt.Errorf("failed to marshal chat request: %w", err)
	}

	endpoint := strings.TrimRight(r.baseURL, "/") + "/v1/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if r.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+r.apiKey)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call responder: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("responder returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode responder reply: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("responder reply contained no choices")
	}
	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}
