package responder

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"order-assistant/internal/domain"
)

func TestOpenAIResponder_Respond(t *testing.T) {
	var gotReq struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header: %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "What time would you like to pick it up?"}},
			},
		})
	}))
	defer server.Close()

	r := NewOpenAIResponder(server.URL, "test-model", "test-key", "", time.Second)
	transcript := []domain.Turn{
		{Author: domain.AuthorCustomer, Text: "1 Pad Thai please"},
		{Author: domain.AuthorAssistant, Text: "Can I get your full name?"},
	}
	reply, err := r.Respond(context.Background(), transcript, "Jane Lee")
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}
	if reply != "What time would you like to pick it up?" {
		t.Errorf("unexpected reply: %q", reply)
	}

	if gotReq.Model != "test-model" {
		t.Errorf("model = %q", gotReq.Model)
	}
	// system + 2 transcript turns + new message
	if len(gotReq.Messages) != 4 {
		t.Fatalf("sent %d messages, want 4", len(gotReq.Messages))
	}
	if gotReq.Messages[0].Role != "system" {
		t.Errorf("first message role = %q, want system", gotReq.Messages[0].Role)
	}
	if gotReq.Messages[2].Role != "assistant" {
		t.Errorf("assistant turn mapped to role %q", gotReq.Messages[2].Role)
	}
	if gotReq.Messages[3].Content != "Jane Lee" {
		t.Errorf("last message = %q, want the new customer message", gotReq.Messages[3].Content)
	}
}

func TestOpenAIResponder_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	r := NewOpenAIResponder(server.URL, "", "", "", time.Second)
	if _, err := r.Respond(context.Background(), nil, "hi"); err == nil {
		t.Error("should error on non-200 status")
	}
}

func TestOpenAIResponder_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer server.Close()

	r := NewOpenAIResponder(server.URL, "", "", "", time.Second)
	if _, err := r.Respond(context.Background(), nil, "hi"); err == nil {
		t.Error("should error on empty choices")
	}
}

func TestOpenAIResponder_Defaults(t *testing.T) {
	r := NewOpenAIResponder("", "", "", "", 0)
	if r.baseURL != "https://api.openai.com" {
		t.Errorf("baseURL = %q", r.baseURL)
	}
	if r.model != "gpt-4o" {
		t.Errorf("model = %q", r.model)
	}
	if r.faq == "" {
		t.Error("faq should default to the built-in text")
	}
}
