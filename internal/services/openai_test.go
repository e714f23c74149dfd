package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"alfredoptarigan/ai-interviewer/internal/config"
)

func newChatTestServer(t *testing.T, respond func(w http.ResponseWriter, req chatCompletionRequest)) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Errorf("unexpected authorization header: %q", got)
		}
		var payload chatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("failed to decode chat payload: %v", err)
		}
		respond(w, payload)
	}))
}

func testProviderConfig(baseURL string) config.ProviderConfig {
	return config.ProviderConfig{
		Name:    "primary",
		BaseURL: baseURL,
		APIKey:  "sk-test",
		Model:   "llama-3.3-70b",
	}
}

func TestOpenAIProviderChat(t *testing.T) {
	server := newChatTestServer(t, func(w http.ResponseWriter, payload chatCompletionRequest) {
		if payload.Model != "llama-3.3-70b" {
			t.Errorf("unexpected model: %q", payload.Model)
		}
		if payload.Temperature != 0.7 || payload.MaxTokens != 4096 {
			t.Errorf("unexpected sampling params: temp=%v max_tokens=%d", payload.Temperature, payload.MaxTokens)
		}
		if len(payload.Messages) != 2 || payload.Messages[0].Role != RoleSystem {
			t.Errorf("unexpected messages: %+v", payload.Messages)
		}
		fmt.Fprint(w, `{"choices": [{"message": {"role": "assistant", "content": "Nice answer."}}]}`)
	})
	defer server.Close()

	provider := NewOpenAICompatProvider(testProviderConfig(server.URL))

	content, err := provider.Chat(context.Background(), []Message{
		SystemMessage("You are an interviewer."),
		UserMessage("Grade this answer."),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if content != "Nice answer." {
		t.Fatalf("unexpected content: %q", content)
	}
	if provider.Name() != "primary" {
		t.Fatalf("unexpected name: %q", provider.Name())
	}
}

func TestOpenAIProviderErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"error": {"message": "rate limit exceeded"}}`)
	}))
	defer server.Close()

	provider := NewOpenAICompatProvider(testProviderConfig(server.URL))

	_, err := provider.Chat(context.Background(), []Message{UserMessage("hi")})
	if err == nil {
		t.Fatal("expected error on 429 status")
	}
	if !strings.Contains(err.Error(), "429") || !strings.Contains(err.Error(), "rate limit exceeded") {
		t.Fatalf("error should carry status and detail, got: %v", err)
	}
}

func TestOpenAIProviderEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"choices": []}`)
	}))
	defer server.Close()

	provider := NewOpenAICompatProvider(testProviderConfig(server.URL))

	if _, err := provider.Chat(context.Background(), []Message{UserMessage("hi")}); err == nil {
		t.Fatal("expected error for empty choices")
	}
}

func TestOpenAIProviderHonorsContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	provider := NewOpenAICompatProvider(testProviderConfig(server.URL))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := provider.Chat(ctx, []Message{UserMessage("hi")}); err == nil {
		t.Fatal("expected error on cancelled context")
	}
}
