package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

type fakeProvider struct {
	name        string
	content     string
	err         error
	calls       int
	hadDeadline bool
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Chat(ctx context.Context, messages []Message) (string, error) {
	f.calls++
	_, f.hadDeadline = ctx.Deadline()
	if f.err != nil {
		return "", f.err
	}
	return f.content, nil
}

func TestGatewayUsesPrimaryWhenHealthy(t *testing.T) {
	primary := &fakeProvider{name: "primary", content: "hello"}
	secondary := &fakeProvider{name: "secondary", content: "unused"}

	gateway := NewProviderGateway(time.Second, primary, secondary)

	result, err := gateway.Chat(context.Background(), []Message{UserMessage("hi")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Content != "hello" {
		t.Fatalf("unexpected content: %q", result.Content)
	}
	if result.Provider != "primary" {
		t.Fatalf("unexpected provider: %q", result.Provider)
	}
	if secondary.calls != 0 {
		t.Fatalf("secondary should not be called, got %d calls", secondary.calls)
	}
}

func TestGatewayFailsOverToSecondary(t *testing.T) {
	primary := &fakeProvider{name: "primary", err: errors.New("connection refused")}
	secondary := &fakeProvider{name: "secondary", content: "backup answer"}

	gateway := NewProviderGateway(time.Second, primary, secondary)

	result, err := gateway.Chat(context.Background(), []Message{UserMessage("hi")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Content != "backup answer" {
		t.Fatalf("unexpected content: %q", result.Content)
	}
	if result.Provider != "secondary" {
		t.Fatalf("unexpected provider: %q", result.Provider)
	}
	if primary.calls != 1 || secondary.calls != 1 {
		t.Fatalf("expected one call each, got primary=%d secondary=%d", primary.calls, secondary.calls)
	}
}

func TestGatewayErrorsWhenAllProvidersFail(t *testing.T) {
	primary := &fakeProvider{name: "primary", err: errors.New("connection refused")}
	secondary := &fakeProvider{name: "secondary", err: errors.New("rate limited")}

	gateway := NewProviderGateway(time.Second, primary, secondary)

	result, err := gateway.Chat(context.Background(), []Message{UserMessage("hi")})
	if err == nil {
		t.Fatal("expected error when all providers fail")
	}
	if result != nil {
		t.Fatalf("expected no partial result, got %+v", result)
	}
	if !strings.Contains(err.Error(), "all chat providers unavailable") {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(err.Error(), "rate limited") {
		t.Fatalf("expected last provider error to be wrapped, got: %v", err)
	}
}

func TestGatewayErrorsWithoutProviders(t *testing.T) {
	gateway := NewProviderGateway(time.Second)

	if _, err := gateway.Chat(context.Background(), []Message{UserMessage("hi")}); err == nil {
		t.Fatal("expected error with no providers configured")
	}
}

func TestGatewayAppliesPerAttemptDeadline(t *testing.T) {
	primary := &fakeProvider{name: "primary", content: "ok"}

	gateway := NewProviderGateway(time.Second, primary)

	if _, err := gateway.Chat(context.Background(), []Message{UserMessage("hi")}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !primary.hadDeadline {
		t.Fatal("expected a deadline on the attempt context")
	}
}

func TestGatewayHonorsCallerCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	primary := &fakeProvider{name: "primary"}
	primary.err = ctx.Err()

	gateway := NewProviderGateway(time.Second, primary)

	if _, err := gateway.Chat(ctx, []Message{UserMessage("hi")}); err == nil {
		t.Fatal("expected error when caller context is cancelled")
	}
}
