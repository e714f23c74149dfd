package services

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

// ChatGateway is the single entry point for all LLM calls. It hides the
// primary/secondary failover policy from the rest of the pipeline.
type ChatGateway interface {
	Chat(ctx context.Context, messages []Message) (*ChatResult, error)
}

type providerGateway struct {
	providers []ChatProvider
	timeout   time.Duration
}

// NewProviderGateway builds a gateway that tries the given providers strictly
// in order. Each attempt runs under its own deadline; retry and backoff policy
// stays with the caller.
func NewProviderGateway(timeout time.Duration, providers ...ChatProvider) ChatGateway {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &providerGateway{
		providers: providers,
		timeout:   timeout,
	}
}

// Chat implements ChatGateway. Attempts are sequential, never concurrent, so a
// slow primary can never race a secondary into double-billing. A timed-out
// attempt is treated like any other provider failure.
func (g *providerGateway) Chat(ctx context.Context, messages []Message) (*ChatResult, error) {
	if len(g.providers) == 0 {
		return nil, fmt.Errorf("no chat providers configured")
	}

	var lastErr error
	for _, provider := range g.providers {
		attemptCtx, cancel := context.WithTimeout(ctx, g.timeout)
		content, err := provider.Chat(attemptCtx, messages)
		cancel()

		if err == nil {
			return &ChatResult{Content: content, Provider: provider.Name()}, nil
		}

		lastErr = err
		log.WithError(err).
			WithField("provider", provider.Name()).
			Warn("chat provider failed, failing over")
	}

	return nil, fmt.Errorf("all chat providers unavailable: %w", lastErr)
}
