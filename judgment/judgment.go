// Package judgment kapselt den Zugriff auf das Sprachmodell, das Artikel bewertet
// und zusammenfasst. Aufrufer sehen nur rohen Text und müssen ihn selbst parsen.
package judgment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrEmptyResponse wird geliefert, wenn der Provider keinen Text zurückgibt.
var ErrEmptyResponse = errors.New("judgment: empty response")

// Service schickt eine Systemanweisung plus JSON-Payload an ein Sprachmodell.
type Service interface {
	Complete(ctx context.Context, systemInstruction, userPayload string) (string, error)
}

// Config enthält die Provider-Einstellungen.
type Config struct {
	Provider  string // "openai" oder "anthropic"
	APIKey    string
	Model     string
	BaseURL   string
	Timeout   time.Duration
	MaxTokens int
	// RequestsPerSecond > 0 aktiviert einen Rate-Limiter vor dem Provider.
	RequestsPerSecond float64
}

// New erstellt den konfigurierten Service. Er wird einmal beim Start gebaut und
// an Evaluator und Summarizer übergeben.
func New(cfg Config) (Service, error) {
	var (
		svc Service
		err error
	)
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "openai", "":
		svc, err = NewOpenAIService(cfg)
	case "anthropic", "claude":
		svc, err = NewAnthropicService(cfg)
	default:
		return nil, fmt.Errorf("unknown judgment provider: %s (supported: openai, anthropic)", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}
	if cfg.RequestsPerSecond > 0 {
		svc = NewRateLimited(svc, cfg.RequestsPerSecond)
	}
	return svc, nil
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
