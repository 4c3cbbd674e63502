package providers

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
)

type countingProvider struct {
	calls int
	err   error
}

func (p *countingProvider) Name() string { return "counting" }

func (p *countingProvider) Search(ctx context.Context, query string) ([]SearchItem, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return []SearchItem{{Title: query, Link: "https://example.com/" + query}}, nil
}

func TestCachedProvider_HitsCache(t *testing.T) {
	inner := &countingProvider{}
	cached := NewCachedProvider(inner, time.Minute, zap.NewNop())

	first, err := cached.Search(context.Background(), "Topic")
	if err != nil {
		t.Fatalf("first search failed: %v", err)
	}
	// Groß-/Kleinschreibung und Leerzeichen teilen sich einen Eintrag
	second, err := cached.Search(context.Background(), "  topic ")
	if err != nil {
		t.Fatalf("second search failed: %v", err)
	}
	if inner.calls != 1 {
		t.Errorf("expected 1 upstream call, got %d", inner.calls)
	}
	if len(second) != 1 || second[0].Title != first[0].Title {
		t.Errorf("cached result differs: %+v vs %+v", second, first)
	}

	second[0].Title = "mutated"
	third, _ := cached.Search(context.Background(), "topic")
	if third[0].Title != "Topic" {
		t.Errorf("cache entry was mutated through returned slice: %+v", third)
	}
}

func TestCachedProvider_DoesNotCacheErrors(t *testing.T) {
	inner := &countingProvider{err: errors.New("upstream down")}
	cached := NewCachedProvider(inner, time.Minute, zap.NewNop())

	for i := 0; i < 2; i++ {
		if _, err := cached.Search(context.Background(), "x"); err == nil {
			t.Fatal("expected error")
		}
	}
	if inner.calls != 2 {
		t.Errorf("expected errors to bypass cache, got %d calls", inner.calls)
	}
	if cached.Name() != "counting" {
		t.Errorf("unexpected name %s", cached.Name())
	}
}
