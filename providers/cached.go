package providers

import (
	"context"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// CachedProvider hält Suchergebnisse für eine feste Zeit im Speicher.
type CachedProvider struct {
	next   SearchProvider
	cache  *gocache.Cache
	logger *zap.Logger
}

// NewCachedProvider legt einen Cache vor den Provider. Nur erfolgreiche Suchen werden gespeichert.
func NewCachedProvider(next SearchProvider, ttl time.Duration, logger *zap.Logger) *CachedProvider {
	return &CachedProvider{
		next:   next,
		cache:  gocache.New(ttl, 2*ttl),
		logger: logger,
	}
}

// Name gibt den Namen des darunterliegenden Providers zurück.
func (p *CachedProvider) Name() string {
	return p.next.Name()
}

// Search liefert Treffer aus dem Cache oder fragt den Provider.
func (p *CachedProvider) Search(ctx context.Context, query string) ([]SearchItem, error) {
	key := p.next.Name() + ":" + strings.ToLower(strings.TrimSpace(query))
	if val, found := p.cache.Get(key); found {
		p.logger.Debug("Suchergebnis aus dem Cache", zap.String("query", query))
		return cloneItems(val.([]SearchItem)), nil
	}

	items, err := p.next.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	p.cache.SetDefault(key, cloneItems(items))
	return items, nil
}

func cloneItems(items []SearchItem) []SearchItem {
	out := make([]SearchItem, len(items))
	copy(out, items)
	return out
}
