package google

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"news-verifier/config"
	"news-verifier/providers"
)

// Fetcher implementiert das SearchProvider-Interface für die Google Custom Search API.
type Fetcher struct {
	Config     *config.Config
	Logger     *zap.Logger
	HTTPClient *http.Client
}

// NewFetcher erstellt einen neuen Google-Fetcher.
func NewFetcher(cfg *config.Config, logger *zap.Logger) *Fetcher {
	return &Fetcher{
		Config:     cfg,
		Logger:     logger,
		HTTPClient: &http.Client{Timeout: cfg.SearchTimeout},
	}
}

// Name gibt den Namen des Providers zurück.
func (f *Fetcher) Name() string {
	return "google"
}

// Search führt die Suche aus. Eine leere Trefferliste ist kein Fehler.
func (f *Fetcher) Search(ctx context.Context, query string) ([]providers.SearchItem, error) {
	log := f.Logger.With(zap.String("query", query))
	log.Info("Starte Suche bei Google Custom Search.")

	params := url.Values{}
	params.Set("key", f.Config.GoogleAPIKey)
	params.Set("cx", f.Config.GoogleCX)
	params.Set("q", query)
	searchURL := f.Config.SearchBaseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	resp, err := f.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("search request failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var searchResponse SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResponse); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	items := make([]providers.SearchItem, 0, len(searchResponse.Items))
	for _, item := range searchResponse.Items {
		items = append(items, providers.SearchItem{
			Title:       item.Title,
			Snippet:     item.Snippet,
			Link:        item.Link,
			DisplayLink: item.DisplayLink,
		})
	}

	log.Info("Suche abgeschlossen", zap.Int("found_items", len(items)))
	return items, nil
}
