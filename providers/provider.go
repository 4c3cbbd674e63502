package providers

import "context"

// SearchItem ist ein einzelner Treffer eines Such-Providers im gemeinsamen Format.
type SearchItem struct {
	Title       string `json:"title"`
	Snippet     string `json:"snippet"`
	Link        string `json:"link"`
	DisplayLink string `json:"displayLink"`
}

// SearchProvider ist das Interface, das jeder Such-Provider implementieren muss.
type SearchProvider interface {
	// Search führt eine Suche für den gegebenen Begriff durch. Die Reihenfolge der Treffer bleibt erhalten.
	Search(ctx context.Context, query string) ([]SearchItem, error)

	// Name gibt den eindeutigen Namen des Providers zurück (z.B. "google").
	Name() string
}
