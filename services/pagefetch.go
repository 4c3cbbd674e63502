package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const maxPageBytes = 2 << 20

// PageFetcher lädt den lesbaren Text einer Seite.
type PageFetcher interface {
	FetchText(ctx context.Context, url string) (title, text string, err error)
}

// HTMLPageFetcher extrahiert Titel und Absätze aus HTML-Seiten.
type HTMLPageFetcher struct {
	HTTPClient *http.Client
}

// NewHTMLPageFetcher erstellt einen neuen Fetcher mit Timeout.
func NewHTMLPageFetcher(timeout time.Duration) *HTMLPageFetcher {
	return &HTMLPageFetcher{HTTPClient: &http.Client{Timeout: timeout}}
}

// FetchText holt die Seite und gibt Titel und Absatztext zurück. Absätze innerhalb
// von <article> haben Vorrang vor allen übrigen <p>-Elementen.
func (f *HTMLPageFetcher) FetchText(ctx context.Context, url string) (string, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", "", fmt.Errorf("build page request: %w", err)
	}
	req.Header.Set("User-Agent", "news-verifier/1.0")

	resp, err := f.HTTPClient.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("fetch page %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("fetch page %s: status %d", url, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return "", "", fmt.Errorf("parse page %s: %w", url, err)
	}
	doc.Find("script, style, noscript").Remove()

	title := cleanParagraph(doc.Find("title").First().Text())

	paragraphs := doc.Find("article p")
	if paragraphs.Length() == 0 {
		paragraphs = doc.Find("p")
	}
	var parts []string
	paragraphs.Each(func(_ int, s *goquery.Selection) {
		if t := cleanParagraph(s.Text()); t != "" {
			parts = append(parts, t)
		}
	})

	return title, strings.Join(parts, "\n"), nil
}
