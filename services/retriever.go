package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"news-verifier/models"
	"news-verifier/providers"
)

// ArticleRetriever holt Kandidaten-Artikel für ein Thema über einen Such-Provider.
type ArticleRetriever struct {
	Provider providers.SearchProvider
	Logger   *zap.Logger
}

// NewArticleRetriever erstellt einen neuen Retriever.
func NewArticleRetriever(provider providers.SearchProvider, logger *zap.Logger) *ArticleRetriever {
	return &ArticleRetriever{Provider: provider, Logger: logger}
}

// Fetch liefert die Treffer in Provider-Reihenfolge, mit IDs "a0", "a1", ...
func (r *ArticleRetriever) Fetch(ctx context.Context, topic string) ([]models.Article, error) {
	items, err := r.Provider.Search(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("search %s for %q: %w", r.Provider.Name(), topic, err)
	}

	articles := make([]models.Article, 0, len(items))
	for i, item := range items {
		articles = append(articles, models.Article{
			ArticleID:    fmt.Sprintf("a%d", i),
			Title:        item.Title,
			Content:      item.Snippet,
			URL:          item.Link,
			SourceDomain: item.DisplayLink,
		})
	}

	r.Logger.Info("Artikel gefunden",
		zap.String("provider", r.Provider.Name()),
		zap.String("topic", topic),
		zap.Int("count", len(articles)))
	return articles, nil
}
