package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"news-verifier/config"
	"news-verifier/judgment"
	"news-verifier/providers"
	"news-verifier/providers/google"
	"news-verifier/signals"
	"news-verifier/storage"
)

// NewPipelineFromConfig baut die komplette Pipeline aus der Konfiguration. Der
// Judgment-Service wird genau einmal erzeugt und von Evaluator und Summarizer geteilt.
func NewPipelineFromConfig(ctx context.Context, cfg *config.Config, db *gorm.DB, logger *zap.Logger) (*Pipeline, error) {
	svc, err := judgment.New(judgment.Config{
		Provider:          cfg.JudgmentProvider,
		APIKey:            cfg.JudgmentAPIKey,
		Model:             cfg.JudgmentModel,
		BaseURL:           cfg.JudgmentBaseURL,
		Timeout:           cfg.JudgmentTimeout,
		MaxTokens:         cfg.JudgmentMaxTokens,
		RequestsPerSecond: cfg.JudgmentRPS,
	})
	if err != nil {
		return nil, fmt.Errorf("judgment service: %w", err)
	}

	reputation := signals.NewReputationTable()
	if cfg.ReputationFile != "" {
		n, err := reputation.LoadFile(cfg.ReputationFile)
		if err != nil {
			return nil, err
		}
		logger.Info("Reputationstabelle ergänzt", zap.String("file", cfg.ReputationFile), zap.Int("domains", n))
	}

	var search providers.SearchProvider = google.NewFetcher(cfg, logger.Named("google"))
	if cfg.SearchCacheTTL > 0 {
		search = providers.NewCachedProvider(search, cfg.SearchCacheTTL, logger.Named("search_cache"))
	}

	policy, err := PolicyByName(cfg.RetentionPolicy)
	if err != nil {
		return nil, err
	}

	var archive storage.Archiver = storage.NopArchiver{}
	if cfg.ArchiveEnabled() {
		client, err := storage.NewS3Client(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("archive client: %w", err)
		}
		archive = storage.NewS3Archiver(client, cfg.ArchiveS3URL, cfg.ArchiveS3Bucket)
		logger.Info("Verdict-Archiv aktiv", zap.String("bucket", cfg.ArchiveS3Bucket))
	}

	p := &Pipeline{
		Retriever:  NewArticleRetriever(search, logger.Named("retriever")),
		Evaluator:  NewRealismEvaluator(svc, reputation, signals.NewStyleExtractor(), logger.Named("realism")),
		Summarizer: NewSummarizer(svc, logger.Named("summarizer")),
		Recorder:   NewInteractionRecorder(db, logger.Named("recorder")),
		Policy:     policy,
		Archive:    archive,
		Logger:     logger.Named("pipeline"),
	}
	if cfg.FetchURLContent {
		p.Pages = NewHTMLPageFetcher(cfg.SearchTimeout)
	}
	return p, nil
}
