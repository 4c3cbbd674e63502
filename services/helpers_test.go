package services

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"news-verifier/providers"
	"news-verifier/signals"
	"news-verifier/storage"
)

// stubJudgment beantwortet Bewertungs- und Zusammenfassungs-Prompts getrennt.
type stubJudgment struct {
	mu       sync.Mutex
	realism  func(payload string) (string, error)
	summary  func(payload string) (string, error)
	payloads []string
	calls    map[string]int
}

func (s *stubJudgment) Complete(ctx context.Context, system, payload string) (string, error) {
	s.mu.Lock()
	if s.calls == nil {
		s.calls = map[string]int{}
	}
	s.payloads = append(s.payloads, payload)
	s.mu.Unlock()

	if system == realismSystemPrompt {
		s.count("realism")
		if s.realism == nil {
			return `{"label":"real","confidence":0.9,"reasons":["ok"],"supporting_sources":[]}`, nil
		}
		return s.realism(payload)
	}
	s.count("summary")
	if s.summary == nil {
		return `{"summary":"stub summary"}`, nil
	}
	return s.summary(payload)
}

func (s *stubJudgment) count(kind string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[kind]++
}

func (s *stubJudgment) Calls(kind string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[kind]
}

type stubSearch struct {
	items []providers.SearchItem
	err   error
	calls int
}

func (s *stubSearch) Name() string { return "stub" }

func (s *stubSearch) Search(ctx context.Context, query string) ([]providers.SearchItem, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.items, nil
}

var dbCounter atomic.Int64

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:services_test_%d?mode=memory&cache=shared", dbCounter.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := storage.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTestPipeline(t *testing.T, j *stubJudgment, search *stubSearch) (*Pipeline, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	log := zap.NewNop()
	return &Pipeline{
		Retriever:  NewArticleRetriever(search, log),
		Evaluator:  NewRealismEvaluator(j, signals.NewReputationTable(), signals.NewStyleExtractor(), log),
		Summarizer: NewSummarizer(j, log),
		Recorder:   NewInteractionRecorder(db, log),
		Policy:     VerbatimPolicy,
		Archive:    storage.NopArchiver{},
		Logger:     log,
	}, db
}

