package services

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"news-verifier/judgment"
	"news-verifier/models"
)

const (
	taskSummary = "summary"
	taskQA      = "qa"
)

// Summarizer fasst Artikel zusammen und beantwortet Fragen dazu.
type Summarizer struct {
	Judgment judgment.Service
	Logger   *zap.Logger
}

// NewSummarizer erstellt einen neuen Summarizer.
func NewSummarizer(svc judgment.Service, logger *zap.Logger) *Summarizer {
	return &Summarizer{Judgment: svc, Logger: logger}
}

type summaryRequest struct {
	Task     string           `json:"task"`
	Question string           `json:"question,omitempty"`
	Articles []models.Article `json:"articles"`
}

// Summarize liefert das Feld "summary" der Modellantwort oder, falls es fehlt,
// den Rohtext.
func (s *Summarizer) Summarize(ctx context.Context, articles []models.Article) (string, error) {
	raw, err := s.complete(ctx, summaryRequest{Task: taskSummary, Articles: articles})
	if err != nil {
		return "", err
	}
	return judgment.TextField(raw, "summary"), nil
}

// AnswerQuestion beantwortet eine Frage ausschließlich anhand der übergebenen Artikel.
func (s *Summarizer) AnswerQuestion(ctx context.Context, question string, articles []models.Article) (string, error) {
	raw, err := s.complete(ctx, summaryRequest{Task: taskQA, Question: question, Articles: articles})
	if err != nil {
		return "", err
	}
	return judgment.TextField(raw, "answer"), nil
}

func (s *Summarizer) complete(ctx context.Context, req summaryRequest) (string, error) {
	if req.Articles == nil {
		req.Articles = []models.Article{}
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal %s request: %w", req.Task, err)
	}

	raw, err := s.Judgment.Complete(ctx, summarySystemPrompt, string(payload))
	if err != nil {
		return "", fmt.Errorf("judgment %s: %w", req.Task, err)
	}
	s.Logger.Debug("Zusammenfassung erhalten", zap.String("task", req.Task), zap.Int("articles", len(req.Articles)))
	return raw, nil
}
