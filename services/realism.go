package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"news-verifier/judgment"
	"news-verifier/metrics"
	"news-verifier/models"
)

// SourceScorer liefert die Reputation einer Quell-Domain.
type SourceScorer interface {
	ScoreSource(domain string) models.ReputationInfo
}

// StyleExtractor berechnet Stilmerkmale eines Textes.
type StyleExtractor interface {
	ExtractStyle(text string) models.StyleFeatures
}

// Namen der Signale, die in jedes Verdict eingehen.
var usedTools = []string{"source_reputation", "style_features"}

const fallbackReason = "LLM output not valid JSON"

// RealismEvaluator kombiniert Reputation, Stilmerkmale und das Urteil des Sprachmodells.
type RealismEvaluator struct {
	Judgment judgment.Service
	Sources  SourceScorer
	Style    StyleExtractor
	Logger   *zap.Logger
}

// NewRealismEvaluator erstellt einen neuen Evaluator.
func NewRealismEvaluator(svc judgment.Service, sources SourceScorer, style StyleExtractor, logger *zap.Logger) *RealismEvaluator {
	return &RealismEvaluator{Judgment: svc, Sources: sources, Style: style, Logger: logger}
}

type evidencePayload struct {
	Article          models.Article        `json:"article"`
	SourceReputation models.ReputationInfo `json:"source_reputation"`
	StyleFeatures    models.StyleFeatures  `json:"style_features"`
}

// Evaluate erzeugt genau ein Verdict für den Artikel. Fehler des Modell-Aufrufs
// werden ohne Wiederholung an den Aufrufer gegeben.
func (e *RealismEvaluator) Evaluate(ctx context.Context, article models.Article) (models.Verdict, error) {
	log := e.Logger.With(zap.String("article_id", article.ArticleID), zap.String("source_domain", article.SourceDomain))

	payload, err := json.Marshal(evidencePayload{
		Article:          article,
		SourceReputation: e.Sources.ScoreSource(article.SourceDomain),
		StyleFeatures:    e.Style.ExtractStyle(article.Content),
	})
	if err != nil {
		return models.Verdict{}, fmt.Errorf("marshal evidence: %w", err)
	}
	log.Debug("Sende Evidenz an das Sprachmodell", zap.ByteString("payload", payload))

	raw, err := e.Judgment.Complete(ctx, realismSystemPrompt, string(payload))
	if err != nil {
		return models.Verdict{}, fmt.Errorf("judgment for article %s: %w", article.ArticleID, err)
	}
	log.Debug("Antwort des Sprachmodells", zap.String("raw", raw))

	body, err := judgment.ParseObject(raw)
	if err != nil {
		log.Warn("Modellantwort ist kein gültiges JSON, nutze Fallback", zap.Error(err))
		metrics.FallbackVerdicts.Inc()
		body = fallbackBody()
	}

	confidence, err := coerceConfidence(body)
	if err != nil {
		return models.Verdict{}, fmt.Errorf("article %s: %w", article.ArticleID, err)
	}

	verdict := models.Verdict{
		ArticleID:         article.ArticleID,
		Label:             coerceLabel(body["label"]),
		Confidence:        confidence,
		Reasons:           normalizeReasons(body["reasons"]),
		SupportingSources: normalizeSources(body["supporting_sources"]),
		UsedTools:         append([]string(nil), usedTools...),
	}
	metrics.Verdicts.WithLabelValues(metricLabel(verdict.Label)).Inc()
	log.Info("Artikel bewertet", zap.String("label", verdict.Label), zap.Float64("confidence", verdict.Confidence))
	return verdict, nil
}

func fallbackBody() map[string]any {
	return map[string]any{
		"label":              models.LabelUncertain,
		"confidence":         0.5,
		"reasons":            []any{fallbackReason},
		"supporting_sources": []any{},
	}
}

// metricLabel begrenzt die Label-Werte der Metrik auf eine feste Menge.
func metricLabel(label string) string {
	switch label {
	case models.LabelReal, models.LabelFake, models.LabelUncertain:
		return label
	}
	return "other"
}

func coerceLabel(v any) string {
	s, ok := v.(string)
	if !ok {
		return models.LabelUncertain
	}
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return models.LabelUncertain
	}
	return s
}

// coerceConfidence: fehlt das Feld, gilt 0.5. Zahlen, numerische Strings und
// Booleans werden übernommen, alles andere ist ErrInvalidConfidence.
func coerceConfidence(body map[string]any) (float64, error) {
	v, ok := body["confidence"]
	if !ok {
		return 0.5, nil
	}

	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidConfidence, t)
		}
		f = parsed
	case bool:
		if t {
			f = 1
		}
	default:
		return 0, fmt.Errorf("%w: %v", ErrInvalidConfidence, v)
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidConfidence, f)
	}
	return math.Min(1, math.Max(0, f)), nil
}

// normalizeReasons macht aus jedem Rohwert eine geordnete Liste von Strings.
func normalizeReasons(v any) []string {
	switch t := v.(type) {
	case nil:
		return []string{}
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			out = append(out, judgment.Stringify(item))
		}
		return out
	default:
		// String, Objekt oder Skalar: genau ein Element
		return []string{judgment.Stringify(t)}
	}
}

func normalizeSources(v any) []json.RawMessage {
	var items []any
	switch t := v.(type) {
	case nil:
		return []json.RawMessage{}
	case []any:
		items = t
	default:
		items = []any{t}
	}

	out := make([]json.RawMessage, 0, len(items))
	for _, item := range items {
		b, err := json.Marshal(item)
		if err != nil {
			continue
		}
		out = append(out, b)
	}
	return out
}
