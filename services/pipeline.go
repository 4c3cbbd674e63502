package services

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"news-verifier/metrics"
	"news-verifier/models"
	"news-verifier/storage"
)

const (
	topicArticleLimit = 3
	titleFallbackLen  = 70
	userArticleID     = "user-1"

	// NoTrustedNewsSummary wird geliefert, wenn kein Artikel die Policy besteht.
	NoTrustedNewsSummary = "No strongly trusted news found."
)

// Pipeline verbindet Suche, Bewertung, Zusammenfassung und Historie.
type Pipeline struct {
	Retriever  *ArticleRetriever
	Evaluator  *RealismEvaluator
	Summarizer *Summarizer
	Recorder   *InteractionRecorder
	Policy     RetentionPolicy
	Pages      PageFetcher      // optional
	Archive    storage.Archiver // optional
	Logger     *zap.Logger
}

// ArticleView ist die Projektion eines behaltenen Artikels in der Antwort.
type ArticleView struct {
	Title        string  `json:"title"`
	URL          string  `json:"url"`
	SourceDomain string  `json:"source_domain"`
	Label        string  `json:"label"`
	Confidence   float64 `json:"confidence"`
}

// TopicResult ist das Ergebnis einer Themensuche.
type TopicResult struct {
	Topic    string        `json:"topic"`
	Summary  string        `json:"summary"`
	Articles []ArticleView `json:"articles"`
}

// CheckInput ist ein vom Nutzer eingereichter Text. Leere Felder gelten als nicht gesetzt.
type CheckInput struct {
	UserID *uint
	Title  string
	Text   string
	URL    string
}

// CheckResult ist das Ergebnis einer direkten Prüfung.
type CheckResult struct {
	Verdict models.Verdict `json:"verdict"`
	Summary string         `json:"summary"`
}

// AskInput ist eine Frage, optional zu einem Thema.
type AskInput struct {
	UserID   *uint
	Question string
	Topic    string
}

// AskResult enthält Frage und Antwort.
type AskResult struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// DispatchResult enthält die erkannte Absicht und das Ergebnis des gewählten Ablaufs.
type DispatchResult struct {
	Intent Intent `json:"intent"`
	Result any    `json:"result"`
}

type scoredArticle struct {
	article models.Article
	verdict models.Verdict
}

// SearchTopic sucht Artikel zum Thema, bewertet die ersten drei nacheinander und
// speichert für jeden behaltenen Artikel eine Interaktion mit derselben Zusammenfassung.
func (p *Pipeline) SearchTopic(ctx context.Context, userID *uint, topic string) (*TopicResult, error) {
	log := p.Logger.With(zap.String("flow", "search"), zap.String("topic", topic))

	articles, err := p.Retriever.Fetch(ctx, topic)
	if err != nil {
		metrics.PipelineRuns.WithLabelValues("search", "error").Inc()
		return nil, err
	}
	if len(articles) > topicArticleLimit {
		articles = articles[:topicArticleLimit]
	}

	var kept []scoredArticle
	for _, article := range articles {
		verdict, err := p.Evaluator.Evaluate(ctx, article)
		if err != nil {
			metrics.PipelineRuns.WithLabelValues("search", "error").Inc()
			return nil, err
		}
		p.archive(ctx, storage.VerdictDocument{Flow: "search", Topic: topic, UserID: userID, Article: article, Verdict: verdict})
		if p.Policy(verdict) {
			kept = append(kept, scoredArticle{article: article, verdict: verdict})
		}
	}

	if len(kept) == 0 {
		log.Info("Kein Artikel hat die Prüfung bestanden", zap.Int("evaluated", len(articles)))
		metrics.PipelineRuns.WithLabelValues("search", "empty").Inc()
		return &TopicResult{Topic: topic, Summary: NoTrustedNewsSummary, Articles: []ArticleView{}}, nil
	}

	keptArticles := make([]models.Article, 0, len(kept))
	for _, k := range kept {
		keptArticles = append(keptArticles, k.article)
	}
	summary, err := p.Summarizer.Summarize(ctx, keptArticles)
	if err != nil {
		metrics.PipelineRuns.WithLabelValues("search", "error").Inc()
		return nil, err
	}

	views := make([]ArticleView, 0, len(kept))
	for _, k := range kept {
		t := topic
		if _, err := p.Recorder.Record(ctx, RecordInput{
			UserID:  userID,
			Type:    models.InteractionSearch,
			Topic:   &t,
			Article: k.article,
			Verdict: k.verdict,
			Summary: summary,
		}); err != nil {
			metrics.PipelineRuns.WithLabelValues("search", "error").Inc()
			return nil, err
		}
		views = append(views, ArticleView{
			Title:        k.article.Title,
			URL:          k.article.URL,
			SourceDomain: k.article.SourceDomain,
			Label:        k.verdict.Label,
			Confidence:   k.verdict.Confidence,
		})
	}

	log.Info("Themensuche abgeschlossen", zap.Int("evaluated", len(articles)), zap.Int("kept", len(kept)))
	metrics.PipelineRuns.WithLabelValues("search", "ok").Inc()
	return &TopicResult{Topic: topic, Summary: summary, Articles: views}, nil
}

// CheckSubmission bewertet einen vom Nutzer eingereichten Artikel, fasst ihn
// zusammen und speichert eine user_input-Interaktion.
func (p *Pipeline) CheckSubmission(ctx context.Context, in CheckInput) (*CheckResult, error) {
	log := p.Logger.With(zap.String("flow", "check"))

	domain, err := sourceDomain(in.URL)
	if err != nil {
		metrics.PipelineRuns.WithLabelValues("check", "error").Inc()
		return nil, err
	}

	text := in.Text
	title := in.Title
	if text == "" && in.URL != "" && p.Pages != nil {
		pageTitle, pageText, err := p.Pages.FetchText(ctx, in.URL)
		if err != nil {
			log.Warn("Seite konnte nicht geladen werden", zap.String("url", in.URL), zap.Error(err))
		} else {
			text = pageText
			if title == "" {
				title = pageTitle
			}
		}
	}
	if title == "" {
		title = truncateRunes(text, titleFallbackLen)
	}

	article := models.Article{
		ArticleID:    userArticleID,
		Title:        title,
		Content:      text,
		URL:          in.URL,
		SourceDomain: domain,
	}

	verdict, err := p.Evaluator.Evaluate(ctx, article)
	if err != nil {
		metrics.PipelineRuns.WithLabelValues("check", "error").Inc()
		return nil, err
	}
	p.archive(ctx, storage.VerdictDocument{Flow: "check", UserID: in.UserID, Article: article, Verdict: verdict})

	summary, err := p.Summarizer.Summarize(ctx, []models.Article{article})
	if err != nil {
		metrics.PipelineRuns.WithLabelValues("check", "error").Inc()
		return nil, err
	}

	if _, err := p.Recorder.Record(ctx, RecordInput{
		UserID:  in.UserID,
		Type:    models.InteractionUserInput,
		Article: article,
		Verdict: verdict,
		Summary: summary,
	}); err != nil {
		metrics.PipelineRuns.WithLabelValues("check", "error").Inc()
		return nil, err
	}

	log.Info("Direkte Prüfung abgeschlossen", zap.String("source_domain", domain), zap.String("label", verdict.Label))
	metrics.PipelineRuns.WithLabelValues("check", "ok").Inc()
	return &CheckResult{Verdict: verdict, Summary: summary}, nil
}

// Ask beantwortet eine Frage. Kontext sind die ersten drei Treffer zum Thema oder,
// ohne Thema, die letzten Interaktionen des Nutzers. Nichts wird gespeichert.
func (p *Pipeline) Ask(ctx context.Context, in AskInput) (*AskResult, error) {
	question := strings.TrimSpace(in.Question)
	if question == "" {
		return nil, ErrEmptyQuestion
	}

	var articles []models.Article
	switch {
	case strings.TrimSpace(in.Topic) != "":
		found, err := p.Retriever.Fetch(ctx, in.Topic)
		if err != nil {
			metrics.PipelineRuns.WithLabelValues("ask", "error").Inc()
			return nil, err
		}
		if len(found) > topicArticleLimit {
			found = found[:topicArticleLimit]
		}
		articles = found
	case in.UserID != nil:
		rows, err := p.Recorder.Recent(ctx, *in.UserID, defaultHistoryLimit)
		if err != nil {
			metrics.PipelineRuns.WithLabelValues("ask", "error").Inc()
			return nil, err
		}
		articles = interactionArticles(rows)
	}

	answer, err := p.Summarizer.AnswerQuestion(ctx, question, articles)
	if err != nil {
		metrics.PipelineRuns.WithLabelValues("ask", "error").Inc()
		return nil, err
	}
	metrics.PipelineRuns.WithLabelValues("ask", "ok").Inc()
	return &AskResult{Question: question, Answer: answer}, nil
}

// Dispatch wählt anhand der Absicht zwischen Prüfung und Themensuche.
func (p *Pipeline) Dispatch(ctx context.Context, userID *uint, message string) (*DispatchResult, error) {
	intent := ClassifyIntent(message)
	p.Logger.Debug("Absicht erkannt", zap.String("intent", string(intent)))

	if intent == IntentCheckUserNews {
		res, err := p.CheckSubmission(ctx, CheckInput{UserID: userID, Text: message, URL: firstURL(message)})
		if err != nil {
			return nil, err
		}
		return &DispatchResult{Intent: intent, Result: res}, nil
	}

	res, err := p.SearchTopic(ctx, userID, message)
	if err != nil {
		return nil, err
	}
	return &DispatchResult{Intent: intent, Result: res}, nil
}

func (p *Pipeline) archive(ctx context.Context, doc storage.VerdictDocument) {
	if p.Archive == nil {
		return
	}
	doc.CreatedAt = time.Now().UTC()
	link, err := p.Archive.StoreVerdict(ctx, doc)
	if err != nil {
		p.Logger.Warn("Verdict konnte nicht archiviert werden", zap.String("article_id", doc.Article.ArticleID), zap.Error(err))
		return
	}
	if link != "" {
		p.Logger.Debug("Verdict archiviert", zap.String("link", link))
	}
}

// sourceDomain liefert das dritte "/"-Segment der URL, z.B. "example.com" für
// "https://example.com/story". Ohne URL ist die Domain leer.
func sourceDomain(url string) (string, error) {
	if url == "" {
		return "", nil
	}
	parts := strings.Split(url, "/")
	if len(parts) < 3 {
		return "", ErrMalformedURL
	}
	return parts[2], nil
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func interactionArticles(rows []models.Interaction) []models.Article {
	articles := make([]models.Article, 0, len(rows))
	for _, row := range rows {
		articles = append(articles, models.Article{
			ArticleID:    "h" + strconv.FormatUint(uint64(row.ID), 10),
			Title:        row.Title,
			Content:      row.RawText,
			URL:          row.URL,
			SourceDomain: sourceDomainOrEmpty(row.URL),
		})
	}
	return articles
}

func sourceDomainOrEmpty(url string) string {
	d, err := sourceDomain(url)
	if err != nil {
		return ""
	}
	return d
}
