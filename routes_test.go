package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"news-verifier/models"
	"news-verifier/providers"
	"news-verifier/services"
	"news-verifier/signals"
	"news-verifier/storage"
)

type fakeJudgment struct {
	verdict string
}

func (f *fakeJudgment) Complete(ctx context.Context, system, payload string) (string, error) {
	if strings.Contains(payload, `"task"`) {
		if strings.Contains(payload, `"task":"qa"`) {
			return `{"answer":"It rained."}`, nil
		}
		return `{"summary":"Short summary."}`, nil
	}
	return f.verdict, nil
}

type fakeSearch struct {
	items []providers.SearchItem
	err   error
}

func (f *fakeSearch) Name() string { return "fake" }

func (f *fakeSearch) Search(ctx context.Context, query string) ([]providers.SearchItem, error) {
	return f.items, f.err
}

var routeDBCounter atomic.Int64

func setupTestRouter(t *testing.T, verdict string, search *fakeSearch) (*gin.Engine, *services.Pipeline) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:routes_test_%d?mode=memory&cache=shared", routeDBCounter.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := storage.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	log := zap.NewNop()
	j := &fakeJudgment{verdict: verdict}
	pipeline := &services.Pipeline{
		Retriever:  services.NewArticleRetriever(search, log),
		Evaluator:  services.NewRealismEvaluator(j, signals.NewReputationTable(), signals.NewStyleExtractor(), log),
		Summarizer: services.NewSummarizer(j, log),
		Recorder:   services.NewInteractionRecorder(db, log),
		Policy:     services.VerbatimPolicy,
		Archive:    storage.NopArchiver{},
		Logger:     log,
	}

	router := gin.New()
	setupHealthRoutes(router, db)
	setupNewsRoutes(router, pipeline, log)
	setupHistoryRoutes(router, pipeline.Recorder, log)
	setupUserRoutes(router, pipeline.Recorder, log)
	return router, pipeline
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

const realVerdict = `{"label":"real","confidence":0.9,"reasons":["trusted"],"supporting_sources":[]}`

func TestQueryRoute(t *testing.T) {
	search := &fakeSearch{items: []providers.SearchItem{
		{Title: "Flood", Snippet: "Rivers rise", Link: "https://bbc.com/flood", DisplayLink: "bbc.com"},
	}}
	router, _ := setupTestRouter(t, realVerdict, search)

	w := doJSON(t, router, http.MethodPost, "/api/news/query", `{"query":"flood"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var res services.TopicResult
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Topic != "flood" || res.Summary != "Short summary." || len(res.Articles) != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.Articles[0].SourceDomain != "bbc.com" || res.Articles[0].Label != "real" {
		t.Errorf("unexpected article: %+v", res.Articles[0])
	}
}

func TestQueryRoute_BadRequest(t *testing.T) {
	router, _ := setupTestRouter(t, realVerdict, &fakeSearch{})

	for _, body := range []string{`{}`, `not json`} {
		w := doJSON(t, router, http.MethodPost, "/api/news/query", body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", body, w.Code)
		}
	}
}

func TestQueryRoute_UpstreamError(t *testing.T) {
	router, _ := setupTestRouter(t, realVerdict, &fakeSearch{err: fmt.Errorf("status 403")})

	w := doJSON(t, router, http.MethodPost, "/api/news/query", `{"query":"x"}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "error") {
		t.Errorf("expected error body, got %s", w.Body.String())
	}
}

func TestCheckRoute(t *testing.T) {
	router, p := setupTestRouter(t, realVerdict, &fakeSearch{})

	w := doJSON(t, router, http.MethodPost, "/api/news/check", `{"text":"Markets closed higher.","url":"https://reuters.com/markets"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var res struct {
		Verdict models.Verdict `json:"verdict"`
		Summary string         `json:"summary"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Verdict.ArticleID != "user-1" || res.Verdict.Label != "real" || res.Summary != "Short summary." {
		t.Errorf("unexpected result: %+v", res)
	}

	var row models.Interaction
	if err := p.Recorder.DB.First(&row).Error; err != nil {
		t.Fatalf("interaction not recorded: %v", err)
	}
	if row.Title != "Markets closed higher." || row.Type != models.InteractionUserInput {
		t.Errorf("unexpected interaction: %+v", row)
	}
}

func TestCheckRoute_MalformedURL(t *testing.T) {
	router, _ := setupTestRouter(t, realVerdict, &fakeSearch{})

	w := doJSON(t, router, http.MethodPost, "/api/news/check", `{"text":"x","url":"nourl"}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestHistoryAndDeleteRoutes(t *testing.T) {
	router, _ := setupTestRouter(t, realVerdict, &fakeSearch{})

	w := doJSON(t, router, http.MethodPost, "/api/users/create?name=alice", "")
	if w.Code != http.StatusOK {
		t.Fatalf("create user: %d %s", w.Code, w.Body.String())
	}
	var created struct {
		Status string `json:"status"`
		UserID uint   `json:"user_id"`
	}
	json.Unmarshal(w.Body.Bytes(), &created)
	if created.Status != "success" || created.UserID == 0 {
		t.Fatalf("unexpected create response: %s", w.Body.String())
	}

	for _, text := range []string{"first", "second"} {
		body := fmt.Sprintf(`{"user_id":%d,"text":%q}`, created.UserID, text)
		if w := doJSON(t, router, http.MethodPost, "/api/news/check", body); w.Code != http.StatusOK {
			t.Fatalf("check: %d %s", w.Code, w.Body.String())
		}
	}

	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/history/%d", created.UserID), "")
	if w.Code != http.StatusOK {
		t.Fatalf("history: %d", w.Code)
	}
	var history []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &history); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if len(history) != 2 || history[0]["title"] != "second" {
		t.Fatalf("expected newest first, got %v", history)
	}
	for _, key := range []string{"id", "type", "topic", "title", "url", "label", "confidence", "summary", "created_at"} {
		if _, ok := history[0][key]; !ok {
			t.Errorf("history entry missing %q", key)
		}
	}

	id := uint(history[0]["id"].(float64))
	w = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/history/delete/%d", id), "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"status":"success"`) {
		t.Fatalf("delete: %d %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/history/delete/%d", id), "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Interaction not found") {
		t.Fatalf("second delete: %d %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/history/%d", created.UserID), "")
	json.Unmarshal(w.Body.Bytes(), &history)
	if len(history) != 1 {
		t.Errorf("expected 1 entry after delete, got %d", len(history))
	}
}

func TestHistoryRoute_InvalidID(t *testing.T) {
	router, _ := setupTestRouter(t, realVerdict, &fakeSearch{})

	if w := doJSON(t, router, http.MethodGet, "/api/history/abc", ""); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestCreateUserRoute_JSONBody(t *testing.T) {
	router, _ := setupTestRouter(t, realVerdict, &fakeSearch{})

	w := doJSON(t, router, http.MethodPost, "/api/users/create", `{"name":"bob","email":"bob@example.com"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if w := doJSON(t, router, http.MethodPost, "/api/users/create", ""); w.Code != http.StatusBadRequest {
		t.Errorf("missing name: expected 400, got %d", w.Code)
	}
}

func TestAskRoute(t *testing.T) {
	search := &fakeSearch{items: []providers.SearchItem{{Title: "Rain", Link: "https://bbc.com/rain", DisplayLink: "bbc.com"}}}
	router, _ := setupTestRouter(t, realVerdict, search)

	w := doJSON(t, router, http.MethodPost, "/api/news/ask", `{"question":"Did it rain?","topic":"weather"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"answer":"It rained."`) {
		t.Errorf("unexpected body: %s", w.Body.String())
	}

	if w := doJSON(t, router, http.MethodPost, "/api/news/ask", `{"question":""}`); w.Code != http.StatusBadRequest {
		t.Errorf("empty question: expected 400, got %d", w.Code)
	}
}

func TestChatRoute(t *testing.T) {
	router, _ := setupTestRouter(t, `{"label":"fake","confidence":0.95}`, &fakeSearch{items: []providers.SearchItem{{Title: "Hoax", DisplayLink: "random-fakenews.xyz"}}})

	w := doJSON(t, router, http.MethodPost, "/api/chat", `{"message":"aliens landed"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	if !strings.Contains(body, `"intent":"FETCH_NEWS"`) || !strings.Contains(body, "No strongly trusted news found.") {
		t.Errorf("unexpected body: %s", body)
	}
}

func TestHealthRoute(t *testing.T) {
	router, _ := setupTestRouter(t, realVerdict, &fakeSearch{})

	w := doJSON(t, router, http.MethodGet, "/healthz", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"status":"ok"`) {
		t.Errorf("unexpected health response: %d %s", w.Code, w.Body.String())
	}
}
