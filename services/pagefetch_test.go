package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHTMLPageFetcher_FetchText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><head><title> Storm   warning </title><script>var x = 1;</script></head>
<body><nav><p>Menu</p></nav>
<article><p>First   paragraph.</p><p></p><p>Second paragraph.</p></article></body></html>`))
	}))
	defer server.Close()

	title, text, err := NewHTMLPageFetcher(5*time.Second).FetchText(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("FetchText failed: %v", err)
	}
	if title != "Storm warning" {
		t.Errorf("title = %q", title)
	}
	if text != "First paragraph.\nSecond paragraph." {
		t.Errorf("text = %q", text)
	}
}

func TestHTMLPageFetcher_FallsBackToAllParagraphs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><p>One</p><div><p>Two</p></div></body></html>`))
	}))
	defer server.Close()

	_, text, err := NewHTMLPageFetcher(5*time.Second).FetchText(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("FetchText failed: %v", err)
	}
	if text != "One\nTwo" {
		t.Errorf("text = %q", text)
	}
}

func TestHTMLPageFetcher_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	if _, _, err := NewHTMLPageFetcher(5*time.Second).FetchText(context.Background(), server.URL); err == nil {
		t.Fatal("expected error for 404")
	}
}
