package signals

import (
	"os"
	"path/filepath"
	"testing"

	"news-verifier/models"
)

func TestReputationTable_CategoryPartition(t *testing.T) {
	table := NewReputationTable()

	for domain, score := range defaultReputation {
		t.Run(domain, func(t *testing.T) {
			info := table.ScoreSource(domain)
			if info.ReputationScore != score {
				t.Errorf("expected score %v, got %v", score, info.ReputationScore)
			}
			want := models.CategoryUnknown
			if score > 0.8 {
				want = models.CategoryTrusted
			} else if score < 0.3 {
				want = models.CategoryLow
			}
			if info.Category != want {
				t.Errorf("expected category %s, got %s", want, info.Category)
			}
		})
	}
}

func TestReputationTable_UnknownDomains(t *testing.T) {
	table := NewReputationTable()

	for _, domain := range []string{"", "example.com", "news.example.org", "reuters.com.evil.net"} {
		info := table.ScoreSource(domain)
		if info.ReputationScore != 0.5 {
			t.Errorf("%q: expected score 0.5, got %v", domain, info.ReputationScore)
		}
		if info.Category != models.CategoryUnknown {
			t.Errorf("%q: expected unknown, got %s", domain, info.Category)
		}
	}
}

func TestReputationTable_CaseInsensitive(t *testing.T) {
	table := NewReputationTable()

	upper := table.ScoreSource("BBC.com")
	lower := table.ScoreSource("bbc.com")
	if upper != lower {
		t.Errorf("expected identical results, got %+v and %+v", upper, lower)
	}
	if upper.Category != models.CategoryTrusted {
		t.Errorf("expected trusted, got %s", upper.Category)
	}
}

func TestCategoryBoundaries(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{0.81, models.CategoryTrusted},
		{0.8, models.CategoryUnknown},
		{0.5, models.CategoryUnknown},
		{0.3, models.CategoryUnknown},
		{0.29, models.CategoryLow},
		{0, models.CategoryLow},
	}
	for _, tt := range tests {
		if got := categoryFor(tt.score); got != tt.want {
			t.Errorf("categoryFor(%v) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestReputationTable_LoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reputation.yaml")
	content := "domains:\n  APNews.com: 0.92\n  bbc.com: 0.2\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	table := NewReputationTable()
	n, err := table.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 entries, got %d", n)
	}
	if got := table.ScoreSource("apnews.com"); got.Category != models.CategoryTrusted {
		t.Errorf("expected apnews.com trusted, got %+v", got)
	}
	if got := table.ScoreSource("bbc.com"); got.Category != models.CategoryLow {
		t.Errorf("expected overlay to override bbc.com, got %+v", got)
	}
}

func TestReputationTable_LoadRejectsOutOfRange(t *testing.T) {
	table := NewReputationTable()
	if _, err := table.load([]byte("domains:\n  bad.example: 1.5\n")); err == nil {
		t.Fatal("expected error for score > 1")
	}
	if got := table.ScoreSource("bad.example"); got.ReputationScore != 0.5 {
		t.Errorf("rejected file must not modify table, got %+v", got)
	}
}

func TestReputationTable_LoadFileMissing(t *testing.T) {
	table := NewReputationTable()
	if _, err := table.LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
