package services

import "testing"

func TestCleanParagraph(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"collapses whitespace", "  Storm\n\t hits   the coast ", "Storm hits the coast"},
		{"joins hyphenated line break", "a sudden de-\nvelopment", "a sudden development"},
		{"keeps real hyphen", "well-known\nFacts", "well-known Facts"},
		{"replaces ligatures", "ﬁnal oﬃce", "final office"},
		{"composes accents", "Cafe\u0301 owner", "Caf\u00e9 owner"},
		{"drops page numbers", "Page 3", ""},
		{"drops counters", "12 / 40", ""},
		{"drops short artifacts", " » ", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanParagraph(tt.in); got != tt.want {
				t.Errorf("cleanParagraph(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
