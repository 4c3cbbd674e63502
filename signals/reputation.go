package signals

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"news-verifier/models"
)

// Schwellwerte für die Kategorisierung.
const (
	trustedAbove = 0.8
	lowBelow     = 0.3
	unknownScore = 0.5
)

// defaultReputation ist die eingebaute Vertrauenstabelle.
var defaultReputation = map[string]float64{
	"reuters.com": 0.95,
	"bbc.com":     0.93,
	"ndtv.com":    0.9,
	// wenig vertrauenswürdig
	"random-fakenews.xyz": 0.1,
}

// ReputationTable bildet Domains auf einen statischen Vertrauenswert ab.
type ReputationTable struct {
	scores map[string]float64
}

// NewReputationTable erstellt eine Tabelle mit den eingebauten Einträgen.
func NewReputationTable() *ReputationTable {
	scores := make(map[string]float64, len(defaultReputation))
	for domain, score := range defaultReputation {
		scores[domain] = score
	}
	return &ReputationTable{scores: scores}
}

// ScoreSource liefert Score und Kategorie für eine Domain. Unbekannte Domains bekommen 0.5.
func (t *ReputationTable) ScoreSource(domain string) models.ReputationInfo {
	score, ok := t.scores[normalizeDomain(domain)]
	if !ok {
		score = unknownScore
	}
	return models.ReputationInfo{ReputationScore: score, Category: categoryFor(score)}
}

// Domains gibt die bekannten Domains zurück (Reihenfolge undefiniert).
func (t *ReputationTable) Domains() []string {
	out := make([]string, 0, len(t.scores))
	for domain := range t.scores {
		out = append(out, domain)
	}
	return out
}

type reputationFile struct {
	Domains map[string]float64 `yaml:"domains"`
}

// LoadFile ergänzt bzw. überschreibt Einträge aus einer YAML-Datei:
//
//	domains:
//	  apnews.com: 0.92
//	  example-hoax.net: 0.05
func (t *ReputationTable) LoadFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read reputation file: %w", err)
	}
	return t.load(data)
}

func (t *ReputationTable) load(data []byte) (int, error) {
	var rf reputationFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return 0, fmt.Errorf("parse reputation file: %w", err)
	}
	for domain, score := range rf.Domains {
		if score < 0 || score > 1 {
			return 0, fmt.Errorf("reputation score for %q out of range: %v", domain, score)
		}
	}
	for domain, score := range rf.Domains {
		t.scores[normalizeDomain(domain)] = score
	}
	return len(rf.Domains), nil
}

func categoryFor(score float64) string {
	switch {
	case score > trustedAbove:
		return models.CategoryTrusted
	case score < lowBelow:
		return models.CategoryLow
	default:
		return models.CategoryUnknown
	}
}

func normalizeDomain(domain string) string {
	return strings.ToLower(strings.TrimSpace(domain))
}
