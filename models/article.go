package models

import "encoding/json"

// Verdict-Labels, wie sie vom Sprachmodell erwartet werden.
const (
	LabelReal      = "real"
	LabelFake      = "fake"
	LabelUncertain = "uncertain"
)

// Reputationskategorien für Quell-Domains.
const (
	CategoryTrusted = "trusted"
	CategoryUnknown = "unknown"
	CategoryLow     = "low"
)

// Article ist ein Kandidat aus der Suche oder aus einer Nutzereingabe.
type Article struct {
	ArticleID    string `json:"article_id"`
	Title        string `json:"title"`
	Content      string `json:"content"`
	URL          string `json:"url"`
	SourceDomain string `json:"source_domain"`
}

// ReputationInfo beschreibt die Vertrauenswürdigkeit einer Quell-Domain.
type ReputationInfo struct {
	ReputationScore float64 `json:"reputation_score"`
	Category        string  `json:"category"`
}

// StyleFeatures sind einfache lexikalische Signale aus dem Artikeltext.
// Die JSON-Namen entsprechen dem Format, das das Sprachmodell im Prompt sieht.
type StyleFeatures struct {
	ExclamationCount  int `json:"exclamations"`
	ShoutingWordCount int `json:"all_caps_words"`
	ClickbaitHitCount int `json:"clickbait_hits"`
}

// Verdict ist das Ergebnis der Echtheitsprüfung eines Artikels.
type Verdict struct {
	ArticleID         string            `json:"article_id"`
	Label             string            `json:"label"`
	Confidence        float64           `json:"confidence"`
	Reasons           []string          `json:"reasons"`
	SupportingSources []json.RawMessage `json:"supporting_sources"`
	UsedTools         []string          `json:"used_tools"`
}
