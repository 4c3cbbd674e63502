package signals

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"news-verifier/models"
)

var clickbaitPhrases = []string{"shocking", "you won't believe", "unbelievable"}

// StyleExtractor berechnet lexikalische Auffälligkeiten eines Textes.
type StyleExtractor struct{}

// NewStyleExtractor erstellt einen neuen StyleExtractor.
func NewStyleExtractor() *StyleExtractor {
	return &StyleExtractor{}
}

// ExtractStyle zählt Ausrufezeichen, Wörter in Großbuchstaben (länger als 3 Zeichen,
// ohne anhängende Satzzeichen) und Clickbait-Phrasen. Jede Phrase zählt höchstens einmal.
func (StyleExtractor) ExtractStyle(text string) models.StyleFeatures {
	features := models.StyleFeatures{
		ExclamationCount: strings.Count(text, "!"),
	}

	for _, token := range strings.Fields(text) {
		word := strings.TrimFunc(token, isEdgePunct)
		if utf8.RuneCountInString(word) > 3 && isShouting(word) {
			features.ShoutingWordCount++
		}
	}

	lower := strings.ToLower(text)
	for _, phrase := range clickbaitPhrases {
		if strings.Contains(lower, phrase) {
			features.ClickbaitHitCount++
		}
	}
	return features
}

// isShouting: mindestens ein Buchstabe mit Groß-/Kleinschreibung, aber kein Kleinbuchstabe.
func isShouting(word string) bool {
	cased := false
	for _, r := range word {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) || unicode.IsTitle(r) {
			cased = true
		}
	}
	return cased
}

func isEdgePunct(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}
