package services

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// "ab-\nweichung" -> "abweichung"
	hyphenBreakRE = regexp.MustCompile(`([\p{L}\p{N}])-\r?\n([\p{Ll}])`)
	pageNumberRE  = regexp.MustCompile(`^(?:[Pp]age\s*)?\d+(?:\s*/\s*\d+)?$`)

	ligatures = strings.NewReplacer(
		"ﬁ", "fi",
		"ﬂ", "fl",
		"ﬀ", "ff",
		"ﬃ", "ffi",
		"ﬄ", "ffl",
		"ﬆ", "st",
	)
)

// minParagraphRunes: kürzere Absätze gelten als Layout-Artefakte (Icons, Trenner).
const minParagraphRunes = 3

// cleanParagraph normalisiert einen Absatz von einer Webseite auf eine Zeile
// Fließtext. Leere Absätze und Artefakte wie Seitenzahlen ergeben "".
func cleanParagraph(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = hyphenBreakRE.ReplaceAllString(s, "$1$2")
	s = normalizeUnicode(s)
	s = strings.Join(strings.Fields(s), " ")

	if pageNumberRE.MatchString(s) || countVisibleRunes(s) < minParagraphRunes {
		return ""
	}
	return s
}

// normalizeUnicode ersetzt Ligaturen und bringt den Text in NFC-Form.
func normalizeUnicode(s string) string {
	s = ligatures.Replace(s)
	normalized, _, err := transform.String(norm.NFC, s)
	if err != nil {
		return s
	}
	return normalized
}

func countVisibleRunes(s string) int {
	count := 0
	for _, r := range s {
		if !unicode.IsSpace(r) {
			count++
		}
	}
	return count
}
