package services

import "strings"

// Intent ist die grobe Absicht einer Chat-Nachricht.
type Intent string

const (
	IntentCheckUserNews Intent = "CHECK_USER_NEWS"
	IntentFetchNews     Intent = "FETCH_NEWS"
)

// ClassifyIntent: enthält die Eingabe eine URL, soll der Nutzer-Text geprüft
// werden, sonst wird nach Nachrichten zum Thema gesucht.
func ClassifyIntent(input string) Intent {
	if strings.Contains(input, "http://") || strings.Contains(input, "https://") {
		return IntentCheckUserNews
	}
	return IntentFetchNews
}

// firstURL gibt das erste Token zurück, das mit http:// oder https:// beginnt.
func firstURL(input string) string {
	for _, field := range strings.Fields(input) {
		if strings.HasPrefix(field, "http://") || strings.HasPrefix(field, "https://") {
			return field
		}
	}
	return ""
}
