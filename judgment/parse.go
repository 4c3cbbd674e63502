package judgment

import (
	"encoding/json"
	"errors"
	"strings"
)

// ErrNotObject: die Antwort ist gültiges JSON, aber kein Objekt.
var ErrNotObject = errors.New("judgment: response is not a JSON object")

// RawTextError trägt den Originaltext einer nicht parsebaren Antwort.
type RawTextError struct {
	Raw string
	Err error
}

func (e *RawTextError) Error() string {
	return "judgment: unparseable model output: " + e.Err.Error()
}

func (e *RawTextError) Unwrap() error {
	return e.Err
}

// ParseObject versucht, die Modellantwort als JSON-Objekt zu lesen. Umschließende
// Markdown-Codeblöcke (```json ... ```) werden toleriert. Bei Fehlern ist das
// Ergebnis ein *RawTextError mit dem unveränderten Text.
func ParseObject(raw string) (map[string]any, error) {
	var parsed any
	if err := json.Unmarshal([]byte(stripFence(raw)), &parsed); err != nil {
		return nil, &RawTextError{Raw: raw, Err: err}
	}
	obj, ok := parsed.(map[string]any)
	if !ok {
		return nil, &RawTextError{Raw: raw, Err: ErrNotObject}
	}
	return obj, nil
}

// TextField liest ein Feld aus einer Modellantwort als Text. Strings werden direkt
// übernommen, andere JSON-Werte kompakt serialisiert. Fehlt das Feld oder ist die
// Antwort kein Objekt, wird der Rohtext zurückgegeben.
func TextField(raw, key string) string {
	obj, err := ParseObject(raw)
	if err != nil {
		return raw
	}
	value, ok := obj[key]
	if !ok || value == nil {
		return raw
	}
	return Stringify(value)
}

// Stringify wandelt einen beliebigen JSON-Wert in Text um.
func Stringify(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	b, err := json.Marshal(value)
	if err != nil {
		return ""
	}
	return string(b)
}

func stripFence(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:] // Sprachkennung wie "json" überspringen
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
