package services

import (
	"fmt"
	"strings"

	"news-verifier/models"
)

// RetentionPolicy entscheidet, ob ein bewerteter Artikel in Zusammenfassung und
// Historie übernommen wird.
type RetentionPolicy func(v models.Verdict) bool

// VerbatimPolicy behält "real" ab 0.5 und "uncertain" nur bis einschließlich 0.5.
func VerbatimPolicy(v models.Verdict) bool {
	switch v.Label {
	case models.LabelReal:
		return v.Confidence >= 0.5
	case models.LabelUncertain:
		return v.Confidence <= 0.5
	}
	return false
}

// LenientPolicy behält "real" ab 0.5 und jedes "uncertain".
func LenientPolicy(v models.Verdict) bool {
	switch v.Label {
	case models.LabelReal:
		return v.Confidence >= 0.5
	case models.LabelUncertain:
		return true
	}
	return false
}

// PolicyByName liefert die Policy zum Konfigurationswert RETENTION_POLICY.
func PolicyByName(name string) (RetentionPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "verbatim", "":
		return VerbatimPolicy, nil
	case "lenient":
		return LenientPolicy, nil
	}
	return nil, fmt.Errorf("unknown retention policy %q", name)
}
