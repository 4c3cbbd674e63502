package services

import "errors"

var (
	// ErrMalformedURL: die übergebene URL hat weniger als drei "/"-Segmente.
	ErrMalformedURL = errors.New("malformed url: cannot derive source domain")

	// ErrInvalidConfidence: das Modell lieferte eine Konfidenz, die keine Zahl ist.
	ErrInvalidConfidence = errors.New("model returned a non-numeric confidence")

	// ErrEmptyQuestion: eine Frage ohne Inhalt.
	ErrEmptyQuestion = errors.New("question must not be empty")
)
