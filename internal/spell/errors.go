package spell

import "errors"

// Errors returned by spelling operations.
var (
	// ErrWordsNotAccepted indicates the checker has no personal word list.
	ErrWordsNotAccepted = errors.New("checker does not accept new words")

	// ErrEmptyWord indicates an empty word was passed where one is required.
	ErrEmptyWord = errors.New("empty word")

	// ErrNoDictionary indicates a dictionary source produced no words.
	ErrNoDictionary = errors.New("dictionary contains no words")
)
