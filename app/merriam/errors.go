package merriam

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound      = errors.New("word not found")
	ErrMissingAPIKey = errors.New("MERRIAM_WEBSTER_API_KEY is not set")
)

// NotFoundError is returned when the dictionary answers with suggestions
// (or nothing) instead of entries.
type NotFoundError struct {
	Word        string
	Suggestions []string
}

func (e *NotFoundError) Error() string {
	if e.Word == "" {
		return fmt.Sprintf("word not found in dictionary. Suggestions: %s", strings.Join(e.Suggestions, ", "))
	}
	return fmt.Sprintf("word %q not found in dictionary. Suggestions: %s", e.Word, strings.Join(e.Suggestions, ", "))
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }
