package merriam

import (
	"bytes"
	"encoding/json"
	"fmt"
)

const maxSuggestions = 5

// DecodeResponse decodes a Collegiate API response body. An empty array or an
// array of suggestion strings yields a *NotFoundError.
func DecodeResponse(data []byte) ([]Entry, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(raw) == 0 {
		return nil, &NotFoundError{Suggestions: []string{}}
	}

	if isJSONString(raw[0]) {
		suggestions := make([]string, 0, maxSuggestions)
		for _, r := range raw {
			if len(suggestions) == maxSuggestions {
				break
			}
			var s string
			if json.Unmarshal(r, &s) == nil {
				suggestions = append(suggestions, s)
			}
		}
		return nil, &NotFoundError{Suggestions: suggestions}
	}

	if !isJSONObject(raw[0]) {
		return nil, fmt.Errorf("failed to decode entry 0: not an object")
	}

	// Stray non-object elements after the first entry are skipped.
	entries := make([]Entry, 0, len(raw))
	for i, r := range raw {
		if !isJSONObject(r) {
			continue
		}
		var e Entry
		if err := json.Unmarshal(r, &e); err != nil {
			return nil, fmt.Errorf("failed to decode entry %d: %w", i, err)
		}
		entries = append(entries, e)
	}

	return entries, nil
}

// ParseResponse decodes a response body and normalizes it. Nothing is
// normalized when the response is a not-found answer.
func ParseResponse(data []byte) (WordEntry, error) {
	entries, err := DecodeResponse(data)
	if err != nil {
		return WordEntry{}, err
	}

	return Normalize(SelectPrimary(entries), entries), nil
}

func isJSONString(r json.RawMessage) bool {
	r = bytes.TrimSpace(r)
	return len(r) > 0 && r[0] == '"'
}

func isJSONObject(r json.RawMessage) bool {
	r = bytes.TrimSpace(r)
	return len(r) > 0 && r[0] == '{'
}
