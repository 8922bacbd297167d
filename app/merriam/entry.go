package merriam

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	AudioBaseURL = "https://media.merriam-webster.com/audio/prons/en/us/mp3"

	// MaxExamples caps the merged example list. Definitions are not capped.
	MaxExamples = 5

	defaultPartOfSpeech = "word"
)

var homographSuffixRe = regexp.MustCompile(`:\d+$`)

// WordEntry is the normalized record built from a dictionary lookup.
type WordEntry struct {
	Word          string       `json:"word" yaml:"word"`
	Phonetic      string       `json:"phonetic" yaml:"phonetic"`
	AudioURL      string       `json:"audioUrl" yaml:"audioUrl"`
	PartOfSpeech  string       `json:"partOfSpeech" yaml:"partOfSpeech"`
	Definitions   []Definition `json:"definitions" yaml:"definitions"`
	Examples      []string     `json:"examples" yaml:"examples"`
	Etymology     string       `json:"etymology" yaml:"etymology"`
	FirstKnownUse string       `json:"firstKnownUse" yaml:"firstKnownUse"`
}

// SelectPrimary returns the first entry that carries definitions, or the
// first entry when none does. entries must not be empty.
func SelectPrimary(entries []Entry) Entry {
	for _, e := range entries {
		if e.HasDefinitions() {
			return e
		}
	}
	return entries[0]
}

// Normalize builds a WordEntry from the primary entry. Definitions and
// examples are merged from every entry in all, in order.
func Normalize(primary Entry, all []Entry) WordEntry {
	entry := WordEntry{
		Word:         CleanID(primary.Meta.ID),
		PartOfSpeech: primary.FunctionalLabel,
		Definitions:  []Definition{},
		Examples:     []string{},
	}
	if entry.PartOfSpeech == "" {
		entry.PartOfSpeech = defaultPartOfSpeech
	}

	if prs := primary.Headword.Pronunciations; len(prs) > 0 {
		pr := prs[0]
		if pr.MW != "" {
			entry.Phonetic = "/" + pr.MW + "/"
		}
		if pr.Sound != nil && pr.Sound.Audio != "" {
			entry.AudioURL = AudioURL(pr.Sound.Audio)
		}
	}

	for _, e := range all {
		if !e.HasDefinitions() {
			continue
		}
		pos := e.FunctionalLabel
		if pos == "" {
			pos = entry.PartOfSpeech
		}
		for _, block := range e.Def {
			for _, group := range block.SenseSequence {
				ParseSenseGroup(group, pos, &entry.Definitions, &entry.Examples)
			}
		}
	}

	if len(entry.Examples) > MaxExamples {
		entry.Examples = entry.Examples[:MaxExamples]
	}

	if primary.Etymology != nil {
		var et strings.Builder
		for _, seg := range primary.Etymology {
			et.WriteString(seg.Text)
		}
		entry.Etymology = trimSpace(stripTokens(et.String()))
	}

	if primary.Date != "" {
		entry.FirstKnownUse = StripMarkup(primary.Date)
	}

	return entry
}

// CleanID removes a trailing homograph suffix such as ":2".
func CleanID(id string) string {
	return homographSuffixRe.ReplaceAllString(id, "")
}

// AudioURL builds the absolute URL of a pronunciation audio file.
func AudioURL(filename string) string {
	return AudioBaseURL + "/" + AudioSubfolder(filename) + "/" + filename + ".mp3"
}

// AudioSubfolder picks the directory an audio file lives in.
func AudioSubfolder(filename string) string {
	switch {
	case strings.HasPrefix(filename, "bix"):
		return "bix"
	case strings.HasPrefix(filename, "gg"):
		return "gg"
	case filename != "" && filename[0] >= '0' && filename[0] <= '9':
		return "number"
	}
	_, size := utf8.DecodeRuneInString(filename)
	return filename[:size]
}
