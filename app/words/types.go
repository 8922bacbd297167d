package words

import "github.com/lysyi3m/wotd/app/merriam"

// WordOfTheDay is the record stored for one day's word.
type WordOfTheDay struct {
	Word         string               `json:"word" yaml:"word"`
	Date         string               `json:"date" yaml:"date"` // YYYY-MM-DD
	Phonetic     string               `json:"phonetic" yaml:"phonetic"`
	AudioURL     string               `json:"audioUrl" yaml:"audioUrl"`
	PartOfSpeech string               `json:"partOfSpeech" yaml:"partOfSpeech"`
	Definition   string               `json:"definition" yaml:"definition"`
	Definitions  []merriam.Definition `json:"definitions" yaml:"definitions"`
	Examples     []string             `json:"examples" yaml:"examples"`
	Origin       string               `json:"origin" yaml:"origin"`
	SourceURL    string               `json:"sourceUrl,omitempty" yaml:"sourceUrl,omitempty"`
}

const DateLayout = "2006-01-02"

// NewWordOfTheDay builds the stored record from a normalized entry. The
// headline definition is the first sense; origin falls back to the first
// known use when there is no etymology.
func NewWordOfTheDay(entry merriam.WordEntry, date, sourceURL string) WordOfTheDay {
	wotd := WordOfTheDay{
		Word:         entry.Word,
		Date:         date,
		Phonetic:     entry.Phonetic,
		AudioURL:     entry.AudioURL,
		PartOfSpeech: entry.PartOfSpeech,
		Definitions:  entry.Definitions,
		Examples:     entry.Examples,
		SourceURL:    sourceURL,
	}

	if len(entry.Definitions) > 0 {
		wotd.Definition = entry.Definitions[0].Definition
	}

	switch {
	case entry.Etymology != "":
		wotd.Origin = entry.Etymology
	case entry.FirstKnownUse != "":
		wotd.Origin = "First known use: " + entry.FirstKnownUse
	}

	return wotd
}
