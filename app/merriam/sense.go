package merriam

import "slices"

// Definition is one normalized sense. Example is the first illustration of
// that sense, nil when the sense has none.
type Definition struct {
	Definition   string  `json:"definition" yaml:"definition"`
	PartOfSpeech string  `json:"partOfSpeech" yaml:"partOfSpeech"`
	Example      *string `json:"example,omitempty" yaml:"example,omitempty"`
}

// ParseSenseGroup walks one sense group and appends to defs and examples.
// Senses with an empty definition contribute nothing. Examples are appended
// only when not already present; per-definition examples ignore that check.
func ParseSenseGroup(group SenseGroup, partOfSpeech string, defs *[]Definition, examples *[]string) {
	for _, node := range group {
		switch node.Kind {
		case SenseFull, SenseTruncated:
			addSense(node.DT, partOfSpeech, defs, examples)
		case SenseBinding:
			// Only the directly nested sense is read.
			if node.Nested != nil {
				addSense(node.Nested.DT, partOfSpeech, defs, examples)
			}
		}
	}
}

func addSense(dt DefiningText, partOfSpeech string, defs *[]Definition, examples *[]string) {
	def, exs := ParseDefiningText(dt)
	if def == "" {
		return
	}

	d := Definition{Definition: def, PartOfSpeech: partOfSpeech}
	if len(exs) > 0 {
		first := exs[0]
		d.Example = &first
	}
	*defs = append(*defs, d)

	for _, ex := range exs {
		if !slices.Contains(*examples, ex) {
			*examples = append(*examples, ex)
		}
	}
}
