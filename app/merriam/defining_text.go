package merriam

import "strings"

// ParseDefiningText flattens a dt node list into one definition string and
// the illustration sentences in document order. A nil list yields an empty
// definition and no examples.
func ParseDefiningText(dt DefiningText) (string, []string) {
	if dt == nil {
		return "", []string{}
	}

	var def strings.Builder
	examples := []string{}

	for _, node := range dt {
		switch node.Kind {
		case DTText:
			def.WriteString(StripMarkup(node.Text))
		case DTIllustrations:
			for _, ill := range node.Illustrations {
				if ill.T != "" {
					examples = append(examples, StripMarkup(ill.T))
				}
			}
		}
	}

	return trimSpace(def.String()), examples
}
