package merriam

import (
	"bytes"
	"encoding/json"
)

// Entry is one headword entry from the Collegiate Dictionary API. Only the
// fields the normalizer consumes are decoded; everything else is ignored.
type Entry struct {
	Meta            EntryMeta          `json:"meta"`
	Headword        HeadwordInfo       `json:"hwi"`
	FunctionalLabel string             `json:"fl"`
	Def             []DefinitionBlock  `json:"def"`
	Etymology       []EtymologySegment `json:"et"`
	Date            string             `json:"date"`
}

// HasDefinitions reports whether the entry carries a def array at all. An
// empty but present array still counts.
func (e Entry) HasDefinitions() bool {
	return e.Def != nil
}

// UnmarshalJSON decodes each field on its own. A field of the wrong JSON type
// is left at its zero value and a non-object entry decodes to the zero Entry.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var raw struct {
		Meta json.RawMessage `json:"meta"`
		Hwi  json.RawMessage `json:"hwi"`
		Fl   json.RawMessage `json:"fl"`
		Def  json.RawMessage `json:"def"`
		Et   json.RawMessage `json:"et"`
		Date json.RawMessage `json:"date"`
	}

	*e = Entry{}
	if json.Unmarshal(data, &raw) != nil {
		return nil
	}

	e.Meta = decodeOr[EntryMeta](raw.Meta)
	e.Headword = decodeOr[HeadwordInfo](raw.Hwi)
	e.FunctionalLabel = decodeOr[string](raw.Fl)
	e.Def = decodeOr[[]DefinitionBlock](raw.Def)
	e.Etymology = decodeOr[[]EtymologySegment](raw.Et)
	e.Date = decodeOr[string](raw.Date)

	return nil
}

type EntryMeta struct {
	ID string `json:"id"`
}

func (m *EntryMeta) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID json.RawMessage `json:"id"`
	}
	*m = EntryMeta{}
	if json.Unmarshal(data, &raw) == nil {
		m.ID = decodeOr[string](raw.ID)
	}
	return nil
}

type HeadwordInfo struct {
	HW             string          `json:"hw"`
	Pronunciations []Pronunciation `json:"prs"`
}

func (h *HeadwordInfo) UnmarshalJSON(data []byte) error {
	var raw struct {
		HW  json.RawMessage `json:"hw"`
		Prs json.RawMessage `json:"prs"`
	}
	*h = HeadwordInfo{}
	if json.Unmarshal(data, &raw) == nil {
		h.HW = decodeOr[string](raw.HW)
		h.Pronunciations = decodeOr[[]Pronunciation](raw.Prs)
	}
	return nil
}

type Pronunciation struct {
	MW    string `json:"mw"`
	Sound *Sound `json:"sound"`
}

func (p *Pronunciation) UnmarshalJSON(data []byte) error {
	var raw struct {
		MW    json.RawMessage `json:"mw"`
		Sound json.RawMessage `json:"sound"`
	}
	*p = Pronunciation{}
	if json.Unmarshal(data, &raw) == nil {
		p.MW = decodeOr[string](raw.MW)
		p.Sound = decodeOr[*Sound](raw.Sound)
	}
	return nil
}

type Sound struct {
	Audio string `json:"audio"`
}

func (s *Sound) UnmarshalJSON(data []byte) error {
	var raw struct {
		Audio json.RawMessage `json:"audio"`
	}
	*s = Sound{}
	if json.Unmarshal(data, &raw) == nil {
		s.Audio = decodeOr[string](raw.Audio)
	}
	return nil
}

type DefinitionBlock struct {
	SenseSequence []SenseGroup `json:"sseq"`
}

func (b *DefinitionBlock) UnmarshalJSON(data []byte) error {
	var raw struct {
		Sseq json.RawMessage `json:"sseq"`
	}
	*b = DefinitionBlock{}
	if json.Unmarshal(data, &raw) == nil {
		b.SenseSequence = decodeOr[[]SenseGroup](raw.Sseq)
	}
	return nil
}

// decodeOr decodes raw into a T. Missing or mistyped input yields the zero T.
func decodeOr[T any](raw json.RawMessage) T {
	var v T
	if len(raw) == 0 || json.Unmarshal(raw, &v) != nil {
		var zero T
		return zero
	}
	return v
}

// SenseGroup is one element of an sseq: a list of [tag, body] pairs.
type SenseGroup []SenseNode

func (g *SenseGroup) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if json.Unmarshal(data, &raw) != nil {
		*g = nil
		return nil
	}

	nodes := make(SenseGroup, len(raw))
	for i, r := range raw {
		if err := nodes[i].UnmarshalJSON(r); err != nil {
			return err
		}
	}
	*g = nodes
	return nil
}

// SenseKind tags the variants of a sense node.
type SenseKind int

const (
	SenseUnknown SenseKind = iota
	SenseFull              // "sense"
	SenseTruncated         // "sen"
	SenseBinding           // "bs"
)

// SenseNode is a decoded [tag, body] pair from a sense group. Unknown or
// malformed nodes decode to SenseUnknown instead of failing.
type SenseNode struct {
	Kind SenseKind
	DT   DefiningText // set for SenseFull and SenseTruncated
	// Nested is the sense carried by a binding substitute, nil if absent.
	Nested *SenseBody
}

// SenseBody is the object payload of a sense or truncated sense.
type SenseBody struct {
	DT DefiningText `json:"dt"`
}

type bindingBody struct {
	Sense *SenseBody `json:"sense"`
}

func (n *SenseNode) UnmarshalJSON(data []byte) error {
	*n = SenseNode{}

	tag, body, ok := splitTagged(data)
	if !ok {
		return nil
	}

	switch tag {
	case "sense", "sen":
		var sb SenseBody
		if json.Unmarshal(body, &sb) != nil {
			return nil
		}
		n.Kind = SenseFull
		if tag == "sen" {
			n.Kind = SenseTruncated
		}
		n.DT = sb.DT
	case "bs":
		var bb bindingBody
		if json.Unmarshal(body, &bb) != nil {
			return nil
		}
		n.Kind = SenseBinding
		n.Nested = bb.Sense
	}

	return nil
}

// DefiningText is the dt node list of a sense.
type DefiningText []DTNode

type DTKind int

const (
	DTUnknown DTKind = iota
	DTText
	DTIllustrations
)

// DTNode is one [tag, value] element of a defining text.
type DTNode struct {
	Kind          DTKind
	Text          string
	Illustrations []Illustration
}

// Illustration is a verbal illustration ("vis") carrier.
type Illustration struct {
	T string `json:"t"`
}

func (n *DTNode) UnmarshalJSON(data []byte) error {
	*n = DTNode{}

	tag, value, ok := splitTagged(data)
	if !ok {
		return nil
	}

	switch tag {
	case "text":
		var s string
		if json.Unmarshal(value, &s) == nil {
			n.Kind = DTText
			n.Text = s
		}
	case "vis":
		var raw []json.RawMessage
		if json.Unmarshal(value, &raw) != nil {
			return nil
		}
		n.Kind = DTIllustrations
		for _, r := range raw {
			var ill Illustration
			if json.Unmarshal(r, &ill) == nil {
				n.Illustrations = append(n.Illustrations, ill)
			}
		}
	}

	return nil
}

// EtymologySegment is either a bare string or a [tag, text] pair.
type EtymologySegment struct {
	Text string
}

func (s *EtymologySegment) UnmarshalJSON(data []byte) error {
	*s = EtymologySegment{}

	var str string
	if json.Unmarshal(data, &str) == nil {
		s.Text = str
		return nil
	}

	var parts []json.RawMessage
	if json.Unmarshal(data, &parts) != nil || len(parts) < 2 {
		return nil
	}
	if json.Unmarshal(parts[1], &str) == nil {
		s.Text = str
	}
	return nil
}

// splitTagged decodes a two-element [tag, payload] array. ok is false for
// anything that is not an array of at least two elements with a string tag.
func splitTagged(data []byte) (string, json.RawMessage, bool) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '[' {
		return "", nil, false
	}

	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil || len(parts) < 2 {
		return "", nil, false
	}

	var tag string
	if err := json.Unmarshal(parts[0], &tag); err != nil {
		return "", nil, false
	}

	return tag, parts[1], true
}
