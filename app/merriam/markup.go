package merriam

import (
	"regexp"
	"strings"
	"unicode"
)

type markupRule struct {
	re   *regexp.Regexp
	repl string
}

// Paired and parameterised tokens are unwrapped to their first payload, in
// this order. Anything brace-delimited that survives is dropped by
// unknownTokenRe.
var markupRules = []markupRule{
	{regexp.MustCompile(`\{bc\}`), ""},
	{regexp.MustCompile(`\{it\}(.*?)\{/it\}`), "$1"},
	{regexp.MustCompile(`\{b\}(.*?)\{/b\}`), "$1"},
	{regexp.MustCompile(`\{sc\}(.*?)\{/sc\}`), "$1"},
	{regexp.MustCompile(`\{wi\}(.*?)\{/wi\}`), "$1"},
	{regexp.MustCompile(`\{phrase\}(.*?)\{/phrase\}`), "$1"},
	{regexp.MustCompile(`\{qword\}(.*?)\{/qword\}`), "$1"},
	{regexp.MustCompile(`\{sx\|([^|]*)\|[^}]*\}`), "$1"},
	{regexp.MustCompile(`\{d_link\|([^|]*)\|[^}]*\}`), "$1"},
	{regexp.MustCompile(`\{a_link\|([^|]*)\}`), "$1"},
	{regexp.MustCompile(`\{dxt\|([^|]*)\|[^}]*\}`), "$1"},
	{regexp.MustCompile(`\{ma\}(.*?)\{/ma\}`), "$1"},
}

var (
	unknownTokenRe = regexp.MustCompile(`\{[^}]*\}`)
	// RE2 \s is ASCII only and omits \v.
	multiSpaceRe = regexp.MustCompile(`[\s\v\p{Zs}\x{2028}\x{2029}\x{FEFF}]{2,}`)
)

// StripMarkup removes dictionary formatting tokens from s, collapses runs of
// whitespace and trims the result. Unknown tokens are dropped silently.
func StripMarkup(s string) string {
	if s == "" {
		return ""
	}

	for _, rule := range markupRules {
		s = rule.re.ReplaceAllString(s, rule.repl)
	}

	s = unknownTokenRe.ReplaceAllString(s, "")
	s = multiSpaceRe.ReplaceAllString(s, " ")

	return trimSpace(s)
}

// trimSpace trims Unicode whitespace plus the byte order mark.
func trimSpace(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\uFEFF'
	})
}

// stripTokens applies only the catch-all rule. Etymology text goes through
// this instead of StripMarkup, so its whitespace is left as is.
func stripTokens(s string) string {
	return unknownTokenRe.ReplaceAllString(s, "")
}
