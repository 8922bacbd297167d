package feed

import (
	"regexp"
	"strings"
)

var (
	firstItemRe  = regexp.MustCompile(`(?s)<item[\s>].*?</item>`)
	cdataTitleRe = regexp.MustCompile(`<title><!\[CDATA\[(.*?)\]\]></title>`)
	plainTitleRe = regexp.MustCompile(`<title>(.*?)</title>`)
)

// ExtractHeadword returns the title of the first item in feedXML. A CDATA
// title is preferred over a plain one; later items are never looked at.
func ExtractHeadword(feedXML string) (string, error) {
	item := firstItemRe.FindString(feedXML)
	if item == "" {
		return "", &FeedFormatError{Reason: "no item found"}
	}

	if m := cdataTitleRe.FindStringSubmatch(item); m != nil {
		return strings.TrimSpace(m[1]), nil
	}
	if m := plainTitleRe.FindStringSubmatch(item); m != nil {
		return strings.TrimSpace(m[1]), nil
	}

	return "", &FeedFormatError{Reason: "no title in item"}
}
