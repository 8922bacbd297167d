package feed

import (
	"bytes"
	"cmp"

	"github.com/mmcdole/gofeed"
)

type Reader struct {
	gofeedParser *gofeed.Parser
}

func NewReader() *Reader {
	return &Reader{
		gofeedParser: gofeed.NewParser(),
	}
}

// Run reads the first item of a feed document. The headword always comes from
// ExtractHeadword; link and publication date are filled in when gofeed can
// parse the document and left empty otherwise.
func (r *Reader) Run(data []byte) (*Item, error) {
	headword, err := ExtractHeadword(string(data))
	if err != nil {
		return nil, err
	}

	item := &Item{Headword: headword}

	feed, err := r.gofeedParser.Parse(bytes.NewReader(data))
	if err != nil || len(feed.Items) == 0 || feed.Items[0] == nil {
		return item, nil
	}

	first := feed.Items[0]
	item.Link = first.Link
	item.GUID = cmp.Or(first.GUID, first.Link)
	if first.PublishedParsed != nil {
		item.PublishedAt = first.PublishedParsed
	}

	return item, nil
}
