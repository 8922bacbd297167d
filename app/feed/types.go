package feed

import (
	"time"
)

// Item is the first entry of the word-of-the-day feed.
type Item struct {
	Headword    string
	Link        string
	GUID        string
	PublishedAt *time.Time
}
