package tasks

import (
	"context"

	"github.com/lysyi3m/wotd/app/merriam"
	"github.com/lysyi3m/wotd/app/words"
)

// Dictionary looks up a headword and returns its normalized entry.
// *merriam.Client implements it.
type Dictionary interface {
	FetchEntry(ctx context.Context, word string) (merriam.WordEntry, error)
}

// WordStore persists a fetched word. *words.Archive implements it.
type WordStore interface {
	Save(ctx context.Context, w words.WordOfTheDay) error
}
