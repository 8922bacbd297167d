package words

import (
	"context"
	"fmt"
	"slices"

	"github.com/lysyi3m/wotd/app/kv"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	CurrentKey    = "word-of-the-day"
	ArchivePrefix = "archive:"
	IndexKey      = "archive-index"
	WordPrefix    = "word:"
)

func ArchiveKey(date string) string {
	return ArchivePrefix + date
}

// WordKey lowercases word so lookups are case-insensitive.
func WordKey(word string) string {
	return WordPrefix + cases.Lower(language.English).String(word)
}

// Archive reads and writes word records in a kv.Store.
type Archive struct {
	store kv.Store
}

func NewArchive(store kv.Store) *Archive {
	return &Archive{store: store}
}

// Save stores w as the current word, under its date and under its word, and
// prepends its date to the index if it is not there yet.
func (a *Archive) Save(ctx context.Context, w WordOfTheDay) error {
	if err := a.store.Set(ctx, CurrentKey, w); err != nil {
		return fmt.Errorf("failed to save current word: %w", err)
	}
	if err := a.store.Set(ctx, ArchiveKey(w.Date), w); err != nil {
		return fmt.Errorf("failed to archive word: %w", err)
	}

	index, err := a.Index(ctx)
	if err != nil {
		return err
	}
	if !slices.Contains(index, w.Date) {
		index = slices.Insert(index, 0, w.Date)
		if err := a.store.Set(ctx, IndexKey, index); err != nil {
			return fmt.Errorf("failed to update archive index: %w", err)
		}
	}

	if err := a.store.Set(ctx, WordKey(w.Word), w); err != nil {
		return fmt.Errorf("failed to save word lookup: %w", err)
	}

	return nil
}

// Today returns the current word, nil if none has been saved.
func (a *Archive) Today(ctx context.Context) (*WordOfTheDay, error) {
	return a.get(ctx, CurrentKey)
}

func (a *Archive) ByDate(ctx context.Context, date string) (*WordOfTheDay, error) {
	return a.get(ctx, ArchiveKey(date))
}

func (a *Archive) ByWord(ctx context.Context, word string) (*WordOfTheDay, error) {
	return a.get(ctx, WordKey(word))
}

// Index returns archived dates, newest first.
func (a *Archive) Index(ctx context.Context) ([]string, error) {
	var index []string
	found, err := a.store.Get(ctx, IndexKey, &index)
	if err != nil {
		return nil, fmt.Errorf("failed to get archive index: %w", err)
	}
	if !found || index == nil {
		return []string{}, nil
	}
	return index, nil
}

// All resolves the index in order. Dates whose record is missing are skipped.
func (a *Archive) All(ctx context.Context) ([]WordOfTheDay, error) {
	index, err := a.Index(ctx)
	if err != nil {
		return nil, err
	}

	all := make([]WordOfTheDay, 0, len(index))
	for _, date := range index {
		w, err := a.ByDate(ctx, date)
		if err != nil {
			return nil, err
		}
		if w != nil {
			all = append(all, *w)
		}
	}
	return all, nil
}

func (a *Archive) get(ctx context.Context, key string) (*WordOfTheDay, error) {
	var w WordOfTheDay
	found, err := a.store.Get(ctx, key, &w)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}
	if !found {
		return nil, nil
	}
	return &w, nil
}
