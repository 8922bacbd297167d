package tasks

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/lysyi3m/wotd/app/feed"
	"github.com/lysyi3m/wotd/app/words"
)

// FetchWordTask runs one daily cycle: read today's headword from the feed,
// look it up in the dictionary and store the resulting record.
type FetchWordTask struct {
	Task
	FeedURL    string
	httpClient *http.Client
	reader     *feed.Reader
	dictionary Dictionary
	store      WordStore
	userAgent  string
	timeout    time.Duration
	location   *time.Location
	now        func() time.Time

	// Result is set once Execute succeeds.
	Result *words.WordOfTheDay
}

type FetchWordOptions struct {
	FeedURL    string
	UserAgent  string
	Timeout    time.Duration
	Location   *time.Location
	MaxRetries int
}

func NewFetchWordTask(opts FetchWordOptions, httpClient *http.Client, reader *feed.Reader, dictionary Dictionary, store WordStore) *FetchWordTask {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}

	return &FetchWordTask{
		Task:       NewTask(TaskTypeFetchWord, opts.MaxRetries),
		FeedURL:    opts.FeedURL,
		httpClient: httpClient,
		reader:     reader,
		dictionary: dictionary,
		store:      store,
		userAgent:  opts.UserAgent,
		timeout:    opts.Timeout,
		location:   loc,
		now:        time.Now,
	}
}

func (t *FetchWordTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	data, err := t.fetchFeed(ctx, t.FeedURL)
	if err != nil {
		return fmt.Errorf("failed to fetch feed: %w", err)
	}

	item, err := t.reader.Run(data)
	if err != nil {
		return fmt.Errorf("failed to read feed: %w", err)
	}

	slog.Debug("Word of the day found in feed", "word", item.Headword, "link", item.Link)

	entry, err := t.dictionary.FetchEntry(ctx, item.Headword)
	if err != nil {
		return fmt.Errorf("failed to look up %q: %w", item.Headword, err)
	}

	date := t.now().In(t.location).Format(words.DateLayout)
	wotd := words.NewWordOfTheDay(entry, date, item.Link)

	if err := t.store.Save(ctx, wotd); err != nil {
		return fmt.Errorf("failed to store word: %w", err)
	}

	t.Result = &wotd

	slog.Info("Task completed",
		"type", string(t.Type),
		"word", wotd.Word,
		"date", wotd.Date,
		"definitions", len(wotd.Definitions),
		"duration", t.GetDuration())

	return nil
}

func (t *FetchWordTask) fetchFeed(ctx context.Context, url string) ([]byte, error) {
	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if t.userAgent != "" {
		req.Header.Set("User-Agent", t.userAgent)
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}
