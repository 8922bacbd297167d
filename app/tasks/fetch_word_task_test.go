package tasks

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lysyi3m/wotd/app/feed"
	"github.com/lysyi3m/wotd/app/kv"
	"github.com/lysyi3m/wotd/app/merriam"
	"github.com/lysyi3m/wotd/app/words"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Word of the Day</title>
    <item>
      <title><![CDATA[gallimaufry]]></title>
      <link>https://www.merriam-webster.com/word-of-the-day/gallimaufry-2024-05-01</link>
      <pubDate>Wed, 01 May 2024 04:00:01 -0400</pubDate>
    </item>
  </channel>
</rss>`

const testEntry = `[{
	"meta": {"id": "gallimaufry"},
	"hwi": {"hw": "gal*li*mau*fry", "prs": [{"mw": "ˌga-lə-ˈmȯ-frē", "sound": {"audio": "gallim01"}}]},
	"fl": "noun",
	"def": [{"sseq": [[["sense", {"dt": [["text", "{bc}{sx|hodgepodge||}"], ["vis", [{"t": "a {wi}gallimaufry{/wi} of styles"}]]]}]]]}],
	"date": "1551"
}]`

type fixture struct {
	feedServer *httptest.Server
	dictServer *httptest.Server
	feedStatus atomic.Int32
	dictBody   atomic.Value
	archive    *words.Archive
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{archive: words.NewArchive(kv.NewMemory())}
	f.feedStatus.Store(http.StatusOK)
	f.dictBody.Store(testEntry)

	f.feedServer = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != "wotd-test/1.0" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		status := int(f.feedStatus.Load())
		w.WriteHeader(status)
		if status == http.StatusOK {
			_, _ = io.WriteString(w, testFeed)
		}
	}))
	t.Cleanup(f.feedServer.Close)

	f.dictServer = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, f.dictBody.Load().(string))
	}))
	t.Cleanup(f.dictServer.Close)

	return f
}

func (f *fixture) newTask(maxRetries int) *FetchWordTask {
	client := merriam.NewClient(f.dictServer.URL, "key", "wotd-test/1.0", 5*time.Second, newTestLogger())
	loc := time.FixedZone("UTC-5", -5*60*60)

	task := NewFetchWordTask(FetchWordOptions{
		FeedURL:    f.feedServer.URL,
		UserAgent:  "wotd-test/1.0",
		Timeout:    5 * time.Second,
		Location:   loc,
		MaxRetries: maxRetries,
	}, f.feedServer.Client(), feed.NewReader(), client, f.archive)
	task.now = func() time.Time { return time.Date(2024, 5, 2, 3, 0, 0, 0, time.UTC) }
	return task
}

func TestFetchWordTask(t *testing.T) {
	ctx := context.Background()

	t.Run("stores the word of the day", func(t *testing.T) {
		f := newFixture(t)
		task := f.newTask(0)

		require.NoError(t, task.Execute(ctx))
		require.NotNil(t, task.Result)

		today, err := f.archive.Today(ctx)
		require.NoError(t, err)
		require.NotNil(t, today)
		assert.Equal(t, "gallimaufry", today.Word)
		assert.Equal(t, "2024-05-01", today.Date)
		assert.Equal(t, "hodgepodge", today.Definition)
		assert.Equal(t, "First known use: 1551", today.Origin)
		assert.Equal(t, "/ˌga-lə-ˈmȯ-frē/", today.Phonetic)
		assert.Equal(t, "https://www.merriam-webster.com/word-of-the-day/gallimaufry-2024-05-01", today.SourceURL)
		assert.Equal(t, []string{"a gallimaufry of styles"}, today.Examples)

		index, err := f.archive.Index(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"2024-05-01"}, index)
	})

	t.Run("feed http error", func(t *testing.T) {
		f := newFixture(t)
		f.feedStatus.Store(http.StatusServiceUnavailable)

		err := f.newTask(0).Execute(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "HTTP error: 503")
		assert.False(t, IsPermanent(err))
	})

	t.Run("word not in dictionary", func(t *testing.T) {
		f := newFixture(t)
		f.dictBody.Store(`["gallimaufries", "gallium"]`)

		err := f.newTask(0).Execute(ctx)

		var nf *merriam.NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, "gallimaufry", nf.Word)
		assert.True(t, IsPermanent(err))

		today, err := f.archive.Today(ctx)
		require.NoError(t, err)
		assert.Nil(t, today)
	})

	t.Run("canceled context", func(t *testing.T) {
		f := newFixture(t)
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		err := f.newTask(0).Execute(cctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestFetchWordTaskWithRunner(t *testing.T) {
	f := newFixture(t)
	f.feedStatus.Store(http.StatusBadGateway)

	var attempts atomic.Int32
	task := f.newTask(3)
	r := newFastRunner()

	// Recover on the second attempt.
	inner := task.httpClient.Transport
	if inner == nil {
		inner = http.DefaultTransport
	}
	task.httpClient = &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		if attempts.Add(1) == 2 {
			f.feedStatus.Store(http.StatusOK)
		}
		return inner.RoundTrip(req)
	})}

	require.NoError(t, r.Run(context.Background(), task))
	assert.Equal(t, int32(2), attempts.Load())
	assert.Equal(t, 1, task.RetryCount)
	require.NotNil(t, task.Result)
	assert.Equal(t, "gallimaufry", task.Result.Word)
}

func TestFetchWordTaskFeedFormatNotRetried(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = io.WriteString(w, `<rss version="2.0"><channel><title>empty</title></channel></rss>`)
	}))
	t.Cleanup(srv.Close)

	task := NewFetchWordTask(FetchWordOptions{FeedURL: srv.URL, MaxRetries: 3}, srv.Client(), feed.NewReader(), nil, nil)

	err := newFastRunner().Run(context.Background(), task)
	assert.True(t, errors.Is(err, feed.ErrFeedFormat))
	assert.Equal(t, int32(1), hits.Load())
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) { return f(req) }
