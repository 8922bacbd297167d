package merriam

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

const DefaultBaseURL = "https://www.dictionaryapi.com/api/v3/references/collegiate/json"

// Client fetches entries from the Merriam-Webster Collegiate Dictionary API.
type Client struct {
	baseURL    string
	apiKey     string
	userAgent  string
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a Client. An empty baseURL selects DefaultBaseURL.
func NewClient(baseURL, apiKey, userAgent string, timeout time.Duration, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "merriam"),
	}
}

// FetchEntry looks up word and returns the normalized entry. A not-found
// answer is reported as *NotFoundError carrying the suggestions.
func (c *Client) FetchEntry(ctx context.Context, word string) (WordEntry, error) {
	if c.apiKey == "" {
		return WordEntry{}, ErrMissingAPIKey
	}

	reqURL := c.baseURL + "/" + url.PathEscape(word) + "?key=" + url.QueryEscape(c.apiKey)

	c.log.DebugContext(ctx, "merriam request", slog.String("word", word))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return WordEntry{}, fmt.Errorf("merriam: create request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return WordEntry{}, fmt.Errorf("merriam: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return WordEntry{}, fmt.Errorf("merriam: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return WordEntry{}, fmt.Errorf("merriam: read body: %w", err)
	}

	entry, err := ParseResponse(body)
	if err != nil {
		var nf *NotFoundError
		if errors.As(err, &nf) {
			nf.Word = word
			c.log.WarnContext(ctx, "merriam word not found",
				slog.String("word", word),
				slog.Any("suggestions", nf.Suggestions))
			return WordEntry{}, nf
		}
		return WordEntry{}, fmt.Errorf("merriam: %w", err)
	}

	c.log.DebugContext(ctx, "merriam response",
		slog.String("word", word),
		slog.Int("definitions", len(entry.Definitions)),
		slog.Int("examples", len(entry.Examples)),
	)

	return entry, nil
}
