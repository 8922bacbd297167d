package cfg

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"FEED_URL", "DICTIONARY_URL", "MERRIAM_WEBSTER_API_KEY", "STORE", "DB_PATH", "REDIS_URL",
		"HTTP_TIMEOUT", "MAX_RETRIES", "USER_AGENT", "OUTPUT_FORMAT", "LOG_FORMAT", "DEBUG", "TZ",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestGetVersion(t *testing.T) {
	assert.NotEmpty(t, GetVersion())
}

func TestLoadArgsDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadArgs([]string{"--api-key", "secret"})
	require.NoError(t, err)

	assert.Equal(t, CommandFetch, cfg.Command)
	assert.Equal(t, "https://www.merriam-webster.com/wotd/feed/rss2", cfg.FeedURL)
	assert.Equal(t, StoreSQLite, cfg.Store)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.Equal(t, "json", cfg.Format)
	assert.Same(t, time.UTC, cfg.Location)
	assert.Same(t, cfg, Get())
}

func TestLoadArgsEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("MERRIAM_WEBSTER_API_KEY", "from-env")
	t.Setenv("STORE", "redis")
	t.Setenv("REDIS_URL", "redis://localhost:6379/1")
	t.Setenv("OUTPUT_FORMAT", "yaml")
	t.Setenv("TZ", "America/New_York")
	t.Setenv("HTTP_TIMEOUT", "5")

	cfg, err := LoadArgs([]string{"today"})
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.APIKey)
	assert.Equal(t, StoreRedis, cfg.Store)
	assert.Equal(t, "redis://localhost:6379/1", cfg.RedisURL)
	assert.Equal(t, "yaml", cfg.Format)
	assert.Equal(t, "America/New_York", cfg.Location.String())
	assert.Equal(t, 5*time.Second, cfg.Timeout)
}

func TestLoadArgsCommands(t *testing.T) {
	clearEnv(t)

	tests := []struct {
		name    string
		args    []string
		command string
		params  []string
	}{
		{name: "today without key", args: []string{"today"}, command: CommandToday},
		{name: "word", args: []string{"word", "Gallimaufry"}, command: CommandWord, params: []string{"Gallimaufry"}},
		{name: "archive index", args: []string{"archive"}, command: CommandArchive},
		{name: "archive date", args: []string{"archive", "2024-05-01"}, command: CommandArchive, params: []string{"2024-05-01"}},
		{name: "memory store", args: []string{"--store", "memory", "today"}, command: CommandToday},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadArgs(tt.args)
			require.NoError(t, err)

			assert.Equal(t, tt.command, cfg.Command)
			require.Len(t, cfg.Args, len(tt.params))
			for i := range tt.params {
				assert.Equal(t, tt.params[i], cfg.Args[i])
			}
		})
	}
}

func TestLoadArgsValidation(t *testing.T) {
	clearEnv(t)

	tests := []struct {
		name string
		args []string
	}{
		{name: "fetch without api key", args: []string{"fetch"}},
		{name: "unknown command", args: []string{"--api-key", "k", "serve"}},
		{name: "unknown store", args: []string{"--store", "postgres", "today"}},
		{name: "redis without url", args: []string{"--store", "redis", "today"}},
		{name: "word without argument", args: []string{"word"}},
		{name: "bad archive date", args: []string{"archive", "May 1"}},
		{name: "bad format", args: []string{"--format", "xml", "today"}},
		{name: "zero timeout", args: []string{"--timeout", "0", "today"}},
		{name: "negative retries", args: []string{"--max-retries", "-1", "today"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadArgs(tt.args)
			assert.Error(t, err)
		})
	}
}

func TestLoadArgsInvalidTimezone(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadArgs([]string{"--timezone", "Mars/Olympus_Mons", "today"})
	require.NoError(t, err)

	assert.Same(t, time.UTC, cfg.Location)
}
