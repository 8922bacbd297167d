package cfg

import (
	"cmp"
	"errors"
	"fmt"
	"os"
	"slices"
	"time"
	_ "time/tzdata"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

const (
	CommandFetch   = "fetch"
	CommandToday   = "today"
	CommandWord    = "word"
	CommandArchive = "archive"

	StoreMemory = "memory"
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
)

var commands = []string{CommandFetch, CommandToday, CommandWord, CommandArchive}

type rawCfg struct {
	// Sources
	FeedURL       string `long:"feed-url" env:"FEED_URL" default:"https://www.merriam-webster.com/wotd/feed/rss2" description:"Word of the day RSS feed URL"`
	DictionaryURL string `long:"dictionary-url" env:"DICTIONARY_URL" default:"https://www.dictionaryapi.com/api/v3/references/collegiate/json" description:"Collegiate Dictionary API base URL"`
	APIKey        string `long:"api-key" env:"MERRIAM_WEBSTER_API_KEY" description:"Merriam-Webster API key (required for fetch)"`

	// Storage
	Store    string `long:"store" env:"STORE" default:"sqlite" choice:"memory" choice:"sqlite" choice:"redis" description:"Storage backend"`
	DBPath   string `long:"db-path" env:"DB_PATH" default:"./data/wotd.db" description:"SQLite database file"`
	RedisURL string `long:"redis-url" env:"REDIS_URL" description:"Redis URL, e.g. redis://localhost:6379/0"`

	// Fetching
	Timeout    int    `long:"timeout" env:"HTTP_TIMEOUT" default:"30" description:"HTTP timeout in seconds"`
	MaxRetries int    `long:"max-retries" env:"MAX_RETRIES" default:"3" description:"Retries for transient fetch failures"`
	UserAgent  string `long:"user-agent" env:"USER_AGENT" default:"WOTD/1.0" description:"User agent string for HTTP requests"`

	// Output and logging
	Format    string `long:"format" env:"OUTPUT_FORMAT" default:"json" choice:"json" choice:"yaml" description:"Output format"`
	LogFormat string `long:"log-format" env:"LOG_FORMAT" default:"text" choice:"text" choice:"json" description:"Log format"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`

	Timezone string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone the word date is taken in (e.g., UTC, America/New_York)"`

	Positional struct {
		Command string   `positional-arg-name:"command" description:"fetch (default), today, word <word>, archive [date]"`
		Args    []string `positional-arg-name:"args"`
	} `positional-args:"yes"`
}

var globalCfg *Cfg

// Load parses os.Args and the environment.
func Load() (*Cfg, error) {
	return LoadArgs(os.Args[1:])
}

// LoadArgs parses args and the environment and validates the result. It
// returns nil, nil when help was requested.
func LoadArgs(args []string) (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.ParseArgs(args); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		FeedURL:       raw.FeedURL,
		DictionaryURL: raw.DictionaryURL,
		APIKey:        raw.APIKey,
		Store:         raw.Store,
		DBPath:        raw.DBPath,
		RedisURL:      raw.RedisURL,
		Timeout:       time.Duration(raw.Timeout) * time.Second,
		MaxRetries:    raw.MaxRetries,
		UserAgent:     raw.UserAgent,
		Format:        raw.Format,
		LogFormat:     raw.LogFormat,
		Debug:         raw.Debug,
		Timezone:      raw.Timezone,
		Location:      time.UTC,
		Version:       GetVersion(),
		Command:       cmp.Or(raw.Positional.Command, CommandFetch),
		Args:          raw.Positional.Args,
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	if loc, err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Invalid timezone '%s', using UTC: %v\n", cfg.Timezone, err)
	} else {
		cfg.Location = loc
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func validate(cfg *Cfg) error {
	if !slices.Contains(commands, cfg.Command) {
		return fmt.Errorf("unknown command %q", cfg.Command)
	}

	switch cfg.Command {
	case CommandFetch:
		if cfg.APIKey == "" {
			return errors.New("MERRIAM_WEBSTER_API_KEY is not set")
		}
		if len(cfg.Args) > 0 {
			return errors.New("fetch takes no arguments")
		}
	case CommandToday:
		if len(cfg.Args) > 0 {
			return errors.New("today takes no arguments")
		}
	case CommandWord:
		if len(cfg.Args) != 1 {
			return errors.New("word takes exactly one argument")
		}
	case CommandArchive:
		if len(cfg.Args) > 1 {
			return errors.New("archive takes at most one date")
		}
		if len(cfg.Args) == 1 {
			if _, err := time.Parse("2006-01-02", cfg.Args[0]); err != nil {
				return fmt.Errorf("invalid archive date %q: expected YYYY-MM-DD", cfg.Args[0])
			}
		}
	}

	if cfg.Store == StoreRedis && cfg.RedisURL == "" {
		return errors.New("redis store requires --redis-url")
	}
	if cfg.Timeout <= 0 {
		return errors.New("timeout must be positive")
	}
	if cfg.MaxRetries < 0 {
		return errors.New("max retries must not be negative")
	}

	return nil
}

func applyTimezone(timezone string) (*time.Location, error) {
	if timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(timezone)
}
