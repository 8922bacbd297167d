package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/lysyi3m/wotd/app/cfg"
	"github.com/lysyi3m/wotd/app/database"
	"github.com/lysyi3m/wotd/app/feed"
	"github.com/lysyi3m/wotd/app/kv"
	"github.com/lysyi3m/wotd/app/merriam"
	"github.com/lysyi3m/wotd/app/tasks"
	"github.com/lysyi3m/wotd/app/words"
	"gopkg.in/yaml.v3"
)

var errRecordNotFound = errors.New("not found")

type fetchResult struct {
	Success bool   `json:"success" yaml:"success"`
	Word    string `json:"word,omitempty" yaml:"word,omitempty"`
	Date    string `json:"date,omitempty" yaml:"date,omitempty"`
	Error   string `json:"error,omitempty" yaml:"error,omitempty"`
}

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if appCfg == nil {
		// Help was shown
		return
	}

	setupLogger(appCfg, os.Stderr)

	slog.Debug("Configuration loaded", "command", appCfg.Command, "store", appCfg.Store, "version", appCfg.Version)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	store, err := openStore(ctx, appCfg)
	if err != nil {
		slog.Error("Failed to open store", "store", appCfg.Store, "error", err)
		stop()
		os.Exit(1)
	}

	err = run(ctx, appCfg, store, os.Stdout)

	if closeErr := store.Close(); closeErr != nil {
		slog.Warn("Failed to close store", "error", closeErr)
	}
	stop()

	if err != nil {
		if errors.Is(err, errRecordNotFound) {
			fmt.Fprintln(os.Stderr, err)
		} else {
			slog.Error("Command failed", "command", appCfg.Command, "error", err)
		}
		os.Exit(1)
	}
}

func setupLogger(c *cfg.Cfg, w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if c.Debug {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: c.LogFormat == "text",
	}

	var handler slog.Handler
	if c.LogFormat == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	return logger
}

func openStore(ctx context.Context, c *cfg.Cfg) (kv.Store, error) {
	switch c.Store {
	case cfg.StoreMemory:
		slog.Warn("Using in-memory store, records are not kept between runs")
		return kv.NewMemory(), nil
	case cfg.StoreRedis:
		return kv.NewRedis(ctx, c.RedisURL)
	default:
		db, err := database.Open(c.DBPath)
		if err != nil {
			return nil, err
		}
		slog.Debug("Connected to database", "path", db.Path())
		return database.NewKVStore(db), nil
	}
}

func run(ctx context.Context, c *cfg.Cfg, store kv.Store, out io.Writer) error {
	archive := words.NewArchive(store)

	switch c.Command {
	case cfg.CommandToday:
		w, err := archive.Today(ctx)
		if err != nil {
			return err
		}
		if w == nil {
			return fmt.Errorf("word of the day %w", errRecordNotFound)
		}
		return writeOutput(out, c.Format, w)

	case cfg.CommandWord:
		w, err := archive.ByWord(ctx, c.Args[0])
		if err != nil {
			return err
		}
		if w == nil {
			return fmt.Errorf("word %q %w", c.Args[0], errRecordNotFound)
		}
		return writeOutput(out, c.Format, w)

	case cfg.CommandArchive:
		if len(c.Args) == 1 {
			w, err := archive.ByDate(ctx, c.Args[0])
			if err != nil {
				return err
			}
			if w == nil {
				return fmt.Errorf("archive entry for %s %w", c.Args[0], errRecordNotFound)
			}
			return writeOutput(out, c.Format, w)
		}
		all, err := archive.All(ctx)
		if err != nil {
			return err
		}
		return writeOutput(out, c.Format, all)

	default:
		return fetch(ctx, c, archive, out)
	}
}

func fetch(ctx context.Context, c *cfg.Cfg, archive *words.Archive, out io.Writer) error {
	httpClient := &http.Client{Timeout: c.Timeout}
	dictionary := merriam.NewClient(c.DictionaryURL, c.APIKey, c.UserAgent, c.Timeout, slog.Default())

	task := tasks.NewFetchWordTask(tasks.FetchWordOptions{
		FeedURL:    c.FeedURL,
		UserAgent:  c.UserAgent,
		Timeout:    c.Timeout,
		Location:   c.Location,
		MaxRetries: c.MaxRetries,
	}, httpClient, feed.NewReader(), dictionary, archive)

	if err := tasks.NewRunner().Run(ctx, task); err != nil {
		if writeErr := writeOutput(out, c.Format, fetchResult{Success: false, Error: err.Error()}); writeErr != nil {
			slog.Warn("Failed to write output", "error", writeErr)
		}
		return err
	}

	return writeOutput(out, c.Format, fetchResult{
		Success: true,
		Word:    task.Result.Word,
		Date:    task.Result.Date,
	})
}

func writeOutput(w io.Writer, format string, v any) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode json: %w", err)
	}
	return nil
}
