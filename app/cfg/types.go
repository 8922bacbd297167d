package cfg

import "time"

type Cfg struct {
	// Sources
	FeedURL       string
	DictionaryURL string
	APIKey        string

	// Storage
	Store    string
	DBPath   string
	RedisURL string

	// Fetching
	Timeout    time.Duration
	MaxRetries int
	UserAgent  string

	// Output and logging
	Format    string
	LogFormat string
	Debug     bool

	Timezone string
	Location *time.Location
	Version  string

	Command string
	Args    []string
}
