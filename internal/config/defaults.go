package config

import "github.com/tessro/spin/internal/library"

// Default returns a Config populated with sensible defaults.
func Default() *Config {
	return &Config{
		History: HistoryConfig{
			SearchMax:    library.DefaultSearchMax,
			PlayMax:      library.DefaultPlayMax,
			FavoriteMax:  library.DefaultFavoriteMax,
			RemovePolicy: "persist",
		},
		Tail: TailConfig{
			Interval: 1000,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// ApplyDefaults fills in zero values with sensible defaults.
func (c *Config) ApplyDefaults() {
	d := Default()

	// History
	if c.History.SearchMax == 0 {
		c.History.SearchMax = d.History.SearchMax
	}
	if c.History.PlayMax == 0 {
		c.History.PlayMax = d.History.PlayMax
	}
	if c.History.FavoriteMax == 0 {
		c.History.FavoriteMax = d.History.FavoriteMax
	}
	if c.History.RemovePolicy == "" {
		c.History.RemovePolicy = d.History.RemovePolicy
	}

	// Tail
	if c.Tail.Interval == 0 {
		c.Tail.Interval = d.Tail.Interval
	}

	// Log
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
}

// Limits converts the history capacities for the library.
func (c *Config) Limits() library.Limits {
	return library.Limits{
		Search:   c.History.SearchMax,
		Play:     c.History.PlayMax,
		Favorite: c.History.FavoriteMax,
	}
}
