package config

// Config is the root configuration structure.
type Config struct {
	Storage StorageConfig `toml:"storage" json:"storage" yaml:"storage"`
	History HistoryConfig `toml:"history" json:"history" yaml:"history"`
	Tail    TailConfig    `toml:"tail" json:"tail" yaml:"tail"`
	Log     LogConfig     `toml:"log" json:"log" yaml:"log"`
}

// StorageConfig holds where lists are persisted.
type StorageConfig struct {
	Dir string `toml:"dir" json:"dir" yaml:"dir"`
}

// HistoryConfig holds list capacities and removal behavior.
// A capacity of -1 disables the cap.
type HistoryConfig struct {
	SearchMax    int    `toml:"search_max" json:"search_max" yaml:"search_max"`
	PlayMax      int    `toml:"play_max" json:"play_max" yaml:"play_max"`
	FavoriteMax  int    `toml:"favorite_max" json:"favorite_max" yaml:"favorite_max"`
	RemovePolicy string `toml:"remove_policy" json:"remove_policy" yaml:"remove_policy"`
}

// TailConfig holds settings for tail/follow mode.
type TailConfig struct {
	Interval int `toml:"interval" json:"interval" yaml:"interval"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level" json:"level" yaml:"level"`
	File  string `toml:"file" json:"file" yaml:"file"`
}
