package core

import (
	"fmt"
	"strings"
	"time"
)

// Source indicates the origin platform of a track.
type Source string

const (
	SourceSpotify Source = "spotify"
	SourceSonos   Source = "sonos"
	SourceLocal   Source = "local"
)

// ParseSource returns the Source named by s, ignoring case.
func ParseSource(s string) (Source, error) {
	switch src := Source(strings.ToLower(strings.TrimSpace(s))); src {
	case SourceSpotify, SourceSonos, SourceLocal:
		return src, nil
	default:
		return "", fmt.Errorf("unknown source %q (must be %s, %s, or %s)", s, SourceSpotify, SourceSonos, SourceLocal)
	}
}

// Track represents a playable audio track.
type Track struct {
	ID       string        `json:"id" yaml:"id"`
	URI      string        `json:"uri,omitempty" yaml:"uri,omitempty"`
	Title    string        `json:"title" yaml:"title"`
	Artist   string        `json:"artist" yaml:"artist"`
	Artists  []string      `json:"artists,omitempty" yaml:"artists,omitempty"`
	Album    string        `json:"album,omitempty" yaml:"album,omitempty"`
	Duration time.Duration `json:"duration,omitempty" yaml:"duration,omitempty"`
	Source   Source        `json:"source,omitempty" yaml:"source,omitempty"`
}

// TrackID returns the identity used to de-duplicate tracks in lists.
func TrackID(t Track) string {
	return t.ID
}

// DisplayArtist returns Artist, falling back to the joined Artists.
func (t Track) DisplayArtist() string {
	if t.Artist != "" {
		return t.Artist
	}
	return strings.Join(t.Artists, ", ")
}
