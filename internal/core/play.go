package core

import "time"

// PlayEntry records one play of a track.
type PlayEntry struct {
	Track    Track     `json:"track" yaml:"track"`
	PlayedAt time.Time `json:"played_at" yaml:"played_at"`
}

// PlayEntryID returns the identity of the entry's track.
func PlayEntryID(e PlayEntry) string {
	return e.Track.ID
}
