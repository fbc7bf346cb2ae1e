package cli

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tessro/spin/internal/core"
)

// trackFlags collects the flags that describe a track.
type trackFlags struct {
	id       string
	uri      string
	title    string
	artists  []string
	album    string
	duration time.Duration
	source   string
}

func (f *trackFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.id, "id", "", "track id (required)")
	cmd.Flags().StringVar(&f.uri, "uri", "", "track URI")
	cmd.Flags().StringVarP(&f.title, "title", "t", "", "track title")
	cmd.Flags().StringSliceVarP(&f.artists, "artist", "a", nil, "artist name (repeatable)")
	cmd.Flags().StringVar(&f.album, "album", "", "album name")
	cmd.Flags().DurationVar(&f.duration, "duration", 0, "track length, e.g. 4m12s")
	cmd.Flags().StringVar(&f.source, "source", string(core.SourceLocal), "origin platform (spotify, sonos, local)")
}

func (f *trackFlags) track() (core.Track, error) {
	source, err := core.ParseSource(f.source)
	if err != nil {
		return core.Track{}, err
	}
	t := core.Track{
		ID:       strings.TrimSpace(f.id),
		URI:      f.uri,
		Title:    f.title,
		Artists:  f.artists,
		Album:    f.album,
		Duration: f.duration,
		Source:   source,
	}
	if len(f.artists) > 0 {
		t.Artist = f.artists[0]
	}
	if t.Title == "" {
		t.Title = t.ID
	}
	return t, nil
}

// describeTrack renders a track as its title followed by its artist.
func describeTrack(t core.Track) string {
	if a := t.DisplayArtist(); a != "" {
		return t.Title + " — " + a
	}
	return t.Title
}
