package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/tessro/spin/internal/core"
)

var (
	playedLimit int
	playedTrack trackFlags
)

var playedCmd = &cobra.Command{
	Use:     "played",
	Aliases: []string{"history", "plays"},
	Short:   "Manage play history",
	Long:    `View and manage the list of recently played tracks.`,
	RunE:    runPlayedList,
}

var playedAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a played track",
	Long: `Record a track at the top of the play history.

A track already in the history keeps its position and original play time.

Examples:
  spin played add --id 6b2oQ --title "Teardrop" --artist "Massive Attack"`,
	Args: cobra.NoArgs,
	RunE: runPlayedAdd,
}

var playedListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recently played tracks",
	RunE:  runPlayedList,
}

var playedRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a track from the play history",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlayedRemove,
}

var playedClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear play history",
	RunE:  runPlayedClear,
}

func init() {
	playedCmd.Flags().IntVarP(&playedLimit, "limit", "l", 20, "Maximum number of tracks to show")
	playedListCmd.Flags().IntVarP(&playedLimit, "limit", "l", 20, "Maximum number of tracks to show")
	playedTrack.register(playedAddCmd)

	playedCmd.AddCommand(playedAddCmd)
	playedCmd.AddCommand(playedListCmd)
	playedCmd.AddCommand(playedRemoveCmd)
	playedCmd.AddCommand(playedClearCmd)
	rootCmd.AddCommand(playedCmd)
}

func runPlayedAdd(cmd *cobra.Command, args []string) error {
	lib, err := openLibrary()
	if err != nil {
		return err
	}

	track, err := playedTrack.track()
	if err != nil {
		return err
	}
	entries, err := lib.Plays.Record(cmd.Context(), track)
	if err != nil {
		return fmt.Errorf("failed to record play: %w", err)
	}
	logger.Debug("play recorded", "id", track.ID, "len", len(entries))

	if handled, err := emit(os.Stdout, map[string]any{
		"status": "recorded",
		"track":  track,
		"total":  len(entries),
	}); handled {
		return err
	}

	fmt.Printf("%s %s\n", success("Played:"), describeTrack(track))
	return nil
}

func runPlayedList(cmd *cobra.Command, args []string) error {
	lib, err := openLibrary()
	if err != nil {
		return err
	}

	entries, err := lib.Plays.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load play history: %w", err)
	}

	shown := entries
	if playedLimit > 0 && len(shown) > playedLimit {
		shown = shown[:playedLimit]
	}

	if handled, err := emit(os.Stdout, map[string]any{
		"played": shown,
		"total":  len(entries),
	}); handled {
		return err
	}

	if len(entries) == 0 {
		fmt.Println(muted("No play history"))
		return nil
	}

	fmt.Println(title("Recently played:"))
	table := NewTable()
	for i, e := range shown {
		length := ""
		if e.Track.Duration > 0 {
			length = FormatDuration(int(e.Track.Duration.Seconds()))
		}
		table.Row(
			dim(fmt.Sprintf("%3d.", i+1)),
			TruncateString(describeTrack(e.Track), 60),
			length,
			muted(humanize.Time(e.PlayedAt)),
		)
	}
	table.Flush()

	if len(entries) > len(shown) {
		fmt.Printf("\n... and %d more tracks\n", len(entries)-len(shown))
	}
	return nil
}

func runPlayedRemove(cmd *cobra.Command, args []string) error {
	lib, err := openLibrary()
	if err != nil {
		return err
	}

	id := args[0]
	r, err := removeStored(cmd.Context(), lib.Plays.List, func(ctx context.Context) ([]core.PlayEntry, error) {
		return lib.Plays.Remove(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("failed to remove play: %w", err)
	}
	gone, ok := r.gone(core.PlayEntryID)

	if handled, err := emit(os.Stdout, map[string]any{
		"status":  removalStatus(ok),
		"id":      id,
		"removed": gone.Track.ID,
		"total":   len(r.after),
	}); handled {
		return err
	}

	if !ok {
		printNotRemoved(id)
		return nil
	}
	fmt.Printf("Removed from history: %s\n", describeTrack(gone.Track))
	return nil
}

func runPlayedClear(cmd *cobra.Command, args []string) error {
	lib, err := openLibrary()
	if err != nil {
		return err
	}

	if err := lib.Plays.Clear(cmd.Context()); err != nil {
		return fmt.Errorf("failed to clear play history: %w", err)
	}

	if handled, err := emit(os.Stdout, map[string]string{"status": "cleared"}); handled {
		return err
	}
	fmt.Println("Play history cleared")
	return nil
}
