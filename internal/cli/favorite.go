package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tessro/spin/internal/core"
)

var (
	favoriteLimit int
	favoriteTrack trackFlags
)

var favoriteCmd = &cobra.Command{
	Use:     "favorite",
	Aliases: []string{"fav", "favorites"},
	Short:   "Manage favorite tracks",
	Long:    `View and manage the list of favorite tracks.`,
	RunE:    runFavoriteList,
}

var favoriteAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Mark a track as a favorite",
	Args:  cobra.NoArgs,
	RunE:  runFavoriteAdd,
}

var favoriteToggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Mark or unmark a track as a favorite",
	Long: `Add the track to favorites if it is not there, remove it otherwise.

Examples:
  spin favorite toggle --id 6b2oQ --title "Teardrop" --artist "Massive Attack"`,
	Args: cobra.NoArgs,
	RunE: runFavoriteToggle,
}

var favoriteRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Unmark a favorite track",
	Args:  cobra.ExactArgs(1),
	RunE:  runFavoriteRemove,
}

var favoriteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List favorite tracks",
	RunE:  runFavoriteList,
}

var favoriteClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every favorite",
	RunE:  runFavoriteClear,
}

func init() {
	favoriteCmd.Flags().IntVarP(&favoriteLimit, "limit", "l", 0, "Maximum number of tracks to show (0 for all)")
	favoriteListCmd.Flags().IntVarP(&favoriteLimit, "limit", "l", 0, "Maximum number of tracks to show (0 for all)")
	favoriteTrack.register(favoriteAddCmd)
	favoriteTrack.register(favoriteToggleCmd)

	favoriteCmd.AddCommand(favoriteAddCmd)
	favoriteCmd.AddCommand(favoriteToggleCmd)
	favoriteCmd.AddCommand(favoriteRemoveCmd)
	favoriteCmd.AddCommand(favoriteListCmd)
	favoriteCmd.AddCommand(favoriteClearCmd)
	rootCmd.AddCommand(favoriteCmd)
}

func runFavoriteAdd(cmd *cobra.Command, args []string) error {
	lib, err := openLibrary()
	if err != nil {
		return err
	}

	track, err := favoriteTrack.track()
	if err != nil {
		return err
	}
	items, err := lib.Favorites.Add(cmd.Context(), track)
	if err != nil {
		return fmt.Errorf("failed to add favorite: %w", err)
	}

	if handled, err := emit(os.Stdout, map[string]any{
		"status": "added",
		"track":  track,
		"total":  len(items),
	}); handled {
		return err
	}
	fmt.Printf("%s %s\n", success("♥ Favorite:"), describeTrack(track))
	return nil
}

func runFavoriteToggle(cmd *cobra.Command, args []string) error {
	lib, err := openLibrary()
	if err != nil {
		return err
	}

	track, err := favoriteTrack.track()
	if err != nil {
		return err
	}
	on, items, err := lib.Favorites.Toggle(cmd.Context(), track)
	if err != nil {
		return fmt.Errorf("failed to toggle favorite: %w", err)
	}
	logger.Debug("favorite toggled", "id", track.ID, "favorite", on)

	if handled, err := emit(os.Stdout, map[string]any{
		"favorite": on,
		"track":    track,
		"total":    len(items),
	}); handled {
		return err
	}

	if on {
		fmt.Printf("%s %s\n", success("♥ Favorite:"), describeTrack(track))
	} else {
		fmt.Printf("♡ Removed: %s\n", describeTrack(track))
	}
	return nil
}

func runFavoriteRemove(cmd *cobra.Command, args []string) error {
	lib, err := openLibrary()
	if err != nil {
		return err
	}

	id := args[0]
	r, err := removeStored(cmd.Context(), lib.Favorites.List, func(ctx context.Context) ([]core.Track, error) {
		return lib.Favorites.Remove(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	gone, ok := r.gone(core.TrackID)

	if handled, err := emit(os.Stdout, map[string]any{
		"status":  removalStatus(ok),
		"id":      id,
		"removed": gone.ID,
		"total":   len(r.after),
	}); handled {
		return err
	}

	if !ok {
		printNotRemoved(id)
		return nil
	}
	fmt.Printf("♡ Removed: %s\n", describeTrack(gone))
	return nil
}

func runFavoriteList(cmd *cobra.Command, args []string) error {
	lib, err := openLibrary()
	if err != nil {
		return err
	}

	items, err := lib.Favorites.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load favorites: %w", err)
	}

	shown := items
	if favoriteLimit > 0 && len(shown) > favoriteLimit {
		shown = shown[:favoriteLimit]
	}

	if handled, err := emit(os.Stdout, map[string]any{
		"favorites": shown,
		"total":     len(items),
	}); handled {
		return err
	}

	if len(items) == 0 {
		fmt.Println(muted("No favorites yet"))
		return nil
	}

	fmt.Println(title("Favorites:"))
	table := NewTable()
	for i, t := range shown {
		table.Row(
			dim(fmt.Sprintf("%3d.", i+1)),
			TruncateString(describeTrack(t), 60),
			muted(t.Album),
			dim(t.ID),
		)
	}
	table.Flush()

	if len(items) > len(shown) {
		fmt.Printf("\n... and %d more tracks\n", len(items)-len(shown))
	}
	return nil
}

func runFavoriteClear(cmd *cobra.Command, args []string) error {
	lib, err := openLibrary()
	if err != nil {
		return err
	}

	if err := lib.Favorites.Clear(cmd.Context()); err != nil {
		return fmt.Errorf("failed to clear favorites: %w", err)
	}

	if handled, err := emit(os.Stdout, map[string]string{"status": "cleared"}); handled {
		return err
	}
	fmt.Println("Favorites cleared")
	return nil
}
