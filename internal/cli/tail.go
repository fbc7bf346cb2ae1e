package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tessro/spin/internal/core"
	spinerrors "github.com/tessro/spin/internal/errors"
	"github.com/tessro/spin/internal/library"
	"github.com/tessro/spin/internal/tail"
)

var (
	tailNoEmoji   bool
	tailTimestamp bool
	tailFormat    string
	tailInterval  time.Duration
)

var tailCmd = &cobra.Command{
	Use:   "tail <search|played|favorite>",
	Short: "Follow changes to a list in real-time",
	Long: `Watch a list for changes made by other processes and print them as they happen.

Events tracked:
  - Items added
  - Items removed (including items evicted when the list is full)
  - Items edited in place by another process
  - The list being cleared

Template fields: .Type .Emoji .Time .Timestamp .Key .ID .Label .Position`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"search", "played", "favorite"},
	RunE:      runTail,
}

func init() {
	tailCmd.Flags().BoolVar(&tailNoEmoji, "no-emoji", false, "disable emoji output")
	tailCmd.Flags().BoolVarP(&tailTimestamp, "timestamp", "t", false, "show timestamps")
	tailCmd.Flags().StringVarP(&tailFormat, "format", "f", "", "custom format template")
	tailCmd.Flags().DurationVarP(&tailInterval, "interval", "i", 0, "poll interval (default from config)")

	rootCmd.AddCommand(tailCmd)
}

func runTail(cmd *cobra.Command, args []string) error {
	lib, err := openLibrary()
	if err != nil {
		return err
	}

	interval := tailInterval
	if interval == 0 {
		interval = time.Duration(cfg.Tail.Interval) * time.Millisecond
	}

	formatter := tail.NewFormatter(
		tail.WithEmoji(!tailNoEmoji),
		tail.WithTimestamp(tailTimestamp),
		tail.WithTemplate(tailFormat),
	)

	// Handle Ctrl+C gracefully
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	opts := []tail.WatcherOption{tail.WithLogger(logger.WithPrefix("tail"))}

	switch args[0] {
	case "search", "searches":
		w := tail.NewWatcher[string](lib.Searches.List, library.SearchKey, func(q string) string { return q }, nil, interval, opts...)
		return follow(ctx, args[0], w, formatter)
	case "played", "plays", "history":
		w := tail.NewWatcher[core.PlayEntry](lib.Plays.List, library.PlayKey, core.PlayEntryID, func(e core.PlayEntry) string {
			return describeTrack(e.Track)
		}, interval, opts...)
		return follow(ctx, args[0], w, formatter)
	case "favorite", "favorites", "fav":
		w := tail.NewWatcher[core.Track](lib.Favorites.List, library.FavoriteKey, core.TrackID, describeTrack, interval, opts...)
		return follow(ctx, args[0], w, formatter)
	default:
		return fmt.Errorf("%w: %s", spinerrors.ErrUnknownList, args[0])
	}
}

type eventSource interface {
	Start(ctx context.Context) error
	Events() <-chan tail.Event
}

func follow(ctx context.Context, name string, w eventSource, formatter *tail.Formatter) error {
	if !JSONOutput() && !YAMLOutput() {
		fmt.Fprintf(os.Stderr, "Watching %s for changes (Ctrl+C to stop)...\n", name)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- w.Start(ctx)
	}()

	for e := range w.Events() {
		if handled, err := emit(os.Stdout, map[string]any{
			"type":      e.Type.String(),
			"timestamp": e.Timestamp,
			"key":       e.Key,
			"id":        e.ID,
			"label":     e.Label,
			"position":  e.Position + 1,
		}); handled {
			if err != nil {
				return err
			}
			continue
		}
		fmt.Println(formatter.Format(e))
	}

	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
