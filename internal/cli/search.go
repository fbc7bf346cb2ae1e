package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	spinerrors "github.com/tessro/spin/internal/errors"
)

var (
	searchLimit      int
	searchPickRemove bool
	searchPickCopy   bool
)

var searchCmd = &cobra.Command{
	Use:     "search",
	Aliases: []string{"searches"},
	Short:   "Manage search history",
	Long:    `View and manage the list of recent search terms.`,
	RunE:    runSearchList,
}

var searchAddCmd = &cobra.Command{
	Use:   "add <query>",
	Short: "Record a search term",
	Long: `Record a search term at the top of the history.

A term already in the history (ignoring case and surrounding spaces) is left
where it is.

Examples:
  spin search add "massive attack"
  spin search add portishead dummy`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearchAdd,
}

var searchListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent searches",
	RunE:  runSearchList,
}

var searchRemoveCmd = &cobra.Command{
	Use:   "remove <query>",
	Short: "Remove a search term",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearchRemove,
}

var searchClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear search history",
	RunE:  runSearchClear,
}

var searchImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Record search terms from a file, one per line",
	Long: `Record each non-empty line of a file as a search term, in file order.
Use - to read from standard input.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearchImport,
}

var searchCopyCmd = &cobra.Command{
	Use:   "copy <n>",
	Short: "Copy the n-th search term to the clipboard",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearchCopy,
}

var searchPickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Choose a search term interactively",
	Long: `Show a picker over the search history and print the chosen term.

Examples:
  spin search pick
  spin search pick --copy
  spin search pick --remove`,
	RunE: runSearchPick,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "l", 20, "Maximum number of searches to show")
	searchListCmd.Flags().IntVarP(&searchLimit, "limit", "l", 20, "Maximum number of searches to show")
	searchPickCmd.Flags().BoolVar(&searchPickRemove, "remove", false, "Remove the chosen term")
	searchPickCmd.Flags().BoolVar(&searchPickCopy, "copy", false, "Copy the chosen term to the clipboard")
	searchPickCmd.MarkFlagsMutuallyExclusive("remove", "copy")

	searchCmd.AddCommand(searchAddCmd)
	searchCmd.AddCommand(searchListCmd)
	searchCmd.AddCommand(searchRemoveCmd)
	searchCmd.AddCommand(searchClearCmd)
	searchCmd.AddCommand(searchImportCmd)
	searchCmd.AddCommand(searchCopyCmd)
	searchCmd.AddCommand(searchPickCmd)
	rootCmd.AddCommand(searchCmd)
}

func runSearchAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	lib, err := openLibrary()
	if err != nil {
		return err
	}

	query := strings.Join(args, " ")
	items, err := lib.Searches.Add(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to save search: %w", err)
	}
	logger.Debug("search saved", "query", query, "len", len(items))

	if handled, err := emit(os.Stdout, map[string]any{
		"status":   "saved",
		"query":    strings.TrimSpace(query),
		"searches": items,
	}); handled {
		return err
	}

	fmt.Printf("%s %s\n", success("Saved search:"), strings.TrimSpace(query))
	return nil
}

func runSearchList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	lib, err := openLibrary()
	if err != nil {
		return err
	}

	items, err := lib.Searches.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to load searches: %w", err)
	}

	shown := items
	if searchLimit > 0 && len(shown) > searchLimit {
		shown = shown[:searchLimit]
	}

	if handled, err := emit(os.Stdout, map[string]any{
		"searches": shown,
		"total":    len(items),
	}); handled {
		return err
	}

	if len(items) == 0 {
		fmt.Println(muted("No search history"))
		return nil
	}

	fmt.Println(title("Recent searches:"))
	table := NewTable()
	for i, q := range shown {
		table.Row(dim(fmt.Sprintf("%3d.", i+1)), q)
	}
	table.Flush()

	if len(items) > len(shown) {
		fmt.Printf("\n... and %d more\n", len(items)-len(shown))
	}
	return nil
}

func runSearchRemove(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	lib, err := openLibrary()
	if err != nil {
		return err
	}

	query := strings.TrimSpace(strings.Join(args, " "))
	r, err := removeStored(ctx, lib.Searches.List, func(ctx context.Context) ([]string, error) {
		return lib.Searches.Remove(ctx, query)
	})
	if err != nil {
		return fmt.Errorf("failed to remove search: %w", err)
	}
	gone, ok := r.gone(func(q string) string { return q })

	if handled, err := emit(os.Stdout, map[string]any{
		"status":   removalStatus(ok),
		"query":    query,
		"removed":  gone,
		"searches": r.after,
	}); handled {
		return err
	}

	if !ok {
		printNotRemoved(fmt.Sprintf("%q", query))
		return nil
	}
	fmt.Printf("Removed search: %s\n", gone)
	return nil
}

func runSearchClear(cmd *cobra.Command, args []string) error {
	lib, err := openLibrary()
	if err != nil {
		return err
	}

	if err := lib.Searches.Clear(cmd.Context()); err != nil {
		return fmt.Errorf("failed to clear searches: %w", err)
	}

	if handled, err := emit(os.Stdout, map[string]string{"status": "cleared"}); handled {
		return err
	}
	fmt.Println("Search history cleared")
	return nil
}

func runSearchImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	lib, err := openLibrary()
	if err != nil {
		return err
	}

	in := os.Stdin
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", args[0], err)
		}
		defer func() { _ = f.Close() }()
		in = f
	}

	result := importSearches(ctx, bufio.NewScanner(in), lib.Searches.Add)
	logger.Debug("import finished", "saved", result.Data, "errors", len(result.Errors))

	if handled, err := emit(os.Stdout, map[string]any{
		"saved":  result.Data,
		"errors": errorStrings(result.Errors),
	}); handled {
		return err
	}

	fmt.Printf("Imported %d searches\n", result.Data)
	if result.HasErrors() {
		fmt.Fprintln(os.Stderr, result.ErrorSummary())
	}
	return nil
}

// importSearches records every non-blank line, oldest first, collecting
// per-line failures instead of stopping.
func importSearches(ctx context.Context, sc *bufio.Scanner, add func(context.Context, string) ([]string, error)) *spinerrors.PartialResult[int] {
	result := &spinerrors.PartialResult[int]{}
	line := 0
	for sc.Scan() {
		line++
		q := strings.TrimSpace(sc.Text())
		if q == "" {
			continue
		}
		if _, err := add(ctx, q); err != nil {
			result.AddError(fmt.Errorf("line %d: %w", line, err))
			continue
		}
		result.Data++
	}
	if err := sc.Err(); err != nil {
		result.AddError(fmt.Errorf("read: %w", err))
	}
	return result
}

func runSearchCopy(cmd *cobra.Command, args []string) error {
	lib, err := openLibrary()
	if err != nil {
		return err
	}

	items, err := lib.Searches.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load searches: %w", err)
	}

	query, err := nth(items, args[0])
	if err != nil {
		return err
	}

	if err := clipboard.WriteAll(query); err != nil {
		return fmt.Errorf("%w: %w", spinerrors.ErrClipboard, err)
	}

	if handled, err := emit(os.Stdout, map[string]string{"status": "copied", "query": query}); handled {
		return err
	}
	fmt.Printf("Copied: %s\n", query)
	return nil
}

func runSearchPick(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	lib, err := openLibrary()
	if err != nil {
		return err
	}

	items, err := lib.Searches.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to load searches: %w", err)
	}
	if len(items) == 0 {
		return fmt.Errorf("no search history to pick from")
	}

	options := make([]huh.Option[string], len(items))
	for i, q := range items {
		options[i] = huh.NewOption(q, q)
	}

	var chosen string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Recent searches").
				Options(options...).
				Value(&chosen),
		),
	)
	if err := form.RunWithContext(ctx); err != nil {
		return fmt.Errorf("selection cancelled: %w", err)
	}

	switch {
	case searchPickRemove:
		return runSearchRemove(cmd, []string{chosen})
	case searchPickCopy:
		if err := clipboard.WriteAll(chosen); err != nil {
			return fmt.Errorf("%w: %w", spinerrors.ErrClipboard, err)
		}
		fmt.Printf("Copied: %s\n", chosen)
	default:
		fmt.Println(chosen)
	}
	return nil
}

// nth returns the 1-based n-th element named by arg.
func nth[T any](items []T, arg string) (T, error) {
	var zero T
	n, err := strconv.Atoi(arg)
	if err != nil {
		return zero, fmt.Errorf("invalid index: %s", arg)
	}
	if n < 1 || n > len(items) {
		return zero, fmt.Errorf("%w: %d (history has %d entries)", spinerrors.ErrIndexOutOfRange, n, len(items))
	}
	return items[n-1], nil
}

func errorStrings(errs []error) []string {
	out := make([]string, len(errs))
	for i, err := range errs {
		out[i] = err.Error()
	}
	return out
}
