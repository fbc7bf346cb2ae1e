package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tessro/spin/internal/config"
	spinerrors "github.com/tessro/spin/internal/errors"
	"github.com/tessro/spin/internal/kv"
	"github.com/tessro/spin/internal/library"
	"github.com/tessro/spin/internal/logging"
	"github.com/tessro/spin/internal/recent"
)

var (
	cfgFile string
	jsonOut bool
	yamlOut bool
	verbose bool

	cfg      *config.Config
	logger   = logging.Discard()
	closeLog = func() error { return nil }
)

var rootCmd = &cobra.Command{
	Use:   "spin",
	Short: "Manage your player's search history, play history, and favorites",
	Long: `Spin keeps the "recently used" lists of a music player: searches you ran,
tracks you played, and tracks you marked as favorites. Lists are de-duplicated,
capped in size, and stored on disk between runs.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(cmd)
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeLog()
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: ~/.spinrc)")
	rootCmd.PersistentFlags().BoolVarP(&jsonOut, "json", "j", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&yamlOut, "yaml", false, "output as YAML")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.MarkFlagsMutuallyExclusive("json", "yaml")
}

func initConfig(cmd *cobra.Command) error {
	repairing := isConfigCommand(cmd)

	var err error
	if cfgFile != "" {
		cfg, err = config.LoadFrom(cfgFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		if !repairing {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = config.Default()
	}
	loadErr := err

	// The config commands must still run against a broken file so they can fix it.
	logCfg := cfg.Log
	invalid := cfg.Validate()
	if invalid != nil {
		if !repairing {
			return fmt.Errorf("%w: %w", spinerrors.ErrInvalidConfig, invalid)
		}
		logCfg = config.LogConfig{}
	}

	l, closeFn, err := logging.New(logCfg, verbose, os.Stderr)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	logger, closeLog = l, closeFn

	if loadErr != nil {
		logger.Warn("config could not be read", "err", loadErr)
	}
	if invalid != nil {
		logger.Warn("config is invalid", "err", invalid)
	}
	logger.Debug("config loaded", "storage", cfg.Storage.Dir, "remove_policy", cfg.History.RemovePolicy)

	return nil
}

// isConfigCommand reports whether cmd is configCmd or one of its subcommands.
func isConfigCommand(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c == configCmd {
			return true
		}
	}
	return false
}

// openLibrary opens the lists in the configured storage directory.
func openLibrary() (*library.Library, error) {
	store, err := kv.NewFileStore(cfg.Storage.Dir, kv.WithLogger(logger.WithPrefix("store")))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	logger.Debug("storage opened", "dir", store.Dir())

	policy, err := recent.ParseRemovePolicy(cfg.History.RemovePolicy)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", spinerrors.ErrInvalidConfig, err)
	}
	if policy != recent.RemovePersist {
		logger.Debug("non-default remove policy", "policy", policy)
	}

	return library.New(store, cfg.Limits(), library.WithRemovePolicy(policy)), nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_ = closeLog()
		fmt.Fprintln(os.Stderr, spinerrors.Format(err))
		os.Exit(1)
	}
}

// JSONOutput returns true if JSON output is requested.
func JSONOutput() bool {
	return jsonOut
}

// YAMLOutput returns true if YAML output is requested.
func YAMLOutput() bool {
	return yamlOut
}

// Verbose returns true if verbose output is requested.
func Verbose() bool {
	return verbose
}
