package cli

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/tessro/spin/internal/config"
	spinerrors "github.com/tessro/spin/internal/errors"
	"github.com/tessro/spin/internal/logging"
	"github.com/tessro/spin/internal/recent"
)

const configHeader = "# Spin Configuration\n\n"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Commands for viewing and editing spin configuration.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the effective configuration, including defaults and environment overrides.`,
	RunE:  runConfigShow,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit configuration file",
	Long:  `Open the configuration file in your default editor.`,
	RunE:  runConfigEdit,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	Long:  `Create a new configuration file with default values.`,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	RunE:  runConfigPath,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value.

Supported keys:
  storage.dir             Directory the lists are stored in
  history.search_max      Maximum saved searches (-1 for unlimited)
  history.play_max        Maximum play history entries (-1 for unlimited)
  history.favorite_max    Maximum favorites (-1 for unlimited)
  history.remove_policy   persist, memory, or legacy
  tail.interval           Poll interval for 'spin tail' in milliseconds
  log.level               debug, info, warn, or error
  log.file                Append logs to this file

Examples:
  spin config set history.search_max 50
  spin config set log.level debug`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configEditCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	if handled, err := emit(os.Stdout, cfg); handled {
		return err
	}

	encoder := toml.NewEncoder(os.Stdout)
	encoder.Indent = "  "
	return encoder.Encode(cfg)
}

func runConfigEdit(cmd *cobra.Command, args []string) error {
	configPath := getConfigPath()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return configNotFound(configPath)
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = os.Getenv("VISUAL")
	}
	if editor == "" {
		for _, e := range []string{"nano", "vim", "vi", "notepad"} {
			if _, err := exec.LookPath(e); err == nil {
				editor = e
				break
			}
		}
	}
	if editor == "" {
		return fmt.Errorf("no editor found. Set EDITOR environment variable")
	}

	editorCmd := exec.Command(editor, configPath)
	editorCmd.Stdin = os.Stdin
	editorCmd.Stdout = os.Stdout
	editorCmd.Stderr = os.Stderr

	return editorCmd.Run()
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	configPath := getConfigPath()

	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file already exists at %s", configPath)
	}

	if err := writeConfigFile(configPath, config.Default()); err != nil {
		return err
	}
	logger.Debug("config created", "path", configPath)

	if handled, err := emit(os.Stdout, map[string]string{
		"status": "created",
		"path":   configPath,
	}); handled {
		return err
	}

	fmt.Printf("Created config file: %s\n", configPath)
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	configPath := getConfigPath()
	_, statErr := os.Stat(configPath)

	if handled, err := emit(os.Stdout, map[string]any{
		"path":   configPath,
		"exists": statErr == nil,
	}); handled {
		return err
	}

	fmt.Println(configPath)
	return nil
}

func configNotFound(path string) error {
	return spinerrors.WithSuggestion(
		fmt.Errorf("%w at %s", spinerrors.ErrConfigNotFound, path),
		fmt.Sprintf("Run 'spin config init' to create %s", path),
	)
}

func getConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.DefaultPath()
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]
	configPath := getConfigPath()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return configNotFound(configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	raw := map[string]any{}
	if _, err := toml.Decode(string(data), &raw); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	if err := setConfigValue(raw, key, value); err != nil {
		return err
	}

	if err := writeConfigFile(configPath, raw); err != nil {
		return err
	}

	if handled, err := emit(os.Stdout, map[string]string{
		"status": "updated",
		"key":    key,
		"value":  value,
	}); handled {
		return err
	}

	fmt.Printf("Set %s = %s\n", key, value)
	return nil
}

// setConfigValue validates value for key and stores it in the raw TOML tree.
func setConfigValue(raw map[string]any, key, value string) error {
	section, field, ok := strings.Cut(key, ".")
	if !ok || section == "" || field == "" || strings.Contains(field, ".") {
		return fmt.Errorf("invalid key format. Use 'section.key' (e.g., history.search_max)")
	}

	var typed any
	switch key {
	case "history.search_max", "history.play_max", "history.favorite_max":
		n, err := strconv.Atoi(value)
		if err != nil || n < -1 {
			return fmt.Errorf("value must be an integer >= -1 for %s", key)
		}
		typed = n
	case "tail.interval":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("value must be a non-negative integer for %s", key)
		}
		typed = n
	case "history.remove_policy":
		p, err := recent.ParseRemovePolicy(value)
		if err != nil {
			return err
		}
		typed = p.String()
	case "log.level":
		if _, err := logging.ParseLevel(value); err != nil {
			return err
		}
		typed = strings.ToLower(value)
	case "storage.dir", "log.file":
		typed = value
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}

	sectionMap, ok := raw[section].(map[string]any)
	if !ok {
		sectionMap = map[string]any{}
		raw[section] = sectionMap
	}
	sectionMap[field] = typed
	return nil
}

func writeConfigFile(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	if err := encodeConfig(f, v); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write config: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func encodeConfig(w io.Writer, v any) error {
	if _, err := io.WriteString(w, configHeader); err != nil {
		return err
	}
	encoder := toml.NewEncoder(w)
	encoder.Indent = "  "
	return encoder.Encode(v)
}
