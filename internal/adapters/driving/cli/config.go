package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/userdir-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/userdir-cli/internal/core/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show and change configuration",
	Long: `View and change the settings stored in config.toml.

Keys use dot notation, for example:
  api.base_url                  remote API base URL
  api.key                       value sent as x-api-key
  api.timeout_seconds           request timeout
  api.requests_per_second       client-side throttle (0 disables)
  directory.total_pages         page bound before the server reports one
  directory.search_debounce_ms  search quiescence window
  directory.mock_backend        qualify write confirmations
  notifications.error_seconds   error notification lifetime
  notifications.success_seconds success notification lifetime
  storage.data_dir              session database directory`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show configured values",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Long: `Set a configuration value. "true" and "false" are stored as booleans
and numbers as numbers; anything else is stored as a string.`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	s, err := requireServices("config")
	if err != nil {
		return err
	}

	cmd.Printf("Config file: %s\n\n", s.Config.Path())
	keys := s.Config.Keys()
	if len(keys) == 0 {
		cmd.Println("No values set; defaults apply.")
		return nil
	}
	for _, key := range keys {
		v, _ := s.Config.Get(key)
		if key == domain.KeyAPIKey {
			v = maskToken(fmt.Sprint(v))
		}
		cmd.Printf("  %s = %v\n", key, v)
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	s, err := requireServices("config")
	if err != nil {
		return err
	}

	key := strings.TrimSpace(args[0])
	if key == "" || strings.HasPrefix(key, ".") || strings.HasSuffix(key, ".") {
		return fmt.Errorf("invalid key %q", args[0])
	}
	value := file.ParseValue(args[1])
	if err := s.Config.Set(key, value); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	cmd.Printf("%s = %v\n", key, value)
	return nil
}
