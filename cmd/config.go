package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/guilhermegouw/chatlog/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or change the global configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a single config field, e.g. storage.backend sqlite",
		Example: `  chatlog config set storage.backend sqlite
  chatlog config set display.no_color true
  chatlog config set options.history_file ~/.chatlog_history`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			value, err := config.ParseFieldValue(key, args[1])
			if err != nil {
				return err
			}
			if err := config.SetConfigField(key, value); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %v in %s\n", key, value, config.GlobalConfigPath())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write a global config file with default values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := config.GlobalConfigPath()
			if _, err := os.Stat(path); err == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Config already exists: %s\n", path)
				return nil
			}
			if err := config.Save(config.NewConfig()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the global config file path",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), config.GlobalConfigPath())
		},
	})

	return cmd
}
