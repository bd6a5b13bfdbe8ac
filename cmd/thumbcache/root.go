package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"thumbcache/internal/logging"
)

func newRootCommand() *cobra.Command {
	var envFileFlag string
	var logLevelFlag string

	ctx := newCommandContext(&envFileFlag)

	rootCmd := &cobra.Command{
		Use:           "thumbcache",
		Short:         "Unicode-safe thumbnail cache builder",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(logLevelFlag) == "" {
				return nil
			}
			level, ok := logging.ParseLevel(logLevelFlag)
			if !ok {
				return fmt.Errorf("invalid --log-level %q", logLevelFlag)
			}
			logging.SetLevel(level)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&envFileFlag, "env-file", "", "Environment file to load (default .env if present)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level: debug, info, warn, error (overrides LOG_LEVEL)")

	rootCmd.AddCommand(newCharactersCommand(ctx))
	rootCmd.AddCommand(newSwitchesCommand(ctx))
	rootCmd.AddCommand(newLookupCommand(ctx))
	rootCmd.AddCommand(newListCommand(ctx))
	rootCmd.AddCommand(newServeCommand(ctx))

	return rootCmd
}
