package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"thumbcache/internal/manifest"
	"thumbcache/internal/media"
)

func newSwitchesCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	var modeFlag string
	var sizeFlag string

	cmd := &cobra.Command{
		Use:   "switches <manifest.toml>",
		Short: "Render thumbnails for the switch layers listed in a manifest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if strings.TrimSpace(modeFlag) != "" {
				mode, err := media.ParseMode(modeFlag)
				if err != nil {
					return fmt.Errorf("invalid --mode: %w", err)
				}
				cfg.SwitchMode = mode
			}
			if strings.TrimSpace(sizeFlag) != "" {
				size, err := media.ParseSizeClass(sizeFlag)
				if err != nil {
					return fmt.Errorf("invalid --size: %w", err)
				}
				cfg.Size = size
			}

			m, err := manifest.Load(args[0])
			if err != nil {
				return err
			}
			items, err := m.Items(filepath.Dir(args[0]))
			if err != nil {
				return err
			}

			driver, err := ctx.newDriver()
			if err != nil {
				return err
			}
			report := driver.RunSwitches(cmd.Context(), items)
			return printReport(cmd, report, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	cmd.Flags().StringVar(&modeFlag, "mode", "", "Cache mode: regenerate or reuse (overrides SWITCH_MODE)")
	cmd.Flags().StringVar(&sizeFlag, "size", "", "Thumbnail size: large, small or <N>px (overrides THUMBNAIL_SIZE)")
	return cmd
}
