package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"thumbcache/internal/media"
)

type lookupJSON struct {
	Name    string `json:"name"`
	Locator string `json:"locator"`
	Kind    string `json:"kind"`
	Key     string `json:"key"`
	Path    string `json:"path,omitempty"`
	Found   bool   `json:"found"`
}

// newLookupCommand reports the key an item maps to and its cache entry,
// without rendering or copying anything.
func newLookupCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	var kind string
	var sizeFlag string

	cmd := &cobra.Command{
		Use:   "lookup <name> <locator>",
		Short: "Show the cache key and existing entry for an item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			driver, err := ctx.newDriver()
			if err != nil {
				return err
			}

			item := media.Item{DisplayName: args[0], Locator: args[1], Size: driver.Config().Size}
			if strings.TrimSpace(sizeFlag) != "" {
				size, err := media.ParseSizeClass(sizeFlag)
				if err != nil {
					return fmt.Errorf("invalid --size: %w", err)
				}
				item.Size = size
			}

			var key string
			switch strings.ToLower(strings.TrimSpace(kind)) {
			case "character", "":
				kind = "character"
				key = driver.Resolver().Key(item)
			case "switch":
				key = driver.Builder().Key(item)
			default:
				return fmt.Errorf("invalid --kind %q (expected character or switch)", kind)
			}

			out := lookupJSON{Name: item.DisplayName, Locator: item.Locator, Kind: kind, Key: key}
			if entry, ok := driver.Index().Lookup(driver.Config().CacheDir(), key); ok {
				out.Found = true
				out.Path = driver.RelativePath(entry)
			}

			if asJSON {
				return writeJSON(cmd, out)
			}
			path := out.Path
			if !out.Found {
				path = "-"
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", key, path)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	cmd.Flags().StringVar(&kind, "kind", "character", "Item kind: character or switch")
	cmd.Flags().StringVar(&sizeFlag, "size", "", "Thumbnail size for switch keys (default THUMBNAIL_SIZE)")
	return cmd
}
