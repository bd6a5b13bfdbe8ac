package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"thumbcache/internal/mediatypes"
)

type listJSON struct {
	Collection string   `json:"collection"`
	Paths      []string `json:"paths"`
}

func newListCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the cache-relative paths in the collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			driver, err := ctx.newDriver()
			if err != nil {
				return err
			}

			cfg := driver.Config()
			out := listJSON{Collection: cfg.Collection, Paths: []string{}}
			for _, name := range driver.Index().Entries(cfg.CacheDir()) {
				if !mediatypes.IsCacheable(name) {
					continue
				}
				out.Paths = append(out.Paths, driver.RelativePath(name))
			}
			sort.Strings(out.Paths)

			if asJSON {
				return writeJSON(cmd, out)
			}
			for _, p := range out.Paths {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}
