package main

import (
	"github.com/spf13/cobra"
)

func newCharactersCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "characters <root>",
		Short: "Cache a preview image for every character folder under root",
		Long: `Cache a preview image for every character folder under root.

Each visible subfolder of root is a character. Its preview is the first of
<name>_preview.<ext>, <name>.<ext>, or the first cacheable file in a preview
subfolder, copied into the cache under the character's key. Characters
without a preview print "-".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			driver, err := ctx.newDriver()
			if err != nil {
				return err
			}
			report := driver.RunCharacters(cmd.Context(), args[0])
			return printReport(cmd, report, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}
