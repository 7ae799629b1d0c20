package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/learnpath/internal/catalog"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check a catalog file for errors and ordering problems",
	Long: `Load a catalog and report problems.

Schema violations, unknown levels and incompatible versions are errors.
Duplicate or gapped lesson orders are reported as warnings: the app still
runs with them, but progression may skip lessons.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := resolveCatalogPath(cmd)
		if len(args) == 1 {
			path = args[0]
		}

		cat, err := catalog.Load(path)
		if err != nil {
			return fmt.Errorf("invalid catalog: %w", err)
		}

		out := cmd.OutOrStdout()
		name := path
		if name == "" {
			name = "built-in catalog"
		}
		fmt.Fprintf(out, "%s: %d tracks, %d lessons\n", name, len(cat.Tracks()), cat.Len())

		issues := catalog.Validate(cat)
		for _, issue := range issues {
			fmt.Fprintf(out, "warning: %s\n", issue)
		}
		if len(issues) == 0 {
			fmt.Fprintln(out, "OK")
		}
		return nil
	},
}
