package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/learnpath/internal/catalog"
	"github.com/abhisek/learnpath/internal/progression"
)

var trackCmd = &cobra.Command{
	Use:   "track",
	Short: "Browse learning tracks",
}

var trackListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all tracks (optionally filtered by level)",
	RunE: func(cmd *cobra.Command, args []string) error {
		levelFlag, _ := cmd.Flags().GetString("level")

		var level catalog.Level
		if levelFlag != "" {
			l, err := catalog.ParseLevel(levelFlag)
			if err != nil {
				return err
			}
			level = l
		}

		cat, err := catalog.Load(resolveCatalogPath(cmd))
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-20s  %-28s  %7s  %s\n", "ID", "Name", "Lessons", "Levels")
		fmt.Fprintln(out, strings.Repeat("─", 80))

		shown := 0
		for _, t := range cat.Tracks() {
			items := cat.Items(t.ID)
			levels := levelsOf(items)
			if level != "" && !containsLevel(levels, level) {
				continue
			}
			names := make([]string, len(levels))
			for i, l := range levels {
				names[i] = l.DisplayName()
			}
			fmt.Fprintf(out, "%-20s  %-28s  %7d  %s\n",
				t.ID, truncate(t.Name, 28), len(items), strings.Join(names, ", "))
			shown++
		}

		fmt.Fprintf(out, "\n%d tracks\n", shown)
		return nil
	},
}

var trackShowCmd = &cobra.Command{
	Use:   "show <track-id>",
	Short: "Show a track's lessons and your progress through them",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openServices(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		defer svc.Close()

		t, ok := svc.catalog.Track(args[0])
		if !ok {
			return fmt.Errorf("unknown track %q", args[0])
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, t.Name)
		if t.Description != "" {
			fmt.Fprintln(out, t.Description)
		}
		fmt.Fprintln(out)

		v := progression.Compute(t.ID, svc.catalog.Items(t.ID), svc.progress.Completed())
		if v.TotalCount == 0 {
			fmt.Fprintln(out, "No lessons in this track yet.")
			return nil
		}

		fmt.Fprintf(out, "    %3s  %-36s  %-13s  %4s  %s\n", "#", "Title", "Level", "Min", "Status")
		fmt.Fprintln(out, strings.Repeat("─", 80))
		for _, is := range v.Items {
			fmt.Fprintf(out, "%s   %3d  %-36s  %-13s  %4d  %s\n",
				is.Status.Icon(), is.Item.Order, truncate(is.Item.Title, 36),
				is.Item.Level.DisplayName(), is.Item.EstimatedMinutes, is.Status.Label())
		}

		fmt.Fprintf(out, "\n%d/%d completed (%d%%)\n", v.CompletedCount, v.TotalCount, v.PercentComplete)
		return nil
	},
}

// levelsOf returns the distinct levels used by items, lowest rank first.
func levelsOf(items []catalog.ContentItem) []catalog.Level {
	var out []catalog.Level
	for _, l := range catalog.AllLevels() {
		for _, it := range items {
			if it.Level == l {
				out = append(out, l)
				break
			}
		}
	}
	return out
}

func containsLevel(levels []catalog.Level, l catalog.Level) bool {
	for _, x := range levels {
		if x == l {
			return true
		}
	}
	return false
}

func init() {
	trackListCmd.Flags().String("level", "", "Only show tracks with lessons at this level (beginner, intermediate, advanced)")

	trackCmd.AddCommand(trackListCmd)
	trackCmd.AddCommand(trackShowCmd)
}
