package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/learnpath/internal/progression"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning progress per track",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openServices(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		defer svc.Close()

		out := cmd.OutOrStdout()
		if svc.user == nil {
			fmt.Fprintln(out, "Not signed in. Sign in from the app to track progress.")
			fmt.Fprintln(out)
		} else {
			fmt.Fprintf(out, "Learner: %s\n\n", svc.user.Name)
		}
		summaries := progression.Summarize(svc.catalog, svc.progress.Completed())

		fmt.Fprintf(out, "%-24s  %-22s  %5s  %s\n", "Track", "Progress", "Done", "Up next")
		fmt.Fprintln(out, strings.Repeat("─", 78))

		total, done := 0, 0
		for _, s := range summaries {
			v := s.View
			total += v.TotalCount
			done += v.CompletedCount

			next := "-"
			switch {
			case v.TotalCount == 0:
				next = "(no lessons)"
			case v.Finished():
				next = "finished"
			default:
				if item, ok := v.Active(); ok {
					next = item.Title
				}
			}
			fmt.Fprintf(out, "%-24s  %s %4d%%  %2d/%-2d  %s\n",
				truncate(s.Track.Name, 24), textBar(v.PercentComplete, 16), v.PercentComplete,
				v.CompletedCount, v.TotalCount, next)
		}

		fmt.Fprintln(out)
		fmt.Fprintf(out, "Lessons completed: %d of %d (%d%%)\n", done, total, progression.Percent(done, total))
		if lr, ok := svc.progress.LastRead(); ok {
			fmt.Fprintf(out, "Last read: %s / %s (%s)\n", lr.TrackName, lr.Title, lr.At.Local().Format("2006-01-02 15:04"))
		}
		return nil
	},
}

// textBar renders percent as a fixed-width bar of block characters.
func textBar(percent, width int) string {
	filled := min(max(width*percent/100, 0), width)
	return "[" + strings.Repeat("█", filled) + strings.Repeat("·", width-filled) + "]"
}

func truncate(s string, n int) string {
	if len([]rune(s)) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-3]) + "..."
}
