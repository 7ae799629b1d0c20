package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset learner data",
	Long: `Clear the signed-in learner's completed lessons and last-read position.

With --all, clear every learner's progress, sign out, forget learners and
show the intro slides again.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		yes, _ := cmd.Flags().GetBool("yes")

		what := "progress"
		if all {
			what = "all learner data"
		}
		if !yes {
			fmt.Fprintf(cmd.OutOrStdout(), "This will delete %s. Continue? [y/N] ", what)
			answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
				return nil
			}
		}

		svc, err := openServices(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		defer svc.Close()

		ctx := cmd.Context()
		if all {
			if err := svc.store.ClearProgress(ctx); err != nil {
				return fmt.Errorf("reset progress: %w", err)
			}
			if err := svc.store.KVRepo().Clear(ctx); err != nil {
				return fmt.Errorf("clear settings: %w", err)
			}
		} else {
			if svc.user == nil {
				return errors.New("no learner is signed in; use --all to clear everything")
			}
			if err := svc.progress.Reset(ctx); err != nil {
				return fmt.Errorf("reset progress: %w", err)
			}
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s.\n", what)
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("all", false, "Also clear sessions, learners and flags")
	resetCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
}
