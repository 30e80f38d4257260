package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/wonder/internal/store"
)

func newJournalCmd(rt *runtime) *cobra.Command {
	journalCmd := &cobra.Command{
		Use:   "journal",
		Short: "Show recent activity, newest first",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			kind, _ := cmd.Flags().GetString("kind")

			events, err := rt.engine.Journal(cmd.Context(), store.QueryOpts{
				Limit: limit,
				Kind:  store.Kind(kind),
			})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, e := range events {
				result := ""
				if e.Correct != nil {
					result = "  wrong"
					if *e.Correct {
						result = "  correct"
					}
				}
				fmt.Fprintf(out, "%5d  %s  %-8s %-10s %s%s\n",
					e.Sequence, e.Timestamp.Local().Format(timeLayout), e.Kind, e.Action, e.Subject, result)
			}
			return nil
		},
	}
	journalCmd.Flags().Int("limit", 20, "Maximum events to show (0: all)")
	journalCmd.Flags().String("kind", "", "Only show concept, session, quiz or share events")
	return journalCmd
}
