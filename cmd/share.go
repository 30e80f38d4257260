package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newShareCmd(rt *runtime) *cobra.Command {
	shareCmd := &cobra.Command{
		Use:   "share",
		Short: "Browse idea shares and interest matches",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List shares visible to a viewer, newest first",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			viewer, _ := cmd.Flags().GetString("viewer")
			out := cmd.OutOrStdout()
			shares := rt.engine.Shares(viewer)
			for _, s := range shares {
				fmt.Fprintf(out, "%s  %-12s  %-11s  %s\n",
					s.CreatedAt.Local().Format(timeLayout), s.Author, s.Visibility, s.Title)
				fmt.Fprintf(out, "%18s%s\n", "", strings.Join(s.Tags, ", "))
			}
			fmt.Fprintf(out, "\n%d shares\n", len(shares))
			return nil
		},
	}
	listCmd.Flags().String("viewer", "", "Handle to list shares for (blank: public only)")

	matchesCmd := &cobra.Command{
		Use:   "matches VIEWER",
		Short: "Rank shares by tag affinity with a viewer",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			if limit <= 0 {
				limit = rt.cfg.AffinityLimit
			}
			matches, err := rt.engine.Matches(args[0], limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, m := range matches {
				fmt.Fprintf(out, "%.3f  %-12s  %s\n", m.Affinity, m.Share.Author, m.Share.Title)
				fmt.Fprintf(out, "       shared: %s   new: %s\n",
					orNone(strings.Join(m.SharedTags, ", ")),
					orNone(strings.Join(m.ComplementaryTags, ", ")))
			}
			fmt.Fprintf(out, "\n%d matches\n", len(matches))
			return nil
		},
	}
	matchesCmd.Flags().Int("limit", 0, "Maximum matches (default from affinity_limit)")

	compareCmd := &cobra.Command{
		Use:   "compare A B",
		Short: "Compare the tags two authors have shared",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := rt.engine.CompareHandles(args[0], args[1])
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Shared:   %s\n", orNone(strings.Join(c.Shared, ", ")))
			fmt.Fprintf(out, "Distinct: %s\n", orNone(strings.Join(c.Distinct, ", ")))
			return nil
		},
	}

	shareCmd.AddCommand(listCmd, matchesCmd, compareCmd)
	return shareCmd
}
