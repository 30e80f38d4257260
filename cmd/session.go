package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

const timeLayout = "2006-01-02 15:04"

func newSessionCmd(rt *runtime) *cobra.Command {
	sessionCmd := &cobra.Command{
		Use:   "session",
		Short: "Inspect learning sessions",
	}
	sessionCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List learning sessions, newest first",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			sessions := rt.engine.Sessions()
			for _, s := range sessions {
				focus := ""
				if s.CurrentFocus != nil {
					focus = "  focus: " + *s.CurrentFocus
				}
				fmt.Fprintf(out, "%s  %-28s  %-10s  %s%s\n",
					s.CreatedAt.Local().Format(timeLayout), truncate(s.Name, 28), s.Status,
					strings.Join(s.LinkedConcepts, ", "), focus)
			}
			fmt.Fprintf(out, "\n%d sessions\n", len(sessions))
			return nil
		},
	})
	return sessionCmd
}

func newCurriculumCmd(rt *runtime) *cobra.Command {
	curriculumCmd := &cobra.Command{
		Use:   "curriculum",
		Short: "Inspect uploaded curricula",
	}
	curriculumCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List curricula, newest first",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			curricula := rt.engine.Curricula()
			for _, c := range curricula {
				fmt.Fprintf(out, "%s  %-28s  %s\n",
					c.UploadedAt.Local().Format(timeLayout), truncate(c.Title, 28),
					strings.Join(c.LinkedConcepts, ", "))
				if c.SourceURL != nil {
					fmt.Fprintf(out, "%18s%s\n", "", *c.SourceURL)
				}
			}
			fmt.Fprintf(out, "\n%d curricula\n", len(curricula))
			return nil
		},
	})
	return curriculumCmd
}
