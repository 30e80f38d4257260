package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/wonder/internal/graph"
)

func newConceptCmd(rt *runtime) *cobra.Command {
	conceptCmd := &cobra.Command{
		Use:   "concept",
		Short: "Browse the concept graph",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all concepts (optionally filtered by tag)",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			tag, _ := cmd.Flags().GetString("tag")
			tag = strings.ToLower(strings.TrimSpace(tag))

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-24s  %-30s  %s\n", "Name", "Tags", "Description")
			fmt.Fprintln(out, strings.Repeat("─", 90))

			n := 0
			for _, c := range rt.engine.Concepts() {
				if tag != "" && !hasTag(c, tag) {
					continue
				}
				fmt.Fprintf(out, "%-24s  %-30s  %s\n", c.Name, truncate(strings.Join(c.Tags, ","), 30), truncate(c.Description, 40))
				n++
			}
			fmt.Fprintf(out, "\n%d concepts\n", n)
			return nil
		},
	}
	listCmd.Flags().String("tag", "", "Only list concepts carrying this tag")

	showCmd := &cobra.Command{
		Use:   "show NAME",
		Short: "Show a concept with its direct neighbours",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := rt.engine.Concept(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, d.Node.Name)
			if d.Node.Description != "" {
				fmt.Fprintln(out, "  "+d.Node.Description)
			}
			fmt.Fprintf(out, "  Tags:          %s\n", orNone(strings.Join(d.Node.Tags, ", ")))
			fmt.Fprintf(out, "  Prerequisites: %s\n", orNone(names(d.Prerequisites)))
			fmt.Fprintf(out, "  Dependents:    %s\n", orNone(names(d.Dependents)))
			return nil
		},
	}

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the graph and print a study order",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			g := rt.engine.Graph()
			if err := g.Validate(); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d concepts, %d relationships: ok\n", g.Len(), len(rt.engine.Relationships()))
			fmt.Fprintf(out, "Starting points: %s\n", orNone(names(g.Roots())))
			fmt.Fprintln(out, "Study order:")
			for i, n := range g.TopologicalOrder() {
				fmt.Fprintf(out, "  %2d. %s\n", i+1, n.Name)
			}
			return nil
		},
	}

	conceptCmd.AddCommand(listCmd, showCmd, checkCmd)
	return conceptCmd
}

func hasTag(n graph.Node, tag string) bool {
	for _, t := range n.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

func names(nodes []graph.Node) string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Name
	}
	return strings.Join(out, ", ")
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
