package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/wonder/internal/graph"
)

func newPathCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "path START GOAL",
		Short: "Find the shortest learning path between two concepts",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := rt.engine.ShortestPath(args[0], args[1])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for i, n := range path {
				fmt.Fprintf(out, "%d. %s\n", i+1, n.Name)
			}
			fmt.Fprintf(out, "\n%d steps\n", len(path)-1)
			return nil
		},
	}
}

func newPrereqsCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "prereqs NAME",
		Short: "List every concept that must be learned before NAME",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nodes, err := rt.engine.Prerequisites(args[0])
			if err != nil {
				return err
			}
			printNodes(cmd, nodes, "prerequisites")
			return nil
		},
	}
}

func newDependentsCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "dependents NAME",
		Short: "List the concepts that directly build on NAME",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nodes, err := rt.engine.Dependents(args[0])
			if err != nil {
				return err
			}
			printNodes(cmd, nodes, "dependents")
			return nil
		},
	}
}

func printNodes(cmd *cobra.Command, nodes []graph.Node, what string) {
	out := cmd.OutOrStdout()
	for _, n := range nodes {
		fmt.Fprintf(out, "  %s\n", n.Name)
	}
	fmt.Fprintf(out, "%d %s\n", len(nodes), what)
}
