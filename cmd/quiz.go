package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/wonder/internal/tui"
)

func newQuizCmd(rt *runtime) *cobra.Command {
	quizCmd := &cobra.Command{
		Use:   "quiz CONCEPT",
		Short: "Take a multiple-choice quiz about a concept",
		Long: `Generate a quiz from the concept graph and answer it interactively.

With --plain the questions are printed together with their answers instead.`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			count, _ := cmd.Flags().GetInt("count")
			if count <= 0 {
				count = rt.cfg.QuizCount
			}
			plain, _ := cmd.Flags().GetBool("plain")

			if !plain {
				// Fail before entering the alt screen.
				if _, err := rt.engine.Concept(args[0]); err != nil {
					return err
				}
				return tui.RunQuiz(cmd.Context(), rt.engine, args[0], count)
			}

			qs, err := rt.engine.GenerateQuiz(cmd.Context(), args[0], count)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for i, q := range qs {
				fmt.Fprintf(out, "%d. [%s] %s\n", i+1, q.Template, q.Prompt)
				for j, c := range q.Choices {
					mark := ""
					if j == q.CorrectIndex {
						mark = "  ✓"
					}
					fmt.Fprintf(out, "   %c) %s%s\n", 'A'+j, c, mark)
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}
	quizCmd.Flags().Int("count", 0, "Number of questions (default from quiz_count)")
	quizCmd.Flags().Bool("plain", false, "Print questions and answers instead of running the quiz")
	return quizCmd
}
