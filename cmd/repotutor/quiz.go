package main

import (
	"fmt"
	"strings"

	"repotutor/internal/artifacts"
	"repotutor/internal/orchestrator"

	"github.com/spf13/cobra"
)

var quizNum int

var quizCmd = &cobra.Command{
	Use:   "quiz <learning goal>",
	Short: "Generate a quiz for a learning goal",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runQuiz,
}

func init() {
	quizCmd.Flags().IntVarP(&quizNum, "num", "n", 0, "Number of questions (default from config)")
	rootCmd.AddCommand(quizCmd)
}

func runQuiz(cmd *cobra.Command, args []string) error {
	p, err := buildPipeline()
	if err != nil {
		return err
	}
	defer p.close()

	result, err := p.orch.Run(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return err
	}
	if result.State != orchestrator.StateCompleted {
		return printResponse(result)
	}

	questions := result.Quiz
	if quizNum > 0 && quizNum != len(questions) {
		// Regenerate at the requested size; the pool is deterministic so
		// the overlapping prefix matches the original run.
		gen := quizGenerator(p)
		questions = gen.Quiz(result.Analysis, result.Intent, quizNum)
	}

	if OutputFormat(formatFlag) == FormatHuman {
		cmd.Println(formatQuizHuman(questions))
		return nil
	}
	return printResponse(questions)
}

func quizGenerator(p *pipeline) *artifacts.Generator {
	return artifacts.NewGenerator(p.logger, artifacts.Options{
		PoolSize:      p.cfg.Artifacts.PoolSize,
		MaxFlashcards: p.cfg.Artifacts.MaxFlashcards,
		QuizQuestions: p.cfg.Artifacts.QuizQuestions,
		Language:      artifacts.Language(p.cfg.Artifacts.Language),
	})
}

func formatQuizHuman(questions []artifacts.QuizQuestion) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Quiz (%d questions):\n", len(questions))
	for i, q := range questions {
		fmt.Fprintf(&b, "\n%d. [%s] %s\n", i+1, q.Style, q.Question)
		for j, opt := range q.Options {
			fmt.Fprintf(&b, "   %c) %s\n", 'a'+j, opt)
		}
		fmt.Fprintf(&b, "   answer: %s\n", q.CorrectAnswer)
	}
	return strings.TrimRight(b.String(), "\n")
}
