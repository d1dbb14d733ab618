package main

import (
	"strings"

	"repotutor/internal/orchestrator"

	"github.com/spf13/cobra"
)

var analyzeAnswers []string

var analyzeCmd = &cobra.Command{
	Use:   "analyze <learning goal>",
	Short: "Run the full pipeline: intent, selection, analysis, artifacts, traceability",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringArrayVar(&analyzeAnswers, "answer", nil,
		"Answer to a previous clarification question (repeatable)")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	p, err := buildPipeline()
	if err != nil {
		return err
	}
	defer p.close()

	goal := strings.Join(args, " ")
	ctx := cmd.Context()

	result, err := p.orch.Run(ctx, goal)
	if err != nil {
		return err
	}
	// Clarification answers passed up front resume the pipeline directly.
	if result.State == orchestrator.StateClarificationNeeded && len(analyzeAnswers) > 0 {
		result, err = p.orch.Resume(ctx, result.Intent, analyzeAnswers)
		if err != nil {
			return err
		}
	}
	return printResponse(result)
}
