package main

import (
	"fmt"
	"strings"

	"repotutor/internal/artifacts"

	"github.com/spf13/cobra"
)

var learnpathCmd = &cobra.Command{
	Use:   "learnpath <learning goal>",
	Short: "Generate a phased learning path for a goal",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runLearnpath,
}

func init() {
	rootCmd.AddCommand(learnpathCmd)
}

func runLearnpath(cmd *cobra.Command, args []string) error {
	result, p, err := runForArtifacts(cmd, args)
	if err != nil || result == nil {
		return err
	}
	defer p.close()

	if OutputFormat(formatFlag) == FormatHuman {
		cmd.Println(formatPathHuman(result.LearningPath))
		return nil
	}
	return printResponse(result.LearningPath)
}

func formatPathHuman(path artifacts.LearningPath) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Learning path (%d steps):\n", len(path.Steps))
	for i, step := range path.Steps {
		fmt.Fprintf(&b, "\n%d. %s\n   %s\n", i+1, step.Title, step.Description)
		if len(step.Concepts) > 0 {
			fmt.Fprintf(&b, "   concepts: %s\n", strings.Join(step.Concepts, ", "))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
