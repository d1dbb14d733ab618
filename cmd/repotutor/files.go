package main

import (
	"strings"

	"repotutor/internal/intent"

	"github.com/spf13/cobra"
)

var filesCmd = &cobra.Command{
	Use:   "files [learning goal]",
	Short: "Show which files the selector would pick for a goal",
	Long: `Runs intent interpretation and file selection only. Without a goal it
selects for generic learning materials, which shows the repository's
entry points and source layout.`,
	RunE: runFiles,
}

func init() {
	rootCmd.AddCommand(filesCmd)
}

func runFiles(cmd *cobra.Command, args []string) error {
	p, err := buildPipeline()
	if err != nil {
		return err
	}
	defer p.close()

	files, err := p.provider.Files()
	if err != nil {
		return err
	}
	repoCtx := intent.BuildRepoContext(p.provider, files)

	goal := "overview of this repository"
	if len(args) > 0 {
		goal = strings.Join(args, " ")
	}
	it := p.interpreter.Interpret(cmd.Context(), goal, repoCtx)

	result := p.selector.Select(it, files)
	return printResponse(&result)
}
