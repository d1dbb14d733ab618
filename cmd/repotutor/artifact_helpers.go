package main

import (
	"strings"

	"repotutor/internal/orchestrator"

	"github.com/spf13/cobra"
)

// runForArtifacts executes the pipeline for an artifact-printing command.
// Non-completed terminal states are printed in full (they carry the
// questions or suggestions the user needs) and reported as nil result.
func runForArtifacts(cmd *cobra.Command, args []string) (*orchestrator.Result, *pipeline, error) {
	p, err := buildPipeline()
	if err != nil {
		return nil, nil, err
	}

	result, err := p.orch.Run(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		p.close()
		return nil, nil, err
	}
	if result.State != orchestrator.StateCompleted {
		err := printResponse(result)
		p.close()
		return nil, nil, err
	}
	return result, p, nil
}
