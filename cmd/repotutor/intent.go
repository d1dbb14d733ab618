package main

import (
	"strings"

	"repotutor/internal/intent"

	"github.com/spf13/cobra"
)

var intentClarify bool

var intentCmd = &cobra.Command{
	Use:   "intent <learning goal>",
	Short: "Interpret a learning goal without running the rest of the pipeline",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runIntent,
}

func init() {
	intentCmd.Flags().BoolVar(&intentClarify, "clarify", false,
		"Also print the clarification questions a low-confidence goal would trigger")
	rootCmd.AddCommand(intentCmd)
}

// intentResponse is the command's output shape.
type intentResponse struct {
	Intent         intent.Intent                  `json:"intent"`
	NeedsClarify   bool                           `json:"needsClarification"`
	Clarifications []intent.ClarificationQuestion `json:"clarifications,omitempty"`
}

func runIntent(cmd *cobra.Command, args []string) error {
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

	it := p.interpreter.Interpret(cmd.Context(), strings.Join(args, " "), repoCtx)

	resp := &intentResponse{Intent: it, NeedsClarify: intent.NeedsClarification(it)}
	if resp.NeedsClarify || intentClarify {
		resp.Clarifications = p.interpreter.GenerateClarifications(it)
	}
	if OutputFormat(formatFlag) == FormatHuman {
		out := formatIntentHuman(&resp.Intent)
		if len(resp.Clarifications) > 0 {
			out += "\n\nQuestions:"
			for _, q := range resp.Clarifications {
				out += "\n  [" + q.Dimension + "] " + q.Question
			}
		}
		cmd.Println(out)
		return nil
	}
	return printResponse(resp)
}
