package main

import (
	"fmt"
	"os"
	"path/filepath"

	"repotutor/internal/errors"

	"github.com/spf13/cobra"
)

var (
	traceFile         string
	traceLineStart    int
	traceLineEnd      int
	traceMarkOutdated bool
	traceValidate     bool
)

var traceCmd = &cobra.Command{
	Use:   "trace [artifact-id]",
	Short: "Look up traceability between artifacts and code",
	Long: `With an artifact ID, shows the artifact's evidence. With --file, lists
the artifacts citing that file (optionally narrowed to a line range).`,
	RunE: runTrace,
}

func init() {
	traceCmd.Flags().StringVar(&traceFile, "file", "", "List artifacts citing this file")
	traceCmd.Flags().IntVar(&traceLineStart, "start", 0, "Line range start (with --file)")
	traceCmd.Flags().IntVar(&traceLineEnd, "end", 0, "Line range end (with --file)")
	traceCmd.Flags().BoolVar(&traceMarkOutdated, "mark-outdated", false, "Flag all artifacts citing --file as outdated")
	traceCmd.Flags().BoolVar(&traceValidate, "validate", false, "Re-check the artifact's evidence against current file content")
	rootCmd.AddCommand(traceCmd)
}

// fileTraceResponse is the output of the --file lookups.
type fileTraceResponse struct {
	File        string   `json:"file"`
	LineStart   int      `json:"lineStart,omitempty"`
	LineEnd     int      `json:"lineEnd,omitempty"`
	ArtifactIDs []string `json:"artifactIds"`
	Outdated    bool     `json:"markedOutdated,omitempty"`
}

func runTrace(cmd *cobra.Command, args []string) error {
	p, err := buildPipeline()
	if err != nil {
		return err
	}
	defer p.close()

	if traceFile != "" {
		return runTraceByFile(p)
	}
	if len(args) != 1 {
		return errors.New(errors.ArtifactNotFound, "provide an artifact ID or --file", nil)
	}
	return runTraceByArtifact(p, args[0])
}

func runTraceByFile(p *pipeline) error {
	resp := &fileTraceResponse{File: traceFile, LineStart: traceLineStart, LineEnd: traceLineEnd}

	var err error
	if traceMarkOutdated {
		resp.ArtifactIDs, err = p.tracer.MarkOutdated(traceFile)
		resp.Outdated = true
	} else {
		resp.ArtifactIDs, err = p.tracer.ArtifactsFor(traceFile, traceLineStart, traceLineEnd)
	}
	if err != nil {
		return err
	}
	return printResponse(resp)
}

func runTraceByArtifact(p *pipeline, artifactID string) error {
	t, ok, err := p.tracer.Trace(artifactID)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New(errors.ArtifactNotFound,
			fmt.Sprintf("no trace recorded for artifact %q", artifactID), nil)
	}

	if traceValidate && len(t.Evidence) > 0 {
		current, readErr := os.ReadFile(filepath.Join(p.root, filepath.FromSlash(t.Evidence[0].FilePath)))
		if readErr != nil {
			return errors.New(errors.FileUnreadable, "failed to read cited file", readErr)
		}
		if _, valErr := p.tracer.Validate(artifactID, string(current)); valErr != nil {
			return valErr
		}
		// Validate persists the outcome; print the stored record.
		t, _, err = p.tracer.Trace(artifactID)
		if err != nil {
			return err
		}
	}
	return printResponse(&t)
}
