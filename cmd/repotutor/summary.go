package main

import (
	"fmt"
	"sort"
	"strings"

	"repotutor/internal/analysis"
	"repotutor/internal/artifacts"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary <learning goal>",
	Short: "Summarize the key concepts behind a learning goal",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, args []string) error {
	result, p, err := runForArtifacts(cmd, args)
	if err != nil || result == nil {
		return err
	}
	defer p.close()

	if OutputFormat(formatFlag) == FormatHuman {
		cmd.Println(formatSummaryHuman(result.Summary))
		return nil
	}
	return printResponse(result.Summary)
}

func formatSummaryHuman(s artifacts.ConceptSummary) string {
	var b strings.Builder
	b.WriteString(s.Narrative + "\n")

	categories := make([]string, 0, len(s.ByCategory))
	for cat := range s.ByCategory {
		categories = append(categories, string(cat))
	}
	sort.Strings(categories)
	for _, cat := range categories {
		names := s.ByCategory[analysis.ConceptCategory(cat)]
		fmt.Fprintf(&b, "\n%s: %s\n", cat, strings.Join(names, ", "))
	}

	if len(s.TopConcepts) > 0 {
		b.WriteString("\nTop concepts:\n")
		for _, c := range s.TopConcepts {
			fmt.Fprintf(&b, "  %-24s %s:%d  (score %.2f)\n", c.Name, c.AnchorFile, c.AnchorLine, c.Score)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
