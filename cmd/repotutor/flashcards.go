package main

import (
	"fmt"
	"strings"

	"repotutor/internal/artifacts"

	"github.com/spf13/cobra"
)

var flashcardsCmd = &cobra.Command{
	Use:   "flashcards <learning goal>",
	Short: "Generate flashcards for a learning goal",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFlashcards,
}

func init() {
	rootCmd.AddCommand(flashcardsCmd)
}

func runFlashcards(cmd *cobra.Command, args []string) error {
	result, p, err := runForArtifacts(cmd, args)
	if err != nil || result == nil {
		return err
	}
	defer p.close()

	if OutputFormat(formatFlag) == FormatHuman {
		cmd.Println(formatFlashcardsHuman(result.Flashcards))
		return nil
	}
	return printResponse(result.Flashcards)
}

func formatFlashcardsHuman(cards []artifacts.Flashcard) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Flashcards (%d):\n", len(cards))
	for i, card := range cards {
		fmt.Fprintf(&b, "\n%d. [%s] %s\n   %s\n", i+1, card.Style, card.Question, card.Answer)
		for _, ev := range card.Evidence {
			fmt.Fprintf(&b, "   evidence: %s:%d-%d\n", ev.FilePath, ev.LineStart, ev.LineEnd)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
