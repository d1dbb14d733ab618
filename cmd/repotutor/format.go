package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"repotutor/internal/intent"
	"repotutor/internal/orchestrator"
	"repotutor/internal/selection"
	"repotutor/internal/trace"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatHuman OutputFormat = "human"
)

// FormatResponse formats a response according to the specified format
func FormatResponse(resp interface{}, format OutputFormat) (string, error) {
	switch format {
	case FormatJSON:
		return formatJSON(resp)
	case FormatHuman:
		return formatHuman(resp)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

func formatJSON(resp interface{}) (string, error) {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}

func formatHuman(resp interface{}) (string, error) {
	switch v := resp.(type) {
	case *orchestrator.Result:
		return formatResultHuman(v), nil
	case *selection.SelectionResult:
		return formatSelectionHuman(v), nil
	case *intent.Intent:
		return formatIntentHuman(v), nil
	case *trace.ArtifactTrace:
		return formatTraceHuman(v), nil
	default:
		// Unknown types fall back to JSON.
		return formatJSON(resp)
	}
}

func formatResultHuman(r *orchestrator.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "State: %s\n", r.State)
	fmt.Fprintf(&b, "%s\n", r.Explanation)

	if len(r.Clarifications) > 0 {
		b.WriteString("\nQuestions:\n")
		for _, q := range r.Clarifications {
			fmt.Fprintf(&b, "  [%s] %s\n", q.Dimension, q.Question)
		}
	}
	if len(r.Suggestions) > 0 {
		b.WriteString("\nSuggestions:\n")
		for _, s := range r.Suggestions {
			if s.Command != "" {
				fmt.Fprintf(&b, "  - %s (%s)\n", s.Label, s.Command)
			} else {
				fmt.Fprintf(&b, "  - %s\n", s.Label)
			}
		}
	}
	if r.State != orchestrator.StateCompleted {
		return strings.TrimRight(b.String(), "\n")
	}

	b.WriteString("\n")
	b.WriteString(formatIntentHuman(&r.Intent))
	b.WriteString("\n\n")
	b.WriteString(formatSelectionHuman(&r.Selection))

	if len(r.Flashcards) > 0 {
		fmt.Fprintf(&b, "\nFlashcards (%d):\n", len(r.Flashcards))
		for _, card := range r.Flashcards {
			fmt.Fprintf(&b, "  Q: %s\n  A: %s\n", card.Question, card.Answer)
			if len(card.Evidence) > 0 {
				fmt.Fprintf(&b, "     evidence: %s:%d-%d\n",
					card.Evidence[0].FilePath, card.Evidence[0].LineStart, card.Evidence[0].LineEnd)
			}
		}
	}
	if len(r.Quiz) > 0 {
		fmt.Fprintf(&b, "\nQuiz (%d questions):\n", len(r.Quiz))
		for i, q := range r.Quiz {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, q.Question)
			for _, opt := range q.Options {
				marker := " "
				if opt == q.CorrectAnswer {
					marker = "*"
				}
				fmt.Fprintf(&b, "     %s %s\n", marker, opt)
			}
		}
	}
	if len(r.LearningPath.Steps) > 0 {
		fmt.Fprintf(&b, "\nLearning path (%d steps):\n", len(r.LearningPath.Steps))
		for i, step := range r.LearningPath.Steps {
			fmt.Fprintf(&b, "  %d. %s: %s\n", i+1, step.Title, step.Description)
		}
	}
	if r.Summary.Narrative != "" {
		fmt.Fprintf(&b, "\nSummary: %s\n", r.Summary.Narrative)
	}
	fmt.Fprintf(&b, "\nTraceability: %d artifacts registered", r.Trace.Registered)
	if len(r.Trace.InvalidIDs) > 0 {
		fmt.Fprintf(&b, " (%d with invalid evidence)", len(r.Trace.InvalidIDs))
	}
	return b.String()
}

func formatIntentHuman(it *intent.Intent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Intent: %s (confidence %.2f)\n", it.PrimaryCategory, it.Confidence)
	fmt.Fprintf(&b, "  scope: %s", it.Scope.Kind)
	if len(it.Scope.IncludePaths) > 0 {
		fmt.Fprintf(&b, " %v", it.Scope.IncludePaths)
	}
	fmt.Fprintf(&b, "\n  level: %s\n", it.AudienceLevel)
	if len(it.Technologies) > 0 {
		fmt.Fprintf(&b, "  technologies: %s\n", strings.Join(it.Technologies, ", "))
	}
	if len(it.Keywords) > 0 {
		fmt.Fprintf(&b, "  keywords: %s\n", strings.Join(it.Keywords, ", "))
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatSelectionHuman(sel *selection.SelectionResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", sel.Summary)
	for _, f := range sel.SelectedFiles {
		fmt.Fprintf(&b, "  %2d. %-40s %.2f %-12s %s\n",
			f.Priority, f.File.Path, f.RelevanceScore, f.Role, f.Rationale)
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatTraceHuman(t *trace.ArtifactTrace) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Artifact %s (%s)\n", t.ArtifactID, t.ArtifactType)
	status := "valid"
	if !t.Valid {
		status = "invalid: " + t.Reason
	}
	if t.Outdated {
		status += " (outdated)"
	}
	fmt.Fprintf(&b, "  status: %s\n", status)
	if !t.LastValidatedAt.IsZero() {
		fmt.Fprintf(&b, "  last validated: %s\n", t.LastValidatedAt.Format("2006-01-02 15:04:05 MST"))
	}
	for _, ev := range t.Evidence {
		fmt.Fprintf(&b, "  %s:%d-%d %s\n", ev.FilePath, ev.LineStart, ev.LineEnd, ev.Description)
	}
	return strings.TrimRight(b.String(), "\n")
}
