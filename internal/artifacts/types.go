// Package artifacts turns an aggregated analysis into learning materials:
// flashcards, a quiz, a learning path, and a concept summary. All output
// text comes from per-language template tables and every artifact cites
// code evidence. Generation never fails; when the concept pool is empty a
// deterministic fallback generator takes over.
package artifacts

import (
	"repotutor/internal/analysis"
)

// Style tags what a card or question asks about.
type Style string

const (
	StyleResponsibility Style = "responsibility"
	StyleImpact         Style = "impact"
	StyleReasoning      Style = "reasoning"
	StyleDebug          Style = "debug"
)

// quizStyles is the fixed rotation quiz generation cycles through.
var quizStyles = []Style{StyleResponsibility, StyleImpact, StyleReasoning, StyleDebug}

// Flashcard is one question/answer pair grounded in code.
type Flashcard struct {
	ID       string                   `json:"id"`
	Style    Style                    `json:"style"`
	Category analysis.ConceptCategory `json:"category"`
	Concept  string                   `json:"concept"`
	Question string                   `json:"question"`
	Answer   string                   `json:"answer"`
	Evidence []analysis.CodeEvidence  `json:"evidence"`
}

// QuizQuestion always has exactly four unique options, one of which is
// CorrectAnswer.
type QuizQuestion struct {
	ID            string                  `json:"id"`
	Style         Style                   `json:"style"`
	Concept       string                  `json:"concept"`
	Question      string                  `json:"question"`
	Options       []string                `json:"options"`
	CorrectAnswer string                  `json:"correctAnswer"`
	Evidence      []analysis.CodeEvidence `json:"evidence"`
}

// LearningStep is one phase of a learning path. Prerequisites only ever
// reference earlier steps.
type LearningStep struct {
	ID            string                  `json:"id"`
	Title         string                  `json:"title"`
	Description   string                  `json:"description"`
	Concepts      []string                `json:"concepts"`
	Prerequisites []string                `json:"prerequisites"`
	Evidence      []analysis.CodeEvidence `json:"evidence"`
}

// LearningPath is the ordered sequence of steps.
type LearningPath struct {
	ID    string         `json:"id"`
	Steps []LearningStep `json:"steps"`
}

// ConceptSummary is the birds-eye view of what the analysis found.
type ConceptSummary struct {
	ByCategory  map[analysis.ConceptCategory][]string `json:"byCategory"`
	TopConcepts []analysis.ConceptSeed                `json:"topConcepts"`
	Narrative   string                                `json:"narrative"`
}
