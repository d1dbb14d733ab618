package artifacts

import (
	"fmt"

	"repotutor/internal/analysis"
	"repotutor/internal/intent"
)

// reasoningTopCount is how many top-of-pool concepts get a reasoning card
// regardless of category.
const reasoningTopCount = 3

// Flashcards emits responsibility and impact cards for every pooled
// concept, plus reasoning cards for top-scoring or architecture/pattern
// concepts. Cards deduplicate by question text and stop at the cap. An
// empty pool falls back to per-file reading cards.
func (g *Generator) Flashcards(a *analysis.Analysis, in intent.Intent) []Flashcard {
	pool := g.Pool(a, in)
	if len(pool) == 0 {
		return g.fallbackFlashcards(a)
	}

	var cards []Flashcard
	seen := map[string]bool{}
	add := func(c analysis.ConceptSeed, style Style) {
		if len(cards) >= g.opts.MaxFlashcards {
			return
		}
		question := fmt.Sprintf(g.tpl.cardQuestion[style], c.Name)
		key := normalizeKey(question)
		if seen[key] {
			return
		}
		seen[key] = true
		cards = append(cards, Flashcard{
			ID:       newID(),
			Style:    style,
			Category: c.Category,
			Concept:  c.Name,
			Question: question,
			Answer:   fmt.Sprintf(g.tpl.cardAnswer[style], c.Description),
			Evidence: c.Evidence,
		})
	}

	for i, c := range pool {
		add(c, StyleResponsibility)
		add(c, StyleImpact)
		if i < reasoningTopCount || c.Category == analysis.ConceptArchitecture || c.Category == analysis.ConceptPatterns {
			add(c, StyleReasoning)
		}
	}
	g.logger.Debug("flashcards generated", "count", len(cards), "pool", len(pool))
	return cards
}
