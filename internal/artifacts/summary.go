package artifacts

import (
	"fmt"
	"strings"

	"repotutor/internal/analysis"
	"repotutor/internal/intent"
)

const topConceptCount = 5

// Summary groups every raw concept by category and names the pool head in
// one templated narrative sentence.
func (g *Generator) Summary(a *analysis.Analysis, in intent.Intent) ConceptSummary {
	summary := ConceptSummary{ByCategory: map[analysis.ConceptCategory][]string{}}
	if a == nil {
		summary.Narrative = g.tpl.fallbackNarrative
		return summary
	}

	for _, c := range a.KeyConcepts {
		summary.ByCategory[c.Category] = append(summary.ByCategory[c.Category], c.Name)
	}

	pool := g.Pool(a, in)
	top := pool
	if len(top) > topConceptCount {
		top = top[:topConceptCount]
	}
	summary.TopConcepts = top

	if len(top) == 0 {
		summary.Narrative = g.tpl.fallbackNarrative
		return summary
	}
	summary.Narrative = fmt.Sprintf(g.tpl.narrative, strings.Join(conceptNames(top), ", "), len(a.Files))
	return summary
}
