package artifacts

import (
	"fmt"
	"strings"

	"repotutor/internal/analysis"
	"repotutor/internal/intent"
)

// LearningPath buckets the pool into four ordered phases. A phase that
// would be empty reuses the head of the pool instead, so every step has
// concepts as long as the pool is non-empty. Each step's prerequisite is
// exactly the previous step.
func (g *Generator) LearningPath(a *analysis.Analysis, in intent.Intent) LearningPath {
	pool := g.Pool(a, in)
	if len(pool) == 0 {
		return g.fallbackPath(a)
	}

	phases := bucketPhases(pool)
	path := LearningPath{ID: newID()}
	var prevID string
	for i, phase := range phases {
		step := LearningStep{
			ID:          newID(),
			Title:       g.tpl.stepTitles[i],
			Description: fmt.Sprintf(g.tpl.stepDescriptions[i], strings.Join(conceptNames(phase), ", ")),
		}
		if prevID != "" {
			step.Prerequisites = []string{prevID}
		}
		for _, c := range phase {
			step.Concepts = append(step.Concepts, c.Name)
			if len(c.Evidence) > 0 {
				step.Evidence = append(step.Evidence, c.Evidence[0])
			}
		}
		path.Steps = append(path.Steps, step)
		prevID = step.ID
	}
	return path
}

// bucketPhases splits the pool into architecture/patterns, classes,
// functions/data-flow, and everything else, backfilling empty phases from
// the pool head.
func bucketPhases(pool []analysis.ConceptSeed) [4][]analysis.ConceptSeed {
	var phases [4][]analysis.ConceptSeed
	for _, c := range pool {
		switch c.Category {
		case analysis.ConceptArchitecture, analysis.ConceptPatterns:
			phases[0] = append(phases[0], c)
		case analysis.ConceptClasses:
			phases[1] = append(phases[1], c)
		case analysis.ConceptFunctions, analysis.ConceptDataFlow:
			phases[2] = append(phases[2], c)
		default:
			phases[3] = append(phases[3], c)
		}
	}
	reuse := pool
	if len(reuse) > 2 {
		reuse = reuse[:2]
	}
	for i := range phases {
		if len(phases[i]) == 0 {
			phases[i] = reuse
		}
	}
	return phases
}

func conceptNames(concepts []analysis.ConceptSeed) []string {
	names := make([]string, 0, len(concepts))
	for _, c := range concepts {
		names = append(names, c.Name)
	}
	return names
}
