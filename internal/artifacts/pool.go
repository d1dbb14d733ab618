package artifacts

import (
	"sort"
	"strings"

	"repotutor/internal/analysis"
	"repotutor/internal/intent"
)

const (
	evidenceBonusPer = 0.2
	evidenceBonusCap = 0.6
	keywordBonusPer  = 0.3
	keywordBonusCap  = 0.9
	descriptionBonus = 0.5
	descriptionMin   = 40 // characters a description needs to count as rich
)

var categoryWeights = map[analysis.ConceptCategory]float64{
	analysis.ConceptArchitecture: 3.0,
	analysis.ConceptDataFlow:     2.8,
	analysis.ConceptPatterns:     2.5,
	analysis.ConceptClasses:      2.0,
	analysis.ConceptFunctions:    1.5,
	analysis.ConceptGeneral:      1.0,
}

// buildPool scores, deduplicates, and ranks raw concepts. Concepts sharing
// a normalized name keep only the highest-scoring entry. The result is the
// descending top poolSize slice every generator works from.
func buildPool(concepts []analysis.ConceptSeed, in intent.Intent, poolSize int) []analysis.ConceptSeed {
	if poolSize <= 0 {
		poolSize = 12
	}
	best := map[string]analysis.ConceptSeed{}
	var order []string
	for _, c := range concepts {
		c.Score = scoreConcept(c, in)
		key := normalizeKey(c.Name)
		existing, ok := best[key]
		if !ok {
			order = append(order, key)
			best[key] = c
			continue
		}
		if c.Score > existing.Score {
			best[key] = c
		}
	}

	pool := make([]analysis.ConceptSeed, 0, len(best))
	for _, key := range order {
		pool = append(pool, best[key])
	}
	sort.SliceStable(pool, func(i, j int) bool {
		if pool[i].Score != pool[j].Score {
			return pool[i].Score > pool[j].Score
		}
		return pool[i].Name < pool[j].Name
	})
	if len(pool) > poolSize {
		pool = pool[:poolSize]
	}
	return pool
}

func scoreConcept(c analysis.ConceptSeed, in intent.Intent) float64 {
	score := categoryWeights[c.Category]
	if score == 0 {
		score = categoryWeights[analysis.ConceptGeneral]
	}
	if len(c.Description) >= descriptionMin {
		score += descriptionBonus
	}
	evBonus := float64(len(c.Evidence)) * evidenceBonusPer
	if evBonus > evidenceBonusCap {
		evBonus = evidenceBonusCap
	}
	score += evBonus

	kwBonus := 0.0
	searchable := strings.ToLower(c.Name + " " + c.Description)
	for _, kw := range in.Keywords {
		if strings.Contains(searchable, strings.ToLower(kw)) {
			kwBonus += keywordBonusPer
		}
	}
	if kwBonus > keywordBonusCap {
		kwBonus = keywordBonusCap
	}
	return score + kwBonus
}

// normalizeKey collapses case and separators so "AuthService" and
// "auth_service" deduplicate to one concept.
func normalizeKey(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if r == ' ' || r == '_' || r == '-' || r == '.' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
