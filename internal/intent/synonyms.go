package intent

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// technologySynonyms maps canonical technology names to the spellings a
// goal may use. Matching is case-insensitive on word boundaries.
var technologySynonyms = map[string][]string{
	"python":     {"python", "py", "django", "flask", "fastapi"},
	"javascript": {"javascript", "js", "node", "nodejs", "node.js", "express"},
	"typescript": {"typescript", "ts"},
	"react":      {"react", "reactjs", "react.js", "jsx", "next.js", "nextjs"},
	"vue":        {"vue", "vuejs", "nuxt"},
	"go":         {"go", "golang"},
	"rust":       {"rust", "cargo", "tokio"},
	"java":       {"java", "spring", "springboot", "spring-boot"},
	"kotlin":     {"kotlin", "ktor"},
	"sql":        {"sql", "postgres", "postgresql", "mysql", "sqlite", "database"},
	"docker":     {"docker", "dockerfile", "container"},
	"graphql":    {"graphql", "gql"},
	"redis":      {"redis", "cache server"},
	"kafka":      {"kafka", "message broker"},
	"grpc":       {"grpc", "protobuf", "proto"},
}

// SynonymTable resolves technology mentions to canonical names.
type SynonymTable struct {
	canonical map[string]string // lowercase synonym -> canonical name
}

// NewSynonymTable builds the default table, merged with any user override
// file at <repoRoot>/.repotutor/synonyms.yaml. Override entries extend the
// defaults; they never remove them.
func NewSynonymTable(repoRoot string) *SynonymTable {
	t := &SynonymTable{canonical: make(map[string]string)}
	for name, syns := range technologySynonyms {
		for _, s := range syns {
			t.canonical[strings.ToLower(s)] = name
		}
	}

	if repoRoot != "" {
		if overrides := loadSynonymOverrides(filepath.Join(repoRoot, ".repotutor", "synonyms.yaml")); overrides != nil {
			for name, syns := range overrides {
				canon := strings.ToLower(name)
				t.canonical[canon] = canon
				for _, s := range syns {
					t.canonical[strings.ToLower(s)] = canon
				}
			}
		}
	}

	return t
}

// loadSynonymOverrides reads a yaml map of canonical name -> synonyms.
// Any read or parse failure yields nil; the defaults still apply.
func loadSynonymOverrides(path string) map[string][]string {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var overrides map[string][]string
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil
	}
	return overrides
}

// Match returns the canonical technologies mentioned in the text, in
// first-mention order without duplicates.
func (t *SynonymTable) Match(text string) []string {
	lower := strings.ToLower(text)
	words := tokenize(lower)
	wordSet := make(map[string]struct{}, len(words))
	for _, w := range words {
		wordSet[w] = struct{}{}
	}

	var matched []string
	seen := map[string]struct{}{}
	for _, w := range words {
		canon, ok := t.canonical[w]
		if !ok {
			continue
		}
		if _, dup := seen[canon]; dup {
			continue
		}
		seen[canon] = struct{}{}
		matched = append(matched, canon)
	}

	// Multi-word synonyms ("spring boot", "message broker") need substring
	// matching since tokenize splits them apart.
	for syn, canon := range t.canonical {
		if !strings.Contains(syn, " ") {
			continue
		}
		if _, dup := seen[canon]; dup {
			continue
		}
		if strings.Contains(lower, syn) {
			seen[canon] = struct{}{}
			matched = append(matched, canon)
		}
	}

	return matched
}
