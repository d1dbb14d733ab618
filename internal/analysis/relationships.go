package analysis

import (
	"path/filepath"
	"sort"
	"strings"

	"repotutor/internal/structure"
)

// detectRelationships links analyzed files pairwise. Import strings are
// matched against candidate paths by trailing segments; "calls" edges fall
// out of a target's base name appearing in the source's logic summary.
func detectRelationships(files []*structure.FileAnalysis) []Relationship {
	var rels []Relationship
	for _, src := range files {
		summary := logicSummary(src)
		for _, dst := range files {
			if dst.Path == src.Path {
				continue
			}
			if imp, ok := importMatch(src.Imports, dst.Path); ok {
				rels = append(rels, Relationship{
					SourceFile: src.Path,
					TargetFile: dst.Path,
					Kind:       RelImports,
					Detail:     "import of " + imp,
				})
			}
			if base := baseName(dst.Path); base != "" && containsWord(summary, base) {
				rels = append(rels, Relationship{
					SourceFile: src.Path,
					TargetFile: dst.Path,
					Kind:       RelCalls,
					Detail:     "references " + base,
				})
			}
		}
	}
	sort.SliceStable(rels, func(i, j int) bool {
		if rels[i].SourceFile != rels[j].SourceFile {
			return rels[i].SourceFile < rels[j].SourceFile
		}
		if rels[i].TargetFile != rels[j].TargetFile {
			return rels[i].TargetFile < rels[j].TargetFile
		}
		return rels[i].Kind < rels[j].Kind
	})
	return rels
}

// importMatch reports whether any import string plausibly resolves to the
// given file path. Dots and double colons are treated as path separators
// so "app.models.user" matches "app/models/user.py".
func importMatch(imports []string, targetPath string) (string, bool) {
	noExt := strings.TrimSuffix(targetPath, filepath.Ext(targetPath))
	targetSegs := strings.Split(noExt, "/")
	for _, imp := range imports {
		norm := normalizeImport(imp)
		if norm == "" {
			continue
		}
		impSegs := strings.Split(norm, "/")
		if tailMatch(targetSegs, impSegs) || tailMatch(impSegs, []string{targetSegs[len(targetSegs)-1]}) {
			return imp, true
		}
	}
	return "", false
}

func normalizeImport(imp string) string {
	imp = strings.TrimSpace(imp)
	imp = strings.ReplaceAll(imp, "::", "/")
	imp = strings.ReplaceAll(imp, ".", "/")
	imp = strings.TrimPrefix(imp, "//") // relative "./x" after dot rewrite
	imp = strings.TrimPrefix(imp, "/")
	return strings.Trim(imp, "/")
}

// tailMatch reports whether want is a suffix of have, segment-wise.
func tailMatch(have, want []string) bool {
	if len(want) == 0 || len(want) > len(have) {
		return false
	}
	offset := len(have) - len(want)
	for i, seg := range want {
		if !strings.EqualFold(have[offset+i], seg) {
			return false
		}
	}
	return true
}

func baseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// logicSummary concatenates the symbol-level view of a file. It is the
// text "calls" detection runs over, deliberately excluding raw source so
// comments and string literals do not create edges.
func logicSummary(f *structure.FileAnalysis) string {
	var b strings.Builder
	for _, fn := range f.Functions {
		b.WriteString(fn.Name)
		b.WriteByte(' ')
		b.WriteString(fn.Signature)
		b.WriteByte(' ')
	}
	for _, c := range f.Classes {
		b.WriteString(c.Name)
		b.WriteByte(' ')
	}
	for _, p := range f.Patterns {
		b.WriteString(p.Detail)
		b.WriteByte(' ')
	}
	return strings.ToLower(b.String())
}

// containsWord does a case-insensitive whole-word check, where word
// boundaries are any non-identifier runes.
func containsWord(haystack, word string) bool {
	word = strings.ToLower(word)
	idx := 0
	for {
		i := strings.Index(haystack[idx:], word)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(word)
		beforeOK := start == 0 || !isIdentRune(rune(haystack[start-1]))
		afterOK := end == len(haystack) || !isIdentRune(rune(haystack[end]))
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isIdentRune(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
