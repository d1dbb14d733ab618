package analysis

import (
	"sort"
	"strings"

	"repotutor/internal/structure"
)

var entryBaseNames = map[string]bool{
	"main": true, "app": true, "index": true, "server": true,
	"cli": true, "manage": true, "application": true,
}

// tracePaths walks the dependency graph from each entry point, bounded by
// depth and fan-out so pathological graphs stay cheap. Cycles terminate a
// branch silently. Repos without an obvious entry point get a single trace
// from the first analyzed file.
func (a *Analyzer) tracePaths(files []*structure.FileAnalysis, graph map[string][]string) []ExecutionPath {
	if len(files) == 0 {
		return nil
	}
	byPath := map[string]*structure.FileAnalysis{}
	for _, f := range files {
		byPath[f.Path] = f
	}

	var roots []string
	for _, f := range files {
		if entryBaseNames[baseName(f.Path)] {
			roots = append(roots, f.Path)
		}
	}
	if len(roots) == 0 {
		roots = []string{files[0].Path}
	}
	sort.Strings(roots)

	var paths []ExecutionPath
	for _, root := range roots {
		visited := map[string]bool{}
		var steps []ExecutionStep
		a.walk(root, byPath, graph, visited, 0, &steps)
		paths = append(paths, ExecutionPath{EntryPoint: root, Steps: steps})
	}
	return paths
}

func (a *Analyzer) walk(path string, byPath map[string]*structure.FileAnalysis, graph map[string][]string, visited map[string]bool, depth int, steps *[]ExecutionStep) {
	if depth >= a.opts.MaxTraceDepth || visited[path] {
		return
	}
	visited[path] = true
	*steps = append(*steps, stepFor(byPath[path], path))

	targets := graph[path]
	if len(targets) > a.opts.TraceFanout {
		targets = targets[:a.opts.TraceFanout]
	}
	for _, t := range targets {
		a.walk(t, byPath, graph, visited, depth+1, steps)
	}
}

func stepFor(f *structure.FileAnalysis, path string) ExecutionStep {
	step := ExecutionStep{File: path, Symbol: "module", Line: 1}
	if f == nil || len(f.Functions) == 0 {
		return step
	}
	step.Symbol = f.Functions[0].Name
	step.Line = f.Functions[0].Line
	return step
}

// groupPatterns surfaces structural patterns that recur across files.
// Single-file hits are per-file detail, not a cross-file pattern.
func groupPatterns(files []*structure.FileAnalysis, minFiles, maxExamples int) []CrossFilePattern {
	byName := map[string][]PatternLocation{}
	filesPerName := map[string]map[string]bool{}
	for _, f := range files {
		for _, hit := range f.Patterns {
			byName[hit.Name] = append(byName[hit.Name], PatternLocation{File: f.Path, Line: hit.Line})
			if filesPerName[hit.Name] == nil {
				filesPerName[hit.Name] = map[string]bool{}
			}
			filesPerName[hit.Name][f.Path] = true
		}
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	var patterns []CrossFilePattern
	for _, name := range names {
		fileCount := len(filesPerName[name])
		if fileCount < minFiles {
			continue
		}
		locs := dedupeByFile(byName[name])
		if len(locs) > maxExamples {
			locs = locs[:maxExamples]
		}
		patterns = append(patterns, CrossFilePattern{Name: name, FileCount: fileCount, Locations: locs})
	}
	return patterns
}

// dedupeByFile keeps the first hit per file so examples cite distinct files.
func dedupeByFile(locs []PatternLocation) []PatternLocation {
	seen := map[string]bool{}
	var out []PatternLocation
	for _, l := range locs {
		if seen[l.File] {
			continue
		}
		seen[l.File] = true
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.Compare(out[i].File, out[j].File) < 0
	})
	return out
}
