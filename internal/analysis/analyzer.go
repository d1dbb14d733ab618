package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"repotutor/internal/intent"
	"repotutor/internal/repo"
	"repotutor/internal/selection"
	"repotutor/internal/structure"
)

// Options bound the expensive parts of aggregation.
type Options struct {
	MaxTraceDepth      int
	TraceFanout        int
	ConceptsPerFile    int
	PatternMinFiles    int
	PatternMaxExamples int
}

func (o Options) withDefaults() Options {
	if o.MaxTraceDepth <= 0 {
		o.MaxTraceDepth = 5
	}
	if o.TraceFanout <= 0 {
		o.TraceFanout = 2
	}
	if o.ConceptsPerFile <= 0 {
		o.ConceptsPerFile = 3
	}
	if o.PatternMinFiles <= 0 {
		o.PatternMinFiles = 2
	}
	if o.PatternMaxExamples <= 0 {
		o.PatternMaxExamples = 3
	}
	return o
}

// Analyzer runs structural analysis over a selected file set and stitches
// the per-file results together.
type Analyzer struct {
	logger     *slog.Logger
	structural *structure.Analyzer
	opts       Options
}

func NewAnalyzer(logger *slog.Logger, structural *structure.Analyzer, opts Options) *Analyzer {
	return &Analyzer{logger: logger, structural: structural, opts: opts.withDefaults()}
}

// Analyze reads and analyzes every selected file, then derives cross-file
// results. Unreadable files are skipped with a warning rather than failing
// the whole run; an empty selection yields an empty but usable Analysis.
func (a *Analyzer) Analyze(ctx context.Context, provider repo.Provider, selections []selection.FileSelection, in intent.Intent) *Analysis {
	result := &Analysis{DependencyGraph: map[string][]string{}}

	for _, sel := range selections {
		if ctx.Err() != nil {
			result.Warnings = append(result.Warnings, "analysis interrupted: "+ctx.Err().Error())
			break
		}
		source, err := provider.ReadFile(sel.File.Path)
		if err != nil {
			a.logger.Warn("skipping unreadable file", "path", sel.File.Path, "error", err)
			result.Warnings = append(result.Warnings, fmt.Sprintf("skipped %s: %v", sel.File.Path, err))
			continue
		}
		fa := a.structural.Analyze(ctx, sel.File.Path, source)
		result.Files = append(result.Files, fa)
	}

	result.Relationships = detectRelationships(result.Files)
	result.DependencyGraph = buildGraph(result.Relationships)
	result.DataFlows = deriveDataFlows(result.Files, result.Relationships)
	result.ExecutionPaths = a.tracePaths(result.Files, result.DependencyGraph)
	result.CrossFilePatterns = groupPatterns(result.Files, a.opts.PatternMinFiles, a.opts.PatternMaxExamples)
	result.KeyConcepts = a.extractConcepts(result)

	a.logger.Debug("analysis complete",
		"intent", string(in.PrimaryCategory),
		"files", len(result.Files),
		"relationships", len(result.Relationships),
		"paths", len(result.ExecutionPaths),
		"concepts", len(result.KeyConcepts))
	return result
}

// buildGraph folds relationships into a deduplicated adjacency list.
func buildGraph(rels []Relationship) map[string][]string {
	graph := map[string][]string{}
	seen := map[string]bool{}
	for _, r := range rels {
		key := r.SourceFile + "\x00" + r.TargetFile
		if seen[key] {
			continue
		}
		seen[key] = true
		graph[r.SourceFile] = append(graph[r.SourceFile], r.TargetFile)
	}
	for _, targets := range graph {
		sort.Strings(targets)
	}
	return graph
}

// deriveDataFlows reads model data movement off import edges: when the
// imported file defines classes, those classes flow into the importer.
func deriveDataFlows(files []*structure.FileAnalysis, rels []Relationship) []DataFlow {
	byPath := map[string]*structure.FileAnalysis{}
	for _, f := range files {
		byPath[f.Path] = f
	}
	var flows []DataFlow
	seen := map[string]bool{}
	for _, r := range rels {
		if r.Kind != RelImports {
			continue
		}
		target, ok := byPath[r.TargetFile]
		if !ok || len(target.Classes) == 0 {
			continue
		}
		key := r.TargetFile + "\x00" + r.SourceFile
		if seen[key] {
			continue
		}
		seen[key] = true
		flows = append(flows, DataFlow{
			FromFile: r.TargetFile,
			ToFile:   r.SourceFile,
			Payload:  target.Classes[0].Name,
		})
	}
	return flows
}
