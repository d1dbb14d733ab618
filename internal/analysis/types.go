// Package analysis aggregates per-file structural results into a cross-file
// picture: relationships, a dependency graph, execution paths, shared
// patterns, and the key concepts all learning artifacts are built from.
// Every cross-file link here is a heuristic signal, not a semantic fact.
package analysis

import (
	"repotutor/internal/structure"
)

// RelationshipKind tags a directed cross-file edge.
type RelationshipKind string

const (
	RelImports RelationshipKind = "imports"
	RelCalls   RelationshipKind = "calls"
)

// Relationship is a directed edge between two analyzed files. Parallel
// edges of different kinds between the same pair are allowed.
type Relationship struct {
	SourceFile string           `json:"sourceFile"`
	TargetFile string           `json:"targetFile"`
	Kind       RelationshipKind `json:"kind"`
	Detail     string           `json:"detail"`
}

// CodeEvidence is the unit of grounding truth: a file-and-line-range
// citation backing a generated claim. Snippet is filled lazily.
type CodeEvidence struct {
	FilePath    string `json:"filePath"`
	LineStart   int    `json:"lineStart"` // 1-indexed, inclusive
	LineEnd     int    `json:"lineEnd"`   // inclusive, >= LineStart
	Snippet     string `json:"snippet,omitempty"`
	Description string `json:"description"`
}

// ConceptCategory buckets concepts for scoring and path phasing.
type ConceptCategory string

const (
	ConceptArchitecture ConceptCategory = "architecture"
	ConceptPatterns     ConceptCategory = "patterns"
	ConceptClasses      ConceptCategory = "classes"
	ConceptFunctions    ConceptCategory = "functions"
	ConceptDataFlow     ConceptCategory = "data-flow"
	ConceptGeneral      ConceptCategory = "general"
)

// ConceptSeed is one scored, deduplicated concept. All fields are always
// present; Score is assigned during pool construction.
type ConceptSeed struct {
	Name        string          `json:"name"`
	Category    ConceptCategory `json:"category"`
	Description string          `json:"description"`
	AnchorFile  string          `json:"anchorFile"`
	AnchorLine  int             `json:"anchorLine"`
	Evidence    []CodeEvidence  `json:"evidence"`
	Score       float64         `json:"score"`
}

// ExecutionStep is one visited file in a traced path.
type ExecutionStep struct {
	File   string `json:"file"`
	Symbol string `json:"symbol"` // function name if available, else "module"
	Line   int    `json:"line"`
}

// ExecutionPath is a depth-bounded trace from an entry point.
type ExecutionPath struct {
	EntryPoint string          `json:"entryPoint"`
	Steps      []ExecutionStep `json:"steps"`
}

// PatternLocation cites one file exhibiting a cross-file pattern.
type PatternLocation struct {
	File string `json:"file"`
	Line int    `json:"line"`
}

// CrossFilePattern is a pattern the structural analyzer reported in two
// or more files.
type CrossFilePattern struct {
	Name      string            `json:"name"`
	FileCount int               `json:"fileCount"`
	Locations []PatternLocation `json:"locations"` // up to 3 examples
}

// DataFlow records model data moving into a consumer file, inferred from
// import edges whose target defines classes.
type DataFlow struct {
	FromFile string `json:"fromFile"`
	ToFile   string `json:"toFile"`
	Payload  string `json:"payload"` // the class that flows
}

// Analysis is the aggregated multi-file result handed to artifact
// generation. Data flows strictly forward; nothing mutates it downstream.
type Analysis struct {
	Files             []*structure.FileAnalysis `json:"files"`
	Relationships     []Relationship            `json:"relationships"`
	DependencyGraph   map[string][]string       `json:"dependencyGraph"`
	DataFlows         []DataFlow                `json:"dataFlows"`
	ExecutionPaths    []ExecutionPath           `json:"executionPaths"`
	CrossFilePatterns []CrossFilePattern        `json:"crossFilePatterns"`
	KeyConcepts       []ConceptSeed             `json:"keyConcepts"`
	Warnings          []string                  `json:"warnings"`
}
