package analysis

import (
	"fmt"
	"strings"

	"repotutor/internal/structure"
)

const evidenceSpan = 8 // lines cited after an anchor when no end line is known

// extractConcepts pulls the teachable units out of an analysis: classes
// and top functions per file, recurring patterns, and one concept each for
// the dependency structure and data flow when they exist. Every concept
// carries at least one evidence citation.
func (a *Analyzer) extractConcepts(result *Analysis) []ConceptSeed {
	var concepts []ConceptSeed

	for _, f := range result.Files {
		concepts = append(concepts, fileConcepts(f, a.opts.ConceptsPerFile)...)
	}

	for _, p := range result.CrossFilePatterns {
		anchor := p.Locations[0]
		seed := ConceptSeed{
			Name:        patternTitle(p.Name),
			Category:    ConceptPatterns,
			Description: fmt.Sprintf("The %s pattern appears in %d files across the selection.", p.Name, p.FileCount),
			AnchorFile:  anchor.File,
			AnchorLine:  anchor.Line,
		}
		for _, loc := range p.Locations {
			seed.Evidence = append(seed.Evidence, evidenceAt(loc.File, loc.Line, 0,
				fmt.Sprintf("%s pattern usage", p.Name)))
		}
		concepts = append(concepts, seed)
	}

	if len(result.Relationships) > 0 {
		first := result.Relationships[0]
		seed := ConceptSeed{
			Name:     "Module wiring",
			Category: ConceptArchitecture,
			Description: fmt.Sprintf("How the selected files depend on each other: %d relationships across %d files, starting from %s.",
				len(result.Relationships), len(result.Files), first.SourceFile),
			AnchorFile: first.SourceFile,
			AnchorLine: 1,
			Evidence: []CodeEvidence{
				evidenceAt(first.SourceFile, 1, 0, first.Detail),
			},
		}
		concepts = append(concepts, seed)
	}

	if len(result.DataFlows) > 0 {
		flow := result.DataFlows[0]
		seed := ConceptSeed{
			Name:     flow.Payload + " data flow",
			Category: ConceptDataFlow,
			Description: fmt.Sprintf("%s defined in %s is consumed by %s.",
				flow.Payload, flow.FromFile, flow.ToFile),
			AnchorFile: flow.FromFile,
			AnchorLine: 1,
			Evidence: []CodeEvidence{
				evidenceAt(flow.FromFile, 1, 0, flow.Payload+" definition"),
				evidenceAt(flow.ToFile, 1, 0, flow.Payload+" consumer"),
			},
		}
		concepts = append(concepts, seed)
	}

	return concepts
}

// fileConcepts emits every class and the first few functions of a file.
// Classes name the abstractions learners care about, so they all make the
// cut; functions are capped per file.
func fileConcepts(f *structure.FileAnalysis, perFile int) []ConceptSeed {
	var concepts []ConceptSeed

	for _, c := range f.Classes {
		endLine := c.EndLine
		if endLine <= 0 {
			endLine = c.Line + evidenceSpan
		}
		concepts = append(concepts, ConceptSeed{
			Name:        c.Name,
			Category:    ConceptClasses,
			Description: fmt.Sprintf("%s %s defined in %s.", classKindLabel(c.Kind), c.Name, f.Path),
			AnchorFile:  f.Path,
			AnchorLine:  c.Line,
			Evidence: []CodeEvidence{
				evidenceAt(f.Path, c.Line, endLine, c.Name+" definition"),
			},
		})
	}

	taken := 0
	for _, fn := range f.Functions {
		if taken >= perFile {
			break
		}
		// Methods are already represented by their containing class.
		if fn.Container != "" {
			continue
		}
		desc := fmt.Sprintf("Function %s in %s.", fn.Name, f.Path)
		if fn.Signature != "" {
			desc = fmt.Sprintf("Function %s in %s, declared as %s.", fn.Name, f.Path, strings.TrimSpace(fn.Signature))
		}
		endLine := fn.EndLine
		if endLine <= 0 {
			endLine = fn.Line + evidenceSpan
		}
		concepts = append(concepts, ConceptSeed{
			Name:        fn.Name,
			Category:    ConceptFunctions,
			Description: desc,
			AnchorFile:  f.Path,
			AnchorLine:  fn.Line,
			Evidence: []CodeEvidence{
				evidenceAt(f.Path, fn.Line, endLine, fn.Name+" implementation"),
			},
		})
		taken++
	}
	return concepts
}

func evidenceAt(file string, line, endLine int, description string) CodeEvidence {
	if line < 1 {
		line = 1
	}
	if endLine < line {
		endLine = line + evidenceSpan
	}
	return CodeEvidence{FilePath: file, LineStart: line, LineEnd: endLine, Description: description}
}

func classKindLabel(kind string) string {
	switch kind {
	case "interface":
		return "Interface"
	case "struct":
		return "Struct"
	case "enum":
		return "Enum"
	default:
		return "Class"
	}
}

func patternTitle(name string) string {
	if name == "" {
		return "Recurring pattern"
	}
	return strings.ToUpper(name[:1]) + name[1:] + " pattern"
}
