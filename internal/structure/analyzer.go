package structure

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
)

// Analyzer analyzes single files. Symbol extraction uses tree-sitter when
// the binary is built with cgo and falls back to a line scanner otherwise.
type Analyzer struct {
	logger    *slog.Logger
	extractor *extractor
}

// NewAnalyzer creates a structural analyzer.
func NewAnalyzer(logger *slog.Logger) *Analyzer {
	return &Analyzer{
		logger:    logger,
		extractor: newExtractor(),
	}
}

// Analyze inspects one file's text. Files in unrecognized languages get
// an analysis with only line count and issues populated.
func (a *Analyzer) Analyze(ctx context.Context, fileName, source string) *FileAnalysis {
	lines := strings.Split(source, "\n")
	result := &FileAnalysis{
		Path:      fileName,
		Functions: []FunctionInfo{},
		Classes:   []ClassInfo{},
		Imports:   []string{},
		Patterns:  []PatternHit{},
		Issues:    []Issue{},
		LineCount: len(lines),
	}

	lang, ok := LanguageFromExtension(filepath.Ext(fileName))
	if !ok {
		return result
	}
	result.Language = lang

	functions, classes, extracted := a.extractSymbols(ctx, fileName, source, lang)
	if !extracted {
		functions, classes = scanSymbols(lines, lang)
	}
	result.Functions = functions
	result.Classes = classes

	result.Imports = scanImports(lines, lang)
	result.Patterns = detectPatterns(lines, lang)
	result.Issues = detectIssues(lines, functions)
	result.ComplexityScore = complexityScore(lines, lang)

	return result
}

// extractSymbols runs the tree-sitter extractor. A parse failure is not an
// error; the caller falls back to the scanner.
func (a *Analyzer) extractSymbols(ctx context.Context, fileName, source string, lang Language) ([]FunctionInfo, []ClassInfo, bool) {
	if a.extractor == nil {
		return nil, nil, false
	}
	functions, classes, err := a.extractor.extract(ctx, []byte(source), lang)
	if err != nil {
		a.logger.Debug("tree-sitter extraction failed, falling back to scanner",
			"file", fileName, "error", err)
		return nil, nil, false
	}
	return functions, classes, true
}

// decisionKeywords contribute to the heuristic complexity score.
var decisionKeywords = []string{
	"if ", "if(", "for ", "for(", "while ", "while(", "case ",
	"catch ", "catch(", "except ", "elif ", "match ", "&&", "||",
	" and ", " or ", "switch ", "select ",
}

// complexityScore is a cyclomatic-flavored heuristic: one point per
// decision keyword occurrence, normalized so the score is comparable
// across files of different sizes.
func complexityScore(lines []string, lang Language) float64 {
	decisions := 0
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || isCommentLine(trimmed, lang) {
			continue
		}
		for _, kw := range decisionKeywords {
			decisions += strings.Count(trimmed, kw)
		}
	}
	if len(lines) == 0 {
		return 0
	}
	return 1.0 + float64(decisions)*100.0/float64(len(lines))
}

func isCommentLine(trimmed string, lang Language) bool {
	switch lang {
	case LangPython:
		return strings.HasPrefix(trimmed, "#")
	default:
		return strings.HasPrefix(trimmed, "//") || strings.HasPrefix(trimmed, "/*") || strings.HasPrefix(trimmed, "*")
	}
}

// detectIssues flags structural smells. These are advisory only.
func detectIssues(lines []string, functions []FunctionInfo) []Issue {
	issues := []Issue{}

	for i, line := range lines {
		upper := strings.ToUpper(line)
		if strings.Contains(upper, "TODO") || strings.Contains(upper, "FIXME") {
			issues = append(issues, Issue{
				Kind:    "todo-comment",
				Line:    i + 1,
				Message: "unfinished work marker",
			})
		}
	}

	for _, fn := range functions {
		if fn.EndLine-fn.Line > 80 {
			issues = append(issues, Issue{
				Kind:    "long-function",
				Line:    fn.Line,
				Message: fn.Name + " spans more than 80 lines",
			})
		}
	}

	if len(lines) > 600 {
		issues = append(issues, Issue{
			Kind:    "large-file",
			Line:    1,
			Message: "file exceeds 600 lines",
		})
	}

	return issues
}
