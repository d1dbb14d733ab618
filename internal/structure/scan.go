package structure

import (
	"regexp"
	"strings"
)

// Import scanning works on raw lines so it stays available without cgo
// and on files tree-sitter cannot parse.

var (
	goImportSingle  = regexp.MustCompile(`^import\s+(?:\w+\s+)?"([^"]+)"`)
	goImportGrouped = regexp.MustCompile(`^(?:\w+\s+)?"([^"]+)"`)
	pyImport        = regexp.MustCompile(`^import\s+([\w.]+)`)
	pyFromImport    = regexp.MustCompile(`^from\s+([\w.]+)\s+import`)
	jsImportFrom    = regexp.MustCompile(`from\s+['"]([^'"]+)['"]`)
	jsImportBare    = regexp.MustCompile(`^import\s+['"]([^'"]+)['"]`)
	jsRequire       = regexp.MustCompile(`require\(\s*['"]([^'"]+)['"]\s*\)`)
	rustUse         = regexp.MustCompile(`^(?:pub\s+)?use\s+([\w:]+)`)
	rustMod         = regexp.MustCompile(`^(?:pub\s+)?mod\s+(\w+)\s*;`)
	jvmImport       = regexp.MustCompile(`^import\s+([\w.]+)`)
)

// scanImports extracts import targets as written in the source. Targets
// are module strings, not resolved paths; resolution against repository
// files happens in the multi-file analyzer.
func scanImports(lines []string, lang Language) []string {
	imports := []string{}
	seen := map[string]struct{}{}
	add := func(imp string) {
		if imp == "" {
			return
		}
		if _, dup := seen[imp]; dup {
			return
		}
		seen[imp] = struct{}{}
		imports = append(imports, imp)
	}

	inGoBlock := false
	for _, raw := range lines {
		line := strings.TrimSpace(raw)

		switch lang {
		case LangGo:
			if inGoBlock {
				if line == ")" {
					inGoBlock = false
					continue
				}
				if m := goImportGrouped.FindStringSubmatch(line); m != nil {
					add(m[1])
				}
				continue
			}
			if strings.HasPrefix(line, "import (") {
				inGoBlock = true
				continue
			}
			if m := goImportSingle.FindStringSubmatch(line); m != nil {
				add(m[1])
			}

		case LangPython:
			if m := pyFromImport.FindStringSubmatch(line); m != nil {
				add(m[1])
			} else if m := pyImport.FindStringSubmatch(line); m != nil {
				add(m[1])
			}

		case LangJavaScript, LangTypeScript, LangTSX:
			if m := jsImportFrom.FindStringSubmatch(line); m != nil {
				add(m[1])
			} else if m := jsImportBare.FindStringSubmatch(line); m != nil {
				add(m[1])
			}
			for _, m := range jsRequire.FindAllStringSubmatch(line, -1) {
				add(m[1])
			}

		case LangRust:
			if m := rustUse.FindStringSubmatch(line); m != nil {
				add(m[1])
			} else if m := rustMod.FindStringSubmatch(line); m != nil {
				add(m[1])
			}

		case LangJava, LangKotlin:
			if m := jvmImport.FindStringSubmatch(line); m != nil {
				add(m[1])
			}
		}
	}

	return imports
}

// patternSignals maps a pattern name to substrings that suggest it.
// Matching is case-insensitive and per-line; the first matching line is
// recorded as the pattern's location.
var patternSignals = []struct {
	name    string
	signals []string
}{
	{"singleton", []string{"getinstance", "get_instance", "sync.once", "_instance"}},
	{"factory", []string{"factory", "create_", "newbuilder", "build()"}},
	{"observer", []string{"subscribe", "addlistener", "add_listener", "notify(", "emit("}},
	{"middleware", []string{"middleware", "next(", "usecase"}},
	{"error-handling", []string{"try:", "except ", "catch ", "catch(", "recover()", "if err != nil"}},
	{"async", []string{"async ", "await ", "go func", "goroutine", "promise", "tokio::"}},
	{"dependency-injection", []string{"inject", "provider", "container.resolve"}},
}

// detectPatterns reports local implementation patterns by keyword signal.
func detectPatterns(lines []string, lang Language) []PatternHit {
	hits := []PatternHit{}
	found := map[string]bool{}

	for i, raw := range lines {
		line := strings.ToLower(raw)
		for _, p := range patternSignals {
			if found[p.name] {
				continue
			}
			for _, sig := range p.signals {
				if strings.Contains(line, sig) {
					hits = append(hits, PatternHit{
						Name:   p.name,
						Line:   i + 1,
						Detail: "signal: " + sig,
					})
					found[p.name] = true
					break
				}
			}
		}
	}

	return hits
}

// Declaration scanning: used when tree-sitter is unavailable or fails.
// One regex per language family keeps this crude but language-aware.

var (
	goFuncDecl   = regexp.MustCompile(`^func\s+(?:\([^)]+\)\s+)?(\w+)\s*\(`)
	goTypeDecl   = regexp.MustCompile(`^type\s+(\w+)\s+(struct|interface)`)
	pyDefDecl    = regexp.MustCompile(`^(\s*)def\s+(\w+)\s*\(`)
	pyClassDecl  = regexp.MustCompile(`^class\s+(\w+)`)
	jsFuncDecl   = regexp.MustCompile(`^(?:export\s+)?(?:async\s+)?function\s*\*?\s*(\w+)\s*\(`)
	jsArrowDecl  = regexp.MustCompile(`^(?:export\s+)?(?:const|let|var)\s+(\w+)\s*=\s*(?:async\s*)?\(`)
	jsClassDecl  = regexp.MustCompile(`^(?:export\s+)?(?:abstract\s+)?class\s+(\w+)`)
	tsIfaceDecl  = regexp.MustCompile(`^(?:export\s+)?interface\s+(\w+)`)
	rustFnDecl   = regexp.MustCompile(`^(?:pub\s+)?(?:async\s+)?fn\s+(\w+)`)
	rustTypeDecl = regexp.MustCompile(`^(?:pub\s+)?(struct|enum|trait)\s+(\w+)`)
	jvmMethod    = regexp.MustCompile(`^(?:public|private|protected|internal)?\s*(?:static\s+)?(?:fun\s+|[\w<>\[\]]+\s+)(\w+)\s*\(`)
	jvmClass     = regexp.MustCompile(`^(?:public\s+|private\s+)?(?:abstract\s+|final\s+|data\s+|open\s+)?(class|interface|enum|object)\s+(\w+)`)
)

// scanSymbols extracts declarations by line patterns. End lines are
// approximated by the start of the next declaration.
func scanSymbols(lines []string, lang Language) ([]FunctionInfo, []ClassInfo) {
	functions := []FunctionInfo{}
	classes := []ClassInfo{}

	for i, raw := range lines {
		line := strings.TrimRight(raw, " \t")
		trimmed := strings.TrimSpace(line)
		lineNo := i + 1

		switch lang {
		case LangGo:
			if m := goFuncDecl.FindStringSubmatch(trimmed); m != nil {
				functions = append(functions, FunctionInfo{Name: m[1], Line: lineNo, Signature: trimmed})
			} else if m := goTypeDecl.FindStringSubmatch(trimmed); m != nil {
				kind := "type"
				if m[2] == "interface" {
					kind = "interface"
				}
				classes = append(classes, ClassInfo{Name: m[1], Kind: kind, Line: lineNo})
			}

		case LangPython:
			if m := pyDefDecl.FindStringSubmatch(line); m != nil {
				fn := FunctionInfo{Name: m[2], Line: lineNo, Signature: trimmed}
				if len(m[1]) > 0 && len(classes) > 0 {
					fn.Container = classes[len(classes)-1].Name
				}
				functions = append(functions, fn)
			} else if m := pyClassDecl.FindStringSubmatch(trimmed); m != nil {
				classes = append(classes, ClassInfo{Name: m[1], Kind: "class", Line: lineNo})
			}

		case LangJavaScript, LangTypeScript, LangTSX:
			if m := jsClassDecl.FindStringSubmatch(trimmed); m != nil {
				classes = append(classes, ClassInfo{Name: m[1], Kind: "class", Line: lineNo})
			} else if m := tsIfaceDecl.FindStringSubmatch(trimmed); m != nil {
				classes = append(classes, ClassInfo{Name: m[1], Kind: "interface", Line: lineNo})
			} else if m := jsFuncDecl.FindStringSubmatch(trimmed); m != nil {
				functions = append(functions, FunctionInfo{Name: m[1], Line: lineNo, Signature: trimmed})
			} else if m := jsArrowDecl.FindStringSubmatch(trimmed); m != nil {
				functions = append(functions, FunctionInfo{Name: m[1], Line: lineNo, Signature: trimmed})
			}

		case LangRust:
			if m := rustFnDecl.FindStringSubmatch(trimmed); m != nil {
				functions = append(functions, FunctionInfo{Name: m[1], Line: lineNo, Signature: trimmed})
			} else if m := rustTypeDecl.FindStringSubmatch(trimmed); m != nil {
				kind := "type"
				if m[1] == "trait" {
					kind = "interface"
				}
				classes = append(classes, ClassInfo{Name: m[2], Kind: kind, Line: lineNo})
			}

		case LangJava, LangKotlin:
			if m := jvmClass.FindStringSubmatch(trimmed); m != nil {
				kind := "class"
				if m[1] == "interface" {
					kind = "interface"
				}
				classes = append(classes, ClassInfo{Name: m[2], Kind: kind, Line: lineNo})
			} else if m := jvmMethod.FindStringSubmatch(trimmed); m != nil {
				name := m[1]
				// Filter control-flow keywords the loose regex can catch.
				switch name {
				case "if", "for", "while", "switch", "return", "new", "catch":
				default:
					fn := FunctionInfo{Name: name, Line: lineNo, Signature: trimmed}
					if len(classes) > 0 {
						fn.Container = classes[len(classes)-1].Name
					}
					functions = append(functions, fn)
				}
			}
		}
	}

	fillEndLines(functions, classes, len(lines))
	return functions, classes
}

// fillEndLines approximates end lines: each declaration ends where the
// next one starts, the last one at EOF.
func fillEndLines(functions []FunctionInfo, classes []ClassInfo, total int) {
	for i := range functions {
		if i+1 < len(functions) {
			functions[i].EndLine = functions[i+1].Line - 1
		} else {
			functions[i].EndLine = total
		}
		if functions[i].EndLine < functions[i].Line {
			functions[i].EndLine = functions[i].Line
		}
	}
	for i := range classes {
		if i+1 < len(classes) {
			classes[i].EndLine = classes[i+1].Line - 1
		} else {
			classes[i].EndLine = total
		}
		if classes[i].EndLine < classes[i].Line {
			classes[i].EndLine = classes[i].Line
		}
	}
}
