package structure

import (
	"context"
	"strings"
	"testing"

	"repotutor/internal/logging"
)

const pythonSample = `import os
from flask import Flask

class AuthService:
    def login(self, user):
        if user.active:
            return True
        return False

    def logout(self, user):
        pass

def helper():
    # TODO: handle retries
    try:
        pass
    except ValueError:
        pass
`

func TestAnalyzePython(t *testing.T) {
	a := NewAnalyzer(logging.NewDiscardLogger())
	result := a.Analyze(context.Background(), "auth.py", pythonSample)

	if result.Language != LangPython {
		t.Fatalf("expected python, got %s", result.Language)
	}

	names := map[string]bool{}
	for _, fn := range result.Functions {
		names[fn.Name] = true
	}
	for _, want := range []string{"login", "logout", "helper"} {
		if !names[want] {
			t.Errorf("function %s not extracted (got %v)", want, result.Functions)
		}
	}

	if len(result.Classes) != 1 || result.Classes[0].Name != "AuthService" {
		t.Errorf("expected AuthService class, got %v", result.Classes)
	}

	wantImports := map[string]bool{"os": true, "flask": true}
	for _, imp := range result.Imports {
		delete(wantImports, imp)
	}
	if len(wantImports) > 0 {
		t.Errorf("missing imports %v, got %v", wantImports, result.Imports)
	}

	foundErrHandling := false
	for _, p := range result.Patterns {
		if p.Name == "error-handling" {
			foundErrHandling = true
		}
	}
	if !foundErrHandling {
		t.Errorf("expected error-handling pattern, got %v", result.Patterns)
	}

	foundTodo := false
	for _, issue := range result.Issues {
		if issue.Kind == "todo-comment" {
			foundTodo = true
		}
	}
	if !foundTodo {
		t.Errorf("expected todo-comment issue, got %v", result.Issues)
	}

	if result.ComplexityScore <= 1.0 {
		t.Errorf("expected complexity above baseline, got %v", result.ComplexityScore)
	}
}

func TestAnalyzeGoImports(t *testing.T) {
	src := `package main

import (
	"fmt"
	"os"

	"example.com/pkg/auth"
)

func main() {
	fmt.Println(os.Args)
	auth.Login()
}
`
	a := NewAnalyzer(logging.NewDiscardLogger())
	result := a.Analyze(context.Background(), "main.go", src)

	got := strings.Join(result.Imports, ",")
	for _, want := range []string{"fmt", "os", "example.com/pkg/auth"} {
		if !strings.Contains(got, want) {
			t.Errorf("import %s missing from %v", want, result.Imports)
		}
	}

	foundMain := false
	for _, fn := range result.Functions {
		if fn.Name == "main" {
			foundMain = true
		}
	}
	if !foundMain {
		t.Errorf("main not extracted: %v", result.Functions)
	}
}

func TestAnalyzeUnknownExtension(t *testing.T) {
	a := NewAnalyzer(logging.NewDiscardLogger())
	result := a.Analyze(context.Background(), "README.md", "# Title\n\nBody.\n")

	if len(result.Functions) != 0 || len(result.Classes) != 0 {
		t.Errorf("expected empty symbols for non-code files, got %v / %v", result.Functions, result.Classes)
	}
	if result.LineCount == 0 {
		t.Error("line count should still be reported")
	}
}

func TestAnalyzeGarbageInputDoesNotPanic(t *testing.T) {
	a := NewAnalyzer(logging.NewDiscardLogger())
	result := a.Analyze(context.Background(), "broken.py", "def ((((\x00\xff garbage")
	if result == nil {
		t.Fatal("analysis must always return a result")
	}
}

func TestScanSymbolsJavaScript(t *testing.T) {
	lines := strings.Split(`class Router {
}
function route(path) {
}
const handle = async (req) => {
}
`, "\n")

	functions, classes := scanSymbols(lines, LangJavaScript)
	if len(classes) != 1 || classes[0].Name != "Router" {
		t.Errorf("expected Router class, got %v", classes)
	}

	names := map[string]bool{}
	for _, fn := range functions {
		names[fn.Name] = true
	}
	if !names["route"] || !names["handle"] {
		t.Errorf("expected route and handle functions, got %v", functions)
	}
}

func TestFillEndLinesMonotonic(t *testing.T) {
	fns := []FunctionInfo{{Name: "a", Line: 1}, {Name: "b", Line: 10}}
	fillEndLines(fns, nil, 20)
	if fns[0].EndLine != 9 {
		t.Errorf("expected first function to end at 9, got %d", fns[0].EndLine)
	}
	if fns[1].EndLine != 20 {
		t.Errorf("expected last function to end at 20, got %d", fns[1].EndLine)
	}
	for _, fn := range fns {
		if fn.EndLine < fn.Line {
			t.Errorf("end line %d before start %d", fn.EndLine, fn.Line)
		}
	}
}
