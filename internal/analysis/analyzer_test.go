package analysis

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"repotutor/internal/intent"
	"repotutor/internal/logging"
	"repotutor/internal/repo"
	"repotutor/internal/selection"
	"repotutor/internal/structure"
)

type mapProvider struct {
	files map[string]string
}

func (m *mapProvider) Root() string { return "/fake" }

func (m *mapProvider) Files() ([]repo.FileDescriptor, error) {
	var out []repo.FileDescriptor
	for path, content := range m.files {
		out = append(out, repo.FileDescriptor{
			Path:      path,
			Name:      filepath.Base(path),
			Extension: filepath.Ext(path),
			SizeBytes: int64(len(content)),
			LineCount: strings.Count(content, "\n") + 1,
		})
	}
	return out, nil
}

func (m *mapProvider) ReadFile(path string) (string, error) {
	content, ok := m.files[path]
	if !ok {
		return "", &repo.NotFoundError{Path: path}
	}
	return content, nil
}

func selectionsFor(t *testing.T, p *mapProvider, paths ...string) []selection.FileSelection {
	t.Helper()
	descs, err := p.Files()
	if err != nil {
		t.Fatalf("Files: %v", err)
	}
	byPath := map[string]repo.FileDescriptor{}
	for _, d := range descs {
		byPath[d.Path] = d
	}
	var sels []selection.FileSelection
	for i, path := range paths {
		d, ok := byPath[path]
		if !ok {
			d = repo.FileDescriptor{Path: path, Name: filepath.Base(path), Extension: filepath.Ext(path)}
		}
		sels = append(sels, selection.FileSelection{File: d, RelevanceScore: 0.5, Priority: i + 1})
	}
	return sels
}

func newTestAnalyzer() *Analyzer {
	logger := logging.NewDiscardLogger()
	return NewAnalyzer(logger, structure.NewAnalyzer(logger), Options{})
}

const appPy = `from auth import AuthService

def main():
    service = AuthService()
    service.login("alice", "secret")

if __name__ == "__main__":
    main()
`

const authPy = `class AuthService:
    def login(self, username, password):
        try:
            return check(username, password)
        except ValueError:
            return None

    def logout(self, session):
        session.clear()
`

func TestAnalyzeLinksFiles(t *testing.T) {
	p := &mapProvider{files: map[string]string{
		"app.py":  appPy,
		"auth.py": authPy,
	}}
	a := newTestAnalyzer()
	result := a.Analyze(context.Background(), p, selectionsFor(t, p, "app.py", "auth.py"), intent.Intent{})

	if len(result.Files) != 2 {
		t.Fatalf("expected 2 analyzed files, got %d", len(result.Files))
	}
	var foundImport bool
	for _, r := range result.Relationships {
		if r.SourceFile == "app.py" && r.TargetFile == "auth.py" && r.Kind == RelImports {
			foundImport = true
		}
	}
	if !foundImport {
		t.Errorf("expected app.py -> auth.py import edge, got %+v", result.Relationships)
	}
	if targets := result.DependencyGraph["app.py"]; len(targets) == 0 || targets[0] != "auth.py" {
		t.Errorf("dependency graph missing app.py -> auth.py: %v", result.DependencyGraph)
	}
}

func TestAnalyzeSkipsUnreadableFiles(t *testing.T) {
	p := &mapProvider{files: map[string]string{"auth.py": authPy}}
	a := newTestAnalyzer()
	sels := selectionsFor(t, p, "auth.py", "gone.py")
	result := a.Analyze(context.Background(), p, sels, intent.Intent{})

	if len(result.Files) != 1 {
		t.Fatalf("expected 1 analyzed file, got %d", len(result.Files))
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "gone.py") {
		t.Errorf("expected a warning naming gone.py, got %v", result.Warnings)
	}
}

func TestAnalyzeEmptySelection(t *testing.T) {
	p := &mapProvider{files: map[string]string{}}
	a := newTestAnalyzer()
	result := a.Analyze(context.Background(), p, nil, intent.Intent{})

	if result == nil {
		t.Fatal("expected non-nil analysis")
	}
	if len(result.Files) != 0 || len(result.KeyConcepts) != 0 {
		t.Errorf("expected empty analysis, got %d files, %d concepts", len(result.Files), len(result.KeyConcepts))
	}
}

func TestExecutionPathStartsAtEntryPoint(t *testing.T) {
	p := &mapProvider{files: map[string]string{
		"app.py":  appPy,
		"auth.py": authPy,
	}}
	a := newTestAnalyzer()
	result := a.Analyze(context.Background(), p, selectionsFor(t, p, "auth.py", "app.py"), intent.Intent{})

	if len(result.ExecutionPaths) == 0 {
		t.Fatal("expected at least one execution path")
	}
	path := result.ExecutionPaths[0]
	if path.EntryPoint != "app.py" {
		t.Errorf("expected entry point app.py, got %s", path.EntryPoint)
	}
	if len(path.Steps) < 2 {
		t.Fatalf("expected trace to descend into auth.py, got %+v", path.Steps)
	}
	if path.Steps[1].File != "auth.py" {
		t.Errorf("expected second step in auth.py, got %s", path.Steps[1].File)
	}
}

func TestTraceBoundsDepthAndCycles(t *testing.T) {
	a := NewAnalyzer(logging.NewDiscardLogger(), structure.NewAnalyzer(logging.NewDiscardLogger()), Options{MaxTraceDepth: 3})

	// a -> b -> c -> a cycle, plus c -> d beyond the depth bound.
	graph := map[string][]string{
		"a.py": {"b.py"},
		"b.py": {"c.py"},
		"c.py": {"a.py", "d.py"},
	}
	files := []*structure.FileAnalysis{
		{Path: "a.py"}, {Path: "b.py"}, {Path: "c.py"}, {Path: "d.py"},
	}
	paths := a.tracePaths(files, graph)
	if len(paths) != 1 {
		t.Fatalf("expected one path, got %d", len(paths))
	}
	if got := len(paths[0].Steps); got != 3 {
		t.Errorf("expected 3 steps at depth bound 3, got %d: %+v", got, paths[0].Steps)
	}
	for _, s := range paths[0].Steps {
		if s.File == "d.py" {
			t.Error("trace exceeded depth bound into d.py")
		}
	}
}

func TestTraceFanoutCap(t *testing.T) {
	a := NewAnalyzer(logging.NewDiscardLogger(), structure.NewAnalyzer(logging.NewDiscardLogger()), Options{TraceFanout: 2})
	graph := map[string][]string{
		"main.py": {"a.py", "b.py", "c.py"},
	}
	files := []*structure.FileAnalysis{
		{Path: "main.py"}, {Path: "a.py"}, {Path: "b.py"}, {Path: "c.py"},
	}
	paths := a.tracePaths(files, graph)
	if len(paths) != 1 {
		t.Fatalf("expected one path, got %d", len(paths))
	}
	for _, s := range paths[0].Steps {
		if s.File == "c.py" {
			t.Error("trace followed a third branch past the fan-out cap")
		}
	}
}

func TestCrossFilePatternsRequireTwoFiles(t *testing.T) {
	files := []*structure.FileAnalysis{
		{Path: "a.py", Patterns: []structure.PatternHit{{Name: "error-handling", Line: 3}}},
		{Path: "b.py", Patterns: []structure.PatternHit{{Name: "error-handling", Line: 9}, {Name: "singleton", Line: 1}}},
		{Path: "c.py", Patterns: []structure.PatternHit{{Name: "error-handling", Line: 2}}},
		{Path: "d.py", Patterns: []structure.PatternHit{{Name: "error-handling", Line: 5}}},
	}
	patterns := groupPatterns(files, 2, 3)
	if len(patterns) != 1 {
		t.Fatalf("expected only error-handling to qualify, got %+v", patterns)
	}
	p := patterns[0]
	if p.Name != "error-handling" || p.FileCount != 4 {
		t.Errorf("unexpected pattern %+v", p)
	}
	if len(p.Locations) != 3 {
		t.Errorf("expected locations capped at 3, got %d", len(p.Locations))
	}
}

func TestKeyConceptsCarryEvidence(t *testing.T) {
	p := &mapProvider{files: map[string]string{
		"app.py":  appPy,
		"auth.py": authPy,
	}}
	a := newTestAnalyzer()
	result := a.Analyze(context.Background(), p, selectionsFor(t, p, "app.py", "auth.py"), intent.Intent{})

	if len(result.KeyConcepts) == 0 {
		t.Fatal("expected key concepts")
	}
	var names []string
	for _, c := range result.KeyConcepts {
		names = append(names, c.Name)
		if len(c.Evidence) == 0 {
			t.Errorf("concept %q has no evidence", c.Name)
		}
		for _, ev := range c.Evidence {
			if ev.LineStart < 1 || ev.LineEnd < ev.LineStart {
				t.Errorf("concept %q has invalid evidence span %d..%d", c.Name, ev.LineStart, ev.LineEnd)
			}
			if ev.FilePath == "" {
				t.Errorf("concept %q has evidence without a file", c.Name)
			}
		}
	}
	joined := strings.Join(names, " ")
	if !strings.Contains(joined, "AuthService") {
		t.Errorf("expected AuthService among concepts, got %v", names)
	}
	if !strings.Contains(joined, "Module wiring") {
		t.Errorf("expected an architecture concept, got %v", names)
	}
}

func TestImportMatch(t *testing.T) {
	tests := []struct {
		imports []string
		target  string
		want    bool
	}{
		{[]string{"auth"}, "auth.py", true},
		{[]string{"app.models.user"}, "app/models/user.py", true},
		{[]string{"./router"}, "src/router.ts", true},
		{[]string{"crate::store"}, "src/store.rs", true},
		{[]string{"os", "json"}, "auth.py", false},
		{nil, "auth.py", false},
	}
	for _, tt := range tests {
		_, got := importMatch(tt.imports, tt.target)
		if got != tt.want {
			t.Errorf("importMatch(%v, %q) = %v, want %v", tt.imports, tt.target, got, tt.want)
		}
	}
}

func TestDataFlowFromModels(t *testing.T) {
	files := []*structure.FileAnalysis{
		{Path: "models/user.py", Classes: []structure.ClassInfo{{Name: "User", Kind: "class", Line: 1, EndLine: 10}}},
		{Path: "views.py"},
	}
	rels := []Relationship{
		{SourceFile: "views.py", TargetFile: "models/user.py", Kind: RelImports, Detail: "import of models.user"},
	}
	flows := deriveDataFlows(files, rels)
	if len(flows) != 1 {
		t.Fatalf("expected one data flow, got %+v", flows)
	}
	if flows[0].Payload != "User" || flows[0].ToFile != "views.py" {
		t.Errorf("unexpected flow %+v", flows[0])
	}
}
