package trace

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"repotutor/internal/analysis"
	"repotutor/internal/logging"
	"repotutor/internal/storage"
)

const authSource = `class AuthService:
    def login(self, username, password):
        return check(username, password)

    def logout(self, session):
        session.clear()
`

func newTestManager(t *testing.T) (*Manager, string) {
	t.Helper()
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "auth.py"), []byte(authSource), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(root, "src"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "src", "App.tsx"), []byte("export const App = () => null;\n"), 0644); err != nil {
		t.Fatal(err)
	}
	m, err := NewManager(root, storage.NewMemoryStore(), logging.NewDiscardLogger())
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return m, root
}

func evidence(file string, start, end int) analysis.CodeEvidence {
	return analysis.CodeEvidence{FilePath: file, LineStart: start, LineEnd: end, Description: "test"}
}

func TestRegisterFillsSnippet(t *testing.T) {
	m, _ := newTestManager(t)
	trace, err := m.Register("a1", "flashcard", []analysis.CodeEvidence{evidence("auth.py", 1, 3)})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if !trace.Valid {
		t.Fatalf("expected valid trace, got reason %q", trace.Reason)
	}
	if len(trace.Evidence) != 1 {
		t.Fatalf("expected 1 evidence, got %d", len(trace.Evidence))
	}
	snippet := trace.Evidence[0].Snippet
	if snippet == "" || snippet[:5] != "class" {
		t.Errorf("expected snippet starting at line 1, got %q", snippet)
	}
}

func TestRegisterIdempotent(t *testing.T) {
	m, _ := newTestManager(t)
	ev := []analysis.CodeEvidence{evidence("auth.py", 2, 3)}
	if _, err := m.Register("a1", "flashcard", ev); err != nil {
		t.Fatal(err)
	}
	first, ok, err := m.Trace("a1")
	if err != nil || !ok {
		t.Fatalf("Trace: ok=%v err=%v", ok, err)
	}
	if _, err := m.Register("a1", "flashcard", ev); err != nil {
		t.Fatal(err)
	}
	second, _, _ := m.Trace("a1")
	if !reflect.DeepEqual(first, second) {
		t.Errorf("re-registration changed trace:\n%+v\n%+v", first, second)
	}
	ids, err := m.ArtifactsFor("auth.py", 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(ids, []string{"a1"}) {
		t.Errorf("expected single reverse mapping, got %v", ids)
	}
}

func TestRegisterDropsInvalidEvidence(t *testing.T) {
	m, _ := newTestManager(t)
	trace, err := m.Register("a1", "quiz", []analysis.CodeEvidence{
		evidence("auth.py", 1, 2),
		evidence("auth.py", 0, 2),  // line start < 1
		evidence("auth.py", 5, 3),  // end before start
		evidence("ghost.py", 1, 2), // missing file, no snippet
	})
	if err != nil {
		t.Fatal(err)
	}
	if !trace.Valid || len(trace.Evidence) != 1 {
		t.Errorf("expected 1 surviving evidence on a valid trace, got %d (valid=%v)", len(trace.Evidence), trace.Valid)
	}
}

func TestRegisterAllEvidenceDropped(t *testing.T) {
	m, _ := newTestManager(t)
	trace, err := m.Register("a1", "quiz", []analysis.CodeEvidence{evidence("ghost.py", 1, 2)})
	if err != nil {
		t.Fatal(err)
	}
	if trace.Valid {
		t.Error("expected invalid trace when all evidence dropped")
	}
	if trace.Reason == "" {
		t.Error("expected a reason on an invalid trace")
	}
	got, ok, err := m.Trace("a1")
	if err != nil || !ok {
		t.Fatalf("invalid trace must still be queryable: ok=%v err=%v", ok, err)
	}
	if got.Valid {
		t.Error("stored trace should be flagged invalid")
	}
}

func TestEmbeddedSnippetPassesForMissingFile(t *testing.T) {
	m, _ := newTestManager(t)
	ev := analysis.CodeEvidence{FilePath: "deleted.py", LineStart: 1, LineEnd: 2, Snippet: "def gone():"}
	trace, err := m.Register("a1", "flashcard", []analysis.CodeEvidence{ev})
	if err != nil {
		t.Fatal(err)
	}
	if !trace.Valid || len(trace.Evidence) != 1 {
		t.Errorf("expected embedded snippet to stand alone, got %+v", trace)
	}
}

func TestStaleSnippetDropped(t *testing.T) {
	m, _ := newTestManager(t)
	ev := analysis.CodeEvidence{FilePath: "auth.py", LineStart: 1, LineEnd: 1, Snippet: "class OldName:"}
	trace, err := m.Register("a1", "flashcard", []analysis.CodeEvidence{ev})
	if err != nil {
		t.Fatal(err)
	}
	if trace.Valid {
		t.Error("expected stale snippet to fail verification")
	}
}

func TestCaseInsensitivePathResolution(t *testing.T) {
	m, _ := newTestManager(t)
	trace, err := m.Register("a1", "flashcard", []analysis.CodeEvidence{evidence("SRC/app.TSX", 1, 1)})
	if err != nil {
		t.Fatal(err)
	}
	if !trace.Valid {
		t.Fatalf("expected case-insensitive resolution, got reason %q", trace.Reason)
	}
	if trace.Evidence[0].FilePath != "src/App.tsx" {
		t.Errorf("expected canonical path, got %q", trace.Evidence[0].FilePath)
	}
}

func TestArtifactsForLineRange(t *testing.T) {
	m, _ := newTestManager(t)
	if _, err := m.Register("top", "flashcard", []analysis.CodeEvidence{evidence("auth.py", 1, 3)}); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Register("bottom", "flashcard", []analysis.CodeEvidence{evidence("auth.py", 5, 6)}); err != nil {
		t.Fatal(err)
	}

	all, err := m.ArtifactsFor("auth.py", 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(all, []string{"bottom", "top"}) {
		t.Errorf("whole-file lookup = %v", all)
	}

	head, err := m.ArtifactsFor("auth.py", 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(head, []string{"top"}) {
		t.Errorf("range lookup = %v, want [top]", head)
	}

	none, err := m.ArtifactsFor("other.py", 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(none) != 0 {
		t.Errorf("expected no artifacts for uncited file, got %v", none)
	}
}

func TestArtifactsForUnderscoreFilenameOverSQLite(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"my_file.py", "myxfile.py"} {
		if err := os.WriteFile(filepath.Join(root, name), []byte("def run():\n    pass\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	store, err := storage.OpenSQLiteStore(t.TempDir(), logging.NewDiscardLogger())
	if err != nil {
		t.Fatalf("OpenSQLiteStore: %v", err)
	}
	defer store.Close()
	m, err := NewManager(root, store, logging.NewDiscardLogger())
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	if _, err := m.Register("under", "flashcard", []analysis.CodeEvidence{evidence("my_file.py", 1, 2)}); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Register("other", "flashcard", []analysis.CodeEvidence{evidence("myxfile.py", 1, 2)}); err != nil {
		t.Fatal(err)
	}

	ids, err := m.ArtifactsFor("my_file.py", 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(ids, []string{"under"}) {
		t.Errorf("ArtifactsFor(my_file.py) = %v, want [under]", ids)
	}

	marked, err := m.MarkOutdated("my_file.py")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(marked, []string{"under"}) {
		t.Errorf("MarkOutdated(my_file.py) = %v, want [under]", marked)
	}
	other, _, _ := m.Trace("other")
	if other.Outdated {
		t.Error("artifact citing myxfile.py should be untouched")
	}
}

func TestValidatePersistsOutcome(t *testing.T) {
	m, _ := newTestManager(t)
	if _, err := m.Register("a1", "flashcard", []analysis.CodeEvidence{evidence("auth.py", 1, 2)}); err != nil {
		t.Fatal(err)
	}

	ok, err := m.Validate("a1", "completely rewritten file\n")
	if err != nil || ok {
		t.Fatalf("expected failed validation, ok=%v err=%v", ok, err)
	}
	stored, found, err := m.Trace("a1")
	if err != nil || !found {
		t.Fatalf("Trace: ok=%v err=%v", found, err)
	}
	if stored.Valid {
		t.Error("failed validation must be recorded on the stored trace")
	}
	if stored.Reason == "" {
		t.Error("expected a reason on the stored trace")
	}
	if stored.LastValidatedAt.IsZero() {
		t.Error("expected LastValidatedAt to be set")
	}

	ok, err = m.Validate("a1", authSource)
	if err != nil || !ok {
		t.Fatalf("expected re-validation against original text to pass, ok=%v err=%v", ok, err)
	}
	stored, _, _ = m.Trace("a1")
	if !stored.Valid || stored.Reason != "" {
		t.Errorf("expected stored trace valid again, got valid=%v reason=%q", stored.Valid, stored.Reason)
	}
}

func TestReRegisterDropsStaleFileKeys(t *testing.T) {
	m, _ := newTestManager(t)
	if _, err := m.Register("a1", "flashcard", []analysis.CodeEvidence{evidence("auth.py", 1, 2)}); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Register("a1", "flashcard", []analysis.CodeEvidence{evidence("src/App.tsx", 1, 1)}); err != nil {
		t.Fatal(err)
	}

	old, err := m.ArtifactsFor("auth.py", 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(old) != 0 {
		t.Errorf("file no longer cited should have no artifacts, got %v", old)
	}
	current, err := m.ArtifactsFor("src/App.tsx", 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(current, []string{"a1"}) {
		t.Errorf("ArtifactsFor(src/App.tsx) = %v, want [a1]", current)
	}
}

func TestValidateAgainstCurrentText(t *testing.T) {
	m, _ := newTestManager(t)
	if _, err := m.Register("a1", "flashcard", []analysis.CodeEvidence{evidence("auth.py", 1, 2)}); err != nil {
		t.Fatal(err)
	}
	ok, err := m.Validate("a1", authSource)
	if err != nil || !ok {
		t.Errorf("expected validation against unchanged text to pass, ok=%v err=%v", ok, err)
	}
	ok, err = m.Validate("a1", "completely rewritten file\n")
	if err != nil || ok {
		t.Errorf("expected validation against rewritten text to fail, ok=%v err=%v", ok, err)
	}
	ok, err = m.Validate("missing", authSource)
	if err != nil || ok {
		t.Errorf("expected validation of unknown artifact to fail, ok=%v err=%v", ok, err)
	}
}

func TestMarkOutdated(t *testing.T) {
	m, _ := newTestManager(t)
	if _, err := m.Register("a1", "flashcard", []analysis.CodeEvidence{evidence("auth.py", 1, 2)}); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Register("a2", "quiz", []analysis.CodeEvidence{evidence("src/App.tsx", 1, 1)}); err != nil {
		t.Fatal(err)
	}

	ids, err := m.MarkOutdated("auth.py")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(ids, []string{"a1"}) {
		t.Errorf("MarkOutdated = %v, want [a1]", ids)
	}
	trace, _, _ := m.Trace("a1")
	if !trace.Outdated {
		t.Error("expected a1 flagged outdated")
	}
	other, _, _ := m.Trace("a2")
	if other.Outdated {
		t.Error("a2 should be untouched")
	}
}

func TestSetRootRebuildsIndex(t *testing.T) {
	m, root := newTestManager(t)

	other := t.TempDir()
	if err := os.WriteFile(filepath.Join(other, "main.go"), []byte("package main\n"), 0644); err != nil {
		t.Fatal(err)
	}
	m.SetRoot(other)

	if trace, err := m.Register("a1", "flashcard", []analysis.CodeEvidence{evidence("auth.py", 1, 1)}); err != nil || trace.Valid {
		t.Errorf("old root's file should not resolve after SetRoot, valid=%v err=%v", trace.Valid, err)
	}
	if trace, err := m.Register("a2", "flashcard", []analysis.CodeEvidence{evidence("main.go", 1, 1)}); err != nil || !trace.Valid {
		t.Errorf("new root's file should resolve, valid=%v err=%v", trace.Valid, err)
	}

	m.SetRoot(root)
	if trace, err := m.Register("a3", "flashcard", []analysis.CodeEvidence{evidence("auth.py", 1, 1)}); err != nil || !trace.Valid {
		t.Errorf("switching back should resolve again, valid=%v err=%v", trace.Valid, err)
	}
}
