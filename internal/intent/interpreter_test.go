package intent

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"repotutor/internal/logging"
	"repotutor/internal/textgen"
)

func newTestInterpreter() *Interpreter {
	return NewInterpreter(logging.NewDiscardLogger(), NewSynonymTable(""), textgen.Noop{}, 0)
}

func TestInterpretFeatureLearning(t *testing.T) {
	in := newTestInterpreter()
	it := in.Interpret(context.Background(), "understand login", RepoContext{})

	if it.PrimaryCategory != CategoryFeatureLearning {
		t.Errorf("expected feature-learning, got %s", it.PrimaryCategory)
	}
	if it.Confidence < 0.7 {
		t.Errorf("expected confident classification, got %v", it.Confidence)
	}
	found := false
	for _, k := range it.Keywords {
		if k == "login" {
			found = true
		}
	}
	if !found {
		t.Errorf("keyword login missing: %v", it.Keywords)
	}
}

func TestInterpretCategories(t *testing.T) {
	tests := []struct {
		text string
		want Category
	}{
		{"prepare me for the interview about this repo", CategoryInterviewPrep},
		{"give me an architecture overview", CategoryArchitectureOverview},
		{"walk me through the backend api", CategoryBackendFlow},
		{"how is the frontend component tree organized", CategoryFrontendFlow},
		{"understand the payment feature", CategoryFeatureLearning},
		{"xyzzy", CategoryGenericMaterials},
	}

	in := newTestInterpreter()
	for _, tt := range tests {
		it := in.Interpret(context.Background(), tt.text, RepoContext{})
		if it.PrimaryCategory != tt.want {
			t.Errorf("Interpret(%q) category = %s, want %s", tt.text, it.PrimaryCategory, tt.want)
		}
	}
}

func TestInterpretGenericIsLowConfidence(t *testing.T) {
	in := newTestInterpreter()
	it := in.Interpret(context.Background(), "xyzzy", RepoContext{})
	if !NeedsClarification(it) {
		t.Errorf("generic intent should need clarification, confidence=%v", it.Confidence)
	}
}

func TestInterpretTechnologies(t *testing.T) {
	in := newTestInterpreter()
	it := in.Interpret(context.Background(), "learn how the flask routes work", RepoContext{})

	if len(it.Technologies) != 1 || it.Technologies[0] != "python" {
		t.Errorf("expected canonical python, got %v", it.Technologies)
	}
}

func TestInferScope(t *testing.T) {
	in := newTestInterpreter()

	it := in.Interpret(context.Background(), "explain src/handlers to me", RepoContext{})
	if it.Scope.Kind != ScopeSpecificFolders {
		t.Errorf("expected specific-folders, got %s (%v)", it.Scope.Kind, it.Scope.IncludePaths)
	}

	it = in.Interpret(context.Background(), "understand auth.py", RepoContext{})
	if it.Scope.Kind != ScopeSpecificFiles {
		t.Errorf("expected specific-files, got %s", it.Scope.Kind)
	}
	if len(it.Scope.IncludePaths) == 0 || it.Scope.IncludePaths[0] != "auth.py" {
		t.Errorf("expected auth.py include path, got %v", it.Scope.IncludePaths)
	}

	it = in.Interpret(context.Background(), "understand the session handling", RepoContext{})
	if it.Scope.Kind != ScopeWholeRepo {
		t.Errorf("expected whole-repo, got %s", it.Scope.Kind)
	}
}

func TestInferLevel(t *testing.T) {
	in := newTestInterpreter()

	it := in.Interpret(context.Background(), "I am new to this, explain the basics of the api", RepoContext{})
	if it.AudienceLevel != LevelBeginner {
		t.Errorf("expected beginner, got %s", it.AudienceLevel)
	}

	it = in.Interpret(context.Background(), "deep dive into the scheduler internals", RepoContext{})
	if it.AudienceLevel != LevelAdvanced {
		t.Errorf("expected advanced, got %s", it.AudienceLevel)
	}

	it = in.Interpret(context.Background(), "understand the scheduler", RepoContext{})
	if it.AudienceLevel != LevelIntermediate {
		t.Errorf("expected intermediate default, got %s", it.AudienceLevel)
	}
}

func TestGenerateClarifications(t *testing.T) {
	in := newTestInterpreter()

	it := in.Interpret(context.Background(), "xyzzy", RepoContext{})
	questions := in.GenerateClarifications(it)
	dims := map[string]bool{}
	for _, q := range questions {
		dims[q.Dimension] = true
	}
	for _, want := range []string{"category", "scope", "technologies", "level"} {
		if !dims[want] {
			t.Errorf("missing clarification for %s dimension", want)
		}
	}
}

func TestGenerateClarificationsFallback(t *testing.T) {
	in := newTestInterpreter()

	it := in.Interpret(context.Background(),
		"deep dive into the flask backend api under src/handlers", RepoContext{})
	questions := in.GenerateClarifications(it)
	if len(questions) != 1 || questions[0].Dimension != "general" {
		t.Errorf("expected single generic fallback question, got %v", questions)
	}
}

func TestRefinePreservesAndBoosts(t *testing.T) {
	in := newTestInterpreter()
	ctx := context.Background()

	original := in.Interpret(ctx, "learn the flask login flow in src/auth", RepoContext{})
	refined := in.Refine(ctx, original, []string{"I care about the session handling"}, RepoContext{})

	if refined.Confidence <= original.Confidence {
		t.Errorf("refine should raise confidence: %v -> %v", original.Confidence, refined.Confidence)
	}
	if len(refined.Technologies) == 0 {
		t.Error("refine dropped original technologies")
	}
	if refined.Scope.Kind == ScopeWholeRepo {
		t.Error("refine dropped original scope")
	}
	// Original must be unchanged.
	if original.Confidence >= 1.0 {
		t.Error("original intent mutated")
	}
}

func TestRefineConfidenceCapped(t *testing.T) {
	in := newTestInterpreter()
	ctx := context.Background()

	it := in.Interpret(ctx, "prepare me for the interview", RepoContext{})
	for i := 0; i < 5; i++ {
		it = in.Refine(ctx, it, []string{"more detail"}, RepoContext{})
	}
	if it.Confidence > 1.0 {
		t.Errorf("confidence exceeded 1.0: %v", it.Confidence)
	}
}

type fakeCompleter struct {
	response string
	err      error
}

func (f fakeCompleter) Complete(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
	return f.response, f.err
}

func TestAugmentKeywordsFromCompleter(t *testing.T) {
	in := NewInterpreter(logging.NewDiscardLogger(), NewSynonymTable(""),
		fakeCompleter{response: "session, token, credential,\nauthenticate"}, 0)

	it := in.Interpret(context.Background(), "understand login", RepoContext{})
	want := map[string]bool{"session": false, "token": false, "credential": false, "authenticate": false}
	for _, k := range it.Keywords {
		if _, ok := want[k]; ok {
			want[k] = true
		}
	}
	for w, ok := range want {
		if !ok {
			t.Errorf("augmented keyword %s missing from %v", w, it.Keywords)
		}
	}
}

func TestAugmentKeywordsDegradesSilently(t *testing.T) {
	in := NewInterpreter(logging.NewDiscardLogger(), NewSynonymTable(""),
		fakeCompleter{err: fmt.Errorf("model offline")}, 0)

	it := in.Interpret(context.Background(), "understand login", RepoContext{})
	if len(it.Keywords) == 0 {
		t.Error("deterministic keywords must survive completer failure")
	}
}

func TestSynonymOverrides(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, ".repotutor")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	yaml := "acme-framework:\n  - acme\n  - acmefw\n"
	if err := os.WriteFile(filepath.Join(dir, "synonyms.yaml"), []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	table := NewSynonymTable(root)
	got := table.Match("how does acmefw wire handlers")
	if len(got) != 1 || got[0] != "acme-framework" {
		t.Errorf("override synonym not matched: %v", got)
	}
}
