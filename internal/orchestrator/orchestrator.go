// Package orchestrator sequences the learning pipeline: intent, selection,
// analysis, artifact generation, traceability. Pipeline outcomes are
// expressed as terminal states with explanations and suggestions; only
// infrastructure failures surface as Go errors.
package orchestrator

import (
	"context"
	"fmt"
	"log/slog"

	"repotutor/internal/analysis"
	"repotutor/internal/artifacts"
	"repotutor/internal/errors"
	"repotutor/internal/intent"
	"repotutor/internal/repo"
	"repotutor/internal/selection"
	"repotutor/internal/trace"
)

// State is the terminal outcome of one pipeline run.
type State string

const (
	StateCompleted           State = "completed"
	StateClarificationNeeded State = "clarification-needed"
	StateNoFilesFound        State = "no-files-found"
	StateGenerationError     State = "generation-error"
)

// TraceReport summarizes artifact registration.
type TraceReport struct {
	Registered int      `json:"registered"`
	InvalidIDs []string `json:"invalidIds,omitempty"`
	Skipped    int      `json:"skipped,omitempty"`
}

// Result is the complete output contract of one run. Fields past the
// terminal state are populated as far as the pipeline got.
type Result struct {
	State          State                          `json:"state"`
	Explanation    string                         `json:"explanation"`
	Suggestions    []errors.Suggestion            `json:"suggestions,omitempty"`
	Intent         intent.Intent                  `json:"intent"`
	Clarifications []intent.ClarificationQuestion `json:"clarifications,omitempty"`
	Selection      selection.SelectionResult      `json:"selection"`
	Analysis       *analysis.Analysis             `json:"analysis,omitempty"`
	Flashcards     []artifacts.Flashcard          `json:"flashcards,omitempty"`
	Quiz           []artifacts.QuizQuestion       `json:"quiz,omitempty"`
	LearningPath   artifacts.LearningPath         `json:"learningPath"`
	Summary        artifacts.ConceptSummary       `json:"summary"`
	Trace          TraceReport                    `json:"trace"`
}

// Options tune a run without reconfiguring components.
type Options struct {
	QuizQuestions int
	// SkipClarification forces the pipeline past a low-confidence intent,
	// used when the caller has no way to answer questions.
	SkipClarification bool
}

// Orchestrator wires the pipeline components together. All components are
// constructed by the caller so tests can substitute any of them.
type Orchestrator struct {
	logger      *slog.Logger
	provider    repo.Provider
	interpreter *intent.Interpreter
	selector    *selection.Selector
	analyzer    *analysis.Analyzer
	generator   *artifacts.Generator
	tracer      *trace.Manager
	opts        Options
}

func New(logger *slog.Logger, provider repo.Provider, interpreter *intent.Interpreter,
	selector *selection.Selector, analyzer *analysis.Analyzer,
	generator *artifacts.Generator, tracer *trace.Manager, opts Options) *Orchestrator {
	return &Orchestrator{
		logger:      logger,
		provider:    provider,
		interpreter: interpreter,
		selector:    selector,
		analyzer:    analyzer,
		generator:   generator,
		tracer:      tracer,
		opts:        opts,
	}
}

// Run executes the full pipeline for a free-text learning goal.
func (o *Orchestrator) Run(ctx context.Context, goal string) (*Result, error) {
	files, err := o.provider.Files()
	if err != nil {
		return nil, errors.New(errors.InternalError, "failed to inventory repository", err)
	}

	repoCtx := intent.BuildRepoContext(o.provider, files)
	in := o.interpreter.Interpret(ctx, goal, repoCtx)

	result := &Result{Intent: in}
	if intent.NeedsClarification(in) && !o.opts.SkipClarification {
		result.State = StateClarificationNeeded
		result.Clarifications = o.interpreter.GenerateClarifications(in)
		result.Explanation = fmt.Sprintf("The goal %q is ambiguous (confidence %.2f); answering the questions below will sharpen the materials.", goal, in.Confidence)
		result.Suggestions = errors.SuggestionsFor(errors.IntentAmbiguous)
		return result, nil
	}

	return o.resume(ctx, result, files)
}

// Resume continues a clarified run: the intent is refined with the user's
// answers and the rest of the pipeline executes.
func (o *Orchestrator) Resume(ctx context.Context, previous intent.Intent, answers []string) (*Result, error) {
	files, err := o.provider.Files()
	if err != nil {
		return nil, errors.New(errors.InternalError, "failed to inventory repository", err)
	}
	repoCtx := intent.BuildRepoContext(o.provider, files)
	refined := o.interpreter.Refine(ctx, previous, answers, repoCtx)
	return o.resume(ctx, &Result{Intent: refined}, files)
}

func (o *Orchestrator) resume(ctx context.Context, result *Result, files []repo.FileDescriptor) (*Result, error) {
	result.Selection = o.selector.Select(result.Intent, files)
	if len(result.Selection.SelectedFiles) == 0 {
		result.State = StateNoFilesFound
		result.Explanation = result.Selection.Summary
		code := errors.NoCodeFiles
		if result.Selection.TotalScanned == 0 {
			code = errors.RepoEmpty
		}
		result.Suggestions = errors.SuggestionsFor(code)
		return result, nil
	}

	result.Analysis = o.analyzer.Analyze(ctx, o.provider, result.Selection.SelectedFiles, result.Intent)

	result.Flashcards = o.generator.Flashcards(result.Analysis, result.Intent)
	result.Quiz = o.generator.Quiz(result.Analysis, result.Intent, o.opts.QuizQuestions)
	result.LearningPath = o.generator.LearningPath(result.Analysis, result.Intent)
	result.Summary = o.generator.Summary(result.Analysis, result.Intent)

	if err := o.registerAll(result); err != nil {
		// Artifacts were generated; only their persistence failed.
		result.State = StateGenerationError
		result.Explanation = fmt.Sprintf("Artifacts were generated but traceability registration failed: %v.", err)
		result.Suggestions = errors.SuggestionsFor(errors.StoreUnavailable)
		return result, nil
	}

	result.State = StateCompleted
	result.Explanation = fmt.Sprintf("Generated %d flashcards, %d quiz questions, and a %d-step learning path from %d files.",
		len(result.Flashcards), len(result.Quiz), len(result.LearningPath.Steps), len(result.Selection.SelectedFiles))
	return result, nil
}

// registerAll records every generated artifact with the trace manager.
// Evidence dropped during verification shows up as invalid trace IDs, not
// as pipeline failures.
func (o *Orchestrator) registerAll(result *Result) error {
	record := func(id, kind string, evidence []analysis.CodeEvidence) error {
		t, err := o.tracer.Register(id, kind, evidence)
		if err != nil {
			return err
		}
		result.Trace.Registered++
		if !t.Valid {
			result.Trace.InvalidIDs = append(result.Trace.InvalidIDs, id)
		}
		return nil
	}

	for _, card := range result.Flashcards {
		if err := record(card.ID, "flashcard", card.Evidence); err != nil {
			return err
		}
	}
	for _, q := range result.Quiz {
		if err := record(q.ID, "quiz-question", q.Evidence); err != nil {
			return err
		}
	}
	for _, step := range result.LearningPath.Steps {
		if err := record(step.ID, "learning-step", step.Evidence); err != nil {
			return err
		}
	}
	o.logger.Debug("artifacts registered", "count", result.Trace.Registered, "invalid", len(result.Trace.InvalidIDs))
	return nil
}
