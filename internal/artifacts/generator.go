package artifacts

import (
	"log/slog"

	"github.com/google/uuid"

	"repotutor/internal/analysis"
	"repotutor/internal/intent"
)

// Options control pool size, caps, and output language.
type Options struct {
	PoolSize      int
	MaxFlashcards int
	QuizQuestions int
	Language      Language
}

func (o Options) withDefaults() Options {
	if o.PoolSize <= 0 {
		o.PoolSize = 12
	}
	if o.MaxFlashcards <= 0 {
		o.MaxFlashcards = 20
	}
	if o.QuizQuestions <= 0 {
		o.QuizQuestions = 8
	}
	if o.Language == "" {
		o.Language = LangEnglish
	}
	return o
}

// Generator produces all four artifact kinds from one analysis. It holds
// no per-request state; one generator serves many analyses.
type Generator struct {
	logger *slog.Logger
	opts   Options
	tpl    templateSet
}

func NewGenerator(logger *slog.Logger, opts Options) *Generator {
	opts = opts.withDefaults()
	return &Generator{logger: logger, opts: opts, tpl: templatesFor(opts.Language)}
}

// Pool exposes the scored concept pool for a given analysis and intent,
// mainly so callers can report what generation was based on.
func (g *Generator) Pool(a *analysis.Analysis, in intent.Intent) []analysis.ConceptSeed {
	if a == nil {
		return nil
	}
	return buildPool(a.KeyConcepts, in, g.opts.PoolSize)
}

func newID() string {
	return uuid.NewString()
}
