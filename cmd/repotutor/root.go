package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"repotutor/internal/analysis"
	"repotutor/internal/artifacts"
	"repotutor/internal/config"
	"repotutor/internal/errors"
	"repotutor/internal/intent"
	"repotutor/internal/logging"
	"repotutor/internal/orchestrator"
	"repotutor/internal/repo"
	"repotutor/internal/selection"
	"repotutor/internal/storage"
	"repotutor/internal/structure"
	"repotutor/internal/textgen"
	"repotutor/internal/trace"
	"repotutor/internal/version"

	"github.com/spf13/cobra"
)

var (
	// repoFlag is the repository root the pipeline operates on
	repoFlag string
	// formatFlag selects the output format: json or human
	formatFlag string
	// logLevelFlag overrides the configured log level
	logLevelFlag string
	// yesFlag skips clarification and proceeds with the best-guess intent
	yesFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "repotutor",
	Short: "repotutor - grounded learning materials from your codebase",
	Long: `repotutor turns a repository plus a free-text learning goal into study
materials (flashcards, quiz, learning path, concept summary), every claim
traceable to file and line evidence in the code.`,
	Version: version.Info(),
}

func init() {
	rootCmd.SetVersionTemplate(version.Full() + "\n")
	rootCmd.PersistentFlags().StringVar(&repoFlag, "repo", ".", "Repository root to analyze")
	rootCmd.PersistentFlags().StringVar(&formatFlag, "format", "human", "Output format: json or human")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&yesFlag, "yes", false, "Proceed with the best-guess intent instead of asking clarification questions")
}

// pipeline bundles everything a command needs for one invocation.
type pipeline struct {
	root        string
	cfg         *config.Config
	logger      *slog.Logger
	provider    *repo.DirProvider
	interpreter *intent.Interpreter
	selector    *selection.Selector
	tracer      *trace.Manager
	store       storage.Store
	orch        *orchestrator.Orchestrator
}

func (p *pipeline) close() {
	if p.store != nil {
		_ = p.store.Close()
	}
}

// buildPipeline loads config and constructs the component graph rooted at
// --repo. Traces persist under .repotutor/ so later trace lookups see them.
func buildPipeline() (*pipeline, error) {
	root, err := filepath.Abs(repoFlag)
	if err != nil {
		return nil, errors.New(errors.InternalError, "failed to resolve repository root", err)
	}

	cfg, err := config.LoadConfig(root)
	if err != nil {
		return nil, errors.New(errors.InternalError, "failed to load configuration", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.New(errors.InternalError, "invalid configuration", err)
	}

	level := cfg.Logging.Level
	if logLevelFlag != "" {
		level = logLevelFlag
	}
	logger := logging.NewLogger(os.Stderr, logging.LevelFromString(level), logging.FormatFromString(cfg.Logging.Format))

	provider, err := repo.NewDirProvider(root)
	if err != nil {
		return nil, errors.New(errors.RepoEmpty, "failed to open repository", err)
	}

	var completer textgen.Completer = textgen.Noop{}
	if cfg.TextGen.Enabled {
		completer = textgen.NewOllamaClient(cfg.TextGen.Endpoint, cfg.TextGen.Model,
			time.Duration(cfg.TextGen.TimeoutMs)*time.Millisecond)
	}

	store, err := storage.OpenSQLiteStore(filepath.Join(root, config.ConfigDirName), logger)
	if err != nil {
		return nil, errors.New(errors.StoreUnavailable, "failed to open trace store", err)
	}

	tracer, err := trace.NewManager(root, store, logger)
	if err != nil {
		_ = store.Close()
		return nil, errors.New(errors.StoreUnavailable, "failed to create trace manager", err)
	}

	interpreter := intent.NewInterpreter(logger, intent.NewSynonymTable(root), completer,
		time.Duration(cfg.TextGen.TimeoutMs)*time.Millisecond)
	selector := selection.NewSelector(logger, selection.Options{
		ScoreThreshold: cfg.Selection.ScoreThreshold,
		MinFiles:       cfg.Selection.MinFiles,
		MaxFiles:       cfg.Selection.MaxFiles,
	})
	analyzer := analysis.NewAnalyzer(logger, structure.NewAnalyzer(logger), analysis.Options{
		MaxTraceDepth:      cfg.Analysis.MaxTraceDepth,
		TraceFanout:        cfg.Analysis.TraceFanout,
		ConceptsPerFile:    cfg.Analysis.ConceptsPerFile,
		PatternMinFiles:    cfg.Analysis.PatternMinFiles,
		PatternMaxExamples: cfg.Analysis.PatternMaxExamples,
	})
	generator := artifacts.NewGenerator(logger, artifacts.Options{
		PoolSize:      cfg.Artifacts.PoolSize,
		MaxFlashcards: cfg.Artifacts.MaxFlashcards,
		QuizQuestions: cfg.Artifacts.QuizQuestions,
		Language:      artifacts.Language(cfg.Artifacts.Language),
	})

	orch := orchestrator.New(logger, provider, interpreter, selector, analyzer, generator, tracer,
		orchestrator.Options{
			QuizQuestions:     cfg.Artifacts.QuizQuestions,
			SkipClarification: yesFlag,
		})

	return &pipeline{
		root:        root,
		cfg:         cfg,
		logger:      logger,
		provider:    provider,
		interpreter: interpreter,
		selector:    selector,
		tracer:      tracer,
		store:       store,
		orch:        orch,
	}, nil
}

// printResponse renders any response value in the selected output format.
func printResponse(resp interface{}) error {
	out, err := FormatResponse(resp, OutputFormat(formatFlag))
	if err != nil {
		return err
	}
	_, err = os.Stdout.WriteString(out + "\n")
	return err
}
