package selection

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"repotutor/internal/intent"
	"repotutor/internal/repo"
	"repotutor/internal/structure"
)

// Options tunes the selector. Zero values fall back to the defaults the
// cascade was designed around.
type Options struct {
	ScoreThreshold float64 // minimum keyword score, default 0.3
	MinFiles       int     // cascade continues below this count, default 5
	MaxFiles       int     // hard cap on selected files, default 15
}

func (o Options) withDefaults() Options {
	if o.ScoreThreshold <= 0 {
		o.ScoreThreshold = 0.3
	}
	if o.MinFiles <= 0 {
		o.MinFiles = 5
	}
	if o.MaxFiles <= 0 {
		o.MaxFiles = 15
	}
	return o
}

// Selector ranks repository files against an intent.
type Selector struct {
	logger *slog.Logger
	opts   Options
}

// NewSelector creates a selector.
func NewSelector(logger *slog.Logger, opts Options) *Selector {
	return &Selector{logger: logger, opts: opts.withDefaults()}
}

// Select runs the cascade: exclusion filter, keyword scoring, entry-point
// backfill, source-folder backfill, last-resort any-code-file. Later
// stages run only while the selection is under MinFiles (or empty, for
// the last resort).
func (s *Selector) Select(it intent.Intent, files []repo.FileDescriptor) SelectionResult {
	result := SelectionResult{
		SelectedFiles: []FileSelection{},
		TotalScanned:  len(files),
	}
	if len(files) == 0 {
		result.Summary = "Scanned 0 files; nothing to select."
		return result
	}

	candidates, excluded := excludeStage(files, it)
	result.ExcludedCount = excluded

	selected := keywordStage(candidates, it, s.opts.ScoreThreshold, s.opts.MaxFiles)

	if len(selected) < s.opts.MinFiles {
		selected = entryPointBackfill(candidates, selected, s.opts.MaxFiles)
	}
	if len(selected) < s.opts.MinFiles {
		selected = sourceFolderBackfill(candidates, selected, s.opts.MaxFiles)
	}
	if len(selected) == 0 {
		selected = lastResortStage(candidates, s.opts.MaxFiles)
	}

	sortSelections(selected)
	for i := range selected {
		selected[i].Priority = i + 1
	}
	result.SelectedFiles = selected
	result.Summary = fmt.Sprintf("Selected %d of %d scanned files (%d excluded by filters).",
		len(selected), len(files), excluded)

	s.logger.Debug("file selection complete",
		"scanned", len(files), "excluded", excluded, "selected", len(selected))
	return result
}

// excludedDirNames mark dependency/build/VCS/cache directories.
var excludedDirNames = map[string]struct{}{
	"node_modules": {}, "vendor": {}, "dist": {}, "build": {}, "target": {},
	".git": {}, "__pycache__": {}, ".venv": {}, "venv": {}, "coverage": {},
	".cache": {}, ".idea": {}, ".vscode": {}, "out": {},
}

// compiledExtensions mark compiled or binary artifacts.
var compiledExtensions = map[string]struct{}{
	".pyc": {}, ".pyo": {}, ".class": {}, ".o": {}, ".a": {}, ".so": {},
	".dll": {}, ".exe": {}, ".bin": {}, ".wasm": {}, ".map": {},
	".png": {}, ".jpg": {}, ".jpeg": {}, ".gif": {}, ".ico": {}, ".pdf": {},
	".zip": {}, ".gz": {}, ".jar": {},
}

// configExtensions are dropped unless the goal mentions configuration.
var configExtensions = map[string]struct{}{
	".json": {}, ".yaml": {}, ".yml": {}, ".toml": {}, ".ini": {},
	".cfg": {}, ".env": {}, ".lock": {}, ".properties": {},
}

// excludeStage drops dependency/build/VCS/cache paths and binary
// artifacts, unless a path is explicitly named in the intent scope.
// Config-extension files survive only when the goal mentions config.
func excludeStage(files []repo.FileDescriptor, it intent.Intent) ([]repo.FileDescriptor, int) {
	wantsConfig := strings.Contains(strings.ToLower(it.RawText), "config")

	var kept []repo.FileDescriptor
	excluded := 0
	for _, f := range files {
		if inIncludePaths(f, it.Scope.IncludePaths) {
			kept = append(kept, f)
			continue
		}
		if underExcludedDir(f.Path) {
			excluded++
			continue
		}
		if _, bin := compiledExtensions[f.Extension]; bin {
			excluded++
			continue
		}
		if _, cfg := configExtensions[f.Extension]; cfg && !wantsConfig {
			excluded++
			continue
		}
		kept = append(kept, f)
	}
	return kept, excluded
}

func underExcludedDir(p string) bool {
	for _, seg := range strings.Split(p, "/") {
		if _, ok := excludedDirNames[strings.ToLower(seg)]; ok {
			return true
		}
	}
	return false
}

func inIncludePaths(f repo.FileDescriptor, includes []string) bool {
	for _, inc := range includes {
		inc = strings.TrimSuffix(inc, "/")
		if inc == "" {
			continue
		}
		if f.Path == inc || f.Name == inc || strings.HasPrefix(f.Path, inc+"/") {
			return true
		}
	}
	return false
}

// Scoring weights for the keyword stage.
const (
	weightFilename    = 0.4
	weightPath        = 0.2
	boostEntryPoint   = 0.2
	boostSourceFolder = 0.1
	boostScopedPath   = 0.3
)

// keywordStage scores every candidate by keyword presence and structural
// boosts, accepting those above the threshold.
func keywordStage(candidates []repo.FileDescriptor, it intent.Intent, threshold float64, limit int) []FileSelection {
	var selected []FileSelection

	terms := append([]string{}, it.Keywords...)
	terms = append(terms, it.Technologies...)

	for _, f := range candidates {
		score, signals := scoreFile(f, terms, it.Scope.IncludePaths)
		if score < threshold {
			continue
		}
		selected = append(selected, FileSelection{
			File:           f,
			RelevanceScore: score,
			Role:           classifyRole(f),
			Rationale:      strings.Join(signals, "; "),
		})
	}

	sortSelections(selected)
	if len(selected) > limit {
		selected = selected[:limit]
	}
	return selected
}

// scoreFile accumulates the keyword score and the signals that produced
// it. The score is clamped to [0, 1].
func scoreFile(f repo.FileDescriptor, terms []string, includes []string) (float64, []string) {
	lowerName := strings.ToLower(f.Name)
	lowerPath := strings.ToLower(f.Path)

	score := 0.0
	var signals []string

	for _, term := range terms {
		if term == "" {
			continue
		}
		if strings.Contains(lowerName, term) {
			score += weightFilename
			signals = append(signals, fmt.Sprintf("keyword %q in filename", term))
		} else if strings.Contains(lowerPath, term) {
			score += weightPath
			signals = append(signals, fmt.Sprintf("keyword %q in path", term))
		}
	}

	if isEntryPoint(f) {
		score += boostEntryPoint
		signals = append(signals, "entry-point filename")
	}
	if underSourceFolder(f) {
		score += boostSourceFolder
		signals = append(signals, "under source folder")
	}
	if inIncludePaths(f, includes) {
		score += boostScopedPath
		signals = append(signals, "named in goal scope")
	}

	if score > 1.0 {
		score = 1.0
	}
	return score, signals
}

// entryPointBackfill adds unselected entry-point files up to the cap.
func entryPointBackfill(candidates []repo.FileDescriptor, selected []FileSelection, limit int) []FileSelection {
	have := selectedPaths(selected)
	for _, f := range candidates {
		if len(selected) >= limit {
			break
		}
		if _, ok := have[f.Path]; ok {
			continue
		}
		if !isEntryPoint(f) || !structure.IsCodeExtension(f.Extension) {
			continue
		}
		selected = append(selected, FileSelection{
			File:           f,
			RelevanceScore: 0.25,
			Role:           RoleEntryPoint,
			Rationale:      "entry-point backfill: canonical entry-point filename",
		})
		have[f.Path] = struct{}{}
	}
	return selected
}

// sourceFolderBackfill adds unselected code files under source folders.
// Repo-root code files count as source-located too, so small flat
// repositories still fill up here rather than falling to the last resort.
func sourceFolderBackfill(candidates []repo.FileDescriptor, selected []FileSelection, limit int) []FileSelection {
	have := selectedPaths(selected)
	for _, f := range candidates {
		if len(selected) >= limit {
			break
		}
		if _, ok := have[f.Path]; ok {
			continue
		}
		atRoot := !strings.Contains(f.Path, "/")
		if (!underSourceFolder(f) && !atRoot) || !structure.IsCodeExtension(f.Extension) {
			continue
		}
		selected = append(selected, FileSelection{
			File:           f,
			RelevanceScore: 0.2,
			Role:           classifyRole(f),
			Rationale:      "source-folder backfill: code file in a conventional source location",
		})
		have[f.Path] = struct{}{}
	}
	return selected
}

// lastResortStage accepts any recognized code file. It only runs when
// everything else produced nothing, which is what guarantees the
// non-empty invariant for repositories with at least one code file.
func lastResortStage(candidates []repo.FileDescriptor, limit int) []FileSelection {
	var selected []FileSelection
	for _, f := range candidates {
		if len(selected) >= limit {
			break
		}
		if !structure.IsCodeExtension(f.Extension) {
			continue
		}
		selected = append(selected, FileSelection{
			File:           f,
			RelevanceScore: 0.1,
			Role:           classifyRole(f),
			Rationale:      "last resort: recognized code file",
		})
	}
	return selected
}

func selectedPaths(selected []FileSelection) map[string]struct{} {
	have := make(map[string]struct{}, len(selected))
	for _, s := range selected {
		have[s.File.Path] = struct{}{}
	}
	return have
}

// sortSelections orders by descending score, then role priority, then
// path for a stable total order.
func sortSelections(selected []FileSelection) {
	sort.SliceStable(selected, func(i, j int) bool {
		if selected[i].RelevanceScore != selected[j].RelevanceScore {
			return selected[i].RelevanceScore > selected[j].RelevanceScore
		}
		pi, pj := rolePriority[selected[i].Role], rolePriority[selected[j].Role]
		if pi != pj {
			return pi < pj
		}
		return selected[i].File.Path < selected[j].File.Path
	})
}
