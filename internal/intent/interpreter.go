package intent

import (
	"context"
	"log/slog"
	"path"
	"regexp"
	"sort"
	"strings"
	"time"

	"repotutor/internal/textgen"
)

// categoryRule maps trigger keywords to a category and a baseline
// confidence. Rules are ordered: the first match wins the primary slot,
// later matches become secondary categories.
type categoryRule struct {
	category   Category
	confidence float64
	triggers   []string
}

var categoryRules = []categoryRule{
	{CategoryInterviewPrep, 0.9, []string{
		"interview", "interview prep", "hiring", "screening", "technical questions"}},
	{CategoryArchitectureOverview, 0.85, []string{
		"architecture", "overview", "high level", "big picture", "structure", "how it fits together", "design"}},
	{CategoryBackendFlow, 0.8, []string{
		"backend", "api", "endpoint", "server", "request flow", "database layer", "service layer"}},
	{CategoryFrontendFlow, 0.8, []string{
		"frontend", "front-end", "ui", "component", "render", "view layer", "styling"}},
	{CategoryFeatureLearning, 0.8, []string{
		"understand", "learn", "feature", "how does", "how do", "works", "flow", "implement", "logic"}},
	{CategoryTechnologyFocus, 0.75, []string{
		"framework", "library", "stack", "technology", "tooling"}},
}

const (
	// genericConfidence is the baseline when no rule matches.
	genericConfidence = 0.5
	// lowConfidenceThreshold marks intents that need clarification.
	lowConfidenceThreshold = 0.6
	// refineBonus is added to confidence after a clarification round.
	refineBonus = 0.15
	// technologyBonus rewards an explicit technology mention.
	technologyBonus = 0.05
)

// Interpreter classifies learning goals. A nil-safe completer may augment
// keywords; every completer failure degrades to the deterministic result.
type Interpreter struct {
	logger    *slog.Logger
	synonyms  *SynonymTable
	completer textgen.Completer
	timeout   time.Duration
}

// NewInterpreter creates an interpreter. completer may be textgen.Noop.
func NewInterpreter(logger *slog.Logger, synonyms *SynonymTable, completer textgen.Completer, timeout time.Duration) *Interpreter {
	if completer == nil {
		completer = textgen.Noop{}
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Interpreter{
		logger:    logger,
		synonyms:  synonyms,
		completer: completer,
		timeout:   timeout,
	}
}

// Interpret classifies text into an Intent. The repo context sharpens
// technology detection and feeds the optional keyword augmentation.
func (in *Interpreter) Interpret(ctx context.Context, text string, repoCtx RepoContext) Intent {
	lower := strings.ToLower(text)

	primary, secondaries, confidence := classify(lower)

	technologies := in.synonyms.Match(text)
	if len(technologies) > 0 {
		confidence += technologyBonus
		if primary == CategoryGenericMaterials {
			primary = CategoryTechnologyFocus
			confidence = 0.75
		}
	}
	if confidence > 1.0 {
		confidence = 1.0
	}

	scope := inferScope(text, technologies, primary)
	level, levelExplicit := inferLevel(lower)

	keywords := extractKeywords(lower)
	keywords = in.augmentKeywords(ctx, text, repoCtx, keywords)

	return Intent{
		RawText:             text,
		PrimaryCategory:     primary,
		SecondaryCategories: secondaries,
		Scope:               scope,
		AudienceLevel:       level,
		Technologies:        technologies,
		Confidence:          confidence,
		Keywords:            keywords,
		levelExplicit:       levelExplicit,
	}
}

// NeedsClarification reports whether the intent is too ambiguous to act on.
func NeedsClarification(it Intent) bool {
	return it.Confidence < lowConfidenceThreshold
}

// GenerateClarifications returns one question per missing or low-signal
// dimension, or a single generic question when every dimension is firm.
func (in *Interpreter) GenerateClarifications(it Intent) []ClarificationQuestion {
	var questions []ClarificationQuestion

	if it.PrimaryCategory == CategoryGenericMaterials || it.Confidence < lowConfidenceThreshold {
		questions = append(questions, ClarificationQuestion{
			Dimension: "category",
			Question:  "What do you want to get out of this repository: a feature walkthrough, an architecture overview, or interview preparation?",
		})
	}
	if it.Scope.Kind == ScopeWholeRepo {
		questions = append(questions, ClarificationQuestion{
			Dimension: "scope",
			Question:  "Should the materials cover the whole repository, or focus on specific folders or files?",
		})
	}
	if len(it.Technologies) == 0 {
		questions = append(questions, ClarificationQuestion{
			Dimension: "technologies",
			Question:  "Are there particular technologies or frameworks you want to focus on?",
		})
	}
	if !it.levelExplicit {
		questions = append(questions, ClarificationQuestion{
			Dimension: "level",
			Question:  "How experienced are you with this kind of codebase: beginner, intermediate, or advanced?",
		})
	}

	if len(questions) == 0 {
		questions = append(questions, ClarificationQuestion{
			Dimension: "general",
			Question:  "Anything specific you would like the learning materials to emphasize?",
		})
	}
	return questions
}

// Refine folds clarification answers into a new Intent. The original is
// never mutated: any non-empty technologies or narrowed scope the refined
// pass did not find are preserved, and confidence gains a fixed bonus.
func (in *Interpreter) Refine(ctx context.Context, it Intent, answers []string, repoCtx RepoContext) Intent {
	combined := it.RawText + " " + strings.Join(answers, " ")
	refined := in.Interpret(ctx, combined, repoCtx)

	if len(refined.Technologies) == 0 {
		refined.Technologies = it.Technologies
	}
	if refined.Scope.Kind == ScopeWholeRepo && it.Scope.Kind != ScopeWholeRepo {
		refined.Scope = it.Scope
	}
	if refined.PrimaryCategory == CategoryGenericMaterials && it.PrimaryCategory != CategoryGenericMaterials {
		refined.PrimaryCategory = it.PrimaryCategory
	}

	refined.Confidence = it.Confidence + refineBonus
	if refined.Confidence > 1.0 {
		refined.Confidence = 1.0
	}
	return refined
}

// classify runs the ordered rule table over the lowered text.
func classify(lower string) (Category, []Category, float64) {
	primary := CategoryGenericMaterials
	confidence := genericConfidence
	var secondaries []Category

	for _, rule := range categoryRules {
		matched := false
		for _, trigger := range rule.triggers {
			if strings.Contains(lower, trigger) {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}
		if primary == CategoryGenericMaterials {
			primary = rule.category
			confidence = rule.confidence
		} else {
			secondaries = append(secondaries, rule.category)
		}
	}

	return primary, secondaries, confidence
}

var pathLike = regexp.MustCompile(`[\w.-]+/[\w./-]*|[\w-]+\.(?:py|go|js|jsx|ts|tsx|rs|java|kt)\b`)

// inferScope looks for path-like substrings in the goal text. A literal
// file name narrows to specific files, a folder reference to specific
// folders; a technology mention without paths narrows to that technology.
func inferScope(text string, technologies []string, primary Category) Scope {
	scope := Scope{Kind: ScopeWholeRepo, IncludePaths: []string{}, ExcludePaths: []string{}}

	matches := pathLike.FindAllString(text, -1)
	var files, folders []string
	for _, m := range matches {
		m = strings.TrimSuffix(m, "/")
		if m == "" {
			continue
		}
		if ext := path.Ext(m); ext != "" && len(ext) <= 5 && !strings.Contains(strings.TrimSuffix(m, ext), ".") {
			files = append(files, m)
		} else {
			folders = append(folders, m)
		}
	}

	switch {
	case len(files) > 0:
		scope.Kind = ScopeSpecificFiles
		scope.IncludePaths = append(files, folders...)
	case len(folders) > 0:
		scope.Kind = ScopeSpecificFolders
		scope.IncludePaths = folders
	case len(technologies) > 0 && primary == CategoryTechnologyFocus:
		scope.Kind = ScopeTechnology
	}

	return scope
}

// inferLevel detects an explicit audience level; default is intermediate.
func inferLevel(lower string) (AudienceLevel, bool) {
	beginnerSignals := []string{"beginner", "new to", "first time", "junior", "explain simply", "basics"}
	advancedSignals := []string{"advanced", "deep dive", "internals", "senior", "expert", "in depth"}

	for _, s := range beginnerSignals {
		if strings.Contains(lower, s) {
			return LevelBeginner, true
		}
	}
	for _, s := range advancedSignals {
		if strings.Contains(lower, s) {
			return LevelAdvanced, true
		}
	}
	return LevelIntermediate, false
}

var stopwords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "of": {}, "to": {},
	"in": {}, "on": {}, "for": {}, "with": {}, "how": {}, "do": {}, "does": {},
	"i": {}, "me": {}, "my": {}, "want": {}, "like": {}, "this": {}, "that": {},
	"is": {}, "are": {}, "it": {}, "be": {}, "can": {}, "about": {}, "what": {},
}

var wordPattern = regexp.MustCompile(`[a-z0-9_]+`)

func tokenize(lower string) []string {
	return wordPattern.FindAllString(lower, -1)
}

// extractKeywords keeps the meaningful tokens of the goal, deduplicated
// and sorted for stable downstream scoring.
func extractKeywords(lower string) []string {
	seen := map[string]struct{}{}
	var keywords []string
	for _, w := range tokenize(lower) {
		if len(w) < 3 {
			continue
		}
		if _, stop := stopwords[w]; stop {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		keywords = append(keywords, w)
	}
	sort.Strings(keywords)
	return keywords
}

const maxAugmentedKeywords = 15

// augmentKeywords asks the completer for repository-aware synonyms. Any
// failure (disabled completer, timeout, unusable output) returns the
// original set untouched.
func (in *Interpreter) augmentKeywords(ctx context.Context, text string, repoCtx RepoContext, keywords []string) []string {
	prompt := buildAugmentPrompt(text, repoCtx)

	callCtx, cancel := context.WithTimeout(ctx, in.timeout)
	defer cancel()

	response, err := in.completer.Complete(callCtx, prompt, 128, 0.2)
	if err != nil {
		in.logger.Debug("keyword augmentation unavailable", "error", err)
		return keywords
	}

	seen := make(map[string]struct{}, len(keywords))
	for _, k := range keywords {
		seen[k] = struct{}{}
	}

	added := 0
	for _, raw := range strings.FieldsFunc(response, func(r rune) bool {
		return r == ',' || r == '\n' || r == ';'
	}) {
		word := strings.ToLower(strings.TrimSpace(raw))
		word = strings.Trim(word, ".-*\"'` ")
		if word == "" || strings.ContainsAny(word, " \t") || len(word) < 3 {
			continue
		}
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}
		keywords = append(keywords, word)
		added++
		if added >= maxAugmentedKeywords {
			break
		}
	}

	sort.Strings(keywords)
	return keywords
}

func buildAugmentPrompt(text string, repoCtx RepoContext) string {
	var b strings.Builder
	b.WriteString("Suggest 10-15 single-word synonyms or related code identifiers for this learning goal, comma separated.\n")
	b.WriteString("Goal: ")
	b.WriteString(text)
	if len(repoCtx.Technologies) > 0 {
		b.WriteString("\nRepository technologies: ")
		b.WriteString(strings.Join(repoCtx.Technologies, ", "))
	}
	if len(repoCtx.TopLevelDirs) > 0 {
		b.WriteString("\nTop-level folders: ")
		b.WriteString(strings.Join(repoCtx.TopLevelDirs, ", "))
	}
	b.WriteString("\nAnswer with only the comma-separated words.")
	return b.String()
}
