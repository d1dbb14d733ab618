// Package intent turns a free-text learning goal into a structured Intent.
// Classification is deterministic and keyword-driven so the pipeline works
// without any text-generation dependency; an optional completer may enrich
// the keyword set.
package intent

// Category is the primary learning goal classification.
type Category string

const (
	CategoryFeatureLearning      Category = "feature-learning"
	CategoryInterviewPrep        Category = "interview-prep"
	CategoryArchitectureOverview Category = "architecture-overview"
	CategoryTechnologyFocus      Category = "technology-focus"
	CategoryBackendFlow          Category = "backend-flow"
	CategoryFrontendFlow         Category = "frontend-flow"
	CategoryGenericMaterials     Category = "generic-materials"
)

// ScopeKind narrows which part of the repository the goal targets.
type ScopeKind string

const (
	ScopeWholeRepo       ScopeKind = "whole-repo"
	ScopeSpecificFolders ScopeKind = "specific-folders"
	ScopeSpecificFiles   ScopeKind = "specific-files"
	ScopeTechnology      ScopeKind = "technology-focus"
)

// Scope describes the path or technology focus inferred from the goal.
type Scope struct {
	Kind         ScopeKind `json:"kind"`
	IncludePaths []string  `json:"includePaths"`
	ExcludePaths []string  `json:"excludePaths"`
}

// AudienceLevel is the target learner level.
type AudienceLevel string

const (
	LevelBeginner     AudienceLevel = "beginner"
	LevelIntermediate AudienceLevel = "intermediate"
	LevelAdvanced     AudienceLevel = "advanced"
)

// Intent is the structured representation of a learning goal. It is
// immutable once handed downstream; Refine returns a new value.
type Intent struct {
	RawText             string        `json:"rawText"`
	PrimaryCategory     Category      `json:"primaryCategory"`
	SecondaryCategories []Category    `json:"secondaryCategories"`
	Scope               Scope         `json:"scope"`
	AudienceLevel       AudienceLevel `json:"audienceLevel"`
	Technologies        []string      `json:"technologies"`
	Confidence          float64       `json:"confidence"`
	Keywords            []string      `json:"keywords"`

	// levelExplicit records whether the audience level came from the text
	// rather than the default; clarification generation needs this.
	levelExplicit bool
}

// RepoContext is a lightweight summary of the repository handed to the
// interpreter so classification and augmentation can be repository-aware.
type RepoContext struct {
	Technologies []string `json:"technologies"`
	TopLevelDirs []string `json:"topLevelDirs"`
	FileCount    int      `json:"fileCount"`
}

// ClarificationQuestion asks the user to firm up one intent dimension.
type ClarificationQuestion struct {
	Dimension string `json:"dimension"` // "category", "scope", "technologies", "level"
	Question  string `json:"question"`
}
