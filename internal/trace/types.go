// Package trace maintains the bidirectional mapping between generated
// learning artifacts and the code they cite. Every registration verifies
// evidence against the repository on disk; artifacts are never silently
// lost, but invalid grounding is never asserted either.
package trace

import (
	"time"

	"repotutor/internal/analysis"
)

// ArtifactTrace is the stored record for one artifact.
type ArtifactTrace struct {
	ArtifactID   string                  `json:"artifactId"`
	ArtifactType string                  `json:"artifactType"`
	Evidence     []analysis.CodeEvidence `json:"evidence"`
	Valid        bool                    `json:"valid"`
	Reason       string                  `json:"reason,omitempty"`
	Outdated     bool                    `json:"outdated"`
	RegisteredAt time.Time               `json:"registeredAt"`

	// LastValidatedAt is zero until the artifact's evidence has been
	// re-checked against current file content.
	LastValidatedAt time.Time `json:"lastValidatedAt"`
}

// evidenceSpan is what gets stored under file keys for reverse lookup.
type evidenceSpan struct {
	Start int `json:"start"`
	End   int `json:"end"`
}
