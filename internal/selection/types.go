// Package selection ranks repository files against a learning intent. The
// selector is a cascade of stages, each widening the net only when the
// previous stage under-produces, so any repository with at least one code
// file yields a non-empty selection.
package selection

import (
	"repotutor/internal/repo"
)

// Role is the coarse architectural classification of a selected file.
type Role string

const (
	RoleEntryPoint Role = "entry-point"
	RoleCoreLogic  Role = "core-logic"
	RoleModel      Role = "model"
	RoleView       Role = "view"
	RoleController Role = "controller"
	RoleUtility    Role = "utility"
)

// rolePriority orders roles for the secondary sort key; lower is more
// important when scores tie.
var rolePriority = map[Role]int{
	RoleEntryPoint: 0,
	RoleModel:      1,
	RoleView:       2,
	RoleController: 3,
	RoleUtility:    4,
	RoleCoreLogic:  5,
}

// FileSelection is one ranked file with the evidence for its ranking.
type FileSelection struct {
	File           repo.FileDescriptor `json:"file"`
	RelevanceScore float64             `json:"relevanceScore"`
	Role           Role                `json:"role"`
	Rationale      string              `json:"rationale"`
	Priority       int                 `json:"priority"` // 1-based rank
}

// SelectionResult is the selector's complete output.
type SelectionResult struct {
	SelectedFiles []FileSelection `json:"selectedFiles"`
	ExcludedCount int             `json:"excludedCount"`
	TotalScanned  int             `json:"totalScanned"`
	Summary       string          `json:"summary"`
}
