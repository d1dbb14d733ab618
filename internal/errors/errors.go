// Package errors defines stable error codes and actionable suggestions for
// every failure mode of the learning pipeline.
package errors

import (
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// RepoEmpty indicates the repository contains no files at all
	RepoEmpty ErrorCode = "REPO_EMPTY"
	// NoCodeFiles indicates the repository contains no recognized code files
	NoCodeFiles ErrorCode = "NO_CODE_FILES"
	// IntentAmbiguous indicates the learning goal could not be classified confidently
	IntentAmbiguous ErrorCode = "INTENT_AMBIGUOUS"
	// FileUnreadable indicates a selected file could not be read
	FileUnreadable ErrorCode = "FILE_UNREADABLE"
	// GenerationFailed indicates artifact synthesis fell back to basic output
	GenerationFailed ErrorCode = "GENERATION_FAILED"
	// EvidenceInvalid indicates evidence failed verification against the repository
	EvidenceInvalid ErrorCode = "EVIDENCE_INVALID"
	// ArtifactNotFound indicates no trace exists for an artifact ID
	ArtifactNotFound ErrorCode = "ARTIFACT_NOT_FOUND"
	// StoreUnavailable indicates the traceability store could not be opened
	StoreUnavailable ErrorCode = "STORE_UNAVAILABLE"
	// Timeout indicates an optional external call timed out
	Timeout ErrorCode = "TIMEOUT"
	// InternalError indicates unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// Suggestion represents an actionable follow-up for an error
type Suggestion struct {
	Label   string `json:"label"`
	Command string `json:"command,omitempty"`
}

// PipelineError represents a pipeline error with code, message, and suggestions
type PipelineError struct {
	Code        ErrorCode    `json:"code"`
	Message     string       `json:"message"`
	Details     interface{}  `json:"details,omitempty"`
	Suggestions []Suggestion `json:"suggestions,omitempty"`
	cause       error        // Underlying error (not exported to JSON)
}

// New creates a new PipelineError
func New(code ErrorCode, message string, cause error) *PipelineError {
	return &PipelineError{
		Code:        code,
		Message:     message,
		cause:       cause,
		Suggestions: SuggestionsFor(code),
	}
}

// Error implements the error interface
func (e *PipelineError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *PipelineError) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *PipelineError) WithDetails(details interface{}) *PipelineError {
	e.Details = details
	return e
}

// errorSuggestions maps error codes to actionable follow-ups shown to the user
var errorSuggestions = map[ErrorCode][]Suggestion{
	RepoEmpty: {
		{Label: "Check the repository path", Command: "repotutor files --repo <path>"},
	},
	NoCodeFiles: {
		{Label: "List what was scanned", Command: "repotutor files"},
		{Label: "Include specific folders in the goal, e.g. \"learn the code under src/\""},
	},
	IntentAmbiguous: {
		{Label: "Broaden or sharpen the goal, e.g. \"understand the login flow\""},
		{Label: "Answer the clarification questions", Command: "repotutor intent --clarify"},
	},
	GenerationFailed: {
		{Label: "Re-run with debug logging", Command: "repotutor analyze --log-level debug"},
	},
	EvidenceInvalid: {
		{Label: "Re-run the analysis so evidence is rebuilt against current files", Command: "repotutor analyze"},
	},
	StoreUnavailable: {
		{Label: "Initialize the workspace", Command: "repotutor init"},
	},
}

// SuggestionsFor returns actionable suggestions for an error code
func SuggestionsFor(code ErrorCode) []Suggestion {
	if s, ok := errorSuggestions[code]; ok {
		return s
	}
	return nil
}
