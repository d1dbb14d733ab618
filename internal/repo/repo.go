// Package repo exposes the repository file inventory consumed by the
// learning pipeline. The pipeline never walks the filesystem itself; it
// only sees FileDescriptors and ReadFile.
package repo

import (
	"bytes"
	"fmt"
)

// FileDescriptor identifies one repository file. Path is repo-relative
// with forward slashes and is the stable identifier used everywhere
// downstream.
type FileDescriptor struct {
	Path      string `json:"path"`
	Name      string `json:"name"`
	Extension string `json:"extension"`
	SizeBytes int64  `json:"sizeBytes"`
	LineCount int    `json:"lineCount"`
}

// Provider is the repository collaborator interface. "Not found" is
// signalled by NotFoundError and is never fatal to the pipeline.
type Provider interface {
	Root() string
	Files() ([]FileDescriptor, error)
	ReadFile(path string) (string, error)
}

// NotFoundError signals a path that does not exist in the repository.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("file not found in repository: %s", e.Path)
}

// IsNotFound reports whether err marks a missing repository file.
func IsNotFound(err error) bool {
	_, ok := err.(*NotFoundError)
	return ok
}

// countLines counts newline-terminated lines plus a trailing partial line.
func countLines(data []byte) int {
	if len(data) == 0 {
		return 0
	}
	n := bytes.Count(data, []byte{'\n'})
	if data[len(data)-1] != '\n' {
		n++
	}
	return n
}
