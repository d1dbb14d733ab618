//go:build !cgo

package structure

import "context"

// extractor is a stub for non-CGO builds; the line scanner takes over.
type extractor struct{}

func newExtractor() *extractor {
	return nil
}

// IsAvailable returns whether tree-sitter extraction is available.
func IsAvailable() bool {
	return false
}

func (e *extractor) extract(ctx context.Context, source []byte, lang Language) ([]FunctionInfo, []ClassInfo, error) {
	return nil, nil, nil
}
