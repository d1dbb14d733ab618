package trace

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// resolvePath maps an evidence file path to a path relative to the active
// root. It tries the direct join first, then the lowercase index, so
// case-sloppy citations from generated text still resolve.
func (m *Manager) resolvePath(path string) (string, bool) {
	rel := filepath.ToSlash(filepath.Clean(path))
	if filepath.IsAbs(path) {
		r, err := filepath.Rel(m.root, path)
		if err != nil || strings.HasPrefix(r, "..") {
			return "", false
		}
		rel = filepath.ToSlash(r)
	}
	if _, err := os.Stat(filepath.Join(m.root, filepath.FromSlash(rel))); err == nil {
		return rel, true
	}
	if actual, ok := m.pathIndex[strings.ToLower(rel)]; ok {
		return actual, true
	}
	return "", false
}

// buildPathIndex walks the root once and maps lowercase relative paths to
// their actual spelling. Called on construction and again only when the
// root changes.
func buildPathIndex(root string) map[string]string {
	index := map[string]string{}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if d.Name() == ".git" || d.Name() == "node_modules" {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		slashed := filepath.ToSlash(rel)
		index[strings.ToLower(slashed)] = slashed
		return nil
	})
	return index
}

// fileContent reads a root-relative file through the LRU cache.
func (m *Manager) fileContent(rel string) (string, bool) {
	if content, ok := m.contents.Get(rel); ok {
		return content, true
	}
	data, err := os.ReadFile(filepath.Join(m.root, filepath.FromSlash(rel)))
	if err != nil {
		return "", false
	}
	content := string(data)
	m.contents.Add(rel, content)
	return content, true
}

// snippetFor extracts the cited line range from content. Lines are
// 1-indexed and the range is clamped to the file.
func snippetFor(content string, start, end int) string {
	lines := strings.Split(content, "\n")
	if start < 1 {
		start = 1
	}
	if end > len(lines) {
		end = len(lines)
	}
	if start > len(lines) || end < start {
		return ""
	}
	return strings.Join(lines[start-1:end], "\n")
}
