package repo

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

// maxFileSize is the largest file the walker will inventory (1 MB).
const maxFileSize = 1 << 20

// defaultSkipDirs are pruned even without a .gitignore.
var defaultSkipDirs = map[string]struct{}{
	".git":          {},
	".hg":           {},
	".svn":          {},
	"node_modules":  {},
	"vendor":        {},
	"__pycache__":   {},
	".idea":         {},
	".vscode":       {},
	".repotutor":    {},
	"venv":          {},
	".venv":         {},
	"dist":          {},
	"build":         {},
	"target":        {},
	".tox":          {},
	".mypy_cache":   {},
	".pytest_cache": {},
}

// DirProvider serves the file inventory of a directory tree, honoring
// .gitignore patterns when a .gitignore exists at the root.
type DirProvider struct {
	root string
	gi   *ignore.GitIgnore
}

// NewDirProvider creates a provider rooted at root. The root is resolved
// to an absolute path so relative descriptors stay stable regardless of
// the process working directory.
func NewDirProvider(root string) (*DirProvider, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	return &DirProvider{
		root: abs,
		gi:   loadGitignore(abs),
	}, nil
}

// Root returns the absolute repository root.
func (p *DirProvider) Root() string {
	return p.root
}

// Files walks the tree and returns descriptors for every regular file
// that survives the ignore rules, sorted by path.
func (p *DirProvider) Files() ([]FileDescriptor, error) {
	var results []FileDescriptor

	err := filepath.WalkDir(p.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip unreadable entries, keep walking
		}

		name := d.Name()

		if d.IsDir() {
			if path == p.root {
				return nil
			}
			if _, skip := defaultSkipDirs[name]; skip {
				return filepath.SkipDir
			}
			rel, relErr := filepath.Rel(p.root, path)
			if relErr == nil && p.gi != nil && p.gi.MatchesPath(filepath.ToSlash(rel)) {
				return filepath.SkipDir
			}
			return nil
		}

		// Skip symlinks.
		if d.Type()&fs.ModeSymlink != 0 {
			return nil
		}

		rel, relErr := filepath.Rel(p.root, path)
		if relErr != nil {
			return nil
		}
		relSlash := filepath.ToSlash(rel)

		if p.gi != nil && p.gi.MatchesPath(relSlash) {
			return nil
		}

		info, infoErr := d.Info()
		if infoErr != nil {
			return nil
		}
		if info.Size() > maxFileSize {
			return nil
		}

		lineCount := 0
		if data, readErr := os.ReadFile(path); readErr == nil {
			lineCount = countLines(data)
		}

		results = append(results, FileDescriptor{
			Path:      relSlash,
			Name:      name,
			Extension: strings.ToLower(filepath.Ext(name)),
			SizeBytes: info.Size(),
			LineCount: lineCount,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Path < results[j].Path
	})
	return results, nil
}

// ReadFile returns the text of a repo-relative path.
func (p *DirProvider) ReadFile(path string) (string, error) {
	full := filepath.Join(p.root, filepath.FromSlash(path))
	data, err := os.ReadFile(full)
	if err != nil {
		if os.IsNotExist(err) {
			return "", &NotFoundError{Path: path}
		}
		return "", err
	}
	return string(data), nil
}

func loadGitignore(root string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	return gi
}
