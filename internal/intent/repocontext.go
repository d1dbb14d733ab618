package intent

import (
	"encoding/json"
	"sort"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"repotutor/internal/repo"
)

// BuildRepoContext summarizes the repository for the interpreter: which
// technologies its manifests declare and what the top-level layout looks
// like. Manifest parse failures are ignored; the context is best-effort.
func BuildRepoContext(provider repo.Provider, files []repo.FileDescriptor) RepoContext {
	ctx := RepoContext{
		Technologies: []string{},
		TopLevelDirs: []string{},
		FileCount:    len(files),
	}

	techSet := map[string]struct{}{}
	dirSet := map[string]struct{}{}

	for _, f := range files {
		if i := strings.IndexByte(f.Path, '/'); i > 0 {
			dirSet[f.Path[:i]] = struct{}{}
		}

		switch f.Name {
		case "go.mod":
			techSet["go"] = struct{}{}
		case "package.json":
			techSet["javascript"] = struct{}{}
			for _, dep := range packageJSONDeps(provider, f.Path) {
				if canon, ok := wellKnownDeps[dep]; ok {
					techSet[canon] = struct{}{}
				}
			}
		case "pyproject.toml", "requirements.txt", "setup.py":
			techSet["python"] = struct{}{}
			if f.Name == "pyproject.toml" {
				for _, dep := range pyprojectDeps(provider, f.Path) {
					if canon, ok := wellKnownDeps[dep]; ok {
						techSet[canon] = struct{}{}
					}
				}
			}
		case "Cargo.toml":
			techSet["rust"] = struct{}{}
			for _, dep := range cargoDeps(provider, f.Path) {
				if canon, ok := wellKnownDeps[dep]; ok {
					techSet[canon] = struct{}{}
				}
			}
		case "pom.xml", "build.gradle", "build.gradle.kts":
			techSet["java"] = struct{}{}
		case "Dockerfile", "docker-compose.yml", "docker-compose.yaml":
			techSet["docker"] = struct{}{}
		}

		switch f.Extension {
		case ".tsx", ".jsx":
			techSet["react"] = struct{}{}
		case ".ts":
			techSet["typescript"] = struct{}{}
		case ".vue":
			techSet["vue"] = struct{}{}
		case ".kt":
			techSet["kotlin"] = struct{}{}
		}
	}

	for t := range techSet {
		ctx.Technologies = append(ctx.Technologies, t)
	}
	sort.Strings(ctx.Technologies)
	for d := range dirSet {
		ctx.TopLevelDirs = append(ctx.TopLevelDirs, d)
	}
	sort.Strings(ctx.TopLevelDirs)

	return ctx
}

// wellKnownDeps maps manifest dependency names to canonical technologies.
var wellKnownDeps = map[string]string{
	"react":        "react",
	"react-dom":    "react",
	"next":         "react",
	"vue":          "vue",
	"express":      "javascript",
	"typescript":   "typescript",
	"django":       "python",
	"flask":        "python",
	"fastapi":      "python",
	"sqlalchemy":   "sql",
	"psycopg2":     "sql",
	"redis":        "redis",
	"kafka-python": "kafka",
	"tokio":        "rust",
	"graphql":      "graphql",
}

func packageJSONDeps(provider repo.Provider, path string) []string {
	text, err := provider.ReadFile(path)
	if err != nil {
		return nil
	}
	var manifest struct {
		Dependencies    map[string]string `json:"dependencies"`
		DevDependencies map[string]string `json:"devDependencies"`
	}
	if err := json.Unmarshal([]byte(text), &manifest); err != nil {
		return nil
	}
	var deps []string
	for name := range manifest.Dependencies {
		deps = append(deps, strings.ToLower(name))
	}
	for name := range manifest.DevDependencies {
		deps = append(deps, strings.ToLower(name))
	}
	return deps
}

func pyprojectDeps(provider repo.Provider, path string) []string {
	text, err := provider.ReadFile(path)
	if err != nil {
		return nil
	}
	var manifest struct {
		Project struct {
			Dependencies []string `toml:"dependencies"`
		} `toml:"project"`
		Tool struct {
			Poetry struct {
				Dependencies map[string]interface{} `toml:"dependencies"`
			} `toml:"poetry"`
		} `toml:"tool"`
	}
	if err := toml.Unmarshal([]byte(text), &manifest); err != nil {
		return nil
	}

	var deps []string
	for _, spec := range manifest.Project.Dependencies {
		// Specs look like "flask>=2.0"; keep the leading name token.
		name := strings.FieldsFunc(spec, func(r rune) bool {
			return r == '>' || r == '<' || r == '=' || r == '[' || r == ' ' || r == '~' || r == '!'
		})
		if len(name) > 0 {
			deps = append(deps, strings.ToLower(name[0]))
		}
	}
	for name := range manifest.Tool.Poetry.Dependencies {
		deps = append(deps, strings.ToLower(name))
	}
	return deps
}

func cargoDeps(provider repo.Provider, path string) []string {
	text, err := provider.ReadFile(path)
	if err != nil {
		return nil
	}
	var manifest struct {
		Dependencies map[string]interface{} `toml:"dependencies"`
	}
	if err := toml.Unmarshal([]byte(text), &manifest); err != nil {
		return nil
	}
	var deps []string
	for name := range manifest.Dependencies {
		deps = append(deps, strings.ToLower(name))
	}
	return deps
}
