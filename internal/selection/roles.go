package selection

import (
	"path"
	"strings"

	"repotutor/internal/repo"
)

// entryPointNames are canonical entry-point base names (without extension).
var entryPointNames = map[string]struct{}{
	"main": {}, "app": {}, "index": {}, "server": {}, "cli": {}, "manage": {},
	"application": {},
}

// sourceFolders are conventional source directory names.
var sourceFolders = map[string]struct{}{
	"src": {}, "lib": {}, "app": {}, "internal": {}, "pkg": {}, "cmd": {},
	"server": {}, "api": {}, "core": {},
}

// roleRule assigns a role when any signal appears in the path.
// First match wins; the order is entry-point > model > view > controller
// > utility, with core-logic as the default.
var roleRules = []struct {
	role    Role
	signals []string
}{
	{RoleModel, []string{"model", "schema", "entity", "entities", "domain", "dto"}},
	{RoleView, []string{"view", "component", "template", "page", "screen", "widget"}},
	{RoleController, []string{"controller", "handler", "route", "router", "endpoint", "resource"}},
	{RoleUtility, []string{"util", "helper", "common", "shared", "tool"}},
}

// isEntryPoint reports whether a file looks like a program entry point.
func isEntryPoint(f repo.FileDescriptor) bool {
	base := strings.ToLower(strings.TrimSuffix(f.Name, path.Ext(f.Name)))
	if _, ok := entryPointNames[base]; ok {
		return true
	}
	// Go convention: anything under cmd/ is an entry point.
	return strings.HasPrefix(f.Path, "cmd/")
}

// underSourceFolder reports whether any path segment is a conventional
// source folder.
func underSourceFolder(f repo.FileDescriptor) bool {
	for _, seg := range strings.Split(path.Dir(f.Path), "/") {
		if _, ok := sourceFolders[strings.ToLower(seg)]; ok {
			return true
		}
	}
	return false
}

// classifyRole assigns the architectural role by path and name heuristics.
func classifyRole(f repo.FileDescriptor) Role {
	if isEntryPoint(f) {
		return RoleEntryPoint
	}
	lowerPath := strings.ToLower(f.Path)
	for _, rule := range roleRules {
		for _, sig := range rule.signals {
			if strings.Contains(lowerPath, sig) {
				return rule.role
			}
		}
	}
	return RoleCoreLogic
}
