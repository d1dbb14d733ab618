// Package structure implements the per-file structural analyzer: given one
// file's text it reports functions, classes, imports, local patterns,
// issues, and a complexity score. Unparseable input yields an empty result,
// never an error.
package structure

import "strings"

// Language represents a supported programming language.
type Language string

const (
	LangGo         Language = "go"
	LangJavaScript Language = "javascript"
	LangTypeScript Language = "typescript"
	LangTSX        Language = "tsx"
	LangPython     Language = "python"
	LangRust       Language = "rust"
	LangJava       Language = "java"
	LangKotlin     Language = "kotlin"
)

// extensionLanguages maps file extensions to languages.
var extensionLanguages = map[string]Language{
	".go":   LangGo,
	".js":   LangJavaScript,
	".jsx":  LangJavaScript,
	".mjs":  LangJavaScript,
	".ts":   LangTypeScript,
	".tsx":  LangTSX,
	".py":   LangPython,
	".rs":   LangRust,
	".java": LangJava,
	".kt":   LangKotlin,
}

// LanguageFromExtension returns the language for a file extension
// (".py", ".go", ...), if recognized.
func LanguageFromExtension(ext string) (Language, bool) {
	lang, ok := extensionLanguages[strings.ToLower(ext)]
	return lang, ok
}

// IsCodeExtension reports whether an extension belongs to a recognized
// source language.
func IsCodeExtension(ext string) bool {
	_, ok := LanguageFromExtension(ext)
	return ok
}

// FunctionInfo describes one extracted function or method.
type FunctionInfo struct {
	Name      string `json:"name"`
	Line      int    `json:"line"`    // 1-indexed start line
	EndLine   int    `json:"endLine"` // 1-indexed end line
	Container string `json:"container,omitempty"`
	Signature string `json:"signature,omitempty"`
}

// ClassInfo describes one extracted class/type/interface.
type ClassInfo struct {
	Name    string `json:"name"`
	Kind    string `json:"kind"` // "class", "type", "interface"
	Line    int    `json:"line"`
	EndLine int    `json:"endLine"`
}

// PatternHit records a locally detected implementation pattern.
type PatternHit struct {
	Name   string `json:"name"`
	Line   int    `json:"line"`
	Detail string `json:"detail,omitempty"`
}

// Issue records a structural smell found in the file.
type Issue struct {
	Kind    string `json:"kind"`
	Line    int    `json:"line"`
	Message string `json:"message"`
}

// FileAnalysis is the structural analyzer's per-file output. Every field
// is present; empty slices mean "nothing detected", not "failed".
type FileAnalysis struct {
	Path            string         `json:"path"`
	Language        Language       `json:"language"`
	Functions       []FunctionInfo `json:"functions"`
	Classes         []ClassInfo    `json:"classes"`
	Imports         []string       `json:"imports"`
	Patterns        []PatternHit   `json:"patterns"`
	Issues          []Issue        `json:"issues"`
	ComplexityScore float64        `json:"complexityScore"`
	LineCount       int            `json:"lineCount"`
}
