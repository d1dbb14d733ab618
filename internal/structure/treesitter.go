//go:build cgo

package structure

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/kotlin"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/rust"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// extractor wraps tree-sitter for multi-language symbol extraction.
type extractor struct {
	parser *sitter.Parser
}

func newExtractor() *extractor {
	return &extractor{parser: sitter.NewParser()}
}

// IsAvailable returns whether tree-sitter extraction is available.
func IsAvailable() bool {
	return true
}

// extract parses source and collects function and class declarations.
func (e *extractor) extract(ctx context.Context, source []byte, lang Language) ([]FunctionInfo, []ClassInfo, error) {
	tsLang, err := sitterLanguage(lang)
	if err != nil {
		return nil, nil, err
	}

	e.parser.SetLanguage(tsLang)
	tree, err := e.parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, nil, fmt.Errorf("parse error: %w", err)
	}
	root := tree.RootNode()

	functions := []FunctionInfo{}
	classes := []ClassInfo{}

	for _, node := range findNodes(root, functionNodeTypes(lang)) {
		name := functionName(node, source, lang)
		if name == "" {
			continue
		}
		functions = append(functions, FunctionInfo{
			Name:      name,
			Line:      int(node.StartPoint().Row) + 1,
			EndLine:   int(node.EndPoint().Row) + 1,
			Container: containerName(node, source, lang),
			Signature: firstLine(node, source),
		})
	}

	for _, node := range findNodes(root, classNodeTypes(lang)) {
		name := className(node, source, lang)
		if name == "" {
			continue
		}
		classes = append(classes, ClassInfo{
			Name:    name,
			Kind:    classKind(node, lang),
			Line:    int(node.StartPoint().Row) + 1,
			EndLine: int(node.EndPoint().Row) + 1,
		})
	}

	return functions, classes, nil
}

func sitterLanguage(lang Language) (*sitter.Language, error) {
	switch lang {
	case LangGo:
		return golang.GetLanguage(), nil
	case LangJavaScript:
		return javascript.GetLanguage(), nil
	case LangTypeScript:
		return typescript.GetLanguage(), nil
	case LangTSX:
		return tsx.GetLanguage(), nil
	case LangPython:
		return python.GetLanguage(), nil
	case LangRust:
		return rust.GetLanguage(), nil
	case LangJava:
		return java.GetLanguage(), nil
	case LangKotlin:
		return kotlin.GetLanguage(), nil
	default:
		return nil, fmt.Errorf("unsupported language: %s", lang)
	}
}

func functionNodeTypes(lang Language) []string {
	switch lang {
	case LangGo:
		return []string{"function_declaration", "method_declaration"}
	case LangJavaScript, LangTypeScript, LangTSX:
		return []string{"function_declaration", "method_definition", "generator_function_declaration"}
	case LangPython:
		return []string{"function_definition"}
	case LangRust:
		return []string{"function_item"}
	case LangJava:
		return []string{"method_declaration", "constructor_declaration"}
	case LangKotlin:
		return []string{"function_declaration"}
	default:
		return nil
	}
}

func classNodeTypes(lang Language) []string {
	switch lang {
	case LangGo:
		return []string{"type_declaration"}
	case LangJavaScript, LangTypeScript, LangTSX:
		return []string{"class_declaration", "interface_declaration"}
	case LangPython:
		return []string{"class_definition"}
	case LangRust:
		return []string{"struct_item", "enum_item", "trait_item"}
	case LangJava:
		return []string{"class_declaration", "interface_declaration", "enum_declaration"}
	case LangKotlin:
		return []string{"class_declaration", "object_declaration"}
	default:
		return nil
	}
}

func functionName(node *sitter.Node, source []byte, lang Language) string {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil && lang == LangKotlin {
		for i := uint32(0); i < node.ChildCount(); i++ {
			child := node.Child(int(i))
			if child != nil && child.Type() == "simple_identifier" {
				nameNode = child
				break
			}
		}
	}
	if nameNode == nil {
		return ""
	}
	return string(source[nameNode.StartByte():nameNode.EndByte()])
}

func className(node *sitter.Node, source []byte, lang Language) string {
	if lang == LangGo {
		// type_declaration wraps type_spec which carries the name
		for i := uint32(0); i < node.ChildCount(); i++ {
			child := node.Child(int(i))
			if child != nil && child.Type() == "type_spec" {
				if nameNode := child.ChildByFieldName("name"); nameNode != nil {
					return string(source[nameNode.StartByte():nameNode.EndByte()])
				}
			}
		}
		return ""
	}

	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		for i := uint32(0); i < node.ChildCount(); i++ {
			child := node.Child(int(i))
			if child != nil && (child.Type() == "identifier" || child.Type() == "simple_identifier" || child.Type() == "type_identifier") {
				nameNode = child
				break
			}
		}
	}
	if nameNode == nil {
		return ""
	}
	return string(source[nameNode.StartByte():nameNode.EndByte()])
}

func classKind(node *sitter.Node, lang Language) string {
	switch node.Type() {
	case "interface_declaration", "trait_item":
		return "interface"
	case "class_declaration", "class_definition", "object_declaration":
		return "class"
	default:
		return "type"
	}
}

// containerName walks up the tree to the enclosing class, if any.
func containerName(node *sitter.Node, source []byte, lang Language) string {
	classTypes := classNodeTypes(lang)
	for parent := node.Parent(); parent != nil; parent = parent.Parent() {
		for _, ct := range classTypes {
			if parent.Type() == ct {
				return className(parent, source, lang)
			}
		}
	}
	return ""
}

func firstLine(node *sitter.Node, source []byte) string {
	text := source[node.StartByte():node.EndByte()]
	for i, b := range text {
		if b == '\n' || b == '{' {
			return strings.TrimSpace(string(text[:i]))
		}
	}
	if len(text) > 200 {
		return strings.TrimSpace(string(text[:200])) + "..."
	}
	return strings.TrimSpace(string(text))
}

func findNodes(root *sitter.Node, types []string) []*sitter.Node {
	if len(types) == 0 {
		return nil
	}

	var result []*sitter.Node
	var walk func(*sitter.Node)
	walk = func(node *sitter.Node) {
		if node == nil {
			return
		}
		for _, t := range types {
			if node.Type() == t {
				result = append(result, node)
				break
			}
		}
		for i := uint32(0); i < node.ChildCount(); i++ {
			walk(node.Child(int(i)))
		}
	}
	walk(root)
	return result
}
