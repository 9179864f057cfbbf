// Package parser extracts structural summaries from source files.
//
// Each supported language gets a tree-sitter grammar plus a small set of node
// types to count. All variants produce the same StructuralSummary shape, so
// the engine can aggregate across languages without caring which grammar
// produced a file's counts.
package parser

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/janus-clew/clew/schema"
)

// langSpec describes how to read one language's syntax tree.
type langSpec struct {
	language *sitter.Language

	// Node types counted as named function definitions.
	functions map[string]struct{}

	// Node types counted as class/type definitions.
	classes map[string]struct{}

	// Node types that open a lexical block for nesting depth. Control-flow
	// and definition blocks count uniformly.
	blocks map[string]struct{}
}

func set(types ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(types))
	for _, t := range types {
		m[t] = struct{}{}
	}
	return m
}

var specs = map[schema.Language]langSpec{
	schema.LangGo: {
		language:  golang.GetLanguage(),
		functions: set("function_declaration", "method_declaration"),
		classes:   set("type_spec"),
		blocks:    set("block"),
	},
	schema.LangPython: {
		language:  python.GetLanguage(),
		functions: set("function_definition"),
		classes:   set("class_definition"),
		blocks:    set("block"),
	},
	schema.LangJavaScript: {
		language:  javascript.GetLanguage(),
		functions: set("function_declaration", "generator_function_declaration", "method_definition"),
		classes:   set("class_declaration"),
		blocks:    set("statement_block", "class_body"),
	},
	schema.LangTypeScript: {
		language:  typescript.GetLanguage(),
		functions: set("function_declaration", "generator_function_declaration", "method_definition"),
		classes:   set("class_declaration", "interface_declaration", "enum_declaration"),
		blocks:    set("statement_block", "class_body"),
	},
}

// LanguageFor returns the parser language for a file name, or LangUnknown.
func LanguageFor(filename string) schema.Language {
	ext := strings.ToLower(filepath.Ext(filename))
	if lang, ok := schema.LanguageForExtension[ext]; ok {
		return lang
	}
	return schema.LangUnknown
}

// SupportedExtensions returns all extensions the parser accepts.
func SupportedExtensions() []string {
	exts := make([]string, 0, len(schema.LanguageForExtension))
	for ext := range schema.LanguageForExtension {
		exts = append(exts, ext)
	}
	return exts
}

// ParseFile parses one file's content into a StructuralSummary. On parse
// failure (malformed syntax, unsupported language) it returns a zero summary
// together with the error; callers treat that as a soft, file-level failure.
func ParseFile(ctx context.Context, filename string, source []byte) (schema.StructuralSummary, error) {
	var zero schema.StructuralSummary

	lang := LanguageFor(filename)
	spec, ok := specs[lang]
	if !ok {
		return zero, fmt.Errorf("unsupported language for %s", filename)
	}

	p := sitter.NewParser()
	defer p.Close()
	p.SetLanguage(spec.language)

	tree, err := p.ParseCtx(ctx, nil, source)
	if tree == nil {
		return zero, fmt.Errorf("failed to parse %s: %v", filename, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return zero, fmt.Errorf("no parse tree for %s", filename)
	}
	if root.HasError() {
		return zero, fmt.Errorf("syntax errors in %s", filename)
	}

	var sum schema.StructuralSummary
	walk(root, spec, 0, &sum)
	return sum, nil
}

// walk traverses the tree counting functions, classes and block depth.
func walk(node *sitter.Node, spec langSpec, depth int, sum *schema.StructuralSummary) {
	nodeType := node.Type()

	if _, ok := spec.functions[nodeType]; ok {
		sum.Functions++
	}
	if _, ok := spec.classes[nodeType]; ok {
		sum.Classes++
	}
	if _, ok := spec.blocks[nodeType]; ok {
		depth++
		if depth > sum.MaxNesting {
			sum.MaxNesting = depth
		}
	}

	for i := 0; i < int(node.NamedChildCount()); i++ {
		walk(node.NamedChild(i), spec, depth, sum)
	}
}
