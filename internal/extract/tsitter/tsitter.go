// Package tsitter holds small tree-sitter walking helpers shared by
// the TypeScript/JavaScript, Rust and Python extractors. Grounded on
// viant-linager's inspector/jsx package, which walks a parsed
// smacker/go-tree-sitter tree by hand (NamedChild iteration, Type()
// switches) rather than through tree-sitter's query language — the
// same approach is used here.
package tsitter

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"
)

// Parse parses src with lang and returns the root node of the tree.
func Parse(ctx context.Context, src []byte, lang *sitter.Language) (*sitter.Node, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(lang)
	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, err
	}
	return tree.RootNode(), nil
}

// Children returns all named children of n.
func Children(n *sitter.Node) []*sitter.Node {
	count := int(n.NamedChildCount())
	children := make([]*sitter.Node, 0, count)
	for i := 0; i < count; i++ {
		children = append(children, n.NamedChild(i))
	}
	return children
}

// Find returns every descendant of n (including n) whose node type is
// one of types, in depth-first pre-order.
func Find(n *sitter.Node, types ...string) []*sitter.Node {
	want := make(map[string]bool, len(types))
	for _, t := range types {
		want[t] = true
	}
	var out []*sitter.Node
	var walk func(*sitter.Node)
	walk = func(node *sitter.Node) {
		if node == nil {
			return
		}
		if want[node.Type()] {
			out = append(out, node)
		}
		for _, child := range Children(node) {
			walk(child)
		}
	}
	walk(n)
	return out
}

// FirstChildOfType returns the first named child of n matching one of
// types, or nil.
func FirstChildOfType(n *sitter.Node, types ...string) *sitter.Node {
	want := make(map[string]bool, len(types))
	for _, t := range types {
		want[t] = true
	}
	for _, child := range Children(n) {
		if want[child.Type()] {
			return child
		}
	}
	return nil
}

// Text returns the source text spanned by n.
func Text(n *sitter.Node, src []byte) string {
	if n == nil {
		return ""
	}
	return n.Content(src)
}

// Line returns n's 1-based start line.
func Line(n *sitter.Node) int {
	return int(n.StartPoint().Row) + 1
}
