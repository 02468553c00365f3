// Package visitor extracts the raw, unresolved import specifiers from a
// parsed TypeScript/JavaScript file. It walks the tree-sitter AST produced
// by internal/parser looking for every construct that names a dependency —
// static imports, re-exports, TS import-equals, and dynamic
// import()/require() calls.
package visitor

import (
	"fmt"

	"github.com/oskari/tsreach/internal/parser"
)

// Result is one file's worth of extracted dependency information: the
// ordered raw specifiers found, plus any non-literal dynamic
// import()/require() arguments flagged as diagnostics.
type Result struct {
	Imports     []string
	Diagnostics []string
}

// Visitor walks a parsed AST and extracts raw import specifiers.
type Visitor struct {
	parser *parser.TreeSitterParser
}

// New creates a Visitor backed by a fresh tree-sitter parser. Tree-sitter
// parsers are not safe for concurrent use, so callers that parse many
// files in parallel should create one Visitor per worker.
func New() (*Visitor, error) {
	p, err := parser.NewParser()
	if err != nil {
		return nil, err
	}
	return &Visitor{parser: p}, nil
}

// Close releases the underlying parser.
func (v *Visitor) Close() error {
	return v.parser.Close()
}

// Extract parses content and walks its AST, returning every raw import
// specifier the file names.
func (v *Visitor) Extract(filePath string, content []byte) (Result, error) {
	ast, err := v.parser.ParseFile(filePath, content)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", filePath, err)
	}
	defer ast.Close()

	var res Result
	ast.Root.Walk(func(n *parser.Node) bool {
		switch n.Type() {
		case "import_statement":
			if src, ok := stringSourceOf(n); ok {
				res.Imports = append(res.Imports, src)
			}
		case "export_statement":
			if src, ok := exportSourceOf(n); ok {
				res.Imports = append(res.Imports, src)
			}
		case "import_require_clause":
			if src, ok := requireArgOf(n); ok {
				res.Imports = append(res.Imports, src)
			}
		case "call_expression":
			if src, diag, handled := dynamicCallSourceOf(n); handled {
				if diag != "" {
					res.Diagnostics = append(res.Diagnostics, diag)
				} else {
					res.Imports = append(res.Imports, src)
				}
			}
		}
		return true
	})

	return res, nil
}

// stringSourceOf finds the "string" child node of an import_statement
// (the "from '...'" clause) and returns its contained string_fragment
// text.
func stringSourceOf(n *parser.Node) (string, bool) {
	for _, child := range n.Children() {
		if child.Type() != "string" {
			continue
		}
		for _, frag := range child.Children() {
			if frag.Type() == "string_fragment" {
				return frag.Text(), true
			}
		}
	}
	return "", false
}

// exportSourceOf returns the re-export source of an export_statement, e.g.
// "y" in `export { x } from "y"` or `export * from "y"`. An export_statement
// only names a dependency when it carries a "source" field; a bare
// `export { foo }` or a value export like `export default "hello"` has no
// such field even though a string literal may appear elsewhere among its
// children, so those correctly yield nothing.
func exportSourceOf(n *parser.Node) (string, bool) {
	source := n.ChildByFieldName("source")
	if source == nil {
		return "", false
	}
	for _, frag := range source.Children() {
		if frag.Type() == "string_fragment" {
			return frag.Text(), true
		}
	}
	return "", false
}

// requireArgOf extracts the string literal argument of a TS
// "import x = require('...')" clause.
func requireArgOf(n *parser.Node) (string, bool) {
	for _, child := range n.Children() {
		if child.Type() == "string" {
			for _, frag := range child.Children() {
				if frag.Type() == "string_fragment" {
					return frag.Text(), true
				}
			}
		}
	}
	return "", false
}

// dynamicCallSourceOf recognizes call_expressions whose callee is the
// "import" or "require" identifier/keyword. Returns handled=false for any
// other call. When the single argument is a string literal, src/true is
// returned; when it's anything else (a variable, a template expression),
// a diagnostic message is returned instead so the caller can surface a
// non-fatal "cannot statically resolve" note.
func dynamicCallSourceOf(n *parser.Node) (src string, diag string, handled bool) {
	fn := n.ChildByFieldName("function")
	if fn == nil {
		return "", "", false
	}

	name := fn.Text()
	if name != "import" && name != "require" {
		return "", "", false
	}

	args := n.ChildByFieldName("arguments")
	if args == nil {
		return "", "", false
	}

	named := args.NamedChildren()
	if len(named) != 1 {
		return "", fmt.Sprintf("dynamic %s() with %d arguments cannot be statically resolved", name, len(named)), true
	}

	arg := named[0]
	if arg.Type() != "string" {
		return "", fmt.Sprintf("dynamic %s(%s) argument is not a string literal", name, arg.Type()), true
	}

	for _, frag := range arg.Children() {
		if frag.Type() == "string_fragment" {
			return frag.Text(), "", true
		}
	}
	return "", fmt.Sprintf("dynamic %s() string argument had no content", name), true
}
