package parser

import (
	"bytes"

	"github.com/fef1312/unholy/ast"
	"github.com/kr/pretty"
)

// dumpString renders an AST node as a readable, deeply-nested string for
// use in test failure messages, grounded on the teacher's own
// parser/dump.go (pretty.Fprintf(w, "%# v", n)). Unexported: it is test
// tooling, not the AST printer spec.md places out of scope.
func dumpString(n ast.Node) string {
	buf := bytes.NewBuffer(nil)
	pretty.Fprintf(buf, "%# v", n)
	return buf.String()
}
