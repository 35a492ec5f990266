package token

// Position is the line/column/offset/length bookkeeping shared by tokens
// and AST nodes (spec.md §3). Embedding one struct instead of repeating the
// four fields keeps SemanticElement and ast.Node's headers in lockstep,
// the same consolidation go/token.Position performs for go/scanner and
// go/ast (see also koblas-cedar-go/scanner, which threads an almost
// identical quartet of fields by hand).
type Position struct {
	Line   int // 1-based
	Column int // 1-based
	Pos    int // 0-based byte offset
	Length int // length in source bytes
}

// End returns the byte offset one past the position's span.
func (p Position) End() int {
	return p.Pos + p.Length
}

// Contains reports whether other's span lies within p's span, the
// invariant spec.md §3/§8 requires between a node and its parent.
func (p Position) Contains(other Position) bool {
	return p.Pos <= other.Pos && other.End() <= p.End()
}
