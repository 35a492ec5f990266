package parser

import (
	"github.com/fef1312/unholy/ast"
	"github.com/fef1312/unholy/scanner"
	"github.com/fef1312/unholy/token"
)

// posOf converts a scanned token's position into the token.Position
// carried by a fresh node's BaseNode.
func posOf(tok scanner.SemanticElement) token.Position {
	return token.Position{Line: tok.Line, Column: tok.Column, Pos: tok.Pos}
}

// startsExpression reports whether kind can introduce an expression,
// used by parse_statement's dispatch (spec.md §4.2.4, §6). Plus/Minus
// are included per spec.md §9's unary note even though parsePrimary has
// no production for a unary node yet — a bare `-x;` statement is
// recognized as an attempted expression statement and then fails inside
// expression parsing, rather than being rejected at the statement
// dispatch as "not a statement".
func startsExpression(kind token.SyntaxKind) bool {
	switch kind {
	case token.IdentifierToken, token.IntegerLiteralToken,
		token.TrueKeyword, token.FalseKeyword,
		token.PlusToken, token.MinusToken:
		return true
	default:
		return false
	}
}

// newIdentifier builds an Identifier from an already-consumed token.
func (p *Parser) newIdentifier(tok scanner.SemanticElement) *ast.Identifier {
	n := &ast.Identifier{
		BaseNode: ast.BaseNode{Kind: token.IdentifierNode, Position: posOf(tok)},
		Name:     tok.RawText,
	}
	p.beginNode(n)()
	return n
}

// newIntegerLiteral builds an IntegerLiteral from an already-consumed
// token.
func (p *Parser) newIntegerLiteral(tok scanner.SemanticElement) *ast.IntegerLiteral {
	n := &ast.IntegerLiteral{
		BaseNode: ast.BaseNode{Kind: token.IntegerLiteralNode, Position: posOf(tok)},
		Text:     tok.Value,
	}
	p.beginNode(n)()
	return n
}

// newBoolLiteral builds a BoolLiteral whose Kind is the wrapped
// true/false keyword's own kind.
func (p *Parser) newBoolLiteral(tok scanner.SemanticElement) *ast.BoolLiteral {
	n := &ast.BoolLiteral{BaseNode: ast.BaseNode{Kind: tok.Kind, Position: posOf(tok)}}
	p.beginNode(n)()
	return n
}

// newTokenNode wraps a single terminal (an operator). Its span is fully
// known from the token itself, so it bypasses beginNode: Parent is
// assigned directly by the BinaryExpression constructor that owns it,
// the same "composite sets its direct children's parent explicitly"
// pattern newBinaryExpression and parseCallExpression use (see
// newBinaryExpression's doc comment on why precedence climbing can't rely
// on the generic push-parent-before-children order for composite
// expressions).
func newTokenNode(tok scanner.SemanticElement) *ast.TokenNode {
	return &ast.TokenNode{BaseNode: ast.BaseNode{
		Kind:     tok.Kind,
		Position: token.Position{Line: tok.Line, Column: tok.Column, Pos: tok.Pos, Length: tok.Length},
	}}
}

// newBinaryExpression folds left, an operator, and right into a single
// BinaryExpression. left and right were already fully parsed (and
// finalized with a provisional, usually-wrong Parent) by the time this
// runs, since precedence climbing builds a composite only after both of
// its operands exist — see DESIGN.md, "Parent-chain construction for
// expression composites". The provisional
// Parent is overwritten here with the real one; the composite itself
// still goes through beginNode so it inherits the ambient parent exactly
// like every other node.
func (p *Parser) newBinaryExpression(left ast.Expression, op *ast.TokenNode, right ast.Expression) *ast.BinaryExpression {
	lb := left.Base()
	n := &ast.BinaryExpression{
		BaseNode: ast.BaseNode{
			Kind:     token.BinaryExpressionNode,
			Position: token.Position{Line: lb.Line, Column: lb.Column, Pos: lb.Pos},
		},
		Left:          left,
		OperatorToken: op,
		Right:         right,
	}
	lb.Parent = n
	op.Parent = n
	right.Base().Parent = n

	finish := p.beginNode(n)
	finish()
	return n
}
