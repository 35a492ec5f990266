// Package token defines SyntaxKind, the closed enumeration shared by the
// scanner and parser, along with the text tables and keyword sets used to
// classify and render it.
//
// The enumeration is partitioned into disjoint, contiguous ranges so that
// membership (e.g. "is this a keyword?") can be answered with a numeric
// range check instead of a lookup table, the same trick the teacher's
// tokenType constants use to delimit keywords with a tokKeyword sentinel
// (see ajsnow-kaleidoscope's lex.go key map and tokKeyword marker).
package token

// SyntaxKind identifies the lexical or syntactic identity of a token or an
// AST node. The ranges below must stay contiguous: IsKeyword and IsNode
// depend on it.
type SyntaxKind int

const (
	Unknown SyntaxKind = iota
	EndOfFileToken

	// Punctuation.
	OpenBraceToken    // {
	CloseBraceToken   // }
	OpenParenToken    // (
	CloseParenToken   // )
	SemicolonToken    // ;
	CommaToken        // ,
	ColonToken        // :

	// Operators.
	PlusToken          // +
	MinusToken         // -
	AsteriskToken      // *
	SlashToken         // /
	PercentToken       // %
	LessThanToken      // <
	GreaterThanToken   // >
	EqualsToken        // =
	EqualsEqualsToken  // ==

	// Literals and identifiers.
	IdentifierToken
	IntegerLiteralToken

	keywordStart
	BoolKeyword
	ElseKeyword
	FalseKeyword
	FuncKeyword
	IfKeyword
	IntKeyword
	LetKeyword
	ReturnKeyword
	TrueKeyword
	VoidKeyword
	keywordEnd

	nodeStart
	// Expressions. BoolLiteral has no entry here: per spec.md §3 its own
	// Kind field holds TrueKeyword or FalseKeyword directly rather than a
	// dedicated node kind, the same way KeywordTypeNode's Kind field holds
	// BoolKeyword/IntKeyword/VoidKeyword and a TokenNode's Kind field holds
	// the wrapped operator token's kind. Go's type system (the concrete
	// ast.BoolLiteral/KeywordTypeNode/TokenNode struct types) supplies the
	// variant discrimination those three don't get from this enum.
	IdentifierNode
	IntegerLiteralNode
	BinaryExpressionNode
	CallExpressionNode

	// Declarations.
	VarDeclarationNode
	ParameterDeclarationNode
	FuncDeclarationNode

	// Statements.
	BlockStatementNode
	VarDeclarationStatementNode
	FuncDeclarationStatementNode
	ExpressionStatementNode
	IfStatementNode
	ReturnStatementNode

	// Root.
	SourceFileNode
	nodeEnd
)

// IsKeyword reports whether kind lies in the closed keyword range.
func (k SyntaxKind) IsKeyword() bool {
	return k > keywordStart && k < keywordEnd
}

// IsNode reports whether kind identifies an AST node variant rather than a
// token.
func (k SyntaxKind) IsNode() bool {
	return k > nodeStart && k < nodeEnd
}

// String renders kind using the kindText table, falling back to the fixed
// placeholder "SyntaxKind(?)" for any kind the table does not name.
func (k SyntaxKind) String() string {
	if s, ok := kindText[k]; ok {
		return s
	}
	return "SyntaxKind(?)"
}
