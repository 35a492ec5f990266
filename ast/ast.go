// Package ast defines the Abstract Syntax Tree produced by package parser.
//
// The node header (BaseNode) and the Node interface follow the shape of
// dennwc-webidl/ast.Node / ast.BaseNode (a Base() *BaseNode accessor plus
// an embedded position/metadata struct), generalized with the fields
// spec.md §3 requires: flags and a parent back-reference, neither of
// which the teacher's WebIDL AST carries (it has no parent links at all —
// its parser threads a nodeStack instead and never stores the edge on the
// node).
package ast

import "github.com/fef1312/unholy/token"

// Flags is a bitset carried on every node for downstream tooling (spec.md
// §3, §7). Propagation is the parser's responsibility: a node with a
// child that HasError sets ChildHasError on itself.
type Flags uint8

const (
	HasError Flags = 1 << iota
	ChildHasError
)

// Node is the interface every AST node variant implements. Base returns
// the shared header so generic code (position checks, flag propagation,
// the parent chain) does not need a type switch.
type Node interface {
	Base() *BaseNode
}

// BaseNode is the header embedded by every node variant: kind, position,
// flags, and a non-owning back-reference to the parent. Parent is nil
// only for the root SourceFile (spec.md §3).
type BaseNode struct {
	Kind token.SyntaxKind
	token.Position
	Flags  Flags
	Parent Node
}

// Base implements Node.
func (b *BaseNode) Base() *BaseNode { return b }

// Expression is the marker interface for nodes valid in expression
// position.
type Expression interface {
	Node
	expressionNode()
}

// Statement is the marker interface for nodes valid in statement
// position.
type Statement interface {
	Node
	statementNode()
}

// TypeNode is the marker interface for type annotations.
type TypeNode interface {
	Node
	typeNode()
}

// NodeArray is an ordered sequence of child nodes that carries its own
// position — spec.md §3: its start position is captured when the list is
// opened, independent of any single element's position (an empty list
// still has a meaningful, zero-length span at the point it was opened).
type NodeArray[T Node] struct {
	token.Position
	Items []T
}

// --- Expressions -----------------------------------------------------

// Identifier is a bare name reference.
type Identifier struct {
	BaseNode
	Name string
}

func (*Identifier) expressionNode() {}

// IntegerLiteral is a decimal integer literal, stored as text per spec.md
// §9 (radix interpretation and overflow checks are deferred to a later
// stage).
type IntegerLiteral struct {
	BaseNode
	Text string
}

func (*IntegerLiteral) expressionNode() {}

// BoolLiteral is `true` or `false`. Its Kind is token.TrueKeyword or
// token.FalseKeyword directly — see the note on token.SyntaxKind's node
// range in token/kind.go.
type BoolLiteral struct {
	BaseNode
}

func (*BoolLiteral) expressionNode() {}

// BinaryExpression covers both genuine binary operators and assignment
// (spec.md §4.2.4: "Assignment is treated as a BinaryExpression in the
// AST — no distinct node kind").
type BinaryExpression struct {
	BaseNode
	Left         Expression
	OperatorToken *TokenNode
	Right        Expression
}

func (*BinaryExpression) expressionNode() {}

// CallExpression is `callee(args...)`. The callee field is named Callee
// per spec.md §9 Open Question 4.
type CallExpression struct {
	BaseNode
	Callee Expression
	Args   NodeArray[Expression]
}

func (*CallExpression) expressionNode() {}

// --- Types -------------------------------------------------------------

// KeywordTypeNode is one of the three primitive type keywords. Its Kind
// is token.BoolKeyword, token.IntKeyword, or token.VoidKeyword directly.
type KeywordTypeNode struct {
	BaseNode
}

func (*KeywordTypeNode) typeNode() {}

// --- Token nodes ---------------------------------------------------------

// TokenNode wraps a single terminal (used for BinaryExpression's
// OperatorToken). Its Kind is the wrapped token's own kind.
type TokenNode struct {
	BaseNode
}

// --- Declarations --------------------------------------------------------

// VarDeclaration is the declarator inside a `let` statement: a name, an
// optional type annotation, and an optional initializer.
type VarDeclaration struct {
	BaseNode
	Name        *Identifier
	Type        TypeNode   // nil if omitted
	Initializer Expression // nil if omitted
}

// ParameterDeclaration is a single `name: Type` entry in a function's
// parameter list.
type ParameterDeclaration struct {
	BaseNode
	Name *Identifier
	Type TypeNode
}

// FuncDeclaration is the declarator inside a `func` statement.
type FuncDeclaration struct {
	BaseNode
	Name   *Identifier
	Params NodeArray[*ParameterDeclaration]
	Type   TypeNode
	Body   *BlockStatement
}

// --- Statements ------------------------------------------------------

// BlockStatement is a brace-delimited sequence of statements.
type BlockStatement struct {
	BaseNode
	Statements NodeArray[Statement]
}

func (*BlockStatement) statementNode() {}

// VarDeclarationStatement wraps a VarDeclaration at statement level.
type VarDeclarationStatement struct {
	BaseNode
	Declaration *VarDeclaration
}

func (*VarDeclarationStatement) statementNode() {}

// FuncDeclarationStatement wraps a FuncDeclaration at statement level.
type FuncDeclarationStatement struct {
	BaseNode
	Declaration *FuncDeclaration
}

func (*FuncDeclarationStatement) statementNode() {}

// ExpressionStatement is an expression evaluated for its side effect.
type ExpressionStatement struct {
	BaseNode
	Expression Expression
}

func (*ExpressionStatement) statementNode() {}

// IfStatement is `if (cond) then [else else]`.
type IfStatement struct {
	BaseNode
	Condition     Expression
	ThenStatement Statement
	ElseStatement Statement // nil if omitted
}

func (*IfStatement) statementNode() {}

// ReturnStatement is `return [expr];`.
type ReturnStatement struct {
	BaseNode
	Expression Expression // nil if bare `return;`
}

func (*ReturnStatement) statementNode() {}

// --- Root ----------------------------------------------------------------

// SourceFile is the AST root. It exclusively owns its entire subtree;
// Parent is always nil.
type SourceFile struct {
	BaseNode
	FileName   string
	Statements NodeArray[Statement]
}
