package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	"github.com/fef1312/unholy/ast"
	"github.com/fef1312/unholy/diag"
	"github.com/fef1312/unholy/scanner"
	"github.com/fef1312/unholy/token"
)

// ignoreParent drops the Parent back-reference from whole-tree
// comparisons — it's an intentional cycle (every node points at its
// enclosing node), so cmp would otherwise recurse forever.
var ignoreParent = cmpopts.IgnoreFields(ast.BaseNode{}, "Parent")

func mustParse(t *testing.T, src string) *ast.SourceFile {
	t.Helper()
	f, err := Parse([]byte(src), "test.unholy")
	require.NoError(t, err)
	return f
}

// S1: let x: int = 1 + 2 * 3;
func TestVarDeclarationWithPrecedence(t *testing.T) {
	f := mustParse(t, "let x: int = 1 + 2 * 3;")
	require.Len(t, f.Statements.Items, 1)

	stmt, ok := f.Statements.Items[0].(*ast.VarDeclarationStatement)
	require.True(t, ok)
	decl := stmt.Declaration
	require.Equal(t, "x", decl.Name.Name)

	typ, ok := decl.Type.(*ast.KeywordTypeNode)
	require.True(t, ok)
	require.Equal(t, token.IntKeyword, typ.Kind)

	init, ok := decl.Initializer.(*ast.BinaryExpression)
	require.True(t, ok)
	require.Equal(t, token.PlusToken, init.OperatorToken.Kind)

	left, ok := init.Left.(*ast.IntegerLiteral)
	require.True(t, ok)
	require.Equal(t, "1", left.Text)

	right, ok := init.Right.(*ast.BinaryExpression)
	require.True(t, ok)
	require.Equal(t, token.AsteriskToken, right.OperatorToken.Kind)

	rl, ok := right.Left.(*ast.IntegerLiteral)
	require.True(t, ok)
	require.Equal(t, "2", rl.Text)
	rr, ok := right.Right.(*ast.IntegerLiteral)
	require.True(t, ok)
	require.Equal(t, "3", rr.Text)
}

// S2: func f(a: int, b: int): int { return a + b; }
func TestFuncDeclarationWithParams(t *testing.T) {
	f := mustParse(t, "func f(a: int, b: int): int { return a + b; }")
	require.Len(t, f.Statements.Items, 1)

	stmt, ok := f.Statements.Items[0].(*ast.FuncDeclarationStatement)
	require.True(t, ok)
	decl := stmt.Declaration
	require.Equal(t, "f", decl.Name.Name)
	require.Len(t, decl.Params.Items, 2)
	require.Equal(t, "a", decl.Params.Items[0].Name.Name)
	require.Equal(t, "b", decl.Params.Items[1].Name.Name)
	for _, param := range decl.Params.Items {
		typ, ok := param.Type.(*ast.KeywordTypeNode)
		require.True(t, ok)
		require.Equal(t, token.IntKeyword, typ.Kind)
	}

	retType, ok := decl.Type.(*ast.KeywordTypeNode)
	require.True(t, ok)
	require.Equal(t, token.IntKeyword, retType.Kind)

	require.Len(t, decl.Body.Statements.Items, 1)
	ret, ok := decl.Body.Statements.Items[0].(*ast.ReturnStatement)
	require.True(t, ok)
	bin, ok := ret.Expression.(*ast.BinaryExpression)
	require.True(t, ok)
	require.Equal(t, token.PlusToken, bin.OperatorToken.Kind)
	require.Equal(t, "a", bin.Left.(*ast.Identifier).Name)
	require.Equal(t, "b", bin.Right.(*ast.Identifier).Name)
}

// S3: if/else inside a function body.
func TestIfElseStatement(t *testing.T) {
	src := "func f(): int { if (a == 0) { return; } else { return a; } }"
	f := mustParse(t, src)
	decl := f.Statements.Items[0].(*ast.FuncDeclarationStatement).Declaration

	ifStmt, ok := decl.Body.Statements.Items[0].(*ast.IfStatement)
	require.True(t, ok)

	cond, ok := ifStmt.Condition.(*ast.BinaryExpression)
	require.True(t, ok)
	require.Equal(t, token.EqualsEqualsToken, cond.OperatorToken.Kind)

	thenBlock, ok := ifStmt.ThenStatement.(*ast.BlockStatement)
	require.True(t, ok)
	require.Len(t, thenBlock.Statements.Items, 1)
	thenRet, ok := thenBlock.Statements.Items[0].(*ast.ReturnStatement)
	require.True(t, ok)
	require.Nil(t, thenRet.Expression)

	elseBlock, ok := ifStmt.ElseStatement.(*ast.BlockStatement)
	require.True(t, ok)
	require.Len(t, elseBlock.Statements.Items, 1)
	elseRet, ok := elseBlock.Statements.Items[0].(*ast.ReturnStatement)
	require.True(t, ok)
	ident, ok := elseRet.Expression.(*ast.Identifier)
	require.True(t, ok)
	require.Equal(t, "a", ident.Name)
}

// S4: a bare `return;` at the top level is rejected for context.
func TestReturnAtTopLevelIsContextError(t *testing.T) {
	_, err := Parse([]byte("return;"), "test.unholy")
	require.Error(t, err)
	var pe *diag.ParseError
	require.ErrorAs(t, err, &pe)
	require.Contains(t, pe.Message, "not allowed in this context")
}

// S5: `let while = 1;` is a lexical error naming the reserved word, at
// the column where the identifier starts.
func TestFutureReservedWordAsName(t *testing.T) {
	_, err := Parse([]byte("let while = 1;"), "test.unholy")
	require.Error(t, err)
	var le *diag.LexicalError
	require.ErrorAs(t, err, &le)
	require.Contains(t, le.Message, `"while" is a reserved keyword`)
	require.Equal(t, 5, le.Column)
	require.Equal(t, "let while = 1;", le.LineContent)
}

// S6: a lone carriage return is fatal.
func TestBareCarriageReturnInSourceIsFatal(t *testing.T) {
	_, err := Parse([]byte("let x = 1;\rlet y = 2;"), "test.unholy")
	require.Error(t, err)
	var le *diag.LexicalError
	require.ErrorAs(t, err, &le)
	require.Contains(t, le.Message, "FATAL: Windows encountered")
	require.NotEmpty(t, le.LineContent)
}

// Associativity: a - b - c parses as (- (- a b) c). The expression tests
// below wrap their statement in a block, since an expression statement is
// only allowed in block context.
func TestBinaryLeftAssociativity(t *testing.T) {
	f := mustParse(t, "{ a - b - c; }")
	stmt := f.Statements.Items[0].(*ast.BlockStatement).Statements.Items[0].(*ast.ExpressionStatement)
	root, ok := stmt.Expression.(*ast.BinaryExpression)
	require.True(t, ok)
	require.Equal(t, token.MinusToken, root.OperatorToken.Kind)
	require.Equal(t, "c", root.Right.(*ast.Identifier).Name)

	innerLeft, ok := root.Left.(*ast.BinaryExpression)
	require.True(t, ok)
	require.Equal(t, token.MinusToken, innerLeft.OperatorToken.Kind)
	require.Equal(t, "a", innerLeft.Left.(*ast.Identifier).Name)
	require.Equal(t, "b", innerLeft.Right.(*ast.Identifier).Name)
}

// Associativity: a = b = c parses as (= a (= b c)).
func TestAssignmentRightAssociativity(t *testing.T) {
	f := mustParse(t, "{ a = b = c; }")
	stmt := f.Statements.Items[0].(*ast.BlockStatement).Statements.Items[0].(*ast.ExpressionStatement)
	root, ok := stmt.Expression.(*ast.BinaryExpression)
	require.True(t, ok)
	require.Equal(t, "a", root.Left.(*ast.Identifier).Name)

	innerRight, ok := root.Right.(*ast.BinaryExpression)
	require.True(t, ok)
	require.Equal(t, "b", innerRight.Left.(*ast.Identifier).Name)
	require.Equal(t, "c", innerRight.Right.(*ast.Identifier).Name)
}

// Precedence: a == b + c parses as (== a (+ b c)).
func TestPrecedenceEqualsVsPlus(t *testing.T) {
	f := mustParse(t, "{ a == b + c; }")
	stmt := f.Statements.Items[0].(*ast.BlockStatement).Statements.Items[0].(*ast.ExpressionStatement)
	root, ok := stmt.Expression.(*ast.BinaryExpression)
	require.True(t, ok)
	require.Equal(t, token.EqualsEqualsToken, root.OperatorToken.Kind)
	require.Equal(t, "a", root.Left.(*ast.Identifier).Name)

	rhs, ok := root.Right.(*ast.BinaryExpression)
	require.True(t, ok)
	require.Equal(t, token.PlusToken, rhs.OperatorToken.Kind)
}

// Precedence: a + b * c parses as (+ a (* b c)), checked via a whole-tree
// structural comparison instead of field-by-field assertions.
func TestPrecedencePlusVsAsteriskWholeTree(t *testing.T) {
	f := mustParse(t, "{ a + b * c; }")
	stmt := f.Statements.Items[0].(*ast.BlockStatement).Statements.Items[0].(*ast.ExpressionStatement)
	got := stmt.Expression

	want := &ast.BinaryExpression{
		BaseNode:      ast.BaseNode{Kind: token.BinaryExpressionNode},
		OperatorToken: &ast.TokenNode{BaseNode: ast.BaseNode{Kind: token.PlusToken}},
		Left:          &ast.Identifier{BaseNode: ast.BaseNode{Kind: token.IdentifierNode}, Name: "a"},
		Right: &ast.BinaryExpression{
			BaseNode:      ast.BaseNode{Kind: token.BinaryExpressionNode},
			OperatorToken: &ast.TokenNode{BaseNode: ast.BaseNode{Kind: token.AsteriskToken}},
			Left:          &ast.Identifier{BaseNode: ast.BaseNode{Kind: token.IdentifierNode}, Name: "b"},
			Right:         &ast.Identifier{BaseNode: ast.BaseNode{Kind: token.IdentifierNode}, Name: "c"},
		},
	}

	diffOpts := cmp.Options{
		ignoreParent,
		cmpopts.IgnoreFields(ast.BaseNode{}, "Position", "Flags"),
	}
	if diff := cmp.Diff(want, got, diffOpts); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s\ngot dump:\n%s", diff, dumpString(got))
	}
}

// Call expressions with arguments.
func TestCallExpressionWithArgs(t *testing.T) {
	f := mustParse(t, "{ f(1, a + b); }")
	stmt := f.Statements.Items[0].(*ast.BlockStatement).Statements.Items[0].(*ast.ExpressionStatement)
	call, ok := stmt.Expression.(*ast.CallExpression)
	require.True(t, ok)
	require.Equal(t, "f", call.Callee.(*ast.Identifier).Name)
	require.Len(t, call.Args.Items, 2)
	require.Equal(t, "1", call.Args.Items[0].(*ast.IntegerLiteral).Text)
	_, ok = call.Args.Items[1].(*ast.BinaryExpression)
	require.True(t, ok)
}

// Parent invariants (spec.md §8 invariants 3, 4): every non-root node's
// Parent is set, and every child's span lies within its parent's span.
func TestParentChainInvariants(t *testing.T) {
	f := mustParse(t, "func f(a: int): int { let x: int = a + 1; return x; }")
	var walk func(n ast.Node, parent ast.Node)
	walk = func(n ast.Node, parent ast.Node) {
		if n == nil {
			return
		}
		b := n.Base()
		if parent != nil {
			require.NotNil(t, b.Parent, "node %T at pos %d has no parent", n, b.Pos)
			pb := parent.Base()
			require.True(t, pb.Position.Contains(b.Position), "node %T at pos %d not contained in parent span", n, b.Pos)
		} else {
			require.Nil(t, b.Parent)
		}
	}

	decl := f.Statements.Items[0].(*ast.FuncDeclarationStatement).Declaration
	walk(f, nil)
	walk(decl.Name, f)
	for _, param := range decl.Params.Items {
		walk(param, decl)
		walk(param.Name, param)
		walk(param.Type, param)
	}
	walk(decl.Type, decl)
	body := decl.Body
	walk(body, decl)
	varStmt := body.Statements.Items[0].(*ast.VarDeclarationStatement)
	walk(varStmt, body)
	walk(varStmt.Declaration, varStmt)
	bin := varStmt.Declaration.Initializer.(*ast.BinaryExpression)
	walk(bin, varStmt.Declaration)
	walk(bin.Left, bin)
	walk(bin.Right, bin)
	retStmt := body.Statements.Items[1].(*ast.ReturnStatement)
	walk(retStmt, body)
	walk(retStmt.Expression, retStmt)
}

// Stacks must be empty at a successful return (spec.md §8 invariant 5).
func TestStacksEmptyAfterSuccessfulParse(t *testing.T) {
	s := scanner.New([]byte("func f(): void { if (true) { let x: int = 1; } }"))
	p := New(s, "test.unholy")
	_ = p.parseSourceFile()
	require.Empty(t, p.contextStack)
	require.Empty(t, p.parentStack)
}
