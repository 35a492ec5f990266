// Statement and declaration grammar (spec.md §4.2.4, §6). The general
// pattern across every production here: on entry, p.current already
// holds the production's own first/introducer token, fetched by
// whichever loop dispatched into it (the source-file loop, a block's
// loop, or a sibling production that hasn't consumed past its own
// introducer yet). A production either reads that token directly (if
// it's a leaf's own value) or immediately calls consume() for whatever
// comes next; it never re-fetches a token someone else already fetched
// for it.
package parser

import (
	"github.com/fef1312/unholy/ast"
	"github.com/fef1312/unholy/token"
)

// parseSourceFile is the top-level production: consume() and, until
// EndOfFileToken, parseStatement() (spec.md §4.2.4).
func (p *Parser) parseSourceFile() *ast.SourceFile {
	p.trace("parseSourceFile")
	sf := &ast.SourceFile{
		BaseNode: ast.BaseNode{Kind: token.SourceFileNode, Position: token.Position{Line: 1, Column: 1, Pos: 0}},
		FileName: p.fileName,
	}
	finish := p.beginNode(sf)
	defer finish()

	p.consume()
	sf.Statements.Position = p.startPos()
	for p.current.Kind != token.EndOfFileToken {
		stmt := p.parseStatement()
		sf.Statements.Items = append(sf.Statements.Items, stmt)
		propagateError(sf, stmt)
		p.consume()
	}
	return sf
}

// parseStatement dispatches on the current token (spec.md §4.2.4).
func (p *Parser) parseStatement() ast.Statement {
	p.trace("parseStatement")
	switch p.current.Kind {
	case token.OpenBraceToken:
		return p.parseBlockStatement()
	case token.LetKeyword:
		return p.parseVarDeclarationStatement()
	case token.FuncKeyword:
		return p.parseFuncDeclarationStatement()
	case token.IfKeyword:
		return p.parseIfStatement()
	case token.ReturnKeyword:
		return p.parseReturnStatement()
	case token.EndOfFileToken:
		p.errorf(p.current, "unexpected end of file")
		return nil
	default:
		if startsExpression(p.current.Kind) {
			return p.parseExpressionStatement()
		}
		p.errorf(p.current, "%s is not a statement", p.current.Kind)
		return nil
	}
}

// parseBlockStatement owns its own `{` (spec.md §9 Open Question 3):
// any caller needing a block body must leave p.current on `{` and call
// this directly, rather than consuming `{` itself and calling
// parseStatement.
func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	p.trace("parseBlockStatement")
	n := &ast.BlockStatement{BaseNode: ast.BaseNode{Kind: token.BlockStatementNode, Position: p.startPos()}}
	finish := p.beginNode(n)
	defer finish()
	// spec.md §4.2.4: "Context is current | BlockStatements while
	// inside" — the one production that explicitly carries ancestor bits
	// forward, so a function's FuncDeclarations bit survives through its
	// own body block and any blocks nested inside it.
	restoreCtx := p.pushContext(p.context | BlockStatements)
	defer restoreCtx()

	p.consume()
	n.Statements.Position = p.startPos()
	for p.current.Kind != token.CloseBraceToken {
		if p.current.Kind == token.EndOfFileToken {
			p.errorf(p.current, "unexpected end of file")
		}
		stmt := p.parseStatement()
		n.Statements.Items = append(n.Statements.Items, stmt)
		propagateError(n, stmt)
		p.consume()
	}
	return n
}

// parseVarDeclarationStatement — `let` Identifier (`:` Type)?
// (`=` Expression)? `;` (spec.md §4.2.4).
func (p *Parser) parseVarDeclarationStatement() *ast.VarDeclarationStatement {
	p.trace("parseVarDeclarationStatement")
	p.assertContext(SourceElements|BlockStatements, true, "let statement")

	n := &ast.VarDeclarationStatement{BaseNode: ast.BaseNode{Kind: token.VarDeclarationStatementNode, Position: p.startPos()}}
	finish := p.beginNode(n)
	defer finish()
	restoreCtx := p.pushContext(VarDeclarations)
	defer restoreCtx()

	n.Declaration = p.parseVarDeclaration()
	p.consume(token.SemicolonToken)
	return n
}

func (p *Parser) parseVarDeclaration() *ast.VarDeclaration {
	p.trace("parseVarDeclaration")
	nameTok := p.consume(token.IdentifierToken)
	n := &ast.VarDeclaration{BaseNode: ast.BaseNode{Kind: token.VarDeclarationNode, Position: posOf(nameTok)}}
	finish := p.beginNode(n)
	defer finish()

	n.Name = p.newIdentifier(nameTok)
	if _, ok := p.consumeOptional(token.ColonToken); ok {
		n.Type = p.parseType()
	}
	if _, ok := p.consumeOptional(token.EqualsToken); ok {
		n.Initializer = p.parseExpression()
	}
	return n
}

// parseFuncDeclarationStatement — `func` is only valid as a true
// top-level statement (spec.md §4.2.2: strict SourceElements context,
// checked before anything nests under it).
func (p *Parser) parseFuncDeclarationStatement() *ast.FuncDeclarationStatement {
	p.trace("parseFuncDeclarationStatement")
	p.assertContext(SourceElements, false, "function declaration")

	n := &ast.FuncDeclarationStatement{BaseNode: ast.BaseNode{Kind: token.FuncDeclarationStatementNode, Position: p.startPos()}}
	finish := p.beginNode(n)
	defer finish()
	restoreCtx := p.pushContext(FuncDeclarations)
	defer restoreCtx()

	n.Declaration = p.parseFuncDeclaration()
	return n
}

func (p *Parser) parseFuncDeclaration() *ast.FuncDeclaration {
	p.trace("parseFuncDeclaration")
	nameTok := p.consume(token.IdentifierToken)
	decl := &ast.FuncDeclaration{BaseNode: ast.BaseNode{Kind: token.FuncDeclarationNode, Position: posOf(nameTok)}}
	finish := p.beginNode(decl)
	defer finish()

	decl.Name = p.newIdentifier(nameTok)

	openParen := p.consume(token.OpenParenToken)
	decl.Params.Position = posOf(openParen)

	func() {
		restoreCtx := p.pushContext(ParameterDeclarations)
		defer restoreCtx()
		if _, ok := p.consumeOptional(token.CloseParenToken); !ok {
			for {
				param := p.parseParameterDeclaration()
				decl.Params.Items = append(decl.Params.Items, param)
				if _, ok := p.consumeOptional(token.CommaToken); ok {
					continue
				}
				break
			}
			p.consume(token.CloseParenToken)
		}
	}()

	p.consume(token.ColonToken)
	decl.Type = p.parseType()

	p.consume(token.OpenBraceToken)
	decl.Body = p.parseBlockStatement()
	return decl
}

// parseParameterDeclaration — Identifier `:` Type (spec.md §4.2.4).
func (p *Parser) parseParameterDeclaration() *ast.ParameterDeclaration {
	p.trace("parseParameterDeclaration")
	p.assertContext(ParameterDeclarations, true, "parameter declaration")

	nameTok := p.consume(token.IdentifierToken)
	n := &ast.ParameterDeclaration{BaseNode: ast.BaseNode{Kind: token.ParameterDeclarationNode, Position: posOf(nameTok)}}
	finish := p.beginNode(n)
	defer finish()

	n.Name = p.newIdentifier(nameTok)
	p.consume(token.ColonToken)
	n.Type = p.parseType()
	return n
}

// parseType accepts exactly the three primitive type keywords (spec.md
// §4.2.4).
func (p *Parser) parseType() ast.TypeNode {
	p.trace("parseType")
	tok := p.consume(token.BoolKeyword, token.IntKeyword, token.VoidKeyword)
	n := &ast.KeywordTypeNode{BaseNode: ast.BaseNode{Kind: tok.Kind, Position: posOf(tok)}}
	p.beginNode(n)()
	return n
}

// parseIfStatement — `if` `(` Expression `)` Statement (`else`
// Statement)?. Branches are generic Statement productions, so `{` is
// never pre-consumed here (spec.md §9 Open Question 3): parseStatement
// itself routes a `{` branch into parseBlockStatement.
func (p *Parser) parseIfStatement() *ast.IfStatement {
	p.trace("parseIfStatement")
	p.assertContext(BlockStatements, true, "if statement")

	n := &ast.IfStatement{BaseNode: ast.BaseNode{Kind: token.IfStatementNode, Position: p.startPos()}}
	finish := p.beginNode(n)
	defer finish()

	p.consume(token.OpenParenToken)
	n.Condition = p.parseExpression()
	p.consume(token.CloseParenToken)

	p.consume()
	n.ThenStatement = p.parseStatement()

	if p.peek().Kind == token.ElseKeyword {
		p.consume(token.ElseKeyword)
		p.consume()
		n.ElseStatement = p.parseStatement()
	}
	return n
}

// parseReturnStatement requires FuncDeclarations AND BlockStatements to
// both be set, exactly (spec.md §4.2.2's one strict check): a bare
// `return` at the top level is rejected (scenario S4 in spec.md §8).
func (p *Parser) parseReturnStatement() *ast.ReturnStatement {
	p.trace("parseReturnStatement")
	p.assertKind(token.ReturnKeyword)
	p.assertContext(FuncDeclarations|BlockStatements, false, "return statement")

	n := &ast.ReturnStatement{BaseNode: ast.BaseNode{Kind: token.ReturnStatementNode, Position: p.startPos()}}
	finish := p.beginNode(n)
	defer finish()

	next := p.consume()
	if next.Kind == token.SemicolonToken {
		return n
	}
	n.Expression = p.parseAssignmentOrHigher()
	p.consume(token.SemicolonToken)
	return n
}

// parseExpressionStatement — Expression `;`. p.current already holds
// the expression's first token (the caller's dispatch already
// classified it via startsExpression), so this parses directly from
// parseAssignmentOrHigher rather than parseExpression's self-fetching
// wrapper.
func (p *Parser) parseExpressionStatement() *ast.ExpressionStatement {
	p.trace("parseExpressionStatement")
	p.assertContext(BlockStatements, true, "expression statement")

	n := &ast.ExpressionStatement{BaseNode: ast.BaseNode{Kind: token.ExpressionStatementNode, Position: p.startPos()}}
	finish := p.beginNode(n)
	defer finish()

	n.Expression = p.parseAssignmentOrHigher()
	p.consume(token.SemicolonToken)
	return n
}
