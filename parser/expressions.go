// Expression grammar: Pratt/precedence-climbing parsing (spec.md §4.2.4,
// §6). Two entry points are exposed internally: parseExpression, used
// wherever the caller has NOT yet fetched the expression's first token
// (right after `(`, `=`, `,`), and parseAssignmentOrHigher, used wherever
// the caller already has — e.g. an expression statement, whose first
// token was already fetched by the enclosing block/source-file loop to
// decide that it's looking at an expression statement in the first place,
// or a return statement, which fetches the token after `return` to check
// for `;`.
package parser

import (
	"github.com/fef1312/unholy/ast"
	"github.com/fef1312/unholy/token"
)

// parseExpression fetches the expression's first token, then parses it.
func (p *Parser) parseExpression() ast.Expression {
	p.consume()
	return p.parseAssignmentOrHigher()
}

// parseAssignmentOrHigher assumes p.current already holds the
// expression's first token. Assignment is right-associative, enforced
// by right-recursion, and is folded into a BinaryExpression like any
// other binary operator (spec.md §4.2.4: "no distinct node kind").
func (p *Parser) parseAssignmentOrHigher() ast.Expression {
	p.trace("parseAssignmentOrHigher")
	left := p.parseBinaryOrHigher(0)

	next := p.peek()
	if !token.IsAssignment(next.Kind) {
		return left
	}

	opTok := p.consume(token.EqualsToken)
	op := newTokenNode(opTok)
	p.consume()
	right := p.parseAssignmentOrHigher()
	return p.newBinaryExpression(left, op, right)
}

// parseBinaryOrHigher folds a left-deep chain of binary operators whose
// precedence strictly exceeds minPrec, left-associatively (spec.md
// §4.2.4). Assignment is explicitly excluded: it has its own,
// right-associative, handling one level up in parseAssignmentOrHigher.
func (p *Parser) parseBinaryOrHigher(minPrec int) ast.Expression {
	p.trace("parseBinaryOrHigher")
	left := p.parsePrimary()

	for {
		next := p.peek()
		if token.IsAssignment(next.Kind) {
			return left
		}
		prec := token.Precedence(next.Kind)
		if prec <= minPrec {
			return left
		}

		opTok := p.consume(next.Kind)
		op := newTokenNode(opTok)
		p.consume()
		right := p.parseBinaryOrHigher(prec)
		left = p.newBinaryExpression(left, op, right)
	}
}

// parsePrimary parses the innermost expression forms: literals, and
// identifiers optionally followed by a call's argument list (spec.md
// §4.2.4, §6's Primary production).
func (p *Parser) parsePrimary() ast.Expression {
	p.trace("parsePrimary")
	switch p.current.Kind {
	case token.IdentifierToken:
		ident := p.newIdentifier(p.current)
		if p.peek().Kind != token.OpenParenToken {
			return ident
		}
		return p.parseCallExpression(ident)
	case token.IntegerLiteralToken:
		return p.newIntegerLiteral(p.current)
	case token.TrueKeyword, token.FalseKeyword:
		return p.newBoolLiteral(p.current)
	default:
		p.errorf(p.current, "expected an expression, found %s", p.current.Kind)
		return nil
	}
}

// parseCallExpression builds a CallExpression for callee(...). callee
// was already fully parsed and finalized by parsePrimary; its Parent is
// corrected here (see newBinaryExpression's doc comment for why). The
// argument list's own nodes don't need the same correction: the call
// node is pushed as the current parent before they're parsed, so they
// pick up the right Parent the ordinary way.
func (p *Parser) parseCallExpression(callee *ast.Identifier) *ast.CallExpression {
	p.trace("parseCallExpression")
	n := &ast.CallExpression{
		BaseNode: ast.BaseNode{Kind: token.CallExpressionNode, Position: callee.Position},
		Callee:   callee,
	}
	callee.Parent = n
	finish := p.beginNode(n)
	defer finish()

	openParen := p.consume(token.OpenParenToken)
	n.Args.Position = posOf(openParen)

	restoreCtx := p.pushContext(ArgExpressions)
	defer restoreCtx()

	if _, ok := p.consumeOptional(token.CloseParenToken); !ok {
		for {
			arg := p.parseArgExpression()
			n.Args.Items = append(n.Args.Items, arg)
			if _, ok := p.consumeOptional(token.CommaToken); ok {
				continue
			}
			break
		}
		p.consume(token.CloseParenToken)
	}
	return n
}

// parseArgExpression asserts argument-expression context, then parses
// one comma-list element of a call's argument list.
func (p *Parser) parseArgExpression() ast.Expression {
	p.assertContext(ArgExpressions, true, "argument expression")
	return p.parseExpression()
}
