// Package parser implements the recursive-descent, precedence-climbing
// parser for Unholy source text, producing a fully linked *ast.SourceFile.
//
// The overall shape — a parser struct holding one token of lookahead plus
// a stack of "current node" context, with a node(n) func() closure that
// decorates position and pushes/pops that stack — is dennwc-webidl's
// sourceParser.node. Fatal-on-first-error propagation via a recovered
// panic is jschaf-bibtex's bailout{} idiom (parser.go's `type bailout
// struct{}` caught in the top-level Parse wrapper), adapted here because
// spec.md requires the first error to abort the whole parse rather than
// bibtex's synchronize-and-continue error recovery.
package parser

import (
	"log/slog"
	"os"

	"github.com/fef1312/unholy/ast"
	"github.com/fef1312/unholy/diag"
	"github.com/fef1312/unholy/scanner"
	"github.com/fef1312/unholy/token"
)

// Option configures a Parser at construction time.
type Option func(*Parser)

// WithLogger attaches a trace logger; every grammar production logs a
// Debug entry naming itself and the current token when set. Nil (the
// default) disables tracing entirely.
func WithLogger(l *slog.Logger) Option {
	return func(p *Parser) { p.logger = l }
}

// Parser holds all mutable state for a single parse. Not safe for
// concurrent use; construct one Parser per source file (spec.md §5).
type Parser struct {
	scanner  *scanner.Scanner
	fileName string
	logger   *slog.Logger

	current scanner.SemanticElement

	context      Context
	contextStack []Context

	parent      ast.Node
	parentStack []ast.Node
}

// New constructs a Parser reading tokens from s. The initial context is
// SourceElements and the initial parent is nil, matching spec.md
// §4.2 ("At start, context = SourceElements, parent = the fresh
// SourceFile") — the SourceFile node itself is created by
// parseSourceFile, which then becomes the first pushed parent.
func New(s *scanner.Scanner, fileName string, opts ...Option) *Parser {
	p := &Parser{
		scanner:  s,
		fileName: fileName,
		context:  SourceElements,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseFile reads path, scans, and parses it into a fully linked
// *ast.SourceFile. On any lexical or parse error the first error is
// turned into a diagnostic and returned; no partial tree is ever
// returned (spec.md §4.2.5, §7).
func ParseFile(path string, opts ...Option) (*ast.SourceFile, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(src, path, opts...)
}

// Parse scans and parses an already-materialized source buffer, naming
// it fileName for diagnostics. ParseFile is a thin os.ReadFile wrapper
// around this; tests call Parse directly to avoid touching disk.
func Parse(src []byte, fileName string, opts ...Option) (file *ast.SourceFile, err error) {
	s := scanner.New(src)
	p := New(s, fileName, opts...)

	defer func() {
		if r := recover(); r != nil {
			file = nil
			err = p.recoverError(r)
		}
	}()

	return p.parseSourceFile(), nil
}

// recoverError converts a recovered panic value into a diag error,
// citing the file and the offending element's position. Anything other
// than a *scanner.FatalError or an internal *parseBailout is a genuine
// programmer error and is re-panicked.
func (p *Parser) recoverError(r any) error {
	switch v := r.(type) {
	case *scanner.FatalError:
		lineContent := p.scanner.LineContentAt(v.At.Pos)
		return diag.NewLexicalError(p.fileName, v.At.Position, lineContent, v.Message)
	case *parseBailout:
		return v.err
	default:
		panic(r)
	}
}

// parseBailout wraps a *diag.ParseError so recoverError can distinguish
// an intentional abort from an unrelated panic, mirroring bibtex's
// `type bailout struct{}` sentinel.
type parseBailout struct {
	err *diag.ParseError
}

// errorf raises a fatal parse error at tok's position and aborts the
// current ParseFile call via panic (spec.md §4.2.5: "all parser errors
// are fatal").
func (p *Parser) errorf(tok scanner.SemanticElement, format string, args ...any) {
	lineContent := p.scanner.LineContentAt(tok.Pos)
	err := diag.NewParseErrorf(p.fileName, tok.Position, lineContent, tok.Kind, format, args...)
	panic(&parseBailout{err: err})
}

// errorExpected raises a fatal "expected X, found Y" parse error.
func (p *Parser) errorExpected(tok scanner.SemanticElement, expected token.SyntaxKind) {
	lineContent := p.scanner.LineContentAt(tok.Pos)
	err := diag.NewParseError(p.fileName, tok.Position, lineContent, expected, tok.Kind)
	panic(&parseBailout{err: err})
}

func (p *Parser) trace(production string) {
	if p.logger == nil {
		return
	}
	p.logger.Debug("parse", "production", production, "kind", p.current.Kind, "pos", p.current.Pos)
}

// --- Token-consumption primitives (spec.md §4.2.1) ----------------------

// consume pulls the next token. If expected is non-empty and the token's
// kind is not among them, raises a fatal parse error.
func (p *Parser) consume(expected ...token.SyntaxKind) scanner.SemanticElement {
	p.current = p.scanner.NextToken()
	if len(expected) > 0 && !kindIn(p.current.Kind, expected) {
		p.errorExpected(p.current, expected[0])
	}
	return p.current
}

// consumeOptional speculatively reads the next token via the scanner's
// try_scan; if its kind is among kinds, the advance commits and current
// is updated, otherwise the scanner is restored and current is
// untouched.
func (p *Parser) consumeOptional(kinds ...token.SyntaxKind) (scanner.SemanticElement, bool) {
	var next scanner.SemanticElement
	matched := scanner.TryScan(p.scanner, func() bool {
		next = p.scanner.NextToken()
		return kindIn(next.Kind, kinds)
	})
	if matched {
		p.current = next
		return next, true
	}
	return next, false
}

// speculate commits the scanner advance iff pred(token) is truthy,
// updating current on commit.
func (p *Parser) speculate(pred func(scanner.SemanticElement) bool) (scanner.SemanticElement, bool) {
	var next scanner.SemanticElement
	matched := scanner.TryScan(p.scanner, func() bool {
		next = p.scanner.NextToken()
		return pred(next)
	})
	if matched {
		p.current = next
		return next, true
	}
	return next, false
}

// peek returns the next token without committing.
func (p *Parser) peek() scanner.SemanticElement {
	return scanner.LookAhead(p.scanner, func() scanner.SemanticElement {
		return p.scanner.NextToken()
	})
}

// assertKind checks the current token without advancing.
func (p *Parser) assertKind(expected ...token.SyntaxKind) {
	if !kindIn(p.current.Kind, expected) {
		p.errorExpected(p.current, expected[0])
	}
}

func kindIn(kind token.SyntaxKind, set []token.SyntaxKind) bool {
	for _, k := range set {
		if kind == k {
			return true
		}
	}
	return false
}

// --- Parent chain (spec.md §4.2.3) --------------------------------------

// startPos captures the current token's position as a fresh node's start
// position, with length 0 (filled in by the matching beginNode closure).
func (p *Parser) startPos() token.Position {
	return token.Position{
		Line:   p.current.Line,
		Column: p.current.Column,
		Pos:    p.current.Pos,
	}
}

// beginNode implements push_parent/pop_parent/finalize_node as a single
// closure (SPEC_FULL.md §5): it pushes n as the current parent so nested
// productions parent their own nodes to n, and returns a closure — call
// it via `defer p.beginNode(n)()` — that pops back to the enclosing
// parent and then finalizes n: sets n.Parent to that enclosing parent
// (if unset) and computes n.Length from the scanner's position at the
// time the closure runs.
func (p *Parser) beginNode(n ast.Node) func() {
	p.parentStack = append(p.parentStack, p.parent)
	p.parent = n

	return func() {
		last := len(p.parentStack) - 1
		outer := p.parentStack[last]
		p.parentStack = p.parentStack[:last]
		p.parent = outer

		nb := n.Base()
		if nb.Parent == nil {
			nb.Parent = outer
		}
		nb.Length = p.scanner.GetPos() - nb.Pos
	}
}

// propagateError ORs HasError/ChildHasError from a child node into its
// parent's ChildHasError flag (spec.md §7's downstream-tooling flags).
func propagateError(parent ast.Node, child ast.Node) {
	cb := child.Base()
	if cb.Flags&(ast.HasError|ast.ChildHasError) != 0 {
		parent.Base().Flags |= ast.ChildHasError
	}
}

