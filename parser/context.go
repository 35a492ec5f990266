package parser

// Context is the bitset tracking which grammatical region the parser
// currently lies inside (spec.md §4.2.2). Productions that enter a
// nested region push a new value and restore the old one on return.
type Context uint16

const (
	SourceElements Context = 1 << iota
	BlockStatements
	VarDeclarations
	FuncDeclarations
	ParameterDeclarations
	SignatureDeclarations // reserved, unused by any production today
	ArgExpressions
)

// pushContext saves the current context and replaces it with next,
// returning a closure that restores the saved value — used as
// `defer p.pushContext(x)()` (spec.md §4.2.2: "push_context(new)"). Most
// callers pass a fresh, single-region value (VarDeclarations,
// FuncDeclarations, ParameterDeclarations, ArgExpressions) that
// deliberately does not carry ancestor bits forward — entering a func
// declaration at the true top level must leave SourceElements behind, or
// the strict context == FuncDeclarations|BlockStatements check
// parse_return_statement relies on could never hold, since SourceElements
// would still be set arbitrarily deep inside the function. The one
// exception spec.md states explicitly is parse_block_statement, which
// computes `current | BlockStatements` itself before calling this —
// that's what lets FuncDeclarations survive through a function's own body
// block (and any blocks nested inside it, e.g. an if-branch) so return's
// strict check still sees both bits set.
func (p *Parser) pushContext(next Context) func() {
	p.contextStack = append(p.contextStack, p.context)
	p.context = next
	return p.popContext
}

// popContext restores the context saved by the most recent pushContext.
func (p *Parser) popContext() {
	n := len(p.contextStack) - 1
	p.context = p.contextStack[n]
	p.contextStack = p.contextStack[:n]
}

// assertContext enforces that the current context satisfies required,
// per spec.md §4.2.2: loose means "at least one of required is set",
// strict means "context equals required exactly". A violation raises a
// parse error citing construct as the disallowed thing.
func (p *Parser) assertContext(required Context, loose bool, construct string) {
	ok := false
	if loose {
		ok = p.context&required != 0
	} else {
		ok = p.context == required
	}
	if !ok {
		p.errorf(p.current, "%s is not allowed in this context", construct)
	}
}
