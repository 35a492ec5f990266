package token

// kindText is the canonical kind -> source-text table for tokens that have
// exactly one spelling (punctuation, operators, keywords). Node kinds get a
// descriptive name instead, for diagnostics and %v formatting.
var kindText = map[SyntaxKind]string{
	Unknown:        "Unknown",
	EndOfFileToken: "EndOfFileToken",

	OpenBraceToken:   "{",
	CloseBraceToken:  "}",
	OpenParenToken:   "(",
	CloseParenToken:  ")",
	SemicolonToken:   ";",
	CommaToken:       ",",
	ColonToken:       ":",

	PlusToken:         "+",
	MinusToken:        "-",
	AsteriskToken:     "*",
	SlashToken:        "/",
	PercentToken:      "%",
	LessThanToken:     "<",
	GreaterThanToken:  ">",
	EqualsToken:       "=",
	EqualsEqualsToken: "==",

	IdentifierToken:     "Identifier",
	IntegerLiteralToken: "IntegerLiteral",

	BoolKeyword:   "bool",
	ElseKeyword:   "else",
	FalseKeyword:  "false",
	FuncKeyword:   "func",
	IfKeyword:     "if",
	IntKeyword:    "int",
	LetKeyword:    "let",
	ReturnKeyword: "return",
	TrueKeyword:   "true",
	VoidKeyword:   "void",

	IdentifierNode:               "Identifier",
	IntegerLiteralNode:           "IntegerLiteral",
	BinaryExpressionNode:         "BinaryExpression",
	CallExpressionNode:           "CallExpression",
	VarDeclarationNode:           "VarDeclaration",
	ParameterDeclarationNode:     "ParameterDeclaration",
	FuncDeclarationNode:          "FuncDeclaration",
	BlockStatementNode:           "BlockStatement",
	VarDeclarationStatementNode:  "VarDeclarationStatement",
	FuncDeclarationStatementNode: "FuncDeclarationStatement",
	ExpressionStatementNode:      "ExpressionStatement",
	IfStatementNode:              "IfStatement",
	ReturnStatementNode:          "ReturnStatement",
	SourceFileNode:               "SourceFile",
}

// Keywords maps reserved words to their SyntaxKind. Built once from the
// kindText table entries in the keyword range, the same way token.Lookup
// tables in koblas-cedar-go/token are built from a single source of truth
// rather than maintained twice.
var Keywords = func() map[string]SyntaxKind {
	m := make(map[string]SyntaxKind, keywordEnd-keywordStart-1)
	for k := keywordStart + 1; k < keywordEnd; k++ {
		m[kindText[k]] = k
	}
	return m
}()

// LookupIdentifier classifies text as a keyword (returning its SyntaxKind)
// or as a plain Identifier.
func LookupIdentifier(text string) SyntaxKind {
	if kind, ok := Keywords[text]; ok {
		return kind
	}
	return IdentifierToken
}

// FutureReserved is the rejection list of words not currently keywords but
// reserved for forward compatibility. Any identifier spelled exactly as one
// of these is a fatal lexical error (spec.md §6, §8 invariant 8).
var FutureReserved = map[string]bool{
	"abstract": true, "async": true, "atomic": true, "attribute": true,
	"await": true, "break": true, "class": true, "do": true, "byte": true,
	"char": true, "complex": true, "continue": true, "declare": true,
	"double": true, "enum": true, "export": true, "exposed": true,
	"extends": true, "extern": true, "final": true, "float": true,
	"for": true, "from": true, "goto": true, "implements": true,
	"import": true, "inline": true, "interface": true, "local": true,
	"long": true, "namespace": true, "new": true, "null": true, "of": true,
	"operator": true, "private": true, "protected": true, "public": true,
	"short": true, "static": true, "struct": true, "super": true,
	"synchronized": true, "string": true, "this": true, "type": true,
	"ubyte": true, "uint": true, "ulong": true, "ushort": true,
	"vec2": true, "vec3": true, "vec4": true, "while": true, "with": true,
}

// Precedence returns the binding power of a binary/assignment operator
// kind, or -1 if kind is not a binary operator. Higher binds tighter.
// Table per spec.md §6.
func Precedence(kind SyntaxKind) int {
	switch kind {
	case EqualsToken:
		return 2
	case EqualsEqualsToken:
		return 9
	case LessThanToken, GreaterThanToken:
		return 10
	case PlusToken, MinusToken:
		return 13
	case AsteriskToken, SlashToken, PercentToken:
		return 14
	default:
		return -1
	}
}

// IsAssignment reports whether kind is an assignment operator.
func IsAssignment(kind SyntaxKind) bool {
	return kind == EqualsToken
}
