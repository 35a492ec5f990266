package scanner

import (
	"testing"

	"github.com/fef1312/unholy/token"
)

// scannerTest mirrors the table shape of dennwc-webidl/parser's
// lexerTests: a name, an input, and the expected token sequence.
type scannerTest struct {
	name   string
	input  string
	tokens []Token
}

func tok(kind token.SyntaxKind, text string) Token {
	return Token{Kind: kind, RawText: text, Value: text}
}

var tEOF = Token{Kind: token.EndOfFileToken}

var scannerTests = []scannerTest{
	{"empty", "", []Token{tEOF}},
	{"single space", " ", []Token{tEOF}},
	{"tabs and spaces", "  \t\t  ", []Token{tEOF}},

	{"braces", "{}", []Token{tok(token.OpenBraceToken, "{"), tok(token.CloseBraceToken, "}"), tEOF}},
	{"parens", "()", []Token{tok(token.OpenParenToken, "("), tok(token.CloseParenToken, ")"), tEOF}},
	{"punctuation", ";,:", []Token{
		tok(token.SemicolonToken, ";"), tok(token.CommaToken, ","), tok(token.ColonToken, ":"), tEOF,
	}},

	{"operators", "+-*/%<>", []Token{
		tok(token.PlusToken, "+"), tok(token.MinusToken, "-"), tok(token.AsteriskToken, "*"),
		tok(token.SlashToken, "/"), tok(token.PercentToken, "%"),
		tok(token.LessThanToken, "<"), tok(token.GreaterThanToken, ">"), tEOF,
	}},
	{"equals", "=", []Token{tok(token.EqualsToken, "="), tEOF}},
	{"equals equals", "==", []Token{tok(token.EqualsEqualsToken, "=="), tEOF}},
	{"equals then equals equals", "= ==", []Token{
		tok(token.EqualsToken, "="), tok(token.EqualsEqualsToken, "=="), tEOF,
	}},

	{"integer", "42", []Token{tok(token.IntegerLiteralToken, "42"), tEOF}},
	{"integer run", "1 2 3", []Token{
		tok(token.IntegerLiteralToken, "1"), tok(token.IntegerLiteralToken, "2"),
		tok(token.IntegerLiteralToken, "3"), tEOF,
	}},

	{"identifier", "foo", []Token{tok(token.IdentifierToken, "foo"), tEOF}},
	{"identifier with underscore and dollar", "_foo$bar", []Token{
		tok(token.IdentifierToken, "_foo$bar"), tEOF,
	}},
	{"identifier with digits", "a1b2", []Token{tok(token.IdentifierToken, "a1b2"), tEOF}},
	{"non-ascii identifier", "café", []Token{tok(token.IdentifierToken, "café"), tEOF}},

	{"keywords", "let func if else return true false bool int void", []Token{
		tok(token.LetKeyword, "let"), tok(token.FuncKeyword, "func"), tok(token.IfKeyword, "if"),
		tok(token.ElseKeyword, "else"), tok(token.ReturnKeyword, "return"),
		tok(token.TrueKeyword, "true"), tok(token.FalseKeyword, "false"),
		tok(token.BoolKeyword, "bool"), tok(token.IntKeyword, "int"), tok(token.VoidKeyword, "void"), tEOF,
	}},

	{"uppercase lookalike is not a keyword", "Let", []Token{tok(token.IdentifierToken, "Let"), tEOF}},
	{"underscore lookalike is not a keyword", "_if", []Token{tok(token.IdentifierToken, "_if"), tEOF}},

	{"newline separates identifiers", "a\nb", []Token{tok(token.IdentifierToken, "a"), tok(token.IdentifierToken, "b"), tEOF}},
}

func collect(input string) []Token {
	s := New([]byte(input))
	var out []Token
	for {
		t := s.NextToken()
		out = append(out, t)
		if t.Kind == token.EndOfFileToken {
			break
		}
	}
	return out
}

func equalKindsAndText(got, want []Token) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i].Kind != want[i].Kind || got[i].RawText != want[i].RawText {
			return false
		}
	}
	return true
}

func TestScannerBasic(t *testing.T) {
	for _, tt := range scannerTests {
		t.Run(tt.name, func(t *testing.T) {
			got := collect(tt.input)
			if !equalKindsAndText(got, tt.tokens) {
				t.Errorf("%s: got\n\t%+v\nexpected\n\t%+v", tt.name, got, tt.tokens)
			}
		})
	}
}

func TestScannerEOFIsSticky(t *testing.T) {
	s := New([]byte("x"))
	s.NextToken()
	first := s.NextToken()
	second := s.NextToken()
	if first.Kind != token.EndOfFileToken || second.Kind != token.EndOfFileToken {
		t.Fatalf("expected EndOfFileToken indefinitely, got %v then %v", first.Kind, second.Kind)
	}
}

func TestScannerPositions(t *testing.T) {
	s := New([]byte("let x\n  y;"))
	let := s.NextToken()
	if let.Line != 1 || let.Column != 1 || let.Pos != 0 || let.Length != 3 {
		t.Fatalf("unexpected position for 'let': %+v", let.Position)
	}
	x := s.NextToken()
	if x.Line != 1 || x.Column != 5 || x.Pos != 4 {
		t.Fatalf("unexpected position for 'x': %+v", x.Position)
	}
	y := s.NextToken()
	if y.Line != 2 || y.Column != 3 {
		t.Fatalf("unexpected position for 'y': %+v", y.Position)
	}
}

func TestLookAheadNeverChangesState(t *testing.T) {
	s := New([]byte("a b c"))
	before := s.GetPos()
	peeked := LookAhead(s, func() Token { return s.NextToken() })
	after := s.GetPos()
	if before != after {
		t.Fatalf("LookAhead changed scanner position: %d -> %d", before, after)
	}
	if peeked.RawText != "a" {
		t.Fatalf("LookAhead returned wrong token: %+v", peeked)
	}
	// The scanner must still produce 'a' first since LookAhead restored state.
	next := s.NextToken()
	if next.RawText != "a" {
		t.Fatalf("expected 'a' after LookAhead restore, got %q", next.RawText)
	}
}

func TestTryScanCommitsOnlyWhenTruthy(t *testing.T) {
	s := New([]byte("a b"))

	committed := TryScan(s, func() bool {
		tok := s.NextToken()
		return tok.RawText == "a"
	})
	if !committed {
		t.Fatal("expected TryScan to report true for matching token")
	}
	if s.NextToken().RawText != "b" {
		t.Fatal("expected TryScan to commit the advance past 'a'")
	}

	s2 := New([]byte("a b"))
	rejected := TryScan(s2, func() bool {
		tok := s2.NextToken()
		return tok.RawText == "zzz"
	})
	if rejected {
		t.Fatal("expected TryScan to report false")
	}
	if s2.NextToken().RawText != "a" {
		t.Fatal("expected TryScan to restore position after a falsy callback")
	}
}

func TestFutureReservedWordIsFatal(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic for future-reserved word")
		}
		fe, ok := r.(*FatalError)
		if !ok {
			t.Fatalf("expected *FatalError, got %T", r)
		}
		if fe.At.Column != 5 {
			t.Fatalf("expected column 5, got %d", fe.At.Column)
		}
	}()
	s := New([]byte("let while"))
	s.NextToken()
	s.NextToken()
}

func TestBareCarriageReturnIsFatal(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic for bare carriage return")
		}
		if _, ok := r.(*FatalError); !ok {
			t.Fatalf("expected *FatalError, got %T", r)
		}
	}()
	s := New([]byte("a\rb"))
	s.NextToken()
	s.NextToken()
}
