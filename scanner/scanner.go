// Package scanner implements the hand-written lexer for Unholy source
// text. It takes a UTF-8 byte slice and produces a lazy stream of tokens,
// with explicit save/restore support for the parser's lookahead and
// speculative parsing.
//
// The byte-offset state (pos/tokenStart/line/lineStart, with decodeRune
// and peekByte helpers that read without advancing) is modeled on the
// go/scanner-derived scanners in the pack (jschaf-bibtex/scanner,
// koblas-cedar-go/scanner); the
// explicit snapshot stack on top of that is this grammar's equivalent of
// dennwc-webidl's peekableLexer, adapted from a token-buffer design to a
// position-snapshot design because spec.md's look_ahead/try_scan must
// restore scan position, not just un-consume buffered tokens.
package scanner

import (
	"unicode/utf8"

	"github.com/fef1312/unholy/token"
)

const eof = -1

// SemanticElement is the scanner's output record — spec.md calls it
// "Token" in prose and "SemanticElement" in the data model; we use the
// latter as the type name and keep "Token" as a shorter alias.
type SemanticElement struct {
	Kind    token.SyntaxKind
	token.Position
	RawText string
	// Value is the normalized text for literals. For this grammar it is
	// always equal to RawText (spec.md §3); kept as a distinct field so a
	// later grammar with escapes/radix prefixes doesn't need a shape
	// change.
	Value string
}

// Token is an alias for SemanticElement; spec.md uses both names for the
// same record. The scanner's tests use the shorter name; the parser uses
// SemanticElement.
type Token = SemanticElement

// snapshot captures the scanner fields that look_ahead/try_scan must
// restore. Deliberately narrow — only what §4.1 lists, nothing derived.
type snapshot struct {
	pos        int
	line       int
	lineStart  int
	tokenStart int
}

// Scanner holds the scanner's mutable state while processing a single,
// immutable source buffer. It is not safe for concurrent use; callers
// needing concurrent parses must each construct their own Scanner
// (spec.md §5).
type Scanner struct {
	src []byte

	pos        int // byte offset of the next rune to scan
	tokenStart int // pos at the start of the token currently being produced
	line       int // 1-based
	lineStart  int // pos at the start of the current line

	stack []snapshot // LIFO save/restore stack for lookahead/speculation
}

// New constructs a Scanner over src. src must be valid UTF-8; the scanner
// does not re-validate encoding beyond what it needs to advance correctly.
func New(src []byte) *Scanner {
	return &Scanner{
		src:       src,
		pos:       0,
		line:      1,
		lineStart: 0,
	}
}

// GetPos returns the scanner's current byte offset, for diagnostics.
func (s *Scanner) GetPos() int { return s.pos }

// GetLineContent returns the full text of the line containing the
// scanner's current position, for diagnostic rendering.
func (s *Scanner) GetLineContent() string {
	return s.lineContentAt(s.pos)
}

// LineContentAt returns the full text of the line containing byte offset
// pos, regardless of the scanner's current position — used by the parser
// to render the line an already-consumed token or a recovered
// *FatalError came from.
func (s *Scanner) LineContentAt(pos int) string {
	return s.lineContentAt(pos)
}

func (s *Scanner) lineContentAt(pos int) string {
	start := pos
	for start > 0 && s.src[start-1] != '\n' {
		start--
	}
	end := pos
	for end < len(s.src) && s.src[end] != '\n' {
		end++
	}
	return string(s.src[start:end])
}

// save pushes the current position state onto the snapshot stack.
func (s *Scanner) save() {
	s.stack = append(s.stack, snapshot{
		pos:        s.pos,
		line:       s.line,
		lineStart:  s.lineStart,
		tokenStart: s.tokenStart,
	})
}

// restore pops the most recent snapshot and applies it.
func (s *Scanner) restore() {
	n := len(s.stack) - 1
	snap := s.stack[n]
	s.stack = s.stack[:n]
	s.pos = snap.pos
	s.line = snap.line
	s.lineStart = snap.lineStart
	s.tokenStart = snap.tokenStart
}

// discard pops the most recent snapshot without restoring it, keeping
// whatever advance happened since save().
func (s *Scanner) discard() {
	s.stack = s.stack[:len(s.stack)-1]
}

// LookAhead executes fn with the scanner advanced, then unconditionally
// restores scanner state to the pre-call snapshot, regardless of fn's
// return value. Used for peek-without-commit (spec.md §4.1, §8
// invariant 10).
func LookAhead[T any](s *Scanner, fn func() T) T {
	s.save()
	result := fn()
	s.restore()
	return result
}

// TryScan executes fn; if fn's result is truthy the advance fn performed
// is kept, otherwise scanner state is restored to the pre-call snapshot
// (spec.md §4.1, §8 invariant 10).
func TryScan[T ~bool](s *Scanner, fn func() T) T {
	s.save()
	result := fn()
	if bool(result) {
		s.discard()
	} else {
		s.restore()
	}
	return result
}

// PeekToken performs n-deep, non-committing lookahead (n >= 1), a direct
// generalization of LookAhead built on the same snapshot stack — see
// SPEC_FULL.md §5 ("Lookahead-token buffering"), grounded on
// dennwc-webidl's peekableLexer.peekToken.
func (s *Scanner) PeekToken(n int) SemanticElement {
	if n < 1 {
		panic("scanner: PeekToken requires n >= 1")
	}
	s.save()
	defer s.restore()
	var tok SemanticElement
	for i := 0; i < n; i++ {
		tok = s.NextToken()
	}
	return tok
}

func (s *Scanner) atEOF() bool { return s.pos >= len(s.src) }

// peekByte returns the byte at the scanner's current position without
// advancing, or 0 past the end of input.
func (s *Scanner) peekByte() byte {
	if s.atEOF() {
		return 0
	}
	return s.src[s.pos]
}

// NextToken advances and returns the next token. After the final token it
// returns EndOfFileToken indefinitely (spec.md §4.1).
func (s *Scanner) NextToken() SemanticElement {
	s.skipWhitespace()

	if s.atEOF() {
		return SemanticElement{
			Kind: token.EndOfFileToken,
			Position: token.Position{
				Line:   s.line,
				Column: s.pos - s.lineStart + 1,
				Pos:    s.pos,
				Length: 0,
			},
		}
	}

	s.tokenStart = s.pos
	startLine := s.line
	startColumn := s.tokenStart - s.lineStart + 1

	kind, value := s.scanOne()

	return SemanticElement{
		Kind: kind,
		Position: token.Position{
			Line:   startLine,
			Column: startColumn,
			Pos:    s.tokenStart,
			Length: s.pos - s.tokenStart,
		},
		RawText: string(s.src[s.tokenStart:s.pos]),
		Value:   value,
	}
}

// skipWhitespace consumes spaces, tabs, vertical tabs and line feeds,
// tracking line/lineStart as it goes. A bare carriage return is fatal
// (spec.md §4.1 step 1).
func (s *Scanner) skipWhitespace() {
	for !s.atEOF() {
		switch s.src[s.pos] {
		case ' ', '\t', '\v':
			s.pos++
		case '\n':
			s.pos++
			s.line++
			s.lineStart = s.pos
		case '\r':
			at := s.elementAt(s.pos)
			at.RawText = "\r"
			at.Length = 1
			panic(&FatalError{
				Message: "FATAL: Windows encountered",
				At:      at,
			})
		default:
			return
		}
	}
}

func (s *Scanner) elementAt(pos int) SemanticElement {
	return SemanticElement{
		Kind: token.Unknown,
		Position: token.Position{
			Line:   s.line,
			Column: pos - s.lineStart + 1,
			Pos:    pos,
			Length: 0,
		},
	}
}

// scanOne dispatches on the first byte of the current token and returns
// its kind plus its normalized value (integer literals, identifiers and
// keywords carry their text; punctuation, operators and Unknown carry an
// empty value). s.tokenStart == s.pos on entry.
func (s *Scanner) scanOne() (token.SyntaxKind, string) {
	b := s.src[s.pos]

	switch b {
	case '{':
		s.pos++
		return token.OpenBraceToken, ""
	case '}':
		s.pos++
		return token.CloseBraceToken, ""
	case '(':
		s.pos++
		return token.OpenParenToken, ""
	case ')':
		s.pos++
		return token.CloseParenToken, ""
	case ';':
		s.pos++
		return token.SemicolonToken, ""
	case ',':
		s.pos++
		return token.CommaToken, ""
	case ':':
		s.pos++
		return token.ColonToken, ""
	case '+':
		s.pos++
		return token.PlusToken, ""
	case '-':
		s.pos++
		return token.MinusToken, ""
	case '*':
		s.pos++
		return token.AsteriskToken, ""
	case '/':
		s.pos++
		return token.SlashToken, ""
	case '%':
		s.pos++
		return token.PercentToken, ""
	case '<':
		s.pos++
		return token.LessThanToken, ""
	case '>':
		s.pos++
		return token.GreaterThanToken, ""
	case '=':
		s.pos++
		if s.peekByte() == '=' {
			s.pos++
			return token.EqualsEqualsToken, ""
		}
		return token.EqualsToken, ""
	}

	if isDecimalDigit(b) {
		text := s.scanDigits(10)
		return token.IntegerLiteralToken, text
	}

	if r, _ := s.decodeRune(); isIdentifierStart(r) {
		text := s.scanIdentifierRun()
		// Keywords (and the future-reserved rejection list) are only
		// matched when the first code point is a lowercase ASCII
		// letter (spec.md §4.1) — "_foo", "$foo", "Foo" and non-ASCII
		// identifiers are never keywords even if they happen to spell
		// one.
		if r >= 'a' && r <= 'z' {
			if token.FutureReserved[text] {
				at := s.elementAt(s.tokenStart)
				at.RawText = text
				at.Length = len(text)
				panic(&FatalError{
					Message: `"` + text + `" is a reserved keyword`,
					At:      at,
				})
			}
			return token.LookupIdentifier(text), text
		}
		return token.IdentifierToken, text
	}

	// Unrecognized byte: emit Unknown and make progress by one rune so
	// the caller doesn't spin.
	_, w := s.decodeRune()
	if w == 0 {
		w = 1
	}
	s.pos += w
	return token.Unknown, ""
}

// scanDigits consumes the maximal run of digits valid for base, returning
// the consumed text. Parameterized by radix per spec.md §4.1 step 2, even
// though only base 10 is reachable from scanOne today — the acceptance
// sets nest binary ⊂ octal ⊂ decimal ⊂ hex so a future 0b/0o/0x prefix
// dispatch can reuse this unchanged.
func (s *Scanner) scanDigits(base int) string {
	start := s.pos
	for !s.atEOF() && isDigitInBase(s.src[s.pos], base) {
		s.pos++
	}
	return string(s.src[start:s.pos])
}

func isDigitInBase(b byte, base int) bool {
	switch base {
	case 2:
		return b == '0' || b == '1'
	case 8:
		return b >= '0' && b <= '7'
	case 10:
		return isDecimalDigit(b)
	case 16:
		return isDecimalDigit(b) || (b|0x20 >= 'a' && b|0x20 <= 'f')
	default:
		panic("scanner: unsupported radix")
	}
}

func isDecimalDigit(b byte) bool { return b >= '0' && b <= '9' }

// decodeRune decodes the rune at the scanner's current position without
// advancing, returning its width in bytes (0 at EOF).
func (s *Scanner) decodeRune() (rune, int) {
	if s.atEOF() {
		return eof, 0
	}
	if s.src[s.pos] < utf8.RuneSelf {
		return rune(s.src[s.pos]), 1
	}
	return utf8.DecodeRune(s.src[s.pos:])
}

// scanIdentifierRun consumes the maximal identifier run starting at the
// scanner's current position (the start rune has already been classified
// as a valid identifier-start by the caller) and returns its text.
func (s *Scanner) scanIdentifierRun() string {
	start := s.pos
	for !s.atEOF() {
		r, w := s.decodeRune()
		if !isIdentifierPart(r) {
			break
		}
		s.pos += w
	}
	return string(s.src[start:s.pos])
}

// isIdentifierStart reports whether r may begin an identifier: a letter,
// underscore, dollar sign, or any non-ASCII code point (spec.md §6).
func isIdentifierStart(r rune) bool {
	switch {
	case r == '_' || r == '$':
		return true
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		return true
	case r > 0x7F:
		return true
	default:
		return false
	}
}

// isIdentifierPart reports whether r may continue an identifier:
// identifier-start set union digits.
func isIdentifierPart(r rune) bool {
	return isIdentifierStart(r) || (r >= '0' && r <= '9')
}

// FatalError is raised via panic for the two scanner-fatal conditions in
// spec.md §4.1/§7: a bare carriage return, and a future-reserved
// identifier. The parser recovers these with a single recover() at the
// top-level production boundary and turns them into a diag.LexicalError;
// see parser.Parse.
type FatalError struct {
	Message string
	At      SemanticElement
}

func (e *FatalError) Error() string { return e.Message }
