// Package diag renders scanner and parser failures as typed,
// human-readable diagnostics. Scanning and parsing are both fatal on the
// first error (spec.md §7: "there is no error recovery"), so this
// package's job is purely to translate an internal panic value into an
// error the caller of parser.ParseFile can inspect and print, the same
// split jschaf-bibtex's scanner/parser keep between an internal
// errorList and the *scanner.Error values it hands back to callers.
package diag

import (
	"fmt"

	"github.com/fef1312/unholy/token"
)

// Diagnostic is the common shape of LexicalError and ParseError: a
// position, a message, the offending line's text, and the file it came
// from (spec.md §6/§7: the diagnostic shows the file, 1-based
// line/column, the offending line's content, and the message).
type Diagnostic struct {
	FileName string
	token.Position
	Message     string
	LineContent string
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s\n\t%s", d.FileName, d.Line, d.Column, d.Message, d.LineContent)
}

// LexicalError reports a fatal scanning failure (spec.md §7's
// LexicalError diagnostic): a bare carriage return, or a future-reserved
// word used as an identifier.
type LexicalError struct {
	Diagnostic
}

// ParseError reports a fatal parsing failure (spec.md §7's ParseError
// diagnostic): an unexpected token where the grammar required something
// else.
type ParseError struct {
	Diagnostic
	Expected token.SyntaxKind
	Found    token.SyntaxKind
}

func newParseError(fileName string, pos token.Position, lineContent string, expected, found token.SyntaxKind, msg string) *ParseError {
	return &ParseError{
		Diagnostic: Diagnostic{FileName: fileName, Position: pos, Message: msg, LineContent: lineContent},
		Expected:   expected,
		Found:      found,
	}
}

// NewParseError builds a ParseError for "expected X, found Y" failures.
func NewParseError(fileName string, pos token.Position, lineContent string, expected, found token.SyntaxKind) *ParseError {
	msg := fmt.Sprintf("expected %s, found %s", expected, found)
	return newParseError(fileName, pos, lineContent, expected, found, msg)
}

// NewParseErrorf builds a ParseError with a caller-supplied message, for
// productions whose failure isn't a simple "expected X" (e.g. "%s is not
// a statement").
func NewParseErrorf(fileName string, pos token.Position, lineContent string, found token.SyntaxKind, format string, args ...any) *ParseError {
	return newParseError(fileName, pos, lineContent, token.Unknown, found, fmt.Sprintf(format, args...))
}

// NewLexicalError builds a LexicalError from a message and position, the
// shape produced by a recovered scanner.FatalError.
func NewLexicalError(fileName string, pos token.Position, lineContent string, message string) *LexicalError {
	return &LexicalError{Diagnostic{FileName: fileName, Position: pos, Message: message, LineContent: lineContent}}
}
