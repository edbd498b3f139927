// Released under an MIT license. See LICENSE.

// Package lexer provides a lexical scanner for the ply language.
//
// The ply lexer adapts the state function approach used by Go's
// text/template lexer and described in detail in Rob Pike's talk
// "Lexical Scanning in Go".
// See https://talks.golang.org/2011/lex.slide for more information.
package lexer

import (
	"strings"
	"unicode/utf8"

	"github.com/michaelmacinnis/ply/internal/common/struct/loc"
	"github.com/michaelmacinnis/ply/internal/reader/token"
)

// T holds the state of the scanner.
type T struct {
	bytes string // Buffer being scanned.
	first int    // Index of the current token's first byte.
	index int    // Index of the current byte.
	runes int    // Runes scanned on the current line.
	state action // Current action.

	line   int // Index of the first byte of the current line.
	source loc.T
	start  loc.T // Location of the current token.
	text   int   // Index of the first byte of the current token's line.

	tokens []*token.T
}

// New creates a new T for text. Label can be a file name or other identifier.
func New(label, text string) *T {
	l := &T{
		bytes: text,
		runes: 1,
		source: loc.T{
			Char: 1,
			Line: 1,
			Name: label,
		},
	}

	l.skip()

	l.state = skipWhitespace

	return l
}

// Text is used to return the text corresponding to the current token.
func (l *T) Text() string {
	return l.bytes[l.first:l.index]
}

// Token returns the next scanned token. Once the input is exhausted every
// call returns an EOF token.
func (l *T) Token() *token.T {
	for len(l.tokens) == 0 {
		if l.state == nil {
			return token.New(token.EOF, "", l.here())
		}

		l.state = l.state(l)
	}

	t := l.tokens[0]
	l.tokens = l.tokens[1:]

	return t
}

type action func(*T) action

const eof = -1

func (l *T) accept(r token.Class, w int) {
	l.index += w

	if r == '\n' {
		l.source.Line++
		l.line = l.index
		l.runes = 1
	} else {
		l.runes++
	}
}

func (l *T) emit(c token.Class, v string) {
	source := l.start
	source.Text = l.excerpt(l.text)

	l.tokens = append(l.tokens, token.New(c, v, source))
	l.skip()
}

func (l *T) excerpt(from int) string {
	s := l.bytes[from:]
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}

	return strings.TrimRight(s, "\r")
}

func (l *T) here() loc.T {
	source := l.source
	source.Char = l.runes

	return source
}

func (l *T) next() token.Class {
	r, w := l.peek()
	l.accept(r, w)

	return r
}

func (l *T) peek() (token.Class, int) {
	r, w := rune(eof), 0
	if l.index < len(l.bytes) {
		r, w = utf8.DecodeRuneInString(l.bytes[l.index:])
	}

	return token.Class(r), w
}

func (l *T) skip() {
	l.start = l.here()
	l.text = l.line
	l.first = l.index
}

// T states.

func afterHash(l *T) action {
	r, w := l.peek()
	if r == '!' {
		return skipComment
	}

	if r == '{' {
		l.accept(r, w)
		l.emit(token.SetOpen, l.Text())

		return skipWhitespace
	}

	return scanSymbol
}

func afterTilde(l *T) action {
	r, w := l.peek()
	if r == '@' {
		l.accept(r, w)
		l.emit(token.Splice, l.Text())
	} else {
		l.emit('~', l.Text())
	}

	return skipWhitespace
}

func scanString(l *T) action {
	for {
		switch l.next() {
		case eof:
			l.emit(token.Unterminated, l.Text())

			return nil
		case '"':
			l.emit(token.String, l.Text())

			return skipWhitespace
		case '\\':
			if r, w := l.peek(); r != eof {
				l.accept(r, w)
			}
		}
	}
}

func scanSymbol(l *T) action {
	for {
		r, w := l.peek()

		if r == eof || delimiter(r) {
			l.emit(token.Symbol, l.Text())

			return skipWhitespace
		}

		l.accept(r, w)
	}
}

func skipComment(l *T) action {
	for {
		switch l.next() {
		case eof:
			return nil
		case '\n':
			l.skip()

			return skipWhitespace
		}
	}
}

func skipWhitespace(l *T) action {
	for {
		r := l.next()

		switch r {
		case eof:
			return nil
		case '\n', '\r', '\t', ' ', ',':
			l.skip()

			continue
		case '(', ')', '[', ']', '{', '}', '\'', '`', '@':
			l.emit(r, l.Text())

			return skipWhitespace
		case '"':
			return scanString
		case ';':
			return skipComment
		case '#':
			return afterHash
		case '~':
			return afterTilde
		default:
			return scanSymbol
		}
	}
}

func delimiter(r token.Class) bool {
	switch r {
	case '\n', '\r', '\t', ' ', ',', '(', ')', '[', ']', '{', '}', '"', ';':
		return true
	}

	return false
}
