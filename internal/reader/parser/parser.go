// Released under an MIT license. See LICENSE.

// Package parser provides a recursive descent parser for the ply language.
package parser

import (
	"errors"
	"strings"

	"github.com/michaelmacinnis/adapted"
	"github.com/michaelmacinnis/ply/internal/ast"
	"github.com/michaelmacinnis/ply/internal/common/fault"
	"github.com/michaelmacinnis/ply/internal/common/type/boolean"
	"github.com/michaelmacinnis/ply/internal/common/type/kw"
	"github.com/michaelmacinnis/ply/internal/common/type/null"
	"github.com/michaelmacinnis/ply/internal/common/type/num"
	"github.com/michaelmacinnis/ply/internal/common/type/str"
	"github.com/michaelmacinnis/ply/internal/reader/token"
)

// ErrIncomplete is returned when the input ends inside an expression.
var ErrIncomplete = errors.New("incomplete expression")

// T holds the state of the parser.
type T struct {
	ahead int             // Lookahead count.
	item  func() *token.T // Function to call to get another token.
	token *token.T        // Token lookahead.
}

type failure struct {
	err error
}

// New creates a new parser that consumes tokens produced by item.
func New(item func() *token.T) *T {
	return &T{item: item}
}

// Incomplete returns true if err means more input is needed.
func Incomplete(err error) bool {
	return errors.Is(err, ErrIncomplete)
}

// Next parses and returns the next expression. It returns nil, nil once
// there are no more tokens.
func (p *T) Next() (e ast.Expr, err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}

		f, ok := r.(*failure)
		if !ok {
			panic(r)
		}

		e, err = nil, f.err
	}()

	if p.peek().Is(token.EOF) {
		return nil, nil
	}

	return p.expression(), nil
}

// Parse consumes all tokens and returns every expression read.
func (p *T) Parse() ([]ast.Expr, error) {
	var es []ast.Expr

	for {
		e, err := p.Next()
		if err != nil {
			return nil, err
		}

		if e == nil {
			return es, nil
		}

		es = append(es, e)
	}
}

func (p *T) consume() *token.T {
	if p.ahead == 0 {
		panic("nothing to consume.")
	}

	t := p.token

	p.ahead = 0
	p.token = nil

	return t
}

func (p *T) fail(t *token.T, msg string) {
	err := fault.At(fault.New(fault.KindSyntax, "%s", msg), t.Source())

	panic(&failure{err: err})
}

func (p *T) peek() *token.T {
	if p.ahead > 0 {
		return p.token
	}

	t := p.item()

	p.token = t
	p.ahead = 1

	return t
}

func (p *T) incomplete() {
	panic(&failure{err: ErrIncomplete})
}

// T state functions.

// <expression> ::= <prefix> <expression> | <collection> | <atom> .
func (p *T) expression() ast.Expr {
	t := p.peek()

	switch {
	case t.Is(token.EOF, token.Unterminated):
		p.incomplete()

	case t.Is('\''):
		return p.prefixed("quote")

	case t.Is('`'):
		return p.prefixed("quasiquote")

	case t.Is('~'):
		return p.prefixed("unquote")

	case t.Is(token.Splice):
		return p.prefixed("unquote-splice")

	case t.Is('@'):
		return p.prefixed("deref")

	case t.Is('('):
		l := p.consume().Source()

		return ast.NewList(l, p.sequence(')'))

	case t.Is('['):
		l := p.consume().Source()

		return &ast.Vec{Loc: l, Items: p.sequence(']')}

	case t.Is('{'):
		l := p.consume().Source()

		return &ast.Map{Loc: l, Items: p.sequence('}')}

	case t.Is(token.SetOpen):
		l := p.consume().Source()

		return &ast.Set{Loc: l, Items: p.sequence('}')}

	case t.Is(token.String):
		return p.text()

	case t.Is(token.Symbol):
		return p.atom()
	}

	p.fail(t, "unexpected '"+t.Value()+"'")

	return nil
}

// <sequence> ::= <expression>* close .
func (p *T) sequence(close token.Class) []ast.Expr {
	items := []ast.Expr{}

	for !p.peek().Is(close) {
		items = append(items, p.expression())
	}

	p.consume()

	return items
}

func (p *T) prefixed(name string) ast.Expr {
	l := p.consume().Source()

	return &ast.List{Loc: l, Items: []ast.Expr{
		&ast.Sym{Loc: l, Name: name},
		p.expression(),
	}}
}

func (p *T) atom() ast.Expr {
	t := p.consume()
	l := t.Source()
	s := t.Value()

	switch s {
	case "nil":
		return &ast.Lit{Loc: l, Value: null.Nil}
	case "true":
		return &ast.Lit{Loc: l, Value: boolean.True}
	case "false":
		return &ast.Lit{Loc: l, Value: boolean.False}
	}

	if n, ok := num.Parse(s); ok {
		return &ast.Lit{Loc: l, Value: n}
	}

	if len(s) > 1 && strings.HasPrefix(s, ":") {
		return &ast.Lit{Loc: l, Value: kw.New(s)}
	}

	return &ast.Sym{Loc: l, Name: s}
}

func (p *T) text() ast.Expr {
	t := p.consume()
	v := t.Value()

	s, err := adapted.ActualBytes(v[1 : len(v)-1])
	if err != nil {
		p.fail(t, err.Error())
	}

	return &ast.Lit{Loc: t.Source(), Value: str.New(s)}
}
