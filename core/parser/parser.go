// Package parser builds a call tree out of lexer tokens.
//
//	line      := function
//	function  := name argument*
//	expr      := TEXT | '(' function ')'
package parser

import (
	"github.com/josephlewis42/lishp/core/lexer"
)

// Expression is anything that can be a function name or argument: either a
// Literal or a *Func.
type Expression interface {
	isExpression()
}

// Literal is a plain string.
type Literal string

func (Literal) isExpression() {}

// Func is a call. The name is an expression because it may itself be the
// output of a call.
type Func struct {
	Name      Expression
	Arguments []Expression
}

func (*Func) isExpression() {}

// EmptyFunc returns the call produced by blank input.
func EmptyFunc() *Func {
	return &Func{Name: Literal("")}
}

// IsEmpty reports whether f is the canonical empty call.
func (f *Func) IsEmpty() bool {
	if f == nil {
		return true
	}
	name, ok := f.Name.(Literal)
	return ok && name == "" && len(f.Arguments) == 0
}

// Call is a convenience constructor for a call with literal arguments.
func Call(name string, args ...Expression) *Func {
	return &Func{Name: Literal(name), Arguments: args}
}

type tokenStream struct {
	tokens []lexer.Token
	pos    int
}

func (ts *tokenStream) next() (lexer.Token, bool) {
	if ts.pos >= len(ts.tokens) {
		return lexer.Token{}, false
	}
	tok := ts.tokens[ts.pos]
	ts.pos++
	return tok, true
}

// Parse converts a full line of tokens into a single call.
func Parse(tokens []lexer.Token) (*Func, error) {
	if len(tokens) == 0 {
		return EmptyFunc(), nil
	}

	ts := &tokenStream{tokens: tokens}
	f, err := parseFunction(ts)
	if err != nil {
		return nil, err
	}
	if _, more := ts.next(); more {
		return nil, ErrTrailingTokensAfterClose
	}
	return f, nil
}

// parseFunction reads a name and its arguments up to the end of input or an
// unmatched ')' which it consumes.
func parseFunction(ts *tokenStream) (*Func, error) {
	tok, ok := ts.next()
	if !ok {
		return nil, ErrExpectedNameGotEOF
	}

	var name Expression
	switch tok.Kind {
	case lexer.FunctionStart:
		nested, err := parseFunction(ts)
		if err != nil {
			return nil, err
		}
		name = nested
	case lexer.FunctionEnd:
		return EmptyFunc(), nil
	default:
		name = Literal(tok.Text)
	}

	f := &Func{Name: name}
	for {
		tok, ok := ts.next()
		if !ok {
			break
		}

		if tok.Kind == lexer.FunctionEnd {
			break
		}

		if tok.Kind == lexer.FunctionStart {
			nested, err := parseFunction(ts)
			if err != nil {
				return nil, err
			}
			f.Arguments = append(f.Arguments, nested)
			continue
		}

		f.Arguments = append(f.Arguments, Literal(tok.Text))
	}

	return f, nil
}
