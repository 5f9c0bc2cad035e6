// Package lexer splits a line of shell input into tokens.
//
// The grammar only has three kinds of token: the start of a call '(', the end
// of a call ')' and runs of text. Quoting and backslash escapes are resolved
// here so later stages only ever see plain strings.
package lexer

import (
	"fmt"
	"strings"
	"unicode"
)

// Kind identifies the type of a Token.
type Kind int

const (
	// FunctionStart is an unescaped '('.
	FunctionStart Kind = iota
	// FunctionEnd is an unescaped ')'.
	FunctionEnd
	// Text is a word, either bare or quoted.
	Text
)

func (k Kind) String() string {
	switch k {
	case FunctionStart:
		return "FunctionStart"
	case FunctionEnd:
		return "FunctionEnd"
	case Text:
		return "Text"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Token is a single lexical element of a line.
type Token struct {
	Kind Kind
	// Text holds the unescaped contents of Text tokens, it's empty otherwise.
	Text string
}

func (t Token) String() string {
	if t.Kind == Text {
		return fmt.Sprintf("Text(%q)", t.Text)
	}
	return t.Kind.String()
}

// Start returns a FunctionStart token.
func Start() Token { return Token{Kind: FunctionStart} }

// End returns a FunctionEnd token.
func End() Token { return Token{Kind: FunctionEnd} }

// Word returns a Text token holding s.
func Word(s string) Token { return Token{Kind: Text, Text: s} }

type scanner struct {
	input []rune
	pos   int
	out   []Token
}

func (s *scanner) done() bool {
	return s.pos >= len(s.input)
}

func (s *scanner) next() rune {
	r := s.input[s.pos]
	s.pos++
	return r
}

func (s *scanner) peek() rune {
	return s.input[s.pos]
}

// escaped consumes the character after a backslash.
func (s *scanner) escaped() (rune, error) {
	if s.done() {
		return 0, ErrTrailingBackslash
	}
	return s.next(), nil
}

// Lex converts a line into a flat list of tokens.
func Lex(line string) ([]Token, error) {
	s := &scanner{input: []rune(line)}

	for !s.done() {
		r := s.peek()
		switch {
		case r == '(':
			s.next()
			s.out = append(s.out, Start())
		case r == ')':
			s.next()
			s.out = append(s.out, End())
		case r == '"':
			s.next()
			if err := s.quoted(); err != nil {
				return nil, err
			}
		case unicode.IsSpace(r):
			s.next()
		default:
			if err := s.bare(); err != nil {
				return nil, err
			}
		}
	}

	return s.out, nil
}

// quoted reads up to and including the closing quote, the opening quote must
// already be consumed.
func (s *scanner) quoted() error {
	var sb strings.Builder
	for !s.done() {
		r := s.next()
		switch r {
		case '"':
			s.out = append(s.out, Word(sb.String()))
			return nil
		case '\\':
			esc, err := s.escaped()
			if err != nil {
				return err
			}
			sb.WriteRune(esc)
		default:
			sb.WriteRune(r)
		}
	}
	return ErrUnclosedQuote
}

// bare reads an unquoted word. A ')' ends the word and is emitted after it.
func (s *scanner) bare() error {
	var sb strings.Builder
	for !s.done() {
		r := s.peek()
		switch {
		case unicode.IsSpace(r), r == ')':
			s.out = append(s.out, Word(sb.String()))
			return nil
		case r == '"':
			return ErrQuoteWithinArgument
		case r == '(':
			return ErrOpenParenInArgument
		case r == '\\':
			s.next()
			esc, err := s.escaped()
			if err != nil {
				return err
			}
			sb.WriteRune(esc)
		default:
			sb.WriteRune(s.next())
		}
	}
	s.out = append(s.out, Word(sb.String()))
	return nil
}
