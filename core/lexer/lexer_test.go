package lexer

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLex(t *testing.T) {
	cases := map[string]struct {
		line     string
		expected []Token
	}{
		"empty":      {"", nil},
		"blank":      {"   \t ", nil},
		"single":     {"ls", []Token{Word("ls")}},
		"with-args":  {"ls src target", []Token{Word("ls"), Word("src"), Word("target")}},
		"many-space": {"  ls   src\ttarget  ", []Token{Word("ls"), Word("src"), Word("target")}},
		"close-paren-splits": {
			"ls direc)tory",
			[]Token{Word("ls"), Word("direc"), End(), Word("tory")},
		},
		"quoted": {
			`"ls" "src" "target"`,
			[]Token{Word("ls"), Word("src"), Word("target")},
		},
		"quoted-keeps-structure": {
			`echo "a (b) c"`,
			[]Token{Word("echo"), Word("a (b) c")},
		},
		"quoted-empty": {
			`echo ""`,
			[]Token{Word("echo"), Word("")},
		},
		"quoted-escapes": {
			`echo "say \"hi\" \\ \(\)"`,
			[]Token{Word("echo"), Word(`say "hi" \ ()`)},
		},
		"quote-then-word": {
			`"ab"cd`,
			[]Token{Word("ab"), Word("cd")},
		},
		"call": {
			"ls (echo src)",
			[]Token{Word("ls"), Start(), Word("echo"), Word("src"), End()},
		},
		"call-quoted": {
			`"ls" ("echo" "src")`,
			[]Token{Word("ls"), Start(), Word("echo"), Word("src"), End()},
		},
		"backslashes": {
			`ls (echo weird\ chars\)\(\"\\)`,
			[]Token{Word("ls"), Start(), Word("echo"), Word(`weird chars)("\`), End()},
		},
		"nested": {
			"(echo ls) ((x))",
			[]Token{Start(), Word("echo"), Word("ls"), End(), Start(), Start(), Word("x"), End(), End()},
		},
		"unicode": {
			"echo héllo 世界",
			[]Token{Word("echo"), Word("héllo"), Word("世界")},
		},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			actual, err := Lex(tc.line)

			assert.NoError(t, err)
			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestLex_errors(t *testing.T) {
	cases := map[string]struct {
		line     string
		expected Error
	}{
		"quote-in-word":          {`ls direc"tory`, ErrQuoteWithinArgument},
		"open-paren-in-word":     {"ls direc(tory", ErrOpenParenInArgument},
		"trailing-backslash":     {`ls src\`, ErrTrailingBackslash},
		"lone-backslash":         {`\`, ErrTrailingBackslash},
		"quoted-trailing-escape": {`echo "abc\`, ErrTrailingBackslash},
		"unclosed-quote":         {`ls "src`, ErrUnclosedQuote},
		"unclosed-empty-quote":   {`ls "`, ErrUnclosedQuote},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			tokens, err := Lex(tc.line)

			assert.Nil(t, tokens)
			assert.True(t, errors.Is(err, tc.expected), "got error: %v", err)
		})
	}
}

func TestLex_plainWords(t *testing.T) {
	lines := []string{
		"a",
		"git status --short",
		"find . -name *.go -type f",
		"x  y\tz",
	}

	for _, line := range lines {
		t.Run(line, func(t *testing.T) {
			tokens, err := Lex(line)
			assert.NoError(t, err)

			var words []string
			for _, tok := range tokens {
				assert.Equal(t, Text, tok.Kind)
				words = append(words, tok.Text)
			}
			assert.Equal(t, strings.Fields(line), words)
		})
	}
}

func TestError_Error(t *testing.T) {
	assert.Equal(t, "Lexer Error: Start of quoted string without end quote.", ErrUnclosedQuote.Error())
	assert.Equal(t, "Lexer Error: unknown error", Error(0).Error())
	assert.Equal(t, "unclosed-quote", ErrUnclosedQuote.Name())
	assert.Equal(t, "unknown", Error(0).Name())
}

func TestToken_String(t *testing.T) {
	assert.Equal(t, `Text("a b")`, Word("a b").String())
	assert.Equal(t, "FunctionStart", Start().String())
	assert.Equal(t, "FunctionEnd", End().String())
}
