package parser

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/josephlewis42/lishp/core/lexer"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
)

var (
	start = lexer.Start()
	end   = lexer.End()
	word  = lexer.Word
)

func TestParse(t *testing.T) {
	cases := map[string]struct {
		tokens   []lexer.Token
		expected *Func
	}{
		"empty": {
			nil,
			EmptyFunc(),
		},
		"name-only": {
			[]lexer.Token{word("ls")},
			Call("ls"),
		},
		"args": {
			[]lexer.Token{word("ls"), word("src"), word("target")},
			Call("ls", Literal("src"), Literal("target")),
		},
		"nested-arg": {
			[]lexer.Token{word("ls"), start, word("echo"), word("src"), end},
			Call("ls", Call("echo", Literal("src"))),
		},
		"args-after-nested": {
			[]lexer.Token{word("a"), start, word("b"), end, word("c")},
			Call("a", Call("b"), Literal("c")),
		},
		"computed-name": {
			[]lexer.Token{start, word("echo"), word("ls"), end, word("-l")},
			&Func{Name: Call("echo", Literal("ls")), Arguments: []Expression{Literal("-l")}},
		},
		"deeply-nested": {
			[]lexer.Token{word("a"), start, word("b"), start, word("c"), end, end},
			Call("a", Call("b", Call("c"))),
		},
		"unmatched-close-ends-top-level": {
			[]lexer.Token{word("ls"), end},
			Call("ls"),
		},
		"close-instead-of-name": {
			[]lexer.Token{end},
			EmptyFunc(),
		},
		"empty-nested-call": {
			[]lexer.Token{word("echo"), start, end},
			Call("echo", EmptyFunc()),
		},
		"unclosed-nested-call": {
			[]lexer.Token{word("echo"), start, word("pwd")},
			Call("echo", Call("pwd")),
		},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			actual, err := Parse(tc.tokens)
			if err != nil {
				t.Fatal(err)
			}

			if diff := cmp.Diff(tc.expected, actual); diff != "" {
				t.Errorf("call tree mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParse_errors(t *testing.T) {
	cases := map[string]struct {
		tokens   []lexer.Token
		expected Error
	}{
		"open-only":        {[]lexer.Token{start}, ErrExpectedNameGotEOF},
		"open-as-arg":      {[]lexer.Token{word("ls"), start}, ErrExpectedNameGotEOF},
		"nested-open-name": {[]lexer.Token{start, start}, ErrExpectedNameGotEOF},
		"extra-close":      {[]lexer.Token{word("ls"), end, end}, ErrTrailingTokensAfterClose},
		"text-after-close": {[]lexer.Token{word("ls"), end, word("x")}, ErrTrailingTokensAfterClose},
		"close-then-text":  {[]lexer.Token{end, word("x")}, ErrTrailingTokensAfterClose},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			f, err := Parse(tc.tokens)

			assert.Nil(t, f)
			assert.True(t, errors.Is(err, tc.expected), "got error: %v", err)
		})
	}
}

func TestParse_plainWords(t *testing.T) {
	for _, line := range []string{"ls", "git log --oneline -n 5", "a b  c"} {
		t.Run(line, func(t *testing.T) {
			f := mustParseLine(t, line)
			words := strings.Fields(line)

			var args []Expression
			for _, w := range words[1:] {
				args = append(args, Literal(w))
			}

			if diff := cmp.Diff(Call(words[0], args...), f); diff != "" {
				t.Errorf("call tree mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFunc_IsEmpty(t *testing.T) {
	assert.True(t, EmptyFunc().IsEmpty())
	assert.True(t, (*Func)(nil).IsEmpty())
	assert.False(t, Call("ls").IsEmpty())
	assert.False(t, Call("", Literal("x")).IsEmpty())
	assert.False(t, (&Func{Name: EmptyFunc()}).IsEmpty())
}

func TestFunc_String(t *testing.T) {
	cases := map[string]string{
		"ls":                        "ls",
		"ls (echo src)":             "ls (echo src)",
		`echo "a b" ""`:             `echo "a b" ""`,
		`(echo ls) -l`:              "(echo ls) -l",
		`if (true) yes (cd "/a b")`: `if (true) yes (cd "/a b")`,
	}

	for line, expected := range cases {
		t.Run(line, func(t *testing.T) {
			assert.Equal(t, expected, mustParseLine(t, line).String())
		})
	}
}

func TestFunc_String_reparses(t *testing.T) {
	cases := map[string]*Func{
		"tab":         Call("printf", Literal("a\tb")),
		"newline":     Call("echo", Literal("line\n")),
		"quote":       Call("echo", Literal(`say "hi"`)),
		"backslash":   Call("echo", Literal(`C:\dir`)),
		"parens":      Call("echo", Literal("(x)")),
		"empty":       Call("echo", Literal("")),
		"nested":      Call("ls", Call("get-env", Literal("HOME DIR"))),
		"quoted-name": Call("my prog", Literal("x")),
	}

	for tn, f := range cases {
		t.Run(tn, func(t *testing.T) {
			actual := mustParseLine(t, f.String())
			if diff := cmp.Diff(f, actual); diff != "" {
				t.Errorf("%q parsed differently (-want +got):\n%s", f.String(), diff)
			}
		})
	}
}

func TestDump(t *testing.T) {
	cases := map[string]string{
		"plain":         "ls -la src",
		"nested":        "ls (echo src)",
		"computed-name": "(echo ls) -l",
		"if":            "if (test-cmd) yes (cd /)",
		"empty":         "",
		"pipe":          `pipe "hello world" (wc -c)`,
	}

	g := goldie.New(
		t,
		goldie.WithFixtureDir(filepath.Join("testdata", "golden")),
		goldie.WithDiffEngine(goldie.ColoredDiff),
	)

	for tn, line := range cases {
		t.Run(tn, func(t *testing.T) {
			buf := &bytes.Buffer{}
			if err := Dump(buf, mustParseLine(t, line)); err != nil {
				t.Fatal(err)
			}

			g.Assert(t, tn, buf.Bytes())
		})
	}
}

func mustParseLine(t *testing.T, line string) *Func {
	t.Helper()

	tokens, err := lexer.Lex(line)
	if err != nil {
		t.Fatal(err)
	}
	f, err := Parse(tokens)
	if err != nil {
		t.Fatal(err)
	}
	return f
}
