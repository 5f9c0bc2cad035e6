package core

import (
	"errors"
	"strings"

	"github.com/josephlewis42/lishp/core/lexer"
)

// BackslashEscapes are the characters offered after a trailing backslash.
var BackslashEscapes = []string{`\`, " ", `"`, "(", ")"}

// Completer suggests command names in command positions and escape
// characters after a backslash. It implements readline.AutoCompleter.
type Completer struct {
	// Commands returns the sorted candidate names.
	Commands func() []string
}

// Do returns the text to insert after the cursor for each candidate and how
// many runes before the cursor the candidates share.
func (c *Completer) Do(line []rune, pos int) ([][]rune, int) {
	before := string(line[:pos])

	tokens, err := lexer.Lex(before)
	switch {
	case errors.Is(err, lexer.ErrTrailingBackslash):
		var out [][]rune
		for _, esc := range BackslashEscapes {
			out = append(out, []rune(esc))
		}
		return out, 1
	case err != nil:
		return nil, 0
	}

	if len(tokens) == 0 {
		return c.complete(""), 0
	}

	last := tokens[len(tokens)-1]
	switch last.Kind {
	case lexer.FunctionStart:
		return c.complete(""), 0
	case lexer.FunctionEnd:
		return nil, 0
	}

	if strings.HasSuffix(before, " ") || strings.HasSuffix(before, `"`) {
		return nil, 0
	}
	if len(tokens) >= 2 && tokens[len(tokens)-2].Kind != lexer.FunctionStart {
		return nil, 0
	}

	return c.complete(last.Text), len([]rune(last.Text))
}

func (c *Completer) complete(prefix string) [][]rune {
	if c.Commands == nil {
		return nil
	}

	var out [][]rune
	for _, cmd := range c.Commands() {
		if strings.HasPrefix(cmd, prefix) {
			out = append(out, []rune(strings.TrimPrefix(cmd, prefix)+" "))
		}
	}
	return out
}
