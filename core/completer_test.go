package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompleter_Do(t *testing.T) {
	completer := &Completer{Commands: func() []string {
		return []string{"cat", "cd", "echo", "get-env", "git", "if"}
	}}

	cases := map[string]struct {
		line     string
		expected []string
		length   int
	}{
		"empty":              {"", []string{"cat ", "cd ", "echo ", "get-env ", "git ", "if "}, 0},
		"first-word":         {"g", []string{"et-env ", "it "}, 1},
		"first-word-exact":   {"cd", []string{" "}, 2},
		"after-open":         {"echo (", []string{"cat ", "cd ", "echo ", "get-env ", "git ", "if "}, 0},
		"nested-name":        {"echo (c", []string{"at ", "d "}, 1},
		"argument":           {"echo c", nil, 0},
		"after-space":        {"cat ", nil, 0},
		"after-close":        {"echo (cat)", nil, 0},
		"after-quote":        {`echo "c"`, nil, 0},
		"unclosed-quote":     {`echo "c`, nil, 0},
		"no-match":           {"zz", nil, 2},
		"trailing-backslash": {`echo \`, []string{`\`, " ", `"`, "(", ")"}, 1},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			line := []rune(tc.line)
			candidates, length := completer.Do(line, len(line))

			var actual []string
			for _, c := range candidates {
				actual = append(actual, string(c))
			}

			assert.Equal(t, tc.expected, actual)
			assert.Equal(t, tc.length, length)
		})
	}
}

func TestCompleter_Do_cursor(t *testing.T) {
	completer := &Completer{Commands: func() []string { return []string{"echo", "env"} }}
	line := []rune("ec hello")

	candidates, length := completer.Do(line, 2)

	assert.Equal(t, [][]rune{[]rune("ho ")}, candidates)
	assert.Equal(t, 2, length)
}

func TestCompleter_Do_noCommands(t *testing.T) {
	candidates, length := (&Completer{}).Do([]rune("e"), 1)

	assert.Nil(t, candidates)
	assert.Equal(t, 1, length)
}
