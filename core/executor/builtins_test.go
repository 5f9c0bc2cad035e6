package executor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupBuiltin(t *testing.T) {
	cases := map[string]Builtin{
		"if":      BuiltinIf,
		"pipe":    BuiltinPipe,
		"|":       BuiltinPipe,
		"cd":      BuiltinCd,
		"get-env": BuiltinGetEnv,
		"set-env": BuiltinSetEnv,
		"ls":      NotBuiltin,
		"IF":      NotBuiltin,
		"":        NotBuiltin,
	}

	for name, expected := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, expected, LookupBuiltin(name))
		})
	}
}

func TestAllBuiltins(t *testing.T) {
	for _, b := range AllBuiltins() {
		t.Run(b.String(), func(t *testing.T) {
			assert.Contains(t, Keywords, b.String())
			assert.Equal(t, b, LookupBuiltin(b.String()))
			assert.NotEmpty(t, b.Usage())
			assert.NotEmpty(t, b.Short())
		})
	}

	for _, kw := range Keywords {
		assert.NotEqual(t, NotBuiltin, LookupBuiltin(kw), kw)
	}
}

func TestError_Error(t *testing.T) {
	cases := map[string]struct {
		err      *Error
		expected string
	}{
		"binary":   {&Error{Kind: KindSpawn, Binary: "ls", Message: "boom"}, "ls: boom"},
		"no-name":  {&Error{Kind: KindWait, Message: "boom"}, "boom"},
		"kind":     {&Error{Kind: KindArity}, "wrong number of arguments"},
		"unknown":  {&Error{Kind: ErrorKind(99)}, "ErrorKind(99)"},
		"from-err": {&Error{Kind: KindSpawn, Binary: "x", Err: KindWait}, "x: wait failure"},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			assert.EqualError(t, tc.err, tc.expected)
		})
	}
}
