package parser

import (
	"fmt"
	"io"
	"strings"
	"unicode"
)

// Dump writes an indented outline of the call tree to w.
func Dump(w io.Writer, f *Func) error {
	d := &dumper{w: w}
	d.function(f, 0)
	return d.err
}

type dumper struct {
	w   io.Writer
	err error
}

func (d *dumper) line(depth int, format string, a ...interface{}) {
	if d.err != nil {
		return
	}
	_, d.err = fmt.Fprintf(d.w, "%s%s\n", strings.Repeat("  ", depth), fmt.Sprintf(format, a...))
}

func (d *dumper) function(f *Func, depth int) {
	if name, ok := f.Name.(Literal); ok {
		d.line(depth, "call %q", string(name))
	} else {
		d.line(depth, "call")
		d.line(depth+1, "name")
		d.expression(f.Name, depth+2)
	}

	for _, arg := range f.Arguments {
		d.expression(arg, depth+1)
	}
}

func (d *dumper) expression(e Expression, depth int) {
	switch e := e.(type) {
	case Literal:
		d.line(depth, "%q", string(e))
	case *Func:
		d.function(e, depth)
	}
}

// String renders the call in source form, parsing the result gives back an
// equal call.
func (f *Func) String() string {
	var sb strings.Builder
	writeExpression(&sb, f.Name)
	for _, arg := range f.Arguments {
		sb.WriteByte(' ')
		writeExpression(&sb, arg)
	}
	return sb.String()
}

func writeExpression(sb *strings.Builder, e Expression) {
	switch e := e.(type) {
	case Literal:
		sb.WriteString(quoteIfNeeded(string(e)))
	case *Func:
		sb.WriteByte('(')
		sb.WriteString(e.String())
		sb.WriteByte(')')
	}
}

// quoteIfNeeded quotes s so the lexer reads it back as a single word with
// the same text.
func quoteIfNeeded(s string) string {
	if s != "" && !strings.ContainsAny(s, "\"()\\") && strings.IndexFunc(s, unicode.IsSpace) < 0 {
		return s
	}

	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		if r == '"' || r == '\\' {
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	sb.WriteByte('"')
	return sb.String()
}
