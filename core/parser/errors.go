package parser

// Error is a failure to build a call tree.
type Error int

const (
	// ErrExpectedNameGotEOF is returned when a call has no name.
	ErrExpectedNameGotEOF Error = iota + 1
	// ErrTrailingTokensAfterClose is returned when input continues after the
	// outermost call ends, usually because of an extra ')'.
	ErrTrailingTokensAfterClose
)

// Error implements error.
func (e Error) Error() string {
	var msg string
	switch e {
	case ErrExpectedNameGotEOF:
		msg = "Expected a function, but instead got end of command."
	case ErrTrailingTokensAfterClose:
		msg = "End of function but still more text after it. Hint: Do you have too many ')'?"
	default:
		msg = "unknown error"
	}
	return "Parser Error: " + msg
}

// Name returns a short identifier for the error.
func (e Error) Name() string {
	switch e {
	case ErrExpectedNameGotEOF:
		return "expected-name-got-eof"
	case ErrTrailingTokensAfterClose:
		return "trailing-tokens-after-close"
	default:
		return "unknown"
	}
}
