package lexer

// Error is a failure to split a line into tokens.
type Error int

const (
	// ErrTrailingBackslash is returned when a line ends in an unescaped '\'.
	ErrTrailingBackslash Error = iota + 1
	// ErrUnclosedQuote is returned when a '"' is never closed.
	ErrUnclosedQuote
	// ErrQuoteWithinArgument is returned for an unescaped '"' inside a bare word.
	ErrQuoteWithinArgument
	// ErrOpenParenInArgument is returned for an unescaped '(' inside a bare word.
	ErrOpenParenInArgument
)

var errorMessages = map[Error]string{
	ErrTrailingBackslash:   "Single backslash at the end of the command.",
	ErrUnclosedQuote:       "Start of quoted string without end quote.",
	ErrQuoteWithinArgument: `Quote found within argument. Either replace it with \" or add a space before it if this is meant as a separate argument.`,
	ErrOpenParenInArgument: `Open parenthesis '(' found within argument. Either replace it with \( or add a space before it if this is meant to be the start of a subcommand.`,
}

// Error implements error.
func (e Error) Error() string {
	msg, ok := errorMessages[e]
	if !ok {
		msg = "unknown error"
	}
	return "Lexer Error: " + msg
}

// Name returns a short identifier for the error.
func (e Error) Name() string {
	switch e {
	case ErrTrailingBackslash:
		return "trailing-backslash"
	case ErrUnclosedQuote:
		return "unclosed-quote"
	case ErrQuoteWithinArgument:
		return "quote-within-argument"
	case ErrOpenParenInArgument:
		return "open-paren-in-argument"
	default:
		return "unknown"
	}
}
