package pattern

import (
	"errors"
	"fmt"
	"strconv"
	"unicode/utf8"
)

// ErrSyntax matches every *ParseError through errors.Is.
var ErrSyntax = errors.New("pattern syntax error")

// EndOfInput is the Found value of errors raised at the end of the pattern.
const EndOfInput = "end of input"

// ParseError describes malformed pattern text.
type ParseError struct {
	Offset   int    // 0-based character offset into the pattern
	Expected string // what the parser was looking for
	Found    string // the offending token, or EndOfInput
	Cause    error  // underlying failure, e.g. an invalid regular expression
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("unexpected token %s at offset %d where %s was expected", e.Found, e.Offset, e.Expected)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *ParseError) Is(target error) bool { return target == ErrSyntax }
func (e *ParseError) Unwrap() error        { return e.Cause }

// tokenAt quotes the character starting at offset i of src.
func tokenAt(src string, i int) string {
	if i >= len(src) {
		return EndOfInput
	}
	r, _ := utf8.DecodeRuneInString(src[i:])
	return strconv.QuoteRune(r)
}

// charOffset converts byte index i of src into a character count.
func charOffset(src string, i int) int {
	if i > len(src) {
		i = len(src)
	}
	return utf8.RuneCountInString(src[:i])
}
