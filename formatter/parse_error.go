package formatter

import (
	"errors"
	"fmt"

	"github.com/gnoswap-labs/missmatch/internal/pattern"
)

// FormatParseError renders err with the offending line of src and a caret
// under the offset. name labels the source in the header. Errors that are
// not parse errors are rendered on one line.
func FormatParseError(name, src string, err error) string {
	var perr *pattern.ParseError
	if !errors.As(err, &perr) {
		return errorStyle.Sprint("error: ") + messageStyle.Sprint(err.Error()) + "\n"
	}

	line, column := position(src, perr.Offset)
	width := calculateMaxLineNumWidth(line)
	data := IssueData{
		Kind:            "syntax",
		Name:            name,
		Line:            line,
		Column:          column,
		Offset:          perr.Offset,
		MaxLineNumWidth: width,
		Padding:         fmt.Sprintf("%*s", width+1, ""),
		Message:         fmt.Sprintf("unexpected token %s where %s was expected", perr.Found, perr.Expected),
		SourceLines:     sourceLines(src),
	}
	if perr.Cause != nil {
		data.Note = perr.Cause.Error()
	}
	return buildIssue(data)
}
