package formatter

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gnoswap-labs/missmatch/value"
)

// FormatResult renders the outcome of matching src: a status line followed
// by the bindings sorted by name.
func FormatResult(src string, matched bool, bindings map[string]any) string {
	var builder strings.Builder
	if !matched {
		builder.WriteString(messageStyle.Sprint("no match") + " " + src + "\n")
		return builder.String()
	}

	builder.WriteString(matchStyle.Sprint("matched") + " " + src + "\n")
	builder.WriteString(FormatBindings(bindings))
	return builder.String()
}

// FormatBindings renders one "name = value (type)" line per binding.
func FormatBindings(bindings map[string]any) string {
	names := make([]string, 0, len(bindings))
	for name := range bindings {
		names = append(names, name)
	}
	sort.Strings(names)

	var builder strings.Builder
	for _, name := range names {
		v := bindings[name]
		builder.WriteString("  ")
		builder.WriteString(nameStyle.Sprint(name))
		builder.WriteString(" = ")
		builder.WriteString(FormatValue(v))
		builder.WriteString(typeStyle.Sprintf(" (%s)", value.TypeOf(v)))
		builder.WriteByte('\n')
	}
	return builder.String()
}

// FormatValue renders v compactly, as JSON where it can be encoded.
func FormatValue(v any) string {
	if re, ok := value.Regexp(v); ok {
		return "/" + re.String() + "/"
	}
	if t, ok := value.Date(v); ok {
		return t.Format(time.RFC3339Nano)
	}
	if value.IsCallable(v) {
		return fmt.Sprintf("func %T", v)
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}

// FormatDispatch renders one dispatched input with its result or error.
func FormatDispatch(input string, result any, err error) string {
	if err != nil {
		return input + " => " + errorStyle.Sprint("error: ") + messageStyle.Sprint(err.Error()) + "\n"
	}
	return input + " => " + FormatValue(result) + "\n"
}
