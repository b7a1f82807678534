package pattern

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Format renders node as canonical pattern text: no optional whitespace,
// numbers in shortest form, strings in double quotes unless they contain
// one. Parsing the result yields an equivalent tree.
func Format(node Node) string {
	var sb strings.Builder
	writeNode(&sb, node)
	return sb.String()
}

func writeNode(sb *strings.Builder, node Node) {
	switch n := node.(type) {
	case *ArrayNode:
		sb.WriteByte('a')
		if len(n.Elements) > 0 || n.Rest != nil {
			sb.WriteByte('(')
			for i, elem := range n.Elements {
				if i > 0 {
					sb.WriteByte(',')
				}
				writeNode(sb, elem)
			}
			if n.Rest != nil {
				writeNode(sb, n.Rest)
			}
			sb.WriteByte(')')
		}
	case *EmptyArrayNode:
		sb.WriteString("a()")
	case *ObjectNode:
		sb.WriteByte('o')
		if len(n.Properties) > 0 {
			sb.WriteByte('(')
			for i, prop := range n.Properties {
				if i > 0 {
					sb.WriteByte(',')
				}
				writeNode(sb, prop)
			}
			sb.WriteByte(')')
		}
	case *PropertyNode:
		if n.Proto {
			sb.WriteByte(':')
		} else {
			sb.WriteByte('.')
		}
		sb.WriteString(n.Name)
		if n.Type != nil {
			sb.WriteByte(':')
			writeNode(sb, n.Type)
		}
	case *TypeNode:
		sb.WriteByte(tagOf(n.Type))
		if n.Literals != nil {
			writeNode(sb, n.Literals)
		}
	case *RestNode:
		sb.WriteByte('|')
	case *AlternationNode:
		sb.WriteByte('(')
		for i, opt := range n.Options {
			if i > 0 {
				sb.WriteByte(',')
			}
			writeNode(sb, opt)
		}
		sb.WriteByte(')')
	case *EqualsNode:
		sb.WriteString(formatLiteral(n.Value))
	case *RegexMatchNode:
		sb.WriteString("/" + n.Regexp.String() + "/")
	case *DateEqualsNode:
		sb.WriteString(quote(n.Raw))
	}

	if name := node.Binding(); name != "" {
		sb.WriteString("@" + name)
	}
}

func formatLiteral(v any) string {
	switch lit := v.(type) {
	case float64:
		return strconv.FormatFloat(lit, 'g', -1, 64)
	case string:
		return quote(lit)
	case bool:
		return strconv.FormatBool(lit)
	case *regexp.Regexp:
		return "/" + lit.String() + "/"
	default:
		return fmt.Sprint(lit)
	}
}

// quote delimits s verbatim. A string literal cannot hold its own
// delimiter, so s never contains both quote characters.
func quote(s string) string {
	if strings.ContainsRune(s, '"') {
		return "'" + s + "'"
	}
	return `"` + s + `"`
}
