package pattern

import (
	"errors"
	"regexp"
	"regexp/syntax"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTypeTags(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input string
		want  NodeKind
		bind  string
	}{
		{"n", KindNumber, ""},
		{"s@s", KindString, "s"},
		{"S", KindNonBlankString, ""},
		{"b@flag", KindBoolean, "flag"},
		{"f@fn", KindCallable, "fn"},
		{"d", KindDate, ""},
		{"r@re", KindRegex, "re"},
		{"_@$any_1", KindAny, "$any_1"},
		{"n  ", KindNumber, ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			node, err := Parse(tt.input)
			require.NoError(t, err)

			typ, ok := node.(*TypeNode)
			require.True(t, ok, "got %T", node)
			assert.Equal(t, tt.want, typ.Kind())
			assert.Equal(t, tt.bind, typ.Binding())
			assert.Nil(t, typ.Literals)
			assert.Equal(t, 0, typ.Position())
		})
	}
}

func TestParseArray(t *testing.T) {
	t.Parallel()

	t.Run("bare tag", func(t *testing.T) {
		node, err := Parse("a")
		require.NoError(t, err)
		arr := node.(*ArrayNode)
		assert.Empty(t, arr.Elements)
		assert.Nil(t, arr.Rest)
		assert.Empty(t, arr.Bind)
	})

	t.Run("bound without body", func(t *testing.T) {
		node, err := Parse("a@xs")
		require.NoError(t, err)
		arr := node.(*ArrayNode)
		assert.Empty(t, arr.Elements)
		assert.Equal(t, "xs", arr.Bind)
	})

	t.Run("elements with bindings", func(t *testing.T) {
		node, err := Parse("a(n@a, n@b)@pair")
		require.NoError(t, err)
		arr := node.(*ArrayNode)
		require.Len(t, arr.Elements, 2)
		assert.Equal(t, "a", arr.Elements[0].Binding())
		assert.Equal(t, "b", arr.Elements[1].Binding())
		assert.Equal(t, 2, arr.Elements[0].Position())
		assert.Equal(t, 7, arr.Elements[1].Position())
		assert.Equal(t, "pair", arr.Bind)
	})

	t.Run("empty array", func(t *testing.T) {
		for _, input := range []string{"a()", "a( )"} {
			node, err := Parse(input)
			require.NoError(t, err)
			assert.Equal(t, KindEmptyArray, node.Kind())
		}

		node, err := Parse("a()@none")
		require.NoError(t, err)
		assert.Equal(t, "none", node.Binding())
	})

	t.Run("rest with binding", func(t *testing.T) {
		node, err := Parse("a(_ | @r )")
		require.NoError(t, err)
		arr := node.(*ArrayNode)
		require.Len(t, arr.Elements, 1)
		require.NotNil(t, arr.Rest)
		assert.Equal(t, "r", arr.Rest.Bind)
		assert.Equal(t, 4, arr.Rest.Position())
	})

	t.Run("rest only", func(t *testing.T) {
		node, err := Parse("a(|)")
		require.NoError(t, err)
		arr := node.(*ArrayNode)
		assert.Empty(t, arr.Elements)
		require.NotNil(t, arr.Rest)
		assert.Empty(t, arr.Rest.Bind)
	})

	t.Run("nested bare tags", func(t *testing.T) {
		node, err := Parse("a(a,o)")
		require.NoError(t, err)
		arr := node.(*ArrayNode)
		require.Len(t, arr.Elements, 2)
		assert.Equal(t, KindArray, arr.Elements[0].Kind())
		assert.Equal(t, KindObject, arr.Elements[1].Kind())
	})
}

func TestParseObject(t *testing.T) {
	t.Parallel()

	node, err := Parse("o(.x@x, :y:n@y, .inner:o(.z:s@z))@obj")
	require.NoError(t, err)

	obj := node.(*ObjectNode)
	assert.Equal(t, "obj", obj.Bind)
	require.Len(t, obj.Properties, 3)

	x := obj.Properties[0]
	assert.Equal(t, KindOwnProperty, x.Kind())
	assert.Equal(t, "x", x.Name)
	assert.Nil(t, x.Type)
	assert.Equal(t, "x", x.Bind)

	y := obj.Properties[1]
	assert.Equal(t, KindProtoProperty, y.Kind())
	assert.Equal(t, "y", y.Name)
	require.NotNil(t, y.Type)
	assert.Equal(t, KindNumber, y.Type.Kind())
	assert.Equal(t, "y", y.Bind)
	assert.Empty(t, y.Type.Binding())

	inner := obj.Properties[2]
	require.NotNil(t, inner.Type)
	nested := inner.Type.(*ObjectNode)
	require.Len(t, nested.Properties, 1)
	assert.Equal(t, "z", nested.Properties[0].Name)
	assert.Equal(t, "z", nested.Properties[0].Type.Binding())
}

func TestParseLiterals(t *testing.T) {
	t.Parallel()

	literals := func(t *testing.T, input string) []Node {
		t.Helper()
		node, err := Parse(input)
		require.NoError(t, err)
		typ := node.(*TypeNode)
		require.NotNil(t, typ.Literals)
		return typ.Literals.Options
	}

	t.Run("numbers", func(t *testing.T) {
		opts := literals(t, "n(1, -2.5, 3e2, .5, +4E-1)")
		want := []float64{1, -2.5, 300, 0.5, 0.4}
		require.Len(t, opts, len(want))
		for i, w := range want {
			assert.Equal(t, w, opts[i].(*EqualsNode).Value)
		}
	})

	t.Run("strings and regexes", func(t *testing.T) {
		opts := literals(t, `s('a', "b c", /^d+$/)`)
		require.Len(t, opts, 3)
		assert.Equal(t, "a", opts[0].(*EqualsNode).Value)
		assert.Equal(t, "b c", opts[1].(*EqualsNode).Value)
		assert.Equal(t, "^d+$", opts[2].(*RegexMatchNode).Regexp.String())
	})

	t.Run("strings are verbatim", func(t *testing.T) {
		opts := literals(t, `S("a\n'b'")`)
		assert.Equal(t, `a\n'b'`, opts[0].(*EqualsNode).Value)
	})

	t.Run("booleans", func(t *testing.T) {
		opts := literals(t, "b(true,false)@b")
		require.Len(t, opts, 2)
		assert.Equal(t, true, opts[0].(*EqualsNode).Value)
		assert.Equal(t, false, opts[1].(*EqualsNode).Value)
	})

	t.Run("dates", func(t *testing.T) {
		opts := literals(t, `d("2024-01-02", '2024-01-02T10:30:00Z')`)
		require.Len(t, opts, 2)
		d0 := opts[0].(*DateEqualsNode)
		assert.True(t, d0.Date.Equal(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)))
		assert.Equal(t, "2024-01-02", d0.Raw)
		d1 := opts[1].(*DateEqualsNode)
		assert.True(t, d1.Date.Equal(time.Date(2024, 1, 2, 10, 30, 0, 0, time.UTC)))
	})

	t.Run("regex sources", func(t *testing.T) {
		opts := literals(t, "r(/a+/)")
		re, ok := opts[0].(*EqualsNode).Value.(*regexp.Regexp)
		require.True(t, ok)
		assert.Equal(t, "a+", re.String())
	})

	t.Run("mixed literals for any", func(t *testing.T) {
		opts := literals(t, `_(1, "one", true, /x/)`)
		require.Len(t, opts, 4)
		assert.Equal(t, 1.0, opts[0].(*EqualsNode).Value)
		assert.Equal(t, "one", opts[1].(*EqualsNode).Value)
		assert.Equal(t, true, opts[2].(*EqualsNode).Value)
		assert.Equal(t, KindLiteralRegexMatch, opts[3].Kind())
	})
}

func TestParseErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		input    string
		offset   int
		expected string
		found    string
	}{
		{"empty pattern", "", 0, "pattern", EndOfInput},
		{"unknown tag", "x", 0, "pattern", `'x'`},
		{"leading whitespace", " n", 0, "pattern", `' '`},
		{"missing binding name", "n@", 2, "binding name for number", EndOfInput},
		{"binding starts with digit", "a@1", 2, "binding name for array", `'1'`},
		{"empty binding on object", "o(.x)@ ", 6, "binding name for object", `' '`},
		{"empty binding on rest", "a(n|@)", 5, "binding name for rest", `')'`},
		{"whitespace before binding", "n @x", 2, EndOfInput, `"@x"`},
		{"dangling comma", "a(n,)", 4, "pattern", `')'`},
		{"unterminated array", "a(n", 3, "',', '|' or ')'", EndOfInput},
		{"element after rest", "a(n|@r x)", 7, "')'", `'x'`},
		{"empty property list", "o()", 2, "'.' or ':'", `')'`},
		{"missing property name", "o(.)", 3, "property name", `')'`},
		{"property without lead", "o(x)", 2, "'.' or ':'", `'x'`},
		{"unterminated object", "o(.x", 4, "',' or ')'", EndOfInput},
		{"string in number list", "n(1,'x')", 4, "number", `'\''`},
		{"infinite number", "n(1e999)", 2, "number", `"1e999"`},
		{"malformed exponent", "n(1e)", 2, "number", `"1e"`},
		{"not a boolean", "b(yes)", 2, "boolean", `"yes"`},
		{"unterminated string", `s("abc`, 6, `closing '"'`, EndOfInput},
		{"number in string list", "s(1)", 2, "string", `'1'`},
		{"unterminated literal list", "n(1 2)", 4, "',' or ')'", `'2'`},
		{"literal list on function", "f(1)", 1, "'@' or end of function pattern", `'('`},
		{"unterminated regex", "s(/ab", 5, "closing '/'", EndOfInput},
		{"trailing input", "a(n)(", 4, EndOfInput, `"("`},
		{"second term", "n s", 2, EndOfInput, `"s"`},
		{"offset counts characters", `s("é") x`, 7, EndOfInput, `"x"`},
		{"wide characters before error", `s("日本",1)`, 7, "string", `'1'`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrSyntax))

			var perr *ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.offset, perr.Offset, "offset")
			assert.Equal(t, tt.expected, perr.Expected, "expected")
			assert.Equal(t, tt.found, perr.Found, "found")
		})
	}
}

func TestParseDateError(t *testing.T) {
	t.Parallel()

	_, err := Parse(`d(1, "not a date")`)
	require.Error(t, err)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 2, perr.Offset)
	assert.Equal(t, "date", perr.Expected)

	_, err = Parse(`d("not a date")`)
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 2, perr.Offset)
	assert.Equal(t, `'"'`, perr.Found)
	assert.Contains(t, err.Error(), `unexpected token '"' at offset 2 where date was expected`)
	assert.NotNil(t, perr.Cause)
}

func TestParseInvalidRegex(t *testing.T) {
	t.Parallel()

	_, err := Parse("s(/[/)")
	require.Error(t, err)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 2, perr.Offset)
	assert.Equal(t, "regular expression", perr.Expected)
	assert.Equal(t, `"/[/"`, perr.Found)

	var syntaxErr *syntax.Error
	assert.ErrorAs(t, err, &syntaxErr)
}

func TestParseErrorMessage(t *testing.T) {
	t.Parallel()

	_, err := Parse("a(n@x,)")
	require.Error(t, err)
	assert.Equal(t, "unexpected token ')' at offset 6 where pattern was expected", err.Error())
}

func TestNodeString(t *testing.T) {
	t.Parallel()

	node, err := Parse("a(n(1)@x|@r)@xs")
	require.NoError(t, err)

	want := `ArrayNode@xs(1 elements):
  0: TypeNode(number)@x:
    0: AlternationNode(1 options):
      0: EqualsNode(1)
  1: RestNode@r`
	assert.Equal(t, want, node.String())
}
