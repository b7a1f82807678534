package pattern

var identStartTable = [256]bool{
	// lowercase (a-z)
	'a': true, 'b': true, 'c': true, 'd': true, 'e': true,
	'f': true, 'g': true, 'h': true, 'i': true, 'j': true,
	'k': true, 'l': true, 'm': true, 'n': true, 'o': true,
	'p': true, 'q': true, 'r': true, 's': true, 't': true,
	'u': true, 'v': true, 'w': true, 'x': true, 'y': true,
	'z': true,

	// uppercase (A-Z)
	'A': true, 'B': true, 'C': true, 'D': true, 'E': true,
	'F': true, 'G': true, 'H': true, 'I': true, 'J': true,
	'K': true, 'L': true, 'M': true, 'N': true, 'O': true,
	'P': true, 'Q': true, 'R': true, 'S': true, 'T': true,
	'U': true, 'V': true, 'W': true, 'X': true, 'Y': true,
	'Z': true,

	// special characters
	'_': true,
	'$': true,
}

// isIdentStart checks if c may start a binding or property name.
func isIdentStart(c byte) bool {
	return identStartTable[c]
}

// isIdentChar checks if c may continue a binding or property name.
func isIdentChar(c byte) bool {
	return identStartTable[c] || isDigit(c)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// isSpace reports the whitespace skipped between list items.
func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// typeTags maps each type-tag character to the leaf kind it denotes.
var typeTags = map[byte]NodeKind{
	'n': KindNumber,
	's': KindString,
	'S': KindNonBlankString,
	'b': KindBoolean,
	'f': KindCallable,
	'd': KindDate,
	'r': KindRegex,
	'_': KindAny,
}

// tagOf is the inverse of typeTags.
func tagOf(kind NodeKind) byte {
	for c, k := range typeTags {
		if k == kind {
			return c
		}
	}
	return '?'
}
