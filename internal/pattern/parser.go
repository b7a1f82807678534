package pattern

import (
	"fmt"
	"strconv"
)

// Parser turns one pattern string into an AST. A Parser is single use.
type Parser struct {
	src string
	pos int
}

// NewParser creates a new Parser instance for src.
func NewParser(src string) *Parser {
	return &Parser{src: src}
}

// Parse parses src as a single pattern.
func Parse(src string) (Node, error) {
	return NewParser(src).Parse()
}

// Parse parses the whole input as one pattern term. Trailing whitespace is
// allowed; anything else left over is an error.
func (p *Parser) Parse() (Node, error) {
	if p.src == "" {
		return nil, p.unexpected("pattern")
	}

	node, err := p.parsePattern()
	if err != nil {
		return nil, err
	}

	p.skipSpace()
	if !p.eof() {
		return nil, &ParseError{
			Offset:   charOffset(p.src, p.pos),
			Expected: EndOfInput,
			Found:    strconv.Quote(p.src[p.pos:]),
		}
	}
	return node, nil
}

func (p *Parser) eof() bool { return p.pos >= len(p.src) }

// peek returns the current byte, or 0 at the end of input.
func (p *Parser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *Parser) at(c byte) bool { return !p.eof() && p.src[p.pos] == c }

func (p *Parser) skipSpace() {
	for !p.eof() && isSpace(p.src[p.pos]) {
		p.pos++
	}
}

// unexpected reports that expected was wanted at the current offset.
func (p *Parser) unexpected(expected string) *ParseError {
	return &ParseError{
		Offset:   charOffset(p.src, p.pos),
		Expected: expected,
		Found:    tokenAt(p.src, p.pos),
	}
}

func (p *Parser) expect(c byte, expected string) error {
	if !p.at(c) {
		return p.unexpected(expected)
	}
	p.pos++
	return nil
}

// parsePattern parses Array | Object | TypeTerm.
func (p *Parser) parsePattern() (Node, error) {
	if p.eof() {
		return nil, p.unexpected("pattern")
	}

	switch c := p.src[p.pos]; c {
	case 'a':
		return p.parseArray()
	case 'o':
		return p.parseObject()
	default:
		if kind, ok := typeTags[c]; ok {
			return p.parseType(kind)
		}
		return nil, p.unexpected("pattern")
	}
}

// parseBinding parses '@' Ident. kind names the node being bound in the
// error raised for a missing name.
func (p *Parser) parseBinding(kind NodeKind) (string, error) {
	p.pos++ // consume '@'
	name, ok := p.scanIdent()
	if !ok {
		return "", p.unexpected(fmt.Sprintf("binding name for %s", kind))
	}
	return name, nil
}

func (p *Parser) scanIdent() (string, bool) {
	start := p.pos
	if p.eof() || !isIdentStart(p.src[p.pos]) {
		return "", false
	}
	p.pos++
	for !p.eof() && isIdentChar(p.src[p.pos]) {
		p.pos++
	}
	return p.src[start:p.pos], true
}

// maybeBinding parses an optional trailing binding.
func (p *Parser) maybeBinding(kind NodeKind) (string, error) {
	if !p.at('@') {
		return "", nil
	}
	return p.parseBinding(kind)
}

func (p *Parser) parseArray() (Node, error) {
	start := p.pos
	p.pos++ // consume 'a'

	switch p.peek() {
	case '@':
		name, err := p.parseBinding(KindArray)
		if err != nil {
			return nil, err
		}
		return &ArrayNode{Bind: name, pos: start}, nil
	case '(':
		p.pos++
	default:
		// bare tag, e.g. a(a) to match nested arrays without binding them
		return &ArrayNode{pos: start}, nil
	}

	p.skipSpace()
	if p.at(')') {
		p.pos++
		name, err := p.maybeBinding(KindEmptyArray)
		if err != nil {
			return nil, err
		}
		return &EmptyArrayNode{Bind: name, pos: start}, nil
	}

	node := &ArrayNode{pos: start}
	if !p.at('|') {
		for {
			p.skipSpace()
			elem, err := p.parsePattern()
			if err != nil {
				return nil, err
			}
			node.Elements = append(node.Elements, elem)

			p.skipSpace()
			if !p.at(',') {
				break
			}
			p.pos++
		}
	}

	if p.at('|') {
		rest := &RestNode{pos: p.pos}
		p.pos++
		p.skipSpace()
		if p.at('@') {
			name, err := p.parseBinding(KindRest)
			if err != nil {
				return nil, err
			}
			rest.Bind = name
			p.skipSpace()
		}
		node.Rest = rest
		if err := p.expect(')', "')'"); err != nil {
			return nil, err
		}
	} else if err := p.expect(')', "',', '|' or ')'"); err != nil {
		return nil, err
	}

	name, err := p.maybeBinding(KindArray)
	if err != nil {
		return nil, err
	}
	node.Bind = name
	return node, nil
}

func (p *Parser) parseObject() (Node, error) {
	start := p.pos
	p.pos++ // consume 'o'

	switch p.peek() {
	case '@':
		name, err := p.parseBinding(KindObject)
		if err != nil {
			return nil, err
		}
		return &ObjectNode{Bind: name, pos: start}, nil
	case '(':
		p.pos++
	default:
		return &ObjectNode{pos: start}, nil
	}

	node := &ObjectNode{pos: start}
	for {
		p.skipSpace()
		// properties always have to start with '.' or ':'
		if !p.at('.') && !p.at(':') {
			return nil, p.unexpected("'.' or ':'")
		}
		prop, err := p.parseProperty()
		if err != nil {
			return nil, err
		}
		node.Properties = append(node.Properties, prop)

		p.skipSpace()
		if !p.at(',') {
			break
		}
		p.pos++
	}

	if err := p.expect(')', "',' or ')'"); err != nil {
		return nil, err
	}

	name, err := p.maybeBinding(KindObject)
	if err != nil {
		return nil, err
	}
	node.Bind = name
	return node, nil
}

func (p *Parser) parseProperty() (*PropertyNode, error) {
	prop := &PropertyNode{Proto: p.src[p.pos] == ':', pos: p.pos}
	p.pos++ // consume '.' or ':'

	name, ok := p.scanIdent()
	if !ok {
		return nil, p.unexpected("property name")
	}
	prop.Name = name

	if p.at(':') {
		p.pos++
		typ, err := p.parsePattern()
		if err != nil {
			return nil, err
		}
		prop.Type = typ
	}

	bind, err := p.maybeBinding(prop.Kind())
	if err != nil {
		return nil, err
	}
	prop.Bind = bind
	return prop, nil
}

func (p *Parser) parseType(kind NodeKind) (Node, error) {
	node := &TypeNode{Type: kind, pos: p.pos}
	p.pos++ // consume the type tag

	if p.at('(') {
		if kind == KindCallable {
			return nil, p.unexpected("'@' or end of function pattern")
		}
		alt, err := p.parseLiteralList(kind)
		if err != nil {
			return nil, err
		}
		node.Literals = alt
	}

	name, err := p.maybeBinding(kind)
	if err != nil {
		return nil, err
	}
	node.Bind = name
	return node, nil
}

// parseLiteralList parses '(' Literal (',' Literal)* ')'. The literal forms
// accepted depend on kind.
func (p *Parser) parseLiteralList(kind NodeKind) (*AlternationNode, error) {
	alt := &AlternationNode{pos: p.pos}
	p.pos++ // consume '('

	for {
		p.skipSpace()
		lit, err := p.parseLiteral(kind)
		if err != nil {
			return nil, err
		}
		alt.Options = append(alt.Options, lit)

		p.skipSpace()
		if !p.at(',') {
			break
		}
		p.pos++
	}

	if err := p.expect(')', "',' or ')'"); err != nil {
		return nil, err
	}
	return alt, nil
}
