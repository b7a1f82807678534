package pattern

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// parseLiteral parses one literal of the forms allowed for kind.
func (p *Parser) parseLiteral(kind NodeKind) (Node, error) {
	switch kind {
	case KindNumber:
		return p.parseNumberLiteral()
	case KindString, KindNonBlankString:
		if p.at('/') {
			return p.parseRegexLiteral()
		}
		return p.parseStringLiteral("string")
	case KindBoolean:
		return p.parseBooleanLiteral()
	case KindDate:
		return p.parseDateLiteral()
	case KindRegex:
		// the candidate regexp must have the same source text
		start := p.pos
		re, err := p.scanRegex()
		if err != nil {
			return nil, err
		}
		return &EqualsNode{Value: re, pos: start}, nil
	default:
		return p.parseAnyLiteral()
	}
}

// parseAnyLiteral picks the literal form from its first character.
func (p *Parser) parseAnyLiteral() (Node, error) {
	switch c := p.peek(); {
	case c == '"' || c == '\'':
		return p.parseStringLiteral("literal")
	case c == '/':
		return p.parseRegexLiteral()
	case c == 't' || c == 'f':
		return p.parseBooleanLiteral()
	case c == '+' || c == '-' || c == '.' || isDigit(c):
		return p.parseNumberLiteral()
	default:
		return nil, p.unexpected("literal")
	}
}

// scanQuoted reads a string literal delimited by ' or ". The content is
// taken verbatim: there is no escape processing.
func (p *Parser) scanQuoted(expected string) (string, error) {
	delim := p.peek()
	if delim != '"' && delim != '\'' {
		return "", p.unexpected(expected)
	}

	end := strings.IndexByte(p.src[p.pos+1:], delim)
	if end < 0 {
		p.pos = len(p.src)
		return "", p.unexpected(fmt.Sprintf("closing %q", delim))
	}

	content := p.src[p.pos+1 : p.pos+1+end]
	p.pos += end + 2
	return content, nil
}

func (p *Parser) parseStringLiteral(expected string) (Node, error) {
	start := p.pos
	content, err := p.scanQuoted(expected)
	if err != nil {
		return nil, err
	}
	return &EqualsNode{Value: content, pos: start}, nil
}

// scanRegex reads a /.../ literal and compiles it.
func (p *Parser) scanRegex() (*regexp.Regexp, error) {
	start := p.pos
	if !p.at('/') {
		return nil, p.unexpected("regular expression")
	}

	end := strings.IndexByte(p.src[p.pos+1:], '/')
	if end < 0 {
		p.pos = len(p.src)
		return nil, p.unexpected("closing '/'")
	}

	src := p.src[p.pos+1 : p.pos+1+end]
	re, err := regexp.Compile(src)
	if err != nil {
		return nil, &ParseError{
			Offset:   charOffset(p.src, start),
			Expected: "regular expression",
			Found:    strconv.Quote("/" + src + "/"),
			Cause:    err,
		}
	}
	p.pos += end + 2
	return re, nil
}

func (p *Parser) parseRegexLiteral() (Node, error) {
	start := p.pos
	re, err := p.scanRegex()
	if err != nil {
		return nil, err
	}
	return &RegexMatchNode{Regexp: re, pos: start}, nil
}

// parseNumberLiteral parses literals like 1, -1.05, .05, 8e5 or 2E-3.
func (p *Parser) parseNumberLiteral() (Node, error) {
	start := p.pos
	if p.at('+') || p.at('-') {
		p.pos++
	}
	for !p.eof() && (isDigit(p.src[p.pos]) || p.src[p.pos] == '.') {
		p.pos++
	}
	if p.at('e') || p.at('E') {
		p.pos++
		if p.at('+') || p.at('-') {
			p.pos++
		}
		for !p.eof() && isDigit(p.src[p.pos]) {
			p.pos++
		}
	}

	text := p.src[start:p.pos]
	f, err := strconv.ParseFloat(text, 64)
	if text == "" || err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		perr := &ParseError{Offset: charOffset(p.src, start), Expected: "number", Found: tokenAt(p.src, start)}
		if text != "" {
			perr.Found = strconv.Quote(text)
		}
		return nil, perr
	}
	return &EqualsNode{Value: f, pos: start}, nil
}

func (p *Parser) parseBooleanLiteral() (Node, error) {
	start := p.pos
	for !p.eof() && p.src[p.pos] >= 'a' && p.src[p.pos] <= 'z' {
		p.pos++
	}

	switch word := p.src[start:p.pos]; word {
	case "true":
		return &EqualsNode{Value: true, pos: start}, nil
	case "false":
		return &EqualsNode{Value: false, pos: start}, nil
	case "":
		return nil, &ParseError{Offset: charOffset(p.src, start), Expected: "boolean", Found: tokenAt(p.src, start)}
	default:
		return nil, &ParseError{Offset: charOffset(p.src, start), Expected: "boolean", Found: strconv.Quote(word)}
	}
}

// parseDateLiteral parses a quoted date. Dates without a zone are taken
// as UTC.
func (p *Parser) parseDateLiteral() (Node, error) {
	start := p.pos
	raw, err := p.scanQuoted("date")
	if err != nil {
		return nil, err
	}

	t, err := dateparse.ParseIn(raw, time.UTC)
	if err != nil {
		return nil, &ParseError{
			Offset:   charOffset(p.src, start),
			Expected: "date",
			Found:    tokenAt(p.src, start),
			Cause:    err,
		}
	}
	return &DateEqualsNode{Date: t, Raw: raw, pos: start}, nil
}
