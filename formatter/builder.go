// Package formatter renders parse errors and match results for terminals.
package formatter

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/fatih/color"
)

const tabWidth = 8

var (
	errorStyle   = color.New(color.FgRed, color.Bold)
	ruleStyle    = color.New(color.FgYellow, color.Bold)
	fileStyle    = color.New(color.FgCyan, color.Bold)
	lineStyle    = color.New(color.FgHiBlue, color.Bold)
	messageStyle = color.New(color.FgRed, color.Bold)
	matchStyle   = color.New(color.FgGreen, color.Bold)
	nameStyle    = color.New(color.FgCyan)
	typeStyle    = color.New(color.FgHiBlack)
)

// IssueData is the input of an issue template.
type IssueData struct {
	Kind            string
	Name            string
	Line            int
	Column          int
	Offset          int
	MaxLineNumWidth int
	Padding         string
	Message         string
	Note            string
	SourceLines     []string
}

const issueTemplate = `{{header .Kind .MaxLineNumWidth .Name .Line .Column}}` +
	`{{snippet .SourceLines .Line .MaxLineNumWidth .Padding}}` +
	`{{caret .Message .Padding .Line .Column .SourceLines}}` +
	`{{if .Note}}{{note .Note .Padding}}{{end}}` + "\n"

var issueTmpl = template.Must(template.New("issue").Funcs(template.FuncMap{
	"header":  header,
	"snippet": snippet,
	"caret":   caret,
	"note":    note,
}).Parse(issueTemplate))

func buildIssue(data IssueData) string {
	var buf bytes.Buffer
	if err := issueTmpl.Execute(&buf, data); err != nil {
		return fmt.Sprintf("Error formatting issue: %v", err)
	}
	return buf.String()
}

// utils functions used in the text templates

func header(kind string, maxLineNumWidth int, name string, line, column int) string {
	endString := errorStyle.Sprint("error: ")
	endString += ruleStyle.Sprintf("%s\n", kind)

	padding := strings.Repeat(" ", maxLineNumWidth)
	endString += lineStyle.Sprintf("%s--> ", padding)
	endString += fileStyle.Sprintf("%s:%d:%d\n", name, line, column)
	return endString
}

func snippet(lines []string, line, maxLineNumWidth int, padding string) string {
	endString := lineStyle.Sprintf("%s|\n", padding)
	if line-1 < 0 || line-1 >= len(lines) {
		return endString
	}
	lineNum := fmt.Sprintf("%*d", maxLineNumWidth, line)
	endString += lineStyle.Sprintf("%s | ", lineNum) + lines[line-1] + "\n"
	return endString
}

func caret(message, padding string, line, column int, lines []string) string {
	endString := lineStyle.Sprintf("%s| ", padding)
	if line-1 < 0 || line-1 >= len(lines) {
		endString += messageStyle.Sprintf("%s\n", message)
		return endString
	}

	endString += strings.Repeat(" ", calculateVisualColumn(lines[line-1], column))
	endString += messageStyle.Sprint("^") + "\n"
	endString += lineStyle.Sprintf("%s= ", padding)
	endString += messageStyle.Sprintf("%s\n", message)
	return endString
}

func note(text, padding string) string {
	return lineStyle.Sprintf("%s= ", padding) + matchStyle.Sprint("note: ") + text + "\n"
}

func calculateMaxLineNumWidth(line int) int {
	return len(fmt.Sprintf("%d", line))
}

// calculateVisualColumn returns the display width of line before the
// 1-based character column, expanding tabs.
func calculateVisualColumn(line string, column int) int {
	if column < 0 {
		return 0
	}
	visualColumn := 0
	n := 0
	for _, ch := range line {
		n++
		if n >= column {
			break
		}
		if ch == '\t' {
			visualColumn += tabWidth - (visualColumn % tabWidth)
		} else {
			visualColumn++
		}
	}
	return visualColumn
}

// position converts a character offset into a 1-based line and column,
// both counted in characters.
func position(src string, offset int) (line, column int) {
	line, column = 1, 1
	n := 0
	for _, ch := range src {
		if n >= offset {
			break
		}
		n++
		if ch == '\n' {
			line++
			column = 1
		} else {
			column++
		}
	}
	return line, column
}

func sourceLines(src string) []string {
	lines := strings.Split(src, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
