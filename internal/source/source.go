// Package source splits feature file text into numbered lines.
package source

import (
	"fmt"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Document is the ordered list of lines of one feature file.
type Document struct {
	Name  string
	Lines []*Line
}

// Line is one physical line of a Document. Lines are never modified after New.
type Line struct {
	Raw     string // as written, without the line terminator
	Content string // trimmed
	Indent  int    // leading whitespace, in runes
	Number  int    // 1-based
	Doc     *Document
}

// New splits text into lines. A trailing newline does not produce an extra
// empty line, and a "\r" before each "\n" is dropped.
func New(name, text string) *Document {
	doc := &Document{Name: name}
	text = strings.TrimPrefix(text, "\ufeff")
	if text == "" {
		return doc
	}
	text = strings.TrimSuffix(text, "\n")

	for i, raw := range strings.Split(text, "\n") {
		raw = strings.TrimSuffix(raw, "\r")
		doc.Lines = append(doc.Lines, &Line{
			Raw:     raw,
			Content: strings.TrimSpace(raw),
			Indent:  indentWidth(raw),
			Number:  i + 1,
			Doc:     doc,
		})
	}
	return doc
}

// ReadFile reads a UTF-8 feature file. The document is named after path.
func ReadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return New(path, string(data)), nil
}

// Blank reports whether the line holds only whitespace.
func (l *Line) Blank() bool {
	return l.Content == ""
}

// Comment reports whether the line is a # comment.
func (l *Line) Comment() bool {
	return strings.HasPrefix(l.Content, "#")
}

// Source returns the name of the owning document.
func (l *Line) Source() string {
	if l.Doc == nil {
		return ""
	}
	return l.Doc.Name
}

// Strip returns the raw text with at most width leading whitespace runes removed.
func (l *Line) Strip(width int) string {
	s := l.Raw
	for i := 0; i < width; i++ {
		r, size := utf8.DecodeRuneInString(s)
		if size == 0 || !unicode.IsSpace(r) {
			break
		}
		s = s[size:]
	}
	return s
}

func indentWidth(s string) int {
	n := 0
	for _, r := range s {
		if !unicode.IsSpace(r) {
			break
		}
		n++
	}
	return n
}
