package parser

import "github.com/chriserin/gherk/internal/source"

// cursor reads lines front to back and accepts any number of lines pushed
// back. The remaining lines are kept in reverse so both ends of the work
// happen at the tail of the slice.
type cursor struct {
	rest []*source.Line
}

func newCursor(lines []*source.Line) *cursor {
	rest := make([]*source.Line, len(lines))
	for i, l := range lines {
		rest[len(lines)-1-i] = l
	}
	return &cursor{rest: rest}
}

func (c *cursor) peek() *source.Line {
	if len(c.rest) == 0 {
		return nil
	}
	return c.rest[len(c.rest)-1]
}

func (c *cursor) read() *source.Line {
	l := c.peek()
	if l != nil {
		c.rest = c.rest[:len(c.rest)-1]
	}
	return l
}

func (c *cursor) unread(l *source.Line) {
	c.rest = append(c.rest, l)
}

// skipBlank consumes blank lines. Comments are left in place.
func (c *cursor) skipBlank() {
	for l := c.peek(); l != nil && l.Blank(); l = c.peek() {
		c.read()
	}
}

// readContent returns the next line that is neither blank nor a comment.
func (c *cursor) readContent() *source.Line {
	for l := c.read(); l != nil; l = c.read() {
		if !l.Blank() && !l.Comment() {
			return l
		}
	}
	return nil
}
