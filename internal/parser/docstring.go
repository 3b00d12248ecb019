package parser

import "strings"

// parseDocString reads a doc string if the next line opens one. Each content
// line loses up to the opener's indentation and is unescaped.
func (p *parser) parseDocString() (*DocString, error) {
	opener := p.cur.peek()
	if opener == nil {
		return nil, nil
	}
	m := docStringOpener.FindStringSubmatch(opener.Content)
	if m == nil {
		return nil, nil
	}
	p.cur.read()

	ds := &DocString{Delimiter: m[1], ContentType: m[2], Line: opener}
	var content strings.Builder
	for {
		line := p.cur.read()
		if line == nil {
			return nil, p.fail(ErrUnterminatedDocString, opener, "multiline string not terminated")
		}
		if line.Content == ds.Delimiter {
			break
		}
		text := unescape(line.Strip(opener.Indent))
		ds.Lines = append(ds.Lines, text)
		content.WriteString(text)
		content.WriteByte('\n')
	}
	ds.Content = content.String()
	return ds, nil
}

// unescape drops the backslash in front of every escaped character.
func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	escaped := false
	for _, r := range s {
		if !escaped && r == '\\' {
			escaped = true
			continue
		}
		b.WriteRune(r)
		escaped = false
	}
	if escaped {
		b.WriteByte('\\')
	}
	return b.String()
}
