package parser

import "strings"

// parseTable reads consecutive "|" rows after any blank lines. Comment lines
// between rows are skipped. It returns nil when no row follows.
func (p *parser) parseTable() (*Table, error) {
	p.cur.skipBlank()

	var t *Table
	for {
		line := p.cur.read()
		if line == nil {
			return t, nil
		}
		if line.Comment() {
			continue
		}
		if !strings.HasPrefix(line.Content, "|") {
			p.cur.unread(line)
			return t, nil
		}

		cells := splitRow(line.Content)
		if t == nil {
			t = &Table{Columns: cells, Line: line}
			continue
		}
		if len(cells) != len(t.Columns) {
			return nil, p.fail(ErrTableShape, line,
				"inconsistent number of cells in table row: expected %d, got %d", len(t.Columns), len(cells))
		}
		values := make(map[string]string, len(cells))
		for i, col := range t.Columns {
			values[col] = cells[i]
		}
		t.Rows = append(t.Rows, Row{Cells: cells, Values: values, Line: line})
	}
}

// splitRow splits a row on unescaped "|" and unescapes each cell. The empty
// text before the first pipe and after the last one is dropped.
func splitRow(row string) []string {
	var cells []string
	var cell strings.Builder
	escaped := false
	for _, r := range row {
		switch {
		case escaped:
			cell.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case r == '|':
			cells = append(cells, strings.TrimSpace(cell.String()))
			cell.Reset()
		default:
			cell.WriteRune(r)
		}
	}
	if escaped {
		cell.WriteRune('\\')
	}
	if rest := strings.TrimSpace(cell.String()); rest != "" {
		cells = append(cells, rest)
	}
	return cells[1:]
}
