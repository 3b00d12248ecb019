package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/chriserin/gherk/internal/parser"
)

const indentUnit = "  "

// Feature writes f back out in Gherkin layout, with canonical indentation.
func Feature(w io.Writer, f *parser.Feature) {
	tags(w, "", f.Tags)
	fmt.Fprintf(w, "%s %s\n", keywordStyle.Render(f.Keyword+":"), f.Name)
	for _, d := range f.Description {
		fmt.Fprintln(w, indentUnit+d)
	}
	for _, sc := range f.Units() {
		fmt.Fprintln(w)
		Scenario(w, sc, len(f.Tags))
	}
}

// Scenario writes one unit. The first inherited tags are not repeated.
func Scenario(w io.Writer, sc *parser.Scenario, inherited int) {
	if inherited <= len(sc.Tags) {
		tags(w, indentUnit, sc.Tags[inherited:])
	}
	header := keywordStyle.Render(sc.Keyword + ":")
	if sc.Name != "" {
		header += " " + sc.Name
	}
	fmt.Fprintln(w, indentUnit+header)

	stepIndent := strings.Repeat(indentUnit, 2)
	for _, st := range sc.Steps {
		fmt.Fprintf(w, "%s%s %s\n", stepIndent, keywordStyle.Render(st.Keyword), st.Text)
		if st.DocString != nil {
			docString(w, stepIndent+indentUnit, st.DocString)
		}
		if st.Table != nil {
			Table(w, stepIndent+indentUnit, st.Table)
		}
	}
	if sc.Examples != nil {
		fmt.Fprintln(w)
		fmt.Fprintln(w, stepIndent+keywordStyle.Render("Examples:"))
		Table(w, stepIndent+indentUnit, sc.Examples)
	}
}

func tags(w io.Writer, indent string, names []string) {
	if len(names) == 0 {
		return
	}
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = "@" + n
	}
	fmt.Fprintln(w, indent+tagStyle.Render(strings.Join(parts, " ")))
}

func docString(w io.Writer, indent string, ds *parser.DocString) {
	fmt.Fprintln(w, indent+faintStyle.Render(ds.Delimiter+ds.ContentType))
	for _, l := range ds.Lines {
		if l == "" {
			fmt.Fprintln(w)
			continue
		}
		fmt.Fprintln(w, indent+l)
	}
	fmt.Fprintln(w, indent+faintStyle.Render(ds.Delimiter))
}

// Table writes t with every column padded to its widest cell.
func Table(w io.Writer, indent string, t *parser.Table) {
	widths := make([]int, len(t.Columns))
	for i, c := range t.Columns {
		widths[i] = len([]rune(escapeCell(c)))
	}
	for _, r := range t.Rows {
		for i, c := range r.Cells {
			if n := len([]rune(escapeCell(c))); n > widths[i] {
				widths[i] = n
			}
		}
	}

	row := func(cells []string) {
		var b strings.Builder
		b.WriteString(indent + "|")
		for i, c := range cells {
			c = escapeCell(c)
			b.WriteString(" " + c + strings.Repeat(" ", widths[i]-len([]rune(c))) + " |")
		}
		fmt.Fprintln(w, b.String())
	}
	row(t.Columns)
	for _, r := range t.Rows {
		row(r.Cells)
	}
}

func escapeCell(s string) string {
	return strings.NewReplacer(`\`, `\\`, "|", `\|`).Replace(s)
}
