package ui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chriserin/gherk/internal/parser"
)

// ParseError writes err as "file:line: message" followed by the offending
// source line, when there is one. Other errors are written as is.
func ParseError(w io.Writer, err error) {
	var pe *parser.ParseError
	if !errors.As(err, &pe) {
		fmt.Fprintln(w, errStyle.Render("error:")+" "+err.Error())
		return
	}

	fmt.Fprintf(w, "%s:%d: %s %s\n", pe.Source, pe.Line, errStyle.Render("error:"), pe.Message)
	if strings.TrimSpace(pe.Text) == "" {
		return
	}
	fmt.Fprintf(w, "%4d | %s\n", pe.Line, pe.Text)
}
