package ui

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/chriserin/gherk/internal/catalog"
	"github.com/chriserin/gherk/internal/parser"
)

// List writes one aligned row per entry: id, file, kind, name and tags.
func List(w io.Writer, entries []catalog.Entry) {
	idWidth, fileWidth, kindWidth := 0, 0, 0
	for _, e := range entries {
		idWidth = max(idWidth, len(fmt.Sprint(e.ID)))
		fileWidth = max(fileWidth, len(filepath.Base(e.Path)))
		kindWidth = max(kindWidth, len(e.Kind))
	}

	for _, e := range entries {
		name := e.Name
		if name == "" {
			name = faintStyle.Render("(unnamed)")
		}
		line := fmt.Sprintf("%-*d  %-*s  %-*s  %s",
			idWidth, e.ID,
			fileWidth, filepath.Base(e.Path),
			kindWidth, e.Kind,
			name)
		if len(e.Tags) > 0 {
			line += "  " + tagStyle.Render("@"+strings.Join(e.Tags, " @"))
		}
		fmt.Fprintln(w, line)
	}
}

// Stats writes catalog totals.
func Stats(w io.Writer, st *catalog.Stats) {
	fmt.Fprintf(w, "Features: %d\n", st.Files)
	fmt.Fprintf(w, "Backgrounds: %d\n", st.Kinds[parser.KindBackground])
	fmt.Fprintf(w, "Scenarios: %d\n", st.Kinds[parser.KindScenario])
	fmt.Fprintf(w, "Outlines: %d\n", st.Kinds[parser.KindOutline])
	fmt.Fprintf(w, "Steps: %d\n", st.Steps)
	if len(st.Tags) == 0 {
		return
	}
	fmt.Fprintln(w, "Tags:")
	for _, tc := range st.Tags {
		fmt.Fprintf(w, "  %s: %d\n", tagStyle.Render("@"+tc.Tag), tc.Count)
	}
}
