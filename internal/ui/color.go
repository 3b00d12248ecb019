package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	newStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	updStyle     = lipgloss.NewStyle().Faint(true)
	errStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	keywordStyle = lipgloss.NewStyle().Bold(true)
	tagStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	faintStyle   = lipgloss.NewStyle().Faint(true)
)

func NewLine(w io.Writer, path string, scenarios int) {
	fmt.Fprintf(w, "%s  %s (%d)\n", newStyle.Render("new"), path, scenarios)
}

func UpdLine(w io.Writer, path string, scenarios int) {
	fmt.Fprintf(w, "%s  %s (%d)\n", updStyle.Render("upd"), path, scenarios)
}

func ErrLine(w io.Writer, path string) {
	fmt.Fprintln(w, errStyle.Render("err")+"  "+path)
}

func SummaryLine(w io.Writer, count, failed int) {
	if failed > 0 {
		fmt.Fprintf(w, "synced %d files, %d failed\n", count, failed)
		return
	}
	fmt.Fprintf(w, "synced %d files\n", count)
}
