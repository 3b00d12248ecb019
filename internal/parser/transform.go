package parser

import (
	"strings"
)

// Kind names the flavour of a scenario-like unit.
type Kind string

const (
	KindBackground Kind = "background"
	KindScenario   Kind = "scenario"
	KindOutline    Kind = "outline"
)

// Kind reports whether sc is a background, an outline or a plain scenario.
func (sc *Scenario) Kind() Kind {
	switch {
	case sc.Background:
		return KindBackground
	case sc.Outline:
		return KindOutline
	default:
		return KindScenario
	}
}

// ParsedFile is the flattened view of a Feature stored in the catalog.
type ParsedFile struct {
	Name      string
	Language  string
	Tags      []string
	Scenarios []ParsedScenario
}

// ParsedScenario is one unit of a feature file.
type ParsedScenario struct {
	Name     string
	Kind     Kind
	Tags     []string
	Line     int    // 1-based line number of the unit header
	Steps    []ParsedStep
	Examples int    // number of example rows
	Content  string // raw text from the header line to the end of the unit
}

type ParsedStep struct {
	Position int
	Verb     Verb
	Keyword  string
	Text     string
	Line     int
}

// Transform flattens f for storage. content is the source f was parsed from.
func Transform(f *Feature, content []byte) *ParsedFile {
	pf := &ParsedFile{
		Name:     f.Name,
		Language: f.Language,
		Tags:     f.Tags,
	}

	lines := strings.Split(strings.ReplaceAll(string(content), "\r\n", "\n"), "\n")
	units := f.Units()

	for i, sc := range units {
		ps := ParsedScenario{
			Name: sc.Name,
			Kind: sc.Kind(),
			Tags: sc.Tags,
			Line: sc.Line.Number,
		}
		if sc.Examples != nil {
			ps.Examples = len(sc.Examples.Rows)
		}
		for j, st := range sc.Steps {
			ps.Steps = append(ps.Steps, ParsedStep{
				Position: j + 1,
				Verb:     st.Verb,
				Keyword:  st.Keyword,
				Text:     st.Text,
				Line:     st.Line.Number,
			})
		}

		startLine := sc.Line.Number - 1 // 0-based
		endLine := len(lines)
		if i+1 < len(units) {
			endLine = units[i+1].Line.Number - 1
			// Walk back over the tags, comments and blanks in front of the next unit
			for endLine > startLine {
				t := strings.TrimSpace(lines[endLine-1])
				if t == "" || strings.HasPrefix(t, "@") || strings.HasPrefix(t, "#") {
					endLine--
				} else {
					break
				}
			}
		}

		// Trim trailing blank lines
		for endLine > startLine && strings.TrimSpace(lines[endLine-1]) == "" {
			endLine--
		}

		if startLine < len(lines) {
			ps.Content = strings.Join(lines[startLine:endLine], "\n")
		}

		pf.Scenarios = append(pf.Scenarios, ps)
	}

	return pf
}
