package parser

import "github.com/chriserin/gherk/internal/source"

// Verb is the canonical kind of a step.
type Verb string

const (
	Given Verb = "Given"
	When  Verb = "When"
	Then  Verb = "Then"
)

type Feature struct {
	Language    string       `json:"language" yaml:"language"`
	Keyword     string       `json:"keyword" yaml:"keyword"`
	Name        string       `json:"name" yaml:"name"`
	Line        *source.Line `json:"-" yaml:"-"`
	Description []string     `json:"description,omitempty" yaml:"description,omitempty"`
	Tags        []string     `json:"tags,omitempty" yaml:"tags,omitempty"`
	Background  *Scenario    `json:"background,omitempty" yaml:"background,omitempty"`
	Scenarios   []*Scenario  `json:"scenarios" yaml:"scenarios"`
}

// Scenario is a Background, a Scenario or a Scenario Outline. Tags holds the
// feature tags followed by the scenario's own.
type Scenario struct {
	Keyword    string       `json:"keyword" yaml:"keyword"`
	Name       string       `json:"name" yaml:"name"`
	Line       *source.Line `json:"-" yaml:"-"`
	Background bool         `json:"background,omitempty" yaml:"background,omitempty"`
	Outline    bool         `json:"outline,omitempty" yaml:"outline,omitempty"`
	Tags       []string     `json:"tags,omitempty" yaml:"tags,omitempty"`
	Steps      []*Step      `json:"steps" yaml:"steps"`
	Examples   *Table       `json:"examples,omitempty" yaml:"examples,omitempty"`
}

// Step carries at most one of DocString and Table.
type Step struct {
	Verb      Verb         `json:"verb" yaml:"verb"`
	Keyword   string       `json:"keyword" yaml:"keyword"` // as written, e.g. "And"
	Text      string       `json:"text" yaml:"text"`
	Line      *source.Line `json:"-" yaml:"-"`
	DocString *DocString   `json:"doc_string,omitempty" yaml:"doc_string,omitempty"`
	Table     *Table       `json:"table,omitempty" yaml:"table,omitempty"`
}

type DocString struct {
	Delimiter   string       `json:"delimiter" yaml:"delimiter"`
	ContentType string       `json:"content_type,omitempty" yaml:"content_type,omitempty"`
	Content     string       `json:"content" yaml:"content"`
	Lines       []string     `json:"-" yaml:"-"`
	Line        *source.Line `json:"-" yaml:"-"`
}

type Table struct {
	Columns []string     `json:"columns" yaml:"columns"`
	Rows    []Row        `json:"rows" yaml:"rows"`
	Line    *source.Line `json:"-" yaml:"-"`
}

// Row is one data row of a Table. Cells are in column order.
type Row struct {
	Cells  []string          `json:"-" yaml:"-"`
	Values map[string]string `json:"values" yaml:"values"`
	Line   *source.Line      `json:"-" yaml:"-"`
}

// Get returns the value of column col, or "" when the table has no such column.
func (r Row) Get(col string) string {
	return r.Values[col]
}

// Units returns the background, if any, followed by the scenarios.
func (f *Feature) Units() []*Scenario {
	if f.Background == nil {
		return f.Scenarios
	}
	return append([]*Scenario{f.Background}, f.Scenarios...)
}
