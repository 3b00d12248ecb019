package parser

import (
	"errors"
	"fmt"

	"github.com/chriserin/gherk/internal/source"
)

var (
	ErrMalformedFeature      = errors.New("malformed feature line")
	ErrMalformedScenario     = errors.New("malformed scenario line")
	ErrMalformedStep         = errors.New("malformed step line")
	ErrBackgroundOrder       = errors.New("misplaced background")
	ErrMissingExamples       = errors.New("missing examples")
	ErrDanglingTags          = errors.New("tags without scenario")
	ErrTableShape            = errors.New("inconsistent table")
	ErrExamplesTable         = errors.New("examples without table")
	ErrUnterminatedDocString = errors.New("unterminated doc string")
	ErrContinuation          = errors.New("continuation without verb")
	ErrLanguage              = errors.New("unsupported language")
)

// ParseError is the single error returned by a failed parse. Kind is one of
// the Err* sentinels and is matched by errors.Is.
type ParseError struct {
	Kind    error
	Source  string
	Line    int    // 1-based, 0 when the document has no lines
	Text    string // raw text of the offending line
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.Source, e.Line, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Kind
}

func newError(kind error, doc *source.Document, line *source.Line, format string, args ...any) *ParseError {
	e := &ParseError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
	if doc != nil {
		e.Source = doc.Name
	}
	if line != nil {
		e.Source = line.Source()
		e.Line = line.Number
		e.Text = line.Raw
	}
	return e
}
