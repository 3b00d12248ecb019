// Package parser turns feature file text into a Feature.
//
// Parsing is a single forward pass over the lines of a document with
// one line of lookahead. A parse returns either a complete Feature or
// exactly one *ParseError; there is no partial result.
package parser

import (
	"errors"

	"github.com/chriserin/gherk/internal/i18n"
	"github.com/chriserin/gherk/internal/source"
)

type options struct {
	language string
	resolver i18n.Resolver
	strict   bool
}

// Option configures a parse.
type Option func(*options)

// WithLanguage sets the language used when the document has no
// "# language:" directive.
func WithLanguage(lang string) Option {
	return func(o *options) { o.language = lang }
}

// WithResolver replaces the built-in keyword dictionary.
func WithResolver(r i18n.Resolver) Option {
	return func(o *options) { o.resolver = r }
}

// WithStrictContinuation rejects an And or But step that has no Given,
// When or Then before it in the same scenario. By default such a step is
// read as Given.
func WithStrictContinuation() Option {
	return func(o *options) { o.strict = true }
}

// Parse parses the content of a feature file. filename is only used in errors.
func Parse(filename string, content []byte, opts ...Option) (*Feature, error) {
	return ParseDocument(source.New(filename, string(content)), opts...)
}

// ParseFile reads and parses the feature file at path.
func ParseFile(path string, opts ...Option) (*Feature, error) {
	doc, err := source.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseDocument(doc, opts...)
}

// ParseDocument parses an already split document.
func ParseDocument(doc *source.Document, opts ...Option) (*Feature, error) {
	o := options{language: i18n.DefaultLanguage}
	for _, opt := range opts {
		opt(&o)
	}
	if o.resolver == nil {
		o.resolver = i18n.Default()
	}

	p := &parser{doc: doc, cur: newCursor(doc.Lines), strict: o.strict}

	lang, directive := p.parseLanguage(o.language)
	kw, err := o.resolver.Resolve(lang)
	if err != nil {
		if errors.Is(err, i18n.ErrUnknownLanguage) {
			return nil, newError(ErrLanguage, doc, directive, "unsupported language %q", lang)
		}
		return nil, err
	}
	p.g = newGrammar(kw)

	f := &Feature{Language: lang}
	if err := p.parseHeader(f); err != nil {
		return nil, err
	}
	p.parseDescription(f)
	if err := p.parseUnits(f); err != nil {
		return nil, err
	}
	return f, nil
}

type parser struct {
	doc    *source.Document
	cur    *cursor
	g      *grammar
	strict bool
}

func (p *parser) fail(kind error, line *source.Line, format string, args ...any) *ParseError {
	return newError(kind, p.doc, line, format, args...)
}

// parseLanguage consumes a leading "# language: xx" line. It returns the
// language to use and the directive line, if there was one.
func (p *parser) parseLanguage(fallback string) (string, *source.Line) {
	p.cur.skipBlank()
	line := p.cur.peek()
	if line == nil {
		return fallback, nil
	}
	m := languagePattern.FindStringSubmatch(line.Raw)
	if m == nil {
		return fallback, nil
	}
	p.cur.read()
	return m[1], line
}

// parseHeader reads feature tags and the feature line. Comments and blank
// lines before the feature line are skipped.
func (p *parser) parseHeader(f *Feature) error {
	var tags []string
	var last *source.Line
	for {
		line := p.cur.readContent()
		if line == nil {
			return p.fail(ErrMalformedFeature, last, "expected a feature line")
		}
		if isTagLine(line) {
			tags = append(tags, parseTags(line)...)
			last = line
			continue
		}
		keyword, title, ok := p.g.matchFeature(line.Content)
		if !ok {
			return p.fail(ErrMalformedFeature, line, "malformed feature line: %q", line.Content)
		}
		f.Keyword = keyword
		f.Name = title
		f.Line = line
		f.Tags = tags
		return nil
	}
}

// parseDescription collects free text up to the first tag or unit header.
func (p *parser) parseDescription(f *Feature) {
	for {
		line := p.cur.readContent()
		if line == nil {
			return
		}
		if isTagLine(line) || p.g.startsUnit(line.Content) {
			p.cur.unread(line)
			return
		}
		f.Description = append(f.Description, line.Content)
	}
}

func (p *parser) parseUnits(f *Feature) error {
	for {
		sc, err := p.parseUnit(f.Tags)
		if err != nil {
			return err
		}
		if sc == nil {
			return nil
		}
		if !sc.Background {
			f.Scenarios = append(f.Scenarios, sc)
			continue
		}
		if len(f.Scenarios) > 0 {
			return p.fail(ErrBackgroundOrder, sc.Line, "Background not allowed after scenarios")
		}
		if f.Background != nil {
			return p.fail(ErrBackgroundOrder, sc.Line, "only one Background allowed (first declared on line %d)", f.Background.Line.Number)
		}
		f.Background = sc
	}
}

// parseUnit reads one tag block and the Background, Scenario or Scenario
// Outline that follows it. It returns nil at end of input.
func (p *parser) parseUnit(featureTags []string) (*Scenario, error) {
	tags, lastTag := p.collectTags()

	line := p.cur.readContent()
	if line == nil {
		if len(tags) > 0 {
			return nil, p.fail(ErrDanglingTags, lastTag, "expected scenario after tags")
		}
		return nil, nil
	}

	kind, keyword, title, ok := p.g.matchUnit(line.Content)
	if !ok {
		return nil, p.fail(ErrMalformedScenario, line, "malformed scenario line: %q", line.Content)
	}

	sc := &Scenario{
		Keyword:    keyword,
		Name:       title,
		Line:       line,
		Background: kind == unitBackground,
		Outline:    kind == unitOutline,
		Tags:       append(append([]string(nil), featureTags...), tags...),
	}
	if err := p.parseSteps(sc); err != nil {
		return nil, err
	}
	if sc.Outline && (sc.Examples == nil || len(sc.Examples.Rows) == 0) {
		return nil, p.fail(ErrMissingExamples, line, "Outline scenario expects an Examples section")
	}
	return sc, nil
}

// collectTags reads consecutive tag lines and pushes back the first line
// that is not one.
func (p *parser) collectTags() (tags []string, last *source.Line) {
	for {
		line := p.cur.readContent()
		if line == nil {
			return tags, last
		}
		if !isTagLine(line) {
			p.cur.unread(line)
			return tags, last
		}
		tags = append(tags, parseTags(line)...)
		last = line
	}
}
