package parser

import "github.com/chriserin/gherk/internal/source"

// parseSteps reads the steps of sc up to the next unit, tag line or end of
// input. An Examples section ends the scenario.
func (p *parser) parseSteps(sc *Scenario) error {
	last := p.seedVerb()
	for {
		line := p.cur.readContent()
		if line == nil {
			return nil
		}
		if isTagLine(line) || p.g.startsUnit(line.Content) {
			p.cur.unread(line)
			return nil
		}
		if p.g.matchExamples(line.Content) {
			t, err := p.parseTable()
			if err != nil {
				return err
			}
			if t == nil {
				return p.fail(ErrExamplesTable, line, "Examples section requires a table")
			}
			sc.Examples = t
			return nil
		}

		step, next, err := p.parseStep(line, last)
		if err != nil {
			return err
		}
		last = next
		if err := p.attachData(step); err != nil {
			return err
		}
		sc.Steps = append(sc.Steps, step)
	}
}

// seedVerb returns the verb an opening And or But resolves to, or "" when
// such a step is an error.
func (p *parser) seedVerb() Verb {
	if p.strict || p.g.keywords.DefaultGiven() == "" {
		return ""
	}
	return Given
}

// parseStep reads one step line. last is the verb in effect before it; the
// returned verb is the one in effect after it.
func (p *parser) parseStep(line *source.Line, last Verb) (*Step, Verb, error) {
	keyword, class, text, ok := p.g.matchStep(line.Content)
	if !ok {
		return nil, last, p.fail(ErrMalformedStep, line, "malformed step line: %q", line.Content)
	}

	verb, err := resolveVerb(class, last)
	if err != nil {
		return nil, last, p.fail(err, line, "%q must follow a Given, When or Then step", keyword)
	}
	return &Step{Verb: verb, Keyword: keyword, Text: text, Line: line}, verb, nil
}

func resolveVerb(class stepClass, last Verb) (Verb, error) {
	switch class {
	case classGiven:
		return Given, nil
	case classWhen:
		return When, nil
	case classThen:
		return Then, nil
	}
	if last == "" {
		return "", ErrContinuation
	}
	return last, nil
}

// attachData attaches a doc string or, failing that, a table to step.
func (p *parser) attachData(step *Step) error {
	ds, err := p.parseDocString()
	if err != nil {
		return err
	}
	if ds != nil {
		step.DocString = ds
		return nil
	}

	t, err := p.parseTable()
	if err != nil {
		return err
	}
	step.Table = t
	return nil
}
