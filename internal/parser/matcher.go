package parser

import (
	"regexp"
	"sort"
	"strings"

	"github.com/chriserin/gherk/internal/i18n"
	"github.com/chriserin/gherk/internal/source"
)

var (
	languagePattern = regexp.MustCompile(`^\s*#\s*language\s*:\s*([\w-]+)\s*$`)
	tagLinePattern  = regexp.MustCompile(`^@\w`)
	tagPattern      = regexp.MustCompile(`@([^@\s]+)`)
	docStringOpener = regexp.MustCompile("^(\"\"\"|```)\\s*([\\w.+/-]*)$")
)

type unitKind int

const (
	unitScenario unitKind = iota
	unitBackground
	unitOutline
)

type stepClass int

const (
	classGiven stepClass = iota
	classWhen
	classThen
	classAnd
	classBut
)

// grammar is the set of line matchers for one language. It is built once
// per parse and never modified.
type grammar struct {
	keywords   *i18n.Keywords
	feature    *regexp.Regexp
	background *regexp.Regexp
	scenario   *regexp.Regexp
	outline    *regexp.Regexp
	examples   *regexp.Regexp
	step       *regexp.Regexp
	classes    map[string]stepClass
}

func newGrammar(kw *i18n.Keywords) *grammar {
	g := &grammar{
		keywords:   kw,
		feature:    headerPattern(kw.Feature),
		background: headerPattern(kw.Background),
		scenario:   headerPattern(kw.Scenario),
		outline:    headerPattern(kw.ScenarioOutline),
		examples:   headerPattern(kw.Examples),
		classes:    map[string]stepClass{},
	}

	var words []string
	for class, list := range [][]string{kw.Given, kw.When, kw.Then, kw.And, kw.But} {
		for _, w := range list {
			if _, ok := g.classes[w]; !ok {
				g.classes[w] = stepClass(class)
				words = append(words, w)
			}
		}
	}
	g.step = regexp.MustCompile(`^(` + alternation(words) + `)\s+(\S.*)$`)
	return g
}

// alternation joins quoted keywords longest first so that "Et que" wins over "Et".
func alternation(words []string) string {
	sorted := append([]string(nil), words...)
	sort.SliceStable(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })
	quoted := make([]string, len(sorted))
	for i, w := range sorted {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return strings.Join(quoted, "|")
}

func headerPattern(words []string) *regexp.Regexp {
	return regexp.MustCompile(`^(` + alternation(words) + `)\s*:\s*(.*)$`)
}

// matchFeature matches "<feature keyword>: <title>".
func (g *grammar) matchFeature(content string) (keyword, title string, ok bool) {
	return matchHeader(g.feature, content)
}

// matchUnit matches a Background, Scenario Outline or Scenario header.
// Outlines are tried first since their keywords can extend scenario keywords.
func (g *grammar) matchUnit(content string) (kind unitKind, keyword, title string, ok bool) {
	if keyword, title, ok = matchHeader(g.outline, content); ok {
		return unitOutline, keyword, title, true
	}
	if keyword, title, ok = matchHeader(g.background, content); ok {
		return unitBackground, keyword, title, true
	}
	if keyword, title, ok = matchHeader(g.scenario, content); ok {
		return unitScenario, keyword, title, true
	}
	return 0, "", "", false
}

func (g *grammar) startsUnit(content string) bool {
	_, _, _, ok := g.matchUnit(content)
	return ok
}

func (g *grammar) matchExamples(content string) bool {
	return g.examples.MatchString(content)
}

// matchStep matches "<step keyword> <text>".
func (g *grammar) matchStep(content string) (keyword string, class stepClass, text string, ok bool) {
	m := g.step.FindStringSubmatch(content)
	if m == nil {
		return "", 0, "", false
	}
	return m[1], g.classes[m[1]], strings.TrimSpace(m[2]), true
}

func matchHeader(re *regexp.Regexp, content string) (keyword, title string, ok bool) {
	m := re.FindStringSubmatch(content)
	if m == nil {
		return "", "", false
	}
	return m[1], strings.TrimSpace(m[2]), true
}

// isTagLine reports whether the line starts with "@" followed by a word character.
func isTagLine(l *source.Line) bool {
	return tagLinePattern.MatchString(l.Content)
}

// parseTags returns every @token on the line, without the "@".
func parseTags(l *source.Line) []string {
	var tags []string
	for _, m := range tagPattern.FindAllStringSubmatch(l.Content, -1) {
		tags = append(tags, m[1])
	}
	return tags
}
