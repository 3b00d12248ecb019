package parser

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chriserin/gherk/internal/i18n"
)

func parse(t *testing.T, content string, opts ...Option) *Feature {
	t.Helper()
	f, err := Parse("login.feature", []byte(content), opts...)
	require.NoError(t, err)
	return f
}

func parseErr(t *testing.T, content string, opts ...Option) *ParseError {
	t.Helper()
	_, err := Parse("login.feature", []byte(content), opts...)
	require.Error(t, err)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	return pe
}

func TestParse_SingleScenario(t *testing.T) {
	f := parse(t, `Feature: F
  Scenario: S
    Given a thing
     When I do it
     Then it works
`)
	assert.Equal(t, "F", f.Name)
	assert.Equal(t, "Feature", f.Keyword)
	assert.Equal(t, "en", f.Language)
	assert.Nil(t, f.Background)
	require.Len(t, f.Scenarios, 1)

	sc := f.Scenarios[0]
	assert.Equal(t, "S", sc.Name)
	assert.Equal(t, 2, sc.Line.Number)
	require.Len(t, sc.Steps, 3)
	assert.Equal(t, []Verb{Given, When, Then}, []Verb{sc.Steps[0].Verb, sc.Steps[1].Verb, sc.Steps[2].Verb})
	assert.Equal(t, "a thing", sc.Steps[0].Text)
	assert.Equal(t, "I do it", sc.Steps[1].Text)
	assert.Equal(t, "it works", sc.Steps[2].Text)
	assert.Equal(t, 5, sc.Steps[2].Line.Number)
}

func TestParse_MultipleScenarios(t *testing.T) {
	f := parse(t, `Feature: Login
  Scenario: User logs in
    Given a user

  Scenario: User fails login
    Given a user
`)
	require.Len(t, f.Scenarios, 2)
	assert.Equal(t, "User logs in", f.Scenarios[0].Name)
	assert.Equal(t, "User fails login", f.Scenarios[1].Name)
}

func TestParse_Background(t *testing.T) {
	f := parse(t, `Feature: Login
  Background:
    Given a registered user

  Scenario: User logs in
    When  they log in
    Then  they see the dashboard
`)
	require.NotNil(t, f.Background)
	assert.True(t, f.Background.Background)
	assert.Equal(t, "", f.Background.Name)
	require.Len(t, f.Background.Steps, 1)
	require.Len(t, f.Scenarios, 1)
	assert.Equal(t, KindBackground, f.Background.Kind())
	assert.Len(t, f.Units(), 2)
}

func TestParse_BackgroundAfterScenario(t *testing.T) {
	pe := parseErr(t, `Feature: Login
  Scenario: First
    Given a

  @slow
  Background:
    Given b
`)
	assert.ErrorIs(t, pe, ErrBackgroundOrder)
	assert.Equal(t, 6, pe.Line)
	assert.Contains(t, pe.Message, "Background not allowed after scenarios")
}

func TestParse_SecondBackground(t *testing.T) {
	pe := parseErr(t, `Feature: Login
  Background:
    Given a
  Background:
    Given b
`)
	assert.ErrorIs(t, pe, ErrBackgroundOrder)
	assert.Equal(t, 4, pe.Line)
}

func TestParse_Description(t *testing.T) {
	f := parse(t, `Feature: Login
  As a user
  # not part of it

  I want to log in
  @tag
  Scenario: S
    Given a
`)
	assert.Equal(t, []string{"As a user", "I want to log in"}, f.Description)
	require.Len(t, f.Scenarios, 1)
	assert.Equal(t, []string{"tag"}, f.Scenarios[0].Tags)
}

func TestParse_TagInheritance(t *testing.T) {
	f := parse(t, `@web @auth
Feature: Login
  @smoke @ft:5
  @smoke
  Scenario: User logs in
    Given a user

  Scenario: Plain
    Given a user
`)
	assert.Equal(t, []string{"web", "auth"}, f.Tags)
	require.Len(t, f.Scenarios, 2)
	assert.Equal(t, []string{"web", "auth", "smoke", "ft:5", "smoke"}, f.Scenarios[0].Tags)
	assert.Equal(t, []string{"web", "auth"}, f.Scenarios[1].Tags)
}

func TestParse_TagsMixedWithText(t *testing.T) {
	f := parse(t, `Feature: F
  @one some text @two
  Scenario: S
    Given a
`)
	assert.Equal(t, []string{"one", "two"}, f.Scenarios[0].Tags)
}

func TestParse_DanglingTags(t *testing.T) {
	pe := parseErr(t, `Feature: F
  Scenario: S
    Given a

  @orphan
`)
	assert.ErrorIs(t, pe, ErrDanglingTags)
	assert.Equal(t, 5, pe.Line)
	assert.Equal(t, "expected scenario after tags", pe.Message)
}

func TestParse_Comments(t *testing.T) {
	f := parse(t, `# This is a comment
Feature: Login
  # Another comment
  Scenario: User logs in
    # between steps
    Given a user
`)
	assert.Equal(t, "Login", f.Name)
	require.Len(t, f.Scenarios, 1)
	assert.Len(t, f.Scenarios[0].Steps, 1)
}

func TestParse_BlankLinesWithinScenario(t *testing.T) {
	f := parse(t, `Feature: Login
  Scenario: User logs in
    Given a user

    When  they log in

    Then  they see the dashboard
`)
	require.Len(t, f.Scenarios, 1)
	assert.Len(t, f.Scenarios[0].Steps, 3)
}

func TestParse_ScenarioWithoutTitle(t *testing.T) {
	f := parse(t, "Feature: F\n  Scenario:\n    Given a\n")
	assert.Equal(t, "", f.Scenarios[0].Name)
}

func TestParse_UntaggedUnknownKeywordIsDescription(t *testing.T) {
	f := parse(t, "Feature: F\n  Rule: Business rule\n")
	assert.Equal(t, []string{"Rule: Business rule"}, f.Description)
}

func TestParse_NoScenarios(t *testing.T) {
	f := parse(t, "Feature: Only a title\n")
	assert.Equal(t, "Only a title", f.Name)
	assert.Empty(t, f.Scenarios)
}

func TestParse_MissingFeatureLine(t *testing.T) {
	pe := parseErr(t, `  Scenario: User logs in
    Given a user
`)
	assert.ErrorIs(t, pe, ErrMalformedFeature)
	assert.Equal(t, 1, pe.Line)
	assert.Equal(t, "login.feature", pe.Source)
}

func TestParse_EmptyFile(t *testing.T) {
	pe := parseErr(t, "")
	assert.ErrorIs(t, pe, ErrMalformedFeature)
	assert.Equal(t, 0, pe.Line)
	assert.Equal(t, "login.feature:0: expected a feature line", pe.Error())
}

func TestParse_MalformedScenarioLine(t *testing.T) {
	pe := parseErr(t, `Feature: F
  @rules
  Rule: Business rule
`)
	assert.ErrorIs(t, pe, ErrMalformedScenario)
	assert.Equal(t, 3, pe.Line)
	assert.Equal(t, "  Rule: Business rule", pe.Text)
}

func TestParse_MalformedStepLine(t *testing.T) {
	pe := parseErr(t, `Feature: F
  Scenario: S
    Given a
    Whatever this is
`)
	assert.ErrorIs(t, pe, ErrMalformedStep)
	assert.Equal(t, 4, pe.Line)
}

func TestParse_StepNeedsText(t *testing.T) {
	pe := parseErr(t, "Feature: F\n  Scenario: S\n    Given\n")
	assert.ErrorIs(t, pe, ErrMalformedStep)
}

func TestParse_VerbContinuation(t *testing.T) {
	f := parse(t, `Feature: F
  Scenario: S
    Given a
    And b
    And c
    When d
    But e
    Then f
    * g
`)
	steps := f.Scenarios[0].Steps
	require.Len(t, steps, 7)

	var verbs, keywords []string
	for _, s := range steps {
		verbs = append(verbs, string(s.Verb))
		keywords = append(keywords, s.Keyword)
	}
	assert.Equal(t, []string{"Given", "Given", "Given", "When", "When", "Then", "Then"}, verbs)
	assert.Equal(t, []string{"Given", "And", "And", "When", "But", "Then", "*"}, keywords)
}

func TestParse_ContinuationResetsPerScenario(t *testing.T) {
	f := parse(t, `Feature: F
  Scenario: One
    When a
  Scenario: Two
    And b
`)
	assert.Equal(t, Given, f.Scenarios[1].Steps[0].Verb)
}

func TestParse_LeadingContinuation(t *testing.T) {
	f := parse(t, "Feature: F\n  Scenario: S\n    And a\n")
	assert.Equal(t, Given, f.Scenarios[0].Steps[0].Verb)
	assert.Equal(t, "And", f.Scenarios[0].Steps[0].Keyword)

	pe := parseErr(t, "Feature: F\n  Scenario: S\n    But a\n", WithStrictContinuation())
	assert.ErrorIs(t, pe, ErrContinuation)
	assert.Equal(t, 3, pe.Line)

	f = parse(t, "Feature: F\n  Scenario: S\n    Given a\n    And b\n", WithStrictContinuation())
	assert.Equal(t, Given, f.Scenarios[0].Steps[1].Verb)
}

func TestParse_StepTable(t *testing.T) {
	f := parse(t, `Feature: F
  Scenario: S
    Given users:

      | a | b |
      # comment inside
      | 1 | 2 |
    Then ok
`)
	steps := f.Scenarios[0].Steps
	require.Len(t, steps, 2)
	tbl := steps[0].Table
	require.NotNil(t, tbl)
	assert.Nil(t, steps[0].DocString)
	assert.Equal(t, []string{"a", "b"}, tbl.Columns)
	require.Len(t, tbl.Rows, 1)
	assert.Equal(t, map[string]string{"a": "1", "b": "2"}, tbl.Rows[0].Values)
	assert.Equal(t, []string{"1", "2"}, tbl.Rows[0].Cells)
	assert.Equal(t, "2", tbl.Rows[0].Get("b"))
	assert.Equal(t, 7, tbl.Rows[0].Line.Number)
}

func TestParse_TableEscapes(t *testing.T) {
	f := parse(t, `Feature: F
  Scenario: S
    Given values:
      | expr   | note        |
      | a \| b | back\\slash |
`)
	row := f.Scenarios[0].Steps[0].Table.Rows[0]
	assert.Equal(t, "a | b", row.Get("expr"))
	assert.Equal(t, `back\slash`, row.Get("note"))
}

func TestParse_TableShapeMismatch(t *testing.T) {
	pe := parseErr(t, `Feature: F
  Scenario: S
    Given values:
      | a | b |
      | 1 | 2 | 3 |
`)
	assert.ErrorIs(t, pe, ErrTableShape)
	assert.Equal(t, 5, pe.Line)
}

func TestParse_DocString(t *testing.T) {
	f := parse(t, "Feature: F\n"+
		"  Scenario: S\n"+
		"    Given a file:\n"+
		"      \"\"\"markdown\n"+
		"      # Title\n"+
		"\n"+
		"        indented\n"+
		"      Scenario: not real\n"+
		"      \"\"\"\n"+
		"    Then ok\n")

	steps := f.Scenarios[0].Steps
	require.Len(t, steps, 2)
	ds := steps[0].DocString
	require.NotNil(t, ds)
	assert.Nil(t, steps[0].Table)
	assert.Equal(t, `"""`, ds.Delimiter)
	assert.Equal(t, "markdown", ds.ContentType)
	assert.Equal(t, []string{"# Title", "", "  indented", "Scenario: not real"}, ds.Lines)
	assert.Equal(t, "# Title\n\n  indented\nScenario: not real\n", ds.Content)
}

func TestParse_DocStringBackticksAndEscapes(t *testing.T) {
	f := parse(t, "Feature: F\n"+
		"  Scenario: S\n"+
		"    Given code:\n"+
		"      ```\n"+
		"      \\`\\`\\`\n"+
		"      \\\"\\\"\\\"\n"+
		"      ```\n")

	ds := f.Scenarios[0].Steps[0].DocString
	require.NotNil(t, ds)
	assert.Equal(t, "```", ds.Delimiter)
	assert.Equal(t, "```\n\"\"\"\n", ds.Content)
}

func TestParse_DocStringOtherFenceIsContent(t *testing.T) {
	f := parse(t, "Feature: F\n"+
		"  Scenario: S\n"+
		"    Given text:\n"+
		"      \"\"\"\n"+
		"      ```\n"+
		"      \"\"\"\n")
	assert.Equal(t, "```\n", f.Scenarios[0].Steps[0].DocString.Content)
}

func TestParse_UnterminatedDocString(t *testing.T) {
	pe := parseErr(t, "Feature: F\n  Scenario: S\n    Given text:\n      \"\"\"\n      never closed\n")
	assert.ErrorIs(t, pe, ErrUnterminatedDocString)
	assert.Equal(t, 4, pe.Line)
	assert.Equal(t, "multiline string not terminated", pe.Message)
}

func TestParse_ScenarioOutline(t *testing.T) {
	f := parse(t, `Feature: F
  Scenario Outline: Eating
    Given there are <start> cucumbers
    When I eat <eat> cucumbers
    Then I should have <left> cucumbers

    Examples:
      | start | eat | left |
      |    12 |   5 |    7 |
      |    20 |   5 |   15 |

  Scenario: After
    Given a
`)
	require.Len(t, f.Scenarios, 2)
	sc := f.Scenarios[0]
	assert.True(t, sc.Outline)
	assert.Equal(t, KindOutline, sc.Kind())
	assert.Len(t, sc.Steps, 3)
	require.NotNil(t, sc.Examples)
	assert.Equal(t, []string{"start", "eat", "left"}, sc.Examples.Columns)
	require.Len(t, sc.Examples.Rows, 2)
	assert.Equal(t, "15", sc.Examples.Rows[1].Get("left"))
	assert.Equal(t, "After", f.Scenarios[1].Name)
}

func TestParse_OutlineWithoutExamples(t *testing.T) {
	pe := parseErr(t, `Feature: Login
  Scenario Outline: User logs in
    Given a user
`)
	assert.ErrorIs(t, pe, ErrMissingExamples)
	assert.Equal(t, 2, pe.Line)
	assert.Contains(t, pe.Message, "expects an Examples section")
}

func TestParse_OutlineWithHeaderOnlyExamples(t *testing.T) {
	pe := parseErr(t, `Feature: Login
  Scenario Outline: User logs in
    Given <user>
    Examples:
      | user |
`)
	assert.ErrorIs(t, pe, ErrMissingExamples)
	assert.Equal(t, 2, pe.Line)
}

func TestParse_ExamplesWithoutTable(t *testing.T) {
	pe := parseErr(t, `Feature: Login
  Scenario Outline: User logs in
    Given <user>
    Examples:
  Scenario: Next
    Given a
`)
	assert.ErrorIs(t, pe, ErrExamplesTable)
	assert.Equal(t, 4, pe.Line)
}

func TestParse_LanguageDirective(t *testing.T) {
	f := parse(t, `
# language: fr
@smoke
Fonctionnalité: Connexion
  Contexte:
    Soit un utilisateur
  Scénario: Se connecter
    Étant donné que la page est ouverte
    Et que le formulaire est vide
    Quand je me connecte
    Alors je vois le tableau de bord
`)
	assert.Equal(t, "fr", f.Language)
	assert.Equal(t, "Connexion", f.Name)
	require.NotNil(t, f.Background)
	require.Len(t, f.Scenarios, 1)

	steps := f.Scenarios[0].Steps
	require.Len(t, steps, 4)
	assert.Equal(t, "Étant donné que", steps[0].Keyword)
	assert.Equal(t, "la page est ouverte", steps[0].Text)
	assert.Equal(t, "Et que", steps[1].Keyword)
	assert.Equal(t, Given, steps[1].Verb)
	assert.Equal(t, When, steps[2].Verb)
	assert.Equal(t, Then, steps[3].Verb)
}

func TestParse_WithLanguage(t *testing.T) {
	f := parse(t, "Funktionalität: F\n  Szenario: S\n    Angenommen a\n", WithLanguage("de"))
	assert.Equal(t, "de", f.Language)
	assert.Equal(t, Given, f.Scenarios[0].Steps[0].Verb)
}

func TestParse_UnknownLanguage(t *testing.T) {
	pe := parseErr(t, "# language: xx\nFeature: F\n")
	assert.ErrorIs(t, pe, ErrLanguage)
	assert.Equal(t, 1, pe.Line)
}

type fixedResolver struct {
	kw *i18n.Keywords
}

func (r fixedResolver) Resolve(string) (*i18n.Keywords, error) {
	return r.kw, nil
}

func TestParse_WithResolver(t *testing.T) {
	kw := &i18n.Keywords{
		Feature:         []string{"Story"},
		Background:      []string{"Setup"},
		Scenario:        []string{"Case"},
		ScenarioOutline: []string{"Template"},
		Examples:        []string{"Data"},
		Given:           []string{"Given"},
		When:            []string{"When"},
		Then:            []string{"Then"},
		And:             []string{"And"},
		But:             []string{"But"},
	}
	f := parse(t, "Story: S\n  Case: C\n    Given a\n", WithResolver(fixedResolver{kw}))
	assert.Equal(t, "S", f.Name)
	assert.Equal(t, "C", f.Scenarios[0].Name)
}

func TestParse_NoDefaultGivenMakesContinuationStrict(t *testing.T) {
	kw := &i18n.Keywords{
		Feature:         []string{"Feature"},
		Background:      []string{"Background"},
		Scenario:        []string{"Scenario"},
		ScenarioOutline: []string{"Scenario Outline"},
		Examples:        []string{"Examples"},
		When:            []string{"When"},
		Then:            []string{"Then"},
		And:             []string{"And"},
		But:             []string{"But"},
	}
	pe := parseErr(t, "Feature: F\n  Scenario: S\n    And a\n", WithResolver(fixedResolver{kw}))
	assert.ErrorIs(t, pe, ErrContinuation)
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "login.feature")
	require.NoError(t, os.WriteFile(path, []byte("Feature: Login\n  Scenario Outline: S\n    Given a\n"), 0o644))

	_, err := ParseFile(path)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, path, pe.Source)
	assert.Contains(t, err.Error(), path+":2:")

	_, err = ParseFile(filepath.Join(t.TempDir(), "missing.feature"))
	require.Error(t, err)
	assert.NotErrorAs(t, err, &pe)
}

func TestParse_Concurrent(t *testing.T) {
	content := []byte("Feature: F\n  Scenario: S\n    Given a\n    And b\n")

	var wg sync.WaitGroup
	errs := make([]error, 16)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			f, err := Parse("f.feature", content)
			if err == nil && f.Scenarios[0].Steps[1].Verb != Given {
				err = assert.AnError
			}
			errs[i] = err
		}(i)
	}
	wg.Wait()
	for _, err := range errs {
		assert.NoError(t, err)
	}
}
