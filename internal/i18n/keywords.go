// Package i18n resolves a language tag to the localized Gherkin keywords.
package i18n

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

// DefaultLanguage is used when a document has no "# language:" directive.
const DefaultLanguage = "en"

// ErrUnknownLanguage is returned for a language tag missing from the dictionary.
var ErrUnknownLanguage = errors.New("unknown language")

//go:embed languages.yaml
var languagesYAML []byte

// Keywords holds the synonyms of every keyword class for one language.
// Lists are ordered by priority. A Keywords value is never modified after
// it has been resolved and may be shared between parses.
type Keywords struct {
	Language        string   `yaml:"-"`
	Name            string   `yaml:"name"`
	Feature         []string `yaml:"feature"`
	Background      []string `yaml:"background"`
	Scenario        []string `yaml:"scenario"`
	ScenarioOutline []string `yaml:"scenario_outline"`
	Examples        []string `yaml:"examples"`
	Given           []string `yaml:"given"`
	When            []string `yaml:"when"`
	Then            []string `yaml:"then"`
	And             []string `yaml:"and"`
	But             []string `yaml:"but"`
}

// DefaultGiven returns the lowest-priority Given synonym, or "" when the
// language has none.
func (k *Keywords) DefaultGiven() string {
	if len(k.Given) == 0 {
		return ""
	}
	return k.Given[len(k.Given)-1]
}

func (k *Keywords) validate() error {
	classes := []struct {
		name  string
		words []string
	}{
		{"feature", k.Feature},
		{"background", k.Background},
		{"scenario", k.Scenario},
		{"scenario_outline", k.ScenarioOutline},
		{"examples", k.Examples},
		{"given", k.Given},
		{"when", k.When},
		{"then", k.Then},
		{"and", k.And},
		{"but", k.But},
	}
	for _, c := range classes {
		if len(c.words) == 0 {
			return fmt.Errorf("language %q: no %s keywords", k.Language, c.name)
		}
	}
	return nil
}

// Resolver returns the keyword set for a language tag.
type Resolver interface {
	Resolve(lang string) (*Keywords, error)
}

// Dictionary is a Resolver over a fixed set of languages.
type Dictionary struct {
	languages map[string]*Keywords
}

// NewDictionary decodes a YAML document mapping language tags to keyword lists.
func NewDictionary(data []byte) (*Dictionary, error) {
	raw := map[string]*Keywords{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding keyword dictionary: %w", err)
	}
	for lang, kw := range raw {
		if kw == nil {
			return nil, fmt.Errorf("language %q: empty entry", lang)
		}
		kw.Language = lang
		if err := kw.validate(); err != nil {
			return nil, err
		}
	}
	return &Dictionary{languages: raw}, nil
}

// Resolve implements Resolver.
func (d *Dictionary) Resolve(lang string) (*Keywords, error) {
	kw, ok := d.languages[lang]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLanguage, lang)
	}
	return kw, nil
}

// Languages returns the known language tags, sorted.
func (d *Dictionary) Languages() []string {
	langs := make([]string, 0, len(d.languages))
	for lang := range d.languages {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

var (
	defaultOnce sync.Once
	defaultDict *Dictionary
)

// Default returns the built-in dictionary. It is loaded once and is safe
// for concurrent use.
func Default() *Dictionary {
	defaultOnce.Do(func() {
		d, err := NewDictionary(languagesYAML)
		if err != nil {
			panic(fmt.Sprintf("i18n: built-in dictionary: %v", err))
		}
		defaultDict = d
	})
	return defaultDict
}
