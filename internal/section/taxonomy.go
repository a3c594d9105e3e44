package section

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Scope is one of the brief's top-level parts.
type Scope string

const (
	ScopeOverview Scope = "overview"
	ScopeAnalysis Scope = "analysis"
)

// Key identifies one entry of the locked table of contents. The set of valid
// keys is fixed when the taxonomy is built and never grows during a run.
type Key struct {
	Scope Scope
	Title string
}

// Rule maps a header pattern to the section it opens. Rules are tested in
// declared order; the first match wins.
type Rule struct {
	Pattern *regexp.Regexp
	Key     Key
}

// Taxonomy is the ordered rule table plus the canonical table of contents of
// both scopes. It is configuration, not logic: variants of the brief format
// differ only here and in the size limits.
type Taxonomy struct {
	Rules    []Rule
	Overview []string
	Analysis []string
	Fallback Key
}

// Keys returns every section key in canonical order: the overview table of
// contents first, then the analysis one.
func (t *Taxonomy) Keys() []Key {
	keys := make([]Key, 0, len(t.Overview)+len(t.Analysis))
	for _, title := range t.Overview {
		keys = append(keys, Key{Scope: ScopeOverview, Title: title})
	}
	for _, title := range t.Analysis {
		keys = append(keys, Key{Scope: ScopeAnalysis, Title: title})
	}
	return keys
}

func (t *Taxonomy) contains(k Key) bool {
	titles := t.Overview
	if k.Scope == ScopeAnalysis {
		titles = t.Analysis
	}
	for _, title := range titles {
		if title == k.Title {
			return true
		}
	}
	return false
}

func (t *Taxonomy) validate() error {
	for i, r := range t.Rules {
		if !t.contains(r.Key) {
			return fmt.Errorf("rule %d: %s/%q is not in the table of contents", i, r.Key.Scope, r.Key.Title)
		}
	}
	if !t.contains(t.Fallback) {
		return fmt.Errorf("fallback %s/%q is not in the table of contents", t.Fallback.Scope, t.Fallback.Title)
	}
	return nil
}

// Default returns the built-in company-brief taxonomy.
func Default() *Taxonomy {
	mustRule := func(pattern string, scope Scope, title string) Rule {
		return Rule{Pattern: regexp.MustCompile(pattern), Key: Key{Scope: scope, Title: title}}
	}
	return &Taxonomy{
		Rules: []Rule{
			mustRule(`(?i)^#{0,3}\s*company snapshot\b`, ScopeOverview, "Company Snapshot"),
			mustRule(`(?i)^#{0,3}\s*business summary\b`, ScopeOverview, "Business Summary"),
			mustRule(`(?i)^#{0,3}\s*key metrics\b`, ScopeOverview, "Key Metrics"),
			mustRule(`(?i)^#{0,3}\s*data gravity\b`, ScopeAnalysis, "Data Gravity Analysis"),
			mustRule(`(?i)^#{0,3}\s*workflow gravity\b`, ScopeAnalysis, "Workflow Gravity Analysis"),
			mustRule(`(?i)^#{0,3}\s*network effects?\b`, ScopeAnalysis, "Network Effects"),
			mustRule(`(?i)^#{0,3}\s*switching costs?\b`, ScopeAnalysis, "Switching Costs"),
			mustRule(`(?i)^#{0,3}\s*(?:final\s+)?scores?\b`, ScopeAnalysis, "Final Scores"),
		},
		Overview: []string{"Company Snapshot", "Business Summary", "Key Metrics"},
		Analysis: []string{
			"Data Gravity Analysis",
			"Workflow Gravity Analysis",
			"Network Effects",
			"Switching Costs",
			"Final Scores",
		},
		Fallback: Key{Scope: ScopeOverview, Title: "Business Summary"},
	}
}

// taxonomyFile is the YAML shape of an external taxonomy.
type taxonomyFile struct {
	Overview []string `yaml:"overview"`
	Analysis []string `yaml:"analysis"`
	Fallback struct {
		Scope string `yaml:"scope"`
		Title string `yaml:"title"`
	} `yaml:"fallback"`
	Rules []struct {
		Match string `yaml:"match"`
		Scope string `yaml:"scope"`
		Title string `yaml:"title"`
	} `yaml:"rules"`
}

// Load reads a taxonomy from a YAML file, compiling its rule patterns and
// checking that every rule and the fallback point into the table of contents.
func Load(path string) (*Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read taxonomy: %w", err)
	}
	var f taxonomyFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse taxonomy: %w", err)
	}

	t := &Taxonomy{
		Overview: f.Overview,
		Analysis: f.Analysis,
		Fallback: Key{Scope: Scope(f.Fallback.Scope), Title: f.Fallback.Title},
	}
	for i, r := range f.Rules {
		re, err := regexp.Compile(r.Match)
		if err != nil {
			return nil, fmt.Errorf("rule %d: compile %q: %w", i, r.Match, err)
		}
		t.Rules = append(t.Rules, Rule{Pattern: re, Key: Key{Scope: Scope(r.Scope), Title: r.Title}})
	}
	if err := t.validate(); err != nil {
		return nil, fmt.Errorf("taxonomy %s: %w", path, err)
	}
	return t, nil
}
