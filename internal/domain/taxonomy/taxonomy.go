package taxonomy

import (
	"fmt"
	"regexp"
	"strings"
)

// Entry maps one canonical technology name to the lower-case surface forms
// that resolve to it.
type Entry struct {
	Canonical  string
	Variations []string
}

type variationPattern struct {
	variation string
	canonical string
	re        *regexp.Regexp
}

// Taxonomy is an immutable variation -> canonical index with patterns
// compiled once at construction. Safe for concurrent use.
type Taxonomy struct {
	entries  []Entry
	patterns []variationPattern
}

// New builds a taxonomy from entries in declaration order. When two entries
// claim the same variation the later entry wins; the walk over a slice keeps
// that deterministic.
func New(entries []Entry) (*Taxonomy, error) {
	t := &Taxonomy{
		entries:  entries,
		patterns: make([]variationPattern, 0),
	}

	byVariation := make(map[string]int)
	for _, e := range entries {
		canonical := strings.TrimSpace(e.Canonical)
		if canonical == "" {
			return nil, fmt.Errorf("taxonomy: entry with empty canonical name")
		}
		if len(e.Variations) == 0 {
			return nil, fmt.Errorf("taxonomy: %s has no variations", canonical)
		}
		for _, v := range e.Variations {
			variation := strings.ToLower(strings.TrimSpace(v))
			if variation == "" {
				return nil, fmt.Errorf("taxonomy: %s has an empty variation", canonical)
			}
			if idx, ok := byVariation[variation]; ok {
				t.patterns[idx].canonical = canonical
				continue
			}
			re, err := compileVariation(variation)
			if err != nil {
				return nil, fmt.Errorf("taxonomy: %s variation %q: %w", canonical, variation, err)
			}
			byVariation[variation] = len(t.patterns)
			t.patterns = append(t.patterns, variationPattern{
				variation: variation,
				canonical: canonical,
				re:        re,
			})
		}
	}

	return t, nil
}

// compileVariation builds a whole-word pattern. QuoteMeta keeps variations
// like "c++" and ".net" literal; the surrounding classes reject matches
// inside a larger alphanumeric token.
func compileVariation(variation string) (*regexp.Regexp, error) {
	pat := `(?i)(^|[^a-z0-9])` + regexp.QuoteMeta(variation) + `([^a-z0-9]|$)`
	return regexp.Compile(pat)
}

// Extract returns the canonical technologies whose variations occur as whole
// words in text, each at most once, in taxonomy declaration order. Empty text
// yields an empty slice; Extract never fails.
func (t *Taxonomy) Extract(text string) []string {
	out := make([]string, 0)
	if t == nil || strings.TrimSpace(text) == "" {
		return out
	}

	lower := strings.ToLower(text)
	seen := make(map[string]struct{})
	for _, p := range t.patterns {
		if _, ok := seen[p.canonical]; ok {
			continue
		}
		if p.re.MatchString(lower) {
			seen[p.canonical] = struct{}{}
			out = append(out, p.canonical)
		}
	}
	return out
}

// Canonical resolves a single variation; the second result reports whether
// the variation is known.
func (t *Taxonomy) Canonical(variation string) (string, bool) {
	if t == nil {
		return "", false
	}
	v := strings.ToLower(strings.TrimSpace(variation))
	if v == "" {
		return "", false
	}
	for _, p := range t.patterns {
		if p.variation == v {
			return p.canonical, true
		}
	}
	return "", false
}

// Entries exposes a copy of the backing table, mainly for seeding and tests.
func (t *Taxonomy) Entries() []Entry {
	if t == nil {
		return nil
	}
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

func (t *Taxonomy) VariationCount() int {
	if t == nil {
		return 0
	}
	return len(t.patterns)
}
