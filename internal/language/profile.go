package language

import (
	"regexp"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	xlanguage "golang.org/x/text/language"
)

// SuffixRule rewrites a trailing From into To when deriving lemma candidates.
type SuffixRule struct {
	From string `toml:"from" json:"from"`
	To   string `toml:"to" json:"to"`
}

// Profile is the lexicon for one language.
type Profile struct {
	Code         string
	StopWords    map[string]struct{}
	Apocope      map[string]string
	SuffixRules  []SuffixRule
	TokenPattern *regexp.Regexp

	tag xlanguage.Tag
}

var genericTokenPattern = regexp.MustCompile(`[\p{L}'’]+`)

// ForCode returns the built-in profile for code, or a generic profile for
// languages without curated tables.
func ForCode(code string) Profile {
	iso := ToISO2(code)
	if iso == "it" {
		return italianProfile()
	}
	tag, err := xlanguage.Parse(iso)
	if err != nil || iso == "" {
		tag = xlanguage.Und
	}
	return Profile{
		Code:         iso,
		StopWords:    map[string]struct{}{},
		Apocope:      map[string]string{},
		TokenPattern: genericTokenPattern,
		tag:          tag,
	}
}

// Lower lowercases value with the profile's locale rules.
func (p Profile) Lower(value string) string {
	// Casers carry state, so each call gets its own.
	return cases.Lower(p.tag).String(value)
}

// IsStopWord reports whether token is in the stop-word set.
func (p Profile) IsStopWord(token string) bool {
	_, ok := p.StopWords[token]
	return ok
}

// Expand returns the full form for an apocopated token, or the token itself.
func (p Profile) Expand(token string) (string, bool) {
	full, ok := p.Apocope[token]
	if !ok || full == "" {
		return token, false
	}
	return full, true
}

// Variants derives lemma candidates for token by suffix substitution, in rule
// order, without duplicates and without token itself.
func (p Profile) Variants(token string) []string {
	var out []string
	for _, rule := range p.SuffixRules {
		if rule.From == "" || !strings.HasSuffix(token, rule.From) {
			continue
		}
		stem := strings.TrimSuffix(token, rule.From)
		if len([]rune(stem)) < 2 {
			continue
		}
		candidate := stem + rule.To
		if candidate == token || slices.Contains(out, candidate) {
			continue
		}
		out = append(out, candidate)
	}
	return out
}

// WithStopWords returns a copy of p whose stop words are replaced by replace
// (when non-empty) and extended by extra. Words are lowercased.
func (p Profile) WithStopWords(replace, extra []string) Profile {
	set := make(map[string]struct{}, len(p.StopWords)+len(extra))
	if len(replace) > 0 {
		for _, w := range replace {
			addWord(set, p.Lower(w))
		}
	} else {
		for w := range p.StopWords {
			set[w] = struct{}{}
		}
	}
	for _, w := range extra {
		addWord(set, p.Lower(w))
	}
	p.StopWords = set
	return p
}

// WithMorphology returns a copy of p with extra apocope entries merged in and,
// when rules is non-empty, the suffix rules replaced.
func (p Profile) WithMorphology(apocope map[string]string, rules []SuffixRule) Profile {
	merged := make(map[string]string, len(p.Apocope)+len(apocope))
	for k, v := range p.Apocope {
		merged[k] = v
	}
	for k, v := range apocope {
		k = p.Lower(strings.TrimSpace(k))
		if k == "" {
			continue
		}
		merged[k] = p.Lower(strings.TrimSpace(v))
	}
	p.Apocope = merged
	if len(rules) > 0 {
		p.SuffixRules = slices.Clone(rules)
	}
	return p
}

func addWord(set map[string]struct{}, w string) {
	w = strings.TrimSpace(strings.ReplaceAll(w, "’", "'"))
	if w != "" {
		set[w] = struct{}{}
	}
}
