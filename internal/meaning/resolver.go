package meaning

import (
	"strings"

	"subdeck/internal/language"
)

// Step names the lookup stage that produced a match.
type Step string

const (
	StepNone      Step = ""
	StepExact     Step = "exact"
	StepApocope   Step = "apocope"
	StepAlias     Step = "alias"
	StepHeuristic Step = "heuristic"
)

// Match is the outcome of a lookup. Lemma is the dictionary key that held
// the meaning.
type Match struct {
	Meaning string `json:"meaning"`
	Lemma   string `json:"lemma"`
	Step    Step   `json:"step"`
}

// Found reports whether the lookup produced a meaning.
func (m Match) Found() bool {
	return m.Meaning != ""
}

// Resolver looks tokens up in a dictionary using a language profile's
// apocope table and suffix rules. It is safe for concurrent use.
type Resolver struct {
	dict    Dictionary
	profile language.Profile
}

// NewResolver returns a resolver over dict.
func NewResolver(dict Dictionary, profile language.Profile) *Resolver {
	if dict.Lemmas == nil {
		dict.Lemmas = map[string]string{}
	}
	if dict.Aliases == nil {
		dict.Aliases = map[string]string{}
	}
	return &Resolver{dict: dict, profile: profile}
}

// Resolve returns the meaning for token, or "" when none is known.
func (r *Resolver) Resolve(token string) string {
	return r.Lookup(token).Meaning
}

// Lookup runs the resolution chain and stops at the first hit:
// exact lemma, apocope expansion, alias, then derived suffix variants.
func (r *Resolver) Lookup(token string) Match {
	surface := normalizeKey(r.profile.Lower(token))
	if surface == "" {
		return Match{}
	}

	if m, ok := r.lemma(surface, StepExact); ok {
		return m
	}

	expanded, changed := r.profile.Expand(surface)
	if changed {
		if m, ok := r.lemma(expanded, StepApocope); ok {
			return m
		}
	}

	forms := []string{surface}
	if changed {
		forms = append(forms, expanded)
	}
	for _, form := range forms {
		if m, ok := r.alias(form, StepAlias); ok {
			return m
		}
	}

	for _, form := range forms {
		for _, candidate := range r.profile.Variants(form) {
			if m, ok := r.lemma(candidate, StepHeuristic); ok {
				return m
			}
			if m, ok := r.alias(candidate, StepHeuristic); ok {
				return m
			}
		}
	}
	return Match{}
}

func (r *Resolver) lemma(key string, step Step) (Match, bool) {
	meaning := strings.TrimSpace(r.dict.Lemmas[key])
	if meaning == "" {
		return Match{}, false
	}
	return Match{Meaning: meaning, Lemma: key, Step: step}, true
}

func (r *Resolver) alias(surface string, step Step) (Match, bool) {
	target, ok := r.dict.Aliases[surface]
	if !ok || target == "" {
		return Match{}, false
	}
	return r.lemma(target, step)
}
