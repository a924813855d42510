// Package language normalizes language codes and carries the per-language
// lexicon used for tokenization and meaning lookup.
//
// A Profile bundles the stop words, the apocope table, the suffix
// substitution rules and the token pattern for one language. Italian ships
// with a curated profile; other languages fall back to a generic profile
// with no stop words and no morphology. Callers can override any table
// through configuration, so adding a language pair needs no code change.
package language
