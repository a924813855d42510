package deck

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"subdeck/internal/config"
	"subdeck/internal/language"
	"subdeck/internal/phrase"
	"subdeck/internal/words"
)

// ErrInvalidOptions marks a configuration that cannot produce a deck.
var ErrInvalidOptions = errors.New("invalid deck options")

// Options is the full parameter set of a generation run.
type Options struct {
	PathID            string
	MovieID           string
	PrimaryLanguage   string
	SecondaryLanguage string

	MergeAdjacentUnits bool
	MergeGap           time.Duration
	SecondaryPad       time.Duration
	SecondaryMaxLines  int
	NearestFallback    time.Duration
	IDMode             phrase.IDMode

	ChapterMinutes int
	MaxMinutes     int

	MinWordLength          int
	MaxWordCardsPerChapter int
	MaxExamplesPerWord     int
	// StopWords replaces the language's built-in list when non-empty.
	StopWords      []string
	ExtraStopWords []string
	Apocope        map[string]string
	SuffixRules    []language.SuffixRule

	DropCreditLines bool
}

// DefaultOptions returns the options implied by the default configuration.
func DefaultOptions() Options {
	cfg := config.Default()
	return OptionsFromConfig(&cfg)
}

// OptionsFromConfig maps a loaded configuration onto run options.
func OptionsFromConfig(cfg *config.Config) Options {
	rules := make([]language.SuffixRule, 0, len(cfg.Words.SuffixRules))
	for _, r := range cfg.Words.SuffixRules {
		rules = append(rules, language.SuffixRule{From: r.From, To: r.To})
	}
	return Options{
		PathID:                 cfg.Deck.PathID,
		MovieID:                cfg.Deck.MovieID,
		PrimaryLanguage:        cfg.Deck.PrimaryLanguage,
		SecondaryLanguage:      cfg.Deck.SecondaryLanguage,
		MergeAdjacentUnits:     cfg.Phrases.MergeAdjacentUnits,
		MergeGap:               time.Duration(cfg.Phrases.MergeGapMs) * time.Millisecond,
		SecondaryPad:           time.Duration(cfg.Phrases.SecondaryPadMs) * time.Millisecond,
		SecondaryMaxLines:      cfg.Phrases.SecondaryMaxLines,
		NearestFallback:        time.Duration(cfg.Phrases.NearestFallbackMs) * time.Millisecond,
		IDMode:                 phrase.IDMode(cfg.Phrases.IDMode),
		ChapterMinutes:         cfg.Chapters.ChapterMinutes,
		MaxMinutes:             cfg.Chapters.MaxMinutes,
		MinWordLength:          cfg.Words.MinWordLength,
		MaxWordCardsPerChapter: cfg.Words.MaxWordCardsPerChapter,
		MaxExamplesPerWord:     cfg.Words.MaxExamplesPerWord,
		StopWords:              cfg.Words.StopWords,
		ExtraStopWords:         cfg.Words.ExtraStopWords,
		Apocope:                cfg.Words.Apocope,
		SuffixRules:            rules,
		DropCreditLines:        cfg.Parser.DropCreditLines,
	}
}

// Validate reports the first problem that would make generation ill-defined.
// Every returned error wraps ErrInvalidOptions.
func (o Options) Validate() error {
	var problem string
	switch {
	case o.ChapterMinutes <= 0:
		problem = fmt.Sprintf("chapter minutes must be positive, got %d", o.ChapterMinutes)
	case o.MaxMinutes < 0:
		problem = fmt.Sprintf("max minutes must not be negative, got %d", o.MaxMinutes)
	case o.MergeGap < 0:
		problem = "merge gap must not be negative"
	case o.SecondaryPad < 0:
		problem = "secondary padding must not be negative"
	case o.NearestFallback < 0:
		problem = "nearest fallback must not be negative"
	case o.SecondaryMaxLines < 0:
		problem = "secondary max lines must not be negative"
	case o.MinWordLength < 1:
		problem = fmt.Sprintf("min word length must be at least 1, got %d", o.MinWordLength)
	case o.MaxWordCardsPerChapter < 1:
		problem = fmt.Sprintf("max word cards per chapter must be at least 1, got %d", o.MaxWordCardsPerChapter)
	case o.MaxExamplesPerWord < 0:
		problem = "max examples per word must not be negative"
	case !o.IDMode.Valid():
		problem = fmt.Sprintf("unknown phrase id mode %q", o.IDMode)
	case strings.TrimSpace(o.SecondaryLanguage) == "":
		problem = "secondary language must be set"
	default:
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalidOptions, problem)
}

// Profile returns the primary language profile with configured stop-word and
// morphology extensions applied.
func (o Options) Profile() language.Profile {
	return language.ForCode(o.PrimaryLanguage).
		WithStopWords(o.StopWords, o.ExtraStopWords).
		WithMorphology(o.Apocope, o.SuffixRules)
}

func (o Options) chapterSeconds() float64 {
	return float64(o.ChapterMinutes) * 60
}

func (o Options) phraseOptions() phrase.Options {
	return phrase.Options{
		MergeAdjacent:     o.MergeAdjacentUnits,
		MergeGap:          o.MergeGap,
		SecondaryPad:      o.SecondaryPad,
		SecondaryMaxLines: o.SecondaryMaxLines,
		NearestFallback:   o.NearestFallback,
		ChapterSeconds:    o.chapterSeconds(),
		IDMode:            o.IDMode,
	}
}

func (o Options) wordOptions(profile language.Profile) words.Options {
	return words.Options{
		Profile:       profile,
		MinLength:     o.MinWordLength,
		MaxPerChapter: o.MaxWordCardsPerChapter,
		MaxExamples:   o.MaxExamplesPerWord,
	}
}
