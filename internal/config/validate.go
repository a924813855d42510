package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateDeck(); err != nil {
		return err
	}
	if err := c.validatePhrases(); err != nil {
		return err
	}
	if err := c.validateWords(); err != nil {
		return err
	}
	if err := c.validateChapters(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateDeck() error {
	if strings.TrimSpace(c.Deck.PrimaryLanguage) == "" {
		return errors.New("deck.primary_language must be set")
	}
	if strings.TrimSpace(c.Deck.SecondaryLanguage) == "" {
		return errors.New("deck.secondary_language must be set")
	}
	return nil
}

func (c *Config) validatePhrases() error {
	if c.Phrases.MergeGapMs < 0 {
		return errors.New("phrases.merge_gap_ms must be zero or positive")
	}
	if c.Phrases.SecondaryPadMs < 0 {
		return errors.New("phrases.secondary_pad_ms must be zero or positive")
	}
	if c.Phrases.SecondaryMaxLines < 0 {
		return errors.New("phrases.secondary_max_lines must be zero (unlimited) or positive")
	}
	if c.Phrases.NearestFallbackMs < 0 {
		return errors.New("phrases.nearest_fallback_ms must be zero (disabled) or positive")
	}
	switch c.Phrases.IDMode {
	case "sequence", "content":
	default:
		return fmt.Errorf("phrases.id_mode: unsupported value %q (want sequence or content)", c.Phrases.IDMode)
	}
	return nil
}

func (c *Config) validateWords() error {
	if c.Words.MinWordLength < 1 {
		return errors.New("words.min_word_length must be at least 1")
	}
	if c.Words.MaxWordCardsPerChapter < 1 {
		return errors.New("words.max_word_cards_per_chapter must be at least 1")
	}
	if c.Words.MaxExamplesPerWord < 0 {
		return errors.New("words.max_examples_per_word must be zero (unlimited) or positive")
	}
	for i, rule := range c.Words.SuffixRules {
		if rule.From == "" {
			return fmt.Errorf("words.suffix_rules[%d].from must be set", i)
		}
	}
	return nil
}

func (c *Config) validateChapters() error {
	if c.Chapters.ChapterMinutes <= 0 {
		return errors.New("chapters.chapter_minutes must be positive")
	}
	if c.Chapters.MaxMinutes < 0 {
		return errors.New("chapters.max_minutes must be zero (whole file) or positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (want console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
