package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeDeck()
	c.normalizePhrases()
	c.normalizeWords()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if strings.TrimSpace(c.Paths.DictionaryPath) == "" {
		if value, ok := os.LookupEnv(EnvDictionary); ok {
			c.Paths.DictionaryPath = strings.TrimSpace(value)
		}
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		if value, ok := os.LookupEnv(EnvOutputDir); ok {
			c.Paths.OutputDir = strings.TrimSpace(value)
		}
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}

	var err error
	if c.Paths.OutputDir, err = expandPath(strings.TrimSpace(c.Paths.OutputDir)); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if c.Paths.DictionaryPath, err = expandPath(strings.TrimSpace(c.Paths.DictionaryPath)); err != nil {
		return fmt.Errorf("paths.dictionary_path: %w", err)
	}
	if c.Paths.OverridesPath, err = expandPath(strings.TrimSpace(c.Paths.OverridesPath)); err != nil {
		return fmt.Errorf("paths.overrides_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeDeck() {
	c.Deck.PathID = strings.TrimSpace(c.Deck.PathID)
	if c.Deck.PathID == "" {
		c.Deck.PathID = defaultPathID
	}
	c.Deck.MovieID = strings.TrimSpace(c.Deck.MovieID)
	c.Deck.PrimaryLanguage = strings.ToLower(strings.TrimSpace(c.Deck.PrimaryLanguage))
	if c.Deck.PrimaryLanguage == "" {
		c.Deck.PrimaryLanguage = defaultPrimaryLanguage
	}
	c.Deck.SecondaryLanguage = strings.ToLower(strings.TrimSpace(c.Deck.SecondaryLanguage))
	if c.Deck.SecondaryLanguage == "" {
		c.Deck.SecondaryLanguage = defaultSecondaryLanguage
	}
}

func (c *Config) normalizePhrases() {
	c.Phrases.IDMode = strings.ToLower(strings.TrimSpace(c.Phrases.IDMode))
	if c.Phrases.IDMode == "" {
		c.Phrases.IDMode = defaultIDMode
	}
}

func (c *Config) normalizeWords() {
	c.Words.StopWords = cleanList(c.Words.StopWords)
	c.Words.ExtraStopWords = cleanList(c.Words.ExtraStopWords)
	for i, rule := range c.Words.SuffixRules {
		c.Words.SuffixRules[i] = SuffixRule{
			From: strings.ToLower(strings.TrimSpace(rule.From)),
			To:   strings.ToLower(strings.TrimSpace(rule.To)),
		}
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		if value, ok := os.LookupEnv(EnvLogLevel); ok {
			c.Logging.Level = strings.ToLower(strings.TrimSpace(value))
		}
	}
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.File = strings.TrimSpace(c.Logging.File)
}

// cleanList lowercases, trims and dedupes words, keeping first-seen order.
func cleanList(values []string) []string {
	if len(values) == 0 {
		return values
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
