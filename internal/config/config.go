package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"subdeck/internal/fileutil"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains input and output locations.
type Paths struct {
	OutputDir      string `toml:"output_dir"`
	DictionaryPath string `toml:"dictionary_path"`
	OverridesPath  string `toml:"overrides_path"`
}

// Deck identifies the generated deck and its language pair.
type Deck struct {
	PathID            string `toml:"path_id"`
	MovieID           string `toml:"movie_id"`
	PrimaryLanguage   string `toml:"primary_language"`
	SecondaryLanguage string `toml:"secondary_language"`
}

// Phrases tunes caption merging and bilingual alignment.
type Phrases struct {
	MergeAdjacentUnits bool   `toml:"merge_adjacent_units"`
	MergeGapMs         int    `toml:"merge_gap_ms"`
	SecondaryPadMs     int    `toml:"secondary_pad_ms"`
	SecondaryMaxLines  int    `toml:"secondary_max_lines"`
	NearestFallbackMs  int    `toml:"nearest_fallback_ms"`
	IDMode             string `toml:"id_mode"`
}

// SuffixRule is one ending substitution tried by the meaning resolver.
type SuffixRule struct {
	From string `toml:"from"`
	To   string `toml:"to"`
}

// Words tunes token extraction and the primary language lexicon.
type Words struct {
	MinWordLength          int               `toml:"min_word_length"`
	MaxWordCardsPerChapter int               `toml:"max_word_cards_per_chapter"`
	MaxExamplesPerWord     int               `toml:"max_examples_per_word"`
	StopWords              []string          `toml:"stop_words"`
	ExtraStopWords         []string          `toml:"extra_stop_words"`
	Apocope                map[string]string `toml:"apocope"`
	SuffixRules            []SuffixRule      `toml:"suffix_rules"`
}

// Chapters controls chapter segmentation and the processed time window.
type Chapters struct {
	ChapterMinutes int `toml:"chapter_minutes"`
	// MaxMinutes limits processing to captions starting before the mark.
	// Zero processes the whole file.
	MaxMinutes int `toml:"max_minutes"`
}

// Parser controls SRT cleanup.
type Parser struct {
	DropCreditLines bool `toml:"drop_credit_lines"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	File   string `toml:"file"`
}

// Config encapsulates all configuration values for subdeck.
//
// Configuration sections:
//   - Paths: output directory, meaning dictionary and override file
//   - Deck: path/movie identifiers and the language pair
//   - Phrases: merge and alignment tuning
//   - Words: token extraction and lexicon extensions
//   - Chapters: chapter size and processing window
//   - Parser: SRT cleanup switches
//   - Logging: log format, level and optional file
type Config struct {
	Paths    Paths    `toml:"paths"`
	Deck     Deck     `toml:"deck"`
	Phrases  Phrases  `toml:"phrases"`
	Words    Words    `toml:"words"`
	Chapters Chapters `toml:"chapters"`
	Parser   Parser   `toml:"parser"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned
// config has environment fallbacks applied and path fields expanded.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file).DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config %s: %w", resolvedPath, err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(projectConfigName)
	if err != nil {
		return "", false, err
	}

	for _, candidate := range []string{defaultPath, projectPath} {
		if fileutil.Exists(candidate) {
			return candidate, true, nil
		}
	}

	return defaultPath, false, nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	absolute, err := filepath.Abs(filepath.Clean(pathValue))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", pathValue, err)
	}
	return absolute, nil
}

// ExpandPath applies the same tilde and absolute-path rules used for config
// fields to a value supplied elsewhere, such as a CLI flag.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// Encode renders cfg as TOML.
func Encode(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	encoder := toml.NewEncoder(&buf).SetIndentTables(true)
	if err := encoder.Encode(cfg); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}
