package deck

import (
	"bytes"
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"

	"subdeck/internal/fileutil"
	"subdeck/internal/language"
	"subdeck/internal/phrase"
	"subdeck/internal/words"
)

// ErrDeckLocked is returned when another run holds the output directory.
var ErrDeckLocked = errors.New("deck directory is locked by another run")

// The lock sits beside the deck directory so the served directory only ever
// holds deck files.
const lockSuffix = ".lock"

// PhraseFile is the on-disk layout of a phrase deck.
type PhraseFile struct {
	Meta  Meta          `json:"meta"`
	Cards []phrase.Card `json:"cards"`
}

// WordFile is the on-disk layout of a word deck.
type WordFile struct {
	Meta  Meta         `json:"meta"`
	Cards []words.Card `json:"cards"`
}

// LanguageCode canonicalizes a configured language to the code used in deck
// file names: "german", "deu" and "de-DE" all become "de". Unrecognized
// values pass through lowercased.
func LanguageCode(lang string) string {
	return cmp.Or(language.ToISO2(lang), strings.ToLower(strings.TrimSpace(lang)))
}

// FileNames returns the phrase and word deck file names for a secondary
// language.
func FileNames(lang string) (string, string) {
	code := LanguageCode(lang)
	return "phrases.base." + code + ".json", "words.base." + code + ".json"
}

func lockPath(dir string) string {
	return filepath.Clean(dir) + lockSuffix
}

// Paths returns the full deck file paths inside dir.
func Paths(dir, lang string) (string, string) {
	phrases, wordsName := FileNames(lang)
	return filepath.Join(dir, phrases), filepath.Join(dir, wordsName)
}

// Write stores both decks of b in dir and returns the written paths.
func Write(dir string, b *Bundle) ([]string, error) {
	if b == nil {
		return nil, errors.New("write deck: nil bundle")
	}
	pf := PhraseFile{Meta: b.Meta, Cards: nonNil(b.Phrases)}
	wf := WordFile{Meta: b.Meta, Cards: nonNil(b.Words)}
	return WriteFiles(dir, b.Meta.Languages.Secondary, &pf, &wf)
}

// WriteFiles stores the given deck files in dir under the directory lock.
// A nil file is left untouched on disk.
func WriteFiles(dir, lang string, pf *PhraseFile, wf *WordFile) ([]string, error) {
	if LanguageCode(lang) == "" {
		return nil, errors.New("write deck: secondary language is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create deck directory: %w", err)
	}

	lock := flock.New(lockPath(dir))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire deck lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrDeckLocked, dir)
	}
	defer func() { _ = lock.Unlock() }()

	phrasePath, wordPath := Paths(dir, lang)
	var written []string
	if pf != nil {
		if err := writeJSON(phrasePath, pf); err != nil {
			return written, err
		}
		written = append(written, phrasePath)
	}
	if wf != nil {
		if err := writeJSON(wordPath, wf); err != nil {
			return written, err
		}
		written = append(written, wordPath)
	}
	return written, nil
}

// ReadPhraseFile loads a phrase deck.
func ReadPhraseFile(path string) (PhraseFile, error) {
	var pf PhraseFile
	if err := readJSON(path, &pf); err != nil {
		return PhraseFile{}, err
	}
	return pf, nil
}

// ReadWordFile loads a word deck.
func ReadWordFile(path string) (WordFile, error) {
	var wf WordFile
	if err := readJSON(path, &wf); err != nil {
		return WordFile{}, err
	}
	return wf, nil
}

// Encode renders v the way deck files are stored: two-space indent,
// unescaped non-ASCII and HTML characters, trailing newline.
func Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeJSON(path string, v any) error {
	data, err := Encode(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read deck: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return nil
}

// nonNil keeps empty decks encoded as [] rather than null.
func nonNil[T any](cards []T) []T {
	if cards == nil {
		return []T{}
	}
	return cards
}
