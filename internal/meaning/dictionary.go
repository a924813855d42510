package meaning

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// Shape identifies the seed file layout a dictionary was decoded from.
type Shape string

const (
	ShapeEmpty  Shape = "empty"
	ShapeLegacy Shape = "legacy"
	ShapeLemma  Shape = "lemma+alias"
)

// Dictionary maps lemmas to meanings and surface forms to lemmas.
type Dictionary struct {
	Lemmas  map[string]string
	Aliases map[string]string
	Shape   Shape
}

// Empty returns a dictionary with no entries.
func Empty() Dictionary {
	return Dictionary{Lemmas: map[string]string{}, Aliases: map[string]string{}, Shape: ShapeEmpty}
}

// Len returns the number of lemmas.
func (d Dictionary) Len() int {
	return len(d.Lemmas)
}

type lemmaFile struct {
	Lemmas  map[string]json.RawMessage `json:"lemmas"`
	Aliases map[string]json.RawMessage `json:"aliases"`
}

// Decode parses a seed dictionary in either supported shape. Entries whose
// value is not a string are ignored.
func Decode(data []byte) (Dictionary, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return Empty(), nil
	}
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return Dictionary{}, fmt.Errorf("decode dictionary: %w", err)
	}

	if isObject(top["lemmas"]) {
		var file lemmaFile
		if err := json.Unmarshal(data, &file); err != nil {
			return Dictionary{}, fmt.Errorf("decode dictionary: %w", err)
		}
		return Dictionary{
			Lemmas:  stringEntries(file.Lemmas),
			Aliases: aliasEntries(file.Aliases),
			Shape:   ShapeLemma,
		}, nil
	}
	return Dictionary{
		Lemmas:  stringEntries(top),
		Aliases: map[string]string{},
		Shape:   ShapeLegacy,
	}, nil
}

// Load reads and decodes a seed dictionary.
func Load(r io.Reader) (Dictionary, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Dictionary{}, fmt.Errorf("read dictionary: %w", err)
	}
	return Decode(data)
}

// LoadFile reads the dictionary at path. An empty path yields an empty
// dictionary; a missing file returns an error wrapping fs.ErrNotExist.
func LoadFile(path string) (Dictionary, error) {
	if strings.TrimSpace(path) == "" {
		return Empty(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Dictionary{}, fmt.Errorf("read dictionary %s: %w", path, err)
	}
	dict, err := Decode(data)
	if err != nil {
		return Dictionary{}, fmt.Errorf("%s: %w", path, err)
	}
	return dict, nil
}

func isObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

func stringEntries(raw map[string]json.RawMessage) map[string]string {
	out := make(map[string]string, len(raw))
	for key, value := range raw {
		var s string
		if err := json.Unmarshal(value, &s); err != nil {
			continue
		}
		key = normalizeKey(key)
		s = strings.TrimSpace(s)
		if key == "" || s == "" {
			continue
		}
		out[key] = s
	}
	return out
}

// Alias targets are lemma keys, so they get the same normalization.
func aliasEntries(raw map[string]json.RawMessage) map[string]string {
	out := stringEntries(raw)
	for key, lemma := range out {
		out[key] = normalizeKey(lemma)
	}
	return out
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(strings.ReplaceAll(key, "’", "'")))
}
