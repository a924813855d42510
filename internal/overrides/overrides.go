// Package overrides applies user corrections exported from the deck viewer
// back onto generated base decks.
//
// An export is keyed by learning path, then movie, then card id. Cards are
// addressed by id only, so an override whose card no longer exists after a
// regeneration is reported as an orphan instead of being dropped silently.
package overrides

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"

	"subdeck/internal/phrase"
	"subdeck/internal/words"
)

// Patch replaces individual card fields. Nil fields are left unchanged.
type Patch struct {
	Secondary *string `json:"de,omitempty"`
	Meaning   *string `json:"deMeaning,omitempty"`
}

// File is a decoded override export: path id -> movie id -> card id -> patch.
type File map[string]map[string]map[string]Patch

// Load decodes an override export.
func Load(r io.Reader) (File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read overrides: %w", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return File{}, nil
	}
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode overrides: %w", err)
	}
	if f == nil {
		f = File{}
	}
	return f, nil
}

// LoadFile decodes the override export at path.
func LoadFile(path string) (File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open overrides: %w", err)
	}
	defer fh.Close()
	return Load(fh)
}

// For returns the patches for one movie of one learning path.
func (f File) For(pathID, movieID string) map[string]Patch {
	return f[pathID][movieID]
}

// Report summarizes an Apply call.
type Report struct {
	PhrasesPatched int      `json:"phrasesPatched"`
	WordsPatched   int      `json:"wordsPatched"`
	Orphans        []string `json:"orphans"`
	// Ignored lists phrase card ids whose patch only carried a meaning,
	// which phrase cards do not have.
	Ignored []string `json:"ignored"`
}

// Apply writes patches into the given cards in place.
func Apply(patches map[string]Patch, phrases []phrase.Card, wordCards []words.Card) Report {
	report := Report{Orphans: []string{}, Ignored: []string{}}
	used := make(map[string]bool, len(patches))

	for i := range phrases {
		p, ok := patches[phrases[i].ID]
		if !ok {
			continue
		}
		used[phrases[i].ID] = true
		if p.Secondary == nil {
			report.Ignored = append(report.Ignored, phrases[i].ID)
			continue
		}
		phrases[i].Secondary = *p.Secondary
		phrases[i].Source.Secondary = "override"
		report.PhrasesPatched++
	}

	for i := range wordCards {
		p, ok := patches[wordCards[i].ID]
		if !ok {
			continue
		}
		used[wordCards[i].ID] = true
		changed := false
		if p.Secondary != nil {
			wordCards[i].Secondary = *p.Secondary
			changed = true
		}
		if p.Meaning != nil {
			wordCards[i].Meaning = *p.Meaning
			changed = true
		}
		if changed {
			wordCards[i].Source.Secondary = "override"
			report.WordsPatched++
		}
	}

	for id := range patches {
		if !used[id] {
			report.Orphans = append(report.Orphans, id)
		}
	}
	slices.Sort(report.Orphans)
	return report
}
