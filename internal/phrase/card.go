package phrase

import (
	"fmt"
	"strconv"

	"subdeck/internal/srt"
	"subdeck/internal/textutil"
	"subdeck/internal/timeline"
)

// IDMode selects how phrase card identifiers are derived.
type IDMode string

const (
	// IDSequence numbers cards by output position (p_0001, p_0002, ...).
	IDSequence IDMode = "sequence"
	// IDContent hashes the start time and normalized text, so ids survive
	// inserted or removed captions.
	IDContent IDMode = "content"
)

// Valid reports whether m is a known mode.
func (m IDMode) Valid() bool {
	return m == IDSequence || m == IDContent
}

// CardType is the type tag of phrase cards.
const CardType = "phrase"

// Card is a phrase study card. The it/de wire keys are fixed by the deck
// viewer and carry the primary and secondary text for any language pair.
type Card struct {
	ID        string  `json:"id"`
	Type      string  `json:"type"`
	ChapterID int     `json:"chapterId"`
	Start     float64 `json:"start"`
	End       float64 `json:"end"`
	Timestamp string  `json:"timestamp"`
	Primary   string  `json:"it"`
	Secondary string  `json:"de"`
	Source    Source  `json:"source"`
}

// Source records where each side of a card came from.
type Source struct {
	Primary   string `json:"it"`
	Secondary string `json:"de"`
}

// Build merges the primary track, aligns the secondary track and returns
// one card per unit in time order.
func Build(primary, secondary []srt.Entry, opts Options) []Card {
	units := Merge(primary, opts)
	aligned := Align(units, secondary, opts)
	ids := cardIDs(units, opts.IDMode)

	cards := make([]Card, len(units))
	for i, u := range units {
		cards[i] = Card{
			ID:        ids[i],
			Type:      CardType,
			ChapterID: u.ChapterID,
			Start:     u.StartSeconds,
			End:       u.EndSeconds,
			Timestamp: timeline.FormatHMS(u.StartSeconds),
			Primary:   u.PrimaryText,
			Secondary: aligned[i],
			Source:    Source{Primary: "srt", Secondary: "srt-aligned"},
		}
	}
	return cards
}

func cardIDs(units []Unit, mode IDMode) []string {
	ids := make([]string, len(units))
	if mode != IDContent {
		for i := range units {
			ids[i] = fmt.Sprintf("p_%04d", i+1)
		}
		return ids
	}
	seen := make(map[string]int, len(units))
	for i, u := range units {
		startMillis := strconv.FormatInt(millis(u.StartSeconds), 10)
		id := "p_" + textutil.ContentKey(12, startMillis, textutil.NormalizeKey(u.PrimaryText))
		seen[id]++
		if n := seen[id]; n > 1 {
			id = fmt.Sprintf("%s_%d", id, n)
		}
		ids[i] = id
	}
	return ids
}
