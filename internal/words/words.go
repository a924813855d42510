package words

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"subdeck/internal/language"
	"subdeck/internal/phrase"
)

// CardType is the type tag of word cards.
const CardType = "word"

// Options tunes extraction.
type Options struct {
	Profile       language.Profile
	MinLength     int
	MaxPerChapter int
	// MaxExamples bounds the examples kept per card; zero keeps all.
	MaxExamples int
}

// Example is one occurrence of a token.
type Example struct {
	Timestamp string `json:"timestamp"`
	Primary   string `json:"it"`
	Secondary string `json:"de"`
}

// WordInfo holds lexical annotations. Lemma is set when the meaning came
// from an alias or a derived form.
type WordInfo struct {
	POS        string `json:"pos"`
	Lemma      string `json:"lemma"`
	Infinitive string `json:"infinitive"`
}

// Source records where each side of a card came from.
type Source struct {
	Primary   string `json:"it"`
	Secondary string `json:"de"`
}

// Card is a vocabulary study card.
type Card struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	ChapterID int       `json:"chapterId"`
	Token     string    `json:"it"`
	Secondary string    `json:"de"`
	Meaning   string    `json:"deMeaning"`
	Context   string    `json:"deContext"`
	Freq      int       `json:"freq"`
	Examples  []Example `json:"examples"`
	WordInfo  WordInfo  `json:"wordInfo"`
	Source    Source    `json:"source"`
}

// CardID returns the identifier for token within chapter.
func CardID(chapter int, token string) string {
	return fmt.Sprintf("w_c%d_%s", chapter, token)
}

// Tokenize splits text into lowercase tokens using the profile's pattern.
// Typographic apostrophes are folded to ASCII.
func Tokenize(text string, profile language.Profile) []string {
	if profile.TokenPattern == nil {
		return nil
	}
	raw := profile.TokenPattern.FindAllString(text, -1)
	tokens := make([]string, 0, len(raw))
	for _, token := range raw {
		token = strings.ReplaceAll(profile.Lower(token), "’", "'")
		if token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

// Keep reports whether token survives the length and stop-word filters.
func Keep(token string, opts Options) bool {
	if utf8.RuneCountInString(token) < opts.MinLength {
		return false
	}
	return !opts.Profile.IsStopWord(token)
}

type tally struct {
	token    string
	count    int
	examples []Example
}

// Extract builds word cards from phrase cards, chapter by chapter in
// ascending chapter order.
func Extract(cards []phrase.Card, opts Options) []Card {
	byChapter := make(map[int][]*tally)
	index := make(map[int]map[string]*tally)

	for _, pc := range cards {
		ch := pc.ChapterID
		if index[ch] == nil {
			index[ch] = make(map[string]*tally)
		}
		for _, token := range Tokenize(pc.Primary, opts.Profile) {
			if !Keep(token, opts) {
				continue
			}
			entry, ok := index[ch][token]
			if !ok {
				entry = &tally{token: token}
				index[ch][token] = entry
				byChapter[ch] = append(byChapter[ch], entry)
			}
			entry.count++
			if opts.MaxExamples <= 0 || len(entry.examples) < opts.MaxExamples {
				entry.examples = append(entry.examples, Example{
					Timestamp: pc.Timestamp,
					Primary:   pc.Primary,
					Secondary: pc.Secondary,
				})
			}
		}
	}

	chapters := make([]int, 0, len(byChapter))
	for ch := range byChapter {
		chapters = append(chapters, ch)
	}
	slices.Sort(chapters)

	var out []Card
	for _, ch := range chapters {
		ranked := byChapter[ch]
		// Stable sort keeps first-occurrence order among equal counts.
		slices.SortStableFunc(ranked, func(a, b *tally) int {
			return cmp.Compare(b.count, a.count)
		})
		if opts.MaxPerChapter > 0 && len(ranked) > opts.MaxPerChapter {
			ranked = ranked[:opts.MaxPerChapter]
		}
		for _, entry := range ranked {
			out = append(out, Card{
				ID:        CardID(ch, entry.token),
				Type:      CardType,
				ChapterID: ch,
				Token:     entry.token,
				Context:   lastContext(entry.examples),
				Freq:      entry.count,
				Examples:  entry.examples,
				Source:    Source{Primary: "srt-derived", Secondary: "dictionary-or-override"},
			})
		}
	}
	return out
}

func lastContext(examples []Example) string {
	for i := len(examples) - 1; i >= 0; i-- {
		if examples[i].Secondary != "" {
			return examples[i].Secondary
		}
	}
	return ""
}
