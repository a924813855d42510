package deck

import (
	"cmp"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"subdeck/internal/language"
	"subdeck/internal/logging"
	"subdeck/internal/meaning"
	"subdeck/internal/phrase"
	"subdeck/internal/srt"
	"subdeck/internal/textutil"
	"subdeck/internal/timeline"
	"subdeck/internal/words"
)

// Version tags the deck layout written into Meta.
const Version = "v0.3.0"

// Source is one subtitle track handed to the generator. Name is used for
// metadata only.
type Source struct {
	Name string
	Text string
}

// Sources pairs the studied track with its translation.
type Sources struct {
	Primary   Source
	Secondary Source
}

// Bundle is the complete result of one run.
type Bundle struct {
	Meta     Meta
	Chapters []timeline.Chapter
	Phrases  []phrase.Card
	Words    []words.Card
}

// Meta describes how a deck was produced.
type Meta struct {
	Version        string             `json:"autoversion"`
	RunID          string             `json:"runId"`
	GeneratedAt    string             `json:"generatedAt"`
	PathID         string             `json:"pathId"`
	MovieID        string             `json:"movieId"`
	Languages      Languages          `json:"languages"`
	Sources        []SourceInfo       `json:"sources"`
	Window         Window             `json:"window"`
	ChapterMinutes int                `json:"chapterMinutes"`
	Chapters       []timeline.Chapter `json:"chapters"`
	Params         Params             `json:"params"`
	Counts         Counts             `json:"counts"`
	Notes          []string           `json:"notes"`
}

// Languages names the primary and secondary track languages.
type Languages struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
}

// SourceInfo identifies an input track.
type SourceInfo struct {
	Role    string `json:"role"`
	Name    string `json:"name"`
	SHA256  string `json:"sha256"`
	Entries int    `json:"entries"`
}

// Window is the processed time range in seconds.
type Window struct {
	Start  float64 `json:"start"`
	End    float64 `json:"end"`
	EndHMS string  `json:"endHms"`
}

// Params snapshots the tuning that shaped the cards.
type Params struct {
	MergeAdjacentUnits     bool   `json:"mergeAdjacentUnits"`
	MergeGapMs             int64  `json:"mergeGapMs"`
	SecondaryPadMs         int64  `json:"secondaryPadMs"`
	SecondaryMaxLines      int    `json:"secondaryMaxLines"`
	NearestFallbackMs      int64  `json:"nearestFallbackMs"`
	IDMode                 string `json:"idMode"`
	MaxMinutes             int    `json:"maxMinutes"`
	MinWordLength          int    `json:"minWordLength"`
	MaxWordCardsPerChapter int    `json:"maxWordCardsPerChapter"`
	MaxExamplesPerWord     int    `json:"maxExamplesPerWord"`
	StopWords              int    `json:"stopWords"`
	DropCreditLines        bool   `json:"dropCreditLines"`
	Dictionary             string `json:"dictionary"`
}

// Counts summarizes the generated cards.
type Counts struct {
	Phrases           int `json:"phrases"`
	PhrasesUnaligned  int `json:"phrasesUnaligned"`
	Words             int `json:"words"`
	WordsWithMeanings int `json:"wordsWithMeanings"`
}

var notes = []string{
	"Secondary text for phrases is aligned from the secondary SRT by timestamp overlap.",
	"Word meanings come from the meaning dictionary; missing ones can be added as overrides.",
	"POS and infinitive fields are placeholders; lemma is set only for alias or derived matches.",
}

// Generator turns subtitle pairs into decks with a fixed option set and
// dictionary. It holds no per-run state.
type Generator struct {
	opts     Options
	profile  language.Profile
	resolver *meaning.Resolver
	dict     meaning.Dictionary
	logger   *slog.Logger
	now      func() time.Time
	newRunID func() string
}

// NewGenerator validates opts and prepares a generator. A nil logger
// discards output.
func NewGenerator(opts Options, dict meaning.Dictionary, logger *slog.Logger) (*Generator, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	profile := opts.Profile()
	return &Generator{
		opts:     opts,
		profile:  profile,
		resolver: meaning.NewResolver(dict, profile),
		dict:     dict,
		logger:   logging.NewComponentLogger(logger, "deck"),
		now:      time.Now,
		newRunID: uuid.NewString,
	}, nil
}

// Options returns the generator's validated options.
func (g *Generator) Options() Options {
	return g.opts
}

// Generate parses both tracks and builds the full bundle. Malformed subtitle
// content reduces the card count but never fails the run.
func (g *Generator) Generate(src Sources) *Bundle {
	parseOpts := srt.Options{DropCredits: g.opts.DropCreditLines}
	limit := float64(g.opts.MaxMinutes) * 60

	primaryAll := srt.Parse(src.Primary.Text, parseOpts)
	secondaryAll := srt.Parse(src.Secondary.Text, parseOpts)
	primary := srt.Window(primaryAll, limit)
	secondary := srt.Window(secondaryAll, limit)

	if len(primary) == 0 {
		logging.WarnWithContext(g.logger, "primary track has no usable captions", "empty_primary",
			logging.String(logging.FieldFile, src.Primary.Name),
			logging.String(logging.FieldImpact, "deck will contain no cards"))
	}
	if len(secondary) == 0 && len(primary) > 0 {
		logging.WarnWithContext(g.logger, "secondary track has no usable captions", "empty_secondary",
			logging.String(logging.FieldFile, src.Secondary.Name),
			logging.String(logging.FieldImpact, "phrase cards will have no translation"))
	}

	phrases := phrase.Build(primary, secondary, g.opts.phraseOptions())
	wordCards := words.Extract(phrases, g.opts.wordOptions(g.profile))
	withMeaning := g.fillMeanings(wordCards)
	chapters := timeline.BuildChapters(primary, g.opts.chapterSeconds())

	unaligned := 0
	for _, c := range phrases {
		if c.Secondary == "" {
			unaligned++
		}
	}
	if len(phrases) > 0 && unaligned*2 > len(phrases) {
		logging.WarnWithContext(g.logger, "most phrases have no aligned translation", "alignment_gap",
			logging.Int("unaligned", unaligned),
			logging.Int("phrases", len(phrases)),
			logging.String(logging.FieldErrorHint, "check that both files belong to the same release or raise secondary_pad_ms"))
	}

	meta := Meta{
		Version:     Version,
		RunID:       g.newRunID(),
		GeneratedAt: g.now().UTC().Format(time.RFC3339),
		PathID:      g.opts.PathID,
		MovieID:     g.movieID(src.Primary.Name),
		Languages: Languages{
			Primary:   g.profile.Code,
			Secondary: LanguageCode(g.opts.SecondaryLanguage),
		},
		Sources: []SourceInfo{
			sourceInfo("primary", src.Primary, len(primary)),
			sourceInfo("secondary", src.Secondary, len(secondary)),
		},
		Window:         g.window(primary, limit),
		ChapterMinutes: g.opts.ChapterMinutes,
		Chapters:       chapters,
		Params:         g.params(),
		Counts: Counts{
			Phrases:           len(phrases),
			PhrasesUnaligned:  unaligned,
			Words:             len(wordCards),
			WordsWithMeanings: withMeaning,
		},
		Notes: notes,
	}

	g.logger.Info("deck generated",
		logging.String(logging.FieldRunID, meta.RunID),
		logging.String(logging.FieldMovieID, meta.MovieID),
		logging.Int("phrases", len(phrases)),
		logging.Int("words", len(wordCards)),
		logging.Int("meanings", withMeaning),
		logging.Int("chapters", len(chapters)),
		logging.Float64("window_end_seconds", meta.Window.End),
		logging.Bool("credits_filtered", g.opts.DropCreditLines),
	)

	return &Bundle{Meta: meta, Chapters: chapters, Phrases: phrases, Words: wordCards}
}

func (g *Generator) fillMeanings(cards []words.Card) int {
	found := 0
	for i := range cards {
		m := g.resolver.Lookup(cards[i].Token)
		if !m.Found() {
			continue
		}
		found++
		cards[i].Meaning = m.Meaning
		if m.Step != meaning.StepExact && m.Lemma != cards[i].Token {
			cards[i].WordInfo.Lemma = m.Lemma
		}
	}
	return found
}

// movieID falls back to the primary file's base name.
func (g *Generator) movieID(primaryName string) string {
	if id := strings.TrimSpace(g.opts.MovieID); id != "" {
		return id
	}
	base := filepath.Base(primaryName)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "." || base == "" {
		return textutil.SanitizeToken("")
	}
	return textutil.SanitizeToken(base)
}

func (g *Generator) window(primary []srt.Entry, limit float64) Window {
	end := limit
	if end <= 0 {
		_, end = srt.Bounds(primary)
	}
	return Window{Start: 0, End: end, EndHMS: timeline.FormatHMS(end)}
}

func (g *Generator) params() Params {
	return Params{
		MergeAdjacentUnits:     g.opts.MergeAdjacentUnits,
		MergeGapMs:             g.opts.MergeGap.Milliseconds(),
		SecondaryPadMs:         g.opts.SecondaryPad.Milliseconds(),
		SecondaryMaxLines:      g.opts.SecondaryMaxLines,
		NearestFallbackMs:      g.opts.NearestFallback.Milliseconds(),
		IDMode:                 string(g.opts.IDMode),
		MaxMinutes:             g.opts.MaxMinutes,
		MinWordLength:          g.opts.MinWordLength,
		MaxWordCardsPerChapter: g.opts.MaxWordCardsPerChapter,
		MaxExamplesPerWord:     g.opts.MaxExamplesPerWord,
		StopWords:              len(g.profile.StopWords),
		DropCreditLines:        g.opts.DropCreditLines,
		Dictionary:             fmt.Sprintf("%s (%d lemmas, %d aliases)", cmp.Or(g.dict.Shape, meaning.ShapeEmpty), len(g.dict.Lemmas), len(g.dict.Aliases)),
	}
}

func sourceInfo(role string, src Source, entries int) SourceInfo {
	sum := sha256.Sum256([]byte(src.Text))
	return SourceInfo{
		Role:    role,
		Name:    filepath.Base(src.Name),
		SHA256:  hex.EncodeToString(sum[:]),
		Entries: entries,
	}
}
