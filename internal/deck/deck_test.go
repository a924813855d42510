package deck

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofrs/flock"

	"subdeck/internal/meaning"
	"subdeck/internal/phrase"
)

const primarySRT = `1
00:00:01,000 --> 00:00:02,000
Ciao Harry!

2
00:00:02,200 --> 00:00:03,000
Dove vai?

3
00:00:10,000 --> 00:00:12,000
I gatti neri sono qui.

4
00:14:50,000 --> 00:15:00,000
Buon viaggio, Harry.
`

const secondarySRT = `1
00:00:01,100 --> 00:00:02,900
Hallo Harry! Wohin gehst du?

2
00:00:10,100 --> 00:00:11,900
Die schwarzen Katzen sind hier.

3
00:14:51,000 --> 00:14:59,000
Gute Reise, Harry.
`

func testDictionary(t *testing.T) meaning.Dictionary {
	t.Helper()
	dict, err := meaning.Decode([]byte(`{
		"lemmas": {"gatto": "Katze", "buono": "gut", "ciao": "hallo", "nero": "schwarz"},
		"aliases": {"neri": "nero"}
	}`))
	if err != nil {
		t.Fatalf("decode dictionary: %v", err)
	}
	return dict
}

func newTestGenerator(t *testing.T, opts Options, dict meaning.Dictionary) *Generator {
	t.Helper()
	g, err := NewGenerator(opts, dict, nil)
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	g.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	g.newRunID = func() string { return "run-1" }
	return g
}

func testSources() Sources {
	return Sources{
		Primary:   Source{Name: "/movies/HP1 Italiano.srt", Text: primarySRT},
		Secondary: Source{Name: "/movies/hp1.de.srt", Text: secondarySRT},
	}
}

func TestValidateRejectsBadOptions(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Options)
	}{
		{"zero chapter minutes", func(o *Options) { o.ChapterMinutes = 0 }},
		{"negative chapter minutes", func(o *Options) { o.ChapterMinutes = -7 }},
		{"negative gap", func(o *Options) { o.MergeGap = -time.Millisecond }},
		{"negative pad", func(o *Options) { o.SecondaryPad = -time.Millisecond }},
		{"zero min length", func(o *Options) { o.MinWordLength = 0 }},
		{"zero cap", func(o *Options) { o.MaxWordCardsPerChapter = 0 }},
		{"unknown id mode", func(o *Options) { o.IDMode = "uuid" }},
		{"no secondary language", func(o *Options) { o.SecondaryLanguage = " " }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.mutate(&opts)
			err := opts.Validate()
			if !errors.Is(err, ErrInvalidOptions) {
				t.Fatalf("Validate() = %v, want ErrInvalidOptions", err)
			}
			if _, err := NewGenerator(opts, meaning.Empty(), nil); !errors.Is(err, ErrInvalidOptions) {
				t.Fatalf("NewGenerator() = %v, want ErrInvalidOptions", err)
			}
		})
	}
	if err := DefaultOptions().Validate(); err != nil {
		t.Fatalf("default options should validate: %v", err)
	}
}

func TestGenerateBuildsPhrasesWordsAndMeta(t *testing.T) {
	g := newTestGenerator(t, DefaultOptions(), testDictionary(t))
	b := g.Generate(testSources())

	if len(b.Phrases) != 3 {
		t.Fatalf("phrases = %d, want 3: %+v", len(b.Phrases), b.Phrases)
	}
	first := b.Phrases[0]
	if first.ID != "p_0001" || first.Primary != "Ciao Harry! Dove vai?" || first.Start != 1 || first.End != 3 {
		t.Fatalf("unexpected first phrase %+v", first)
	}
	if first.Secondary != "Hallo Harry! Wohin gehst du?" {
		t.Fatalf("first phrase secondary = %q", first.Secondary)
	}
	if last := b.Phrases[2]; last.ChapterID != 3 || last.Secondary != "Gute Reise, Harry." {
		t.Fatalf("unexpected last phrase %+v", last)
	}

	if len(b.Chapters) != 3 {
		t.Fatalf("chapters = %d, want 3", len(b.Chapters))
	}
	for _, p := range b.Phrases {
		if p.ChapterID < 1 || p.ChapterID > len(b.Chapters) {
			t.Fatalf("phrase %s chapter %d outside [1,%d]", p.ID, p.ChapterID, len(b.Chapters))
		}
	}

	byID := make(map[string]int, len(b.Words))
	for i, w := range b.Words {
		byID[w.ID] = i
	}
	if len(b.Words) != 10 {
		t.Fatalf("words = %d, want 10: %v", len(b.Words), byID)
	}
	want := []struct {
		id, meaning, lemma string
	}{
		{"w_c1_ciao", "hallo", ""},
		{"w_c1_gatti", "Katze", "gatto"},
		{"w_c1_neri", "schwarz", "nero"},
		{"w_c3_buon", "gut", "buono"},
		{"w_c1_harry", "", ""},
		{"w_c3_harry", "", ""},
	}
	for _, tt := range want {
		i, ok := byID[tt.id]
		if !ok {
			t.Fatalf("missing word card %s", tt.id)
		}
		w := b.Words[i]
		if w.Meaning != tt.meaning || w.WordInfo.Lemma != tt.lemma {
			t.Errorf("%s: meaning=%q lemma=%q, want %q/%q", tt.id, w.Meaning, w.WordInfo.Lemma, tt.meaning, tt.lemma)
		}
	}
	harry := b.Words[byID["w_c1_harry"]]
	if harry.Context != "Hallo Harry! Wohin gehst du?" || len(harry.Examples) != 1 {
		t.Fatalf("unexpected harry card %+v", harry)
	}

	m := b.Meta
	if m.RunID != "run-1" || m.GeneratedAt != "2026-01-02T03:04:05Z" {
		t.Fatalf("unexpected run stamp %q %q", m.RunID, m.GeneratedAt)
	}
	if m.MovieID != "hp1_italiano" {
		t.Fatalf("derived movie id = %q", m.MovieID)
	}
	if m.Languages.Primary != "it" || m.Languages.Secondary != "de" {
		t.Fatalf("languages = %+v", m.Languages)
	}
	if m.Counts.Phrases != 3 || m.Counts.Words != 10 || m.Counts.WordsWithMeanings != 4 || m.Counts.PhrasesUnaligned != 0 {
		t.Fatalf("counts = %+v", m.Counts)
	}
	if m.Window.End != 900 || m.Window.EndHMS != "00:15:00" {
		t.Fatalf("window = %+v", m.Window)
	}
	if len(m.Sources) != 2 || m.Sources[0].Name != "HP1 Italiano.srt" || len(m.Sources[0].SHA256) != 64 || m.Sources[0].Entries != 4 {
		t.Fatalf("sources = %+v", m.Sources)
	}
	if m.Params.MergeGapMs != 300 || m.Params.IDMode != "sequence" {
		t.Fatalf("params = %+v", m.Params)
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	opts := DefaultOptions()
	opts.IDMode = phrase.IDContent
	dict := testDictionary(t)

	encode := func() ([]byte, []byte) {
		b := newTestGenerator(t, opts, dict).Generate(testSources())
		p, err := Encode(b.Phrases)
		if err != nil {
			t.Fatalf("encode phrases: %v", err)
		}
		w, err := Encode(b.Words)
		if err != nil {
			t.Fatalf("encode words: %v", err)
		}
		return p, w
	}
	p1, w1 := encode()
	p2, w2 := encode()
	if !bytes.Equal(p1, p2) || !bytes.Equal(w1, w2) {
		t.Fatal("two runs over identical input produced different decks")
	}
	if !bytes.Contains(p1, []byte(`"id": "p_`)) {
		t.Fatalf("expected content ids in %s", p1)
	}
}

func TestGenerateMaxMinutesWindow(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxMinutes = 1
	b := newTestGenerator(t, opts, meaning.Empty()).Generate(testSources())
	if len(b.Phrases) != 2 {
		t.Fatalf("phrases = %d, want 2 inside the first minute", len(b.Phrases))
	}
	if b.Meta.Window.End != 60 || b.Meta.Window.EndHMS != "00:01:00" {
		t.Fatalf("window = %+v", b.Meta.Window)
	}
	if len(b.Chapters) != 1 {
		t.Fatalf("chapters = %d, want 1", len(b.Chapters))
	}
}

func TestGenerateEmptyInput(t *testing.T) {
	b := newTestGenerator(t, DefaultOptions(), meaning.Empty()).Generate(Sources{
		Primary:   Source{Name: "empty.srt", Text: ""},
		Secondary: Source{Name: "garbage.srt", Text: "not a subtitle\n\nat all"},
	})
	if len(b.Phrases) != 0 || len(b.Words) != 0 {
		t.Fatalf("expected no cards, got %d phrases %d words", len(b.Phrases), len(b.Words))
	}
	if len(b.Chapters) != 1 {
		t.Fatalf("chapters = %d, want a single chapter", len(b.Chapters))
	}

	dir := t.TempDir()
	paths, err := Write(dir, b)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	data, err := os.ReadFile(paths[0])
	if err != nil {
		t.Fatalf("read phrases: %v", err)
	}
	if !strings.Contains(string(data), `"cards": []`) {
		t.Fatalf("empty deck should encode cards as []: %s", data)
	}
}

func TestWriteAndReadBack(t *testing.T) {
	b := newTestGenerator(t, DefaultOptions(), testDictionary(t)).Generate(testSources())
	dir := filepath.Join(t.TempDir(), "paths", "default", "cards")

	paths, err := Write(dir, b)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	wantPhrases, wantWords := Paths(dir, "de")
	if len(paths) != 2 || paths[0] != wantPhrases || paths[1] != wantWords {
		t.Fatalf("paths = %v", paths)
	}
	if filepath.Base(wantPhrases) != "phrases.base.de.json" || filepath.Base(wantWords) != "words.base.de.json" {
		t.Fatalf("unexpected file names %s %s", wantPhrases, wantWords)
	}

	pf, err := ReadPhraseFile(wantPhrases)
	if err != nil {
		t.Fatalf("ReadPhraseFile: %v", err)
	}
	if len(pf.Cards) != len(b.Phrases) || pf.Meta.RunID != "run-1" {
		t.Fatalf("phrase file = %+v", pf.Meta)
	}
	wf, err := ReadWordFile(wantWords)
	if err != nil {
		t.Fatalf("ReadWordFile: %v", err)
	}
	if len(wf.Cards) != len(b.Words) {
		t.Fatalf("word cards = %d, want %d", len(wf.Cards), len(b.Words))
	}

	raw, err := os.ReadFile(wantPhrases)
	if err != nil {
		t.Fatalf("read phrases: %v", err)
	}
	if !strings.Contains(string(raw), `"it": "Ciao Harry! Dove vai?"`) {
		t.Fatalf("phrase file uses unexpected keys: %s", raw)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 2 {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Fatalf("deck directory should hold only the two decks, got %v", names)
	}
}

func TestLanguageCodeCanonicalizesNames(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"de", "de"},
		{"german", "de"},
		{"Deutsch", "de"},
		{"deu", "de"},
		{"de-DE", "de"},
		{" KLINGON ", "klingon"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := LanguageCode(tt.in); got != tt.want {
			t.Errorf("LanguageCode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
	phrases, wordsName := FileNames("german")
	if phrases != "phrases.base.de.json" || wordsName != "words.base.de.json" {
		t.Fatalf("FileNames(german) = %s, %s", phrases, wordsName)
	}
}

func TestWriteUsesCanonicalLanguage(t *testing.T) {
	opts := DefaultOptions()
	opts.SecondaryLanguage = "german"
	b := newTestGenerator(t, opts, meaning.Empty()).Generate(testSources())
	if b.Meta.Languages.Secondary != "de" {
		t.Fatalf("meta secondary language = %q, want de", b.Meta.Languages.Secondary)
	}
	dir := t.TempDir()
	if _, err := Write(dir, b); err != nil {
		t.Fatalf("Write: %v", err)
	}
	phrasePath, _ := Paths(dir, "german")
	if _, err := ReadPhraseFile(phrasePath); err != nil {
		t.Fatalf("deck written for german should be readable by name: %v", err)
	}
}

func TestWriteFailsWhenLocked(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cards")
	held := flock.New(lockPath(dir))
	ok, err := held.TryLock()
	if err != nil || !ok {
		t.Fatalf("take lock: ok=%v err=%v", ok, err)
	}
	defer func() { _ = held.Unlock() }()

	b := newTestGenerator(t, DefaultOptions(), meaning.Empty()).Generate(testSources())
	if _, err := Write(dir, b); !errors.Is(err, ErrDeckLocked) {
		t.Fatalf("Write() = %v, want ErrDeckLocked", err)
	}
}

func TestProfileAppliesExtensions(t *testing.T) {
	opts := DefaultOptions()
	opts.ExtraStopWords = []string{"Harry"}
	opts.Apocope = map[string]string{"fra": "frate"}
	p := opts.Profile()
	if !p.IsStopWord("harry") {
		t.Fatal("extra stop word not applied")
	}
	if full, ok := p.Expand("fra"); !ok || full != "frate" {
		t.Fatalf("Expand(fra) = %q, %v", full, ok)
	}
}
