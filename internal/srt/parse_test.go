package srt

import (
	"errors"
	"strings"
	"testing"
	"testing/iotest"
)

func TestParseSingleBlock(t *testing.T) {
	entries := Parse("1\n00:00:01,000 --> 00:00:02,500\nCiao mondo\n", DefaultOptions())
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	got := entries[0]
	if got.Index != 1 || got.StartSeconds != 1.0 || got.EndSeconds != 2.5 || got.Text != "Ciao mondo" {
		t.Fatalf("unexpected entry: %+v", got)
	}
}

func TestParseHandlesCRLFAndNoIndexBlocks(t *testing.T) {
	raw := "00:00:01,000 --> 00:00:02,000\r\nPrima riga\r\n\r\n2\r\n00:00:03,000 --> 00:00:04,000\r\nSeconda\r\nriga\r\n"
	entries := Parse(raw, DefaultOptions())
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Index != 0 {
		t.Fatalf("expected no index for time-first block, got %d", entries[0].Index)
	}
	if entries[1].Text != "Seconda riga" {
		t.Fatalf("expected multi-line caption joined with a space, got %q", entries[1].Text)
	}
}

func TestParseSkipsMalformedBlocks(t *testing.T) {
	raw := `1
not a time line
Testo perso

2
00:00:05,000 --> 00:00:06,000

3
00:00:09,000 --> 00:00:08,000
Fine prima dell'inizio

4
00:00:10,000 --> 00:00:11,000
Sopravvissuto
`
	entries := Parse(raw, DefaultOptions())
	if len(entries) != 1 {
		t.Fatalf("expected only the well-formed block, got %+v", entries)
	}
	if entries[0].Text != "Sopravvissuto" {
		t.Fatalf("unexpected surviving entry: %+v", entries[0])
	}
}

func TestParseCleansCaptionText(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"html tags", "<i>Harry</i>, <b>vieni</b>!", "Harry, vieni!"},
		{"style directive", `{\an8}Sopra lo schermo`, "Sopra lo schermo"},
		{"annotation", "[tuono] Chi è là?", "Chi è là?"},
		{"music notes", "♪ la la ♪", "la la"},
		{"whitespace", "troppo     spazio", "troppo spazio"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := "1\n00:00:01,000 --> 00:00:02,000\n" + tt.text + "\n"
			entries := Parse(raw, DefaultOptions())
			if len(entries) != 1 {
				t.Fatalf("expected 1 entry, got %d", len(entries))
			}
			if entries[0].Text != tt.want {
				t.Fatalf("got %q, want %q", entries[0].Text, tt.want)
			}
		})
	}
}

func TestParseDropsEmptyAfterCleaning(t *testing.T) {
	raw := "1\n00:00:01,000 --> 00:00:02,000\n[musica]\n\n2\n00:00:03,000 --> 00:00:04,000\n♪\n"
	if entries := Parse(raw, DefaultOptions()); len(entries) != 0 {
		t.Fatalf("expected annotation-only captions to be dropped, got %+v", entries)
	}
}

func TestParseCreditHeuristic(t *testing.T) {
	raw := "1\n00:00:01,000 --> 00:00:02,000\nSubtitles by ItaSA\n\n2\n00:00:03,000 --> 00:00:04,000\nBuongiorno\n"
	if entries := Parse(raw, DefaultOptions()); len(entries) != 1 {
		t.Fatalf("expected credit caption dropped, got %+v", entries)
	}
	if entries := Parse(raw, Options{}); len(entries) != 2 {
		t.Fatalf("expected credit caption kept when disabled, got %+v", entries)
	}
}

func TestCuesIsRestartable(t *testing.T) {
	raw := "1\n00:00:01,000 --> 00:00:02,000\nUno\n\n2\n00:00:03,000 --> 00:00:04,000\nDue\n"
	seq := Cues(raw, DefaultOptions())
	for pass := 0; pass < 2; pass++ {
		count := 0
		for range seq {
			count++
		}
		if count != 2 {
			t.Fatalf("pass %d: expected 2 entries, got %d", pass, count)
		}
	}
	for e := range seq {
		if e.Text != "Uno" {
			t.Fatalf("expected early break on first entry, got %q", e.Text)
		}
		break
	}
}

func TestParseEmptyInput(t *testing.T) {
	for _, raw := range []string{"", "   \n\n  ", "\ufeff"} {
		if entries := Parse(raw, DefaultOptions()); len(entries) != 0 {
			t.Fatalf("expected no entries for %q, got %d", raw, len(entries))
		}
	}
}

func TestParseReaderSurfacesReadErrors(t *testing.T) {
	boom := errors.New("boom")
	if _, err := ParseReader(iotest.ErrReader(boom), DefaultOptions()); !errors.Is(err, boom) {
		t.Fatalf("expected read error, got %v", err)
	}
	entries, err := ParseReader(strings.NewReader("1\n00:00:01,000 --> 00:00:02,000\nCiao\n"), DefaultOptions())
	if err != nil {
		t.Fatalf("ParseReader: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
}

func TestBoundsAndWindow(t *testing.T) {
	entries := []Entry{
		{StartSeconds: 5, EndSeconds: 6, Text: "a"},
		{StartSeconds: 1, EndSeconds: 2, Text: "b"},
		{StartSeconds: 900, EndSeconds: 905, Text: "c"},
	}
	first, last := Bounds(entries)
	if first != 1 || last != 905 {
		t.Fatalf("Bounds = %v, %v", first, last)
	}
	if got := Window(entries, 840); len(got) != 2 {
		t.Fatalf("expected 2 entries inside the window, got %d", len(got))
	}
	if got := Window(entries, 0); len(got) != 3 {
		t.Fatalf("expected no filtering for zero limit, got %d", len(got))
	}
	if a, b := Bounds(nil); a != 0 || b != 0 {
		t.Fatalf("expected zero bounds for nil, got %v %v", a, b)
	}
}
