package srt

import (
	"fmt"
	"io"
	"iter"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// Entry is one timed caption. Index is 0 when the block carried no index
// line.
type Entry struct {
	Index        int     `json:"index,omitempty"`
	StartSeconds float64 `json:"start"`
	EndSeconds   float64 `json:"end"`
	Text         string  `json:"text"`
}

// Duration returns the caption's on-screen time in seconds.
func (e Entry) Duration() float64 {
	return e.EndSeconds - e.StartSeconds
}

// Options tunes parsing.
type Options struct {
	// DropCredits removes captions matching the subtitle credit heuristic.
	DropCredits bool
}

// DefaultOptions returns the parser defaults.
func DefaultOptions() Options {
	return Options{DropCredits: true}
}

var blockSeparator = regexp.MustCompile(`\n[ \t]*\n`)

// Cues returns a lazy sequence over the entries in text. The sequence can be
// ranged over any number of times; each pass parses text afresh.
func Cues(text string, opts Options) iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		normalized := strings.ReplaceAll(text, "\r\n", "\n")
		normalized = strings.ReplaceAll(normalized, "\r", "\n")
		normalized = strings.TrimPrefix(normalized, "\ufeff")
		normalized = strings.TrimSpace(normalized)
		if normalized == "" {
			return
		}
		for _, block := range blockSeparator.Split(normalized, -1) {
			entry, ok := parseBlock(block, opts)
			if !ok {
				continue
			}
			if !yield(entry) {
				return
			}
		}
	}
}

// Parse collects every entry in text.
func Parse(text string, opts Options) []Entry {
	return slices.Collect(Cues(text, opts))
}

// ParseReader reads r fully and parses it. Only read failures are returned
// as errors.
func ParseReader(r io.Reader, opts Options) ([]Entry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read srt: %w", err)
	}
	return Parse(string(data), opts), nil
}

func parseBlock(block string, opts Options) (Entry, bool) {
	var lines []string
	for _, line := range strings.Split(block, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	if len(lines) < 2 {
		return Entry{}, false
	}

	var (
		index     int
		timeLine  string
		textLines []string
	)
	if strings.Contains(lines[0], "-->") {
		timeLine = lines[0]
		textLines = lines[1:]
	} else {
		if n, err := strconv.Atoi(lines[0]); err == nil && n > 0 {
			index = n
		}
		timeLine = lines[1]
		textLines = lines[2:]
	}

	start, end, ok := parseTimeLine(timeLine)
	if !ok || end < start {
		return Entry{}, false
	}

	text := CleanCaption(textLines)
	if text == "" {
		return Entry{}, false
	}
	if opts.DropCredits && IsCredit(text) {
		return Entry{}, false
	}
	return Entry{Index: index, StartSeconds: start, EndSeconds: end, Text: text}, true
}

// Bounds returns the earliest start and the latest end over entries. Both are
// zero for an empty slice.
func Bounds(entries []Entry) (float64, float64) {
	if len(entries) == 0 {
		return 0, 0
	}
	first := entries[0].StartSeconds
	var last float64
	for _, e := range entries {
		if e.StartSeconds < first {
			first = e.StartSeconds
		}
		if e.EndSeconds > last {
			last = e.EndSeconds
		}
	}
	return first, last
}

// Window keeps entries starting before limitSeconds. A non-positive limit
// keeps everything.
func Window(entries []Entry, limitSeconds float64) []Entry {
	if limitSeconds <= 0 {
		return slices.Clone(entries)
	}
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.StartSeconds < limitSeconds {
			out = append(out, e)
		}
	}
	return out
}
