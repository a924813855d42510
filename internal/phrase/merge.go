package phrase

import (
	"cmp"
	"math"
	"slices"
	"strings"
	"time"

	"subdeck/internal/srt"
	"subdeck/internal/timeline"
)

// Unit is one study item built from consecutive primary captions.
type Unit struct {
	StartSeconds float64
	EndSeconds   float64
	PrimaryText  string
	ChapterID    int
}

// Options tunes merging, alignment and card identifiers.
type Options struct {
	MergeAdjacent     bool
	MergeGap          time.Duration
	SecondaryPad      time.Duration
	SecondaryMaxLines int
	// NearestFallback attaches the secondary caption with the closest
	// midpoint when nothing overlaps a window. Zero disables it.
	NearestFallback time.Duration
	ChapterSeconds  float64
	IDMode          IDMode
}

// Merge folds primary entries into phrase units. With MergeAdjacent unset
// every entry becomes its own unit.
func Merge(entries []srt.Entry, opts Options) []Unit {
	sorted := sortedByStart(entries)
	if len(sorted) == 0 {
		return nil
	}
	gapMillis := opts.MergeGap.Milliseconds()

	units := make([]Unit, 0, len(sorted))
	current := Unit{StartSeconds: sorted[0].StartSeconds, EndSeconds: sorted[0].EndSeconds}
	parts := []string{sorted[0].Text}
	flush := func() {
		current.PrimaryText = strings.Join(parts, " ")
		current.ChapterID = timeline.ChapterID(current.StartSeconds, opts.ChapterSeconds)
		units = append(units, current)
	}
	for _, e := range sorted[1:] {
		if opts.MergeAdjacent && millis(e.StartSeconds-current.EndSeconds) <= gapMillis {
			current.EndSeconds = math.Max(current.EndSeconds, e.EndSeconds)
			parts = append(parts, e.Text)
			continue
		}
		flush()
		current = Unit{StartSeconds: e.StartSeconds, EndSeconds: e.EndSeconds}
		parts = []string{e.Text}
	}
	flush()
	return units
}

// millis rounds a seconds delta to whole milliseconds so threshold checks
// are not skewed by float error.
func millis(seconds float64) int64 {
	return int64(math.Round(seconds * 1000))
}

// Subtitle files are not always in time order; everything downstream
// assumes they are.
func sortedByStart(entries []srt.Entry) []srt.Entry {
	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b srt.Entry) int {
		return cmp.Compare(a.StartSeconds, b.StartSeconds)
	})
	return sorted
}
