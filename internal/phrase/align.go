package phrase

import (
	"math"
	"strings"

	"subdeck/internal/srt"
)

// Align returns the secondary text for each unit, in unit order. Units must
// be sorted by start time, as Merge returns them.
func Align(units []Unit, secondary []srt.Entry, opts Options) []string {
	sorted := sortedByStart(secondary)
	pad := opts.SecondaryPad.Seconds()
	out := make([]string, len(units))

	cursor := 0
	for i, u := range units {
		winStart := u.StartSeconds - pad
		winEnd := u.EndSeconds + pad

		// Window starts never decrease, so captions ending before this one
		// can never match a later unit either.
		for cursor < len(sorted) && sorted[cursor].EndSeconds <= winStart {
			cursor++
		}

		var lines []string
		for j := cursor; j < len(sorted) && sorted[j].StartSeconds < winEnd; j++ {
			if sorted[j].EndSeconds <= winStart {
				continue
			}
			lines = append(lines, sorted[j].Text)
			if opts.SecondaryMaxLines > 0 && len(lines) >= opts.SecondaryMaxLines {
				break
			}
		}
		if len(lines) == 0 && opts.NearestFallback > 0 {
			if text, ok := nearest(u, sorted, opts.NearestFallback.Seconds()); ok {
				lines = append(lines, text)
			}
		}
		out[i] = strings.Join(lines, " ")
	}
	return out
}

func nearest(u Unit, secondary []srt.Entry, maxDistance float64) (string, bool) {
	mid := (u.StartSeconds + u.EndSeconds) / 2
	best := -1
	bestDist := math.Inf(1)
	for i, e := range secondary {
		dist := math.Abs((e.StartSeconds+e.EndSeconds)/2 - mid)
		if dist < bestDist {
			best, bestDist = i, dist
		}
	}
	if best < 0 || bestDist > maxDistance {
		return "", false
	}
	return secondary[best].Text, true
}
