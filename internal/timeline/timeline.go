package timeline

import (
	"fmt"
	"math"

	"subdeck/internal/srt"
)

// FormatHMS renders seconds as zero-padded HH:MM:SS. Fractions are floored
// and negative values clamp to zero.
func FormatHMS(seconds float64) string {
	if math.IsNaN(seconds) || seconds < 0 {
		seconds = 0
	}
	s := int64(math.Floor(seconds))
	return fmt.Sprintf("%02d:%02d:%02d", s/3600, (s%3600)/60, s%60)
}

// ChapterID returns the 1-based chapter containing seconds. chapterSeconds
// must be positive; callers validate it before generation starts.
func ChapterID(seconds, chapterSeconds float64) int {
	if chapterSeconds <= 0 {
		return 1
	}
	if seconds < 0 {
		seconds = 0
	}
	return int(math.Floor(seconds/chapterSeconds)) + 1
}

// Chapter describes one contiguous slice of the movie.
type Chapter struct {
	ID           int     `json:"id"`
	StartSeconds float64 `json:"start"`
	EndSeconds   float64 `json:"end"`
	StartHMS     string  `json:"startHms"`
	EndHMS       string  `json:"endHms"`
}

// BuildChapters returns contiguous chapters covering every entry. At least
// one chapter is always produced; the final chapter ends at the latest entry
// end.
func BuildChapters(entries []srt.Entry, chapterSeconds float64) []Chapter {
	if chapterSeconds <= 0 {
		return []Chapter{newChapter(1, 0, 0)}
	}
	var maxEnd, maxStart float64
	for _, e := range entries {
		maxEnd = math.Max(maxEnd, e.EndSeconds)
		maxStart = math.Max(maxStart, e.StartSeconds)
	}
	count := int(math.Ceil(maxEnd / chapterSeconds))
	// An entry starting exactly on a boundary belongs to the next chapter.
	if len(entries) > 0 {
		count = max(count, ChapterID(maxStart, chapterSeconds))
	}
	count = max(count, 1)

	chapters := make([]Chapter, 0, count)
	for i := 0; i < count; i++ {
		start := float64(i) * chapterSeconds
		end := start + chapterSeconds
		if i == count-1 {
			end = math.Max(math.Min(end, maxEnd), start)
		}
		chapters = append(chapters, newChapter(i+1, start, end))
	}
	return chapters
}

func newChapter(id int, start, end float64) Chapter {
	return Chapter{
		ID:           id,
		StartSeconds: start,
		EndSeconds:   end,
		StartHMS:     FormatHMS(start),
		EndHMS:       FormatHMS(end),
	}
}
