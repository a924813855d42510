package srt

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// timeLinePattern matches "HH:MM:SS,mmm --> HH:MM:SS,mmm". A period is
// accepted in place of the millisecond comma.
var timeLinePattern = regexp.MustCompile(`(\d{2}:\d{2}:\d{2}[,.]\d{3})\s*-->\s*(\d{2}:\d{2}:\d{2}[,.]\d{3})`)

// ParseTimestamp converts an SRT timestamp (HH:MM:SS,mmm) to seconds.
func ParseTimestamp(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	// Normalize period to comma (SRT standard uses comma for milliseconds)
	value = strings.ReplaceAll(value, ".", ",")
	timeParts := strings.Split(value, ",")
	if len(timeParts) != 2 || len(timeParts[1]) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hms := strings.Split(timeParts[0], ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hours, errH := strconv.Atoi(hms[0])
	minutes, errM := strconv.Atoi(hms[1])
	seconds, errS := strconv.Atoi(hms[2])
	millis, errMS := strconv.Atoi(timeParts[1])
	if errH != nil || errM != nil || errS != nil || errMS != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	if hours < 0 || minutes < 0 || seconds < 0 || millis < 0 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	return toSeconds(hours, minutes, seconds, millis), nil
}

func toSeconds(hours, minutes, seconds, millis int) float64 {
	return float64(hours*3600+minutes*60+seconds) + float64(millis)/1000
}

// parseTimeLine extracts the start and end offsets from a cue timing line.
// Trailing position hints after the end timestamp are ignored.
func parseTimeLine(line string) (float64, float64, bool) {
	m := timeLinePattern.FindStringSubmatch(line)
	if m == nil {
		return 0, 0, false
	}
	start, err := ParseTimestamp(m[1])
	if err != nil {
		return 0, 0, false
	}
	end, err := ParseTimestamp(m[2])
	if err != nil {
		return 0, 0, false
	}
	return start, end, true
}
