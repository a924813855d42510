package srt

import (
	"fmt"
	"math"
	"testing"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		input   string
		want    float64
		wantErr bool
	}{
		{"00:00:01,000", 1, false},
		{"00:00:02,500", 2.5, false},
		{"01:02:03,004", 3723.004, false},
		{"00:00:02.500", 2.5, false},
		{"", 0, true},
		{"00:00:02", 0, true},
		{"00:02,500", 0, true},
		{"aa:00:02,500", 0, true},
		{"00:00:02,5", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseTimestamp(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseTimestamp(%q) expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTimestamp(%q) unexpected error: %v", tt.input, err)
			continue
		}
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("ParseTimestamp(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseTimestampWholeSeconds(t *testing.T) {
	for _, hh := range []int{0, 1, 12, 99} {
		for _, mm := range []int{0, 7, 59} {
			for _, ss := range []int{0, 30, 59} {
				for _, ms := range []int{0, 1, 999} {
					value := fmt.Sprintf("%02d:%02d:%02d,%03d", hh, mm, ss, ms)
					got, err := ParseTimestamp(value)
					if err != nil {
						t.Fatalf("ParseTimestamp(%q): %v", value, err)
					}
					if int(math.Floor(got)) != hh*3600+mm*60+ss {
						t.Fatalf("ParseTimestamp(%q) whole seconds = %d", value, int(math.Floor(got)))
					}
				}
			}
		}
	}
}

func TestParseTimeLine(t *testing.T) {
	start, end, ok := parseTimeLine("00:01:00,250 --> 00:01:02,750 X1:100")
	if !ok || start != 60.25 || end != 62.75 {
		t.Fatalf("parseTimeLine = %v %v %v", start, end, ok)
	}
	if _, _, ok := parseTimeLine("00:01:00 --> 00:01:02"); ok {
		t.Fatal("expected missing milliseconds to be rejected")
	}
}
