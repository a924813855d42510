// Package words extracts frequency-ranked vocabulary cards from phrase cards.
//
// Tokens come from the merged phrase text so every example carries the same
// aligned translation as its phrase card. Ranking is per chapter: descending
// frequency, ties broken by first occurrence.
package words
