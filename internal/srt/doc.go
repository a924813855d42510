// Package srt parses SubRip subtitle text into timed caption entries.
//
// Parsing is pure and tolerant: blocks with a missing or malformed time line
// are dropped rather than reported, caption markup is stripped, and entries
// whose text is empty after cleaning never surface. Only a failing reader
// produces an error.
package srt
