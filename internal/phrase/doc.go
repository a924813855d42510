// Package phrase merges primary-track captions into phrase units and aligns
// the secondary track to them by padded time-window overlap.
//
// Alignment favours duplication over omission: a secondary caption that
// overlaps the windows of two adjacent units is attached to both.
package phrase
