// Package deck runs one generation pass over a primary/secondary subtitle
// pair and persists the resulting phrase and word decks.
//
// Options are validated before any subtitle is parsed. Generate is pure and
// deterministic apart from the run id and timestamp in Meta; Write stores the
// two deck files atomically while holding an advisory lock on the output
// directory.
package deck
