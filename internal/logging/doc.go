// Package logging builds the slog loggers used by the CLI.
//
// Two handlers are available: a single-line console format (colored when the
// destination is a terminal) and a JSON format with short keys. Log output
// goes to stderr and optionally to a file, keeping stdout free for command
// results. Library packages take a *slog.Logger and fall back to NewNop.
package logging
