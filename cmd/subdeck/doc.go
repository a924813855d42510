// Package main hosts the subdeck CLI.
//
// The cobra command tree turns a pair of subtitle files into phrase and word
// decks (generate), and offers helpers for checking dictionaries (resolve),
// subtitle files (inspect), viewer override exports (overrides merge) and the
// configuration file (config). Configuration and logging are resolved once
// per invocation in commandContext; the work itself lives in internal/.
package main
