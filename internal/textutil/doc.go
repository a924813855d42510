// Package textutil provides small text helpers shared by the subtitle parser,
// the card builders, and the CLI.
//
// The primary use cases are:
//   - Collapsing whitespace and applying Unicode NFC so accented letters
//     compare equal regardless of how the subtitle file encoded them
//   - Deriving short content keys for stable identifiers
//   - Sanitizing tokens for safe use in identifiers and file names
package textutil
