// Package meaning loads the curated meaning dictionary and resolves surface
// tokens to meanings.
//
// Seed files come in two shapes: a flat token→meaning map (legacy) or an
// object with "lemmas" and "aliases" maps. Both decode into the same
// Dictionary so lookups never branch on the file shape.
package meaning
