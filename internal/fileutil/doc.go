// Package fileutil contains small filesystem helpers used when writing deck
// files.
package fileutil
