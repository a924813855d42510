// Package config loads, normalizes, and validates subdeck configuration.
//
// It supplies defaults, expands user paths (including tilde shortcuts), reads
// TOML files, and honours SUBDECK_* environment fallbacks for the dictionary
// path, output directory and log level. Validation failures are reported
// before any subtitle is read.
package config
