// Package config loads, normalizes, and validates biblioteca configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the BIBLIOTECA_DATABASE
// environment fallback. The Config type centralizes the database location,
// the JSON datasets to load, and the language filter settings so every
// command resolves them the same way.
//
// Always obtain settings through this package so downstream code receives
// absolute paths, canonical log formats, and clear validation errors.
package config
