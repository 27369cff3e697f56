// Package config loads, normalizes, and validates TOML configuration for the
// promptcast daemon and CLI.
package config
