// Package catalog defines the product domain model: bag entries, their
// teleprompter scripts, and the read-only index snapshot the matcher
// resolves titles against.
package catalog
