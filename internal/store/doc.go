// Package store persists the seller catalog, phrase rules, and missing
// product reports in a local SQLite database.
package store
