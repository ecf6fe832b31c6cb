// Package sqlite provides SQLite-backed roll history.
package sqlite
