// Package sqlite provides local persistence for catalog import
// snapshots and decode history, backed by a pure Go SQLite driver.
package sqlite
