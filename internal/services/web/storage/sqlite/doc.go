// Package sqlite provides the upload ledger backed by SQLite.
package sqlite
