package migrations

import "embed"

// FS contains embedded SQLite migrations for the upload ledger.
//
//go:embed *.sql
var FS embed.FS
