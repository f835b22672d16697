// Package storage declares persistence interfaces for web-owned data.
//
// The only persisted state is the local upload ledger; the CMS remains the
// source of truth for images and accounts.
package storage
