package storage

import (
	"context"
	"time"
)

// UploadRecord is one image the CMS accepted on behalf of a user.
type UploadRecord struct {
	ID           string
	UserID       string
	UserAlias    string
	FileName     string
	OriginalName string
	MimeType     string
	SizeBytes    int64
	UploadedAt   time.Time
}

// Store is the upload ledger contract.
type Store interface {
	Close() error
	RecordUpload(ctx context.Context, record UploadRecord) error
	ListUploads(ctx context.Context, userID string, limit int) ([]UploadRecord, error)
}
