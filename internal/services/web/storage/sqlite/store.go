package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/firehorseusa/firehorse/internal/platform/storage/sqlitemigrate"
	webstorage "github.com/firehorseusa/firehorse/internal/services/web/storage"
	"github.com/firehorseusa/firehorse/internal/services/web/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

const defaultListLimit = 20

// Store provides SQLite-backed persistence for the upload ledger.
type Store struct {
	sqlDB *sql.DB
}

// Open opens and migrates an upload ledger SQLite store.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("storage path is required")
	}

	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.Apply(context.Background(), sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close releases the underlying SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// RecordUpload appends one accepted upload.
func (s *Store) RecordUpload(ctx context.Context, record webstorage.UploadRecord) error {
	if s == nil || s.sqlDB == nil {
		return errors.New("storage is not configured")
	}
	record.ID = strings.TrimSpace(record.ID)
	if record.ID == "" {
		return errors.New("upload id is required")
	}
	record.UserID = strings.TrimSpace(record.UserID)
	if record.UserID == "" {
		return errors.New("user id is required")
	}
	if strings.TrimSpace(record.FileName) == "" {
		return errors.New("file name is required")
	}
	if record.UploadedAt.IsZero() {
		record.UploadedAt = time.Now().UTC()
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO uploads (
		    id, user_id, user_alias, file_name, original_name, mime_type, size_bytes, uploaded_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.UserID,
		strings.TrimSpace(record.UserAlias),
		record.FileName,
		record.OriginalName,
		record.MimeType,
		record.SizeBytes,
		timeToUnixMillis(record.UploadedAt),
	)
	if err != nil {
		return fmt.Errorf("record upload: %w", err)
	}
	return nil
}

// ListUploads returns a user's uploads, newest first.
func (s *Store) ListUploads(ctx context.Context, userID string, limit int) ([]webstorage.UploadRecord, error) {
	if s == nil || s.sqlDB == nil {
		return nil, errors.New("storage is not configured")
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, errors.New("user id is required")
	}
	if limit <= 0 {
		limit = defaultListLimit
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, user_id, user_alias, file_name, original_name, mime_type, size_bytes, uploaded_at
		 FROM uploads
		 WHERE user_id = ?
		 ORDER BY uploaded_at DESC, id DESC
		 LIMIT ?`,
		userID,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list uploads: %w", err)
	}
	defer rows.Close()

	var records []webstorage.UploadRecord
	for rows.Next() {
		var record webstorage.UploadRecord
		var uploadedAt int64
		if err := rows.Scan(
			&record.ID,
			&record.UserID,
			&record.UserAlias,
			&record.FileName,
			&record.OriginalName,
			&record.MimeType,
			&record.SizeBytes,
			&uploadedAt,
		); err != nil {
			return nil, fmt.Errorf("scan upload: %w", err)
		}
		record.UploadedAt = unixMillisToTime(uploadedAt)
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate uploads: %w", err)
	}
	return records, nil
}

func timeToUnixMillis(value time.Time) int64 {
	if value.IsZero() {
		return 0
	}
	return value.UTC().UnixMilli()
}

func unixMillisToTime(value int64) time.Time {
	if value <= 0 {
		return time.Time{}
	}
	return time.UnixMilli(value).UTC()
}

var _ webstorage.Store = (*Store)(nil)
