package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	webstorage "github.com/firehorseusa/firehorse/internal/services/web/storage"
	_ "modernc.org/sqlite"
)

func openStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "uploads.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close: %v", err)
		}
	})
	return store, path
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open(" "); err == nil {
		t.Fatal("expected error")
	}
}

func TestOpenRunsMigrations(t *testing.T) {
	_, path := openStore(t)

	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer func() {
		_ = sqlDB.Close()
	}()

	var name string
	if err := sqlDB.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name = 'uploads'").Scan(&name); err != nil {
		t.Fatalf("uploads table missing: %v", err)
	}
}

func TestOpenTwiceKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "uploads.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := store.RecordUpload(context.Background(), webstorage.UploadRecord{ID: "u1", UserID: "42", FileName: "a.png"}); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() {
		_ = reopened.Close()
	}()
	records, err := reopened.ListUploads(context.Background(), "42", 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
}

func TestRecordAndListUploads(t *testing.T) {
	store, _ := openStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, name := range []string{"first.png", "second.jpg", "third.gif"} {
		err := store.RecordUpload(ctx, webstorage.UploadRecord{
			ID:           name,
			UserID:       "42",
			UserAlias:    "BOBBYT",
			FileName:     name,
			OriginalName: "orig-" + name,
			MimeType:     "image/png",
			SizeBytes:    int64(100 * (i + 1)),
			UploadedAt:   base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("record %s: %v", name, err)
		}
	}
	if err := store.RecordUpload(ctx, webstorage.UploadRecord{ID: "other", UserID: "7", FileName: "x.png"}); err != nil {
		t.Fatalf("record other: %v", err)
	}

	records, err := store.ListUploads(ctx, "42", 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
	if records[0].FileName != "third.gif" || records[1].FileName != "second.jpg" {
		t.Fatalf("order = %q, %q; want newest first", records[0].FileName, records[1].FileName)
	}
	got := records[0]
	if got.UserAlias != "BOBBYT" || got.OriginalName != "orig-third.gif" || got.SizeBytes != 300 {
		t.Fatalf("record = %+v", got)
	}
	if !got.UploadedAt.Equal(base.Add(2 * time.Minute)) {
		t.Fatalf("uploaded at = %v", got.UploadedAt)
	}
}

func TestRecordUploadValidates(t *testing.T) {
	store, _ := openStore(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		record webstorage.UploadRecord
	}{
		{name: "missing id", record: webstorage.UploadRecord{UserID: "42", FileName: "a.png"}},
		{name: "missing user", record: webstorage.UploadRecord{ID: "a", FileName: "a.png"}},
		{name: "missing file", record: webstorage.UploadRecord{ID: "a", UserID: "42"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := store.RecordUpload(ctx, tc.record); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestRecordUploadRejectsDuplicateID(t *testing.T) {
	store, _ := openStore(t)
	ctx := context.Background()
	record := webstorage.UploadRecord{ID: "dup", UserID: "42", FileName: "a.png"}
	if err := store.RecordUpload(ctx, record); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := store.RecordUpload(ctx, record); err == nil {
		t.Fatal("expected duplicate id error")
	}
}

func TestNilStore(t *testing.T) {
	var store *Store
	if err := store.Close(); err != nil {
		t.Fatalf("Close() = %v", err)
	}
	if err := store.RecordUpload(context.Background(), webstorage.UploadRecord{}); err == nil {
		t.Fatal("expected error from nil store")
	}
	if _, err := store.ListUploads(context.Background(), "42", 1); err == nil {
		t.Fatal("expected error from nil store")
	}
}
