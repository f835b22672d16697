package media

import (
	"context"
	"sync"

	"github.com/firehorseusa/firehorse/internal/services/web/integration/cmsapi"
	"github.com/firehorseusa/firehorse/internal/services/web/storage"
)

// pngBytes is the smallest body mimetype recognizes as image/png.
var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00\x1f\x15\xc4\x89")

// fakeGateway implements ImageGateway with call tracking.
type fakeGateway struct {
	mu      sync.Mutex
	err     error
	uploads []Image
}

func (f *fakeGateway) UploadImage(_ context.Context, image Image) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploads = append(f.uploads, image)
	return f.err
}

func (f *fakeGateway) calls() []Image {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Image(nil), f.uploads...)
}

// fakeLedger implements Ledger in memory.
type fakeLedger struct {
	mu        sync.Mutex
	records   []storage.UploadRecord
	recordErr error
	listErr   error
}

func (f *fakeLedger) RecordUpload(_ context.Context, record storage.UploadRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.recordErr != nil {
		return f.recordErr
	}
	f.records = append(f.records, record)
	return nil
}

func (f *fakeLedger) ListUploads(_ context.Context, userID string, limit int) ([]storage.UploadRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []storage.UploadRecord
	for i := len(f.records) - 1; i >= 0 && len(out) < limit; i-- {
		if f.records[i].UserID == userID {
			out = append(out, f.records[i])
		}
	}
	return out, nil
}

// fakeCMSClient records upload bodies sent through the HTTP gateway.
type fakeCMSClient struct {
	err     error
	uploads []cmsapi.ImageUpload
}

func (f *fakeCMSClient) UploadImage(_ context.Context, upload cmsapi.ImageUpload) error {
	f.uploads = append(f.uploads, upload)
	return f.err
}
