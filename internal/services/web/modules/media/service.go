package media

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/firehorseusa/firehorse/internal/services/web/identity"
	"github.com/firehorseusa/firehorse/internal/services/web/storage"
	"github.com/google/uuid"
)

// DefaultMaxBytes caps one uploaded image.
const DefaultMaxBytes int64 = 10 << 20

const recentLimit = 10

var (
	now         = time.Now
	newUploadID = uuid.New
)

// Image is the upload body sent to the CMS.
type Image struct {
	UserID    int64
	UserAlias string
	Base64    string
	FileName  string
	MimeType  string
}

// ImageGateway sends images to the CMS.
type ImageGateway interface {
	UploadImage(context.Context, Image) error
}

// Ledger records accepted uploads. It is optional.
type Ledger interface {
	RecordUpload(context.Context, storage.UploadRecord) error
	ListUploads(context.Context, string, int) ([]storage.UploadRecord, error)
}

// File is one image selected by the user.
type File struct {
	Name     string
	MimeType string
	Data     []byte
}

var errInvalidUserID = errors.New("user id is not numeric")

type service struct {
	gateway ImageGateway
	ledger  Ledger
}

func newService(gateway ImageGateway, ledger Ledger) service {
	if gateway == nil {
		gateway = unavailableGateway{}
	}
	return service{gateway: gateway, ledger: ledger}
}

// upload sends file on behalf of id and records it when a ledger is set.
// It returns the stored file name.
func (s service) upload(ctx context.Context, id identity.Identity, file File) (string, error) {
	userID, err := strconv.ParseInt(strings.TrimSpace(id.UserID), 10, 64)
	if err != nil {
		return "", fmt.Errorf("%w: %q", errInvalidUserID, id.UserID)
	}
	uploadID := newUploadID()
	at := now()
	name := UniqueFilename(file.Name, at, uploadID)

	err = s.gateway.UploadImage(ctx, Image{
		UserID:    userID,
		UserAlias: id.UserAlias,
		Base64:    base64.StdEncoding.EncodeToString(file.Data),
		FileName:  name,
		MimeType:  file.MimeType,
	})
	if err != nil {
		return "", err
	}

	if s.ledger != nil {
		record := storage.UploadRecord{
			ID:           uploadID.String(),
			UserID:       strings.TrimSpace(id.UserID),
			UserAlias:    id.UserAlias,
			FileName:     name,
			OriginalName: file.Name,
			MimeType:     file.MimeType,
			SizeBytes:    int64(len(file.Data)),
			UploadedAt:   at.UTC(),
		}
		if err := s.ledger.RecordUpload(ctx, record); err != nil {
			log.Printf("upload ledger record file=%s err=%v", name, err)
		}
	}
	return name, nil
}

// recent lists the user's latest uploads; ledger failures yield none.
func (s service) recent(ctx context.Context, id identity.Identity) []storage.UploadRecord {
	if s.ledger == nil || !id.LoggedIn() {
		return nil
	}
	records, err := s.ledger.ListUploads(ctx, id.UserID, recentLimit)
	if err != nil {
		log.Printf("upload ledger list user_id=%s err=%v", id.UserID, err)
		return nil
	}
	return records
}
