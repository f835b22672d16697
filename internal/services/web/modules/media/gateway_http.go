package media

import (
	"context"

	"github.com/firehorseusa/firehorse/internal/services/web/integration/cmsapi"
)

// CMSClient is the subset of the CMS client used for uploads.
type CMSClient interface {
	UploadImage(context.Context, cmsapi.ImageUpload) error
}

// NewHTTPGateway adapts the CMS client to ImageGateway. A nil client yields
// the unavailable gateway.
func NewHTTPGateway(client CMSClient) ImageGateway {
	if client == nil {
		return unavailableGateway{}
	}
	return httpGateway{client: client}
}

type httpGateway struct {
	client CMSClient
}

func (g httpGateway) UploadImage(ctx context.Context, image Image) error {
	return g.client.UploadImage(ctx, cmsapi.ImageUpload{
		UserID:        image.UserID,
		UserAlias:     image.UserAlias,
		ImageBase64:   image.Base64,
		ImageFileName: image.FileName,
		ImageMimeType: image.MimeType,
	})
}
