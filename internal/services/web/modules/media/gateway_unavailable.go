package media

import (
	"context"

	apperrors "github.com/firehorseusa/firehorse/internal/services/web/platform/errors"
)

type unavailableGateway struct{}

func (unavailableGateway) UploadImage(context.Context, Image) error {
	return apperrors.E(apperrors.KindUnavailable, "media service is not configured")
}
