package register

import (
	"context"

	apperrors "github.com/firehorseusa/firehorse/internal/services/web/platform/errors"
)

type unavailableGateway struct{}

func (unavailableGateway) CreateAccount(context.Context, Payload) error {
	return apperrors.E(apperrors.KindUnavailable, "registration service is not configured")
}

func (unavailableGateway) CheckAlias(context.Context, string) (AliasAvailability, error) {
	return AliasAvailability{}, apperrors.E(apperrors.KindUnavailable, "registration service is not configured")
}
