package register

import (
	"context"
	"errors"

	"github.com/firehorseusa/firehorse/internal/services/web/integration/cmsapi"
)

// CMSClient is the subset of the CMS client used by registration.
type CMSClient interface {
	CreateAccount(context.Context, cmsapi.AccountRequest) error
	CheckAlias(context.Context, string) (cmsapi.AliasAvailability, error)
}

// NewHTTPGateway adapts the CMS client to AccountGateway. A nil client
// yields the unavailable gateway.
func NewHTTPGateway(client CMSClient) AccountGateway {
	if client == nil {
		return unavailableGateway{}
	}
	return httpGateway{client: client}
}

type httpGateway struct {
	client CMSClient
}

func (g httpGateway) CreateAccount(ctx context.Context, payload Payload) error {
	err := g.client.CreateAccount(ctx, cmsapi.AccountRequest{
		FirstName:     payload.FirstName,
		MiddleInitial: payload.MiddleInitial,
		LastName:      payload.LastName,
		Email:         payload.Email,
		UserAlias:     payload.UserAlias,
		Password:      payload.Password,
		Zip:           payload.Zip,
		PhoneNum:      payload.PhoneNum,
	})
	var statusErr *cmsapi.StatusError
	if errors.As(err, &statusErr) {
		return &RejectionError{StatusCode: statusErr.StatusCode, Message: DecodeErrorBody(statusErr.Body)}
	}
	return err
}

func (g httpGateway) CheckAlias(ctx context.Context, alias string) (AliasAvailability, error) {
	resp, err := g.client.CheckAlias(ctx, alias)
	if err != nil {
		return AliasAvailability{}, err
	}
	return AliasAvailability{OK: resp.OK, Exists: resp.Exists, Message: resp.Message}, nil
}
