package register

import (
	"context"
	"errors"
	"fmt"
)

// AliasAvailability is the remote answer for one alias.
type AliasAvailability struct {
	OK      bool
	Exists  bool
	Message string
}

// AccountGateway creates accounts and checks alias availability.
type AccountGateway interface {
	CreateAccount(context.Context, Payload) error
	CheckAlias(context.Context, string) (AliasAvailability, error)
}

// RejectionError reports a registration the remote service refused. Message
// is already decoded from the response body.
type RejectionError struct {
	StatusCode int
	Message    string
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("registration rejected with status %d: %s", e.StatusCode, e.Message)
}

// failureMessage resolves the user-visible text for a failed submission.
func failureMessage(err error) string {
	var rejected *RejectionError
	if errors.As(err, &rejected) && rejected.Message != "" {
		return rejected.Message
	}
	return failureFallback
}

type service struct {
	gateway AccountGateway
	forms   *formStates
}

func newService(gateway AccountGateway, forms *formStates) service {
	if gateway == nil {
		gateway = unavailableGateway{}
	}
	return service{gateway: gateway, forms: forms}
}
