package register

import (
	"context"
	"sync"
)

// fakeGateway implements AccountGateway for tests with configurable return
// values and call tracking.
type fakeGateway struct {
	mu           sync.Mutex
	createErr    error
	availability AliasAvailability
	checkErr     error
	payloads     []Payload
	aliases      []string
	// checkHook runs inside CheckAlias before it returns.
	checkHook func(alias string)
}

func (f *fakeGateway) CreateAccount(_ context.Context, payload Payload) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payloads = append(f.payloads, payload)
	return f.createErr
}

func (f *fakeGateway) CheckAlias(_ context.Context, alias string) (AliasAvailability, error) {
	f.mu.Lock()
	f.aliases = append(f.aliases, alias)
	hook := f.checkHook
	availability, err := f.availability, f.checkErr
	f.mu.Unlock()
	if hook != nil {
		hook(alias)
	}
	return availability, err
}

func (f *fakeGateway) createCalls() []Payload {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Payload(nil), f.payloads...)
}

func (f *fakeGateway) checkCalls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.aliases...)
}

func validForm() Form {
	return Form{
		FirstName: "Ann",
		LastName:  "Lee",
		Email:     "ann@example.com",
		UserAlias: "VALIDALIAS99",
		Password:  "hunter2hunter2",
	}
}
