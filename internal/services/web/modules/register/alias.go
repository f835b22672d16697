package register

import (
	"context"
	"sync"
	"time"
)

// AliasState is the availability indicator shown next to the alias field.
type AliasState string

const (
	AliasUnchecked   AliasState = "unchecked"
	AliasChecking    AliasState = "checking"
	AliasAvailable   AliasState = "available"
	AliasTaken       AliasState = "taken"
	AliasCheckFailed AliasState = "failed"
)

const aliasCheckFailedMessage = "Unable to check alias availability. Please try again."

// minCheckableAlias is the shortest alias worth asking the server about.
const minCheckableAlias = 6

// AliasCheckResult is the checker state after a blur or edit.
type AliasCheckResult struct {
	State   AliasState
	Message string
	// RefocusAfter is set when the alias is taken so the page returns focus
	// to the field.
	RefocusAfter time.Duration
}

// AliasChecker tracks availability for one form's alias field. Each check
// takes a ticket from a monotonically increasing sequence; a response is
// applied only while its ticket is still the latest.
type AliasChecker struct {
	gateway AccountGateway
	refocus time.Duration

	mu     sync.Mutex
	seq    uint64
	alias  string
	result AliasCheckResult
}

// NewAliasChecker returns a checker in the Unchecked state.
func NewAliasChecker(gateway AccountGateway, refocus time.Duration) *AliasChecker {
	if gateway == nil {
		gateway = unavailableGateway{}
	}
	return &AliasChecker{
		gateway: gateway,
		refocus: refocus,
		result:  AliasCheckResult{State: AliasUnchecked},
	}
}

// Result returns the current state.
func (c *AliasChecker) Result() AliasCheckResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result
}

// Alias returns the alias the current result belongs to.
func (c *AliasChecker) Alias() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.alias
}

// Edit clears any shown result and invalidates in-flight checks.
func (c *AliasChecker) Edit() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	c.alias = ""
	c.result = AliasCheckResult{State: AliasUnchecked}
}

// Blur checks alias when it is long enough. Short or empty aliases reset
// the state without a request. The bool is false when a newer check or
// edit superseded this one; the returned result is then the current state.
func (c *AliasChecker) Blur(ctx context.Context, alias string) (AliasCheckResult, bool) {
	c.mu.Lock()
	c.seq++
	ticket := c.seq
	c.alias = alias
	if alias == "" || textLength(alias) < minCheckableAlias {
		c.result = AliasCheckResult{State: AliasUnchecked}
		result := c.result
		c.mu.Unlock()
		return result, true
	}
	c.result = AliasCheckResult{State: AliasChecking}
	c.mu.Unlock()

	availability, err := c.gateway.CheckAlias(ctx, alias)

	c.mu.Lock()
	defer c.mu.Unlock()
	if ticket != c.seq {
		return c.result, false
	}
	c.result = resolveAlias(availability, err, c.refocus)
	return c.result, true
}

func resolveAlias(availability AliasAvailability, err error, refocus time.Duration) AliasCheckResult {
	switch {
	case err != nil:
		return AliasCheckResult{State: AliasCheckFailed, Message: aliasCheckFailedMessage}
	case availability.Exists:
		return AliasCheckResult{State: AliasTaken, Message: availability.Message, RefocusAfter: refocus}
	case availability.OK:
		return AliasCheckResult{State: AliasAvailable, Message: availability.Message}
	default:
		return AliasCheckResult{State: AliasUnchecked}
	}
}
