package register

import (
	"context"
	"log"
	"sync"
	"time"
)

// SubmissionState is the registration form's request lifecycle.
type SubmissionState string

const (
	SubmissionIdle       SubmissionState = "idle"
	SubmissionSubmitting SubmissionState = "submitting"
	SubmissionSucceeded  SubmissionState = "succeeded"
	SubmissionFailed     SubmissionState = "failed"
)

const successMessage = "Account created successfully!"

// Outcome is the result of one submit attempt.
type Outcome struct {
	State SubmissionState
	// Form holds the values to show next; it is empty after success.
	Form    Form
	Errors  FieldErrors
	Message string
	// Touched is set when validation failed so every field shows its error.
	Touched       bool
	RedirectAfter time.Duration
}

// Submission drives one form from Idle through a single account request.
type Submission struct {
	gateway       AccountGateway
	redirectAfter time.Duration

	mu    sync.Mutex
	state SubmissionState
}

// NewSubmission returns an Idle submission.
func NewSubmission(gateway AccountGateway, redirectAfter time.Duration) *Submission {
	if gateway == nil {
		gateway = unavailableGateway{}
	}
	return &Submission{gateway: gateway, redirectAfter: redirectAfter, state: SubmissionIdle}
}

// State returns the current lifecycle state.
func (s *Submission) State() SubmissionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Edit returns a failed submission to Idle.
func (s *Submission) Edit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == SubmissionFailed {
		s.state = SubmissionIdle
	}
}

// Submit validates form and, when every field passes, sends exactly one
// account request. A submit while another is in flight is refused with
// the Submitting state and sends nothing.
func (s *Submission) Submit(ctx context.Context, form Form) Outcome {
	s.mu.Lock()
	if s.state == SubmissionSubmitting {
		s.mu.Unlock()
		return Outcome{State: SubmissionSubmitting, Form: form}
	}
	s.state = SubmissionIdle
	if errs := form.Validate(); len(errs) > 0 {
		s.mu.Unlock()
		return Outcome{State: SubmissionIdle, Form: form, Errors: errs, Touched: true}
	}
	s.state = SubmissionSubmitting
	s.mu.Unlock()

	err := s.gateway.CreateAccount(ctx, form.Payload())

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = SubmissionFailed
		log.Printf("registration failed alias=%s err=%v", form.UserAlias, err)
		return Outcome{State: SubmissionFailed, Form: form, Message: failureMessage(err)}
	}
	s.state = SubmissionSucceeded
	return Outcome{State: SubmissionSucceeded, Message: successMessage, RedirectAfter: s.redirectAfter}
}
