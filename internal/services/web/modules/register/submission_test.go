package register

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestSubmitInvalidFormSendsNothing(t *testing.T) {
	t.Parallel()

	gw := &fakeGateway{}
	sub := NewSubmission(gw, 2*time.Second)
	form := validForm()
	form.Zip = "1234"

	outcome := sub.Submit(context.Background(), form)
	if outcome.State != SubmissionIdle {
		t.Fatalf("State = %q, want %q", outcome.State, SubmissionIdle)
	}
	if !outcome.Touched {
		t.Fatal("expected every field marked touched")
	}
	if got := outcome.Errors[FieldZip]; got != "Zip must be exactly 5 digits." {
		t.Fatalf("zip error = %q", got)
	}
	if outcome.Form != form {
		t.Fatalf("Form = %+v, want submitted values kept", outcome.Form)
	}
	if calls := gw.createCalls(); len(calls) != 0 {
		t.Fatalf("create calls = %d, want 0", len(calls))
	}
	if sub.State() != SubmissionIdle {
		t.Fatalf("State() = %q, want idle", sub.State())
	}
}

func TestSubmitSuccessClearsFields(t *testing.T) {
	t.Parallel()

	gw := &fakeGateway{}
	sub := NewSubmission(gw, 2*time.Second)
	form := validForm()
	form.MiddleInitial = "Q"
	form.PhoneNum = "555-123-4567"

	outcome := sub.Submit(context.Background(), form)
	if outcome.State != SubmissionSucceeded {
		t.Fatalf("State = %q, want succeeded", outcome.State)
	}
	if outcome.Message != "Account created successfully!" {
		t.Fatalf("Message = %q", outcome.Message)
	}
	if !outcome.Form.IsZero() {
		t.Fatalf("Form = %+v, want cleared", outcome.Form)
	}
	if outcome.RedirectAfter != 2*time.Second {
		t.Fatalf("RedirectAfter = %v, want 2s", outcome.RedirectAfter)
	}
	calls := gw.createCalls()
	if len(calls) != 1 {
		t.Fatalf("create calls = %d, want 1", len(calls))
	}
	want := Payload{
		FirstName:     "Ann",
		MiddleInitial: "Q",
		LastName:      "Lee",
		Email:         "ann@example.com",
		UserAlias:     "VALIDALIAS99",
		Password:      "hunter2hunter2",
		PhoneNum:      "5551234567",
	}
	if calls[0] != want {
		t.Fatalf("payload = %+v, want %+v", calls[0], want)
	}
	if sub.State() != SubmissionSucceeded {
		t.Fatalf("State() = %q, want succeeded", sub.State())
	}
}

func TestSubmitFailureDecodesRejection(t *testing.T) {
	t.Parallel()

	gw := &fakeGateway{createErr: &RejectionError{StatusCode: 400, Message: DecodeErrorBody([]byte(`{"Message":"Error","ModelState":{"Email":["Email already in use"]}}`))}}
	sub := NewSubmission(gw, time.Second)

	outcome := sub.Submit(context.Background(), validForm())
	if outcome.State != SubmissionFailed {
		t.Fatalf("State = %q, want failed", outcome.State)
	}
	if outcome.Message != "Email already in use" {
		t.Fatalf("Message = %q, want %q", outcome.Message, "Email already in use")
	}
	if outcome.Form != validForm() {
		t.Fatalf("Form = %+v, want values kept for resubmission", outcome.Form)
	}
}

func TestSubmitTransportFailureUsesFallback(t *testing.T) {
	t.Parallel()

	sub := NewSubmission(&fakeGateway{createErr: errors.New("timeout")}, time.Second)
	outcome := sub.Submit(context.Background(), validForm())
	if outcome.Message != "Registration failed. Please try again." {
		t.Fatalf("Message = %q", outcome.Message)
	}
}

func TestSubmitFailedReturnsToIdle(t *testing.T) {
	t.Parallel()

	gw := &fakeGateway{createErr: errors.New("boom")}
	sub := NewSubmission(gw, time.Second)
	sub.Submit(context.Background(), validForm())
	if sub.State() != SubmissionFailed {
		t.Fatalf("State() = %q, want failed", sub.State())
	}
	sub.Edit()
	if sub.State() != SubmissionIdle {
		t.Fatalf("State() after Edit = %q, want idle", sub.State())
	}

	gw.mu.Lock()
	gw.createErr = nil
	gw.mu.Unlock()
	sub.Submit(context.Background(), validForm())
	if sub.State() != SubmissionSucceeded {
		t.Fatalf("State() after resubmit = %q, want succeeded", sub.State())
	}
	if calls := gw.createCalls(); len(calls) != 2 {
		t.Fatalf("create calls = %d, want 2", len(calls))
	}
}

type blockingGateway struct {
	fakeGateway
	started chan struct{}
	release chan struct{}
}

func (b *blockingGateway) CreateAccount(ctx context.Context, payload Payload) error {
	close(b.started)
	<-b.release
	return b.fakeGateway.CreateAccount(ctx, payload)
}

func TestSubmitRefusesWhileInFlight(t *testing.T) {
	t.Parallel()

	gw := &blockingGateway{started: make(chan struct{}), release: make(chan struct{})}
	sub := NewSubmission(gw, time.Second)

	done := make(chan Outcome, 1)
	go func() { done <- sub.Submit(context.Background(), validForm()) }()
	<-gw.started

	if sub.State() != SubmissionSubmitting {
		t.Fatalf("State() = %q, want submitting", sub.State())
	}
	second := sub.Submit(context.Background(), validForm())
	if second.State != SubmissionSubmitting {
		t.Fatalf("second Submit() = %q, want submitting", second.State)
	}

	close(gw.release)
	if first := <-done; first.State != SubmissionSucceeded {
		t.Fatalf("first Submit() = %q, want succeeded", first.State)
	}
	if calls := gw.createCalls(); len(calls) != 1 {
		t.Fatalf("create calls = %d, want 1", len(calls))
	}
}
