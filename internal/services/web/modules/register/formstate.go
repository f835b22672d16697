package register

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	formStateTTL    = 30 * time.Minute
	maxTrackedForms = 10000
)

// formState is the server-held state for one rendered registration form.
type formState struct {
	alias      *AliasChecker
	submission *Submission
	lastSeen   time.Time
}

// formStates keys alias checkers and submissions by the form id embedded
// in each rendered page. Idle entries expire after formStateTTL.
type formStates struct {
	newChecker    func() *AliasChecker
	newSubmission func() *Submission
	now           func() time.Time

	mu      sync.Mutex
	entries map[string]*formState
}

func newFormStates(gateway AccountGateway, refocus time.Duration, redirectAfter time.Duration) *formStates {
	return &formStates{
		newChecker:    func() *AliasChecker { return NewAliasChecker(gateway, refocus) },
		newSubmission: func() *Submission { return NewSubmission(gateway, redirectAfter) },
		now:           time.Now,
		entries:       map[string]*formState{},
	}
}

// newFormID returns a fresh id for a rendered form.
func newFormID() string {
	return uuid.NewString()
}

// get returns the state for id, creating it when unknown. Ids that are
// not UUIDs are replaced with a fresh one.
func (s *formStates) get(id string) (string, *formState) {
	id = strings.TrimSpace(id)
	if _, err := uuid.Parse(id); err != nil {
		id = newFormID()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.pruneLocked(now)
	state, ok := s.entries[id]
	if !ok {
		state = &formState{alias: s.newChecker(), submission: s.newSubmission()}
		s.entries[id] = state
	}
	state.lastSeen = now
	return id, state
}

// drop forgets id once its form has been completed.
func (s *formStates) drop(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
}

func (s *formStates) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *formStates) pruneLocked(now time.Time) {
	for id, state := range s.entries {
		if now.Sub(state.lastSeen) > formStateTTL {
			delete(s.entries, id)
		}
	}
	if len(s.entries) < maxTrackedForms {
		return
	}
	var oldestID string
	var oldest time.Time
	for id, state := range s.entries {
		if oldestID == "" || state.lastSeen.Before(oldest) {
			oldestID, oldest = id, state.lastSeen
		}
	}
	delete(s.entries, oldestID)
}
