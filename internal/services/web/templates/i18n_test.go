package templates

import (
	"testing"

	"golang.org/x/text/message"
)

type stubLocalizer map[string]string

func (s stubLocalizer) Sprintf(key message.Reference, args ...any) string {
	if value, ok := s[key.(string)]; ok {
		return value
	}
	return key.(string)
}

func TestT_NilLocalizer(t *testing.T) {
	got := T(nil, "some.key")
	if got != "some.key" {
		t.Fatalf("T(nil, ...) = %q, want %q", got, "some.key")
	}
}

func TestT_NilLocalizerFormatsArgs(t *testing.T) {
	got := T(nil, "Signed in as %s", "BOB")
	if got != "Signed in as BOB" {
		t.Fatalf("T(nil, ...) = %q, want %q", got, "Signed in as BOB")
	}
}

func TestT_NilLocalizerNonStringKey(t *testing.T) {
	got := T(nil, 42)
	if got != "" {
		t.Fatalf("T(nil, 42) = %q, want empty", got)
	}
}
