// Package identity resolves the visitor's CMS identity from an explicitly
// passed in-memory session and, as a fallback, from the cookies written by
// the CMS login flow.
package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/firehorseusa/firehorse/internal/services/web/platform/httpx"
)

const (
	// AuthCookieName holds URL-encoded JSON carrying userId or UserId.
	AuthCookieName = "fhUserAuth"
	// AliasCookieName holds the URL-encoded user alias.
	AliasCookieName = "useralias"
)

// Identity is the resolved visitor identity. Empty fields are absent.
type Identity struct {
	UserID    string
	UserAlias string
}

// LoggedIn reports whether both identity fields resolved to non-empty values.
func (i Identity) LoggedIn() bool {
	return strings.TrimSpace(i.UserID) != "" && strings.TrimSpace(i.UserAlias) != ""
}

// Session is the in-memory identity source consulted before cookies. A
// login flow that already knows the visitor places it on the request
// context with WithSession.
type Session struct {
	UserID    string
	UserAlias string
}

type sessionKey struct{}

// WithSession stores session in ctx for Middleware to consult.
func WithSession(ctx context.Context, session Session) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, sessionKey{}, session)
}

// SessionFromContext returns the session stored by WithSession.
func SessionFromContext(ctx context.Context) Session {
	if ctx == nil {
		return Session{}
	}
	session, _ := ctx.Value(sessionKey{}).(Session)
	return session
}

// Reason classifies why a cookie could not supply an identity field.
type Reason string

const (
	ReasonMissing   Reason = "missing"
	ReasonDecode    Reason = "decode"
	ReasonMalformed Reason = "malformed"
)

// ResolutionError reports a cookie that could not supply an identity field.
type ResolutionError struct {
	Cookie string
	Reason Reason
	Err    error
}

func (e *ResolutionError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("identity cookie %s: %s", e.Cookie, e.Reason)
	}
	return fmt.Sprintf("identity cookie %s: %s: %v", e.Cookie, e.Reason, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// Resolve returns the best-effort identity for r. Each field prefers the
// session value and falls back to its cookie. Cookie failures are returned
// as *ResolutionError values (joined when both fields fail) next to the
// partial identity; they never abort the request.
func Resolve(r *http.Request, session Session) (Identity, error) {
	var errs []error
	id := Identity{
		UserID:    strings.TrimSpace(session.UserID),
		UserAlias: strings.TrimSpace(session.UserAlias),
	}
	if id.UserID == "" {
		userID, err := userIDFromCookie(r)
		if err != nil {
			errs = append(errs, err)
		}
		id.UserID = userID
	}
	if id.UserAlias == "" {
		alias, err := aliasFromCookie(r)
		if err != nil {
			errs = append(errs, err)
		}
		id.UserAlias = alias
	}
	return id, errors.Join(errs...)
}

func readCookie(r *http.Request, name string) (string, error) {
	if r == nil {
		return "", &ResolutionError{Cookie: name, Reason: ReasonMissing}
	}
	cookie, err := r.Cookie(name)
	if err != nil || strings.TrimSpace(cookie.Value) == "" {
		return "", &ResolutionError{Cookie: name, Reason: ReasonMissing}
	}
	decoded, err := url.PathUnescape(cookie.Value)
	if err != nil {
		return "", &ResolutionError{Cookie: name, Reason: ReasonDecode, Err: err}
	}
	return decoded, nil
}

func userIDFromCookie(r *http.Request) (string, error) {
	raw, err := readCookie(r, AuthCookieName)
	if err != nil {
		return "", err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return "", &ResolutionError{Cookie: AuthCookieName, Reason: ReasonMalformed, Err: err}
	}
	for _, key := range []string{"userId", "UserId"} {
		value, err := scalarString(fields[key])
		if err != nil {
			return "", &ResolutionError{Cookie: AuthCookieName, Reason: ReasonMalformed, Err: fmt.Errorf("%s: %w", key, err)}
		}
		if value != "" {
			return value, nil
		}
	}
	return "", &ResolutionError{Cookie: AuthCookieName, Reason: ReasonMissing}
}

// scalarString accepts a JSON string or number and returns its text.
func scalarString(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return strings.TrimSpace(text), nil
	}
	var number json.Number
	if err := json.Unmarshal(raw, &number); err != nil {
		return "", errors.New("user id must be a string or number")
	}
	if number.String() == "0" {
		return "", nil
	}
	return number.String(), nil
}

func aliasFromCookie(r *http.Request) (string, error) {
	raw, err := readCookie(r, AliasCookieName)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(raw), nil
}

type contextKey struct{}

// WithIdentity stores id in ctx.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the identity stored by WithIdentity.
func FromContext(ctx context.Context) Identity {
	if ctx == nil {
		return Identity{}
	}
	id, _ := ctx.Value(contextKey{}).(Identity)
	return id
}

// Middleware resolves the identity once per request, preferring the session
// on the request context, and stores it in the request context. Decode and
// malformed cookie failures are logged; absent cookies are the normal
// anonymous case and are not.
func Middleware() httpx.Middleware {
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := Resolve(r, SessionFromContext(r.Context()))
			if err != nil {
				logResolution(r, err)
			}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

func logResolution(r *http.Request, err error) {
	var joined interface{ Unwrap() []error }
	causes := []error{err}
	if errors.As(err, &joined) {
		causes = joined.Unwrap()
	}
	for _, cause := range causes {
		var resolution *ResolutionError
		if errors.As(cause, &resolution) && resolution.Reason == ReasonMissing {
			continue
		}
		log.Printf("identity resolve path=%s request_id=%s err=%v", r.URL.Path, httpx.RequestIDFrom(r), cause)
	}
}
