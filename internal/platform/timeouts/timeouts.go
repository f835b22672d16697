// Package timeouts defines the shared durations used by FireHorse HTTP
// servers and outbound calls.
package timeouts

import "time"

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long an HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second

// RemoteRequest is the default cap for one call to the CMS REST API.
const RemoteRequest = 10 * time.Second

// RegisterRedirect is the pause between a successful registration and the
// redirect to the login route.
const RegisterRedirect = 2 * time.Second

// AliasRefocus is the delay before the alias input regains focus after the
// server reports the alias as taken.
const AliasRefocus = 100 * time.Millisecond
