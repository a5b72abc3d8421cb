// Package adapter provides the transport layer for communicating with the
// library catalog backend.
//
// The primary abstraction is [Gateway], a thin REST transport that the
// resource services build their typed calls on. The package also owns error
// normalization: every failed call is converted into an [*APIError] carrying
// a single human-readable message extracted from the backend's heterogeneous
// error bodies (see normalizer.go) and mapped onto the sentinel errors in
// errors.go so that callers can branch with [errors.Is].
package adapter

import "context"

// Gateway defines protocol-level communication with the backend. It owns the
// base URL, the bearer token and the failure side effects (error toast,
// forced logout on an unauthenticated response); resource services own
// paths, query parameters and payload types.
type Gateway interface {
	// SetToken stores the bearer token attached to all subsequent requests.
	// An empty token clears it.
	SetToken(token string)

	// Token returns the currently stored bearer token, or an empty string.
	Token() string

	// Get issues a GET request. Query values that are empty strings are
	// omitted. When out is non-nil the response body is decoded into it.
	Get(ctx context.Context, path string, query map[string]string, out any) error

	// Post issues a POST request with a JSON body. body and out may be nil.
	Post(ctx context.Context, path string, body, out any) error

	// Put issues a PUT request with a JSON body.
	Put(ctx context.Context, path string, body, out any) error

	// Delete issues a DELETE request.
	Delete(ctx context.Context, path string) error

	// SetHooks installs the failure side-effect callbacks: onError receives
	// the normalized message of every failed non-login call exactly once;
	// onUnauthenticated fires when a non-login call comes back 401, after
	// the token has already been cleared. Either callback may be nil.
	SetHooks(onError func(message string), onUnauthenticated func())
}
