// Package common contains constants shared by the vibecart client packages.
package common

const (
	// AuthorizationHeaderName carries the bearer credential on outbound requests.
	AuthorizationHeaderName = "Authorization"

	// BearerPrefix precedes the credential in the Authorization header.
	BearerPrefix = "Bearer "

	// RequestIDHeaderName tags each outbound request for server-side tracing.
	RequestIDHeaderName = "X-Request-ID"

	// TokenStorageKey is the fixed key the credential is persisted under.
	TokenStorageKey = "token"
)
