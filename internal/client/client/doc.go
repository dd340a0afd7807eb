// Package client is the transport to the storefront REST API.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (the Client interface) covering
//     auth, products, cart and uploads.
//  2. A concrete JSON-over-HTTP implementation (HTTPClient) that decodes
//     the API envelope {success, data, message, errors}.
//
// There is no shared default Authorization header: every call that needs a
// credential takes it as an explicit token argument, and an empty token
// sends the request anonymously.
//
// # Error Handling
//
// Non-2xx responses and envelopes with success=false become *APIError,
// which carries the server message and field errors and unwraps to
// ErrUnauthorized (401), ErrForbidden (403) or ErrNotFound (404). Transport
// failures wrap ErrUnavailable. Match with errors.Is / errors.As.
//
// No request is ever retried.
package client
