// Package logging defines the structured logger used by the vibecart client.
// Stores and the transport log through the Logger interface so tests can
// capture output and the CLI can choose a handler at startup.
package logging

import "context"

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key–value pairs, e.g.:
//
//	log.Info(ctx, "cart refreshed", "items", n, "total", total)
type Logger interface {
	// Debug logs request-level traces.
	Debug(ctx context.Context, msg string, args ...any)

	// Info logs state transitions (login, logout, cart replaced).
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs recovered failures such as a rejected request.
	Warn(ctx context.Context, msg string, args ...any)

	// Error logs failures the user cannot recover from in place.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key–value pairs.
	With(args ...any) Logger
}
