package broadcast

import (
	"context"
	"time"
)

// Kind discriminates broadcast events.
type Kind string

const (
	// KindLogout is published when the credential has been removed.
	KindLogout Kind = "logout"
)

// Event is one broadcast message. Sender identifies the publishing process;
// Remote is set on events relayed in from another process.
type Event struct {
	Kind   Kind      `json:"kind"`
	Origin string    `json:"origin"`
	Sender string    `json:"sender"`
	At     time.Time `json:"at"`
	Remote bool      `json:"-"`
}

// Handler consumes events. It runs on the publisher's goroutine.
type Handler func(ctx context.Context, ev Event)

// Channel is the publish/subscribe surface the stores depend on.
type Channel interface {
	Publish(ctx context.Context, ev Event) error
	Subscribe(kind Kind, h Handler) (cancel func())
}
