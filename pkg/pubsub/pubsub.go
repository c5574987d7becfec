package pubsub

import (
	"context"
	"encoding/json"
)

// Topic names published by the reconciliation watcher.
const (
	TopicLock  = "lock"  // Lock graph reloaded (or failed to reload)
	TopicCheck = "check" // Reconciliation re-ran against the current inputs
)

// Event represents a pub/sub event
type Event struct {
	Topic   string          `json:"topic"`
	Type    string          `json:"type"` // e.g., "updated", "error"
	Data    json.RawMessage `json:"data"`
	Version int             `json:"version"` // Per-topic version for ordering
}

// Subscription represents a client subscription to a topic
type Subscription interface {
	// Topic returns the subscription topic
	Topic() string

	// Events returns a channel for receiving events
	Events() <-chan Event

	// Close closes the subscription
	Close() error
}

// Publisher manages pub/sub subscriptions and event publishing
type Publisher interface {
	// Subscribe creates a new subscription to a topic.
	// Context cancellation closes the subscription.
	Subscribe(ctx context.Context, topic string) (Subscription, error)

	// Publish sends an event to all subscribers of a topic
	Publish(topic string, eventType string, data interface{}) error

	// Close shuts down the publisher and all subscriptions
	Close() error
}

// LockStatus is the payload for TopicLock events.
type LockStatus struct {
	Modules int    `json:"modules"`
	Error   string `json:"error,omitempty"`
}

// CheckStatus is the payload for TopicCheck events.
type CheckStatus struct {
	Unsatisfied int  `json:"unsatisfied"`
	Superfluous int  `json:"superfluous"`
	OK          bool `json:"ok"`
}
