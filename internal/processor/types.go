package processor

import "time"

// Processor reacts to league events delivered through pubsub.
type Processor struct {
	store    Store
	notifier Notifier
	now      func() time.Time
}

// Outcome reports what happened to a processed event.
type Outcome string

const (
	OutcomeNotified Outcome = "notified"
	OutcomeStale    Outcome = "stale"
	OutcomeRemoved  Outcome = "removed"
)
