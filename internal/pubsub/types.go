package pubsub

import (
	"time"

	"cloud.google.com/go/pubsub"
)

type client struct {
	client   *pubsub.Client
	timeout  time.Duration
	teardown func()
}

// EventType represents the type of event/message sent via pubsub. Each event
// type is published to the topic of the same name.
type EventType string

const (
	EventTeamCreated  EventType = "team-created"
	EventTeamRenamed  EventType = "team-renamed"
	EventTeamDeleted  EventType = "team-deleted"
	EventGameRecorded EventType = "game-recorded"
	EventGameUpdated  EventType = "game-updated"
	EventGameDeleted  EventType = "game-deleted"
)

// TeamEvent is the payload of the team-* events. PreviousName is only set on renames.
type TeamEvent struct {
	Name         string   `msgpack:"name"`
	PreviousName string   `msgpack:"previousName,omitempty"`
	Teams        []string `msgpack:"teams"`
}

// GameDeletedEvent is the payload of game-deleted. Game events carrying a
// full game use league.Game directly.
type GameDeletedEvent struct {
	ID      string `msgpack:"id"`
	Removed int    `msgpack:"removed"`
}

// PushEnvelope is the body Pub/Sub posts to a push subscription endpoint.
type PushEnvelope struct {
	Message struct {
		Data       string            `json:"data"` // base64-encoded msgpack payload
		ID         string            `json:"messageId"`
		Attributes map[string]string `json:"attributes"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}
