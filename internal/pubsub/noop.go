package pubsub

import (
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Noop drops outgoing events. Incoming messages are still decoded so that push
// endpoints work without a project configured.
type Noop struct{}

func NewNoop() *Noop {
	return &Noop{}
}

func (n *Noop) SendMessage(topic EventType, data any) error {
	if _, err := msgpack.Marshal(data); err != nil {
		return err
	}
	log.Debug("Pub/Sub disabled, dropping event", "topic", topic)
	return nil
}

func (n *Noop) ProcessMessage(data []byte, returnValue any) error {
	return decode(data, returnValue)
}

func (n *Noop) Close() error {
	return nil
}
