package http

import (
	"github.com/charmbracelet/log"
	"github.com/mauv0809/league-scoreboard/internal/pubsub"
)

// publish sends a change event in the background. Failures are logged only;
// the mutation has already been saved.
func (s *Server) publish(topic pubsub.EventType, payload any) {
	if s.pubsub == nil {
		return
	}
	s.eventsMu.Lock()
	defer s.eventsMu.Unlock()
	if s.closed {
		log.Warn("Server is closing, dropping change event", "topic", topic)
		return
	}
	s.events.Add(1)
	go func() {
		defer s.events.Done()
		if err := s.pubsub.SendMessage(topic, payload); err != nil {
			log.Warn("Failed to publish change event", "topic", topic, "error", err)
		}
	}()
}
