package http

import (
	"net/http"

	"github.com/mauv0809/league-scoreboard/internal/auth"
	"github.com/mauv0809/league-scoreboard/internal/config"
	"github.com/mauv0809/league-scoreboard/internal/league"
	"github.com/mauv0809/league-scoreboard/internal/metrics"
	"github.com/mauv0809/league-scoreboard/internal/notifier"
	"github.com/mauv0809/league-scoreboard/internal/processor"
	"github.com/mauv0809/league-scoreboard/internal/pubsub"
)

func NewServer(repo *league.Repository, verifier auth.Verifier, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, notifier notifier.Notifier, processor *processor.Processor, pubsub pubsub.PubSubClient) *Server {
	server := &Server{
		Repo:           repo,
		Verifier:       verifier,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Notifier:       notifier,
		Processor:      processor,
		Router:         http.NewServeMux(),
		pubsub:         pubsub,
	}

	server.routes()
	server.handler = Chain(server.Router, loggingMiddleware, securityHeadersMiddleware, corsMiddleware)
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// Mutations additionally go through the admin gate.
	admin := s.requireAdmin
	s.Router.Handle("GET /metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", s.HealthCheckHandler())

	s.Router.Handle("GET /api/state", s.StateHandler())
	s.Router.Handle("GET /api/standings", s.StandingsHandler())
	s.Router.Handle("POST /api/team", Chain(s.CreateTeamHandler(), admin))
	s.Router.Handle("PUT /api/team/rename", Chain(s.RenameTeamHandler(), admin))
	s.Router.Handle("DELETE /api/team", Chain(s.DeleteTeamHandler(), admin))
	s.Router.Handle("POST /api/game", Chain(s.CreateGameHandler(), admin))
	s.Router.Handle("PUT /api/game/{id}", Chain(s.UpdateGameHandler(), admin))
	s.Router.Handle("DELETE /api/game/{id}", Chain(s.DeleteGameHandler(), admin))
	s.Router.Handle("GET /api/", s.NotFoundHandler())

	s.Router.Handle("POST /pubsub/game-recorded", Chain(s.GameRecordedHandler(), paramsMiddleware))
	if s.Cfg.Slack.SigningSecret != "" {
		s.Router.Handle("POST /slack/command/standings", Chain(s.StandingsCommandHandler(), verifySlackRequest(s.Cfg.Slack.SigningSecret)))
	}

	s.Router.Handle("GET /", s.StaticHandler())
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// Wait blocks until every change event queued by a handler has been published.
func (s *Server) Wait() {
	s.events.Wait()
}

// Close stops queueing change events and waits for the queued ones. Handlers
// still running afterwards only log the events they drop.
func (s *Server) Close() {
	s.eventsMu.Lock()
	s.closed = true
	s.eventsMu.Unlock()
	s.events.Wait()
}
