package http

import (
	"net/http"
	"sync"
	"time"

	"github.com/mauv0809/league-scoreboard/internal/auth"
	"github.com/mauv0809/league-scoreboard/internal/config"
	"github.com/mauv0809/league-scoreboard/internal/league"
	"github.com/mauv0809/league-scoreboard/internal/metrics"
	"github.com/mauv0809/league-scoreboard/internal/notifier"
	"github.com/mauv0809/league-scoreboard/internal/processor"
	"github.com/mauv0809/league-scoreboard/internal/pubsub"
)

type Server struct {
	Repo           *league.Repository
	Verifier       auth.Verifier
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Notifier       notifier.Notifier
	Processor      *processor.Processor
	Router         *http.ServeMux

	pubsub  pubsub.PubSubClient
	handler http.Handler

	// eventsMu guards closed and every events.Add.
	eventsMu sync.Mutex
	closed   bool
	events   sync.WaitGroup
}

type teamRequest struct {
	Name string `json:"name"`
}

type renameTeamRequest struct {
	OldName string `json:"oldName"`
	NewName string `json:"newName"`
}

type teamsResponse struct {
	OK    bool     `json:"ok"`
	Teams []string `json:"teams"`
}

type gameResponse struct {
	OK   bool        `json:"ok"`
	Game league.Game `json:"game"`
}

type removedResponse struct {
	OK      bool `json:"ok"`
	Removed int  `json:"removed"`
}

type standingsResponse struct {
	Standings  []league.Standing `json:"standings"`
	PointRules league.PointRules `json:"pointRules"`
	UpdatedAt  *time.Time        `json:"updatedAt"`
}

type errorResponse struct {
	Error string `json:"error"`
}
