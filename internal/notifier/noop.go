package notifier

import (
	"errors"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/league-scoreboard/internal/league"
)

// Noop logs notifications instead of delivering them. It is used when no
// provider is configured.
type Noop struct{}

func NewNoop() *Noop {
	return &Noop{}
}

func (Noop) SendResultNotification(game league.Game, standings []league.Standing, dryRun bool) error {
	log.Info("Notifications disabled, skipping result", "gameID", game.ID, "home", game.Home, "away", game.Away)
	return nil
}

func (Noop) FormatStandingsResponse(standings []league.Standing) (any, error) {
	return nil, errors.New("notifications are disabled")
}
