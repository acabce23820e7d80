package processor

import (
	"github.com/mauv0809/league-scoreboard/internal/league"
	"github.com/mauv0809/league-scoreboard/internal/notifier"
)

// Store defines the league reads required by the processor.
type Store interface {
	Standings() ([]league.Standing, league.State, error)
}

// Notifier defines the notification operations required by the processor.
// This is an alias for the main notifier interface for decoupling.
type Notifier interface {
	notifier.Notifier
}
