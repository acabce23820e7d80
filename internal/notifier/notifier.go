package notifier

import "github.com/mauv0809/league-scoreboard/internal/league"

// Notifier defines a high-level interface for sending notifications about league events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For recorded games, with the table as it stands afterwards
	SendResultNotification(game league.Game, standings []league.Standing, dryRun bool) error

	// For formatting responses for slash commands
	FormatStandingsResponse(standings []league.Standing) (any, error)
}
