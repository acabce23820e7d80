package processor

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/league-scoreboard/internal/league"
)

// staleAfter is how old a game may be (by its date) and still be announced.
// Back-filled results are recorded silently.
const staleAfter = 24 * time.Hour

// New creates a new Processor.
func New(store Store, notifier Notifier) *Processor {
	return &Processor{
		store:    store,
		notifier: notifier,
		now:      time.Now,
	}
}

// ProcessGameRecorded announces a recorded game together with the current
// standings. Games that were deleted in the meantime or are dated more than a
// day back are skipped.
func (p *Processor) ProcessGameRecorded(game league.Game, dryRun bool) (Outcome, error) {
	log.Info("Processing recorded game", "gameID", game.ID, "home", game.Home, "away", game.Away, "dryRun", dryRun)

	standings, state, err := p.store.Standings()
	if err != nil {
		return "", fmt.Errorf("failed to load standings: %w", err)
	}

	current, _, ok := state.GameByID(game.ID)
	if !ok {
		log.Info("Game no longer exists, skipping result notification", "gameID", game.ID)
		return OutcomeRemoved, nil
	}

	if p.isStale(current) {
		log.Info("Game is too old, skipping result notification", "gameID", game.ID, "date", current.Date)
		return OutcomeStale, nil
	}

	if err := p.notifier.SendResultNotification(current, standings, dryRun); err != nil {
		log.Error("Failed to send result notification", "error", err, "gameID", game.ID)
		return "", err
	}
	log.Info("Result notification sent", "gameID", game.ID)
	return OutcomeNotified, nil
}

func (p *Processor) isStale(game league.Game) bool {
	played, err := time.Parse("2006-01-02", game.Date)
	if err != nil {
		// Free-form dates cannot be aged.
		return false
	}
	today := p.now().UTC().Truncate(24 * time.Hour)
	return today.Sub(played) > staleAfter
}
