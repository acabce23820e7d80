package notifier

import (
	"sync"

	"github.com/mauv0809/league-scoreboard/internal/league"
)

// ResultNotificationCall holds the arguments for a call to SendResultNotification.
type ResultNotificationCall struct {
	Game      league.Game
	Standings []league.Standing
	DryRun    bool
}

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	SendResultNotificationFunc func(game league.Game, standings []league.Standing, dryRun bool) error

	// Spies for format functions
	FormatStandingsResponseFunc func(standings []league.Standing) (any, error)

	// Call records
	SendResultNotificationCalls []ResultNotificationCall
	LastStandingsResponse       any
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendResultNotificationCalls = nil
	m.LastStandingsResponse = nil
}

func (m *Mock) SendResultNotification(game league.Game, standings []league.Standing, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendResultNotificationCalls = append(m.SendResultNotificationCalls, ResultNotificationCall{
		Game:      game,
		Standings: standings,
		DryRun:    dryRun,
	})
	if m.SendResultNotificationFunc != nil {
		return m.SendResultNotificationFunc(game, standings, dryRun)
	}
	return nil
}

// Calls returns a copy of the recorded SendResultNotification calls.
func (m *Mock) Calls() []ResultNotificationCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ResultNotificationCall(nil), m.SendResultNotificationCalls...)
}

func (m *Mock) FormatStandingsResponse(standings []league.Standing) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatStandingsResponseFunc != nil {
		resp, err := m.FormatStandingsResponseFunc(standings)
		m.LastStandingsResponse = resp
		return resp, err
	}
	m.LastStandingsResponse = standings
	return standings, nil
}
