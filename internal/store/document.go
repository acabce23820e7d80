package store

import (
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/league-scoreboard/internal/league"
)

// document mirrors league.State with optional fields so that partially written
// or hand-edited documents can be completed with defaults.
type document struct {
	Teams      []string           `json:"teams"`
	Games      []league.Game      `json:"games"`
	PointRules *league.PointRules `json:"pointRules"`
	UpdatedAt  *time.Time         `json:"updatedAt"`
}

// decodeState parses a stored document. Malformed content yields the default
// state instead of an error.
func decodeState(data []byte, source string) league.State {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		log.Warn("Stored league state is malformed, falling back to defaults", "source", source, "error", err)
		return league.NewState()
	}
	state := league.NewState()
	if doc.Teams != nil {
		state.Teams = doc.Teams
	}
	if doc.Games != nil {
		state.Games = doc.Games
	}
	if doc.PointRules != nil {
		state.PointRules = *doc.PointRules
	}
	state.UpdatedAt = doc.UpdatedAt
	return state
}

// stamp sets UpdatedAt to now, moved forward if needed so that it always
// increases across saves of the same document.
func stamp(state *league.State, now time.Time) {
	ts := now.UTC().Truncate(time.Millisecond)
	if state.UpdatedAt != nil && !ts.After(*state.UpdatedAt) {
		ts = state.UpdatedAt.UTC().Truncate(time.Millisecond).Add(time.Millisecond)
	}
	state.UpdatedAt = &ts
}

func encodeState(state *league.State) ([]byte, error) {
	if state.Teams == nil {
		state.Teams = []string{}
	}
	if state.Games == nil {
		state.Games = []league.Game{}
	}
	return json.MarshalIndent(state, "", "  ")
}
