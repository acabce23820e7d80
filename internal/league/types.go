package league

import (
	"slices"
	"time"
)

// Game is a single recorded result between two teams.
type Game struct {
	ID        string  `json:"id" msgpack:"id"`
	Date      string  `json:"date" msgpack:"date"`
	Home      string  `json:"home" msgpack:"home"`
	Away      string  `json:"away" msgpack:"away"`
	HomeScore float64 `json:"homeScore" msgpack:"homeScore"`
	AwayScore float64 `json:"awayScore" msgpack:"awayScore"`
}

// PointRules maps a game outcome to the points it is worth in the standings.
type PointRules struct {
	Win  float64 `json:"win" msgpack:"win"`
	Loss float64 `json:"loss" msgpack:"loss"`
}

// DefaultPointRules are used whenever a document does not carry its own.
var DefaultPointRules = PointRules{Win: 2, Loss: 1}

// State is the whole league document. It is loaded and saved as one unit.
type State struct {
	Teams      []string   `json:"teams"`
	Games      []Game     `json:"games"`
	PointRules PointRules `json:"pointRules"`
	// UpdatedAt is nil until the document has been saved for the first time.
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// GameInput carries the client supplied fields for creating or updating a game.
type GameInput struct {
	Date      string `json:"date,omitempty"`
	Home      string `json:"home"`
	Away      string `json:"away"`
	HomeScore Score  `json:"homeScore"`
	AwayScore Score  `json:"awayScore"`
}

// NewState returns the empty document used when nothing has been persisted yet.
func NewState() State {
	return State{
		Teams:      []string{},
		Games:      []Game{},
		PointRules: DefaultPointRules,
	}
}

// Clone returns a deep copy so transforms never alias the caller's slices.
func (s State) Clone() State {
	out := s
	out.Teams = slices.Clone(s.Teams)
	out.Games = slices.Clone(s.Games)
	if out.Teams == nil {
		out.Teams = []string{}
	}
	if out.Games == nil {
		out.Games = []Game{}
	}
	if s.UpdatedAt != nil {
		ts := *s.UpdatedAt
		out.UpdatedAt = &ts
	}
	return out
}

// HasTeam reports whether name is in the team set.
func (s State) HasTeam(name string) bool {
	return slices.Contains(s.Teams, name)
}

// GameByID returns the game with the given id and its position in Games.
func (s State) GameByID(id string) (Game, int, bool) {
	idx := slices.IndexFunc(s.Games, func(g Game) bool { return g.ID == id })
	if idx == -1 {
		return Game{}, -1, false
	}
	return s.Games[idx], idx, true
}
