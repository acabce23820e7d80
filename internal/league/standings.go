package league

import (
	"cmp"
	"slices"
)

// Standing is one row of the league table.
type Standing struct {
	Team     string  `json:"team" msgpack:"team"`
	Played   int     `json:"played" msgpack:"played"`
	Wins     int     `json:"wins" msgpack:"wins"`
	Losses   int     `json:"losses" msgpack:"losses"`
	Points   float64 `json:"points" msgpack:"points"`
	Scored   float64 `json:"scored" msgpack:"scored"`
	Conceded float64 `json:"conceded" msgpack:"conceded"`
}

// Difference is points scored minus points conceded.
func (s Standing) Difference() float64 {
	return s.Scored - s.Conceded
}

// Standings builds the league table from the recorded games using the
// document's point rules. Every team in the team set gets a row, and so does
// any name that only appears in games (e.g. a deleted team). Games that could
// not have been recorded as a result (no winner, a team playing itself, a
// blank side) are skipped.
func Standings(s State) []Standing {
	rows := make(map[string]*Standing, len(s.Teams))
	order := make([]string, 0, len(s.Teams))
	row := func(team string) *Standing {
		if r, ok := rows[team]; ok {
			return r
		}
		r := &Standing{Team: team}
		rows[team] = r
		order = append(order, team)
		return r
	}
	for _, t := range s.Teams {
		row(t)
	}

	for _, g := range s.Games {
		if g.Home == "" || g.Away == "" || g.Home == g.Away || g.HomeScore == g.AwayScore {
			continue
		}
		home, away := row(g.Home), row(g.Away)
		home.Played++
		away.Played++
		home.Scored += g.HomeScore
		home.Conceded += g.AwayScore
		away.Scored += g.AwayScore
		away.Conceded += g.HomeScore

		winner, loser := home, away
		if g.AwayScore > g.HomeScore {
			winner, loser = away, home
		}
		winner.Wins++
		winner.Points += s.PointRules.Win
		loser.Losses++
		loser.Points += s.PointRules.Loss
	}

	table := make([]Standing, 0, len(order))
	for _, team := range order {
		table = append(table, *rows[team])
	}
	slices.SortStableFunc(table, func(a, b Standing) int {
		if c := cmp.Compare(b.Points, a.Points); c != 0 {
			return c
		}
		if c := cmp.Compare(b.Wins, a.Wins); c != 0 {
			return c
		}
		if c := cmp.Compare(b.Difference(), a.Difference()); c != 0 {
			return c
		}
		return cmp.Compare(a.Team, b.Team)
	})
	return table
}
