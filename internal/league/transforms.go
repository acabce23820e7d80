package league

import "slices"

// The functions in this file are the whole of the league's write logic. Each
// takes the previous document and returns the next one without touching the
// input or doing any I/O.

// CreateTeam appends name to the team set.
func CreateTeam(s State, name string) (State, error) {
	if name == "" {
		return s, NewValidationError("name required")
	}
	if s.HasTeam(name) {
		return s, NewConflictError("team exists")
	}
	next := s.Clone()
	next.Teams = append(next.Teams, name)
	return next, nil
}

// RenameTeam replaces oldName in place and rewrites every game that references it.
func RenameTeam(s State, oldName, newName string) (State, error) {
	idx := slices.Index(s.Teams, oldName)
	if idx == -1 {
		return s, NewNotFoundError("old team not found")
	}
	if newName == "" {
		return s, NewValidationError("newName required")
	}
	if s.HasTeam(newName) {
		return s, NewConflictError("new name exists")
	}
	next := s.Clone()
	next.Teams[idx] = newName
	for i, g := range next.Games {
		if g.Home == oldName {
			next.Games[i].Home = newName
		}
		if g.Away == oldName {
			next.Games[i].Away = newName
		}
	}
	return next, nil
}

// DeleteTeam removes every occurrence of name. Games that reference the team
// are left alone.
func DeleteTeam(s State, name string) State {
	next := s.Clone()
	next.Teams = slices.DeleteFunc(next.Teams, func(t string) bool { return t == name })
	return next
}

// ValidateNewGame checks the rules a game must satisfy to be recorded.
func ValidateNewGame(in GameInput) error {
	if in.Home == "" || in.Away == "" {
		return NewValidationError("home & away required")
	}
	if in.Home == in.Away {
		return NewValidationError("home and away must differ")
	}
	return validateScores(in)
}

// validateScores is shared by create and update. Update deliberately does not
// check home and away.
func validateScores(in GameInput) error {
	if !in.HomeScore.Valid || !in.AwayScore.Valid {
		return NewValidationError("scores must be numbers")
	}
	if in.HomeScore.Value == in.AwayScore.Value {
		return NewValidationError("draws not allowed")
	}
	return nil
}

// RecordGame validates in and prepends it to the game list under id. An empty
// date falls back to today.
func RecordGame(s State, in GameInput, id, today string) (State, Game, error) {
	if err := ValidateNewGame(in); err != nil {
		return s, Game{}, err
	}
	date := in.Date
	if date == "" {
		date = today
	}
	game := Game{
		ID:        id,
		Date:      date,
		Home:      in.Home,
		Away:      in.Away,
		HomeScore: in.HomeScore.Value,
		AwayScore: in.AwayScore.Value,
	}
	next := s.Clone()
	next.Games = append([]Game{game}, next.Games...)
	return next, game, nil
}

// UpdateGame replaces the game with the given id, keeping its position. An
// empty date keeps the stored one.
func UpdateGame(s State, id string, in GameInput) (State, Game, error) {
	existing, idx, ok := s.GameByID(id)
	if !ok {
		return s, Game{}, NewNotFoundError("game not found")
	}
	if err := validateScores(in); err != nil {
		return s, Game{}, err
	}
	date := in.Date
	if date == "" {
		date = existing.Date
	}
	game := Game{
		ID:        id,
		Date:      date,
		Home:      in.Home,
		Away:      in.Away,
		HomeScore: in.HomeScore.Value,
		AwayScore: in.AwayScore.Value,
	}
	next := s.Clone()
	next.Games[idx] = game
	return next, game, nil
}

// DeleteGame drops the game with the given id and reports how many were removed.
func DeleteGame(s State, id string) (State, int) {
	next := s.Clone()
	before := len(next.Games)
	next.Games = slices.DeleteFunc(next.Games, func(g Game) bool { return g.ID == id })
	return next, before - len(next.Games)
}
