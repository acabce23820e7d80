package league

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/league-scoreboard/internal/metrics"
)

const dateLayout = "2006-01-02"

// Repository runs every league operation as a load, a pure transform and a
// save against the Store. Mutations are serialised within the process; nothing
// coordinates separate processes writing the same storage.
type Repository struct {
	store   Store
	metrics metrics.Metrics
	mu      sync.Mutex
	now     func() time.Time
	newID   func() string
}

// NewRepository creates a Repository backed by store.
func NewRepository(store Store, metrics metrics.Metrics) *Repository {
	return &Repository{
		store:   store,
		metrics: metrics,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// State returns the current document.
func (r *Repository) State() (State, error) {
	return r.load()
}

// Standings returns the league table for the current document.
func (r *Repository) Standings() ([]Standing, State, error) {
	state, err := r.load()
	if err != nil {
		return nil, State{}, err
	}
	return Standings(state), state, nil
}

// CreateTeam adds a team and returns the resulting team list.
func (r *Repository) CreateTeam(name string) ([]string, error) {
	next, err := r.mutate("create_team", func(s State) (State, error) {
		return CreateTeam(s, name)
	})
	if err != nil {
		return nil, err
	}
	log.Info("Team created", "team", name)
	return next.Teams, nil
}

// RenameTeam renames a team everywhere it is referenced.
func (r *Repository) RenameTeam(oldName, newName string) ([]string, error) {
	next, err := r.mutate("rename_team", func(s State) (State, error) {
		return RenameTeam(s, oldName, newName)
	})
	if err != nil {
		return nil, err
	}
	log.Info("Team renamed", "from", oldName, "to", newName)
	return next.Teams, nil
}

// DeleteTeam removes a team. It succeeds whether or not the team exists.
func (r *Repository) DeleteTeam(name string) ([]string, error) {
	next, err := r.mutate("delete_team", func(s State) (State, error) {
		return DeleteTeam(s, name), nil
	})
	if err != nil {
		return nil, err
	}
	log.Info("Team deleted", "team", name)
	return next.Teams, nil
}

// CreateGame records a new game at the top of the game list.
func (r *Repository) CreateGame(in GameInput) (Game, error) {
	var game Game
	_, err := r.mutate("create_game", func(s State) (State, error) {
		next, g, err := RecordGame(s, in, r.newID(), r.now().UTC().Format(dateLayout))
		game = g
		return next, err
	})
	if err != nil {
		return Game{}, err
	}
	log.Info("Game recorded", "gameID", game.ID, "home", game.Home, "away", game.Away)
	return game, nil
}

// UpdateGame replaces an existing game in place.
func (r *Repository) UpdateGame(id string, in GameInput) (Game, error) {
	var game Game
	_, err := r.mutate("update_game", func(s State) (State, error) {
		next, g, err := UpdateGame(s, id, in)
		game = g
		return next, err
	})
	if err != nil {
		return Game{}, err
	}
	log.Info("Game updated", "gameID", id)
	return game, nil
}

// DeleteGame removes a game and reports how many were removed. The document
// is saved even when nothing matched.
func (r *Repository) DeleteGame(id string) (int, error) {
	var removed int
	_, err := r.mutate("delete_game", func(s State) (State, error) {
		next, n := DeleteGame(s, id)
		removed = n
		return next, nil
	})
	if err != nil {
		return 0, err
	}
	log.Info("Game deleted", "gameID", id, "removed", removed)
	return removed, nil
}

func (r *Repository) load() (State, error) {
	start := time.Now()
	state, err := r.store.Load()
	r.metrics.ObserveStoreDuration("load", time.Since(start).Seconds())
	if err != nil {
		return State{}, fmt.Errorf("failed to load league state: %w", err)
	}
	return state, nil
}

func (r *Repository) mutate(operation string, apply func(State) (State, error)) (State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, err := r.load()
	if err != nil {
		r.metrics.IncMutationFailures(operation, Reason(err))
		log.Error("Failed to load state for mutation", "operation", operation, "error", err)
		return State{}, err
	}

	next, err := apply(current)
	if err != nil {
		r.metrics.IncMutationFailures(operation, Reason(err))
		log.Debug("Mutation rejected", "operation", operation, "error", err)
		return State{}, err
	}

	start := time.Now()
	err = r.store.Save(&next)
	r.metrics.ObserveStoreDuration("save", time.Since(start).Seconds())
	if err != nil {
		r.metrics.IncMutationFailures(operation, Reason(err))
		log.Error("Failed to save state", "operation", operation, "error", err)
		return State{}, fmt.Errorf("failed to save league state: %w", err)
	}

	r.metrics.IncMutations(operation)
	return next, nil
}
