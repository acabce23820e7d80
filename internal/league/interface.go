package league

// Store persists the whole league document. Implementations hold no state
// between calls: every Load reads storage and every Save writes all of it.
type Store interface {
	// Load returns the stored document, or NewState() if nothing usable is stored.
	Load() (State, error)
	// Save stamps UpdatedAt on state and writes it atomically.
	Save(state *State) error
}
