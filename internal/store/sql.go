package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/league-scoreboard/internal/database"
	"github.com/mauv0809/league-scoreboard/internal/league"
)

var _ league.Store = (*SQLStore)(nil)

// documentID is the primary key of the single row holding the document.
const documentID = 1

// SQLStore keeps the league document as one row of the league_state table.
type SQLStore struct {
	db      *sql.DB
	dialect database.Dialect
	now     func() time.Time
}

// NewSQLStore creates a SQLStore on an already migrated database.
func NewSQLStore(db *sql.DB, dialect database.Dialect) *SQLStore {
	return &SQLStore{
		db:      db,
		dialect: dialect,
		now:     time.Now,
	}
}

// Load reads the document row. A missing row or malformed document yields the
// default state.
func (s *SQLStore) Load() (league.State, error) {
	var raw string
	err := s.db.QueryRow(s.rebind("SELECT document FROM league_state WHERE id = ?"), documentID).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("No league state row yet, using defaults")
			return league.NewState(), nil
		}
		return league.State{}, fmt.Errorf("failed to query league state: %w", err)
	}
	return decodeState([]byte(raw), "league_state"), nil
}

// Save stamps UpdatedAt and upserts the document in a single statement.
func (s *SQLStore) Save(state *league.State) error {
	stamp(state, s.now())
	data, err := encodeState(state)
	if err != nil {
		return fmt.Errorf("failed to encode league state: %w", err)
	}
	_, err = s.db.Exec(s.rebind(`
		INSERT INTO league_state (id, document, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			document = excluded.document,
			updated_at = excluded.updated_at;
	`), documentID, string(data), state.UpdatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to upsert league state: %w", err)
	}
	return nil
}

// rebind rewrites ? placeholders to $n for PostgreSQL.
func (s *SQLStore) rebind(query string) string {
	if s.dialect != database.Postgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
