package store

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/league-scoreboard/internal/config"
	"github.com/mauv0809/league-scoreboard/internal/database"
	"github.com/mauv0809/league-scoreboard/internal/league"
)

// Open builds the league.Store selected by cfg.Store.Backend. The returned
// teardown releases any database connection and is never nil on success.
func Open(cfg config.Config) (league.Store, func(), error) {
	switch cfg.Store.Backend {
	case config.BackendFile, "":
		log.Info("Using file store", "path", cfg.Store.DataPath)
		return NewFileStore(cfg.Store.DataPath), func() {}, nil
	case config.BackendSQLite:
		db, teardown, err := database.InitDB(cfg.Store.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken)
		if err != nil {
			return nil, nil, err
		}
		return NewSQLStore(db, database.SQLite), teardown, nil
	case config.BackendPostgres:
		db, teardown, err := database.InitPostgres(cfg.Store.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return NewSQLStore(db, database.Postgres), teardown, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}
