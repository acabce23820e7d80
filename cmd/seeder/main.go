package main

import (
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/league-scoreboard/internal/config"
	"github.com/mauv0809/league-scoreboard/internal/league"
	"github.com/mauv0809/league-scoreboard/internal/metrics"
	"github.com/mauv0809/league-scoreboard/internal/store"
)

var sampleTeams = []string{"Falcons", "Hawks", "Eagles", "Owls", "Ravens", "Kestrels"}

func main() {
	numGames := flag.Int("games", 30, "number of random games to record")
	days := flag.Int("days", 90, "spread game dates over this many past days")
	flag.Parse()
	if err := validateFlags(*numGames, *days); err != nil {
		log.Fatal("Invalid flags", "error", err)
	}

	log.Info("Starting league seeder...")
	cfg := config.Load()

	leagueStore, teardown, err := store.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to open store: %s", err)
	}
	defer teardown()

	repo := league.NewRepository(leagueStore, metrics.NewService())
	startTime := time.Now()

	if err := seed(repo, rand.New(rand.NewSource(time.Now().UnixNano())), *numGames, *days); err != nil {
		log.Fatalf("Failed to seed league: %s", err)
	}

	log.Info("Successfully seeded league.", "backend", cfg.Store.Backend, "games", *numGames, "duration", time.Since(startTime))
}

func validateFlags(numGames, days int) error {
	if numGames < 0 {
		return fmt.Errorf("-games must not be negative, got %d", numGames)
	}
	if days < 0 {
		return fmt.Errorf("-days must not be negative, got %d", days)
	}
	return nil
}

// seed ensures the sample teams exist and records numGames random results
// between them. Teams that already exist are kept.
func seed(repo *league.Repository, rng *rand.Rand, numGames, days int) error {
	for _, team := range sampleTeams {
		if _, err := repo.CreateTeam(team); err != nil && !errors.Is(err, league.ErrConflict) {
			return err
		}
	}
	log.Info("Ensured sample teams exist.", "teams", len(sampleTeams))

	for i := 0; i < numGames; i++ {
		home := rng.Intn(len(sampleTeams))
		away := (home + 1 + rng.Intn(len(sampleTeams)-1)) % len(sampleTeams)
		homeScore := rng.Intn(6)
		awayScore := rng.Intn(6)
		if homeScore == awayScore {
			homeScore++
		}
		date := time.Now().AddDate(0, 0, -rng.Intn(days+1)).UTC().Format("2006-01-02")

		_, err := repo.CreateGame(league.GameInput{
			Date:      date,
			Home:      sampleTeams[home],
			Away:      sampleTeams[away],
			HomeScore: league.NewScore(float64(homeScore)),
			AwayScore: league.NewScore(float64(awayScore)),
		})
		if err != nil {
			return err
		}
	}
	return nil
}
