package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var gameDate string

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(stateCmd)
	rootCmd.AddCommand(standingsCmd)

	teamCmd.AddCommand(teamAddCmd, teamRenameCmd, teamDeleteCmd)
	rootCmd.AddCommand(teamCmd)

	gameAddCmd.Flags().StringVar(&gameDate, "date", "", "Game date (YYYY-MM-DD), defaults to today")
	gameUpdateCmd.Flags().StringVar(&gameDate, "date", "", "Game date (YYYY-MM-DD), defaults to the current date of the game")
	gameCmd.AddCommand(gameAddCmd, gameUpdateCmd, gameDeleteCmd)
	rootCmd.AddCommand(gameCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Print the full league document",
	RunE: func(cmd *cobra.Command, args []string) error {
		body, err := performRequest(http.MethodGet, "/api/state", nil, false)
		if err != nil {
			return err
		}
		var state struct {
			Teams     []string          `json:"teams"`
			Games     []json.RawMessage `json:"games"`
			UpdatedAt *time.Time        `json:"updatedAt"`
		}
		if err := json.Unmarshal(body, &state); err != nil {
			return fmt.Errorf("failed to decode state: %w", err)
		}
		fmt.Println(prettyJSON(body))
		fmt.Printf("%d teams, %d games, %s\n", len(state.Teams), len(state.Games), describeUpdatedAt(state.UpdatedAt))
		return nil
	},
}

var standingsCmd = &cobra.Command{
	Use:   "standings",
	Short: "Print the league table",
	RunE: func(cmd *cobra.Command, args []string) error {
		body, err := performRequest(http.MethodGet, "/api/standings", nil, false)
		if err != nil {
			return err
		}
		var resp standingsResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return fmt.Errorf("failed to decode standings: %w", err)
		}
		fmt.Print(formatStandings(resp))
		return nil
	},
}

var teamCmd = &cobra.Command{
	Use:   "team",
	Short: "Manage teams",
}

var teamAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a team",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return printMutation(http.MethodPost, "/api/team", map[string]string{"name": args[0]})
	},
}

var teamRenameCmd = &cobra.Command{
	Use:   "rename <old-name> <new-name>",
	Short: "Rename a team and every game that references it",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return printMutation(http.MethodPut, "/api/team/rename", map[string]string{"oldName": args[0], "newName": args[1]})
	},
}

var teamDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a team (its games are kept)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return printMutation(http.MethodDelete, "/api/team", map[string]string{"name": args[0]})
	},
}

var gameCmd = &cobra.Command{
	Use:   "game",
	Short: "Manage games",
}

var gameAddCmd = &cobra.Command{
	Use:   "add <home> <away> <home-score> <away-score>",
	Short: "Record a game",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := gameInputFromArgs(args)
		if err != nil {
			return err
		}
		return printMutation(http.MethodPost, "/api/game", in)
	},
}

var gameUpdateCmd = &cobra.Command{
	Use:   "update <id> <home> <away> <home-score> <away-score>",
	Short: "Replace a recorded game",
	Args:  cobra.ExactArgs(5),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := gameInputFromArgs(args[1:])
		if err != nil {
			return err
		}
		return printMutation(http.MethodPut, "/api/game/"+url.PathEscape(args[0]), in)
	},
}

var gameDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a game",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return printMutation(http.MethodDelete, "/api/game/"+url.PathEscape(args[0]), nil)
	},
}

type gameInput struct {
	Date      string  `json:"date,omitempty"`
	Home      string  `json:"home"`
	Away      string  `json:"away"`
	HomeScore float64 `json:"homeScore"`
	AwayScore float64 `json:"awayScore"`
}

type standingsResponse struct {
	Standings []struct {
		Team     string  `json:"team"`
		Played   int     `json:"played"`
		Wins     int     `json:"wins"`
		Losses   int     `json:"losses"`
		Points   float64 `json:"points"`
		Scored   float64 `json:"scored"`
		Conceded float64 `json:"conceded"`
	} `json:"standings"`
	PointRules struct {
		Win  float64 `json:"win"`
		Loss float64 `json:"loss"`
	} `json:"pointRules"`
	UpdatedAt *time.Time `json:"updatedAt"`
}

func gameInputFromArgs(args []string) (gameInput, error) {
	homeScore, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return gameInput{}, fmt.Errorf("home score %q is not a number", args[2])
	}
	awayScore, err := strconv.ParseFloat(args[3], 64)
	if err != nil {
		return gameInput{}, fmt.Errorf("away score %q is not a number", args[3])
	}
	return gameInput{
		Date:      gameDate,
		Home:      args[0],
		Away:      args[1],
		HomeScore: homeScore,
		AwayScore: awayScore,
	}, nil
}

func formatStandings(resp standingsResponse) string {
	var b strings.Builder
	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "\tTEAM\tP\tW\tL\tPTS\tDIFF")
	for i, st := range resp.Standings {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%s\t%+g\n",
			humanize.Ordinal(i+1),
			st.Team,
			st.Played,
			st.Wins,
			st.Losses,
			humanize.Ftoa(st.Points),
			st.Scored-st.Conceded,
		)
	}
	tw.Flush()
	fmt.Fprintf(&b, "Win %s pts, loss %s pts. %s\n",
		humanize.Ftoa(resp.PointRules.Win),
		humanize.Ftoa(resp.PointRules.Loss),
		describeUpdatedAt(resp.UpdatedAt),
	)
	return b.String()
}

func describeUpdatedAt(t *time.Time) string {
	if t == nil {
		return "never updated"
	}
	return "updated " + humanize.Time(*t)
}

func printMutation(method, endpoint string, payload any) error {
	body, err := performRequest(method, endpoint, payload, true)
	if err != nil {
		return err
	}
	fmt.Println(prettyJSON(body))
	return nil
}

// performRequest sends a request to the server and returns the body of a
// successful response. Error responses are returned as errors carrying the
// server's message.
func performRequest(method, endpoint string, payload any, admin bool) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, host+endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if admin {
		if adminKey == "" {
			return nil, fmt.Errorf("an admin key is required: pass --key or set ADMIN_KEY")
		}
		req.Header.Set("X-Admin-Key", adminKey)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode >= 300 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			return nil, fmt.Errorf("%s (status %d)", apiErr.Error, resp.StatusCode)
		}
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return body, nil
}

func performGetRequest(endpoint string) error {
	target := host + endpoint
	fmt.Printf("Making request to %s\n", target)

	resp, err := http.Get(target)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}

func prettyJSON(body []byte) string {
	var out bytes.Buffer
	if err := json.Indent(&out, body, "", "  "); err != nil {
		return string(body)
	}
	return out.String()
}
