package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	host     string
	adminKey string
)

var rootCmd = &cobra.Command{
	Use:   "league-cli",
	Short: "A CLI to interact with the league scoreboard server",
	Long: `A command-line interface for reading and administering the league
scoreboard through its REST API.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&host, "host", "http://localhost:3000", "The host address of the server")
	rootCmd.PersistentFlags().StringVar(&adminKey, "key", os.Getenv("ADMIN_KEY"), "Admin key for mutating commands (defaults to $ADMIN_KEY)")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Whoops. There was an error while executing your command '%s'\n", err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
