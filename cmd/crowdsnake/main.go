// crowdsnake runs one shared snake that everybody steers by voting.
//
// Usage:
//
//	crowdsnake serve         - Run the game with the HTTP and SSH front ends
//	crowdsnake play          - Run the game and watch it in this terminal
//	crowdsnake history       - Show finished sessions
//
// Global flags:
//
//	--config <path>     - Custom YAML config
//	--seed <value>      - RNG seed for reproducible sessions
//	--db <path>         - Sessions database (default: ~/.crowdsnake/sessions.db)
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig   string
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "crowdsnake",
	Short: "crowdsnake - one snake, steered by everyone",
	Long: `crowdsnake runs a single snake on a wrapping grid. Every tick the
votes cast since the previous tick are sampled and the most common
direction wins. When the snake dies a new one hatches.

Available commands:
  serve    - Run the game with the HTTP and SSH front ends
  play     - Run the game and watch it in this terminal
  history  - Show finished sessions

Examples:
  crowdsnake serve
  crowdsnake serve --http :8080 --ssh ""
  crowdsnake play --seed 42
  crowdsnake history --best`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to sessions database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")

	// Add subcommands
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(historyCmd)
}
