package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/crowdsnake/internal/platform/tui"
	"github.com/vovakirdan/crowdsnake/internal/storage"
)

var (
	flagLimit       int
	flagBest        bool
	flagExport      string
	flagInteractive bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show finished sessions",
	Long: `Display the most recent finished sessions, or the longest snakes with --best.

With -i the sessions open in an interactive table.
With --export every session is written to a Parquet file instead.

Examples:
  crowdsnake history
  crowdsnake history --best --limit 5
  crowdsnake history -i
  crowdsnake history --export sessions.parquet`,
	Args: cobra.NoArgs,
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of sessions to show")
	historyCmd.Flags().BoolVar(&flagBest, "best", false, "Order by final length instead of recency")
	historyCmd.Flags().StringVar(&flagExport, "export", "", "Write all sessions to this Parquet file")
	historyCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Open the interactive sessions table")
}

func runHistory(cmd *cobra.Command, _ []string) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		fatalf("%v", err)
	}

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		fatalf("opening sessions database: %v", err)
	}
	defer store.Close()

	if flagExport != "" {
		n, exportErr := store.ExportParquet(flagExport)
		if exportErr != nil {
			store.Close()
			fatalf("%v", exportErr)
		}
		fmt.Printf("Exported %d sessions to %s\n", n, flagExport)
		return
	}

	if flagInteractive {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if runErr := tui.RunHistory(store, width, height); runErr != nil {
			store.Close()
			fatalf("%v", runErr)
		}
		return
	}

	title := "Recent Sessions"
	query := store.RecentSessions
	if flagBest {
		title = "Longest Snakes"
		query = store.LongestSessions
	}
	entries, err := query(flagLimit)
	if err != nil {
		store.Close()
		fatalf("retrieving sessions: %v", err)
	}

	fmt.Println(title)
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("No sessions recorded yet.")
		fmt.Println()
		fmt.Println("Run 'crowdsnake play' or 'crowdsnake serve' to hatch the first snake!")
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-6s  %-5s  %-7s  %-9s  %-16s  %s\n", "Rank", "Length", "Fruit", "Ticks", "Lasted", "Ended", "Reason")
	fmt.Printf("  %-4s  %-6s  %-5s  %-7s  %-9s  %-16s  %s\n", "----", "------", "-----", "-----", "------", "-----", "------")

	for i, row := range tui.HistoryRows(entries) {
		ended := entries[i].EndedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-6s  %-5s  %-7s  %-9s  %-16s  %s\n", i+1, row[1], row[2], row[3], row[4], ended, row[6])
	}

	stats, err := store.GetStats()
	if err == nil {
		fmt.Println()
		fmt.Printf("Sessions: %d  Best length: %d\n", stats.Sessions, stats.BestLength)
	}
}
