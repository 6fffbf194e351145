package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-memory/internal/games/memory"
	"github.com/vovakirdan/tui-memory/internal/platform/tui"
)

var (
	flagLimit       int
	flagBrowse      bool
	flagHistoryUser string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent attempts",
	Long: `Display the most recent attempts, newest first.

Examples:
  memory history
  memory history --limit 20
  memory history --user alice --browse`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&flagLimit, "limit", "n", 10, "Number of attempts to show")
	historyCmd.Flags().BoolVar(&flagBrowse, "browse", false, "Open the interactive history browser")
	historyCmd.Flags().StringVar(&flagHistoryUser, "user", "", "SSH user name (empty for local play)")
}

func runHistory(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	player := playerName(flagHistoryUser)

	if flagBrowse {
		width, height := 80, 24
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width, height = w, h
		}
		return tui.RunHistory(store, player, width, height)
	}

	attempts, err := store.RecentAttempts(player, flagLimit)
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}

	if len(attempts) == 0 {
		fmt.Printf("No attempts recorded for %s yet.\n", player)
		return nil
	}

	fmt.Printf("\nRecent attempts - %s\n", player)
	fmt.Println("═══════════════════════════════════════════════")
	fmt.Printf("%-6s %-10s %-7s %-6s %s\n", "Level", "Outcome", "Pairs", "Left", "Date")
	fmt.Println("───────────────────────────────────────────────")

	for _, a := range attempts {
		fmt.Printf("%-6d %-10s %-7s %-6s %s\n",
			a.Level,
			outcomeText(a.Outcome),
			fmt.Sprintf("%d/%d", a.MatchedPairs, a.TotalPairs),
			fmt.Sprintf("%ds", a.SecondsLeft),
			a.CreatedAt.Local().Format("2006-01-02 15:04"),
		)
	}
	fmt.Println()
	return nil
}

func outcomeText(o memory.Outcome) string {
	switch o {
	case memory.OutcomeTimedOut:
		return "time up"
	default:
		return string(o)
	}
}
