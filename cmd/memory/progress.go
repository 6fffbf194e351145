package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-memory/internal/storage"
)

var (
	flagUser         string
	flagClearHistory bool
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show the current and best level",
	Long: `Show the level the next game starts at and the best level cleared.

Examples:
  memory progress
  memory progress --user alice`,
	Args: cobra.NoArgs,
	RunE: runProgress,
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset progress to level 1",
	Long: `Reset the saved level to 1. Attempt history is kept unless --history is set.

Examples:
  memory reset
  memory reset --user alice --history`,
	Args: cobra.NoArgs,
	RunE: runReset,
}

func init() {
	progressCmd.Flags().StringVar(&flagUser, "user", "", "SSH user name (empty for local play)")
	resetCmd.Flags().StringVar(&flagUser, "user", "", "SSH user name (empty for local play)")
	resetCmd.Flags().BoolVar(&flagClearHistory, "history", false, "Also delete the attempt history")
}

func runProgress(cmd *cobra.Command, args []string) error {
	gameCfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	player := playerName(flagUser)
	level, ok, err := store.LoadLevel(storage.ProgressKey(player))
	if err != nil {
		return fmt.Errorf("loading progress: %w", err)
	}
	if !ok || level < 1 || level > gameCfg.MaxLevel {
		level = 1
	}

	stats, err := store.PlayerStats(player)
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}

	fmt.Printf("\nMemory Match - %s\n", player)
	fmt.Println("══════════════════════════")
	fmt.Printf("Current level  %d/%d\n", level, gameCfg.MaxLevel)
	fmt.Printf("Best cleared   %d\n", stats.BestLevel)
	fmt.Printf("Attempts       %d (%d cleared, %d timed out, %d restarted)\n",
		stats.Attempts, stats.Cleared, stats.TimedOut, stats.Restarted)
	if !stats.LastPlayed.IsZero() {
		fmt.Printf("Last played    %s\n", stats.LastPlayed.Local().Format("2006-01-02 15:04"))
	}
	fmt.Println()
	return nil
}

func runReset(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	player := playerName(flagUser)
	if err := store.ResetProgress(player); err != nil {
		return fmt.Errorf("resetting progress: %w", err)
	}
	if flagClearHistory {
		if err := store.ClearAttempts(player); err != nil {
			return fmt.Errorf("clearing history: %w", err)
		}
	}

	fmt.Printf("Progress for %s reset to level 1.\n", player)
	return nil
}
