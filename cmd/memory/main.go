// memory is a timed card-matching game for the terminal.
//
// Usage:
//
//	memory play              - Play from the saved level
//	memory serve             - Start SSH server for remote play
//	memory progress          - Show the current and best level
//	memory reset             - Reset progress to level 1
//	memory history           - Show recent attempts
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible decks
//	--db <path>           - Set database path (default: ~/.memory/memory.db)
//	--config <path>       - Load game rules from a YAML file
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-memory/internal/config"
	"github.com/vovakirdan/tui-memory/internal/games/memory"
	"github.com/vovakirdan/tui-memory/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "memory",
	Short: "Memory Match - a timed card-matching game for your terminal",
	Long: `Memory Match deals face-down cards in pairs. Flip two at a time,
find every pair before the clock runs out and move on to the next level.

Available commands:
  play      - Play from your saved level
  serve     - Start SSH server for remote play
  progress  - Show your current and best level
  reset     - Start over from level 1
  history   - View recent attempts

Examples:
  memory play
  memory play --seed 42
  memory serve --ssh :2222
  memory history --limit 20`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.memory/memory.db", "Path to progress database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(historyCmd)
}

// newLogger builds the command logger writing to w.
func newLogger(w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "memory",
	})
	if level, err := log.ParseLevel(flagLogLevel); err == nil {
		logger.SetLevel(level)
	} else {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
	}
	return logger
}

// openLogFile opens ~/.memory/memory.log for appending. The terminal belongs
// to the game while it runs, so play logs go there.
func openLogFile() (*os.File, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(home, ".memory")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(dir, "memory.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
}

// loadConfig loads the game rules and checks every level can be dealt.
func loadConfig() (config.MemoryConfig, error) {
	cfg, err := config.LoadMemory(flagConfig)
	if err != nil {
		return cfg, err
	}
	if err := memory.ValidateLevels(memory.DefaultAssetPool(), cfg.MaxLevel); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// openStore opens the progress database named by --db.
func openStore() (*storage.Store, error) {
	return storage.Open(flagDBPath)
}

// playerName maps the --user flag to a stored player: local play when empty,
// otherwise the SSH user's own records.
func playerName(user string) string {
	if user == "" {
		return storage.DefaultPlayer
	}
	return storage.RemotePlayer(user)
}
