package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-memory/internal/core"
	"github.com/vovakirdan/tui-memory/internal/games/memory"
	"github.com/vovakirdan/tui-memory/internal/platform/tui"
	"github.com/vovakirdan/tui-memory/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play from the saved level",
	Long: `Start Memory Match at the level you reached last time.

Controls:
  Arrows/hjkl/wasd  - Move the cursor
  Enter/Space       - Flip the card
  P                 - Pause
  M                 - Mute
  F2/R              - Restart
  Y/N               - Answer a question
  Ctrl+S            - Save a screenshot
  Q/Ctrl+C          - Quit

Examples:
  memory play
  memory play --seed 42
  memory play --config ./my-memory.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(cmd *cobra.Command, args []string) error {
	var logOut io.Writer = io.Discard
	if f, err := openLogFile(); err == nil {
		defer f.Close()
		logOut = f
	}
	logger := newLogger(logOut)

	gameCfg, err := loadConfig()
	if err != nil {
		return err
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	var backend memory.ProgressBackend
	opts := []memory.Option{memory.WithLogger(logger)}
	store, err := openStore()
	if err != nil {
		logger.Warn("could not open progress database, progress will not persist", "error", err)
	} else {
		defer store.Close()
		backend = store.Progress(storage.DefaultPlayer)
		opts = append(opts, memory.WithRecorder(store.Recorder(storage.DefaultPlayer)))
	}

	progress := memory.NewProgressStore(backend, gameCfg.MaxLevel, logger)
	game := memory.NewGame(gameCfg, progress, opts...)

	if err := tui.Run(game, cfg, tui.ModelOptions{
		Logger:      logger,
		Bell:        os.Stdout,
		BellEnabled: gameCfg.Audio.Bell,
	}); err != nil {
		return err
	}

	fmt.Printf("Progress saved at level %d.\n", progress.Level())
	return nil
}
