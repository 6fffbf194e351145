package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-memory/internal/core"
	"github.com/vovakirdan/tui-memory/internal/games/memory"
)

// barHeight is the number of rows below the board reserved for the time bar.
const barHeight = 1

const (
	barColor        = "10"
	barWarningColor = "9"
)

// ModelOptions configures the platform side of a game model.
type ModelOptions struct {
	Logger        *log.Logger
	Bell          io.Writer // Where cue bells go; nil disables them
	BellEnabled   bool
	ScreenshotDir string // Defaults to ~/.memory/screenshots
}

// Model is the Bubble Tea model for running the memory game.
type Model struct {
	game       *memory.Game
	screen     *core.Screen
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	keys       *KeyMapper
	bar        progress.Model
	audio      *BellPlayer
	logger     *log.Logger
	shotDir    string
	quitting   bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game *memory.Game, cfg core.RuntimeConfig, opts ModelOptions) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	shotDir := opts.ScreenshotDir
	if shotDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			shotDir = filepath.Join(home, ".memory", "screenshots")
		}
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, boardHeight(cfg.ScreenH)),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keys:       NewKeyMapper(DefaultKeyMap()),
		bar: progress.New(
			progress.WithSolidFill(barColor),
			progress.WithoutPercentage(),
			progress.WithWidth(barWidth(cfg.ScreenW)),
		),
		audio:   NewBellPlayer(opts.Bell, opts.BellEnabled, logger),
		logger:  logger,
		shotDir: shotDir,
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.boardConfig())
	m.logger.Info("game started", "level", m.game.State().Level, "seed", m.config.Seed)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.keys.IsScreenshot(msg) {
		m.saveScreenshot()
		return m, nil
	}

	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		m.logger.Info("quit", "level", m.game.State().Level)
		return m, tea.Quit
	}

	return m, nil
}

// handleResize processes window resize events. The session keeps running;
// only the layout changes.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, boardHeight(msg.Height))
	m.bar.Width = barWidth(msg.Width)
	m.game.Resize(msg.Width, boardHeight(msg.Height))
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	m.game.Step(m.inputFrame)

	m.audio.Play(m.game.DrainCues())
	m.audio.SetTrack(m.game.TrackPlaying())

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot saves the current board to a text file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	if err := os.MkdirAll(m.shotDir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "dir", m.shotDir, "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_level%03d_%s.txt", m.game.ID(), m.game.State().Level, timestamp)
	path := filepath.Join(m.shotDir, filename)

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "path", path, "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)

	status := m.game.Status()
	bar := m.bar
	bar.FullColor = barColor
	if status.Warning {
		bar.FullColor = barWarningColor
	}

	return RenderScreen(m.screen) + "\n" + centerText(bar.ViewAs(status.Percent()), m.config.ScreenW)
}

func (m Model) boardConfig() core.RuntimeConfig {
	cfg := m.config
	cfg.ScreenH = boardHeight(cfg.ScreenH)
	return cfg
}

func boardHeight(screenH int) int {
	return max(screenH-barHeight, 0)
}

func barWidth(screenW int) int {
	return max(screenW-4, 10)
}

// Run starts the Bubble Tea program with the given game.
func Run(game *memory.Game, cfg core.RuntimeConfig, opts ModelOptions) error {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
