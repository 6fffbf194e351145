package memory

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-memory/internal/config"
	"github.com/vovakirdan/tui-memory/internal/core"
)

// Game adapts a Session to the fixed-tick platform loop: it owns the
// virtual-time scheduler, a board cursor and the open dialog, and renders
// into a core.Screen.
type Game struct {
	cfg      config.MemoryConfig
	progress *ProgressStore
	opts     []Option

	sched   *TickScheduler
	session *Session
	restart *RestartController

	tick     uint64
	tickRate int
	screenW  int
	screenH  int
	tooSmall bool

	cursor   int
	board    Board
	status   Status
	modal    *Modal
	question *question
	cues     []Cue
	track    bool
	errMsg   string
}

type question struct {
	text   string
	answer func(yes bool)
}

// NewGame creates a game that loads and saves progress through progress.
// Options are passed to every session the game creates.
func NewGame(cfg config.MemoryConfig, progress *ProgressStore, opts ...Option) *Game {
	if progress == nil {
		progress = NewProgressStore(nil, cfg.MaxLevel, nil)
	}
	return &Game{
		cfg:      cfg,
		progress: progress,
		opts:     opts,
	}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "memory"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Memory Match"
}

// Reset builds a new session and starts it at the saved level.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.tickRate = cfg.TickRate
	if g.tickRate <= 0 {
		g.tickRate = core.DefaultConfig().TickRate
	}
	g.tick = 0
	g.cursor = 0
	g.modal = nil
	g.question = nil
	g.cues = nil
	g.track = false
	g.errMsg = ""
	g.Resize(cfg.ScreenW, cfg.ScreenH)

	opts := append(append([]Option(nil), g.opts...), WithRand(rand.New(rand.NewSource(cfg.Seed))))
	g.sched = NewTickScheduler()
	g.session = NewSession(g.cfg, g.sched, g.progress, g, opts...)
	g.restart = NewRestartController(g.session, g)

	if err := g.session.Start(g.progress.Load()); err != nil {
		g.errMsg = err.Error()
	}
}

// Resize updates the screen dimensions without touching the session.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
	g.checkScreenSize()
}

// Step applies one frame of input and advances virtual time by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	// Virtual time stands still while the board does not fit.
	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionMute) {
		g.session.ToggleMute()
	}

	switch {
	case g.question != nil:
		switch {
		case in.Has(core.ActionYes):
			g.answer(true)
		case in.Has(core.ActionNo):
			g.answer(false)
		}

	case g.modal != nil:
		switch {
		case in.Has(core.ActionConfirm):
			g.modal = nil
			if err := g.session.AcceptModal(); err != nil {
				g.errMsg = err.Error()
			}
		case in.Has(core.ActionRestart):
			g.restart.Request()
		}

	default:
		g.moveCursor(in)
		if in.Has(core.ActionConfirm) {
			g.session.Activate(g.cursor)
		}
		if in.Has(core.ActionPause) {
			g.session.TogglePause()
		}
		if in.Has(core.ActionRestart) {
			g.restart.Request()
		}
	}

	g.sched.Advance(time.Second / time.Duration(g.tickRate))

	if _, ok := g.session.PendingModal(); !ok {
		g.modal = nil
	}

	return core.StepResult{State: g.State()}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	phase := g.session.Phase()
	return core.GameState{
		Level:    g.session.Level(),
		Finished: phase == PhaseLevelCleared || phase == PhaseGameOver,
		Paused:   phase == PhasePaused || g.session.Suspended(),
	}
}

// Status returns the latest status reported by the session.
func (g *Game) Status() Status {
	return g.status
}

// DrainCues returns and clears the cues emitted since the last call.
func (g *Game) DrainCues() []Cue {
	cues := g.cues
	g.cues = nil
	return cues
}

// TrackPlaying reports whether the background track should be playing.
func (g *Game) TrackPlaying() bool {
	return g.track
}

// Session exposes the underlying session.
func (g *Game) Session() *Session {
	return g.session
}

// Ask implements Asker by showing the question until the player answers.
func (g *Game) Ask(text string, answer func(yes bool)) {
	g.question = &question{text: text, answer: answer}
}

// BoardChanged implements Listener.
func (g *Game) BoardChanged(b Board) {
	g.board = b
	if n := len(b.Cards); n > 0 && g.cursor >= n {
		g.cursor = n - 1
	}
	g.checkScreenSize()
}

// StatusChanged implements Listener.
func (g *Game) StatusChanged(s Status) {
	g.status = s
}

// Cue implements Listener.
func (g *Game) Cue(c Cue) {
	g.cues = append(g.cues, c)
}

// Track implements Listener.
func (g *Game) Track(playing bool) {
	g.track = playing
}

// Modal implements Listener.
func (g *Game) Modal(m Modal) {
	g.modal = &m
}

func (g *Game) answer(yes bool) {
	q := g.question
	g.question = nil
	q.answer(yes)
}

func (g *Game) moveCursor(in core.InputFrame) {
	cols := g.board.Columns
	n := len(g.board.Cards)
	if cols <= 0 || n == 0 {
		return
	}

	switch {
	case in.Has(core.ActionLeft):
		if g.cursor%cols > 0 {
			g.cursor--
		}
	case in.Has(core.ActionRight):
		if g.cursor%cols < cols-1 && g.cursor+1 < n {
			g.cursor++
		}
	case in.Has(core.ActionUp):
		if g.cursor-cols >= 0 {
			g.cursor -= cols
		}
	case in.Has(core.ActionDown):
		if g.cursor+cols < n {
			g.cursor += cols
		}
	}
}
