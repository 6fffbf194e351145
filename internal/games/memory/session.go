package memory

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-memory/internal/config"
)

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRecorder stores every finished attempt.
func WithRecorder(r AttemptRecorder) Option {
	return func(s *Session) { s.recorder = r }
}

// WithRand sets the deck RNG, for reproducible decks.
func WithRand(rng *rand.Rand) Option {
	return func(s *Session) { s.rng = rng }
}

// WithAssetPool replaces the default card faces.
func WithAssetPool(pool []string) Option {
	return func(s *Session) { s.pool = pool }
}

// Session is the state machine for one player's game. All methods must be
// called from a single goroutine; timers fire through the Scheduler on that
// same goroutine.
type Session struct {
	cfg      config.MemoryConfig
	sched    Scheduler
	clock    *Clock
	progress *ProgressStore
	listener Listener
	recorder AttemptRecorder
	logger   *log.Logger
	rng      *rand.Rand
	pool     []string

	level    int
	next     int // level offered after the attempt ends
	levelCfg LevelConfig
	deck     []Card
	pending  []int // ids of face-up unresolved cards, at most two
	matched  int
	budget   int
	phase    Phase
	muted    bool
	trackOn  bool
	modal    *Modal

	resolveTimer Timer
	previewTimer Timer

	// An open question (restart dialog) freezes the session: the clock is
	// paused and continuations that come due are held until it closes.
	suspended bool
	clockHeld bool
	deferred  []func()
}

// NewSession creates an idle session. A nil progress store keeps progress
// in memory; a nil listener drops all events.
func NewSession(cfg config.MemoryConfig, sched Scheduler, progress *ProgressStore, listener Listener, opts ...Option) *Session {
	if listener == nil {
		listener = NopListener{}
	}

	s := &Session{
		cfg:      cfg,
		sched:    sched,
		progress: progress,
		listener: listener,
		logger:   discardLogger(),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		pool:     DefaultAssetPool(),
		level:    1,
		next:     1,
		phase:    PhaseIdle,
		muted:    cfg.Audio.Muted,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.progress == nil {
		s.progress = NewProgressStore(nil, cfg.MaxLevel, s.logger)
	}
	s.clock = NewClock(sched, cfg.Timing.WarningSeconds, s.onTick, s.onExpire)
	return s
}

// Start begins a fresh attempt at level, discarding any attempt in progress.
// Boards of 8 or more cards open with a face-up preview before the clock runs.
func (s *Session) Start(level int) error {
	s.cancelPending()
	s.clock.Stop()
	s.suspended = false
	s.clockHeld = false
	s.modal = nil

	level = max(1, min(level, s.cfg.MaxLevel))
	lc := ResolveLevel(level)
	deck, err := BuildDeck(lc.PairCount, s.pool, s.rng)
	if err != nil {
		var cfgErr *ConfigurationError
		if errors.As(err, &cfgErr) {
			cfgErr.Level = level
		}
		s.setPhase(PhaseIdle)
		return fmt.Errorf("memory: cannot start level %d: %w", level, err)
	}

	s.level = level
	s.next = level
	s.levelCfg = lc
	s.deck = deck
	s.pending = s.pending[:0]
	s.matched = 0
	s.budget = lc.TimeLimitSeconds
	s.clock.Set(lc.TimeLimitSeconds)
	s.progress.Save(level)

	s.logger.Debug("level started",
		"level", level, "pairs", lc.PairCount, "seconds", lc.TimeLimitSeconds, "columns", lc.Columns)

	if d := s.cfg.PreviewDuration(lc.CardCount()); d > 0 {
		for i := range s.deck {
			s.deck[i].Flipped = true
		}
		s.setPhase(PhasePreviewing)
		s.emitBoard()
		s.emitStatus()
		s.previewTimer = s.sched.After(d, s.continuation(s.endPreview))
		return nil
	}

	s.beginPlay()
	return nil
}

// Activate flips the card with the given id. It returns false, with no
// side effects, unless the session is Active and the card is face down.
func (s *Session) Activate(id int) bool {
	if s.phase != PhaseActive || s.suspended {
		return false
	}
	if id < 0 || id >= len(s.deck) {
		return false
	}
	card := &s.deck[id]
	if card.Flipped || card.Matched {
		return false
	}

	card.Flipped = true
	s.pending = append(s.pending, id)
	s.cue(CueFlip)
	s.emitBoard()

	if len(s.pending) == 2 {
		s.resolvePair()
	}
	return true
}

// TogglePause switches between Active and Paused. Other phases ignore it.
func (s *Session) TogglePause() bool {
	if s.suspended {
		return false
	}

	switch s.phase {
	case PhaseActive:
		s.clock.Pause()
		s.setPhase(PhasePaused)
	case PhasePaused:
		s.setPhase(PhaseActive)
		s.clock.Resume()
	default:
		return false
	}

	s.emitStatus()
	return true
}

// ToggleMute flips the mute flag. Cues and the background track follow it.
func (s *Session) ToggleMute() {
	s.muted = !s.muted
	s.syncTrack()
	s.emitStatus()
}

// Suspend freezes the session while a question is open: the clock stops,
// input is ignored and due continuations wait. Idle sessions cannot suspend.
func (s *Session) Suspend() bool {
	if s.phase == PhaseIdle || s.suspended {
		return false
	}
	s.suspended = true
	s.clockHeld = s.clock.Running()
	s.clock.Pause()
	s.syncTrack()
	s.emitStatus()
	return true
}

// ResumeSuspended undoes Suspend. The clock restarts only if it was running
// before, so a player-paused session stays paused.
func (s *Session) ResumeSuspended() {
	if !s.suspended {
		return
	}
	s.suspended = false
	if s.clockHeld {
		s.clock.Resume()
	}
	s.clockHeld = false

	held := s.deferred
	s.deferred = nil
	for _, fn := range held {
		fn()
	}

	s.syncTrack()
	s.emitStatus()
}

// Restart abandons the current attempt and starts over, either at level 1
// or at the current level.
func (s *Session) Restart(resetToFirst bool) error {
	if s.phase == PhaseIdle {
		return nil
	}

	s.clock.Stop()
	s.cancelPending()
	if s.inAttempt() {
		s.record(OutcomeRestarted)
	}

	// A cleared level has already saved its successor as the current level.
	level := s.level
	if s.phase == PhaseLevelCleared {
		level = s.next
	}
	if resetToFirst {
		level = 1
	}
	s.logger.Info("restarting", "from", s.level, "to", level)
	return s.Start(level)
}

// AcceptModal runs the open modal's action (next level, retry).
func (s *Session) AcceptModal() error {
	if s.modal == nil {
		return nil
	}
	m := *s.modal
	s.modal = nil
	if m.OnAccept == nil {
		return nil
	}
	return m.OnAccept()
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// Level returns the level of the current (or last) attempt.
func (s *Session) Level() int {
	return s.level
}

// NextLevel returns the level the next attempt will start at.
func (s *Session) NextLevel() int {
	return s.next
}

// LevelConfig returns the configuration of the current attempt.
func (s *Session) LevelConfig() LevelConfig {
	return s.levelCfg
}

// Suspended reports whether a question is holding the session.
func (s *Session) Suspended() bool {
	return s.suspended
}

// Muted reports whether cues are suppressed.
func (s *Session) Muted() bool {
	return s.muted
}

// Pending returns the ids of face-up cards awaiting resolution.
func (s *Session) Pending() []int {
	return append([]int(nil), s.pending...)
}

// PendingModal returns the open modal, if any.
func (s *Session) PendingModal() (Modal, bool) {
	if s.modal == nil {
		return Modal{}, false
	}
	return *s.modal, true
}

// Board returns a copy of the deck for rendering.
func (s *Session) Board() Board {
	return Board{
		Columns: s.levelCfg.Columns,
		Cards:   append([]Card(nil), s.deck...),
	}
}

// Status returns the status-bar view of the session.
func (s *Session) Status() Status {
	return Status{
		Level:     s.level,
		MaxLevel:  s.cfg.MaxLevel,
		Remaining: s.clock.Remaining(),
		Budget:    s.budget,
		Warning:   s.clock.Warning(),
		Phase:     s.phase,
		Muted:     s.muted,
		Matched:   s.matched,
		Total:     s.levelCfg.PairCount,
	}
}

func (s *Session) beginPlay() {
	s.setPhase(PhaseActive)
	s.clock.Start(s.budget)
	s.emitBoard()
	s.emitStatus()
}

func (s *Session) endPreview() {
	s.previewTimer = nil
	for i := range s.deck {
		s.deck[i].Flipped = false
	}
	s.beginPlay()
}

func (s *Session) resolvePair() {
	s.setPhase(PhaseResolving)

	a, b := s.deck[s.pending[0]], s.deck[s.pending[1]]
	if a.AssetID == b.AssetID {
		s.resolveTimer = s.sched.After(s.cfg.MatchDelay(), s.continuation(s.confirmMatch))
		return
	}
	s.resolveTimer = s.sched.After(s.cfg.MismatchDelay(), s.continuation(s.revertMismatch))
}

func (s *Session) confirmMatch() {
	s.resolveTimer = nil
	s.cue(CueMatch)
	for _, id := range s.pending {
		s.deck[id].Matched = true
	}
	s.matched++
	s.pending = s.pending[:0]

	before := s.clock.Remaining()
	if after := s.cfg.ApplyBonus(before); after != before {
		s.clock.AddTime(after - before)
		s.logger.Debug("bonus time", "before", before, "after", after)
	}

	if s.matched == s.levelCfg.PairCount {
		s.clearLevel()
		return
	}

	s.setPhase(PhaseActive)
	s.emitBoard()
	s.emitStatus()
}

func (s *Session) revertMismatch() {
	s.resolveTimer = nil
	for _, id := range s.pending {
		s.deck[id].Flipped = false
	}
	s.pending = s.pending[:0]
	s.cue(CueMismatch)
	s.setPhase(PhaseActive)
	s.emitBoard()
}

func (s *Session) clearLevel() {
	s.clock.Stop()
	s.setPhase(PhaseLevelCleared)
	s.cue(CueClear)
	s.emitBoard()
	s.emitStatus()
	s.record(OutcomeCleared)

	last := s.level >= s.cfg.MaxLevel
	next := s.level + 1
	if last {
		next = 1
	}
	s.next = next
	s.progress.Save(next)
	s.logger.Info("level cleared", "level", s.level, "next", next)

	m := Modal{
		Title:    "Level cleared!",
		Message:  fmt.Sprintf("Level %d cleared with %ds to spare.", s.level, s.clock.Remaining()),
		Button:   "Next level",
		OnAccept: func() error { return s.Start(next) },
	}
	if last {
		m.Title = "Congratulations!"
		m.Message = fmt.Sprintf("You cleared all %d levels!", s.cfg.MaxLevel)
		m.Button = "Start over"
	}
	s.showModal(m)
}

func (s *Session) onTick(int, bool) {
	s.emitStatus()
}

// onExpire ends the attempt. A resolution still pending is cancelled, so a
// timeout that comes due first always wins.
func (s *Session) onExpire() {
	if s.phase != PhaseActive && s.phase != PhaseResolving {
		return
	}

	s.cancelPending()
	s.setPhase(PhaseGameOver)
	s.cue(CueGameOver)
	s.emitBoard()
	s.emitStatus()
	s.record(OutcomeTimedOut)
	s.logger.Info("time ran out", "level", s.level, "matched", s.matched, "total", s.levelCfg.PairCount)

	level := s.level
	s.showModal(Modal{
		Title:    "Time's up",
		Message:  fmt.Sprintf("Level %d got away. Try again?", level),
		Button:   "Retry",
		OnAccept: func() error { return s.Start(level) },
	})
}

// continuation wraps a delayed callback so it waits while suspended.
func (s *Session) continuation(fn func()) func() {
	return func() {
		if s.suspended {
			s.deferred = append(s.deferred, fn)
			return
		}
		fn()
	}
}

func (s *Session) cancelPending() {
	if s.resolveTimer != nil {
		s.resolveTimer.Stop()
		s.resolveTimer = nil
	}
	if s.previewTimer != nil {
		s.previewTimer.Stop()
		s.previewTimer = nil
	}
	s.deferred = nil
}

func (s *Session) inAttempt() bool {
	switch s.phase {
	case PhasePreviewing, PhaseActive, PhaseResolving, PhasePaused:
		return true
	}
	return false
}

func (s *Session) setPhase(p Phase) {
	if s.phase != p {
		s.logger.Debug("phase", "from", s.phase, "to", p, "level", s.level)
	}
	s.phase = p
	s.syncTrack()
}

// syncTrack keeps the background track playing only during unmuted play.
func (s *Session) syncTrack() {
	want := (s.phase == PhaseActive || s.phase == PhaseResolving) && !s.suspended && !s.muted
	if want == s.trackOn {
		return
	}
	s.trackOn = want
	s.listener.Track(want)
}

func (s *Session) cue(c Cue) {
	if s.muted {
		return
	}
	s.listener.Cue(c)
}

func (s *Session) record(outcome Outcome) {
	if s.recorder == nil {
		return
	}
	a := Attempt{
		Level:        s.level,
		Outcome:      outcome,
		SecondsLeft:  s.clock.Remaining(),
		MatchedPairs: s.matched,
		TotalPairs:   s.levelCfg.PairCount,
	}
	if err := s.recorder.RecordAttempt(a); err != nil {
		s.logger.Warn("could not record attempt", "level", s.level, "outcome", outcome, "error", err)
	}
}

func (s *Session) showModal(m Modal) {
	s.modal = &m
	s.listener.Modal(m)
}

func (s *Session) emitBoard() {
	s.listener.BoardChanged(s.Board())
}

func (s *Session) emitStatus() {
	s.listener.StatusChanged(s.Status())
}

func discardLogger() *log.Logger {
	return log.New(io.Discard)
}
