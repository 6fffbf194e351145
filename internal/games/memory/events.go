package memory

// Phase is the session state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhasePreviewing
	PhaseActive
	PhaseResolving
	PhasePaused
	PhaseLevelCleared
	PhaseGameOver
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePreviewing:
		return "previewing"
	case PhaseActive:
		return "active"
	case PhaseResolving:
		return "resolving"
	case PhasePaused:
		return "paused"
	case PhaseLevelCleared:
		return "level_cleared"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Cue is a sound/board event emitted by the session.
type Cue string

const (
	CueFlip     Cue = "flip"
	CueMatch    Cue = "match"
	CueMismatch Cue = "mismatch"
	CueClear    Cue = "clear"
	CueGameOver Cue = "game_over"
)

// Board describes the deck for a renderer.
type Board struct {
	Columns int
	Cards   []Card
}

// Status is the data shown in the status bar.
type Status struct {
	Level     int
	MaxLevel  int
	Remaining int
	Budget    int
	Warning   bool
	Phase     Phase
	Muted     bool
	Matched   int
	Total     int
}

// Percent returns the remaining time as a fraction of the budget in [0, 1].
// Bonus time can push the remaining time above the budget; the bar stays full.
func (s Status) Percent() float64 {
	if s.Budget <= 0 {
		return 0
	}
	p := float64(s.Remaining) / float64(s.Budget)
	if p > 1 {
		return 1
	}
	return p
}

// Modal is a one-button dialog (level cleared, game over, congratulations).
type Modal struct {
	Title    string
	Message  string
	Button   string
	OnAccept func() error
}

// Listener receives everything a session makes observable.
type Listener interface {
	BoardChanged(b Board)
	StatusChanged(s Status)
	Cue(c Cue)
	Track(playing bool)
	Modal(m Modal)
}

// NopListener ignores all events. Embed it to implement only some methods.
type NopListener struct{}

func (NopListener) BoardChanged(Board)   {}
func (NopListener) StatusChanged(Status) {}
func (NopListener) Cue(Cue)              {}
func (NopListener) Track(bool)           {}
func (NopListener) Modal(Modal)          {}

// Outcome is how a level attempt ended.
type Outcome string

const (
	OutcomeCleared   Outcome = "cleared"
	OutcomeTimedOut  Outcome = "timed_out"
	OutcomeRestarted Outcome = "restarted"
)

// Attempt summarizes a finished level attempt.
type Attempt struct {
	Level        int
	Outcome      Outcome
	SecondsLeft  int
	MatchedPairs int
	TotalPairs   int
}

// AttemptRecorder stores finished attempts. Failures are logged, never fatal.
type AttemptRecorder interface {
	RecordAttempt(a Attempt) error
}
