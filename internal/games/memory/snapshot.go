package memory

// Snapshot captures the game state for tests and screenshots.
type Snapshot struct {
	Tick      uint64
	Level     int
	NextLevel int
	Phase     string
	Remaining int
	Budget    int
	Matched   int
	Total     int
	Cursor    int
	Columns   int
	Cards     []Card
	Muted     bool
	Suspended bool
	Question  string
	Modal     string
	TooSmall  bool
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:      g.tick,
		Level:     g.session.Level(),
		NextLevel: g.session.NextLevel(),
		Phase:     g.session.Phase().String(),
		Remaining: g.status.Remaining,
		Budget:    g.status.Budget,
		Matched:   g.status.Matched,
		Total:     g.status.Total,
		Cursor:    g.cursor,
		Columns:   g.board.Columns,
		Cards:     append([]Card(nil), g.board.Cards...),
		Muted:     g.session.Muted(),
		Suspended: g.session.Suspended(),
		TooSmall:  g.tooSmall,
	}
	if g.question != nil {
		snap.Question = g.question.text
	}
	if g.modal != nil {
		snap.Modal = g.modal.Title
	}
	return snap
}
