// Package memory implements the timed card-matching game: level progression,
// deck construction, the countdown clock and the session state machine.
package memory

// MaxPairs caps the board at 48 cards.
const MaxPairs = 24

const (
	basePairs   = 2
	baseTime    = 10 // seconds every level gets
	timePerPair = 5  // seconds added per pair
	minTime     = 10 // no level is shorter than this
)

// LevelConfig is the board shape and time budget of one level.
type LevelConfig struct {
	Level            int
	PairCount        int
	TimeLimitSeconds int
	Columns          int
}

// ResolveLevel maps a level number to its board configuration.
// Pairs grow by one every two levels; the time budget shrinks by one second
// every five levels but never drops below minTime.
func ResolveLevel(level int) LevelConfig {
	if level < 1 {
		level = 1
	}

	pairs := min(basePairs+(level-1)/2, MaxPairs)
	seconds := max(minTime, baseTime+pairs*timePerPair-level/5)

	return LevelConfig{
		Level:            level,
		PairCount:        pairs,
		TimeLimitSeconds: seconds,
		Columns:          columnsFor(pairs),
	}
}

// CardCount returns the number of cards dealt for the level.
func (c LevelConfig) CardCount() int {
	return c.PairCount * 2
}

// Rows returns the number of grid rows needed for the level.
func (c LevelConfig) Rows() int {
	return (c.CardCount() + c.Columns - 1) / c.Columns
}

// columnsFor picks the grid width for a pair count.
func columnsFor(pairs int) int {
	switch {
	case pairs >= 15:
		return 8
	case pairs >= 10:
		return 6
	case pairs >= 8:
		return 5
	default:
		return 4
	}
}
