package tui

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-memory/internal/games/memory"
)

// BellPlayer turns game cues into terminal bells. A terminal has no real
// background music, so track changes are only logged.
type BellPlayer struct {
	out     io.Writer
	enabled bool
	logger  *log.Logger
	playing bool
	rung    int
}

// NewBellPlayer creates a player that writes BEL to out when enabled.
func NewBellPlayer(out io.Writer, enabled bool, logger *log.Logger) *BellPlayer {
	if out == nil {
		out = io.Discard
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &BellPlayer{out: out, enabled: enabled, logger: logger}
}

// Play handles one batch of cues. Only cues worth interrupting the player
// for ring the bell; at most one bell is written per batch.
func (b *BellPlayer) Play(cues []memory.Cue) {
	ring := false
	for _, c := range cues {
		b.logger.Debug("cue", "name", c)
		switch c {
		case memory.CueMatch, memory.CueClear, memory.CueGameOver:
			ring = true
		}
	}
	if !ring || !b.enabled {
		return
	}
	if _, err := io.WriteString(b.out, "\a"); err != nil {
		b.logger.Debug("bell failed", "error", err)
		return
	}
	b.rung++
}

// SetTrack records the background track state.
func (b *BellPlayer) SetTrack(playing bool) {
	if playing == b.playing {
		return
	}
	b.playing = playing
	b.logger.Debug("background track", "playing", playing)
}

// Playing reports the last track state.
func (b *BellPlayer) Playing() bool {
	return b.playing
}

// Rung returns how many bells were written.
func (b *BellPlayer) Rung() int {
	return b.rung
}
