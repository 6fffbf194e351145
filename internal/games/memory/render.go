package memory

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-memory/internal/core"
)

const (
	cardWidth  = 5 // box width including borders
	cardHeight = 3 // box height including borders
	cardGap    = 1

	hudHeight    = 3
	footerHeight = 1
	minWidth     = 44
)

var suitSymbols = map[byte]rune{
	'S': '♠',
	'D': '♦',
	'H': '♥',
	'C': '♣',
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	cols := max(g.board.Columns, 1)
	rows := (len(g.board.Cards) + cols - 1) / cols
	boardW := cols*(cardWidth+cardGap) - cardGap
	boardX := (g.screenW - boardW) / 2
	boardY := hudHeight

	g.renderHUD(dst)
	g.renderBoard(dst, boardX, boardY)
	g.renderFooter(dst)

	if g.errMsg != "" {
		dst.DrawTextCentered(min(boardY+rows*cardHeight, g.screenH-footerHeight-1), g.errMsg, core.ColorBrightRed)
	}

	switch {
	case g.question != nil:
		g.renderDialog(dst, "Restart", g.question.text, "[Y] Yes    [N] No")
	case g.modal != nil:
		g.renderDialog(dst, g.modal.Title, g.modal.Message, "[Enter] "+g.modal.Button)
	case g.status.Phase == PhasePaused:
		g.renderDialog(dst, "Paused", "The clock is stopped.", "[P] Resume")
	}
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	w, h := g.requiredSize()
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small", core.ColorDefault)
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need at least %dx%d", w, h), core.ColorGray)
}

func (g *Game) renderHUD(dst *core.Screen) {
	s := g.status
	dst.DrawTextCentered(0, "MEMORY MATCH", core.ColorBrightWhite)

	level := fmt.Sprintf("Level %d/%d", s.Level, s.MaxLevel)
	dst.DrawTextColor(1, 1, level, core.ColorCyan)

	timeColor := core.ColorGreen
	if s.Warning {
		timeColor = core.ColorBrightRed
	}
	clock := fmt.Sprintf("Time %3ds", s.Remaining)
	dst.DrawTextCentered(1, clock, timeColor)

	track := "♪ on"
	switch {
	case s.Muted:
		track = "♪ muted"
	case !g.track:
		track = "♪ off"
	}
	right := fmt.Sprintf("Pairs %d/%d  %s", s.Matched, s.Total, track)
	dst.DrawTextColor(g.screenW-len([]rune(right))-1, 1, right, core.ColorDefault)

	if s.Phase == PhasePreviewing {
		dst.DrawTextCentered(2, "Memorize the cards!", core.ColorBrightYellow)
	}
}

func (g *Game) renderBoard(dst *core.Screen, boardX, boardY int) {
	cols := max(g.board.Columns, 1)
	for i, card := range g.board.Cards {
		x := boardX + (i%cols)*(cardWidth+cardGap)
		y := boardY + (i/cols)*cardHeight
		g.renderCard(dst, x, y, card, i == g.cursor)
	}
}

func (g *Game) renderCard(dst *core.Screen, x, y int, card Card, selected bool) {
	border := core.ColorWhite
	switch {
	case selected:
		border = core.ColorBrightYellow
	case card.Matched:
		border = core.ColorGray
	}
	dst.DrawBox(core.NewRect(x, y, cardWidth, cardHeight), border)

	if !card.FaceUp() {
		dst.DrawTextColor(x+1, y+1, "░░░", core.ColorBlue)
		return
	}

	face := core.ColorBrightWhite
	switch {
	case card.Matched:
		face = core.ColorGray
	case isRedSuit(card.AssetID):
		face = core.ColorBrightRed
	}
	dst.DrawTextColor(x+1, y+1, faceLabel(card.AssetID), face)
}

func (g *Game) renderFooter(dst *core.Screen) {
	help := "arrows move  enter flip  p pause  m mute  F2 restart  q quit"
	dst.DrawTextCentered(g.screenH-1, help, core.ColorGray)
}

func (g *Game) renderDialog(dst *core.Screen, title, message, prompt string) {
	w := max(len([]rune(message)), len([]rune(title)), len([]rune(prompt))) + 6
	w = min(w, g.screenW)
	h := 7
	x := (g.screenW - w) / 2
	y := (g.screenH - h) / 2

	r := core.NewRect(x, y, w, h)
	dst.FillRect(r, ' ')
	dst.DrawBox(r, core.ColorBrightYellow)
	dst.DrawTextCentered(y+1, title, core.ColorBrightYellow)
	dst.DrawTextCentered(y+3, message, core.ColorBrightWhite)
	dst.DrawTextCentered(y+5, prompt, core.ColorCyan)
}

// requiredSize returns the smallest screen that fits the current board.
func (g *Game) requiredSize() (int, int) {
	cols := max(g.board.Columns, 1)
	rows := (len(g.board.Cards) + cols - 1) / cols
	w := max(cols*(cardWidth+cardGap)-cardGap+2, minWidth)
	h := hudHeight + rows*cardHeight + footerHeight
	return w, h
}

func (g *Game) checkScreenSize() {
	if g.screenW == 0 && g.screenH == 0 {
		g.tooSmall = false
		return
	}
	w, h := g.requiredSize()
	g.tooSmall = g.screenW < w || g.screenH < h
}

// faceLabel renders an asset id such as "H10" or "SQ" as a 3-cell label.
func faceLabel(asset string) string {
	if asset == "" {
		return "   "
	}
	symbol, ok := suitSymbols[asset[0]]
	if !ok {
		symbol = '?'
	}
	label := string(symbol) + asset[1:]
	if n := len([]rune(label)); n < 3 {
		label = strings.Repeat(" ", 3-n) + label
	}
	return label
}

func isRedSuit(asset string) bool {
	return asset != "" && (asset[0] == 'D' || asset[0] == 'H')
}
