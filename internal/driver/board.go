package driver

import (
	"strings"

	"github.td.teradata.com/sandbox/snake-ctl/internal/services/common"
	"github.td.teradata.com/sandbox/snake-ctl/internal/services/display"
	"github.td.teradata.com/sandbox/snake-ctl/internal/services/game"
)

const (
	block        = "██"
	scoreLabel   = "Score : "
	instructions = 10
)

// layout places a board of size cells on the terminal. The box is drawn a
// third of the way across and vertically centred; every cell is two
// columns wide. Positions are 1 based.
type layout struct {
	left int
	top  int
	size int
}

func newLayout(cols int, rows int, size int) layout {
	l := layout{
		left: cols/3 - size + 2,
		top:  (rows-size)/2 + 1,
		size: size,
	}
	if l.left < 1 {
		l.left = 1
	}
	// Keep the score line above the box on screen.
	if l.top < 2 {
		l.top = 2
	}
	return l
}

// cell maps a grid coordinate to the terminal column and row of its block.
func (l layout) cell(c game.Coord) (int, int) {
	return l.left + 1 + c.Col*2, l.top + 1 + c.Row
}

func (l layout) bottom() int {
	return l.top + l.size + 1
}

// clear erases the score line and the box rows.
func (l layout) clear(r common.Renderer) {
	for row := l.top - 3; row <= l.bottom(); row++ {
		if row >= 1 {
			r.ClearLine(row)
		}
	}
}

func (l layout) draw(r common.Renderer, g *game.Game) {
	r.PrintAt(l.left, l.top-1, display.ScoreLabel, scoreLabel)
	r.PrintAtf(l.left+len(scoreLabel), l.top-1, display.ScoreValue, "%d", g.Score())

	edge := strings.Repeat("━", l.size*2)
	r.PrintAt(l.left, l.top, display.Frame, "┏"+edge+"┓")
	for row := l.top + 1; row < l.bottom(); row++ {
		r.PrintAt(l.left, row, display.Frame, "┃")
		r.PrintAt(l.left+l.size*2+1, row, display.Frame, "┃")
	}
	r.PrintAt(l.left, l.bottom(), display.Frame, "┗"+edge+"┛")

	snake := g.Snake()
	col, row := l.cell(snake[0])
	r.PrintAt(col, row, display.SnakeHead, block)
	for _, part := range snake[1:] {
		col, row = l.cell(part)
		r.PrintAt(col, row, display.SnakeBody, block)
	}

	col, row = l.cell(g.Food())
	r.PrintAt(col, row, display.Food, block)

	x := l.left + l.size*2 + instructions
	r.PrintAt(x, l.top+5, display.Instructions, "- Use arrow keys to move")
	r.PrintAt(x, l.top+7, display.Instructions, "- Hit Q to quit")
}
