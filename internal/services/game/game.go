// Package game holds the snake state engine: grid model, movement, food
// placement and the score/length coupling. It performs no I/O.
package game

const (
	DefaultSize = 25
	startFood   = 2
)

type Options struct {
	Size    int
	Warping bool
	Random  Random
}

// Game is the complete state of one run. It is owned by a single goroutine.
type Game struct {
	size      int
	warping   bool
	score     int
	snake     *Body
	food      Coord
	direction Direction
	random    Random
}

// New starts a game with a one cell snake at the origin heading Right and
// the first food at (2,2). Grids too small for that cell get random food.
func New(opts Options) *Game {
	if opts.Size < 1 {
		opts.Size = DefaultSize
	}
	if opts.Random == nil {
		opts.Random = NewRandom(0)
	}
	g := &Game{
		size:      opts.Size,
		warping:   opts.Warping,
		snake:     NewBody(opts.Size*opts.Size + 1),
		direction: Right,
		random:    opts.Random,
	}
	g.snake.PushFront(Coord{0, 0})

	if first := (Coord{startFood, startFood}); g.inside(first) {
		g.food = first
	} else {
		g.PlaceFood()
	}
	return g
}

// AdvanceTick moves the snake one cell, resolves food and trims the tail so
// the snake is always score+1 cells long. It reports whether food was eaten.
func (g *Game) AdvanceTick() bool {
	head := step(g.snake.Head(), g.direction, g.size, g.warping)
	g.snake.PushFront(head)

	ate := g.snake.Contains(g.food)
	if ate {
		g.score++
	}
	g.snake.TrimTo(g.score + 1)

	// Food is resampled against the trimmed snake.
	if ate {
		g.PlaceFood()
	}
	return ate
}

// PlaceFood samples random cells until one is found that the snake does
// not occupy. It never returns if the snake covers the whole grid.
func (g *Game) PlaceFood() {
	for {
		c := Coord{Col: g.random.Intn(g.size), Row: g.random.Intn(g.size)}
		if !g.snake.Contains(c) {
			g.food = c
			return
		}
	}
}

// SetDirection changes the heading unless d reverses the current one.
func (g *Game) SetDirection(d Direction) bool {
	if d == g.direction.Opposite() {
		return false
	}
	g.direction = d
	return true
}

func (g *Game) inside(c Coord) bool {
	return c.Col >= 0 && c.Col < g.size && c.Row >= 0 && c.Row < g.size
}

func (g *Game) Score() int {
	return g.score
}

func (g *Game) Direction() Direction {
	return g.direction
}

func (g *Game) Food() Coord {
	return g.food
}

func (g *Game) Head() Coord {
	return g.snake.Head()
}

// Snake returns the snake cells head first.
func (g *Game) Snake() []Coord {
	return g.snake.Cells()
}

func (g *Game) Len() int {
	return g.snake.Len()
}

func (g *Game) Size() int {
	return g.size
}

func (g *Game) Warping() bool {
	return g.warping
}

func (g *Game) Occupies(c Coord) bool {
	return g.snake.Contains(c)
}
