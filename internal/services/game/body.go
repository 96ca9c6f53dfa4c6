package game

// Body holds the snake cells head first in a fixed capacity ring buffer.
// Pushing a new head and trimming the tail never shifts the stored cells.
type Body struct {
	cells  []Coord
	head   int
	length int
}

func NewBody(capacity int) *Body {
	if capacity < 1 {
		capacity = 1
	}
	return &Body{cells: make([]Coord, capacity)}
}

// PushFront inserts c as the new head. When the buffer is full the oldest
// tail cell is overwritten.
func (b *Body) PushFront(c Coord) {
	b.head = (b.head - 1 + len(b.cells)) % len(b.cells)
	b.cells[b.head] = c
	if b.length < len(b.cells) {
		b.length++
	}
}

// TrimTo drops tail cells until at most n remain.
func (b *Body) TrimTo(n int) {
	if n < 0 {
		n = 0
	}
	if b.length > n {
		b.length = n
	}
}

func (b *Body) Len() int {
	return b.length
}

func (b *Body) Cap() int {
	return len(b.cells)
}

// At returns the i-th cell counted from the head.
func (b *Body) At(i int) Coord {
	if i < 0 || i >= b.length {
		panic("game: body index out of range")
	}
	return b.cells[(b.head+i)%len(b.cells)]
}

func (b *Body) Head() Coord {
	return b.At(0)
}

func (b *Body) Contains(c Coord) bool {
	for i := 0; i < b.length; i++ {
		if b.cells[(b.head+i)%len(b.cells)] == c {
			return true
		}
	}
	return false
}

// Cells copies the body out head first.
func (b *Body) Cells() []Coord {
	out := make([]Coord, b.length)
	for i := range out {
		out[i] = b.cells[(b.head+i)%len(b.cells)]
	}
	return out
}
