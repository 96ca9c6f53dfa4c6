package game

import "fmt"

// Coord is a grid cell addressed by column and row, both zero based.
type Coord struct {
	Col int
	Row int
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Col, c.Row)
}

// Direction of travel for the snake head.
type Direction int

const (
	Up Direction = iota
	Right
	Down
	Left
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "Up"
	case Right:
		return "Right"
	case Down:
		return "Down"
	case Left:
		return "Left"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Opposite returns the direct reverse of d.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	default:
		return Left
	}
}

// step moves c one cell in direction d on a grid of the given size. Leaving
// the grid wraps to the opposite edge when warping, otherwise the affected
// axis keeps its current value.
func step(c Coord, d Direction, size int, warping bool) Coord {
	switch d {
	case Up:
		if c.Row > 0 {
			c.Row--
		} else if warping {
			c.Row = size - 1
		}
	case Down:
		if c.Row < size-1 {
			c.Row++
		} else if warping {
			c.Row = 0
		}
	case Left:
		if c.Col > 0 {
			c.Col--
		} else if warping {
			c.Col = size - 1
		}
	case Right:
		if c.Col < size-1 {
			c.Col++
		} else if warping {
			c.Col = 0
		}
	}
	return c
}
