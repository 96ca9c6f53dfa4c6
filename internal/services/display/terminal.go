// https://www.lihaoyi.com/post/BuildyourownCommandLinewithANSIescapecodes.html#colors
package display

import (
	"bytes"
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"
	xterm "golang.org/x/term"
)

// Style names what is being drawn. The terminal maps it to colours.
type Style int

const (
	Plain Style = iota
	Frame
	ScoreLabel
	ScoreValue
	SnakeHead
	SnakeBody
	Food
	Instructions
)

// Box drawing and block characters are ambiguous width; the board layout
// assumes one column each.
var widths = func() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = false
	return c
}()

const (
	blue  = "4"
	red   = "1"
	green = "2"
)

// Terminal queues every draw call in memory and writes the frame to the
// sink in a single Flush. Coordinates are 1 based.
type Terminal struct {
	sink io.Writer
	buf  bytes.Buffer
	out  *termenv.Output
	size func() (int, int, error)
	cols int
	rows int
	col  int
	row  int
}

func NewTerminal(sink io.Writer, size func() (int, int, error), profile termenv.Profile) *Terminal {
	t := &Terminal{
		sink: sink,
		size: size,
	}
	t.out = termenv.NewOutput(&t.buf, termenv.WithProfile(profile))
	return t
}

// TTYSize reports the size of the terminal behind fd.
func TTYSize(fd int) func() (int, int, error) {
	return func() (int, int, error) {
		return xterm.GetSize(fd)
	}
}

// Size refreshes and returns the terminal dimensions.
func (t *Terminal) Size() (int, int, error) {
	w, h, err := t.size()
	if err != nil {
		return 0, 0, err
	}
	t.cols, t.rows = w, h
	return w, h, nil
}

func (t *Terminal) At(col int, row int) bool {
	if col < 1 || col > t.cols || row < 1 || row > t.rows {
		return false
	}
	t.out.MoveCursor(row, col)
	t.col = col
	t.row = row
	return true
}

// PrintAt draws text at col,row, clipped to the right edge.
func (t *Terminal) PrintAt(col int, row int, style Style, text string) bool {
	if !t.At(col, row) {
		return false
	}
	t.Print(style, text)
	return true
}

func (t *Terminal) PrintAtf(col int, row int, style Style, format string, a ...interface{}) bool {
	return t.PrintAt(col, row, style, fmt.Sprintf(format, a...))
}

func (t *Terminal) Print(style Style, text string) {
	room := t.cols - t.col + 1
	if widths.StringWidth(text) > room {
		text = widths.Truncate(text, room, "")
	}
	_, _ = t.out.WriteString(t.styled(style, text))
	t.col += widths.StringWidth(text)
}

func (t *Terminal) styled(style Style, text string) string {
	s := t.out.String(text)
	switch style {
	case ScoreValue:
		s = s.Bold().Foreground(t.out.Color(green))
	case SnakeHead:
		s = s.Foreground(t.out.Color(blue))
	case SnakeBody:
		s = s.Faint()
	case Food:
		s = s.Foreground(t.out.Color(red))
	default:
		return text
	}
	return s.String()
}

// ClearLine erases a whole row.
func (t *Terminal) ClearLine(row int) {
	if t.At(1, row) {
		t.out.ClearLine()
	}
}

func (t *Terminal) Cls() {
	t.out.ClearScreen()
	t.col, t.row = 1, 1
}

// Flush writes the queued frame in one call.
func (t *Terminal) Flush() error {
	if t.buf.Len() == 0 {
		return nil
	}
	defer t.buf.Reset()
	if _, err := t.sink.Write(t.buf.Bytes()); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

// Pending returns the number of queued bytes.
func (t *Terminal) Pending() int {
	return t.buf.Len()
}

func (t *Terminal) Cols() int {
	return t.cols
}

func (t *Terminal) Rows() int {
	return t.rows
}
