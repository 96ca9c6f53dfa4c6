package common

import (
	"time"

	"github.td.teradata.com/sandbox/snake-ctl/internal/services/display"
)

// Cursor key codes. There are no ASCII codes for arrow keys so the
// Javascript key codes are used.
const (
	CursorLeft  = 37
	CursorUp    = 38
	CursorRight = 39
	CursorDown  = 40
)

// Input is one decoded key press. KeyCode is set for cursor keys, Ascii
// for everything else.
type Input struct {
	Ascii   int
	KeyCode int
}

type Renderer interface {
	Size() (cols int, rows int, err error)
	Cls()
	ClearLine(row int)
	PrintAt(col int, row int, style display.Style, text string) bool
	PrintAtf(col int, row int, style display.Style, format string, a ...interface{}) bool
	Flush() error
}

type Keyboard interface {
	Poll(timeout time.Duration) (Input, bool, error)
}
