package display

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
	xterm "golang.org/x/term"
)

// Replaceable for tests without a tty.
var (
	makeRaw = xterm.MakeRaw
	restore = xterm.Restore
)

// Session owns the interactive terminal mode: raw input, alternate screen
// and hidden cursor. Release must be deferred right after Acquire.
type Session struct {
	fd       int
	state    *xterm.State
	out      *termenv.Output
	released bool
}

// Acquire switches fd into raw mode and w onto the alternate screen.
func Acquire(fd int, w io.Writer) (*Session, error) {
	state, err := makeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("enter raw mode: %w", err)
	}

	out := termenv.NewOutput(w, termenv.WithProfile(termenv.Ascii))
	out.AltScreen()
	out.HideCursor()
	out.ClearScreen()

	return &Session{fd: fd, state: state, out: out}, nil
}

// Release restores the terminal. Calling it more than once is a no-op.
func (s *Session) Release() error {
	if s == nil || s.released {
		return nil
	}
	s.released = true

	s.out.ShowCursor()
	s.out.ExitAltScreen()
	if err := restore(s.fd, s.state); err != nil {
		return fmt.Errorf("restore terminal: %w", err)
	}
	return nil
}
