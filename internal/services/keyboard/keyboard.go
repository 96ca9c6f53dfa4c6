package keyboard

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/pkg/term"
	"github.td.teradata.com/sandbox/snake-ctl/internal/services/common"
)

const DefaultDevice = "/dev/tty"

type port interface {
	SetReadTimeout(d time.Duration) error
	Read(b []byte) (int, error)
	Restore() error
	Close() error
}

// Tty polls a raw mode terminal for key presses. Bytes that arrive together
// are queued and handed out one key per poll.
type Tty struct {
	port    port
	buf     []byte
	pending []byte
}

var openPort = func(device string) (port, error) {
	t, err := term.Open(device, term.RawMode)
	if t == nil {
		return nil, err
	}
	return t, err
}

func Open(device string) (*Tty, error) {
	p, err := openPort(device)
	if err != nil {
		if p != nil {
			_ = p.Close()
		}
		return nil, fmt.Errorf("open %s: %w", device, err)
	}
	return newTty(p), nil
}

func newTty(p port) *Tty {
	return &Tty{port: p, buf: make([]byte, 16)}
}

// Poll returns the oldest queued key. The terminal is only read when the
// queue holds no complete key, waiting at most timeout. The read timeout
// has a granularity of 100ms; shorter timeouts make the read non-blocking.
func (k *Tty) Poll(timeout time.Duration) (common.Input, bool, error) {
	in, n, ok := Decode(k.pending)
	if n == 0 {
		read, err := k.fill(timeout)
		if err != nil {
			return common.Input{}, false, err
		}
		in, n, ok = Decode(k.pending)
		if n == 0 && read == 0 && len(k.pending) > 0 {
			// Nothing followed the escape, so it was pressed on its own.
			in, n, ok = common.Input{Ascii: int(k.pending[0])}, 1, true
		}
	}
	k.pending = k.pending[n:]
	return in, ok, nil
}

func (k *Tty) fill(timeout time.Duration) (int, error) {
	if err := k.port.SetReadTimeout(timeout); err != nil {
		return 0, fmt.Errorf("set read timeout: %w", err)
	}

	n, err := k.port.Read(k.buf)
	if errors.Is(err, io.EOF) || (err == nil && n == 0) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read key: %w", err)
	}
	k.pending = append(k.pending, k.buf[:n]...)
	return n, nil
}

func (k *Tty) Close() error {
	rerr := k.port.Restore()
	if err := k.port.Close(); err != nil {
		return err
	}
	return rerr
}

// Decode takes the first key off the front of bs and reports how many bytes
// it used. Cursor keys arrive as "ESC [ x" or "ESC O x". Other CSI sequences
// are consumed but not reported. n is 0 when bs is empty or holds only the
// start of an escape sequence.
func Decode(bs []byte) (in common.Input, n int, ok bool) {
	if len(bs) == 0 {
		return common.Input{}, 0, false
	}
	if bs[0] != 27 {
		return common.Input{Ascii: int(bs[0])}, 1, true
	}
	if len(bs) == 1 {
		return common.Input{}, 0, false
	}

	var final int
	switch bs[1] {
	case '[':
		// Parameter and intermediate bytes precede the final byte.
		final = 2
		for final < len(bs) && bs[final] >= 0x20 && bs[final] <= 0x3f {
			final++
		}
	case 'O':
		final = 2
	default:
		return common.Input{Ascii: 27}, 1, true
	}
	if final >= len(bs) {
		return common.Input{}, 0, false
	}

	n = final + 1
	if final != 2 {
		return common.Input{}, n, false
	}
	switch bs[2] {
	case 'A':
		return common.Input{KeyCode: common.CursorUp}, n, true
	case 'B':
		return common.Input{KeyCode: common.CursorDown}, n, true
	case 'C':
		return common.Input{KeyCode: common.CursorRight}, n, true
	case 'D':
		return common.Input{KeyCode: common.CursorLeft}, n, true
	}
	return common.Input{}, n, false
}
