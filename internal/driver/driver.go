package driver

import (
	"context"
	"fmt"
	"time"

	"github.td.teradata.com/sandbox/snake-ctl/internal/log"
	"github.td.teradata.com/sandbox/snake-ctl/internal/services/common"
	"github.td.teradata.com/sandbox/snake-ctl/internal/services/game"
)

const (
	defFrame = 100 * time.Millisecond
	defPoll  = time.Millisecond
)

// Driver runs the game one frame at a time: clear, advance, draw, read a key.
type Driver struct {
	game     *game.Game
	renderer common.Renderer
	keyboard common.Keyboard
	frame    time.Duration
	poll     time.Duration
	sleep    func(time.Duration)
	last     layout
	ticks    int
}

type Option func(*Driver)

// WithFrame sets the tick duration and the part of it spent polling input.
func WithFrame(frame time.Duration, poll time.Duration) Option {
	return func(d *Driver) {
		d.frame = frame
		d.poll = poll
	}
}

func WithSleep(sleep func(time.Duration)) Option {
	return func(d *Driver) {
		d.sleep = sleep
	}
}

func New(g *game.Game, r common.Renderer, k common.Keyboard, opts ...Option) *Driver {
	d := &Driver{
		game:     g,
		renderer: r,
		keyboard: k,
		frame:    defFrame,
		poll:     defPoll,
		sleep:    time.Sleep,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run loops until the quit key, an I/O error or ctx is done.
func (d *Driver) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		running, err := d.RunTick()
		if err != nil {
			return err
		}
		if !running {
			log.Info("Quit requested", "score", d.game.Score(), "ticks", d.ticks)
			return nil
		}
	}
}

// RunTick performs one frame. It returns false once quit was requested.
func (d *Driver) RunTick() (bool, error) {
	cols, rows, err := d.renderer.Size()
	if err != nil {
		return false, fmt.Errorf("read terminal size: %w", err)
	}

	l := newLayout(cols, rows, d.game.Size())
	if l != d.last {
		// Resized, wipe whatever was drawn at the old position.
		d.renderer.Cls()
		d.last = l
	} else {
		l.clear(d.renderer)
	}

	if d.game.AdvanceTick() {
		log.Debug("Food eaten", "score", d.game.Score(), "food", d.game.Food())
	}
	d.ticks++

	l.draw(d.renderer, d.game)
	if err := d.renderer.Flush(); err != nil {
		return false, fmt.Errorf("draw frame: %w", err)
	}

	d.sleep(d.frame - d.poll)
	in, ok, err := d.keyboard.Poll(d.poll)
	if err != nil {
		return false, fmt.Errorf("poll keyboard: %w", err)
	}
	if !ok {
		return true, nil
	}
	return d.process(in), nil
}

func (d *Driver) process(in common.Input) bool {
	if in.KeyCode != 0 {
		switch in.KeyCode {
		case common.CursorUp:
			d.steer(game.Up)
		case common.CursorDown:
			d.steer(game.Down)
		case common.CursorLeft:
			d.steer(game.Left)
		case common.CursorRight:
			d.steer(game.Right)
		}
		return true
	}

	switch in.Ascii {
	case 'q', 'Q':
		return false
	}
	return true
}

func (d *Driver) steer(dir game.Direction) {
	if !d.game.SetDirection(dir) {
		log.Debugf("Ignored reverse of %s", d.game.Direction())
	}
}
