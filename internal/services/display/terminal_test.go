package display

import (
	"bytes"
	"errors"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedSize(cols, rows int) func() (int, int, error) {
	return func() (int, int, error) {
		return cols, rows, nil
	}
}

func newTestTerminal(sink *bytes.Buffer, cols, rows int) *Terminal {
	t := NewTerminal(sink, fixedSize(cols, rows), termenv.Ascii)
	_, _, _ = t.Size()
	return t
}

func TestTerminal_QueuesUntilFlush(t *testing.T) {
	sink := &bytes.Buffer{}
	term := newTestTerminal(sink, 80, 24)

	require.True(t, term.PrintAt(3, 2, Plain, "hello"))
	assert.Zero(t, sink.Len())
	assert.NotZero(t, term.Pending())

	require.NoError(t, term.Flush())
	assert.Equal(t, "\x1b[2;3Hhello", sink.String())
	assert.Zero(t, term.Pending())
}

func TestTerminal_FlushEmptyWritesNothing(t *testing.T) {
	sink := &bytes.Buffer{}
	term := newTestTerminal(sink, 80, 24)

	require.NoError(t, term.Flush())
	assert.Zero(t, sink.Len())
}

func TestTerminal_OutOfBounds(t *testing.T) {
	sink := &bytes.Buffer{}
	term := newTestTerminal(sink, 10, 5)

	assert.False(t, term.PrintAt(0, 1, Plain, "x"))
	assert.False(t, term.PrintAt(11, 1, Plain, "x"))
	assert.False(t, term.PrintAt(1, 6, Plain, "x"))
	assert.Zero(t, term.Pending())
}

func TestTerminal_ClipsAtRightEdge(t *testing.T) {
	sink := &bytes.Buffer{}
	term := newTestTerminal(sink, 10, 5)

	term.PrintAt(7, 1, Plain, "██████")
	require.NoError(t, term.Flush())

	assert.Equal(t, "\x1b[1;7H████", sink.String())
}

func TestTerminal_PrintAtf(t *testing.T) {
	sink := &bytes.Buffer{}
	term := newTestTerminal(sink, 40, 5)

	term.PrintAtf(1, 1, ScoreLabel, "Score : %d", 12)
	require.NoError(t, term.Flush())

	assert.Equal(t, "\x1b[1;1HScore : 12", sink.String())
}

func TestTerminal_ClearLine(t *testing.T) {
	sink := &bytes.Buffer{}
	term := newTestTerminal(sink, 40, 5)

	term.ClearLine(4)
	require.NoError(t, term.Flush())

	assert.Equal(t, "\x1b[4;1H\x1b[2K", sink.String())
}

func TestTerminal_StylesUseProfile(t *testing.T) {
	sink := &bytes.Buffer{}
	term := NewTerminal(sink, fixedSize(40, 5), termenv.ANSI)
	_, _, _ = term.Size()

	term.PrintAt(1, 1, Food, "██")
	term.PrintAt(1, 2, Plain, "██")
	require.NoError(t, term.Flush())

	out := sink.String()
	assert.Contains(t, out, "\x1b[31m██")
	assert.Contains(t, out, "\x1b[2;1H██")
}

func TestTerminal_SizeError(t *testing.T) {
	term := NewTerminal(&bytes.Buffer{}, func() (int, int, error) {
		return 0, 0, errors.New("not a terminal")
	}, termenv.Ascii)

	_, _, err := term.Size()
	assert.EqualError(t, err, "not a terminal")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func TestTerminal_FlushError(t *testing.T) {
	term := NewTerminal(failingWriter{}, fixedSize(10, 5), termenv.Ascii)
	_, _, _ = term.Size()
	term.PrintAt(1, 1, Plain, "x")

	err := term.Flush()
	assert.ErrorContains(t, err, "broken pipe")
	assert.Zero(t, term.Pending())
}
