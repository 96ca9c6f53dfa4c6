package keyboard

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.td.teradata.com/sandbox/snake-ctl/internal/services/common"
)

type fakePort struct {
	reads    [][]byte
	readErr  error
	timeouts []time.Duration
	restored bool
	closed   bool
}

func (p *fakePort) SetReadTimeout(d time.Duration) error {
	p.timeouts = append(p.timeouts, d)
	return nil
}

func (p *fakePort) Read(b []byte) (int, error) {
	if p.readErr != nil {
		return 0, p.readErr
	}
	if len(p.reads) == 0 {
		return 0, io.EOF
	}
	n := copy(b, p.reads[0])
	p.reads = p.reads[1:]
	return n, nil
}

func (p *fakePort) Restore() error {
	p.restored = true
	return nil
}

func (p *fakePort) Close() error {
	p.closed = true
	return nil
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want common.Input
		n    int
		ok   bool
	}{
		{"up", []byte{27, '[', 'A'}, common.Input{KeyCode: common.CursorUp}, 3, true},
		{"down", []byte{27, '[', 'B'}, common.Input{KeyCode: common.CursorDown}, 3, true},
		{"right", []byte{27, '[', 'C'}, common.Input{KeyCode: common.CursorRight}, 3, true},
		{"left", []byte{27, '[', 'D'}, common.Input{KeyCode: common.CursorLeft}, 3, true},
		{"application mode up", []byte{27, 'O', 'A'}, common.Input{KeyCode: common.CursorUp}, 3, true},
		{"quit", []byte{'q'}, common.Input{Ascii: 'q'}, 1, true},
		{"first of two keys", []byte{'x', 'q'}, common.Input{Ascii: 'x'}, 1, true},
		{"arrow then key", []byte{27, '[', 'A', 'q'}, common.Input{KeyCode: common.CursorUp}, 3, true},
		{"escape then key", []byte{27, 'q'}, common.Input{Ascii: 27}, 1, true},
		{"unknown sequence", []byte{27, '[', 'Z'}, common.Input{}, 3, false},
		{"modified arrow", []byte{27, '[', '1', ';', '5', 'A', 'q'}, common.Input{}, 6, false},
		{"escape alone", []byte{27}, common.Input{}, 0, false},
		{"partial sequence", []byte{27, '['}, common.Input{}, 0, false},
		{"empty", nil, common.Input{}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, n, ok := Decode(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.n, n)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTty_PollKey(t *testing.T) {
	p := &fakePort{reads: [][]byte{{27, '[', 'B'}, {'Q'}}}
	k := newTty(p)

	in, ok, err := k.Poll(time.Millisecond)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, common.CursorDown, in.KeyCode)

	in, ok, err = k.Poll(time.Millisecond)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int('Q'), in.Ascii)

	assert.Equal(t, []time.Duration{time.Millisecond, time.Millisecond}, p.timeouts)
}

func TestTty_PollNothing(t *testing.T) {
	k := newTty(&fakePort{})

	_, ok, err := k.Poll(0)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTty_PollError(t *testing.T) {
	k := newTty(&fakePort{readErr: errors.New("input/output error")})

	_, ok, err := k.Poll(0)
	assert.False(t, ok)
	assert.ErrorContains(t, err, "read key")
}

func TestTty_Close(t *testing.T) {
	p := &fakePort{}
	k := newTty(p)

	require.NoError(t, k.Close())
	assert.True(t, p.restored)
	assert.True(t, p.closed)
}

func TestTty_PollQueuesKeysReadTogether(t *testing.T) {
	p := &fakePort{reads: [][]byte{{'x', 'q'}}}
	k := newTty(p)

	in, ok, err := k.Poll(time.Millisecond)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int('x'), in.Ascii)

	in, ok, err = k.Poll(time.Millisecond)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int('q'), in.Ascii)

	// The second key came from the queue without touching the tty.
	assert.Len(t, p.timeouts, 1)
}

func TestTty_PollCompletesSplitSequence(t *testing.T) {
	k := newTty(&fakePort{reads: [][]byte{{'q', 27, '['}, {'A'}}})

	in, ok, err := k.Poll(time.Millisecond)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int('q'), in.Ascii)

	in, ok, err = k.Poll(time.Millisecond)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, common.Input{KeyCode: common.CursorUp}, in)

	_, ok, err = k.Poll(time.Millisecond)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTty_PollLoneEscape(t *testing.T) {
	k := newTty(&fakePort{reads: [][]byte{{27}}})

	in, ok, err := k.Poll(0)
	require.NoError(t, err)
	assert.False(t, ok)

	in, ok, err = k.Poll(0)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, common.Input{Ascii: 27}, in)
}

func TestOpen_ClosesPortWhenRawModeFails(t *testing.T) {
	p := &fakePort{}
	saved := openPort
	openPort = func(string) (port, error) { return p, errors.New("inappropriate ioctl for device") }
	defer func() { openPort = saved }()

	k, err := Open("/dev/null")
	assert.Nil(t, k)
	assert.ErrorContains(t, err, "open /dev/null")
	assert.True(t, p.closed)
}
