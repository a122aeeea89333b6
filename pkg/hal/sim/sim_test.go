package sim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/bitbang.go/pkg/hal"
	"github.com/robotalks/bitbang.go/pkg/trace"
)

var _ hal.Board = &Board{}

func TestTimerFault(t *testing.T) {
	timer := NewTimer()
	require.NoError(t, timer.Wait())
	broken := errors.New("broken")
	timer.FailAfter(2, broken)
	require.NoError(t, timer.Wait())
	require.NoError(t, timer.Wait())
	require.Equal(t, broken, timer.Wait())
	require.Equal(t, broken, timer.Wait())
	require.EqualValues(t, 3, timer.Ticks())
}

func TestPin(t *testing.T) {
	pin := NewPin(true)
	require.True(t, pin.Level())
	require.NoError(t, pin.SetLow())
	high, err := pin.IsHigh()
	require.NoError(t, err)
	require.False(t, high)

	pin.FailAfter(1, nil)
	require.NoError(t, pin.SetHigh())
	require.Equal(t, ErrInjected, pin.SetLow())
	_, err = pin.IsHigh()
	require.Equal(t, ErrInjected, err)
	require.True(t, pin.Level())
}

func TestReplay(t *testing.T) {
	rec := trace.NewRecorder("test")
	out := rec.Output("line", NewPin(false))
	timer := rec.Timer(NewTimer())
	require.NoError(t, timer.Wait())
	require.NoError(t, out.SetLow())
	require.NoError(t, timer.Wait())
	require.NoError(t, out.SetHigh())

	clock := NewTimer()
	replay := NewReplay(rec.Capture(), "line", clock)
	replay.Idle = true
	var levels []bool
	for i := 0; i < 4; i++ {
		high, err := replay.IsHigh()
		require.NoError(t, err)
		levels = append(levels, high)
		require.NoError(t, clock.Wait())
	}
	require.Equal(t, []bool{true, false, true, true}, levels)
}

func TestBoard(t *testing.T) {
	board := NewBoard()
	out, err := board.Output("mosi")
	require.NoError(t, err)
	in, err := board.Input("mosi")
	require.NoError(t, err)
	require.NoError(t, out.SetHigh())
	high, err := in.IsHigh()
	require.NoError(t, err)
	require.True(t, high)

	t1, err := board.Timer(0)
	require.NoError(t, err)
	t2, err := board.Timer(0)
	require.NoError(t, err)
	require.NoError(t, t1.Wait())
	require.NoError(t, t2.Wait())
	require.EqualValues(t, 2, board.SimTimer().Ticks())
	require.NoError(t, board.Close())
}
