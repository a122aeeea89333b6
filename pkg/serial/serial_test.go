package serial

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/bitbang.go/pkg/hal"
	"github.com/robotalks/bitbang.go/pkg/hal/sim"
	"github.com/robotalks/bitbang.go/pkg/trace"
)

var (
	_ io.ByteWriter = &Serial{}
	_ io.ByteReader = &Serial{}
	_ io.ReadWriter = &Serial{}
)

// transmit writes p and returns the capture of the TX line.
func transmit(t *testing.T, p ...byte) *trace.Capture {
	rec := trace.NewRecorder("serial")
	port := New(rec.Output(LineTX, sim.NewPin(true)), nil, rec.Timer(sim.NewTimer()))
	n, err := port.Write(p)
	require.NoError(t, err)
	require.Equal(t, len(p), n)
	return rec.Capture()
}

// receive reads n bytes by replaying the TX line of c on the RX line.
func receive(t *testing.T, c *trace.Capture, n int) []byte {
	timer := sim.NewTimer()
	rx := sim.NewReplay(c, LineTX, timer)
	rx.Idle = true
	port := New(nil, rx, timer)
	out := make([]byte, n)
	for i := range out {
		read, err := port.Read(out[i : i+1])
		require.NoError(t, err)
		require.Equal(t, 1, read)
	}
	return out
}

func TestWriteFrame(t *testing.T) {
	c := transmit(t, 0x35)
	require.EqualValues(t, 10, c.Ticks)
	var levels []bool
	for tick := uint64(0); tick < 10; tick++ {
		levels = append(levels, c.LevelAt(LineTX, tick, true))
	}
	// start, 1 0 1 0 1 1 0 0 (0x35 LSB first), stop
	require.Equal(t, []bool{false, true, false, true, false, true, true, false, false, true}, levels)
}

func TestRoundTrip(t *testing.T) {
	for b := 0; b < 256; b++ {
		c := transmit(t, byte(b))
		require.Equal(t, []byte{byte(b)}, receive(t, c, 1), "byte %#x", b)
	}
}

func TestRoundTripStream(t *testing.T) {
	msg := []byte("Hello, World!")
	require.Equal(t, msg, receive(t, transmit(t, msg...), len(msg)))
}

func TestReadWaitsForStartBit(t *testing.T) {
	timer := sim.NewTimer()
	polls := 0
	rx := hal.InputFunc(func() (bool, error) {
		polls++
		// idle for a while before the frame, then all data bits high.
		return polls < 100 && polls != 50, nil
	})
	port := New(nil, rx, timer)
	b, err := port.ReadByte()
	require.NoError(t, err)
	require.Equal(t, byte(0xff), b)
	require.Equal(t, 50+8, polls)
	require.EqualValues(t, 10, timer.Ticks())
}

func TestMissingPins(t *testing.T) {
	port := New(nil, nil, sim.NewTimer())
	require.Equal(t, ErrNoTransmitter, port.WriteByte(1))
	_, err := port.ReadByte()
	require.Equal(t, ErrNoReceiver, err)
	n, err := port.Read(nil)
	require.NoError(t, err)
	require.Zero(t, n)
	require.NoError(t, port.Flush())
}

func TestFailures(t *testing.T) {
	tx := sim.NewPin(true)
	tx.FailAfter(4, nil)
	port := New(tx, nil, sim.NewTimer())
	n, err := port.Write([]byte{1, 2})
	require.Zero(t, n)
	var busErr *hal.BusError
	require.True(t, errors.As(err, &busErr))
	require.Equal(t, LineTX, busErr.Line)

	timer := sim.NewTimer()
	timer.FailAfter(3, nil)
	port = New(sim.NewPin(true), sim.NewPin(false), timer)
	var timerErr *hal.TimerError
	require.True(t, errors.As(port.WriteByte(0), &timerErr))
	timer.FailAfter(0, nil)
	_, err = port.ReadByte()
	require.True(t, errors.As(err, &timerErr))

	rx := sim.NewPin(false)
	rx.FailAfter(2, nil)
	port = New(nil, rx, sim.NewTimer())
	_, err = port.ReadByte()
	require.True(t, errors.As(err, &busErr))
	require.Equal(t, LineRX, busErr.Line)
}
