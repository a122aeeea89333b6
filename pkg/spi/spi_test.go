package spi

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/bitbang.go/pkg/hal"
	"github.com/robotalks/bitbang.go/pkg/hal/sim"
	"github.com/robotalks/bitbang.go/pkg/trace"
)

type testBench struct {
	rec             *trace.Recorder
	miso, mosi, sck *sim.Pin
	timer           *sim.Timer
	dev             *SPI
}

func newTestBench(t *testing.T, mode Mode, options ...Option) *testBench {
	b := &testBench{
		rec:   trace.NewRecorder("spi"),
		miso:  sim.NewPin(false),
		mosi:  sim.NewPin(false),
		sck:   sim.NewPin(mode.Polarity() == IdleLow),
		timer: sim.NewTimer(),
	}
	var err error
	b.dev, err = New(mode,
		b.rec.Input(LineMISO, b.miso),
		b.rec.Output(LineMOSI, b.mosi),
		b.rec.Output(LineSCK, b.sck),
		b.rec.Timer(b.timer), options...)
	require.NoError(t, err)
	b.rec.Reset()
	return b
}

// ops flattens the capture into pin operations with a "wait" per tick.
func (b *testBench) ops() []string {
	c := b.rec.Capture()
	var ops []string
	var tick uint64
	for _, ev := range c.Events {
		for ; tick < ev.Tick; tick++ {
			ops = append(ops, "wait")
		}
		op := c.Lines[ev.Line]
		if !ev.Sample {
			if ev.High {
				op += "+"
			} else {
				op += "-"
			}
		}
		ops = append(ops, op)
	}
	for ; tick < c.Ticks; tick++ {
		ops = append(ops, "wait")
	}
	return ops
}

// transmitted returns the MOSI level at every MISO sample.
func (b *testBench) transmitted() []bool {
	c := b.rec.Capture()
	var mosi bool
	var bits []bool
	for _, ev := range c.Events {
		switch c.Lines[ev.Line] {
		case LineMOSI:
			mosi = ev.High
		case LineMISO:
			bits = append(bits, mosi)
		}
	}
	return bits
}

func TestMode(t *testing.T) {
	testCases := []struct {
		mode Mode
		pol  Polarity
		pha  Phase
	}{
		{Mode0, IdleLow, SampleLeading},
		{Mode1, IdleLow, SampleTrailing},
		{Mode2, IdleHigh, SampleLeading},
		{Mode3, IdleHigh, SampleTrailing},
	}
	for _, tc := range testCases {
		require.Equal(t, tc.pol, tc.mode.Polarity())
		require.Equal(t, tc.pha, tc.mode.Phase())
		require.Equal(t, tc.mode, ModeFrom(tc.pol, tc.pha))
		require.True(t, tc.mode.Valid())
	}
	require.False(t, Mode(4).Valid())
	require.False(t, Mode(-1).Valid())
	require.Equal(t, "mode2", Mode2.String())
}

func TestIdleClock(t *testing.T) {
	for _, mode := range []Mode{Mode0, Mode1, Mode2, Mode3} {
		for i := 0; i < 2; i++ {
			sck := sim.NewPin(mode.Polarity() == IdleLow)
			_, err := New(mode, sim.NewPin(false), sim.NewPin(false), sck, sim.NewTimer())
			require.NoError(t, err)
			require.Equal(t, mode.Polarity() == IdleHigh, sck.Level(), "%s", mode)
		}
	}
}

func TestSequencing(t *testing.T) {
	testCases := []struct {
		mode Mode
		bit  []string
	}{
		{Mode0, []string{"mosi+", "wait", "sck+", "miso", "wait", "sck-"}},
		{Mode1, []string{"mosi+", "sck+", "wait", "miso", "sck-", "wait"}},
		{Mode2, []string{"mosi+", "wait", "sck-", "miso", "wait", "sck+"}},
		{Mode3, []string{"mosi+", "sck-", "wait", "miso", "sck+", "wait"}},
	}
	for _, tc := range testCases {
		t.Run(tc.mode.String(), func(t *testing.T) {
			b := newTestBench(t, tc.mode)
			require.NoError(t, b.dev.Send(0xff))
			var expect []string
			for n := 0; n < 8; n++ {
				expect = append(expect, tc.bit...)
			}
			require.Equal(t, expect, b.ops())
			require.EqualValues(t, 16, b.timer.Ticks())
			require.Equal(t, tc.mode.Polarity() == IdleHigh, b.sck.Level())
		})
	}
}

func TestReadBeforeSend(t *testing.T) {
	b := newTestBench(t, Mode0)
	_, err := b.dev.Read()
	require.Equal(t, ErrNoData, err)
}

func TestReceive(t *testing.T) {
	b := newTestBench(t, Mode0)
	require.NoError(t, b.miso.SetHigh())
	require.NoError(t, b.dev.Send(0xff))
	v, err := b.dev.Read()
	require.NoError(t, err)
	require.Equal(t, byte(0xff), v)

	require.NoError(t, b.miso.SetLow())
	v, err = b.dev.Exchange(0xff)
	require.NoError(t, err)
	require.Equal(t, byte(0), v)
}

func TestLoopback(t *testing.T) {
	for _, mode := range []Mode{Mode0, Mode1, Mode2, Mode3} {
		for _, order := range []BitOrder{MSBFirst, LSBFirst} {
			t.Run(fmt.Sprintf("%s-%s", mode, order), func(t *testing.T) {
				line := sim.NewPin(false)
				dev, err := New(mode, line, line, sim.NewPin(false), sim.NewTimer(), WithBitOrder(order))
				require.NoError(t, err)
				v, err := dev.Exchange(0x35)
				require.NoError(t, err)
				if order == MSBFirst {
					require.Equal(t, byte(0x35), v)
				} else {
					// receive is always first-sampled MSB.
					require.Equal(t, byte(0xac), v)
				}
			})
		}
	}
}

func TestBitOrder(t *testing.T) {
	for b := 0; b < 256; b++ {
		msb := newTestBench(t, Mode1)
		require.Equal(t, MSBFirst, msb.dev.BitOrder())
		require.NoError(t, msb.dev.Send(byte(b)))

		lsb := newTestBench(t, Mode1, WithBitOrder(LSBFirst))
		require.NoError(t, lsb.dev.Send(byte(b)))

		m, l := msb.transmitted(), lsb.transmitted()
		require.Len(t, m, 8)
		for n := range m {
			require.Equal(t, m[n], l[7-n], "byte %#x bit %d", b, n)
			require.Equal(t, b&(0x80>>uint(n)) != 0, m[n])
		}
	}

	b := newTestBench(t, Mode0)
	b.dev.SetBitOrder(LSBFirst)
	require.Equal(t, LSBFirst, b.dev.BitOrder())
	require.NoError(t, b.dev.Send(0x01))
	require.Equal(t, []bool{true, false, false, false, false, false, false, false}, b.transmitted())
}

func TestTransferAndWrite(t *testing.T) {
	line := sim.NewPin(false)
	dev, err := New(Mode3, line, line, sim.NewPin(true), sim.NewTimer())
	require.NoError(t, err)
	buf := []byte{1, 2, 0xfe}
	require.NoError(t, dev.Transfer(buf))
	require.Equal(t, []byte{1, 2, 0xfe}, buf)

	n, err := dev.Write([]byte{0x10, 0x20})
	require.NoError(t, err)
	require.Equal(t, 2, n)
	v, err := dev.Read()
	require.NoError(t, err)
	require.Equal(t, byte(0x20), v)
}

func TestFailures(t *testing.T) {
	_, err := New(Mode(7), sim.NewPin(false), sim.NewPin(false), sim.NewPin(false), sim.NewTimer())
	require.Equal(t, ErrInvalidMode, err)

	sck := sim.NewPin(false)
	sck.FailAfter(0, nil)
	_, err = New(Mode0, sim.NewPin(false), sim.NewPin(false), sck, sim.NewTimer())
	var busErr *hal.BusError
	require.True(t, errors.As(err, &busErr))
	require.Equal(t, LineSCK, busErr.Line)

	b := newTestBench(t, Mode0)
	require.NoError(t, b.miso.SetHigh())
	require.NoError(t, b.dev.Send(0))
	b.miso.FailAfter(3, nil)
	require.True(t, errors.As(b.dev.Send(0), &busErr))
	require.Equal(t, LineMISO, busErr.Line)
	v, err := b.dev.Read()
	require.NoError(t, err)
	require.Equal(t, byte(0xff), v, "partial byte is not committed")

	b = newTestBench(t, Mode2)
	b.mosi.FailAfter(1, nil)
	n, err := b.dev.Write([]byte{1, 2})
	require.Zero(t, n)
	require.True(t, errors.As(err, &busErr))
	require.Equal(t, LineMOSI, busErr.Line)

	b = newTestBench(t, Mode1)
	b.timer.FailAfter(0, nil)
	var timerErr *hal.TimerError
	require.True(t, errors.As(b.dev.Send(1), &timerErr))
	_, err = b.dev.Read()
	require.Equal(t, ErrNoData, err)
}
