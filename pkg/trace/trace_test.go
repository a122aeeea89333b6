package trace

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/bitbang.go/pkg/hal"
)

type level struct {
	high bool
	err  error
}

func (l *level) SetHigh() error { return l.set(true) }
func (l *level) SetLow() error  { return l.set(false) }
func (l *level) IsHigh() (bool, error) {
	return l.high, l.err
}
func (l *level) set(high bool) error {
	if l.err != nil {
		return l.err
	}
	l.high = high
	return nil
}

func TestRecorder(t *testing.T) {
	rec := NewRecorder("test")
	rec.Source = "unit"
	var clk, data level
	clkOut := rec.Output("clk", &clk)
	dataIn := rec.Input("data", &data)
	timer := rec.Timer(hal.TimerFunc(func() error { return nil }))

	data.high = true
	for i := 0; i < 3; i++ {
		require.NoError(t, clkOut.SetHigh())
		for j := 0; j < 5; j++ {
			_, err := dataIn.IsHigh()
			require.NoError(t, err)
		}
		require.NoError(t, timer.Wait())
		require.NoError(t, clkOut.SetLow())
		require.NoError(t, timer.Wait())
	}
	require.EqualValues(t, 6, rec.Ticks())

	c := rec.Capture()
	require.Equal(t, []string{"clk", "data"}, c.Lines)
	require.Len(t, c.LineEvents("clk"), 6)
	require.Len(t, c.LineEvents("data"), 3, "polls within a tick collapse")
	require.Len(t, c.Transitions("clk", false), 6)
	require.True(t, c.LevelAt("clk", 0, false))
	require.False(t, c.LevelAt("clk", 1, true))
	require.True(t, c.LevelAt("nothing", 1, true))
	require.Nil(t, c.LineEvents("nothing"))

	out := RenderString(c)
	require.Contains(t, out, "clk  |-_-_-__|")
	require.Contains(t, out, "data |1.1.1..|")

	rec.Reset()
	require.Empty(t, rec.Capture().Events)
	require.Equal(t, []string{"clk", "data"}, rec.Capture().Lines)
}

func TestRecorderSkipsFailures(t *testing.T) {
	rec := NewRecorder("test")
	pin := &level{err: errors.New("broken")}
	require.Error(t, rec.Output("p", pin).SetHigh())
	_, err := rec.Input("p", pin).IsHigh()
	require.Error(t, err)
	require.Error(t, rec.Timer(hal.TimerFunc(func() error { return pin.err })).Wait())
	require.Empty(t, rec.Capture().Events)
	require.Zero(t, rec.Ticks())
}

func TestCaptureEncoding(t *testing.T) {
	rec := NewRecorder("spi")
	rec.Source = "unit"
	var pin level
	out := rec.Output("sck", &pin)
	require.NoError(t, out.SetHigh())
	require.NoError(t, rec.Timer(hal.TimerFunc(func() error { return nil })).Wait())
	require.NoError(t, out.SetLow())

	data, err := rec.Capture().Encode()
	require.NoError(t, err)
	c, err := DecodeCapture(data)
	require.NoError(t, err)
	require.Equal(t, "spi", c.Protocol)
	require.Equal(t, "unit", c.Source)
	require.EqualValues(t, 1, c.Ticks)
	require.Len(t, c.Events, 2)
	require.EqualValues(t, 1, c.Events[1].Tick)
	require.False(t, c.Events[1].High)

	_, err = DecodeCapture([]byte{0xff})
	require.Error(t, err)
}

func TestDefaultSource(t *testing.T) {
	require.NotEmpty(t, strings.TrimSpace(DefaultSource()))
}
