package periph

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"

	"github.com/robotalks/bitbang.go/pkg/hal"
)

var _ hal.Board = &Board{}

func TestAdapters(t *testing.T) {
	pin := &gpiotest.Pin{N: "GPIO99", L: gpio.Low}
	out := Output{pin}
	in := Input{pin}

	require.NoError(t, out.SetHigh())
	high, err := in.IsHigh()
	require.NoError(t, err)
	require.True(t, high)

	require.NoError(t, out.SetLow())
	high, err = in.IsHigh()
	require.NoError(t, err)
	require.False(t, high)
}

type failingPin struct {
	gpiotest.Pin
}

func (p *failingPin) Out(gpio.Level) error {
	return errors.New("read-only")
}

func TestOutputError(t *testing.T) {
	out := Output{&failingPin{}}
	require.Error(t, out.SetHigh())
	require.Error(t, out.SetLow())
}
