// Package periph binds drivers to host GPIO through periph.io.
package periph

import (
	"fmt"
	"sync"
	"time"

	"github.com/golang/glog"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/robotalks/bitbang.go/pkg/hal"
)

var initOnce struct {
	sync.Once
	err error
}

// Init initializes periph host drivers once per process.
func Init() error {
	initOnce.Do(func() {
		state, err := host.Init()
		if err != nil {
			initOnce.err = err
			return
		}
		for _, d := range state.Failed {
			glog.Warningf("periph: driver %s failed: %v", d.D, d.Err)
		}
	})
	return initOnce.err
}

// Output adapts a periph pin to hal.OutputPin.
type Output struct {
	gpio.PinOut
}

// SetHigh implements hal.OutputPin.
func (p Output) SetHigh() error {
	return p.Out(gpio.High)
}

// SetLow implements hal.OutputPin.
func (p Output) SetLow() error {
	return p.Out(gpio.Low)
}

// Input adapts a periph pin to hal.InputPin.
type Input struct {
	gpio.PinIn
}

// IsHigh implements hal.InputPin. periph reads cannot fail.
func (p Input) IsHigh() (bool, error) {
	return p.Read() == gpio.High, nil
}

// Board implements hal.Board with pins looked up by name in the periph
// registry, e.g. "GPIO17".
type Board struct {
	Pull gpio.Pull
}

// NewBoard initializes periph and creates a Board.
func NewBoard() (*Board, error) {
	if err := Init(); err != nil {
		return nil, err
	}
	return &Board{Pull: gpio.PullNoChange}, nil
}

func (b *Board) pin(name string) (gpio.PinIO, error) {
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("periph: unknown pin %q", name)
	}
	return p, nil
}

// Output implements hal.Board.
func (b *Board) Output(name string) (hal.OutputPin, error) {
	p, err := b.pin(name)
	if err != nil {
		return nil, err
	}
	// leave the line where it is until a driver sets it.
	if err := p.Out(p.Read()); err != nil {
		return nil, err
	}
	return Output{p}, nil
}

// Input implements hal.Board.
func (b *Board) Input(name string) (hal.InputPin, error) {
	p, err := b.pin(name)
	if err != nil {
		return nil, err
	}
	if err := p.In(b.Pull, gpio.NoEdge); err != nil {
		return nil, err
	}
	return Input{p}, nil
}

// Timer implements hal.Board.
func (b *Board) Timer(period time.Duration) (hal.Timer, error) {
	return hal.NewSpinTimer(period)
}

// Close implements hal.Board. periph pins stay configured.
func (b *Board) Close() error {
	return nil
}
