// Package sim provides simulated pins and timers.
//
// Simulated time only advances when a driver waits for a tick, so a
// simulated transfer is deterministic and runs as fast as the host allows.
package sim

import (
	"errors"
	"time"

	"github.com/robotalks/bitbang.go/pkg/hal"
	"github.com/robotalks/bitbang.go/pkg/trace"
)

// ErrInjected is the default error returned by injected failures.
var ErrInjected = errors.New("injected failure")

type fault struct {
	remaining int
	err       error
}

func (f *fault) check() error {
	if f.err == nil {
		return nil
	}
	if f.remaining > 0 {
		f.remaining--
		return nil
	}
	return f.err
}

func (f *fault) set(n int, err error) {
	if err == nil {
		err = ErrInjected
	}
	f.remaining, f.err = n, err
}

// Timer is a simulated periodic timer.
type Timer struct {
	ticks uint64
	fault fault
}

// NewTimer creates a Timer.
func NewTimer() *Timer {
	return &Timer{}
}

// Wait implements hal.Timer.
func (t *Timer) Wait() error {
	if err := t.fault.check(); err != nil {
		return err
	}
	t.ticks++
	return nil
}

// Ticks returns the number of ticks elapsed.
func (t *Timer) Ticks() uint64 {
	return t.ticks
}

// FailAfter makes Wait fail with err after n successful waits.
// A nil err uses ErrInjected.
func (t *Timer) FailAfter(n int, err error) {
	t.fault.set(n, err)
}

// Pin is a simulated line which can be both driven and sampled.
type Pin struct {
	level bool
	fault fault
}

// NewPin creates a Pin at the initial level.
func NewPin(high bool) *Pin {
	return &Pin{level: high}
}

// SetHigh implements hal.OutputPin.
func (p *Pin) SetHigh() error {
	return p.set(true)
}

// SetLow implements hal.OutputPin.
func (p *Pin) SetLow() error {
	return p.set(false)
}

// IsHigh implements hal.InputPin.
func (p *Pin) IsHigh() (bool, error) {
	if err := p.fault.check(); err != nil {
		return false, err
	}
	return p.level, nil
}

// Level returns the current level without side effects.
func (p *Pin) Level() bool {
	return p.level
}

// FailAfter makes the pin fail with err after n successful operations.
// A nil err uses ErrInjected.
func (p *Pin) FailAfter(n int, err error) {
	p.fault.set(n, err)
}

func (p *Pin) set(high bool) error {
	if err := p.fault.check(); err != nil {
		return err
	}
	p.level = high
	return nil
}

// Replay is an input which plays back a recorded line.
// The level at any moment is the level the line had at the same tick of
// the capture, counted by the Replay's own timer. Before the first recorded
// event the line sits at Idle.
type Replay struct {
	Idle bool

	capture *trace.Capture
	line    string
	timer   *Timer
}

// NewReplay creates a Replay of line in capture, paced by timer.
func NewReplay(capture *trace.Capture, line string, timer *Timer) *Replay {
	return &Replay{capture: capture, line: line, timer: timer}
}

// IsHigh implements hal.InputPin.
func (r *Replay) IsHigh() (bool, error) {
	return r.capture.LevelAt(r.line, r.timer.Ticks(), r.Idle), nil
}

// Board is a hal.Board made of simulated pins.
// An input named after an existing output samples that output.
type Board struct {
	pins  map[string]*Pin
	timer *Timer
}

// NewBoard creates a Board.
func NewBoard() *Board {
	return &Board{pins: make(map[string]*Pin), timer: NewTimer()}
}

// Pin returns the named pin, creating it low if missing.
func (b *Board) Pin(name string) *Pin {
	pin, ok := b.pins[name]
	if !ok {
		pin = NewPin(false)
		b.pins[name] = pin
	}
	return pin
}

// Output implements hal.Board.
func (b *Board) Output(name string) (hal.OutputPin, error) {
	return b.Pin(name), nil
}

// Input implements hal.Board.
func (b *Board) Input(name string) (hal.InputPin, error) {
	return b.Pin(name), nil
}

// Timer implements hal.Board. All timers of a Board share one tick count.
func (b *Board) Timer(time.Duration) (hal.Timer, error) {
	return b.timer, nil
}

// SimTimer returns the shared simulated timer.
func (b *Board) SimTimer() *Timer {
	return b.timer
}

// Close implements hal.Board.
func (b *Board) Close() error {
	return nil
}
