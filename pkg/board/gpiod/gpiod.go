// Package gpiod binds drivers to Linux GPIO character device lines.
package gpiod

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/golang/glog"
	"github.com/warthog618/gpiod"

	"github.com/robotalks/bitbang.go/pkg/hal"
)

// Line is the subset of *gpiod.Line used by the board.
type Line interface {
	SetValue(int) error
	Value() (int, error)
	Reconfigure(...gpiod.LineConfigOption) error
	Close() error
}

// Chip requests lines by offset.
type Chip interface {
	RequestLine(offset int, options ...gpiod.LineReqOption) (Line, error)
	Close() error
}

type chip struct {
	*gpiod.Chip
}

func (c chip) RequestLine(offset int, options ...gpiod.LineReqOption) (Line, error) {
	l, err := c.Chip.RequestLine(offset, options...)
	if err != nil {
		return nil, err
	}
	return l, nil
}

// Output adapts a requested line to hal.OutputPin.
type Output struct {
	Line
}

// SetHigh implements hal.OutputPin.
func (l Output) SetHigh() error {
	return l.SetValue(1)
}

// SetLow implements hal.OutputPin.
func (l Output) SetLow() error {
	return l.SetValue(0)
}

// Input adapts a requested line to hal.InputPin.
type Input struct {
	Line
}

// IsHigh implements hal.InputPin.
func (l Input) IsHigh() (bool, error) {
	v, err := l.Value()
	return v != 0, err
}

// Board implements hal.Board on one GPIO chip. Pins are named by line
// offset, e.g. "17".
//
// A line is requested from the kernel once and held until Close, so later
// drivers on the same offset reuse it. An input on a line held as output
// reads back the driven level.
type Board struct {
	chip Chip

	lock  sync.Mutex
	lines map[int]*heldLine
}

type heldLine struct {
	Line
	output bool
}

// NewBoard opens the chip, e.g. "gpiochip0".
func NewBoard(name string) (*Board, error) {
	c, err := gpiod.NewChip(name, gpiod.WithConsumer("bitbang"))
	if err != nil {
		return nil, err
	}
	glog.V(2).Infof("gpiod: opened %s", name)
	return NewBoardWithChip(chip{c}), nil
}

// NewBoardWithChip creates a Board on an opened chip.
func NewBoardWithChip(c Chip) *Board {
	return &Board{chip: c, lines: make(map[int]*heldLine)}
}

func (b *Board) line(name string, output bool) (*heldLine, error) {
	offset, err := strconv.Atoi(name)
	if err != nil {
		return nil, fmt.Errorf("gpiod: invalid line offset %q", name)
	}
	b.lock.Lock()
	defer b.lock.Unlock()
	if l := b.lines[offset]; l != nil {
		if output && !l.output {
			if err := l.Reconfigure(gpiod.AsOutput(0)); err != nil {
				return nil, err
			}
			l.output = true
			glog.V(4).Infof("gpiod: line %d switched to output", offset)
		}
		return l, nil
	}
	var opt gpiod.LineReqOption = gpiod.AsInput
	if output {
		opt = gpiod.AsOutput(0)
	}
	l, err := b.chip.RequestLine(offset, opt)
	if err != nil {
		return nil, err
	}
	held := &heldLine{Line: l, output: output}
	b.lines[offset] = held
	return held, nil
}

// Output implements hal.Board.
func (b *Board) Output(name string) (hal.OutputPin, error) {
	l, err := b.line(name, true)
	if err != nil {
		return nil, err
	}
	return Output{l.Line}, nil
}

// Input implements hal.Board.
func (b *Board) Input(name string) (hal.InputPin, error) {
	l, err := b.line(name, false)
	if err != nil {
		return nil, err
	}
	return Input{l.Line}, nil
}

// Timer implements hal.Board.
func (b *Board) Timer(period time.Duration) (hal.Timer, error) {
	return hal.NewSpinTimer(period)
}

// Close releases all requested lines and the chip.
func (b *Board) Close() error {
	b.lock.Lock()
	lines := b.lines
	b.lines = make(map[int]*heldLine)
	b.lock.Unlock()
	var errs hal.AggregatedError
	for _, l := range lines {
		errs.Add(l.Close())
	}
	errs.Add(b.chip.Close())
	return errs.Aggregate()
}
