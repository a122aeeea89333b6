// Package i2s implements a bit-banged I2S transmitter.
//
// The driver produces serial data (SD), word select (WS) and bit clock (SCK)
// from three output pins. Every bit takes two timer ticks: the data line is
// set, SCK rises after one tick and falls after the next, so the receiver
// samples on the rising edge. The timer must tick at twice the bit rate.
package i2s

import (
	"errors"
	"fmt"

	"github.com/golang/glog"

	"github.com/robotalks/bitbang.go/pkg/hal"
)

// Mode selects the word select framing.
type Mode int

const (
	// ModeI2S is standard (Philips) I2S: WS changes one bit before the
	// channel it announces.
	ModeI2S Mode = iota
	// ModeLeftJustified changes WS together with the first bit of a channel.
	ModeLeftJustified
)

// String implements fmt.Stringer.
func (m Mode) String() string {
	switch m {
	case ModeI2S:
		return "i2s"
	case ModeLeftJustified:
		return "left-justified"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Width is the number of bits in a word.
type Width int

// Supported widths.
const (
	Width8  Width = 8
	Width16 Width = 16
	Width32 Width = 32
)

// Valid checks if the width is supported.
func (w Width) Valid() bool {
	return w == Width8 || w == Width16 || w == Width32
}

func (w Width) mask() uint32 {
	return uint32(uint64(1)<<uint(w) - 1)
}

// Line names used in errors.
const (
	LineSD  = "sd"
	LineWS  = "ws"
	LineSCK = "sck"
)

var (
	// ErrLengthMismatch indicates left and right channels differ in length.
	ErrLengthMismatch = errors.New("left and right channel length mismatch")
	// ErrInvalidWidth indicates an unsupported word width.
	ErrInvalidWidth = errors.New("invalid word width")
)

// I2S is the transmitter. It owns its pins and timer.
type I2S struct {
	mode  Mode
	sd    hal.OutputPin
	ws    hal.OutputPin
	sck   hal.OutputPin
	timer hal.Timer
}

// New creates an I2S transmitter.
func New(mode Mode, sd, ws, sck hal.OutputPin, timer hal.Timer) *I2S {
	glog.V(4).Infof("i2s: new transmitter, mode %s", mode)
	return &I2S{mode: mode, sd: sd, ws: ws, sck: sck, timer: timer}
}

// Mode returns the framing mode.
func (d *I2S) Mode() Mode {
	return d.mode
}

// Write8 transmits 8-bit stereo frames.
func (d *I2S) Write8(left, right []int8) error {
	if len(left) != len(right) {
		return ErrLengthMismatch
	}
	return d.WriteStream(Width8, Slice(left), Slice(right))
}

// Write16 transmits 16-bit stereo frames.
func (d *I2S) Write16(left, right []int16) error {
	if len(left) != len(right) {
		return ErrLengthMismatch
	}
	return d.WriteStream(Width16, Slice(left), Slice(right))
}

// Write32 transmits 32-bit stereo frames.
func (d *I2S) Write32(left, right []int32) error {
	if len(left) != len(right) {
		return ErrLengthMismatch
	}
	return d.WriteStream(Width32, Slice(left), Slice(right))
}

// WriteStream transmits frames pulled from left and right, one word from
// each per frame, until either source is exhausted. Words wider than width
// are truncated to their low bits.
//
// A failed pin or timer aborts the transfer mid-frame; the lines are left
// wherever the failure found them.
func (d *I2S) WriteStream(width Width, left, right Source) error {
	if !width.Valid() {
		return ErrInvalidWidth
	}
	frames := 0
	defer func() {
		if glog.V(5) {
			glog.Infof("i2s: %d frames of %d bits", frames, width)
		}
	}()

	// In standard mode WS is low when the first left bit goes out. The very
	// first frame of a session is one bit short on WS if the line was left
	// high before: there is no way to know its prior level.
	if d.mode == ModeI2S {
		if err := d.setWS(false); err != nil {
			return err
		}
	}
	for {
		l, ok := left.Next()
		if !ok {
			return nil
		}
		r, ok := right.Next()
		if !ok {
			return nil
		}
		if err := d.writeFrame(newCursor(l, width), newCursor(r, width)); err != nil {
			return err
		}
		frames++
	}
}

func (d *I2S) writeFrame(left, right cursor) error {
	switch d.mode {
	case ModeLeftJustified:
		if err := d.setWS(false); err != nil {
			return err
		}
		if err := d.writeBits(&left, 0); err != nil {
			return err
		}
		if err := d.setWS(true); err != nil {
			return err
		}
		return d.writeBits(&right, 0)
	default:
		if err := d.writeBits(&left, 1); err != nil {
			return err
		}
		if err := d.setWS(true); err != nil {
			return err
		}
		if err := d.writeBits(&left, 0); err != nil {
			return err
		}
		if err := d.writeBits(&right, 1); err != nil {
			return err
		}
		if err := d.setWS(false); err != nil {
			return err
		}
		return d.writeBits(&right, 0)
	}
}

// writeBits emits bits from c until keep bits remain.
func (d *I2S) writeBits(c *cursor, keep int) error {
	for c.remaining() > keep {
		bit, _ := c.next()
		if err := d.writeBit(bit); err != nil {
			return err
		}
	}
	return nil
}

func (d *I2S) writeBit(bit bool) error {
	if err := hal.SetLevel(d.sd, bit); err != nil {
		return hal.BusErr(LineSD, err)
	}
	if err := d.wait(); err != nil {
		return err
	}
	if err := d.sck.SetHigh(); err != nil {
		return hal.BusErr(LineSCK, err)
	}
	if err := d.wait(); err != nil {
		return err
	}
	return hal.BusErr(LineSCK, d.sck.SetLow())
}

func (d *I2S) setWS(high bool) error {
	return hal.BusErr(LineWS, hal.SetLevel(d.ws, high))
}

func (d *I2S) wait() error {
	return hal.TimerErr(d.timer.Wait())
}
