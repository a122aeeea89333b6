// Package serial implements a bit-banged asynchronous serial port (UART).
//
// Frames are 8N1: a low start bit, eight data bits least significant first
// and a high stop bit. There is no clock line; each bit lasts exactly one
// timer tick, so the timer must tick at the baud rate.
package serial

import (
	"errors"

	"github.com/golang/glog"

	"github.com/robotalks/bitbang.go/pkg/hal"
)

// Line names used in errors.
const (
	LineTX = "tx"
	LineRX = "rx"
)

var (
	// ErrNoTransmitter indicates writing to a port without a TX pin.
	ErrNoTransmitter = errors.New("no transmitter")
	// ErrNoReceiver indicates reading from a port without an RX pin.
	ErrNoReceiver = errors.New("no receiver")
)

// Serial is the port. It owns its pins and timer.
// Either pin may be nil for a one-directional port.
type Serial struct {
	tx    hal.OutputPin
	rx    hal.InputPin
	timer hal.Timer
}

// New creates a serial port.
func New(tx hal.OutputPin, rx hal.InputPin, timer hal.Timer) *Serial {
	glog.V(4).Infof("serial: new port, tx=%v rx=%v", tx != nil, rx != nil)
	return &Serial{tx: tx, rx: rx, timer: timer}
}

// WriteByte transmits one frame. It implements io.ByteWriter.
func (s *Serial) WriteByte(b byte) error {
	if s.tx == nil {
		return ErrNoTransmitter
	}
	if err := s.tx.SetLow(); err != nil { // start bit
		return hal.BusErr(LineTX, err)
	}
	if err := s.wait(); err != nil {
		return err
	}
	for n := 0; n < 8; n++ {
		if err := hal.SetLevel(s.tx, b&1 != 0); err != nil {
			return hal.BusErr(LineTX, err)
		}
		b >>= 1
		if err := s.wait(); err != nil {
			return err
		}
	}
	if err := s.tx.SetHigh(); err != nil { // stop bit
		return hal.BusErr(LineTX, err)
	}
	return s.wait()
}

// ReadByte receives one frame. It implements io.ByteReader.
//
// ReadByte spins on the RX line until it reads low, so it blocks for as long
// as the line stays idle. Start and stop bits are not validated.
func (s *Serial) ReadByte() (byte, error) {
	if s.rx == nil {
		return 0, ErrNoReceiver
	}
	for {
		high, err := s.rx.IsHigh()
		if err != nil {
			return 0, hal.BusErr(LineRX, err)
		}
		if !high {
			break
		}
	}
	if err := s.wait(); err != nil { // skip start bit
		return 0, err
	}
	var b byte
	for n := 0; n < 8; n++ {
		high, err := s.rx.IsHigh()
		if err != nil {
			return 0, hal.BusErr(LineRX, err)
		}
		b >>= 1
		if high {
			b |= 0x80
		}
		if err := s.wait(); err != nil {
			return 0, err
		}
	}
	// stop bit
	if err := s.wait(); err != nil {
		return 0, err
	}
	return b, nil
}

// Write transmits p frame by frame. It implements io.Writer.
func (s *Serial) Write(p []byte) (int, error) {
	glog.V(5).Infof("serial: write %d bytes", len(p))
	for n, b := range p {
		if err := s.WriteByte(b); err != nil {
			return n, err
		}
	}
	return len(p), nil
}

// Read receives a single byte into p. It implements io.Reader.
func (s *Serial) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	b, err := s.ReadByte()
	if err != nil {
		return 0, err
	}
	p[0] = b
	return 1, nil
}

// Flush implements a flush of the transmitter. Writes are not buffered,
// so there is nothing to do.
func (s *Serial) Flush() error {
	return nil
}

func (s *Serial) wait() error {
	return hal.TimerErr(s.timer.Wait())
}
