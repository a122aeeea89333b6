// Package spi implements a bit-banged full-duplex SPI master.
//
// Each bit takes two timer ticks, so the timer must tick at twice the
// desired SPI clock. Chip select is left to the caller.
package spi

import (
	"errors"

	"github.com/golang/glog"

	"github.com/robotalks/bitbang.go/pkg/hal"
)

// Line names used in errors.
const (
	LineMISO = "miso"
	LineMOSI = "mosi"
	LineSCK  = "sck"
)

var (
	// ErrNoData indicates no byte has been received yet.
	ErrNoData = errors.New("no data")
	// ErrInvalidMode indicates a mode outside Mode0 to Mode3.
	ErrInvalidMode = errors.New("invalid SPI mode")
)

// SPI is the master. It owns its pins and timer.
type SPI struct {
	mode     Mode
	miso     hal.InputPin
	mosi     hal.OutputPin
	sck      hal.OutputPin
	timer    hal.Timer
	bitOrder BitOrder

	rx      byte
	rxValid bool
}

// Option configures the SPI at construction.
type Option func(*SPI)

// WithBitOrder sets the transmit bit order.
func WithBitOrder(order BitOrder) Option {
	return func(s *SPI) {
		s.bitOrder = order
	}
}

// New creates an SPI master and drives SCK to the idle level of mode.
func New(mode Mode, miso hal.InputPin, mosi, sck hal.OutputPin, timer hal.Timer, options ...Option) (*SPI, error) {
	if !mode.Valid() {
		return nil, ErrInvalidMode
	}
	s := &SPI{mode: mode, miso: miso, mosi: mosi, sck: sck, timer: timer}
	for _, option := range options {
		option(s)
	}
	if err := s.setClock(mode.Polarity() == IdleHigh); err != nil {
		return nil, err
	}
	glog.V(4).Infof("spi: new master, %s %s", mode, s.bitOrder)
	return s, nil
}

// Mode returns the SPI mode.
func (s *SPI) Mode() Mode {
	return s.mode
}

// BitOrder returns the transmit bit order.
func (s *SPI) BitOrder() BitOrder {
	return s.bitOrder
}

// SetBitOrder changes the transmit bit order.
// Received bytes are always assembled first-sampled bit most significant.
func (s *SPI) SetBitOrder(order BitOrder) {
	s.bitOrder = order
}

// Send transmits b and captures the byte received at the same time,
// retrievable with Read.
//
// On failure the transfer stops mid-byte; SCK and MOSI are left as they
// were and the previously received byte stays in place.
func (s *SPI) Send(b byte) error {
	var acc byte
	for n := 0; n < 8; n++ {
		var bit byte
		if s.bitOrder == LSBFirst {
			bit = (b >> uint(n)) & 1
		} else {
			bit = (b >> uint(7-n)) & 1
		}
		if err := hal.SetLevel(s.mosi, bit != 0); err != nil {
			return hal.BusErr(LineMOSI, err)
		}
		in, err := s.clockBit()
		if err != nil {
			return err
		}
		acc <<= 1
		if in {
			acc |= 1
		}
	}
	s.rx, s.rxValid = acc, true
	return nil
}

// Read returns the byte captured by the last completed Send.
func (s *SPI) Read() (byte, error) {
	if !s.rxValid {
		return 0, ErrNoData
	}
	return s.rx, nil
}

// Exchange sends b and returns the byte received.
func (s *SPI) Exchange(b byte) (byte, error) {
	if err := s.Send(b); err != nil {
		return 0, err
	}
	return s.Read()
}

// Transfer exchanges every byte of buf in place.
func (s *SPI) Transfer(buf []byte) error {
	glog.V(5).Infof("spi: transfer %d bytes in %s", len(buf), s.mode)
	for n, b := range buf {
		in, err := s.Exchange(b)
		if err != nil {
			return err
		}
		buf[n] = in
	}
	return nil
}

// Write sends p, discarding received bytes. It implements io.Writer.
func (s *SPI) Write(p []byte) (int, error) {
	for n, b := range p {
		if err := s.Send(b); err != nil {
			return n, err
		}
	}
	return len(p), nil
}

// clockBit runs one clock pulse and samples MISO on the edge selected by
// the phase. The data bit must already be on MOSI.
func (s *SPI) clockBit() (bool, error) {
	idle := s.mode.Polarity() == IdleHigh
	if s.mode.Phase() == SampleLeading {
		if err := s.wait(); err != nil {
			return false, err
		}
		if err := s.setClock(!idle); err != nil {
			return false, err
		}
		in, err := s.sample()
		if err != nil {
			return false, err
		}
		if err := s.wait(); err != nil {
			return false, err
		}
		return in, s.setClock(idle)
	}
	if err := s.setClock(!idle); err != nil {
		return false, err
	}
	if err := s.wait(); err != nil {
		return false, err
	}
	in, err := s.sample()
	if err != nil {
		return false, err
	}
	if err := s.setClock(idle); err != nil {
		return false, err
	}
	return in, s.wait()
}

func (s *SPI) sample() (bool, error) {
	high, err := s.miso.IsHigh()
	return high, hal.BusErr(LineMISO, err)
}

func (s *SPI) setClock(high bool) error {
	return hal.BusErr(LineSCK, hal.SetLevel(s.sck, high))
}

func (s *SPI) wait() error {
	return hal.TimerErr(s.timer.Wait())
}
