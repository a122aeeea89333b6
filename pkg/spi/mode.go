package spi

import "fmt"

// Polarity is the idle level of the clock.
type Polarity int

const (
	// IdleLow keeps SCK low between bits (CPOL=0).
	IdleLow Polarity = iota
	// IdleHigh keeps SCK high between bits (CPOL=1).
	IdleHigh
)

// Phase selects the clock edge on which data is sampled.
type Phase int

const (
	// SampleLeading samples on the first edge of each clock pulse (CPHA=0).
	SampleLeading Phase = iota
	// SampleTrailing samples on the second edge of each clock pulse (CPHA=1).
	SampleTrailing
)

// Mode is the SPI mode number, CPOL in the high bit and CPHA in the low bit.
type Mode int

// Standard modes.
const (
	Mode0 Mode = 0
	Mode1 Mode = 1
	Mode2 Mode = 2
	Mode3 Mode = 3
)

// ModeFrom builds the mode from polarity and phase.
func ModeFrom(pol Polarity, pha Phase) Mode {
	return Mode(int(pol)<<1 | int(pha))
}

// Polarity returns the clock polarity.
func (m Mode) Polarity() Polarity {
	return Polarity((m >> 1) & 1)
}

// Phase returns the clock phase.
func (m Mode) Phase() Phase {
	return Phase(m & 1)
}

// Valid checks if the mode is one of the four standard modes.
func (m Mode) Valid() bool {
	return m >= Mode0 && m <= Mode3
}

// String implements fmt.Stringer.
func (m Mode) String() string {
	return fmt.Sprintf("mode%d", int(m))
}

// BitOrder is the order in which bits of a byte are transmitted.
type BitOrder int

const (
	// MSBFirst transmits the most significant bit first.
	MSBFirst BitOrder = iota
	// LSBFirst transmits the least significant bit first.
	LSBFirst
)

// String implements fmt.Stringer.
func (o BitOrder) String() string {
	if o == LSBFirst {
		return "lsb-first"
	}
	return "msb-first"
}
