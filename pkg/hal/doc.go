// Package hal defines the digital pin and timer capabilities consumed by the
// bit-banged protocol drivers.
//
// Drivers never talk to hardware directly. A platform supplies an OutputPin
// for every line the driver drives, an InputPin for every line it samples,
// and a Timer already configured to tick at the rate the protocol requires.
// The drivers own these for their lifetime and use them from the calling
// goroutine only.
package hal
