package hal

import "time"

// OutputPin drives a digital line.
type OutputPin interface {
	SetHigh() error
	SetLow() error
}

// InputPin samples a digital line.
type InputPin interface {
	IsHigh() (bool, error)
}

// Timer is a periodic timer. Wait blocks until the next tick.
// Ticks recur at a fixed rate configured by the owner of the timer.
type Timer interface {
	Wait() error
}

// Board provides named pins and a timer.
type Board interface {
	Output(name string) (OutputPin, error)
	Input(name string) (InputPin, error)
	Timer(period time.Duration) (Timer, error)
	Close() error
}

// SetLevel drives pin high or low.
func SetLevel(pin OutputPin, high bool) error {
	if high {
		return pin.SetHigh()
	}
	return pin.SetLow()
}

// OutputFunc is the func form of OutputPin.
type OutputFunc func(high bool) error

// SetHigh implements OutputPin.
func (f OutputFunc) SetHigh() error { return f(true) }

// SetLow implements OutputPin.
func (f OutputFunc) SetLow() error { return f(false) }

// InputFunc is the func form of InputPin.
type InputFunc func() (bool, error)

// IsHigh implements InputPin.
func (f InputFunc) IsHigh() (bool, error) { return f() }

// TimerFunc is the func form of Timer.
type TimerFunc func() error

// Wait implements Timer.
func (f TimerFunc) Wait() error { return f() }
