package hal

import "fmt"

// BusError wraps a failure reported by a pin.
type BusError struct {
	Line string
	Err  error
}

// Error implements error.
func (e *BusError) Error() string {
	if e.Line == "" {
		return fmt.Sprintf("bus error: %v", e.Err)
	}
	return fmt.Sprintf("bus error on %s: %v", e.Line, e.Err)
}

// Unwrap returns the pin error.
func (e *BusError) Unwrap() error {
	return e.Err
}

// TimerError wraps a failure reported by a timer.
// A lost tick breaks the timing of the whole frame, so drivers abort on it.
type TimerError struct {
	Err error
}

// Error implements error.
func (e *TimerError) Error() string {
	return fmt.Sprintf("timer error: %v", e.Err)
}

// Unwrap returns the timer error.
func (e *TimerError) Unwrap() error {
	return e.Err
}

// BusErr wraps err as a BusError on line, nil stays nil.
func BusErr(line string, err error) error {
	if err == nil {
		return nil
	}
	return &BusError{Line: line, Err: err}
}

// TimerErr wraps err as a TimerError, nil stays nil.
func TimerErr(err error) error {
	if err == nil {
		return nil
	}
	return &TimerError{Err: err}
}

// AggregatedError collects errors from releasing several resources.
type AggregatedError struct {
	Errors []error
}

// Error implements error.
func (e *AggregatedError) Error() string {
	msg := "multiple errors:"
	for _, err := range e.Errors {
		msg += "\n" + err.Error()
	}
	return msg
}

// Add adds errors, skipping nil.
func (e *AggregatedError) Add(errs ...error) {
	for _, err := range errs {
		if err != nil {
			e.Errors = append(e.Errors, err)
		}
	}
}

// Aggregate returns nil if no error was added, the only error if one was
// added, or e.
func (e *AggregatedError) Aggregate() error {
	switch len(e.Errors) {
	case 0:
		return nil
	case 1:
		return e.Errors[0]
	}
	return e
}
