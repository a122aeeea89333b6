package trace

import (
	"github.com/robotalks/bitbang.go/pkg/hal"
	pb "github.com/robotalks/bitbang.go/pkg/proto/bitbang/trace/v1"
)

// Recorder records pin operations of wrapped pins.
// It is not safe for concurrent use, same as the drivers it observes.
type Recorder struct {
	Source   string
	Protocol string

	ticks   uint64
	lines   []string
	events  []*pb.Event
	samples map[uint32]*pb.Event
}

// NewRecorder creates a Recorder.
func NewRecorder(protocol string) *Recorder {
	return &Recorder{
		Protocol: protocol,
		samples:  make(map[uint32]*pb.Event),
	}
}

// Output wraps an output pin and records levels driven on it.
func (r *Recorder) Output(name string, pin hal.OutputPin) hal.OutputPin {
	line := r.line(name)
	return hal.OutputFunc(func(high bool) error {
		if err := hal.SetLevel(pin, high); err != nil {
			return err
		}
		r.events = append(r.events, &pb.Event{Line: line, Tick: r.ticks, High: high})
		return nil
	})
}

// Input wraps an input pin and records levels sampled from it.
// Polls repeating the previous level within the same tick are collapsed.
func (r *Recorder) Input(name string, pin hal.InputPin) hal.InputPin {
	line := r.line(name)
	return hal.InputFunc(func() (bool, error) {
		high, err := pin.IsHigh()
		if err != nil {
			return high, err
		}
		if last := r.samples[line]; last != nil && last.Tick == r.ticks && last.High == high {
			return high, nil
		}
		ev := &pb.Event{Line: line, Tick: r.ticks, High: high, Sample: true}
		r.samples[line] = ev
		r.events = append(r.events, ev)
		return high, nil
	})
}

// Timer wraps a timer and counts its ticks.
func (r *Recorder) Timer(timer hal.Timer) hal.Timer {
	return hal.TimerFunc(func() error {
		if err := timer.Wait(); err != nil {
			return err
		}
		r.ticks++
		return nil
	})
}

// Ticks returns the number of ticks counted.
func (r *Recorder) Ticks() uint64 {
	return r.ticks
}

// Capture returns what has been recorded so far.
func (r *Recorder) Capture() *Capture {
	c := &Capture{}
	c.Source, c.Protocol, c.Ticks = r.Source, r.Protocol, r.ticks
	c.Lines = append([]string(nil), r.lines...)
	c.Events = make([]*pb.Event, len(r.events))
	for n, ev := range r.events {
		c.Events[n] = &pb.Event{Line: ev.Line, Tick: ev.Tick, High: ev.High, Sample: ev.Sample}
	}
	return c
}

// Reset drops recorded events and restarts tick counting.
// Lines stay registered.
func (r *Recorder) Reset() {
	r.ticks, r.events = 0, nil
	r.samples = make(map[uint32]*pb.Event)
}

func (r *Recorder) line(name string) uint32 {
	for n, line := range r.lines {
		if line == name {
			return uint32(n)
		}
	}
	r.lines = append(r.lines, name)
	return uint32(len(r.lines) - 1)
}
