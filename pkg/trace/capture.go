package trace

import (
	"github.com/golang/protobuf/proto"

	pb "github.com/robotalks/bitbang.go/pkg/proto/bitbang/trace/v1"
)

// Capture wraps the recorded events.
type Capture struct {
	pb.Capture
}

// LineIndex returns the index of the named line, -1 if not found.
func (c *Capture) LineIndex(name string) int {
	for n, line := range c.Lines {
		if line == name {
			return n
		}
	}
	return -1
}

// LineEvents returns all events of the named line in recording order.
func (c *Capture) LineEvents(name string) []*pb.Event {
	index := c.LineIndex(name)
	if index < 0 {
		return nil
	}
	var events []*pb.Event
	for _, ev := range c.Events {
		if ev.Line == uint32(index) {
			events = append(events, ev)
		}
	}
	return events
}

// Transitions returns the driven events of the named line which changed its
// level, assuming the line started at initial.
func (c *Capture) Transitions(name string, initial bool) []*pb.Event {
	var events []*pb.Event
	level := initial
	for _, ev := range c.LineEvents(name) {
		if ev.Sample || ev.High == level {
			continue
		}
		level = ev.High
		events = append(events, ev)
	}
	return events
}

// LevelAt returns the level of the named line at the end of tick,
// or idle if nothing was recorded on the line up to that tick.
func (c *Capture) LevelAt(name string, tick uint64, idle bool) bool {
	level := idle
	for _, ev := range c.LineEvents(name) {
		if ev.Tick > tick {
			break
		}
		level = ev.High
	}
	return level
}

// Encode encodes the capture to bytes.
func (c *Capture) Encode() ([]byte, error) {
	return proto.Marshal(&c.Capture)
}

// DecodeCapture decodes bytes into a Capture.
func DecodeCapture(data []byte) (*Capture, error) {
	var c Capture
	if err := proto.Unmarshal(data, &c.Capture); err != nil {
		return nil, err
	}
	return &c, nil
}
