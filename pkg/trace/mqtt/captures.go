package mqtt

import (
	"strings"

	"github.com/golang/glog"

	"github.com/robotalks/bitbang.go/pkg/trace"
)

// CaptureTopic returns the topic captures from source are published to.
// A source of "+" matches every source.
func CaptureTopic(source string) string {
	return "captures/" + source
}

// Publisher publishes captures to the queue.
type Publisher struct {
	Queue *Queue
}

// NewPublisher creates a Publisher.
func NewPublisher(q *Queue) *Publisher {
	return &Publisher{Queue: q}
}

// Publish implements trace.Publisher.
func (p *Publisher) Publish(c *trace.Capture) error {
	source := c.Source
	if source == "" {
		source = trace.DefaultSource()
	}
	data, err := c.Encode()
	if err != nil {
		return err
	}
	return p.Queue.Pub(CaptureTopic(source), data)
}

// SubCaptures subscribes to captures from source, "+" for all.
// Payloads which fail to decode are logged and dropped.
func (q *Queue) SubCaptures(source string, fn func(*trace.Capture)) error {
	return q.Sub(CaptureTopic(source), func(topic string, payload []byte) {
		c, err := trace.DecodeCapture(payload)
		if err != nil {
			glog.Warningf("mqtt: bad capture on %q: %v", topic, err)
			return
		}
		if c.Source == "" {
			c.Source = strings.TrimPrefix(topic, CaptureTopic(""))
		}
		fn(c)
	})
}
