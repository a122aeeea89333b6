package trace

import (
	"os"

	"github.com/denisbrodbeck/machineid"
	"github.com/golang/glog"
)

const appID = "bitbang"

// Publisher delivers captures to a monitor.
type Publisher interface {
	Publish(*Capture) error
}

// PublishFunc is the func form of Publisher.
type PublishFunc func(*Capture) error

// Publish implements Publisher.
func (f PublishFunc) Publish(c *Capture) error {
	return f(c)
}

// CaptureReader receives captures.
type CaptureReader interface {
	ReadCapture() (*Capture, error)
}

// DefaultSource returns the identity stamped on captures when none is set:
// an app-specific hash of the machine ID, or the host name if the machine ID
// is unavailable.
func DefaultSource() string {
	id, err := machineid.ProtectedID(appID)
	if err == nil {
		return id
	}
	glog.Warningf("machine id unavailable: %v", err)
	if host, err := os.Hostname(); err == nil {
		return host
	}
	return "unknown"
}
