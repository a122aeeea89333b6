// Package websocket ships captures as binary websocket messages.
package websocket

import (
	"sync"

	"github.com/golang/glog"
	"golang.org/x/net/websocket"

	"github.com/robotalks/bitbang.go/pkg/trace"
)

// Conn implements trace.Publisher and trace.CaptureReader.
type Conn websocket.Conn

// New wraps websocket.Conn.
func New(conn *websocket.Conn) *Conn {
	return (*Conn)(conn)
}

// Publish implements trace.Publisher.
func (c *Conn) Publish(capture *trace.Capture) error {
	data, err := capture.Encode()
	if err != nil {
		return err
	}
	return websocket.Message.Send((*websocket.Conn)(c), data)
}

// ReadCapture implements trace.CaptureReader.
func (c *Conn) ReadCapture() (*trace.Capture, error) {
	var data []byte
	if err := websocket.Message.Receive((*websocket.Conn)(c), &data); err != nil {
		return nil, err
	}
	return trace.DecodeCapture(data)
}

// Hub publishes captures to every connected websocket client.
type Hub struct {
	lock    sync.Mutex
	clients map[*Conn]struct{}
}

// NewHub creates a Hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[*Conn]struct{})}
}

// Handler accepts clients. Serve it with net/http.
// A client stays registered until its connection fails or it disconnects.
func (h *Hub) Handler() websocket.Handler {
	return func(ws *websocket.Conn) {
		conn := New(ws)
		h.lock.Lock()
		h.clients[conn] = struct{}{}
		h.lock.Unlock()
		glog.V(2).Infof("websocket: client %s connected", ws.Request().RemoteAddr)
		// clients only listen, whatever they send is discarded.
		var msg []byte
		for {
			if err := websocket.Message.Receive(ws, &msg); err != nil {
				glog.V(2).Infof("websocket: client %s gone: %v", ws.Request().RemoteAddr, err)
				break
			}
		}
		h.drop(conn)
	}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.lock.Lock()
	defer h.lock.Unlock()
	return len(h.clients)
}

// Publish implements trace.Publisher. Clients failing to receive are dropped.
func (h *Hub) Publish(capture *trace.Capture) error {
	h.lock.Lock()
	defer h.lock.Unlock()
	for conn := range h.clients {
		if err := conn.Publish(capture); err != nil {
			glog.V(2).Infof("websocket: drop client: %v", err)
			delete(h.clients, conn)
			(*websocket.Conn)(conn).Close()
		}
	}
	return nil
}

// Close disconnects all clients.
func (h *Hub) Close() error {
	h.lock.Lock()
	defer h.lock.Unlock()
	for conn := range h.clients {
		delete(h.clients, conn)
		(*websocket.Conn)(conn).Close()
	}
	return nil
}

func (h *Hub) drop(conn *Conn) {
	h.lock.Lock()
	delete(h.clients, conn)
	h.lock.Unlock()
}
