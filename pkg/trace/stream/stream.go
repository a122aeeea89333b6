// Package stream ships captures over a byte stream.
// Each capture is prefixed by its length as 4 bytes little-endian.
package stream

import (
	"encoding/binary"
	"errors"
	"io"

	"github.com/robotalks/bitbang.go/pkg/trace"
)

// MaxSize limits the size of a single encoded capture.
const MaxSize = 64 << 20

// ErrTooLarge indicates a capture exceeding MaxSize.
var ErrTooLarge = errors.New("capture too large")

// Writer implements trace.Publisher over an io.Writer.
type Writer struct {
	io.Writer
}

// NewWriter creates a Writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w}
}

// Publish implements trace.Publisher.
func (w *Writer) Publish(c *trace.Capture) error {
	data, err := c.Encode()
	if err != nil {
		return err
	}
	if len(data) > MaxSize {
		return ErrTooLarge
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(data))); err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Reader implements trace.CaptureReader over an io.Reader.
type Reader struct {
	io.Reader
}

// NewReader creates a Reader.
func NewReader(r io.Reader) *Reader {
	return &Reader{r}
}

// ReadCapture implements trace.CaptureReader. It returns io.EOF at a clean
// end of stream.
func (r *Reader) ReadCapture() (*trace.Capture, error) {
	var size uint32
	if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
		return nil, err
	}
	if size > MaxSize {
		return nil, ErrTooLarge
	}
	data := make([]byte, size)
	if _, err := io.ReadFull(r, data); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}
	return trace.DecodeCapture(data)
}
