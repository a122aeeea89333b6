package sh

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/golang/glog"

	"github.com/robotalks/bitbang.go/pkg/hal"
	"github.com/robotalks/bitbang.go/pkg/hal/sim"
	"github.com/robotalks/bitbang.go/pkg/i2s"
	"github.com/robotalks/bitbang.go/pkg/serial"
	"github.com/robotalks/bitbang.go/pkg/spi"
	"github.com/robotalks/bitbang.go/pkg/trace"
	"github.com/robotalks/bitbang.go/pkg/trace/mqtt"
	"github.com/robotalks/bitbang.go/pkg/trace/stream"
)

var (
	// ErrNoCapture indicates nothing has been recorded yet.
	ErrNoCapture = errors.New("no capture")
	// ErrSimOnly indicates an operation needing the sim board.
	ErrSimOnly = errors.New("only supported on the sim board")
	// ErrNoCommand indicates a non-interactive shell was given no command.
	ErrNoCommand = errors.New("command expected")
)

// Bench runs drivers on a board and keeps the capture of the last run.
// Every run builds fresh drivers, so pins are owned by one driver at a time.
type Bench struct {
	Config *Config
	Board  hal.Board
	Last   *trace.Capture

	queue *mqtt.Queue
}

// NewBench creates a Bench. The board is opened on first use.
func NewBench(conf *Config) *Bench {
	return &Bench{Config: conf}
}

func (b *Bench) board() (hal.Board, error) {
	if b.Board == nil {
		board, err := b.Config.NewBoard()
		if err != nil {
			return nil, err
		}
		glog.V(2).Infof("bench: %s board opened", b.Config.Board)
		b.Board = board
	}
	return b.Board, nil
}

func (b *Bench) recorder(protocol string) *trace.Recorder {
	rec := trace.NewRecorder(protocol)
	rec.Source = b.Config.Source
	if rec.Source == "" {
		rec.Source = trace.DefaultSource()
	}
	return rec
}

// pins resolves outputs and inputs by role, wrapped by rec.
type pins struct {
	board hal.Board
	rec   *trace.Recorder
	err   error
}

func (p *pins) output(name string) hal.OutputPin {
	if p.err != nil {
		return nil
	}
	var pin hal.OutputPin
	if pin, p.err = p.board.Output(name); p.err != nil {
		return nil
	}
	return p.rec.Output(name, pin)
}

func (p *pins) input(name string) hal.InputPin {
	if p.err != nil {
		return nil
	}
	var pin hal.InputPin
	if pin, p.err = p.board.Input(name); p.err != nil {
		return nil
	}
	return p.rec.Input(name, pin)
}

func (p *pins) timer(b *Bench) hal.Timer {
	if p.err != nil {
		return nil
	}
	var timer hal.Timer
	if timer, p.err = p.board.Timer(b.Config.Period); p.err != nil {
		return nil
	}
	return p.rec.Timer(timer)
}

func (b *Bench) setup(protocol, list string, n int) (*pins, []string, error) {
	names, err := SplitPins(list, n)
	if err != nil {
		return nil, nil, err
	}
	board, err := b.board()
	if err != nil {
		return nil, nil, err
	}
	return &pins{board: board, rec: b.recorder(protocol)}, names, nil
}

func (b *Bench) finish(p *pins, err error) error {
	b.Last = p.rec.Capture()
	return err
}

// I2S transmits frames, words alternating left and right.
func (b *Bench) I2S(mode i2s.Mode, width i2s.Width, words []int32) error {
	if len(words)%2 != 0 {
		return i2s.ErrLengthMismatch
	}
	left, right := make([]int32, 0, len(words)/2), make([]int32, 0, len(words)/2)
	for n := 0; n < len(words); n += 2 {
		left, right = append(left, words[n]), append(right, words[n+1])
	}
	p, names, err := b.setup("i2s", b.Config.I2SPins, 3)
	if err != nil {
		return err
	}
	sd, ws, sck, timer := p.output(names[0]), p.output(names[1]), p.output(names[2]), p.timer(b)
	if p.err != nil {
		return p.err
	}
	dev := i2s.New(mode, sd, ws, sck, timer)
	return b.finish(p, dev.WriteStream(width, i2s.Slice(left), i2s.Slice(right)))
}

// SerialWrite transmits bytes.
func (b *Bench) SerialWrite(data []byte) error {
	p, names, err := b.setup("serial", b.Config.SerialPins, 2)
	if err != nil {
		return err
	}
	tx, timer := p.output(names[0]), p.timer(b)
	if p.err != nil {
		return p.err
	}
	// idle high before the first start bit.
	if err := tx.SetHigh(); err != nil {
		return b.finish(p, err)
	}
	_, err = serial.New(tx, nil, timer).Write(data)
	return b.finish(p, err)
}

// SerialLoop transmits bytes and receives them back by replaying the
// recorded TX line into a receiver. It needs the sim board, where replay
// is deterministic.
func (b *Bench) SerialLoop(data []byte) ([]byte, error) {
	if b.Config.Board != BoardSim {
		return nil, ErrSimOnly
	}
	if err := b.SerialWrite(data); err != nil {
		return nil, err
	}
	names, _ := SplitPins(b.Config.SerialPins, 2)
	timer := sim.NewTimer()
	rx := sim.NewReplay(b.Last, names[0], timer)
	rx.Idle = true
	port := serial.New(nil, rx, timer)
	out := make([]byte, len(data))
	for n := range out {
		v, err := port.ReadByte()
		if err != nil {
			return out[:n], err
		}
		out[n] = v
	}
	return out, nil
}

// SPI exchanges bytes and returns the bytes received.
func (b *Bench) SPI(mode spi.Mode, order spi.BitOrder, data []byte) ([]byte, error) {
	p, names, err := b.setup("spi", b.Config.SPIPins, 3)
	if err != nil {
		return nil, err
	}
	// outputs first so an input sharing the name of an output (loopback on
	// the sim board) samples it.
	mosi, sck := p.output(names[1]), p.output(names[2])
	miso, timer := p.input(names[0]), p.timer(b)
	if p.err != nil {
		return nil, p.err
	}
	dev, err := spi.New(mode, miso, mosi, sck, timer, spi.WithBitOrder(order))
	if err != nil {
		return nil, b.finish(p, err)
	}
	out := append([]byte(nil), data...)
	return out, b.finish(p, dev.Transfer(out))
}

// Save appends the last capture to a file.
func (b *Bench) Save(path string) error {
	if b.Last == nil {
		return ErrNoCapture
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	if err := stream.NewWriter(f).Publish(b.Last); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Load reads all captures from a file. The last one becomes Last.
func (b *Bench) Load(path string) ([]*trace.Capture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var captures []*trace.Capture
	r := stream.NewReader(f)
	for {
		c, err := r.ReadCapture()
		if err != nil {
			if err == io.EOF {
				break
			}
			return captures, err
		}
		captures = append(captures, c)
	}
	if len(captures) > 0 {
		b.Last = captures[len(captures)-1]
	}
	return captures, nil
}

// Publish sends the last capture to the MQTT broker.
func (b *Bench) Publish() error {
	if b.Last == nil {
		return ErrNoCapture
	}
	if b.queue == nil {
		q, err := mqtt.NewQueueFromURL(b.Config.MQTTURL)
		if err != nil {
			return err
		}
		if err := q.Connect(); err != nil {
			return fmt.Errorf("connect %s: %w", b.Config.MQTTURL, err)
		}
		b.queue = q
	}
	return mqtt.NewPublisher(b.queue).Publish(b.Last)
}

// Close releases the board and the broker connection.
func (b *Bench) Close() error {
	var errs hal.AggregatedError
	if b.queue != nil {
		errs.Add(b.queue.Close())
		b.queue = nil
	}
	if b.Board != nil {
		errs.Add(b.Board.Close())
		b.Board = nil
	}
	return errs.Aggregate()
}

// ParseByte parses a byte in Go literal syntax, e.g. 0xa5, 0b101, 65.
func ParseByte(s string) (byte, error) {
	v, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid byte %q", s)
	}
	return byte(v), nil
}

// ParseBytes parses every arg as a byte.
func ParseBytes(args []string) ([]byte, error) {
	out := make([]byte, len(args))
	for n, arg := range args {
		v, err := ParseByte(arg)
		if err != nil {
			return nil, err
		}
		out[n] = v
	}
	return out, nil
}

// ParseWord parses a word of width bits, signed if prefixed by '-' and
// otherwise as its unsigned bit pattern.
func ParseWord(s string, width i2s.Width) (int32, error) {
	if strings.HasPrefix(s, "-") {
		v, err := strconv.ParseInt(s, 0, int(width))
		if err != nil {
			return 0, fmt.Errorf("invalid word %q", s)
		}
		return int32(v), nil
	}
	v, err := strconv.ParseUint(s, 0, int(width))
	if err != nil {
		return 0, fmt.Errorf("invalid word %q", s)
	}
	return int32(uint32(v)), nil
}
