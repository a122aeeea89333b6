package sh

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/abiosoft/ishell"
	"github.com/golang/glog"

	"github.com/robotalks/bitbang.go/pkg/i2s"
	"github.com/robotalks/bitbang.go/pkg/spi"
	"github.com/robotalks/bitbang.go/pkg/trace"
)

// Shell provides ishell backed interactive shell.
type Shell struct {
	*Bench

	Interactive bool
	Shell       *ishell.Shell
}

const (
	shellKey = "$shell"

	i2sUsage = "std|lj 8|16|32 LEFT RIGHT [LEFT RIGHT...]"
	spiUsage = "0|1|2|3 [msb|lsb] BYTE..."
)

var (
	// flags

	evalOnly bool

	// commands
	commands = []*ishell.Cmd{
		&I2SCmd,
		&SerialWriteCmd,
		&SerialLoopCmd,
		&SPICmd,
		&TraceCmd,
		&SaveCmd,
		&LoadCmd,
		&PublishCmd,
	}
)

func init() {
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
}

// AddCmds is used by other commands providers during init func.
func AddCmds(cmds ...*ishell.Cmd) {
	commands = append(commands, cmds...)
}

// New creates a new shell.
func New(conf *Config) *Shell {
	s := &Shell{
		Bench:       NewBench(conf),
		Interactive: !evalOnly,
		Shell:       ishell.New(),
	}
	s.Shell.Set(shellKey, s)
	s.Shell.SetPrompt(fmt.Sprintf("[%s] > ", conf.Board))
	for _, cmd := range commands {
		s.Shell.AddCmd(cmd)
	}
	return s
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// Run runs the shell.
// The board and broker connection are released before it returns or exits.
func (s *Shell) Run(args ...string) {
	if err := s.run(args...); err != nil {
		glog.Exitln(err)
	}
}

func (s *Shell) run(args ...string) (err error) {
	switch {
	case len(args) > 0:
		err = s.Shell.Process(args...)
	case s.Interactive:
		s.Shell.Run()
	default:
		err = ErrNoCommand
	}
	if cerr := s.Close(); cerr != nil {
		glog.Warningf("close: %v", cerr)
	}
	return err
}

// PrintLast renders the last capture.
func (s *Shell) PrintLast(c *ishell.Context) {
	if s.Last == nil {
		c.Err(ErrNoCapture)
		return
	}
	c.Print(trace.RenderString(s.Last))
}

func formatBytes(data []byte) string {
	items := make([]string, len(data))
	for n, b := range data {
		items[n] = fmt.Sprintf("%02x", b)
	}
	return strings.Join(items, " ")
}

func parseMode(s string) (i2s.Mode, error) {
	switch s {
	case "std", "i2s":
		return i2s.ModeI2S, nil
	case "lj", "left":
		return i2s.ModeLeftJustified, nil
	}
	return 0, fmt.Errorf("unknown I2S mode %q", s)
}

func parseWidth(s string) (i2s.Width, error) {
	n, err := strconv.Atoi(s)
	if width := i2s.Width(n); err == nil && width.Valid() {
		return width, nil
	}
	return 0, i2s.ErrInvalidWidth
}

func parseSPIMode(s string) (spi.Mode, error) {
	n, err := strconv.Atoi(s)
	if mode := spi.Mode(n); err == nil && mode.Valid() {
		return mode, nil
	}
	return 0, spi.ErrInvalidMode
}

var (
	// I2SCmd transmits I2S frames.
	I2SCmd = ishell.Cmd{
		Name: "i2s",
		Help: i2sUsage,
		Func: func(c *ishell.Context) {
			if len(c.Args) < 4 {
				c.Err(fmt.Errorf("usage: i2s %s", i2sUsage))
				return
			}
			mode, err := parseMode(c.Args[0])
			if err != nil {
				c.Err(err)
				return
			}
			width, err := parseWidth(c.Args[1])
			if err != nil {
				c.Err(err)
				return
			}
			words := make([]int32, 0, len(c.Args)-2)
			for _, arg := range c.Args[2:] {
				w, err := ParseWord(arg, width)
				if err != nil {
					c.Err(err)
					return
				}
				words = append(words, w)
			}
			s := ShellFrom(c)
			if err := s.I2S(mode, width, words); err != nil {
				c.Err(err)
				return
			}
			s.PrintLast(c)
		},
	}

	// SerialWriteCmd transmits serial frames.
	SerialWriteCmd = ishell.Cmd{
		Name:    "serial.write",
		Aliases: []string{"sw"},
		Help:    "TEXT | -x BYTE...",
		Func: func(c *ishell.Context) {
			data, err := serialData(c.Args)
			if err != nil {
				c.Err(err)
				return
			}
			s := ShellFrom(c)
			if err := s.SerialWrite(data); err != nil {
				c.Err(err)
				return
			}
			s.PrintLast(c)
		},
	}

	// SerialLoopCmd transmits serial frames and receives them back.
	SerialLoopCmd = ishell.Cmd{
		Name:    "serial.loop",
		Aliases: []string{"sl"},
		Help:    "TEXT | -x BYTE...",
		Func: func(c *ishell.Context) {
			data, err := serialData(c.Args)
			if err != nil {
				c.Err(err)
				return
			}
			out, err := ShellFrom(c).SerialLoop(data)
			if err != nil {
				c.Err(err)
				return
			}
			c.Printf("%s (%q)\n", formatBytes(out), string(out))
		},
	}

	// SPICmd exchanges bytes over SPI.
	SPICmd = ishell.Cmd{
		Name: "spi",
		Help: spiUsage,
		Func: func(c *ishell.Context) {
			if len(c.Args) < 2 {
				c.Err(fmt.Errorf("usage: spi %s", spiUsage))
				return
			}
			mode, err := parseSPIMode(c.Args[0])
			if err != nil {
				c.Err(err)
				return
			}
			args, order := c.Args[1:], spi.MSBFirst
			switch args[0] {
			case "msb":
				args = args[1:]
			case "lsb":
				order, args = spi.LSBFirst, args[1:]
			}
			data, err := ParseBytes(args)
			if err != nil {
				c.Err(err)
				return
			}
			s := ShellFrom(c)
			out, err := s.SPI(mode, order, data)
			if err != nil {
				c.Err(err)
				return
			}
			s.PrintLast(c)
			c.Println(formatBytes(out))
		},
	}

	// TraceCmd renders the last capture.
	TraceCmd = ishell.Cmd{
		Name:    "trace",
		Aliases: []string{"t"},
		Func: func(c *ishell.Context) {
			ShellFrom(c).PrintLast(c)
		},
	}

	// SaveCmd appends the last capture to a file.
	SaveCmd = ishell.Cmd{
		Name: "save",
		Help: "FILE",
		Func: func(c *ishell.Context) {
			if len(c.Args) != 1 {
				c.Err(fmt.Errorf("usage: save FILE"))
				return
			}
			if err := ShellFrom(c).Save(c.Args[0]); err != nil {
				c.Err(err)
			}
		},
	}

	// LoadCmd renders captures saved in a file.
	LoadCmd = ishell.Cmd{
		Name: "load",
		Help: "FILE",
		Func: func(c *ishell.Context) {
			if len(c.Args) != 1 {
				c.Err(fmt.Errorf("usage: load FILE"))
				return
			}
			captures, err := ShellFrom(c).Load(c.Args[0])
			for _, capture := range captures {
				c.Print(trace.RenderString(capture))
			}
			if err != nil {
				c.Err(err)
			}
		},
	}

	// PublishCmd publishes the last capture to the MQTT broker.
	PublishCmd = ishell.Cmd{
		Name:    "publish",
		Aliases: []string{"pub"},
		Func: func(c *ishell.Context) {
			if err := ShellFrom(c).Publish(); err != nil {
				c.Err(err)
				return
			}
			c.Println("OK")
		},
	}
)

func serialData(args []string) ([]byte, error) {
	if len(args) > 0 && args[0] == "-x" {
		return ParseBytes(args[1:])
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("nothing to send")
	}
	return []byte(strings.Join(args, " ")), nil
}

// Main is a helper to provide a single call in main.
func Main() {
	flag.Parse()
	New(NewConfig()).Run(flag.Args()...)
}
