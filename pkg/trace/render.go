package trace

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Waveform characters.
const (
	charHigh     = '-'
	charLow      = '_'
	charUnknown  = ' '
	charNoSample = '.'
)

// Render writes an ASCII waveform of the capture, one row per line and one
// column per tick. Driven lines show the level at the end of each tick,
// sampled lines show the sampled bit where a sample was taken.
func Render(w io.Writer, c *Capture) error {
	width := 0
	for _, name := range c.Lines {
		if len(name) > width {
			width = len(name)
		}
	}
	slots := int(c.Ticks) + 1
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s [%s] %d ticks\n", c.Protocol, c.Source, c.Ticks)
	for n, name := range c.Lines {
		row := renderLine(c, uint32(n), slots)
		fmt.Fprintf(bw, "%-*s |%s|\n", width, name, row)
	}
	return bw.Flush()
}

// RenderString renders the capture into a string.
func RenderString(c *Capture) string {
	var sb strings.Builder
	Render(&sb, c)
	return sb.String()
}

func renderLine(c *Capture, line uint32, slots int) string {
	driven := make([]byte, slots)
	sampled := make([]byte, slots)
	hasDriven := false
	for _, ev := range c.Events {
		if ev.Line != line || int(ev.Tick) >= slots {
			continue
		}
		ch := byte('0')
		if ev.High {
			ch = '1'
		}
		if ev.Sample {
			sampled[ev.Tick] = ch
		} else {
			driven[ev.Tick] = ch
			hasDriven = true
		}
	}

	row := make([]byte, slots)
	if !hasDriven {
		for n, ch := range sampled {
			if ch == 0 {
				ch = charNoSample
			}
			row[n] = ch
		}
		return string(row)
	}
	level := byte(charUnknown)
	for n, ch := range driven {
		switch ch {
		case '1':
			level = charHigh
		case '0':
			level = charLow
		}
		row[n] = level
	}
	return string(row)
}
