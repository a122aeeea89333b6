package sh

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/robotalks/bitbang.go/pkg/board/gpiod"
	"github.com/robotalks/bitbang.go/pkg/board/periph"
	"github.com/robotalks/bitbang.go/pkg/hal"
	"github.com/robotalks/bitbang.go/pkg/hal/sim"
)

// Board kinds.
const (
	BoardSim    = "sim"
	BoardPeriph = "periph"
	BoardGPIOD  = "gpiod"
)

// Config defines the configuration of the bench.
type Config struct {
	Board      string
	Chip       string
	Period     time.Duration
	I2SPins    string
	SerialPins string
	SPIPins    string
	MQTTURL    string
	Source     string
}

var defaultConfig = Config{
	Board:      BoardSim,
	Chip:       "gpiochip0",
	Period:     50 * time.Microsecond,
	I2SPins:    "SD,WS,SCK",
	SerialPins: "TX,RX",
	SPIPins:    "MISO,MOSI,SCK",
	MQTTURL:    "mqtt://localhost:1883/bitbang/",
}

func init() {
	if val := os.Getenv("BITBANG_MQTT_URL"); val != "" {
		defaultConfig.MQTTURL = val
	}
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.Board, "board", defaultConfig.Board, "Pin backend: sim, periph or gpiod.")
	flag.StringVar(&defaultConfig.Chip, "chip", defaultConfig.Chip, "GPIO chip for the gpiod backend.")
	flag.DurationVar(&defaultConfig.Period, "period", defaultConfig.Period, "Timer tick period. I2S and SPI need half the bit time, serial the full bit time.")
	flag.StringVar(&defaultConfig.I2SPins, "i2s-pins", defaultConfig.I2SPins, "I2S pins: SD,WS,SCK.")
	flag.StringVar(&defaultConfig.SerialPins, "serial-pins", defaultConfig.SerialPins, "Serial pins: TX,RX.")
	flag.StringVar(&defaultConfig.SPIPins, "spi-pins", defaultConfig.SPIPins, "SPI pins: MISO,MOSI,SCK.")
	flag.StringVar(&defaultConfig.MQTTURL, "mqtt", defaultConfig.MQTTURL, "MQTT broker URL for publishing captures.")
	flag.StringVar(&defaultConfig.Source, "source", defaultConfig.Source, "Capture source ID, defaults to the machine ID.")
}

// NewConfig creates a config with defaults.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// NewBoard opens the configured pin backend.
func (c *Config) NewBoard() (hal.Board, error) {
	switch c.Board {
	case BoardSim:
		return sim.NewBoard(), nil
	case BoardPeriph:
		board, err := periph.NewBoard()
		if err != nil {
			return nil, err
		}
		return board, nil
	case BoardGPIOD:
		board, err := gpiod.NewBoard(c.Chip)
		if err != nil {
			return nil, err
		}
		return board, nil
	}
	return nil, fmt.Errorf("unknown board %q", c.Board)
}

// SplitPins splits a comma separated pin list, expecting n names.
func SplitPins(list string, n int) ([]string, error) {
	names := strings.Split(list, ",")
	if len(names) != n {
		return nil, fmt.Errorf("expect %d pins in %q", n, list)
	}
	for i, name := range names {
		if names[i] = strings.TrimSpace(name); names[i] == "" {
			return nil, fmt.Errorf("empty pin name in %q", list)
		}
	}
	return names, nil
}
