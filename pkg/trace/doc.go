// Package trace is a software logic analyzer for bit-banged buses.
//
// A Recorder sits between a driver and its pins and timer. It records every
// level driven onto an output and every level sampled from an input,
// stamped with the number of timer ticks elapsed so far. The resulting
// Capture can be rendered as an ASCII waveform, encoded as protobuf and
// shipped to a monitor over MQTT, websocket or any byte stream.
//
// Recording costs a few allocations per pin operation. At high bit rates
// this shifts the timing being observed.
package trace
