package trace

import (
	"testing"

	"github.com/golang/protobuf/descriptor"
	"github.com/golang/protobuf/proto"
	"github.com/stretchr/testify/require"
)

func TestDescriptor(t *testing.T) {
	fd, md := descriptor.ForMessage(&Capture{})
	require.Equal(t, "bitbang.trace.v1", fd.GetPackage())
	require.Equal(t, "proto3", fd.GetSyntax())
	require.Equal(t, "Capture", md.GetName())
	var names []string
	for _, f := range md.GetField() {
		names = append(names, f.GetName())
	}
	require.Equal(t, []string{"source", "protocol", "lines", "events", "ticks"}, names)
	require.Equal(t, ".bitbang.trace.v1.Event", md.GetField()[3].GetTypeName())

	_, md = descriptor.ForMessage(&Event{})
	require.Equal(t, "Event", md.GetName())
	require.Len(t, md.GetField(), 4)
}

func TestRegistered(t *testing.T) {
	require.NotEmpty(t, proto.FileDescriptor("trace.proto"))
	require.Equal(t, "bitbang.trace.v1.Capture", proto.MessageName(&Capture{}))
}

func TestMarshal(t *testing.T) {
	c := &Capture{
		Source:   "bench",
		Protocol: "spi",
		Lines:    []string{"MOSI", "SCK"},
		Events:   []*Event{{Line: 1, Tick: 3, High: true}, {Tick: 4, Sample: true}},
		Ticks:    16,
	}
	data, err := proto.Marshal(c)
	require.NoError(t, err)
	decoded := &Capture{}
	require.NoError(t, proto.Unmarshal(data, decoded))
	require.True(t, proto.Equal(c, decoded))
}
