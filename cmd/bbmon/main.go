package main

import (
	"flag"
	"net/http"
	"os"

	"github.com/golang/glog"

	"github.com/robotalks/bitbang.go/pkg/trace"
	"github.com/robotalks/bitbang.go/pkg/trace/mqtt"
	"github.com/robotalks/bitbang.go/pkg/trace/websocket"
)

var (
	mqttURL = "mqtt://localhost:1883/bitbang/"
	source  = "+"
	wsAddr  string
)

func init() {
	if val := os.Getenv("BITBANG_MQTT_URL"); val != "" {
		mqttURL = val
	}
	flag.StringVar(&mqttURL, "mqtt", mqttURL, "MQTT broker URL.")
	flag.StringVar(&source, "source", source, "Only show captures from this source.")
	flag.StringVar(&wsAddr, "ws", wsAddr, "Also forward captures to websocket clients on this address.")
}

func main() {
	flag.Parse()

	q, err := mqtt.NewQueueFromURL(mqttURL)
	if err != nil {
		glog.Exitln(err)
	}

	var hub *websocket.Hub
	if wsAddr != "" {
		hub = websocket.NewHub()
		http.Handle("/captures", hub.Handler())
		go func() {
			glog.Exitln(http.ListenAndServe(wsAddr, nil))
		}()
		glog.Infof("serving captures on ws://%s/captures", wsAddr)
	}

	q.SubCaptures(source, func(c *trace.Capture) {
		os.Stdout.WriteString(trace.RenderString(c))
		if hub != nil {
			hub.Publish(c)
		}
	})
	if err := q.Connect(); err != nil {
		glog.Exitln(err)
	}
	<-(chan struct{})(nil)
}
