package ingest

import (
	"context"
	"time"
)

// Sample is one reading a Source hands to a Batcher: a series name, the
// timestamp it was observed at, and either a numeric or string value.
// Decimals mirrors NumericWithDecimals from the Python reference collector
// — when set (and Value is numeric), it picks the display-hint double64
// format the Appender pins a newly-seen series to (logfile.Sample.DecimalsHint).
type Sample struct {
	Series      string
	TimestampMs int64
	Value       any // float64 or string
	Decimals    int
}

// Source produces Samples until its context is canceled. Implementations
// push samples into the channel they're given and do not close it; the
// caller owns the channel, which several Sources may share.
type Source interface {
	Run(ctx context.Context, out chan<- Sample) error
}

// MQTTSource is the collaborator boundary an MQTT-backed Source would
// implement: connect, subscribe to a set of topics, and forward each
// message as a Sample. No MQTT client library exists anywhere in this
// module's dependency stack, so this is an interface only — a caller wires
// a real client (paho.mqtt.golang or similar) behind it.
type MQTTSource interface {
	Connect(ctx context.Context) error
	Subscribe(topics []string) error
	Samples() <-chan Sample
	Close() error
}

// clockNow exists so tests can stub the wall clock without reaching for a
// full fake-time library.
var clockNow = func() time.Time { return time.Now() }
