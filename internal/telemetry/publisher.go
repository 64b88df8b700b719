package telemetry

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/robwear/wearcore/internal/infrastructure/mqtt"
	"github.com/robwear/wearcore/internal/registry"
	"github.com/robwear/wearcore/internal/wearable"
)

// defaultInterval is the sampling period used when none is configured.
const defaultInterval = 100 * time.Millisecond

// PublisherOptions configures a Publisher.
type PublisherOptions struct {
	// Registry holds the wearables to sample. Required.
	Registry *registry.Registry

	// Broker receives JSON samples. Optional; nil disables MQTT output.
	Broker Broker

	// Metrics receives numeric channel values. Optional; nil disables
	// time-series output.
	Metrics MetricWriter

	// Interval is the sampling period. Defaults to 100ms.
	Interval time.Duration

	// QoS for published samples.
	QoS byte

	// Logger for operational messages. Defaults to a no-op logger.
	Logger Logger
}

// Publisher samples registered wearables on a fixed tick and fans
// readings out to the MQTT broker and the metrics backend.
type Publisher struct {
	reg      *registry.Registry
	broker   Broker
	metrics  MetricWriter
	topics   mqtt.Topics
	interval time.Duration
	qos      byte
	logger   Logger

	// lastStatus tracks the previously observed status per wearable and
	// sensor so status writes to the metrics backend happen only on
	// transitions. Keyed by wearable/sensor: sensor names are only unique
	// within one wearable.
	lastStatus map[string]wearable.SensorStatus

	stopOnce sync.Once
	done     chan struct{}
	wg       sync.WaitGroup
}

// NewPublisher creates a publisher. At least one of Broker and Metrics
// should be set, otherwise sampling is a no-op.
func NewPublisher(opts PublisherOptions) (*Publisher, error) {
	if opts.Registry == nil {
		return nil, fmt.Errorf("telemetry: registry is required")
	}
	if opts.Interval <= 0 {
		opts.Interval = defaultInterval
	}
	if opts.Logger == nil {
		opts.Logger = noopLogger{}
	}

	return &Publisher{
		reg:        opts.Registry,
		broker:     opts.Broker,
		metrics:    opts.Metrics,
		interval:   opts.Interval,
		qos:        opts.QoS,
		logger:     opts.Logger,
		lastStatus: make(map[string]wearable.SensorStatus),
		done:       make(chan struct{}),
	}, nil
}

// Start launches the sampling loop.
func (p *Publisher) Start() {
	p.wg.Add(1)
	go p.loop()
	p.logger.Info("telemetry publisher started", "interval", p.interval.String())
}

// Stop halts the sampling loop and waits for it to finish.
func (p *Publisher) Stop() {
	p.stopOnce.Do(func() {
		close(p.done)
	})
	p.wg.Wait()
}

func (p *Publisher) loop() {
	defer p.wg.Done()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.sampleOnce()
		case <-p.done:
			return
		}
	}
}

// sampleOnce snapshots every registered wearable and publishes one sample
// per sensor. Exposed to tests via publisher_test.go.
func (p *Publisher) sampleOnce() {
	for _, w := range p.reg.All() {
		p.sampleWearable(w)
	}
}

func (p *Publisher) sampleWearable(w wearable.Wearable) {
	name := w.WearableName()
	ts := w.Timestamp()

	sensors := wearable.AllSensors(w)
	for _, s := range sensors {
		p.publishSensor(name, ts, s)
	}

	if p.broker != nil && p.broker.IsConnected() {
		status := WearableStatus{
			Wearable:  name,
			Status:    w.Status().String(),
			Timestamp: ts,
			Sensors:   len(sensors),
		}
		payload, err := json.Marshal(status)
		if err != nil {
			p.logger.Error("marshalling wearable status", "wearable", name, "error", err)
			return
		}
		if err := p.broker.Publish(p.topics.WearableStatus(name), payload, p.qos, true); err != nil {
			p.logger.Warn("publishing wearable status", "wearable", name, "error", err)
		}
	}
}

func (p *Publisher) publishSensor(wearableName string, ts wearable.Timestamp, s wearable.Sensor) {
	status := s.SensorStatus()
	sample := Sample{
		Wearable:  wearableName,
		Sensor:    s.SensorName(),
		Type:      s.SensorType().String(),
		Status:    status.String(),
		Timestamp: ts,
		Channels:  SensorChannels(s),
	}

	if p.broker != nil && p.broker.IsConnected() {
		payload, err := json.Marshal(sample)
		if err != nil {
			p.logger.Error("marshalling sample", "sensor", sample.Sensor, "error", err)
		} else {
			topic := p.topics.SensorSample(wearableName, sample.Type, sample.Sensor)
			if err := p.broker.Publish(topic, payload, p.qos, false); err != nil {
				p.logger.Warn("publishing sample", "topic", topic, "error", err)
			}
		}
	}

	if p.metrics == nil {
		return
	}

	for channel, value := range sample.Channels {
		p.metrics.WriteSensorMetric(wearableName, sample.Sensor, sample.Type, channel, value)
	}

	key := wearableName + "/" + sample.Sensor
	if prev, seen := p.lastStatus[key]; !seen || prev != status {
		p.metrics.WriteSensorStatus(wearableName, sample.Sensor, sample.Status)
		p.lastStatus[key] = status
	}
}
