// Package mqtt provides MQTT client connectivity for Wearcore.
//
// This package manages:
//   - Connection to Mosquitto broker with auto-reconnect
//   - Message publishing with QoS guarantees
//   - Topic subscriptions with wildcard support
//   - Last Will and Testament (LWT) for offline detection
//   - Connection health monitoring
//
// # Architecture
//
// Wearcore uses MQTT as the outward message bus: the telemetry publisher
// streams sensor samples to per-sensor topics, calibration lifecycle events
// go to a shared events topic, and actuator commands can be injected by
// external tools through the actuator command topics.
//
//	Wearcore ↔ MQTT Broker ↔ Recording / Visualisation / Control tools
//
// # Security Considerations
//
//   - TLS is required for production deployments (cfg.Broker.TLS=true)
//   - Credentials are validated against broker ACL
//   - Anonymous access is only for local development
//   - Message payloads are not encrypted beyond TLS transport
//
// # Performance Characteristics
//
//   - Connection: <1 second to local broker
//   - Publish latency: <10ms for QoS 1 to local broker
//   - Reconnect: Exponential backoff 1s-60s with jitter
//   - Message throughput: Broker-limited (typically 10K+ msg/sec)
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	// Subscribe to all sensor samples
//	err = client.Subscribe(mqtt.Topics{}.AllSensorSamples(), 1,
//	    func(topic string, payload []byte) error {
//	        log.Printf("Received: %s = %s", topic, payload)
//	        return nil
//	    })
//
//	// Publish one sample
//	topic := mqtt.Topics{}.SensorSample("MVNSuit", "gyroscope", "Pelvis")
//	client.Publish(topic, []byte(`{"value":[0.1,0,0]}`), 1, false)
package mqtt
