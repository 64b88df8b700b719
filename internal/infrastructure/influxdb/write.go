package influxdb

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// WriteSensorMetric writes a single sensor channel value to InfluxDB.
//
// This is the primary method for recording sensor telemetry data.
// The write is non-blocking; data is batched and sent asynchronously.
//
// Parameters:
//   - wearable: The wearable device name (e.g., "XsensSuit")
//   - sensor: Full sensor name (e.g., "XsensSuit::vLink::Pelvis")
//   - sensorType: Sensor type string (e.g., "virtual_link_kin")
//   - channel: The channel within the sensor (e.g., "position_x", "force_z")
//   - value: The numeric value to record
//
// Example:
//
//	client.WriteSensorMetric("XsensSuit", "XsensSuit::acc::Head", "accelerometer", "x", 0.12)
func (c *Client) WriteSensorMetric(wearable, sensor, sensorType, channel string, value float64) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"sensor_metrics",
		map[string]string{
			"wearable":    wearable,
			"sensor":      sensor,
			"sensor_type": sensorType,
			"channel":     channel,
		},
		map[string]interface{}{
			"value": value,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WriteSensorStatus records a sensor status transition.
//
// Status is stored as a string field tagged by sensor, so dashboards can
// surface timeout and overflow windows alongside the numeric channels.
func (c *Client) WriteSensorStatus(wearable, sensor, status string) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"sensor_status",
		map[string]string{
			"wearable": wearable,
			"sensor":   sensor,
		},
		map[string]interface{}{
			"status": status,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WriteCalibrationEvent records a calibration lifecycle event.
//
// Parameters:
//   - calibrationType: The routine name (e.g., "Npose", "Tpose")
//   - event: Lifecycle event (e.g., "started", "completed", "rejected")
//   - quality: Reported quality label, empty until processing finishes
func (c *Client) WriteCalibrationEvent(calibrationType, event, quality string) {
	if !c.IsConnected() {
		return
	}

	fields := map[string]interface{}{
		"event": event,
	}
	if quality != "" {
		fields["quality"] = quality
	}

	point := write.NewPoint(
		"calibration",
		map[string]string{
			"calibration_type": calibrationType,
		},
		fields,
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WritePoint writes a custom point with full control over tags and fields.
//
// Use this for custom measurements that don't fit the helper methods.
//
// Parameters:
//   - measurement: The measurement name (table)
//   - tags: Key-value pairs for indexing (low cardinality)
//   - fields: Key-value pairs for the actual data
//
// Example:
//
//	client.WritePoint("system_stats",
//	    map[string]string{"host": "wearcore-01"},
//	    map[string]interface{}{"cpu_percent": 45.2, "memory_mb": 512})
func (c *Client) WritePoint(measurement string, tags map[string]string, fields map[string]interface{}) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(measurement, tags, fields, time.Now())
	c.writeAPI.WritePoint(point)
}

// WritePointWithTime writes a custom point with a specific timestamp.
//
// Use this when the timestamp is not "now" (e.g., delayed data).
//
// Parameters:
//   - measurement: The measurement name
//   - tags: Key-value pairs for indexing
//   - fields: Key-value pairs for the data
//   - timestamp: The exact time for this data point
func (c *Client) WritePointWithTime(measurement string, tags map[string]string, fields map[string]interface{}, timestamp time.Time) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(measurement, tags, fields, timestamp)
	c.writeAPI.WritePoint(point)
}
