package tsdb

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// WriteSensorMetric writes a single sensor channel value to VictoriaMetrics.
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
	c.addLine(formatLineProtocol(
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
	))
}

// WriteSensorStatus records a sensor status transition.
//
// Status is stored as a string field tagged by sensor, so dashboards can
// surface timeout and overflow windows alongside the numeric channels.
func (c *Client) WriteSensorStatus(wearable, sensor, status string) {
	c.addLine(formatLineProtocol(
		"sensor_status",
		map[string]string{
			"wearable": wearable,
			"sensor":   sensor,
		},
		map[string]interface{}{
			"status": status,
		},
		time.Now(),
	))
}

// WriteCalibrationEvent records a calibration lifecycle event.
//
// Parameters:
//   - calibrationType: The routine name (e.g., "Npose", "Tpose")
//   - event: Lifecycle event (e.g., "started", "completed", "rejected")
//   - quality: Reported quality label, empty until processing finishes
func (c *Client) WriteCalibrationEvent(calibrationType, event, quality string) {
	fields := map[string]interface{}{
		"event": event,
	}
	if quality != "" {
		fields["quality"] = quality
	}

	c.addLine(formatLineProtocol(
		"calibration",
		map[string]string{
			"calibration_type": calibrationType,
		},
		fields,
		time.Now(),
	))
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
	c.addLine(formatLineProtocol(measurement, tags, fields, time.Now()))
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
	c.addLine(formatLineProtocol(measurement, tags, fields, timestamp))
}

// formatLineProtocol formats a data point as an InfluxDB line protocol string.
//
// Format: measurement,tag1=val1,tag2=val2 field1=val1,field2=val2 timestamp_ns
//
// VictoriaMetrics accepts this format on the /write endpoint.
func formatLineProtocol(measurement string, tags map[string]string, fields map[string]interface{}, t time.Time) string {
	var b strings.Builder

	// Measurement (escaped to prevent injection)
	b.WriteString(escapeMeasurement(measurement))

	// Tags (sorted for deterministic output and testability)
	tagKeys := make([]string, 0, len(tags))
	for k := range tags {
		tagKeys = append(tagKeys, k)
	}
	sort.Strings(tagKeys)
	for _, k := range tagKeys {
		b.WriteByte(',')
		b.WriteString(escapeTag(k))
		b.WriteByte('=')
		b.WriteString(escapeTag(tags[k]))
	}

	// Fields (sorted for deterministic output)
	fieldKeys := make([]string, 0, len(fields))
	for k := range fields {
		fieldKeys = append(fieldKeys, k)
	}
	sort.Strings(fieldKeys)
	b.WriteByte(' ')
	first := true
	for _, k := range fieldKeys {
		v := fields[k]
		if !first {
			b.WriteByte(',')
		}
		first = false
		b.WriteString(escapeTag(k))
		b.WriteByte('=')
		switch val := v.(type) {
		case float64:
			b.WriteString(fmt.Sprintf("%g", val))
		case int:
			b.WriteString(fmt.Sprintf("%di", val))
		case int64:
			b.WriteString(fmt.Sprintf("%di", val))
		case bool:
			if val {
				b.WriteString("true")
			} else {
				b.WriteString("false")
			}
		case string:
			b.WriteString(fmt.Sprintf("%q", val))
		default:
			b.WriteString(fmt.Sprintf("%v", val))
		}
	}

	// Timestamp in nanoseconds
	b.WriteByte(' ')
	b.WriteString(fmt.Sprintf("%d", t.UnixNano()))

	return b.String()
}

// escapeTag escapes special characters in tag keys/values per line protocol spec.
// Commas, equals signs, and spaces must be backslash-escaped.
// Newlines are stripped to prevent line protocol injection.
func escapeTag(s string) string {
	s = strings.ReplaceAll(s, "\n", "")
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, " ", "\\ ")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, "=", "\\=")
	return s
}

// escapeMeasurement escapes special characters in measurement names.
// Newlines are stripped to prevent line protocol injection.
func escapeMeasurement(s string) string {
	s = strings.ReplaceAll(s, "\n", "")
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, " ", "\\ ")
	s = strings.ReplaceAll(s, ",", "\\,")
	return s
}
