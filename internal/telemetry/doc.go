// Package telemetry streams live wearable data out of the process.
//
// A Publisher samples every registered wearable at a fixed interval and
// fans each sensor reading out to two sinks: JSON samples on the MQTT
// topic hierarchy (wearcore/sensor/{wearable}/{type}/{name}) and numeric
// channel values on the configured time-series backend.
//
// A CommandRouter runs the opposite direction: it subscribes to
// wearcore/actuator/+/+/+/command and forwards decoded command values to
// the matching registered actuator.
//
// Calibration outcomes flow through EventRecorder, which implements the
// calibration recorder contract and mirrors each finished session to the
// calibration event topic and the metrics backend before handing it to
// the persistent history.
package telemetry
