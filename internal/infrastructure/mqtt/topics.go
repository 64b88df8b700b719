package mqtt

import "fmt"

// Topic prefixes for the Wearcore MQTT hierarchy.
//
// Sensor topics use the flat scheme: wearcore/sensor/{wearable}/{type}/{name}
const (
	// TopicPrefix is the base for all Wearcore topics.
	TopicPrefix = "wearcore"

	// TopicPrefixSensor is the base for sensor sample topics.
	TopicPrefixSensor = "wearcore/sensor"

	// TopicPrefixActuator is the base for actuator command topics.
	TopicPrefixActuator = "wearcore/actuator"

	// TopicPrefixCalibration is the base for calibration event topics.
	TopicPrefixCalibration = "wearcore/calibration"

	// TopicPrefixSystem is the base for system topics.
	TopicPrefixSystem = "wearcore/system"
)

// Topics provides builders for Wearcore MQTT topics.
// Using these helpers ensures consistent topic naming across the codebase.
//
//	topics := mqtt.Topics{}
//	sampleTopic := topics.SensorSample("MVNSuit", "gyroscope", "Pelvis")
//	// Returns: "wearcore/sensor/MVNSuit/gyroscope/Pelvis"
type Topics struct{}

// SensorSample returns the topic for one sensor's sample stream.
//
// Example: wearcore/sensor/MVNSuit/gyroscope/Pelvis
func (Topics) SensorSample(wearableName, sensorType, sensorName string) string {
	return fmt.Sprintf("%s/%s/%s/%s", TopicPrefixSensor, wearableName, sensorType, sensorName)
}

// WearableStatus returns the topic for a wearable's aggregate status.
//
// Example: wearcore/sensor/MVNSuit/status
func (Topics) WearableStatus(wearableName string) string {
	return fmt.Sprintf("%s/%s/status", TopicPrefixSensor, wearableName)
}

// ActuatorCommand returns the topic commands for one actuator arrive on.
//
// Example: wearcore/actuator/MVNSuit/haptic/LeftHand/command
func (Topics) ActuatorCommand(wearableName, actuatorType, actuatorName string) string {
	return fmt.Sprintf("%s/%s/%s/%s/command", TopicPrefixActuator, wearableName, actuatorType, actuatorName)
}

// CalibrationEvent returns the topic for calibration lifecycle events.
//
// Example: wearcore/calibration/completed
func (Topics) CalibrationEvent(event string) string {
	return fmt.Sprintf("%s/%s", TopicPrefixCalibration, event)
}

// SystemStatus returns the system status topic, also used for the broker's
// last-will message.
//
// Example: wearcore/system/status
func (Topics) SystemStatus() string {
	return fmt.Sprintf("%s/status", TopicPrefixSystem)
}

// AllSensorSamples returns a pattern matching every sensor sample.
//
// Pattern: wearcore/sensor/+/+/+
func (Topics) AllSensorSamples() string {
	return fmt.Sprintf("%s/+/+/+", TopicPrefixSensor)
}

// AllWearableStatuses returns a pattern matching every wearable status.
//
// Pattern: wearcore/sensor/+/status
func (Topics) AllWearableStatuses() string {
	return fmt.Sprintf("%s/+/status", TopicPrefixSensor)
}

// AllActuatorCommands returns a pattern matching every actuator command.
//
// Pattern: wearcore/actuator/+/+/+/command
func (Topics) AllActuatorCommands() string {
	return fmt.Sprintf("%s/+/+/+/command", TopicPrefixActuator)
}

// AllCalibrationEvents returns a pattern matching every calibration event.
//
// Pattern: wearcore/calibration/+
func (Topics) AllCalibrationEvents() string {
	return fmt.Sprintf("%s/+", TopicPrefixCalibration)
}

// AllTopics returns a pattern matching all Wearcore topics.
// Use with caution - this receives ALL traffic.
//
// Pattern: wearcore/#
func (Topics) AllTopics() string {
	return TopicPrefix + "/#"
}
