package wearable

import (
	"fmt"
	"time"
)

// Vector3 is a fixed-size 3-vector (metres, m/s, rad/s, N, Nm depending on
// the capability reading it).
type Vector3 [3]float64

// Quaternion is an orientation quaternion in (w, x, y, z) order.
type Quaternion [4]float64

// Matrix3 is a row-major 3x3 rotation matrix.
type Matrix3 [3]Vector3

// Timestamp pairs the acquisition time of a wearable's last frame with a
// monotonically increasing sequence number.
type Timestamp struct {
	Time     time.Time `json:"time"`
	Sequence uint64    `json:"sequence"`
}

// SensorStatus reports the health of a sensor instance. It is the union of
// the states any capability may report; a given driver typically uses only a
// few of them.
type SensorStatus int

const (
	SensorStatusError SensorStatus = iota
	SensorStatusOk
	SensorStatusCalibrating
	SensorStatusOverflow
	SensorStatusTimeout
	SensorStatusUnknown
	SensorStatusWaitingForFirstRead
)

// String returns the human-readable status label.
func (s SensorStatus) String() string {
	switch s {
	case SensorStatusError:
		return "error"
	case SensorStatusOk:
		return "ok"
	case SensorStatusCalibrating:
		return "calibrating"
	case SensorStatusOverflow:
		return "overflow"
	case SensorStatusTimeout:
		return "timeout"
	case SensorStatusUnknown:
		return "unknown"
	case SensorStatusWaitingForFirstRead:
		return "waiting_for_first_read"
	default:
		return "invalid"
	}
}

// SensorType tags each capability family. The tag is fixed at construction
// and never mutated; every concrete instance's tag matches its static
// interface family.
type SensorType int

const (
	SensorTypeAccelerometer SensorType = iota
	SensorTypeEmgSensor
	SensorTypeForce3DSensor
	SensorTypeForceTorque6DSensor
	SensorTypeFreeBodyAccelerationSensor
	SensorTypeGyroscope
	SensorTypeMagnetometer
	SensorTypeOrientationSensor
	SensorTypePoseSensor
	SensorTypePositionSensor
	SensorTypeSkinSensor
	SensorTypeTemperatureSensor
	SensorTypeTorque3DSensor
	SensorTypeVirtualLinkKinSensor
	SensorTypeVirtualJointKinSensor
	SensorTypeVirtualSphericalJointKinSensor
	SensorTypeInvalid
)

// AllSensorTypes enumerates every valid sensor type. The derived registry
// utilities iterate over this list, so it must stay in lock-step with the
// SensorType constants above (SensorTypeInvalid excluded).
var AllSensorTypes = []SensorType{
	SensorTypeAccelerometer,
	SensorTypeEmgSensor,
	SensorTypeForce3DSensor,
	SensorTypeForceTorque6DSensor,
	SensorTypeFreeBodyAccelerationSensor,
	SensorTypeGyroscope,
	SensorTypeMagnetometer,
	SensorTypeOrientationSensor,
	SensorTypePoseSensor,
	SensorTypePositionSensor,
	SensorTypeSkinSensor,
	SensorTypeTemperatureSensor,
	SensorTypeTorque3DSensor,
	SensorTypeVirtualLinkKinSensor,
	SensorTypeVirtualJointKinSensor,
	SensorTypeVirtualSphericalJointKinSensor,
}

// sensorTypeNames backs String and SensorTypeFromString. Adding a sensor
// type without extending this table makes String return "invalid", which the
// tests reject.
var sensorTypeNames = map[SensorType]string{
	SensorTypeAccelerometer:                  "accelerometer",
	SensorTypeEmgSensor:                      "emg_sensor",
	SensorTypeForce3DSensor:                  "force_3d_sensor",
	SensorTypeForceTorque6DSensor:            "force_torque_6d_sensor",
	SensorTypeFreeBodyAccelerationSensor:     "free_body_acceleration_sensor",
	SensorTypeGyroscope:                      "gyroscope",
	SensorTypeMagnetometer:                   "magnetometer",
	SensorTypeOrientationSensor:              "orientation_sensor",
	SensorTypePoseSensor:                     "pose_sensor",
	SensorTypePositionSensor:                 "position_sensor",
	SensorTypeSkinSensor:                     "skin_sensor",
	SensorTypeTemperatureSensor:              "temperature_sensor",
	SensorTypeTorque3DSensor:                 "torque_3d_sensor",
	SensorTypeVirtualLinkKinSensor:           "virtual_link_kin_sensor",
	SensorTypeVirtualJointKinSensor:          "virtual_joint_kin_sensor",
	SensorTypeVirtualSphericalJointKinSensor: "virtual_spherical_joint_kin_sensor",
}

// String returns the snake_case name of the sensor type.
func (t SensorType) String() string {
	if name, ok := sensorTypeNames[t]; ok {
		return name
	}
	return "invalid"
}

// SensorTypeFromString parses a sensor type name as produced by String.
// Unrecognised names return SensorTypeInvalid and ErrInvalidSensorType.
func SensorTypeFromString(name string) (SensorType, error) {
	for t, n := range sensorTypeNames {
		if n == name {
			return t, nil
		}
	}
	return SensorTypeInvalid, fmt.Errorf("%w: %q", ErrInvalidSensorType, name)
}

// ActuatorStatus reports the health of an actuator instance.
type ActuatorStatus int

const (
	ActuatorStatusError ActuatorStatus = iota
	ActuatorStatusOk
	ActuatorStatusUnknown
)

// String returns the human-readable status label.
func (s ActuatorStatus) String() string {
	switch s {
	case ActuatorStatusError:
		return "error"
	case ActuatorStatusOk:
		return "ok"
	case ActuatorStatusUnknown:
		return "unknown"
	default:
		return "invalid"
	}
}

// ActuatorType tags each actuator capability family.
type ActuatorType int

const (
	ActuatorTypeHaptic ActuatorType = iota
	ActuatorTypeMotor
	ActuatorTypeHeater
	ActuatorTypeInvalid
)

// AllActuatorTypes enumerates every valid actuator type, in lock-step with
// the ActuatorType constants (ActuatorTypeInvalid excluded).
var AllActuatorTypes = []ActuatorType{
	ActuatorTypeHaptic,
	ActuatorTypeMotor,
	ActuatorTypeHeater,
}

var actuatorTypeNames = map[ActuatorType]string{
	ActuatorTypeHaptic: "haptic",
	ActuatorTypeMotor:  "motor",
	ActuatorTypeHeater: "heater",
}

// String returns the snake_case name of the actuator type.
func (t ActuatorType) String() string {
	if name, ok := actuatorTypeNames[t]; ok {
		return name
	}
	return "invalid"
}

// ActuatorTypeFromString parses an actuator type name as produced by String.
// Unrecognised names return ActuatorTypeInvalid and ErrInvalidActuatorType.
func ActuatorTypeFromString(name string) (ActuatorType, error) {
	for t, n := range actuatorTypeNames {
		if n == name {
			return t, nil
		}
	}
	return ActuatorTypeInvalid, fmt.Errorf("%w: %q", ErrInvalidActuatorType, name)
}
